package htmx

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// positionToOffset computes the byte offset and tree-sitter Point for an
// LSP Position. Character counts UTF-16 code units. Positions past the end
// of a line or of the document are clamped.
func positionToOffset(document string, pos protocol.Position) (offset int, point sitter.Point) {
	lines := strings.Split(document, "\n")
	if int(pos.Line) >= len(lines) {
		pos.Line = uint32(len(lines) - 1)
		pos.Character = uint32(utf16Len(lines[pos.Line]))
	}
	for i := uint32(0); i < pos.Line; i++ {
		offset += len(lines[i]) + 1
	}

	line := lines[pos.Line]
	byteCount := len(line)
	units := 0
	for i, r := range line {
		width := 1
		if r > 0xFFFF {
			width = 2
		}
		if uint32(units+width) > pos.Character {
			byteCount = i
			break
		}
		units += width
	}
	offset += byteCount
	point = sitter.Point{Row: pos.Line, Column: uint32(byteCount)}
	return
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r > 0xFFFF {
			n += 2
		} else {
			n++
		}
	}
	return n
}
