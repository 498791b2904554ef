package htmx

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestPositionToOffset(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		pos    protocol.Position
		offset int
		column uint32
	}{
		{"start", "abc", protocol.Position{Line: 0, Character: 0}, 0, 0},
		{"middle", "abc", protocol.Position{Line: 0, Character: 2}, 2, 2},
		{"second line", "ab\ncd", protocol.Position{Line: 1, Character: 1}, 4, 1},
		{"past line end", "ab\ncd", protocol.Position{Line: 0, Character: 10}, 2, 2},
		{"past document end", "ab\ncd", protocol.Position{Line: 9, Character: 0}, 5, 2},
		{"two byte rune", "é<a", protocol.Position{Line: 0, Character: 2}, 3, 3},
		{"surrogate pair", "😀x", protocol.Position{Line: 0, Character: 2}, 4, 4},
		{"inside surrogate pair", "😀x", protocol.Position{Line: 0, Character: 1}, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offset, point := positionToOffset(tt.doc, tt.pos)
			if offset != tt.offset {
				t.Errorf("offset = %d, want %d", offset, tt.offset)
			}
			if point.Column != tt.column {
				t.Errorf("column = %d, want %d", point.Column, tt.column)
			}
		})
	}
}

func TestLexicalPrefix(t *testing.T) {
	tests := []struct {
		head string
		want string
	}{
		{"<div hx-", "hx-"},
		{"<div class=\"a\" hx-sw", "hx-sw"},
		{"<div class=\"a hx-", ""},
		{"<div>hx-", ""},
		{"hx-", ""},
		{"<div", ""},
		{"<div ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.head, func(t *testing.T) {
			if got := lexicalPrefix([]byte(tt.head)); got != tt.want {
				t.Errorf("lexicalPrefix(%q) = %q, want %q", tt.head, got, tt.want)
			}
		})
	}
}
