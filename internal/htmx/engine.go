package htmx

import (
	"bytes"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxls/internal/document"
)

// ErrDocumentNotFound is returned when completing in a document that was
// never synchronized.
var ErrDocumentNotFound = fmt.Errorf("document not found")

// Engine computes htmx attribute completions against the document store.
type Engine struct {
	catalog   *Catalog
	parsers   *parserPool
	closeOnce sync.Once
	log       commonlog.Logger
}

// NewEngine creates an Engine with poolSize HTML parsers.
func NewEngine(catalog *Catalog, poolSize int) *Engine {
	if poolSize < 1 {
		poolSize = 1
	}
	return &Engine{
		catalog: catalog,
		parsers: newParserPool(poolSize),
		log:     commonlog.GetLogger("hxls.htmx"),
	}
}

// Complete returns the attributes matching the attribute name being typed
// at the given position. Positions outside an HTML start tag yield an
// empty slice.
func (e *Engine) Complete(
	params protocol.TextDocumentPositionParams,
	docs document.Reader,
) ([]Attribute, error) {
	uri := params.TextDocument.URI
	text, ok := docs.Get(uri)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, uri)
	}

	offset, point := positionToOffset(text, params.Position)
	prefix, err := e.prefixAt([]byte(text), offset, point)
	if err != nil {
		return nil, err
	}
	e.log.Debugf("completion prefix %q at %d:%d in %s", prefix, params.Position.Line, params.Position.Character, uri)
	return e.catalog.Match(prefix), nil
}

// Close releases the parsers. It is safe to call more than once.
func (e *Engine) Close() error {
	e.closeOnce.Do(e.parsers.close)
	return nil
}

// prefixAt returns the part of the attribute name that ends at offset.
func (e *Engine) prefixAt(source []byte, offset int, point sitter.Point) (string, error) {
	if offset == 0 || point.Column == 0 {
		return "", nil
	}

	tree, err := e.parsers.parse(source)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	root := tree.RootNode()
	before := sitter.Point{Row: point.Row, Column: point.Column - 1}
	node := root.NamedDescendantForPointRange(before, before)
	if node != nil && node.Type() == "attribute_name" && isAttribute(node.Parent()) {
		start, end := int(node.StartByte()), int(node.EndByte())
		if start < offset && offset <= end {
			return string(source[start:offset]), nil
		}
	}

	// Half-typed tags often leave the tree in error recovery.
	if root.HasError() {
		return lexicalPrefix(source[:offset]), nil
	}
	return "", nil
}

func isAttribute(n *sitter.Node) bool {
	return n != nil && n.Type() == "attribute"
}

// lexicalPrefix scans backwards from the end of head for an attribute name
// inside a start tag that is still open.
func lexicalPrefix(head []byte) string {
	start := len(head)
	for start > 0 && isNameByte(head[start-1]) {
		start--
	}
	if start == len(head) || start == 0 || !isSpace(head[start-1]) {
		return ""
	}

	open := bytes.LastIndexByte(head[:start], '<')
	if open < 0 || open < bytes.LastIndexByte(head[:start], '>') {
		return ""
	}
	tag := head[open:start]
	if bytes.Count(tag, []byte{'"'})%2 != 0 || bytes.Count(tag, []byte{'\''})%2 != 0 {
		return ""
	}
	return string(head[start:])
}

func isNameByte(b byte) bool {
	switch b {
	case '<', '>', '"', '\'', '=', '/':
		return false
	}
	return !isSpace(b)
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}
