package htmx

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/html"
)

var lang = html.GetLanguage()

// ErrPoolClosed is returned when parsing after the pool was closed.
var ErrPoolClosed = fmt.Errorf("parser pool closed")

// parserPool hands out HTML parsers so concurrent completions never share one.
type parserPool struct {
	pool chan *sitter.Parser
	size int
}

func newParserPool(n int) *parserPool {
	pp := &parserPool{
		pool: make(chan *sitter.Parser, n),
		size: n,
	}
	for i := 0; i < n; i++ {
		p := sitter.NewParser()
		p.SetLanguage(lang)
		pp.pool <- p
	}
	return pp
}

// parse builds a fresh syntax tree. The caller closes the tree.
func (pp *parserPool) parse(source []byte) (*sitter.Tree, error) {
	p, ok := <-pp.pool
	if !ok {
		return nil, ErrPoolClosed
	}
	defer func() { pp.pool <- p }()

	tree, err := p.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	return tree, nil
}

// close waits for every parser to come back, then releases them.
func (pp *parserPool) close() {
	for i := 0; i < pp.size; i++ {
		p := <-pp.pool
		p.Close()
	}
	close(pp.pool)
}
