package dispatch

import (
	"github.com/sourcegraph/jsonrpc2"

	"hxls/internal/htmx"
)

// Outcome is the result of dispatching a message. A nil Outcome means no
// response is sent. New kinds of outcome implement this interface.
type Outcome interface {
	// RequestID is the id of the request this outcome answers.
	RequestID() jsonrpc2.ID
}

// AttributeCompletion answers a textDocument/completion request.
type AttributeCompletion struct {
	Items []htmx.Attribute
	ID    jsonrpc2.ID
}

func (c AttributeCompletion) RequestID() jsonrpc2.ID {
	return c.ID
}
