package server

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sourcegraph/jsonrpc2"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxls/internal/dispatch"
	"hxls/internal/htmx"
	"hxls/internal/message"
)

// Lifecycle methods are answered by the glsp protocol handler; everything
// else goes through the dispatcher.
var lifecycle = map[string]struct{}{
	"initialize":  {},
	"initialized": {},
	"shutdown":    {},
	"$/setTrace":  {},
}

// Handle implements jsonrpc2.Handler.
func (ss *session) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	// The protocol handler refuses everything but initialize after
	// shutdown, so exit never reaches it.
	if req.Method == "exit" {
		ss.log.Info("Client exited.")
		ss.signalExit()
		return
	}
	if _, ok := lifecycle[req.Method]; ok {
		ss.handleLifecycle(ctx, conn, req)
		return
	}

	outcome := ss.dispatcher.Load().Dispatch(message.FromJSONRPC(req))
	if outcome == nil {
		return
	}

	result, err := encode(outcome)
	if err != nil {
		ss.log.Errorf("%s", err)
		return
	}
	if err := conn.Reply(ctx, outcome.RequestID(), result); err != nil {
		ss.log.Errorf("reply to %s failed: %v", outcome.RequestID(), err)
	}
}

func (ss *session) handleLifecycle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	var params json.RawMessage
	if req.Params != nil {
		params = *req.Params
	}

	glspContext := &glsp.Context{
		Method: req.Method,
		Params: params,
		Notify: func(method string, params any) {
			if err := conn.Notify(ctx, method, params); err != nil {
				ss.log.Errorf("notify %s failed: %v", method, err)
			}
		},
		Call: func(method string, params any, result any) {
			if err := conn.Call(ctx, method, params, result); err != nil {
				ss.log.Errorf("call %s failed: %v", method, err)
			}
		},
	}

	r, validMethod, validParams, err := ss.handler.Handle(glspContext)
	if req.Notif {
		if err != nil {
			ss.log.Errorf("%s: %v", req.Method, err)
		}
		return
	}

	var replyErr error
	switch {
	case !validMethod:
		replyErr = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeMethodNotFound,
			Message: fmt.Sprintf("method not supported: %s", req.Method),
		})
	case !validParams:
		replyErr = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidParams,
			Message: fmt.Sprintf("invalid params for %s", req.Method),
		})
	case err != nil:
		replyErr = conn.ReplyWithError(ctx, req.ID, &jsonrpc2.Error{
			Code:    jsonrpc2.CodeInvalidRequest,
			Message: err.Error(),
		})
	default:
		replyErr = conn.Reply(ctx, req.ID, r)
	}
	if replyErr != nil {
		ss.log.Errorf("reply to %s failed: %v", req.Method, replyErr)
	}
}

// encode turns an outcome into the result sent on the wire.
func encode(outcome dispatch.Outcome) (any, error) {
	switch o := outcome.(type) {
	case dispatch.AttributeCompletion:
		return completionItems(o.Items), nil
	default:
		return nil, fmt.Errorf("no encoding for outcome %T", outcome)
	}
}

func completionItems(attributes []htmx.Attribute) []protocol.CompletionItem {
	kind := protocol.CompletionItemKindProperty
	items := make([]protocol.CompletionItem, len(attributes))
	for i, a := range attributes {
		items[i] = protocol.CompletionItem{
			Label: a.Name,
			Kind:  &kind,
			Documentation: protocol.MarkupContent{
				Kind:  protocol.MarkupKindMarkdown,
				Value: a.Description,
			},
		}
	}
	return items
}
