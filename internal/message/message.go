package message

import (
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"
)

// Inbound is a message delivered by the transport. It is one of Request,
// Notification or Other.
type Inbound interface {
	MethodName() string
	Payload() json.RawMessage
}

// Request expects a response correlated by ID.
type Request struct {
	ID     jsonrpc2.ID
	Method string
	Params json.RawMessage
}

// Notification never gets a response.
type Notification struct {
	Method string
	Params json.RawMessage
}

// Other is anything that is neither a well-formed request nor a notification.
type Other struct {
	Method string
	Params json.RawMessage
	Reason string
}

func (r Request) MethodName() string {
	return r.Method
}

func (r Request) Payload() json.RawMessage {
	return r.Params
}

func (n Notification) MethodName() string {
	return n.Method
}

func (n Notification) Payload() json.RawMessage {
	return n.Params
}

func (o Other) MethodName() string {
	return o.Method
}

func (o Other) Payload() json.RawMessage {
	return o.Params
}

// FromJSONRPC sorts a decoded JSON-RPC request into one of the Inbound kinds.
func FromJSONRPC(req *jsonrpc2.Request) Inbound {
	var params json.RawMessage
	if req.Params != nil {
		params = *req.Params
	}

	switch {
	case req.Method == "":
		return Other{Params: params, Reason: "missing method"}
	case req.Notif:
		return Notification{Method: req.Method, Params: params}
	default:
		return Request{ID: req.ID, Method: req.Method, Params: params}
	}
}
