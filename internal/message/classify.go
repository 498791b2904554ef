package message

import (
	"encoding/json"
	"fmt"

	gojson "github.com/goccy/go-json"
	"github.com/sourcegraph/jsonrpc2"
	"github.com/tidwall/gjson"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const (
	MethodDidOpen    = "textDocument/didOpen"
	MethodDidChange  = "textDocument/didChange"
	MethodDidClose   = "textDocument/didClose"
	MethodCompletion = "textDocument/completion"
)

// Classification is the result of inspecting an Inbound message.
type Classification interface {
	classification()
}

// SyncEvent carries the full new text of a document. Discarded counts the
// content changes that followed the applied one.
type SyncEvent struct {
	URI       string
	Text      string
	Discarded int
}

// CloseEvent reports that the editor closed a document.
type CloseEvent struct {
	URI string
}

// CompletionRequest is a decoded textDocument/completion request.
type CompletionRequest struct {
	ID     jsonrpc2.ID
	Params protocol.CompletionParams
}

// Unhandled is everything the server does not act on.
type Unhandled struct {
	Method string
	Reason error
}

func (SyncEvent) classification()         {}
func (CloseEvent) classification()        {}
func (CompletionRequest) classification() {}
func (Unhandled) classification()         {}

// ClassifyRequest maps a request onto the request half of the method table.
func ClassifyRequest(req Request) Classification {
	switch req.Method {
	case MethodCompletion:
		params, err := decodeCompletion(req.Params)
		if err != nil {
			return Unhandled{Method: req.Method, Reason: err}
		}
		return CompletionRequest{ID: req.ID, Params: params}
	default:
		return Unhandled{Method: req.Method, Reason: ErrUnknownMethod}
	}
}

// ClassifyNotification maps a notification onto the notification half of
// the method table.
func ClassifyNotification(noti Notification) Classification {
	var (
		c   Classification
		err error
	)
	switch noti.Method {
	case MethodDidChange:
		c, err = decodeDidChange(noti.Params)
	case MethodDidOpen:
		c, err = decodeDidOpen(noti.Params)
	case MethodDidClose:
		c, err = decodeDidClose(noti.Params)
	default:
		err = ErrUnknownMethod
	}
	if err != nil {
		return Unhandled{Method: noti.Method, Reason: err}
	}
	return c
}

type didChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

func decodeDidChange(raw json.RawMessage) (Classification, error) {
	if err := require(raw,
		field{"textDocument.uri", gjson.String},
		field{"contentChanges", gjson.JSON},
	); err != nil {
		return nil, err
	}
	changes := gjson.GetBytes(raw, "contentChanges")
	if !changes.IsArray() {
		return nil, fmt.Errorf("%w: contentChanges is not an array", ErrMalformedPayload)
	}
	if len(changes.Array()) == 0 {
		return nil, ErrNoContentChanges
	}
	if err := require(raw, field{"contentChanges.0.text", gjson.String}); err != nil {
		return nil, err
	}

	var params didChangeParams
	if err := gojson.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return SyncEvent{
		URI:       params.TextDocument.URI,
		Text:      params.ContentChanges[0].Text,
		Discarded: len(params.ContentChanges) - 1,
	}, nil
}

func decodeDidOpen(raw json.RawMessage) (Classification, error) {
	if err := require(raw,
		field{"textDocument.uri", gjson.String},
		field{"textDocument.text", gjson.String},
	); err != nil {
		return nil, err
	}
	var params protocol.DidOpenTextDocumentParams
	if err := gojson.Unmarshal(raw, &params); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return SyncEvent{URI: params.TextDocument.URI, Text: params.TextDocument.Text}, nil
}

func decodeDidClose(raw json.RawMessage) (Classification, error) {
	if err := require(raw, field{"textDocument.uri", gjson.String}); err != nil {
		return nil, err
	}
	return CloseEvent{URI: gjson.GetBytes(raw, "textDocument.uri").String()}, nil
}

func decodeCompletion(raw json.RawMessage) (protocol.CompletionParams, error) {
	var params protocol.CompletionParams
	if err := require(raw,
		field{"textDocument.uri", gjson.String},
		field{"position.line", gjson.Number},
		field{"position.character", gjson.Number},
	); err != nil {
		return params, err
	}
	if ctx := gjson.GetBytes(raw, "context"); ctx.Exists() && ctx.Type != gjson.Null {
		if !ctx.IsObject() || ctx.Get("triggerKind").Type != gjson.Number {
			return params, fmt.Errorf("%w: context.triggerKind must be a number", ErrMalformedPayload)
		}
	}
	if err := gojson.Unmarshal(raw, &params); err != nil {
		return params, fmt.Errorf("%w: %w", ErrMalformedPayload, err)
	}
	return params, nil
}

type field struct {
	path string
	kind gjson.Type
}

// require checks that raw is valid JSON holding every field with the given
// type. gjson.JSON only asserts presence of an object or array.
func require(raw json.RawMessage, fields ...field) error {
	if !gjson.ValidBytes(raw) {
		return fmt.Errorf("%w: invalid JSON", ErrMalformedPayload)
	}
	for _, f := range fields {
		if got := gjson.GetBytes(raw, f.path); got.Type != f.kind {
			return fmt.Errorf("%w: %s must be %s, got %s", ErrMalformedPayload, f.path, f.kind, got.Type)
		}
	}
	return nil
}
