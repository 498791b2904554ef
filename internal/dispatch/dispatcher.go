package dispatch

import (
	"errors"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxls/internal/document"
	"hxls/internal/htmx"
	"hxls/internal/message"
	"hxls/internal/trigger"
)

// CompletionEngine computes completion items for a document position.
type CompletionEngine interface {
	Complete(params protocol.TextDocumentPositionParams, docs document.Reader) ([]htmx.Attribute, error)
}

// Logger is the part of commonlog.Logger the dispatcher writes to.
type Logger interface {
	Errorf(format string, values ...any)
	Warningf(format string, values ...any)
	Infof(format string, values ...any)
	Debugf(format string, values ...any)
}

// Dispatcher routes inbound messages to store mutations or the completion
// engine. All methods are safe for concurrent use.
type Dispatcher struct {
	docs       *document.Store
	engine     CompletionEngine
	log        Logger
	strictSync bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger replaces the default "hxls.dispatch" logger.
func WithLogger(log Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithStrictSync rejects didChange notifications carrying more than one
// content change instead of applying the first one.
func WithStrictSync(strict bool) Option {
	return func(d *Dispatcher) {
		d.strictSync = strict
	}
}

// New creates a Dispatcher over docs and engine.
func New(docs *document.Store, engine CompletionEngine, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		docs:   docs,
		engine: engine,
		log:    commonlog.GetLogger("hxls.dispatch"),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Dispatch forwards msg to the entry point for its kind.
func (d *Dispatcher) Dispatch(msg message.Inbound) Outcome {
	switch m := msg.(type) {
	case message.Request:
		return d.OnRequest(m)
	case message.Notification:
		return d.OnNotification(m)
	case message.Other:
		return d.OnOther(m)
	default:
		d.log.Warningf("unhandled message type %T", msg)
		return nil
	}
}

// OnRequest answers completion requests. Everything else yields nil.
func (d *Dispatcher) OnRequest(req message.Request) Outcome {
	switch c := message.ClassifyRequest(req).(type) {
	case message.CompletionRequest:
		return d.complete(c)
	case message.Unhandled:
		d.log.Warningf("unhandled request %s (id %s): %v", c.Method, req.ID, c.Reason)
	}
	return nil
}

// OnNotification applies document synchronization. Notifications never
// produce an outcome.
func (d *Dispatcher) OnNotification(noti message.Notification) Outcome {
	switch c := message.ClassifyNotification(noti).(type) {
	case message.SyncEvent:
		d.sync(c)
	case message.CloseEvent:
		d.docs.Delete(c.URI)
		d.log.Debugf("closed %s", c.URI)
	case message.Unhandled:
		if errors.Is(c.Reason, message.ErrUnknownMethod) {
			d.log.Debugf("unhandled notification %s", c.Method)
		} else {
			d.log.Warningf("ignoring notification %s: %v", c.Method, c.Reason)
		}
	}
	return nil
}

// OnOther logs messages that are neither requests nor notifications.
func (d *Dispatcher) OnOther(msg message.Other) Outcome {
	d.log.Warningf("unhandled message %q: %s", msg.Method, msg.Reason)
	return nil
}

func (d *Dispatcher) sync(event message.SyncEvent) {
	if event.Discarded > 0 {
		if d.strictSync {
			d.log.Warningf("rejecting change to %s: %d content changes, expected full document sync", event.URI, event.Discarded+1)
			return
		}
		d.log.Warningf("more than one content change for %s, dropped %d", event.URI, event.Discarded)
	}
	d.docs.Upsert(event.URI, event.Text)
}

func (d *Dispatcher) complete(req message.CompletionRequest) Outcome {
	if trigger.Decide(req.Params.Context) == trigger.Suppress {
		d.log.Debugf("suppressed completion %s", req.ID)
		return nil
	}

	items, err := d.engine.Complete(req.Params.TextDocumentPositionParams, d.docs)
	if err != nil {
		d.log.Warningf("completion %s failed: %v", req.ID, err)
		items = []htmx.Attribute{}
	}
	if items == nil {
		items = []htmx.Attribute{}
	}
	return AttributeCompletion{Items: items, ID: req.ID}
}
