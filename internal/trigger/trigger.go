package trigger

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// Decision tells the dispatcher whether a completion attempt is worth making.
type Decision int

const (
	// Suppress answers the request with nothing.
	Suppress Decision = iota
	// Proceed runs the completion engine.
	Proceed
)

func (d Decision) String() string {
	if d == Proceed {
		return "proceed"
	}
	return "suppress"
}

// Decide proceeds on explicit invocation or a trigger character. Re-filter
// requests (TriggerForIncompleteCompletions), unknown kinds and requests
// without a context are suppressed.
func Decide(context *protocol.CompletionContext) Decision {
	if context == nil {
		return Suppress
	}
	switch context.TriggerKind {
	case protocol.CompletionTriggerKindInvoked,
		protocol.CompletionTriggerKindTriggerCharacter:
		return Proceed
	default:
		return Suppress
	}
}
