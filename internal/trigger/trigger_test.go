package trigger_test

import (
	"testing"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxls/internal/trigger"
)

func TestDecide(t *testing.T) {
	dash := "-"
	tests := []struct {
		name    string
		context *protocol.CompletionContext
		want    trigger.Decision
	}{
		{"no context", nil, trigger.Suppress},
		{"invoked", &protocol.CompletionContext{TriggerKind: protocol.CompletionTriggerKindInvoked}, trigger.Proceed},
		{"trigger character", &protocol.CompletionContext{TriggerKind: protocol.CompletionTriggerKindTriggerCharacter, TriggerCharacter: &dash}, trigger.Proceed},
		{"incomplete re-filter", &protocol.CompletionContext{TriggerKind: protocol.CompletionTriggerKindTriggerForIncompleteCompletions}, trigger.Suppress},
		{"zero kind", &protocol.CompletionContext{}, trigger.Suppress},
		{"unknown kind", &protocol.CompletionContext{TriggerKind: 42}, trigger.Suppress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trigger.Decide(tt.context); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}
