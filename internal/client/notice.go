package client

import (
	"encoding/json"

	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

// Sender is the egress path for composed requests. *net.Channel
// satisfies it; tests substitute a recorder.
type Sender interface {
	Send(req net.Request)
}

// Notifier receives the UI side effects the core delegates to an
// external renderer: transient notices, the read-only card inspector,
// the pile viewer, and opaque animation triggers. The core never
// renders anything itself.
type Notifier interface {
	ShowToast(message, style string)
	ShowError(message string)
	OpenInspector(card *game.CardInstance)
	OpenPileViewer(title string, cards []*game.CardInstance)
	PlayAnimation(payload json.RawMessage)
}

// NopNotifier discards every notice.
type NopNotifier struct{}

func (NopNotifier) ShowToast(string, string)                    {}
func (NopNotifier) ShowError(string)                            {}
func (NopNotifier) OpenInspector(*game.CardInstance)            {}
func (NopNotifier) OpenPileViewer(string, []*game.CardInstance) {}
func (NopNotifier) PlayAnimation(json.RawMessage)               {}
