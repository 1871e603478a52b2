package client

import (
	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

// PromptCommand is the reconciler's instruction to the state machine
// for one incoming prompt. Exactly one of Targeting and Viewer is set.
type PromptCommand struct {
	// Targeting overrides any locally-initiated targeting with the
	// prompt's options.
	Targeting *PromptTargeting

	// Viewer opens the read-only pile viewer and suppresses targeting.
	Viewer *PromptViewer
}

// PromptTargeting carries the prompt-sourced targeting override. Phase
// and ChoosingState are threaded into the next dispatched step.
type PromptTargeting struct {
	Prompt *game.PromptChoice
}

// PromptViewer carries a pile to display read-only.
type PromptViewer struct {
	Title  string
	Cards  []*game.CardInstance
	Prompt *game.PromptChoice
}

// ReconcilePrompt maps a server prompt onto a state machine command. A
// prompt always supersedes locally-initiated targeting.
func ReconcilePrompt(p *game.PromptChoice) PromptCommand {
	if p.ChoiceType == game.ChoicePileSelection {
		return PromptCommand{Viewer: &PromptViewer{Title: p.Title, Cards: p.Cards, Prompt: p}}
	}
	return PromptCommand{Targeting: &PromptTargeting{Prompt: p}}
}

// ViewerCloseRequest decides what closing the pile viewer owes the
// server. A view-only reveal is not a decision point and must not
// block the game, so it is acknowledged with a clear-prompt request;
// a pile the player still has to choose from sends nothing.
func ViewerCloseRequest(p *game.PromptChoice) (net.Request, bool) {
	if p == nil || !p.ViewOnly() {
		return net.Request{}, false
	}
	return Composer{}.ClearPrompt(p), true
}
