package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

func TestReconcileTargetPrompt(t *testing.T) {
	p := &game.PromptChoice{ChoiceType: game.ChoiceTarget, Phase: 2, Options: []string{"a", "b"}}
	cmd := ReconcilePrompt(p)

	require.NotNil(t, cmd.Targeting)
	assert.Nil(t, cmd.Viewer)
	assert.Same(t, p, cmd.Targeting.Prompt)
}

func TestReconcilePilePrompt(t *testing.T) {
	cards := []*game.CardInstance{playerCard("revealed")}
	p := &game.PromptChoice{ChoiceType: game.ChoicePileSelection, Title: "Deck top", Cards: cards}
	cmd := ReconcilePrompt(p)

	require.NotNil(t, cmd.Viewer)
	assert.Nil(t, cmd.Targeting)
	assert.Equal(t, "Deck top", cmd.Viewer.Title)
	assert.Equal(t, cards, cmd.Viewer.Cards)
}

func TestViewerCloseRequest(t *testing.T) {
	// A view-only reveal owes the server an acknowledgment.
	reveal := &game.PromptChoice{ChoiceType: game.ChoicePileSelection, Phase: 4, Title: "Reveal"}
	req, ok := ViewerCloseRequest(reveal)
	require.True(t, ok)
	assert.Equal(t, net.ReqClearPrompt, req.Type)
	assert.Equal(t, net.ClearPromptPayload{Phase: 4}, req.Payload)

	// A pile with pending choices sends nothing.
	choice := &game.PromptChoice{ChoiceType: game.ChoicePileSelection, Options: []string{"a"}}
	_, ok = ViewerCloseRequest(choice)
	assert.False(t, ok)

	_, ok = ViewerCloseRequest(nil)
	assert.False(t, ok)
}
