package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

func TestComposeSimpleAndTargeted(t *testing.T) {
	c := Composer{}

	attack := game.ActionDescriptor{Type: net.ReqPerformAttack, Payload: map[string]any{"attackIndex": 1}}
	req := c.Simple(attack)
	assert.Equal(t, net.ReqPerformAttack, req.Type)
	assert.Equal(t, map[string]any{"attackIndex": 1}, req.Payload)

	req = c.Targeted(attack, "opp-active")
	payload, ok := req.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "opp-active", payload["target"])
	assert.Equal(t, 1, payload["attackIndex"])
	assert.NotContains(t, attack.Payload, "target", "descriptor payload is not mutated")
}

func TestOpenAbilitySeedsOpponentActive(t *testing.T) {
	c := Composer{}
	opp := &game.PlayerState{SessionID: "p2", ActiveCard: playerCard("opp-active")}

	req, err := c.OpenAbility("source-1", opp)
	require.NoError(t, err)
	assert.Equal(t, net.ReqResolveAbilityStep, req.Type)

	payload := req.Payload.(net.AbilityStepPayload)
	assert.Equal(t, "source-1", payload.SourceInstanceID)
	assert.Equal(t, "opp-active", payload.TargetInstanceID)
	assert.Equal(t, 1, payload.Phase)
	assert.Nil(t, payload.ChoosingState)

	// The opening step's choosingState goes over the wire as null.
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"choosingState":null`)
}

func TestOpenAbilityRefusedWithoutTarget(t *testing.T) {
	c := Composer{}

	_, err := c.OpenAbility("source-1", &game.PlayerState{SessionID: "p2"})
	assert.ErrorIs(t, err, ErrNoInitialTarget)

	_, err = c.OpenAbility("source-1", nil)
	assert.ErrorIs(t, err, ErrNoInitialTarget)
}

func TestPromptStepEchoesChoosingState(t *testing.T) {
	c := Composer{}
	token := json.RawMessage(`{"x":1}`)
	prompt := &game.PromptChoice{
		ChoiceType:    game.ChoiceTarget,
		Phase:         2,
		Options:       []string{"c1", "c2"},
		ChoosingState: token,
	}

	t.Run("item prompt leaves the instance id null", func(t *testing.T) {
		req := c.PromptStep("", "c2", prompt)
		assert.Equal(t, net.ReqPlayItemCard, req.Type)

		payload := req.Payload.(net.PlayItemPayload)
		assert.Nil(t, payload.InstanceID)
		assert.Equal(t, "c2", payload.TargetInstanceID)
		assert.Equal(t, 2, payload.Phase)
		assert.Equal(t, token, payload.ChoosingState, "token forwarded byte for byte")
	})

	t.Run("pending ability continues the exchange", func(t *testing.T) {
		req := c.PromptStep("source-1", "c1", prompt)
		assert.Equal(t, net.ReqResolveAbilityStep, req.Type)

		payload := req.Payload.(net.AbilityStepPayload)
		assert.Equal(t, "source-1", payload.SourceInstanceID)
		assert.Equal(t, "c1", payload.TargetInstanceID)
		assert.Equal(t, 2, payload.Phase)
		assert.Equal(t, token, payload.ChoosingState)
	})
}

func TestComposeItemDrop(t *testing.T) {
	c := Composer{}
	item := itemCard("glove", "opponent_active")

	t.Run("active slot carries a null index", func(t *testing.T) {
		req := c.ItemDrop(item, game.DropZone{Owner: game.OwnerOpponent, Zone: game.ZoneActive, Index: -1}, "p2")
		assert.Equal(t, net.ReqPlayItemCard, req.Type)

		payload := req.Payload.(net.PlayItemPayload)
		require.NotNil(t, payload.InstanceID)
		assert.Equal(t, "glove", *payload.InstanceID)
		require.NotNil(t, payload.Target)
		assert.Equal(t, "p2", payload.Target.PlayerID)
		assert.Equal(t, game.ZoneActive, payload.Target.Zone)
		assert.Nil(t, payload.Target.Index)

		data, err := json.Marshal(payload)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"index":null`)
	})

	t.Run("bench slot carries its index", func(t *testing.T) {
		req := c.ItemDrop(item, game.DropZone{Owner: game.OwnerMine, Zone: game.ZoneBench, Index: 2}, "p1")
		payload := req.Payload.(net.PlayItemPayload)
		require.NotNil(t, payload.Target.Index)
		assert.Equal(t, 2, *payload.Target.Index)
	})
}

func TestComposePlayerDrop(t *testing.T) {
	c := Composer{}
	card := playerCard("rookie")

	req := c.PlayerDrop(card, game.DropZone{Owner: game.OwnerMine, Zone: game.ZoneBench, Index: 1}, game.PhaseMain)
	assert.Equal(t, net.ReqPlayCardToBench, req.Type)
	assert.Equal(t, net.BenchPayload{InstanceID: "rookie", Index: 1}, req.Payload)

	req = c.PlayerDrop(card, game.DropZone{Owner: game.OwnerMine, Zone: game.ZoneActive, Index: -1}, game.PhaseSetup)
	assert.Equal(t, net.ReqSetInitialActive, req.Type)

	req = c.PlayerDrop(card, game.DropZone{Owner: game.OwnerMine, Zone: game.ZoneActive, Index: -1}, game.PhaseMain)
	assert.Equal(t, net.ReqPlayCardToActive, req.Type)
}

func TestComposeResolutionAction(t *testing.T) {
	c := Composer{}
	a := game.ActionDescriptor{
		Type:         "scoutReport",
		SourceCardID: "coach-1",
		Payload:      map[string]any{"depth": 2},
	}

	req := c.ResolutionAction(a, "target-9")
	assert.Equal(t, net.ReqPerformResolutionAction, req.Type)

	payload := req.Payload.(net.ResolutionActionPayload)
	assert.Equal(t, "scoutReport", payload.ActionType)
	assert.Equal(t, "coach-1", payload.SourceCardID)
	assert.Equal(t, "target-9", payload.TargetInstanceID)
	assert.Equal(t, map[string]any{"depth": 2}, payload.Data)
}
