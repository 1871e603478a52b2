package client

import (
	"errors"

	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

// Client-side refusal reasons. None of these ever reach the wire.
var (
	ErrNoInitialTarget = errors.New("ability has no valid initial target")
	ErrActionDisabled  = errors.New("action is disabled")
	ErrNotDroppable    = errors.New("card cannot be dropped there")
)

// Composer assembles exactly one outbound request per completed user
// decision. It is stateless; multi-phase threading state (the step
// counter and the opaque choosingState token) travels through the
// prompt that requested the step.
type Composer struct{}

// Simple composes a no-target action straight from its descriptor.
func (Composer) Simple(a game.ActionDescriptor) net.Request {
	return net.Request{Type: a.Type, Payload: a.Payload}
}

// Targeted composes a single-target action once the target is picked.
func (Composer) Targeted(a game.ActionDescriptor, targetID string) net.Request {
	return net.Request{Type: a.Type, Payload: withTarget(a.Payload, targetID)}
}

// OpenAbility opens a multi-phase ability exchange. The protocol needs
// some target to open phase 1 even when the ability's own first target
// is immaterial, so the opponent's active card seeds the exchange; if
// it is absent the activation is refused client-side.
func (Composer) OpenAbility(sourceID string, opponent *game.PlayerState) (net.Request, error) {
	if opponent == nil || opponent.ActiveCard == nil {
		return net.Request{}, ErrNoInitialTarget
	}
	return net.Request{
		Type: net.ReqResolveAbilityStep,
		Payload: net.AbilityStepPayload{
			SourceInstanceID: sourceID,
			TargetInstanceID: opponent.ActiveCard.InstanceID,
			Phase:            1,
			ChoosingState:    nil, // marshals as null on the opening step
		},
	}, nil
}

// PromptStep answers a server target prompt. While a multi-phase
// ability is pending the step continues that exchange; otherwise the
// prompt belongs to an item already identified by its context, so the
// instance id is null. Either way the prompt's choosingState is echoed
// verbatim; the client never invents or mutates it.
func (Composer) PromptStep(pendingAbilitySource, targetID string, prompt *game.PromptChoice) net.Request {
	if pendingAbilitySource != "" {
		return net.Request{
			Type: net.ReqResolveAbilityStep,
			Payload: net.AbilityStepPayload{
				SourceInstanceID: pendingAbilitySource,
				TargetInstanceID: targetID,
				Phase:            prompt.Phase,
				ChoosingState:    prompt.ChoosingState,
			},
		}
	}
	return net.Request{
		Type: net.ReqPlayItemCard,
		Payload: net.PlayItemPayload{
			InstanceID:       nil,
			TargetInstanceID: targetID,
			Phase:            prompt.Phase,
			ChoosingState:    prompt.ChoosingState,
		},
	}
}

// ResolutionAction merges a resolution action's static descriptor
// fields with the picked target (empty when none is required).
func (Composer) ResolutionAction(a game.ActionDescriptor, targetID string) net.Request {
	return net.Request{
		Type: net.ReqPerformResolutionAction,
		Payload: net.ResolutionActionPayload{
			ActionType:       a.Type,
			SourceCardID:     a.SourceCardID,
			TargetInstanceID: targetID,
			Data:             a.Payload,
		},
	}
}

// ItemDrop composes an approved drag-and-drop item play. The caller
// must have run the drop rules first.
func (Composer) ItemDrop(item *game.CardInstance, zone game.DropZone, ownerPlayerID string) net.Request {
	var index *int
	if zone.Zone == game.ZoneBench {
		idx := zone.Index
		index = &idx
	}
	id := item.InstanceID
	return net.Request{
		Type: net.ReqPlayItemCard,
		Payload: net.PlayItemPayload{
			InstanceID: &id,
			Target: &net.ItemTarget{
				PlayerID: ownerPlayerID,
				Zone:     zone.Zone,
				Index:    index,
			},
		},
	}
}

// PlayerDrop composes an approved drag-and-drop of a Player card. The
// destination and phase pick the request: setup placement claims the
// initial active, later active placement promotes, bench placement
// fills the slot.
func (Composer) PlayerDrop(card *game.CardInstance, zone game.DropZone, phase game.Phase) net.Request {
	switch zone.Zone {
	case game.ZoneBench:
		return net.Request{
			Type:    net.ReqPlayCardToBench,
			Payload: net.BenchPayload{InstanceID: card.InstanceID, Index: zone.Index},
		}
	case game.ZoneActive:
		if phase == game.PhaseSetup {
			return net.Request{Type: net.ReqSetInitialActive, Payload: net.CardPayload{InstanceID: card.InstanceID}}
		}
		return net.Request{Type: net.ReqPlayCardToActive, Payload: net.CardPayload{InstanceID: card.InstanceID}}
	}
	// Drop rules admit no other player-card destination.
	return net.Request{Type: net.ReqPlayCardFromHand, Payload: net.CardPayload{InstanceID: card.InstanceID}}
}

// SupportDrop composes an approved support placement.
func (Composer) SupportDrop(card *game.CardInstance) net.Request {
	return net.Request{Type: net.ReqPlaySupportCard, Payload: net.CardPayload{InstanceID: card.InstanceID}}
}

// ClearPrompt acknowledges a view-only reveal so the turn can proceed.
func (Composer) ClearPrompt(prompt *game.PromptChoice) net.Request {
	return net.Request{Type: net.ReqClearPrompt, Payload: net.ClearPromptPayload{Phase: prompt.Phase}}
}

func withTarget(payload map[string]any, targetID string) map[string]any {
	merged := make(map[string]any, len(payload)+1)
	for k, v := range payload {
		merged[k] = v
	}
	merged["target"] = targetID
	return merged
}
