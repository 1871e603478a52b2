package net

import (
	"encoding/json"

	"github.com/dugout-tcg/client/internal/game"
)

// Message types for the JSON protocol over the websocket.

// --- Server → Client events ---

// Server event names.
const (
	EventGameUpdated   = "game:updated"
	EventGameError     = "game:error"
	EventPromptChoice  = "game:promptChoice"
	EventShowReveal    = "game:showReveal"
	EventPlayAnimation = "game:playAnimation"
	EventShowToast     = "game:showToast"
	EventSpectateStart = "spectate:start"
)

// ServerMessage is the envelope for all server-to-client events.
type ServerMessage struct {
	Event string `json:"event"`

	// For "game:updated"
	Snapshot *game.GameSnapshot `json:"snapshot,omitempty"`

	// For "game:error"
	Message string `json:"message,omitempty"`

	// For "game:promptChoice"
	Prompt *game.PromptChoice `json:"promptChoice,omitempty"`

	// For "game:showReveal"
	Reveal *Reveal `json:"reveal,omitempty"`

	// For "game:playAnimation"; forwarded opaquely to the renderer.
	Animation json.RawMessage `json:"animation,omitempty"`

	// For "game:showToast"; forwarded opaquely to the renderer.
	Toast *Toast `json:"toast,omitempty"`

	// For "spectate:start"
	GameState *game.GameSnapshot `json:"gameState,omitempty"`
}

// Reveal is a non-interactive card reveal.
type Reveal struct {
	Title string               `json:"title"`
	Cards []*game.CardInstance `json:"cards"`
}

// Toast is a transient notice the client forwards to its renderer.
type Toast struct {
	Message string `json:"message"`
	Style   string `json:"style,omitempty"`
}

// --- Client → Server requests ---

// Outbound request types. Every game request is shaped {type, payload}.
const (
	ReqPlayCardFromHand        = "playCardFromHand"
	ReqSetInitialActive        = "setInitialActive"
	ReqPlayCardToActive        = "playCardToActive"
	ReqPlayCardToBench         = "playCardToBench"
	ReqPlaySupportCard         = "playSupportCard"
	ReqPlayItemCard            = "playItemCard"
	ReqPerformAttack           = "performAttack"
	ReqResolveAbilityStep      = "resolveAbilityStep"
	ReqRetreatActiveCard       = "retreatActiveCard"
	ReqActivateBenchCard       = "activateBenchCard"
	ReqPerformResolutionAction = "performResolutionAction"
	ReqResolvePhase            = "resolvePhase"
	ReqEndTurn                 = "endTurn"
	ReqClearPrompt             = "clearPrompt"
	ReqRejoinOrSpectate        = "game:rejoinOrSpectate"
)

// Request is the envelope for all client-to-server requests.
type Request struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// CardPayload identifies a single card instance.
type CardPayload struct {
	InstanceID string `json:"instanceId"`
}

// BenchPayload places a card into a specific bench slot.
type BenchPayload struct {
	InstanceID string `json:"instanceId"`
	Index      int    `json:"index"`
}

// ItemTarget is the destination of a drag-and-drop item play, derived
// from the drop zone.
type ItemTarget struct {
	PlayerID string        `json:"playerId"`
	Zone     game.ZoneKind `json:"zone"`
	Index    *int          `json:"index"` // null for active and support
}

// PlayItemPayload covers both item-play paths. The drag path sets
// InstanceID and Target; the prompt path leaves InstanceID null (the
// card was already identified by the prompt context) and sets
// TargetInstanceID, Phase, and the echoed ChoosingState.
type PlayItemPayload struct {
	InstanceID       *string         `json:"instanceId"`
	Target           *ItemTarget     `json:"target,omitempty"`
	TargetInstanceID string          `json:"targetInstanceId,omitempty"`
	Phase            int             `json:"phase,omitempty"`
	ChoosingState    json.RawMessage `json:"choosingState,omitempty"`
}

// AbilityStepPayload is one step of a multi-phase ability exchange.
// ChoosingState is null on the opening step and thereafter echoes the
// server's token verbatim.
type AbilityStepPayload struct {
	SourceInstanceID string          `json:"sourceInstanceId"`
	TargetInstanceID string          `json:"targetInstanceId"`
	Phase            int             `json:"phase"`
	ChoosingState    json.RawMessage `json:"choosingState"`
}

// ResolutionActionPayload merges a resolution action's static
// descriptor fields with the just-picked target.
type ResolutionActionPayload struct {
	ActionType       string         `json:"actionType"`
	SourceCardID     string         `json:"sourceCardId"`
	TargetInstanceID string         `json:"targetInstanceId,omitempty"`
	Data             map[string]any `json:"payload,omitempty"`
}

// ClearPromptPayload acknowledges a view-only prompt so the turn can
// proceed.
type ClearPromptPayload struct {
	Phase int `json:"phase"`
}

// RejoinPayload asks the server to rejoin the game as a player, or to
// start spectating when the session owns no seat.
type RejoinPayload struct {
	GameID string `json:"gameId"`
}
