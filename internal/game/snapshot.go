package game

import (
	"encoding/json"
	"sort"
)

// GameSnapshot is the complete authoritative game state as pushed by
// the server. The client replaces its copy wholesale on every push and
// never patches individual fields, so it can never observe a torn mix
// of old and new state.
type GameSnapshot struct {
	Phase              Phase                   `json:"phase"`
	Turn               int                     `json:"turn"`
	ActivePlayerID     string                  `json:"activePlayerId"`
	PlayerInResolution string                  `json:"playerInResolution,omitempty"`
	ResolutionActions  []ActionDescriptor      `json:"resolutionActions,omitempty"`
	Players            map[string]*PlayerState `json:"players"`
	Log                []LogEntry              `json:"log,omitempty"`
	Winner             string                  `json:"winner,omitempty"`
}

// LogEntry is one line of the server's append-only game log.
type LogEntry struct {
	Turn     int    `json:"turn"`
	PlayerID string `json:"playerId,omitempty"`
	Message  string `json:"message"`
}

// PlayerState is one player's side of the board.
type PlayerState struct {
	SessionID   string `json:"sessionId"`
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`

	Hand        []*CardInstance          `json:"hand,omitempty"`
	Bench       [BenchSize]*CardInstance `json:"bench"`
	ActiveCard  *CardInstance            `json:"activeCard,omitempty"`
	SupportCard *CardInstance            `json:"supportCard,omitempty"`

	DeckCount int             `json:"deckCount"`
	Discard   []*CardInstance `json:"discard,omitempty"` // head is the top card

	Points          int  `json:"points"`
	HasChosenActive bool `json:"hasChosenActive"`
	IsReady         bool `json:"isReady"`
}

// TopDiscard returns the top card of the discard pile, or nil.
func (p *PlayerState) TopDiscard() *CardInstance {
	if len(p.Discard) == 0 {
		return nil
	}
	return p.Discard[0]
}

// BenchCount returns the number of occupied bench slots.
func (p *PlayerState) BenchCount() int {
	count := 0
	for _, c := range p.Bench {
		if c != nil {
			count++
		}
	}
	return count
}

// FreeBenchSlot returns the index of the first empty bench slot, or -1.
func (p *PlayerState) FreeBenchSlot() int {
	for i, c := range p.Bench {
		if c == nil {
			return i
		}
	}
	return -1
}

// CardInstance is one physical copy of a card in play. Once a card
// leaves the hand, InstanceID is the only identifier the interaction
// layer reasons about; DefinitionID is shared across copies and only
// used for display lookups.
type CardInstance struct {
	DefinitionID string   `json:"definitionId"`
	InstanceID   string   `json:"instanceId"`
	Name         string   `json:"name,omitempty"`
	CardType     CardType `json:"cardType"`

	AttachedItems []*CardInstance    `json:"attachedItems,omitempty"`
	StatusEffects []StatusEffect     `json:"statusEffects,omitempty"`
	Actions       []ActionDescriptor `json:"availableActions,omitempty"`

	// ValidTargets declares where this card may be played, as
	// declarative zone tokens or explicit instance ids. Only set on
	// Item cards.
	ValidTargets []string `json:"validTargets,omitempty"`

	// InitiatesUI tags cards whose drop target opens a passive viewer
	// (e.g. "inspector") instead of issuing a game action.
	InitiatesUI string `json:"initiatesUI,omitempty"`
}

// StatusEffect is a temporary modifier applied to a card.
type StatusEffect struct {
	Kind     string `json:"kind"`
	Value    int    `json:"numericValue,omitempty"`
	Duration int    `json:"remainingDuration,omitempty"`
}

// ActionDescriptor describes one action a card currently offers.
type ActionDescriptor struct {
	Type           string   `json:"type"`
	RequiresTarget bool     `json:"requiresTarget,omitempty"`
	IsMultiPhase   bool     `json:"isMultiPhase,omitempty"`
	ValidTargets   []string `json:"validTargets,omitempty"`

	// SourceCardID is set only on resolution-phase actions.
	SourceCardID string `json:"sourceCardId,omitempty"`

	Disabled        bool           `json:"disabled,omitempty"`
	DisabledMessage string         `json:"disabledMessage,omitempty"`
	Payload         map[string]any `json:"payload,omitempty"`
}

// PromptChoice is a server-issued request for one more piece of input
// to complete an in-progress server-side action. It is ephemeral: the
// next snapshot push clears it unconditionally.
type PromptChoice struct {
	ChoiceType ChoiceType `json:"choiceType"`
	Phase      int        `json:"phase"`
	Options    []string   `json:"options,omitempty"`
	Title      string     `json:"title,omitempty"`

	// Cards is only set for pile selection; the full objects to
	// display read-only.
	Cards []*CardInstance `json:"cards,omitempty"`

	// ChoosingState is an opaque continuation token. The client must
	// echo it back unmodified on the next step and never inspect it.
	ChoosingState json.RawMessage `json:"choosingState,omitempty"`
}

// AllowsOption reports whether id is one of the prompt's options.
func (p *PromptChoice) AllowsOption(id string) bool {
	for _, opt := range p.Options {
		if opt == id {
			return true
		}
	}
	return false
}

// ViewOnly reports whether the prompt offers no choices at all, i.e.
// it is a reveal the player only acknowledges.
func (p *PromptChoice) ViewOnly() bool {
	return len(p.Options) == 0
}

// --- Snapshot lookups ---

// Location identifies where in the snapshot a card instance currently
// sits.
type Location struct {
	PlayerID string
	Zone     ZoneKind
	Index    int // bench slot or hand/discard position, -1 otherwise
}

// Player returns the player with the given session id, or nil.
func (s *GameSnapshot) Player(sessionID string) *PlayerState {
	if s == nil {
		return nil
	}
	return s.Players[sessionID]
}

// PlayerIDs returns all player session ids in sorted order. Sorting
// gives spectators a stable notion of "first" and "second" player.
func (s *GameSnapshot) PlayerIDs() []string {
	ids := make([]string, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FindInstance looks up a card anywhere in the snapshot: hands,
// benches, active and support slots, discard piles, and attachments.
// A stale instance id simply reports false, never panics.
func (s *GameSnapshot) FindInstance(instanceID string) (*CardInstance, Location, bool) {
	if s == nil || instanceID == "" {
		return nil, Location{}, false
	}
	for _, pid := range s.PlayerIDs() {
		p := s.Players[pid]
		for i, c := range p.Hand {
			if found, ok := matchWithAttachments(c, instanceID); ok {
				return found, Location{PlayerID: pid, Zone: ZoneHand, Index: i}, true
			}
		}
		for i, c := range p.Bench {
			if found, ok := matchWithAttachments(c, instanceID); ok {
				return found, Location{PlayerID: pid, Zone: ZoneBench, Index: i}, true
			}
		}
		if found, ok := matchWithAttachments(p.ActiveCard, instanceID); ok {
			return found, Location{PlayerID: pid, Zone: ZoneActive, Index: -1}, true
		}
		if found, ok := matchWithAttachments(p.SupportCard, instanceID); ok {
			return found, Location{PlayerID: pid, Zone: ZoneSupport, Index: -1}, true
		}
		for i, c := range p.Discard {
			if found, ok := matchWithAttachments(c, instanceID); ok {
				return found, Location{PlayerID: pid, Zone: ZoneDiscard, Index: i}, true
			}
		}
	}
	return nil, Location{}, false
}

func matchWithAttachments(c *CardInstance, instanceID string) (*CardInstance, bool) {
	if c == nil {
		return nil, false
	}
	if c.InstanceID == instanceID {
		return c, true
	}
	for _, item := range c.AttachedItems {
		if item != nil && item.InstanceID == instanceID {
			return item, true
		}
	}
	return nil, false
}
