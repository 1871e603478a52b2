package game

// --- Enums ---

// Phase is a top-level game phase as reported by the server.
type Phase string

const (
	PhaseSetup      Phase = "setup"
	PhaseMain       Phase = "main_phase"
	PhaseResolution Phase = "action_resolution_phase"
	PhaseGameOver   Phase = "game_over"
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "Setup"
	case PhaseMain:
		return "Main Phase"
	case PhaseResolution:
		return "Resolution Phase"
	case PhaseGameOver:
		return "Game Over"
	default:
		return string(p)
	}
}

// CardType classifies a card definition.
type CardType string

const (
	CardTypePlayer CardType = "Player"
	CardTypeItem   CardType = "Item"
	CardTypeBase   CardType = "Base"
	CardTypeTeam   CardType = "Team"
)

// Owner distinguishes the two sides of the board relative to the
// viewing player. It is the prefix of declarative target tokens and
// drop zone ids.
type Owner string

const (
	OwnerMine     Owner = "my"
	OwnerOpponent Owner = "opponent"
)

// ZoneKind names a placement region within one player's side.
type ZoneKind string

const (
	ZoneBench   ZoneKind = "bench"
	ZoneActive  ZoneKind = "active"
	ZoneSupport ZoneKind = "support"
	ZoneHand    ZoneKind = "hand"
	ZoneDiscard ZoneKind = "discard"
)

// ChoiceType identifies what kind of input a server prompt is asking for.
type ChoiceType string

const (
	// ChoiceTarget asks the player to pick one instance id from Options.
	ChoiceTarget ChoiceType = "target"
	// ChoicePileSelection shows a pile of cards; it may be view-only.
	ChoicePileSelection ChoiceType = "card_pile_selection"
)

// InitiatesInspector tags a card whose drop target opens the read-only
// inspector instead of issuing a game action.
const InitiatesInspector = "inspector"

// BenchSize is the fixed number of bench slots per player.
const BenchSize = 4
