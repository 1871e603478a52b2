package client

import (
	"sync"

	"github.com/google/uuid"

	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

// Mode is the machine's current interaction state. Exactly one mode
// describes the machine at any instant.
type Mode int

const (
	ModeIdle Mode = iota
	ModeSelected
	ModeTargeting
	ModeDragging
	ModePromptOverride
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeSelected:
		return "selected"
	case ModeTargeting:
		return "targeting"
	case ModeDragging:
		return "dragging"
	case ModePromptOverride:
		return "prompt"
	default:
		return "unknown"
	}
}

// TargetingState is the machine's view of an in-progress target pick.
type TargetingState struct {
	Action     game.ActionDescriptor
	Targets    game.TargetSet
	SourceID   string
	Resolution bool // dispatch as a resolution-phase action
}

// DragState tracks one in-flight drag gesture. Its lifecycle belongs
// to the drag surface alone; neither background clicks nor snapshot
// pushes end it.
type DragState struct {
	DragID string
	Card   *game.CardInstance
}

// ResolutionState mirrors the snapshot's resolution sub-phase for the
// viewing player.
type ResolutionState struct {
	Active  bool
	Actions []game.ActionDescriptor
}

// Machine owns the ephemeral interaction state and the transition
// rules driven by clicks, drags, and server events. It computes no
// game outcomes: every completed decision becomes exactly one outbound
// request, and only the next snapshot or error event reveals what it
// did. All side effects go through the Sender and Notifier.
type Machine struct {
	mu       sync.Mutex
	store    *SnapshotStore
	sender   Sender
	notifier Notifier
	composer Composer

	sessionID string
	spectator bool

	mode       Mode
	selectedID string
	targeting  *TargetingState
	prompt     *game.PromptChoice
	drag       *DragState
	resolution ResolutionState

	// pendingAbilitySource routes target prompts: while set, prompt
	// answers continue the ability exchange instead of an item play.
	pendingAbilitySource string
}

// NewMachine wires the machine to its store, egress, and renderer.
func NewMachine(store *SnapshotStore, sender Sender, notifier Notifier, sessionID string) *Machine {
	return &Machine{
		store:     store,
		sender:    sender,
		notifier:  notifier,
		sessionID: sessionID,
	}
}

// --- Server events ---

// HandleServer consumes one inbound server event.
func (m *Machine) HandleServer(msg net.ServerMessage) {
	switch msg.Event {
	case net.EventGameUpdated:
		m.HandleSnapshot(msg.Snapshot)
	case net.EventSpectateStart:
		m.mu.Lock()
		m.spectator = true
		m.mu.Unlock()
		m.HandleSnapshot(msg.GameState)
	case net.EventGameError:
		m.notifier.ShowError(msg.Message)
	case net.EventPromptChoice:
		m.HandlePrompt(msg.Prompt)
	case net.EventShowReveal:
		if msg.Reveal != nil {
			m.notifier.OpenPileViewer(msg.Reveal.Title, msg.Reveal.Cards)
		}
	case net.EventPlayAnimation:
		m.notifier.PlayAnimation(msg.Animation)
	case net.EventShowToast:
		if msg.Toast != nil {
			m.notifier.ShowToast(msg.Toast.Message, msg.Toast.Style)
		}
	}
}

// HandleSnapshot stores the new authoritative snapshot. Any active
// prompt and locally-initiated selection are cleared; the resolution
// state is recomputed; an in-flight drag survives untouched until the
// gesture itself ends.
func (m *Machine) HandleSnapshot(snap *game.GameSnapshot) {
	if snap == nil {
		return
	}
	m.store.Apply(snap)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompt = nil
	m.selectedID = ""
	m.targeting = nil

	m.resolution = ResolutionState{
		Active:  snap.Phase == game.PhaseResolution && snap.PlayerInResolution == m.sessionID,
		Actions: snap.ResolutionActions,
	}

	// A pending ability whose source card is gone can never continue.
	if m.pendingAbilitySource != "" {
		if _, _, ok := snap.FindInstance(m.pendingAbilitySource); !ok {
			m.pendingAbilitySource = ""
		}
	}

	if m.mode != ModeDragging {
		m.mode = ModeIdle
	}
}

// HandlePrompt applies a server prompt, which always supersedes
// locally-initiated targeting. During a drag the override is deferred
// until the gesture ends.
func (m *Machine) HandlePrompt(p *game.PromptChoice) {
	if p == nil {
		return
	}
	cmd := ReconcilePrompt(p)

	m.mu.Lock()
	m.prompt = p
	m.selectedID = ""
	m.targeting = nil
	if m.mode != ModeDragging {
		m.mode = ModePromptOverride
	}
	m.mu.Unlock()

	if cmd.Viewer != nil {
		m.notifier.OpenPileViewer(cmd.Viewer.Title, cmd.Viewer.Cards)
	}
}

// --- User gestures ---

// ClickCard handles a click on the card with the given instance id.
// Stale ids (cards no longer in the snapshot) are inert.
func (m *Machine) ClickCard(instanceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.mode {
	case ModeDragging:
		// Click selection is suspended for the duration of a drag.
		return

	case ModePromptOverride:
		if m.prompt == nil || !m.prompt.AllowsOption(instanceID) {
			return
		}
		req := m.composer.PromptStep(m.pendingAbilitySource, instanceID, m.prompt)
		m.prompt = nil
		m.mode = ModeIdle
		m.sender.Send(req)

	case ModeTargeting:
		t := m.targeting
		snap := m.store.Snapshot()
		if t == nil || snap == nil {
			return
		}
		_, loc, ok := snap.FindInstance(instanceID)
		if !ok {
			return
		}
		owner := m.store.OwnerOf(m.sessionID, loc.PlayerID)
		if !t.Targets.AllowsCard(instanceID, owner, loc.Zone) {
			return
		}
		var req net.Request
		if t.Resolution {
			req = m.composer.ResolutionAction(t.Action, instanceID)
		} else {
			req = m.composer.Targeted(t.Action, instanceID)
		}
		m.targeting = nil
		m.selectedID = ""
		m.pendingAbilitySource = ""
		m.mode = ModeIdle
		m.sender.Send(req)

	case ModeSelected:
		if instanceID == m.selectedID {
			m.selectedID = ""
			m.mode = ModeIdle
			return
		}
		m.selectLocked(instanceID)

	case ModeIdle:
		m.selectLocked(instanceID)
	}
}

func (m *Machine) selectLocked(instanceID string) {
	snap := m.store.Snapshot()
	if snap == nil {
		return
	}
	if _, _, ok := snap.FindInstance(instanceID); !ok {
		return
	}
	m.selectedID = instanceID
	m.mode = ModeSelected
}

// ClickAction handles a click on one of a card's action buttons, or on
// a resolution-phase action.
func (m *Machine) ClickAction(a game.ActionDescriptor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.mode == ModeDragging || m.mode == ModePromptOverride {
		return
	}

	if a.Disabled {
		msg := a.DisabledMessage
		if msg == "" {
			msg = "That action is not available right now"
		}
		m.notifier.ShowToast(msg, "warning")
		return
	}

	// Resolution-phase actions carry their own source card.
	if a.SourceCardID != "" && m.resolution.Active {
		if a.RequiresTarget {
			m.targeting = &TargetingState{
				Action:     a,
				Targets:    game.ParseTargetSet(a.ValidTargets),
				SourceID:   a.SourceCardID,
				Resolution: true,
			}
			m.mode = ModeTargeting
			return
		}
		m.mode = ModeIdle
		m.selectedID = ""
		m.pendingAbilitySource = ""
		m.sender.Send(m.composer.ResolutionAction(a, ""))
		return
	}

	if a.IsMultiPhase {
		// The step carries its source's instance id; without a selected
		// card there is nothing to attribute it to.
		if m.selectedID == "" {
			m.notifier.ShowToast("Select the card first", "warning")
			return
		}
		req, err := m.composer.OpenAbility(m.selectedID, m.store.ProjectOpponent(m.sessionID))
		if err != nil {
			m.notifier.ShowToast("There is nothing to target", "warning")
			return
		}
		m.pendingAbilitySource = m.selectedID
		m.selectedID = ""
		m.mode = ModeIdle
		m.sender.Send(req)
		return
	}

	if a.RequiresTarget {
		m.targeting = &TargetingState{
			Action:   a,
			Targets:  game.ParseTargetSet(a.ValidTargets),
			SourceID: m.selectedID,
		}
		m.mode = ModeTargeting
		return
	}

	m.selectedID = ""
	m.pendingAbilitySource = ""
	m.mode = ModeIdle
	m.sender.Send(m.composer.Simple(a))
}

// ClickBackground cancels any local selection or targeting. It never
// ends a drag, and it cannot dismiss a server prompt: the server is
// waiting and only a snapshot or an answered step clears it.
func (m *Machine) ClickBackground() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode == ModeSelected || m.mode == ModeTargeting {
		m.selectedID = ""
		m.targeting = nil
		m.mode = ModeIdle
	}
}

// BeginDrag starts a drag gesture for the given card. It returns the
// drag id, or false when the player may not act right now.
func (m *Machine) BeginDrag(card *game.CardInstance) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if card == nil || m.mode == ModeDragging || !m.canActLocked() {
		return "", false
	}

	m.drag = &DragState{DragID: uuid.NewString(), Card: card}
	m.mode = ModeDragging
	return m.drag.DragID, true
}

// DropOn ends the drag on the given drop zone id. A drop on an
// inspector-tagged card opens the viewer without dispatching; an
// approved drop dispatches exactly one request; anything else lands
// back in idle with a rejection notice.
func (m *Machine) DropOn(zoneID string) {
	m.mu.Lock()
	if m.mode != ModeDragging || m.drag == nil {
		m.mu.Unlock()
		return
	}
	card := m.drag.Card
	m.drag = nil
	m.mode = m.restModeLocked()

	zone, err := game.ParseDropZone(zoneID)
	if err != nil {
		// Dropped outside any known zone: nothing to do.
		m.mu.Unlock()
		return
	}

	snap := m.store.Snapshot()
	var owner *game.PlayerState
	if zone.Owner == game.OwnerMine {
		owner = m.store.ProjectMine(m.sessionID)
	} else {
		owner = m.store.ProjectOpponent(m.sessionID)
	}

	if slot := zone.SlotCard(owner); slot != nil && slot.InitiatesUI == game.InitiatesInspector {
		m.mu.Unlock()
		m.notifier.OpenInspector(slot)
		return
	}

	if !game.CanDrop(card, zone, owner, snap) {
		m.mu.Unlock()
		m.notifier.ShowToast("Invalid drop", "warning")
		return
	}

	var req net.Request
	switch card.CardType {
	case game.CardTypeItem:
		req = m.composer.ItemDrop(card, zone, owner.SessionID)
	case game.CardTypePlayer:
		req = m.composer.PlayerDrop(card, zone, snap.Phase)
	default:
		req = m.composer.SupportDrop(card)
	}
	m.pendingAbilitySource = ""
	m.sender.Send(req)
	m.mu.Unlock()
}

// CancelDrag abandons the drag without dispatching.
func (m *Machine) CancelDrag() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.mode != ModeDragging {
		return
	}
	m.drag = nil
	m.mode = m.restModeLocked()
}

// CloseViewer handles the pile viewer being dismissed. A view-only
// reveal is acknowledged so the turn can proceed; a pile the player
// still must choose from stays pending.
func (m *Machine) CloseViewer() {
	m.mu.Lock()
	req, ok := ViewerCloseRequest(m.prompt)
	if ok {
		m.prompt = nil
		if m.mode == ModePromptOverride {
			m.mode = ModeIdle
		}
	}
	m.mu.Unlock()
	if ok {
		m.sender.Send(req)
	}
}

// --- Projections for renderers ---

// Mode returns the current interaction mode.
func (m *Machine) Mode() Mode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

// SelectedID returns the selected card's instance id, if any.
func (m *Machine) SelectedID() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.selectedID
}

// Targeting returns a copy of the active targeting state, if any.
func (m *Machine) Targeting() (TargetingState, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.targeting == nil {
		return TargetingState{}, false
	}
	return *m.targeting, true
}

// Prompt returns the pending server prompt, if any.
func (m *Machine) Prompt() *game.PromptChoice {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prompt
}

// Resolution returns the current resolution-phase state.
func (m *Machine) Resolution() ResolutionState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolution
}

// Spectating reports whether the session is a spectator.
func (m *Machine) Spectating() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.spectator
}

// restModeLocked is the mode the machine settles into once a drag
// ends: a prompt that arrived mid-drag takes over, otherwise idle.
func (m *Machine) restModeLocked() Mode {
	if m.prompt != nil {
		return ModePromptOverride
	}
	return ModeIdle
}

func (m *Machine) canActLocked() bool {
	if m.spectator {
		return false
	}
	snap := m.store.Snapshot()
	if snap == nil {
		return false
	}
	if snap.Phase == game.PhaseSetup {
		return true
	}
	return m.store.IsMyTurn(m.sessionID)
}
