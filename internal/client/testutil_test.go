package client

import (
	"encoding/json"

	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

// recordingSender captures every outbound request for assertions.
type recordingSender struct {
	reqs []net.Request
}

func (r *recordingSender) Send(req net.Request) {
	r.reqs = append(r.reqs, req)
}

func (r *recordingSender) last() net.Request {
	return r.reqs[len(r.reqs)-1]
}

// recordingNotifier captures delegated UI notices.
type recordingNotifier struct {
	toasts     []string
	errors     []string
	inspected  []*game.CardInstance
	pileTitles []string
	animations []json.RawMessage
}

func (r *recordingNotifier) ShowToast(message, style string) { r.toasts = append(r.toasts, message) }
func (r *recordingNotifier) ShowError(message string)        { r.errors = append(r.errors, message) }
func (r *recordingNotifier) OpenInspector(card *game.CardInstance) {
	r.inspected = append(r.inspected, card)
}
func (r *recordingNotifier) OpenPileViewer(title string, cards []*game.CardInstance) {
	r.pileTitles = append(r.pileTitles, title)
}
func (r *recordingNotifier) PlayAnimation(payload json.RawMessage) {
	r.animations = append(r.animations, payload)
}

func playerCard(id string) *game.CardInstance {
	return &game.CardInstance{DefinitionID: "def-" + id, InstanceID: id, CardType: game.CardTypePlayer}
}

func itemCard(id string, validTargets ...string) *game.CardInstance {
	return &game.CardInstance{DefinitionID: "def-" + id, InstanceID: id, CardType: game.CardTypeItem, ValidTargets: validTargets}
}

// duelSnapshot builds a two-player snapshot with p1 as the viewing
// player and p1 holding the turn.
func duelSnapshot(phase game.Phase) *game.GameSnapshot {
	return &game.GameSnapshot{
		Phase:          phase,
		Turn:           4,
		ActivePlayerID: "p1",
		Players: map[string]*game.PlayerState{
			"p1": {SessionID: "p1", DisplayName: "Me"},
			"p2": {SessionID: "p2", DisplayName: "Opp"},
		},
	}
}

// harness wires a machine to recording collaborators and an applied
// snapshot.
type harness struct {
	store    *SnapshotStore
	sender   *recordingSender
	notifier *recordingNotifier
	machine  *Machine
	snap     *game.GameSnapshot
}

func newHarness(phase game.Phase) *harness {
	h := &harness{
		store:    NewSnapshotStore(),
		sender:   &recordingSender{},
		notifier: &recordingNotifier{},
		snap:     duelSnapshot(phase),
	}
	h.machine = NewMachine(h.store, h.sender, h.notifier, "p1")
	h.machine.HandleSnapshot(h.snap)
	return h
}

func (h *harness) me() *game.PlayerState  { return h.snap.Players["p1"] }
func (h *harness) opp() *game.PlayerState { return h.snap.Players["p2"] }

// reapply pushes the (mutated) snapshot through the machine again so
// lookups see the latest board.
func (h *harness) reapply() {
	h.machine.HandleSnapshot(h.snap)
}
