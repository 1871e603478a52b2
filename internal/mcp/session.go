// Package mcp exposes a Dugout seat as MCP tools so an agent can play
// over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/client"
	"github.com/dugout-tcg/client/internal/game"
	gamelog "github.com/dugout-tcg/client/internal/log"
	"github.com/dugout-tcg/client/internal/net"
)

// GameSession holds one connection to the game server plus the
// interaction machine driving it.
type GameSession struct {
	channel *net.Channel
	store   *client.SnapshotStore
	machine *client.Machine
	catalog *cards.Catalog
	logBuf  *gamelog.Buffer

	sessionID string

	// updates is pinged after every processed server event so tool
	// handlers can wait for the outcome of a fire-and-forget request.
	updates chan struct{}

	mu      sync.Mutex
	notices []string
	viewer  *viewerState
}

type viewerState struct {
	Title string               `json:"title"`
	Cards []*game.CardInstance `json:"cards"`
}

// NewGameSession connects to the game server and joins (or spectates)
// the given game.
func NewGameSession(ctx context.Context, serverURL, gameID, sessionID string, catalog *cards.Catalog, logger *zap.Logger) (*GameSession, error) {
	if catalog == nil {
		catalog = cards.Empty()
	}
	ch, err := net.Dial(ctx, serverURL, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to game server: %w", err)
	}

	sess := &GameSession{
		channel:   ch,
		store:     client.NewSnapshotStore(),
		catalog:   catalog,
		logBuf:    gamelog.NewBuffer(),
		sessionID: sessionID,
		updates:   make(chan struct{}, 1),
	}
	sess.machine = client.NewMachine(sess.store, ch, sess, sessionID)

	go sess.pump()

	ch.RejoinOrSpectate(gameID)
	return sess, nil
}

// pump feeds server events into the machine and signals waiters.
func (s *GameSession) pump() {
	for msg := range s.channel.Events() {
		s.machine.HandleServer(msg)
		if msg.Event == net.EventGameUpdated {
			s.mu.Lock()
			s.viewer = nil
			s.mu.Unlock()
		}
		select {
		case s.updates <- struct{}{}:
		default:
		}
	}
	close(s.updates)
}

// Close tears down the server connection.
func (s *GameSession) Close() {
	s.channel.Close()
}

// closeViewer dismisses the pile viewer locally and lets the machine
// decide whether the server needs an acknowledgment.
func (s *GameSession) closeViewer() {
	s.machine.CloseViewer()
	s.mu.Lock()
	s.viewer = nil
	s.mu.Unlock()
}

// --- Notifier ---

func (s *GameSession) ShowToast(message, style string) {
	s.addNotice(fmt.Sprintf("[%s] %s", style, message))
}

func (s *GameSession) ShowError(message string) {
	s.addNotice(fmt.Sprintf("[server error] %s", message))
}

func (s *GameSession) OpenInspector(card *game.CardInstance) {
	s.addNotice(fmt.Sprintf("inspecting %s", s.catalog.DisplayName(card)))
}

func (s *GameSession) OpenPileViewer(title string, pile []*game.CardInstance) {
	s.mu.Lock()
	s.viewer = &viewerState{Title: title, Cards: pile}
	s.mu.Unlock()
}

func (s *GameSession) PlayAnimation(json.RawMessage) {}

func (s *GameSession) addNotice(text string) {
	s.mu.Lock()
	s.notices = append(s.notices, text)
	s.mu.Unlock()
}

func (s *GameSession) drainNotices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	notices := s.notices
	s.notices = nil
	return notices
}

// waitForOutcome blocks until the server reacts past the given
// snapshot version (a newer snapshot, an error, or a prompt), or the
// deadline passes. Requests are fire-and-forget on the wire, so a
// timeout only means the server stayed silent, not that anything
// failed. Callers capture the version before dispatching.
func (s *GameSession) waitForOutcome(ctx context.Context, since int) {
	timer := time.NewTimer(3 * time.Second)
	defer timer.Stop()

	for {
		if s.outcomeReady(since) {
			return
		}
		select {
		case _, ok := <-s.updates:
			if !ok {
				return
			}
		case <-timer.C:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *GameSession) outcomeReady(since int) bool {
	if s.store.Version() > since || s.machine.Prompt() != nil {
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.notices) > 0
}

// --- State views ---

// CardView is a card as presented in tool responses.
type CardView struct {
	InstanceID string   `json:"instanceId"`
	Name       string   `json:"name"`
	CardType   string   `json:"cardType"`
	Actions    []string `json:"actions,omitempty"`
	Attached   []string `json:"attached,omitempty"`
	Statuses   []string `json:"statuses,omitempty"`
}

// SideView is one player's half of the board.
type SideView struct {
	Name      string      `json:"name"`
	Points    int         `json:"points"`
	DeckCount int         `json:"deckCount"`
	Active    *CardView   `json:"active,omitempty"`
	Support   *CardView   `json:"support,omitempty"`
	Bench     []*CardView `json:"bench"`
	Hand      []*CardView `json:"hand,omitempty"`
	Discard   []*CardView `json:"discard,omitempty"`
}

// PromptView is a pending server prompt.
type PromptView struct {
	Title    string   `json:"title,omitempty"`
	Options  []string `json:"options,omitempty"`
	ViewOnly bool     `json:"viewOnly"`
}

// StateView is the full tool-facing game state.
type StateView struct {
	Turn       int          `json:"turn"`
	Phase      string       `json:"phase"`
	YourTurn   bool         `json:"yourTurn"`
	Spectating bool         `json:"spectating,omitempty"`
	Mode       string       `json:"mode"`
	You        *SideView    `json:"you,omitempty"`
	Opponent   *SideView    `json:"opponent,omitempty"`
	Prompt     *PromptView  `json:"prompt,omitempty"`
	Resolution []string     `json:"resolutionActions,omitempty"`
	Viewer     *viewerState `json:"viewer,omitempty"`
	Winner     string       `json:"winner,omitempty"`
}

// ToolResponse is the JSON envelope returned by all tools.
type ToolResponse struct {
	State   *StateView `json:"state,omitempty"`
	Log     []string   `json:"log,omitempty"`
	Notices []string   `json:"notices,omitempty"`
	Note    string     `json:"note,omitempty"`
}

func (s *GameSession) cardView(c *game.CardInstance) *CardView {
	if c == nil {
		return nil
	}
	cv := &CardView{
		InstanceID: c.InstanceID,
		Name:       s.catalog.DisplayName(c),
		CardType:   string(c.CardType),
	}
	for _, a := range c.Actions {
		label := a.Type
		if a.Disabled {
			label += " (disabled)"
		}
		cv.Actions = append(cv.Actions, label)
	}
	for _, item := range c.AttachedItems {
		cv.Attached = append(cv.Attached, s.catalog.DisplayName(item))
	}
	for _, se := range c.StatusEffects {
		cv.Statuses = append(cv.Statuses, se.Kind)
	}
	return cv
}

func (s *GameSession) sideView(p *game.PlayerState, withHand bool) *SideView {
	if p == nil {
		return nil
	}
	sv := &SideView{
		Name:      p.DisplayName,
		Points:    p.Points,
		DeckCount: p.DeckCount,
		Active:    s.cardView(p.ActiveCard),
		Support:   s.cardView(p.SupportCard),
		Bench:     make([]*CardView, 0, game.BenchSize),
	}
	for _, c := range p.Bench {
		sv.Bench = append(sv.Bench, s.cardView(c))
	}
	if withHand {
		for _, c := range p.Hand {
			sv.Hand = append(sv.Hand, s.cardView(c))
		}
	}
	for _, c := range p.Discard {
		sv.Discard = append(sv.Discard, s.cardView(c))
	}
	return sv
}

// buildState projects the current snapshot plus interaction state into
// a tool response.
func (s *GameSession) buildState() *ToolResponse {
	resp := &ToolResponse{Notices: s.drainNotices()}

	snap := s.store.Snapshot()
	if snap == nil {
		resp.Note = "no game state yet"
		return resp
	}

	spectating := s.machine.Spectating()
	sv := &StateView{
		Turn:       snap.Turn,
		Phase:      snap.Phase.String(),
		YourTurn:   !spectating && s.store.IsMyTurn(s.sessionID),
		Spectating: spectating,
		Mode:       s.machine.Mode().String(),
		You:        s.sideView(s.store.ProjectMine(s.sessionID), !spectating),
		Opponent:   s.sideView(s.store.ProjectOpponent(s.sessionID), false),
		Winner:     snap.Winner,
	}

	if p := s.machine.Prompt(); p != nil {
		sv.Prompt = &PromptView{Title: p.Title, Options: p.Options, ViewOnly: p.ViewOnly()}
	}
	if res := s.machine.Resolution(); res.Active {
		for _, a := range res.Actions {
			sv.Resolution = append(sv.Resolution, fmt.Sprintf("%s (%s)", a.Type, a.SourceCardID))
		}
	}

	s.mu.Lock()
	sv.Viewer = s.viewer
	s.mu.Unlock()

	resp.State = sv
	for _, e := range s.logBuf.Drain(snap.Log) {
		resp.Log = append(resp.Log, gamelog.FormatEntry(e))
	}
	return resp
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
