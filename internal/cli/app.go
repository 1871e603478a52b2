// Package cli is the terminal front end: it renders snapshots as a
// text board and translates REPL commands into interaction gestures.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/client"
	"github.com/dugout-tcg/client/internal/game"
	gamelog "github.com/dugout-tcg/client/internal/log"
	"github.com/dugout-tcg/client/internal/net"
)

// App wires a server event stream and stdin commands to the
// interaction machine.
type App struct {
	store   *client.SnapshotStore
	machine *client.Machine
	sender  client.Sender
	catalog *cards.Catalog
	logBuf  *gamelog.Buffer
	events  <-chan net.ServerMessage

	sessionID string
	in        io.Reader
	out       io.Writer
	logger    *zap.Logger
}

// Options configures a terminal app.
type Options struct {
	Sender    client.Sender
	Events    <-chan net.ServerMessage
	Catalog   *cards.Catalog
	SessionID string
	In        io.Reader
	Out       io.Writer
	Logger    *zap.Logger
}

// New builds an app and its interaction machine.
func New(opts Options) *App {
	if opts.Catalog == nil {
		opts.Catalog = cards.Empty()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	a := &App{
		store:     client.NewSnapshotStore(),
		sender:    opts.Sender,
		catalog:   opts.Catalog,
		logBuf:    gamelog.NewBuffer(),
		events:    opts.Events,
		sessionID: opts.SessionID,
		in:        opts.In,
		out:       opts.Out,
		logger:    opts.Logger,
	}
	a.machine = client.NewMachine(a.store, opts.Sender, a, opts.SessionID)
	return a
}

// Run processes server events and stdin commands until the context is
// cancelled, the event stream closes, or the user quits.
func (a *App) Run(ctx context.Context) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(a.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	a.logger.Debug("terminal client started", zap.String("session", a.sessionID))
	fmt.Fprintln(a.out, "Connected. Type 'help' for commands.")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case msg, ok := <-a.events:
			if !ok {
				return fmt.Errorf("connection closed")
			}
			a.handleEvent(msg)

		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := a.handleCommand(line); quit {
				return nil
			}
		}
	}
}

func (a *App) handleEvent(msg net.ServerMessage) {
	a.machine.HandleServer(msg)

	switch msg.Event {
	case net.EventGameUpdated, net.EventSpectateStart:
		snap := a.store.Snapshot()
		if snap == nil {
			return
		}
		for _, e := range a.logBuf.Drain(snap.Log) {
			fmt.Fprintln(a.out, gamelog.FormatEntry(e))
		}
		a.renderBoard(snap)
		if snap.Winner != "" {
			a.renderGameOver(snap)
		}
	case net.EventPromptChoice:
		// Pile prompts already render through the viewer notification.
		if p := a.machine.Prompt(); p != nil && p.ChoiceType == game.ChoiceTarget {
			a.renderPrompt()
		}
	}
}

// handleCommand dispatches one REPL line. Returns true on quit.
func (a *App) handleCommand(line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false
	}
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help", "h":
		a.printHelp()

	case "board", "b":
		if snap := a.store.Snapshot(); snap != nil {
			a.renderBoard(snap)
		} else {
			fmt.Fprintln(a.out, "No game state yet.")
		}

	case "log":
		if snap := a.store.Snapshot(); snap != nil {
			fmt.Fprint(a.out, gamelog.FormatAll(snap.Log))
		}

	case "click", "c", "target", "pick":
		if len(args) != 1 {
			fmt.Fprintf(a.out, "usage: %s <card>\n", cmd)
			return false
		}
		id, ok := a.resolveCard(args[0])
		if !ok {
			fmt.Fprintf(a.out, "Unknown card %q\n", args[0])
			return false
		}
		a.machine.ClickCard(id)
		a.renderStatus()

	case "act":
		a.cmdAct(args)

	case "drop":
		if len(args) != 2 {
			fmt.Fprintln(a.out, "usage: drop <card> <zone>  (e.g. drop h1 my-bench-0)")
			return false
		}
		a.cmdDrop(args[0], args[1])

	case "ract":
		a.cmdResolutionAction(args)

	case "cancel", "esc":
		if a.machine.Mode() == client.ModeDragging {
			a.machine.CancelDrag()
		} else {
			a.machine.ClickBackground()
		}
		a.renderStatus()

	case "close":
		a.machine.CloseViewer()

	case "retreat":
		a.sender.Send(net.Request{Type: net.ReqRetreatActiveCard})

	case "resolve":
		a.machine.ClickAction(game.ActionDescriptor{Type: net.ReqResolvePhase})

	case "end":
		a.machine.ClickAction(game.ActionDescriptor{Type: net.ReqEndTurn})

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(a.out, "Unknown command %q. Type 'help'.\n", cmd)
	}
	return false
}

// cmdAct lists a card's actions, or clicks one of them.
func (a *App) cmdAct(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "usage: act <card> [n]")
		return
	}
	id, ok := a.resolveCard(args[0])
	if !ok {
		fmt.Fprintf(a.out, "Unknown card %q\n", args[0])
		return
	}
	snap := a.store.Snapshot()
	card, _, found := snap.FindInstance(id)
	if !found {
		fmt.Fprintf(a.out, "Unknown card %q\n", args[0])
		return
	}

	if len(args) == 1 {
		if len(card.Actions) == 0 {
			fmt.Fprintln(a.out, "No actions available.")
			return
		}
		fmt.Fprintf(a.out, "Actions for %s:\n", a.catalog.DisplayName(card))
		for i, act := range card.Actions {
			note := ""
			if act.Disabled {
				note = " (disabled)"
			}
			fmt.Fprintf(a.out, "  %d) %s%s\n", i+1, act.Type, note)
		}
		return
	}

	n, err := strconv.Atoi(args[1])
	if err != nil || n < 1 || n > len(card.Actions) {
		fmt.Fprintf(a.out, "Enter a number between 1 and %d\n", len(card.Actions))
		return
	}
	// Action buttons live on a selected card; mirror that order, but a
	// card the user already selected must not toggle off.
	if a.machine.SelectedID() != id {
		a.machine.ClickCard(id)
	}
	a.machine.ClickAction(card.Actions[n-1])
	a.renderStatus()
}

// cmdDrop performs a full drag gesture as one command.
func (a *App) cmdDrop(cardRef, zoneID string) {
	id, ok := a.resolveCard(cardRef)
	if !ok {
		fmt.Fprintf(a.out, "Unknown card %q\n", cardRef)
		return
	}
	snap := a.store.Snapshot()
	card, _, found := snap.FindInstance(id)
	if !found {
		fmt.Fprintf(a.out, "Unknown card %q\n", cardRef)
		return
	}
	if _, ok := a.machine.BeginDrag(card); !ok {
		fmt.Fprintln(a.out, "You cannot act right now.")
		return
	}
	a.machine.DropOn(zoneID)
}

func (a *App) cmdResolutionAction(args []string) {
	res := a.machine.Resolution()
	if !res.Active {
		fmt.Fprintln(a.out, "Not in a resolution phase.")
		return
	}
	if len(args) == 0 {
		for i, act := range res.Actions {
			fmt.Fprintf(a.out, "  %d) %s (%s)\n", i+1, act.Type, act.SourceCardID)
		}
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(res.Actions) {
		fmt.Fprintf(a.out, "Enter a number between 1 and %d\n", len(res.Actions))
		return
	}
	a.machine.ClickAction(res.Actions[n-1])
	a.renderStatus()
}

// resolveCard maps a positional shorthand or raw instance id to an
// instance id. Shorthands: h<N> my hand, b<N> my bench, ob<N> opponent
// bench, a / oa active, s / os support, d / od top of discard.
func (a *App) resolveCard(ref string) (string, bool) {
	mine := a.store.ProjectMine(a.sessionID)
	opp := a.store.ProjectOpponent(a.sessionID)

	pick := func(c *game.CardInstance) (string, bool) {
		if c == nil {
			return "", false
		}
		return c.InstanceID, true
	}

	switch {
	case ref == "a":
		if mine == nil {
			return "", false
		}
		return pick(mine.ActiveCard)
	case ref == "oa":
		if opp == nil {
			return "", false
		}
		return pick(opp.ActiveCard)
	case ref == "s":
		if mine == nil {
			return "", false
		}
		return pick(mine.SupportCard)
	case ref == "os":
		if opp == nil {
			return "", false
		}
		return pick(opp.SupportCard)
	case ref == "d":
		if mine == nil {
			return "", false
		}
		return pick(mine.TopDiscard())
	case ref == "od":
		if opp == nil {
			return "", false
		}
		return pick(opp.TopDiscard())
	}

	if n, ok := indexRef(ref, "h"); ok && mine != nil {
		if n < len(mine.Hand) {
			return pick(mine.Hand[n])
		}
		return "", false
	}
	if n, ok := indexRef(ref, "ob"); ok && opp != nil {
		if n < game.BenchSize {
			return pick(opp.Bench[n])
		}
		return "", false
	}
	if n, ok := indexRef(ref, "b"); ok && mine != nil {
		if n < game.BenchSize {
			return pick(mine.Bench[n])
		}
		return "", false
	}

	// Anything else is taken as a raw instance id.
	return ref, true
}

// indexRef parses "<prefix><N>" with a 1-based N into a 0-based index.
func indexRef(ref, prefix string) (int, bool) {
	rest, ok := strings.CutPrefix(ref, prefix)
	if !ok || rest == "" {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n - 1, true
}

func (a *App) printHelp() {
	fmt.Fprint(a.out, `Commands:
  board            redraw the board
  log              print the full game log
  click <card>     select a card / answer a target prompt
  act <card> [n]   list a card's actions, or use the nth one
  drop <card> <zone>  play a card by dragging it to a zone
                   zones: my-bench-0..3, my-active, my-support,
                          opponent-active, opponent-bench-0..3
  ract [n]         list or perform resolution-phase actions
  pick <card>      choose a card from an open prompt
  cancel           clear selection / abandon a drag
  close            dismiss the pile viewer
  retreat          retreat your active card
  resolve          resolve the current phase
  end              end your turn
  quit             leave

Cards: h1.. your hand, b1..b4 your bench, ob1..ob4 opponent bench,
a/oa active, s/os support, d/od top of discard, or a raw instance id.
`)
}
