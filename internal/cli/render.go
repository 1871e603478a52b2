package cli

import (
	"encoding/json"
	"fmt"

	"github.com/dugout-tcg/client/internal/client"
	"github.com/dugout-tcg/client/internal/game"
)

func (a *App) renderBoard(snap *game.GameSnapshot) {
	mine := a.store.ProjectMine(a.sessionID)
	opp := a.store.ProjectOpponent(a.sessionID)

	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "╔══════════════════════════════════════════════════════╗")

	if opp != nil {
		fmt.Fprintf(a.out, "║  %s  Points: %d  Hand: %d  Deck: %d  Discard: %d\n",
			a.playerLabel(opp, "OPPONENT"), opp.Points, len(opp.Hand), opp.DeckCount, len(opp.Discard))
		a.renderSide(opp, false)
	}

	fmt.Fprintln(a.out, "║──────────────────────────────────────────────────────")

	if mine != nil {
		a.renderSide(mine, true)
		fmt.Fprintf(a.out, "║  %s  Points: %d  Hand: %d  Deck: %d  Discard: %d\n",
			a.playerLabel(mine, "YOU"), mine.Points, len(mine.Hand), mine.DeckCount, len(mine.Discard))
	}

	fmt.Fprintln(a.out, "╚══════════════════════════════════════════════════════╝")

	turnInfo := fmt.Sprintf("Turn %d | %s", snap.Turn, snap.Phase)
	switch {
	case a.machine.Spectating():
		turnInfo += " | Spectating"
	case a.store.IsMyTurn(a.sessionID):
		turnInfo += " | Your turn"
	default:
		turnInfo += " | Opponent's turn"
	}
	fmt.Fprintln(a.out, turnInfo)

	if mine != nil && len(mine.Hand) > 0 && !a.machine.Spectating() {
		fmt.Fprint(a.out, "\nHand: ")
		for i, c := range mine.Hand {
			fmt.Fprintf(a.out, "[h%d %s] ", i+1, a.cardLabel(c))
		}
		fmt.Fprintln(a.out)
	}
}

// renderSide prints one player's board rows. The owner's rows appear
// mirrored: active above bench for the opponent, below for the viewer.
func (a *App) renderSide(p *game.PlayerState, mirrored bool) {
	bench := func() {
		fmt.Fprint(a.out, "║  Bench:   ")
		for _, c := range p.Bench {
			fmt.Fprintf(a.out, "%s ", a.slotLabel(c))
		}
		fmt.Fprintln(a.out)
	}
	active := func() {
		fmt.Fprintf(a.out, "║  Active:  %s   Support: %s\n", a.slotLabel(p.ActiveCard), a.slotLabel(p.SupportCard))
	}
	if mirrored {
		bench()
		active()
	} else {
		active()
		bench()
	}
}

func (a *App) slotLabel(c *game.CardInstance) string {
	if c == nil {
		return "[ ]"
	}
	label := a.cardLabel(c)
	if n := len(c.AttachedItems); n > 0 {
		label += fmt.Sprintf(" +%d", n)
	}
	return "[" + label + "]"
}

func (a *App) cardLabel(c *game.CardInstance) string {
	name := a.catalog.DisplayName(c)
	if name == "" {
		name = c.InstanceID
	}
	return name
}

func (a *App) playerLabel(p *game.PlayerState, fallback string) string {
	if a.machine.Spectating() && p.DisplayName != "" {
		return p.DisplayName
	}
	return fallback
}

// renderStatus prints a one-line hint after a gesture so the player
// knows what the machine expects next.
func (a *App) renderStatus() {
	switch a.machine.Mode() {
	case client.ModeSelected:
		fmt.Fprintf(a.out, "Selected %s. 'act %s' to list actions.\n", a.machine.SelectedID(), a.machine.SelectedID())
	case client.ModeTargeting:
		if t, ok := a.machine.Targeting(); ok {
			fmt.Fprintf(a.out, "Choose a target for %s ('click <card>', 'cancel' to abort).\n", t.Action.Type)
		}
	case client.ModePromptOverride:
		a.renderPrompt()
	}
}

func (a *App) renderPrompt() {
	p := a.machine.Prompt()
	if p == nil {
		return
	}
	title := p.Title
	if title == "" {
		title = "The server needs a choice"
	}
	fmt.Fprintf(a.out, "\n%s\n", title)
	switch {
	case p.ViewOnly():
		fmt.Fprintln(a.out, "View only. 'close' to continue.")
	default:
		fmt.Fprintln(a.out, "'pick <card>' to choose.")
	}
}

func (a *App) renderGameOver(snap *game.GameSnapshot) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "═══════════════════════════════════")
	fmt.Fprintln(a.out, "          GAME OVER")
	fmt.Fprintln(a.out, "═══════════════════════════════════")
	if winner := snap.Player(snap.Winner); winner != nil && winner.DisplayName != "" {
		fmt.Fprintf(a.out, "%s wins!\n", winner.DisplayName)
	} else {
		fmt.Fprintf(a.out, "%s wins!\n", snap.Winner)
	}
	fmt.Fprintln(a.out, "═══════════════════════════════════")
}

// --- Notifier ---

func (a *App) ShowToast(message, style string) {
	if style == "" {
		style = "info"
	}
	fmt.Fprintf(a.out, "[%s] %s\n", style, message)
}

func (a *App) ShowError(message string) {
	fmt.Fprintf(a.out, "[server error] %s\n", message)
}

func (a *App) OpenInspector(card *game.CardInstance) {
	fmt.Fprintf(a.out, "\n%s (%s)\n", a.cardLabel(card), card.CardType)
	for _, item := range card.AttachedItems {
		fmt.Fprintf(a.out, "  attached: %s\n", a.cardLabel(item))
	}
	for _, se := range card.StatusEffects {
		fmt.Fprintf(a.out, "  status: %s (%d, %d turns)\n", se.Kind, se.Value, se.Duration)
	}
}

func (a *App) OpenPileViewer(title string, cardsInPile []*game.CardInstance) {
	if title == "" {
		title = "Revealed cards"
	}
	fmt.Fprintf(a.out, "\n%s:\n", title)
	for i, c := range cardsInPile {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, a.cardLabel(c))
	}
	if p := a.machine.Prompt(); p != nil {
		if p.ViewOnly() {
			fmt.Fprintln(a.out, "View only. 'close' to continue.")
		} else {
			fmt.Fprintln(a.out, "'pick <card>' to choose.")
		}
	}
}

func (a *App) PlayAnimation(json.RawMessage) {
	// The terminal has no animation surface.
}
