package mcp

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/client"
	"github.com/dugout-tcg/client/internal/game"
	"github.com/dugout-tcg/client/internal/net"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// serverURL is the game server websocket URL, set by main.
var serverURL string

// catalog is the card catalog for display names, set by main.
var catalog *cards.Catalog

// logger is the process logger, set by main.
var logger = zap.NewNop()

// SetServerURL sets the game server websocket URL.
func SetServerURL(url string) {
	serverURL = url
}

// SetCatalog sets the card catalog.
func SetCatalog(c *cards.Catalog) {
	catalog = c
}

// SetLogger sets the process logger.
func SetLogger(l *zap.Logger) {
	logger = l
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(joinGameTool(), handleJoinGame)
	s.AddTool(getStateTool(), handleGetState)
	s.AddTool(clickCardTool(), handleClickCard)
	s.AddTool(useActionTool(), handleUseAction)
	s.AddTool(dropCardTool(), handleDropCard)
	s.AddTool(resolutionActionTool(), handleResolutionAction)
	s.AddTool(closeViewerTool(), handleCloseViewer)
	s.AddTool(cancelTool(), handleCancel)
	s.AddTool(retreatTool(), handleRetreat)
	s.AddTool(endTurnTool(), handleEndTurn)
	s.AddTool(leaveGameTool(), handleLeaveGame)
}

// --- Tool definitions ---

func joinGameTool() mcp.Tool {
	return mcp.NewTool("join_game",
		mcp.WithDescription("Connect to the Dugout server and rejoin a game as a player, or spectate it. "+
			"Returns the current game state. Card moves only take effect when a later state shows them; "+
			"the server is the only authority."),
		mcp.WithString("game_id", mcp.Required(), mcp.Description("The game to join")),
		mcp.WithString("session_id", mcp.Description("Your player session id. Leave empty to spectate.")),
	)
}

func getStateTool() mcp.Tool {
	return mcp.NewTool("get_state",
		mcp.WithDescription("Get the current game state, new log lines, and any pending prompt. Read-only."),
	)
}

func clickCardTool() mcp.Tool {
	return mcp.NewTool("click_card",
		mcp.WithDescription("Click a card by instance id: selects it, or answers an open target prompt. "+
			"Clicking a card that is not a legal choice does nothing."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("The card's instance id from the state view")),
	)
}

func useActionTool() mcp.Tool {
	return mcp.NewTool("use_action",
		mcp.WithDescription("Use one of a card's actions by 0-based index. Target-requiring actions start "+
			"a target pick; follow up with click_card on the target."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("The acting card's instance id")),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into the card's actions list")),
	)
}

func dropCardTool() mcp.Tool {
	return mcp.NewTool("drop_card",
		mcp.WithDescription("Play a card from hand by dropping it on a zone. Zones: my-bench-0..3, my-active, "+
			"my-support, opponent-active, opponent-bench-0..3. Illegal drops are rejected locally."),
		mcp.WithString("instance_id", mcp.Required(), mcp.Description("The card's instance id")),
		mcp.WithString("zone", mcp.Required(), mcp.Description("The drop zone id")),
	)
}

func resolutionActionTool() mcp.Tool {
	return mcp.NewTool("resolution_action",
		mcp.WithDescription("Perform one of the resolution-phase actions listed in the state view, by 0-based index."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index into resolutionActions")),
	)
}

func closeViewerTool() mcp.Tool {
	return mcp.NewTool("close_viewer",
		mcp.WithDescription("Dismiss the open pile viewer. A view-only reveal is acknowledged to the server; "+
			"a pile that still needs a pick stays open until you click_card one of its options."),
	)
}

func cancelTool() mcp.Tool {
	return mcp.NewTool("cancel",
		mcp.WithDescription("Clear the current selection or abandon a target pick. Server prompts cannot be cancelled."),
	)
}

func retreatTool() mcp.Tool {
	return mcp.NewTool("retreat",
		mcp.WithDescription("Retreat your active card."),
	)
}

func endTurnTool() mcp.Tool {
	return mcp.NewTool("end_turn",
		mcp.WithDescription("End your turn."),
	)
}

func leaveGameTool() mcp.Tool {
	return mcp.NewTool("leave_game",
		mcp.WithDescription("Disconnect from the game server."),
	)
}

// --- Tool handlers ---

func handleJoinGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession != nil {
		return mcp.NewToolResultError("Already connected. Use leave_game first."), nil
	}

	gameID := strings.TrimSpace(request.GetString("game_id", ""))
	if gameID == "" {
		return mcp.NewToolResultError("game_id is required"), nil
	}
	sessionID := strings.TrimSpace(request.GetString("session_id", ""))

	sess, err := NewGameSession(ctx, serverURL, gameID, sessionID, catalog, logger)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to join: %v", err), nil
	}
	activeSession = sess

	sess.waitForOutcome(ctx, 0)
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleGetState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleClickCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	id := strings.TrimSpace(request.GetString("instance_id", ""))
	if id == "" {
		return mcp.NewToolResultError("instance_id is required"), nil
	}

	since := sess.store.Version()
	before := sess.machine.Mode()
	sess.machine.ClickCard(id)
	// Only clicks that complete a decision produce server traffic.
	if before == client.ModeTargeting || before == client.ModePromptOverride {
		sess.waitForOutcome(ctx, since)
	}
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleUseAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	id := strings.TrimSpace(request.GetString("instance_id", ""))
	index := request.GetInt("index", -1)

	snap := sess.store.Snapshot()
	if snap == nil {
		return mcp.NewToolResultError("No game state yet."), nil
	}
	card, _, ok := snap.FindInstance(id)
	if !ok {
		return mcp.NewToolResultErrorf("No card with instance id %q.", id), nil
	}
	if index < 0 || index >= len(card.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. The card has %d action(s).", index, len(card.Actions)), nil
	}

	action := card.Actions[index]
	since := sess.store.Version()
	// A card selected by an earlier click_card must not toggle off.
	if sess.machine.SelectedID() != id {
		sess.machine.ClickCard(id)
	}
	sess.machine.ClickAction(action)

	// Target picks stay local; everything else went to the server.
	if !action.RequiresTarget || action.IsMultiPhase {
		sess.waitForOutcome(ctx, since)
	}
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleDropCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	id := strings.TrimSpace(request.GetString("instance_id", ""))
	zone := strings.TrimSpace(request.GetString("zone", ""))

	snap := sess.store.Snapshot()
	if snap == nil {
		return mcp.NewToolResultError("No game state yet."), nil
	}
	card, _, ok := snap.FindInstance(id)
	if !ok {
		return mcp.NewToolResultErrorf("No card with instance id %q.", id), nil
	}
	if _, err := game.ParseDropZone(zone); err != nil {
		return mcp.NewToolResultErrorf("Unknown zone %q.", zone), nil
	}

	since := sess.store.Version()
	if _, ok := sess.machine.BeginDrag(card); !ok {
		return mcp.NewToolResultError("You cannot act right now (not your turn, or spectating)."), nil
	}
	sess.machine.DropOn(zone)

	sess.waitForOutcome(ctx, since)
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleResolutionAction(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	res := sess.machine.Resolution()
	if !res.Active {
		return mcp.NewToolResultError("Not in a resolution phase."), nil
	}
	index := request.GetInt("index", -1)
	if index < 0 || index >= len(res.Actions) {
		return mcp.NewToolResultErrorf("Invalid index %d. There are %d resolution action(s).", index, len(res.Actions)), nil
	}

	action := res.Actions[index]
	since := sess.store.Version()
	sess.machine.ClickAction(action)
	if !action.RequiresTarget {
		sess.waitForOutcome(ctx, since)
	}
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleCloseViewer(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	since := sess.store.Version()
	sess.closeViewer()
	sess.waitForOutcome(ctx, since)
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleCancel(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	if sess.machine.Mode() == client.ModeDragging {
		sess.machine.CancelDrag()
	} else {
		sess.machine.ClickBackground()
	}
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleRetreat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	since := sess.store.Version()
	sess.channel.Send(net.Request{Type: net.ReqRetreatActiveCard})
	sess.waitForOutcome(ctx, since)
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleEndTurn(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running. Use join_game first."), nil
	}
	since := sess.store.Version()
	sess.machine.ClickAction(game.ActionDescriptor{Type: net.ReqEndTurn})
	sess.waitForOutcome(ctx, since)
	return mcp.NewToolResultText(respondJSON(sess.buildState())), nil
}

func handleLeaveGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := activeSession
	if sess == nil {
		return mcp.NewToolResultError("No game is running."), nil
	}
	sess.Close()
	activeSession = nil
	return mcp.NewToolResultText(`{"ok": true}`), nil
}
