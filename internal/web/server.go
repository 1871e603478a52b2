// Package web serves the browser front end: embedded static assets, a
// card catalog API, and a websocket proxy to the game server.
package web

import (
	"context"
	"embed"
	"encoding/json"
	"io"
	"io/fs"
	"net/http"

	"github.com/coder/websocket"
	"go.uber.org/zap"

	"github.com/dugout-tcg/client/internal/cards"
	"github.com/dugout-tcg/client/internal/net"
)

//go:embed static
var staticFiles embed.FS

// Server is the Dugout web UI server.
type Server struct {
	catalog  *cards.Catalog
	upstream string // game server websocket URL
	mux      *http.ServeMux
	logger   *zap.Logger
}

// NewServer creates a web server proxying to the given game server.
func NewServer(catalog *cards.Catalog, upstream string, logger *zap.Logger) *Server {
	if catalog == nil {
		catalog = cards.Empty()
	}
	s := &Server{
		catalog:  catalog,
		upstream: upstream,
		mux:      http.NewServeMux(),
		logger:   logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, _ := fs.Sub(staticFiles, "static")

	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.mux.HandleFunc("GET /api/cards", s.handleCards)

	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

func (s *Server) handleCards(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s.catalog.All())
}

// handleWebSocket bridges one browser connection to the game server.
// The browser opens with a connect message naming the game; the proxy
// issues the rejoin handshake and then relays frames verbatim.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	browser, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		s.logger.Warn("websocket accept failed", zap.Error(err))
		return
	}
	defer browser.CloseNow()

	ctx := r.Context()

	_, connectData, err := browser.Read(ctx)
	if err != nil {
		return
	}
	var connect struct {
		Type   string `json:"type"`
		GameID string `json:"gameId"`
	}
	if err := json.Unmarshal(connectData, &connect); err != nil || connect.Type != "connect" {
		browser.Close(websocket.StatusPolicyViolation, "expected connect message")
		return
	}

	upstream, _, err := websocket.Dial(ctx, s.upstream, nil)
	if err != nil {
		s.logger.Warn("game server dial failed", zap.String("url", s.upstream), zap.Error(err))
		errMsg, _ := json.Marshal(net.ServerMessage{
			Event:   net.EventGameError,
			Message: "Could not reach the game server",
		})
		browser.Write(ctx, websocket.MessageText, errMsg)
		browser.Close(websocket.StatusNormalClosure, "upstream unavailable")
		return
	}
	defer upstream.CloseNow()

	join, _ := json.Marshal(net.Request{
		Type:    net.ReqRejoinOrSpectate,
		Payload: net.RejoinPayload{GameID: connect.GameID},
	})
	if err := upstream.Write(ctx, websocket.MessageText, join); err != nil {
		return
	}

	s.logger.Info("proxy session started", zap.String("gameId", connect.GameID))

	done := make(chan struct{})

	// Game server → browser.
	go func() {
		defer close(done)
		relay(ctx, upstream, browser)
	}()

	// Browser → game server.
	go func() {
		relay(ctx, browser, upstream)
	}()

	<-done
	browser.Close(websocket.StatusNormalClosure, "game ended")
}

func relay(ctx context.Context, from, to *websocket.Conn) {
	for {
		typ, data, err := from.Read(ctx)
		if err != nil {
			return
		}
		if err := to.Write(ctx, typ, data); err != nil {
			return
		}
	}
}

// Handler exposes the routing mux, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("web server listening", zap.String("addr", addr))
	return http.ListenAndServe(addr, s.mux)
}
