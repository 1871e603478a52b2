package net

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.uber.org/zap"
)

const (
	writeTimeout = 5 * time.Second
	outboxDepth  = 16
	eventBuffer  = 32
)

// Channel is the only egress path to the game server. Sends are
// fire-and-forget: the interaction layer never awaits an ack and
// trusts only the subsequent snapshot or error event to learn whether
// an action succeeded. Inbound events are decoded by a read pump and
// delivered on Events.
type Channel struct {
	conn   *websocket.Conn
	logger *zap.Logger

	out    chan Request
	events chan ServerMessage

	rejoinOnce sync.Once
	closeOnce  sync.Once
	done       chan struct{}
}

// Dial connects to the game server and starts the read and write
// pumps.
func Dial(ctx context.Context, url string, logger *zap.Logger) (*Channel, error) {
	conn, _, err := websocket.Dial(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}

	c := &Channel{
		conn:   conn,
		logger: logger,
		out:    make(chan Request, outboxDepth),
		events: make(chan ServerMessage, eventBuffer),
		done:   make(chan struct{}),
	}

	go c.writePump()
	go c.readPump()

	logger.Info("connected to game server", zap.String("url", url))
	return c, nil
}

// Events returns the inbound event stream. The channel is closed when
// the connection drops or Close is called.
func (c *Channel) Events() <-chan ServerMessage { return c.events }

// Send enqueues a request without waiting for any acknowledgment. A
// full outbox drops the request with a log line rather than blocking
// the interaction layer; the server's next snapshot is the only
// source of truth either way.
func (c *Channel) Send(req Request) {
	select {
	case c.out <- req:
	case <-c.done:
		c.logger.Warn("send after close dropped", zap.String("type", req.Type))
	default:
		c.logger.Warn("outbox full, request dropped", zap.String("type", req.Type))
	}
}

// RejoinOrSpectate issues the session-bootstrap request. It is sent at
// most once per channel no matter how often the caller's triggering
// path re-runs, to avoid duplicate-join races on the server.
func (c *Channel) RejoinOrSpectate(gameID string) {
	c.rejoinOnce.Do(func() {
		c.Send(Request{Type: ReqRejoinOrSpectate, Payload: RejoinPayload{GameID: gameID}})
		c.logger.Info("rejoin/spectate requested", zap.String("game_id", gameID))
	})
}

// Close tears the connection down. Safe to call more than once.
func (c *Channel) Close() {
	c.closeOnce.Do(func() {
		close(c.done)
		_ = c.conn.Close(websocket.StatusNormalClosure, "bye")
	})
}

func (c *Channel) writePump() {
	for {
		select {
		case <-c.done:
			return
		case req := <-c.out:
			data, err := json.Marshal(req)
			if err != nil {
				c.logger.Error("marshal request", zap.String("type", req.Type), zap.Error(err))
				continue
			}
			ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
			err = c.conn.Write(ctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				c.logger.Warn("write failed", zap.String("type", req.Type), zap.Error(err))
				return
			}
			c.logger.Debug("request sent", zap.String("type", req.Type))
		}
	}
}

func (c *Channel) readPump() {
	defer close(c.events)
	for {
		_, data, err := c.conn.Read(context.Background())
		if err != nil {
			switch websocket.CloseStatus(err) {
			case websocket.StatusNormalClosure, websocket.StatusGoingAway:
				c.logger.Info("connection closed")
			default:
				select {
				case <-c.done:
					// Local close; not an error.
				default:
					c.logger.Warn("read failed", zap.Error(err))
				}
			}
			return
		}

		var msg ServerMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.logger.Warn("bad server message", zap.Error(err))
			continue
		}

		select {
		case c.events <- msg:
		case <-c.done:
			return
		}
	}
}
