// Package client connects a local actor to a remote table. The same Actor
// implementations that play locally — bots or the interactive TUI — are
// driven here by server messages instead of an in-process game.
package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/protocol"
)

// Client plays one seat at a remote table.
type Client struct {
	serverURL string
	name      string
	table     string
	actor     game.Actor
	logger    *log.Logger
}

// New creates a client that joins the server as name, delegating every
// decision to actor. table may be empty for the server's default table.
func New(serverURL, name, table string, actor game.Actor, logger *log.Logger) *Client {
	return &Client{
		serverURL: serverURL,
		name:      name,
		table:     table,
		actor:     actor,
		logger:    logger.WithPrefix("client").With("player", name),
	}
}

// Run connects, joins, and plays until the game ends, the server goes away,
// or the context is cancelled. A game-winner message is a clean finish.
func (c *Client) Run(ctx context.Context) error {
	wsURL, err := websocketURL(c.serverURL)
	if err != nil {
		return err
	}

	c.logger.Info("connecting", "url", wsURL)
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", wsURL, err)
	}
	defer func() { _ = conn.Close() }()

	join, err := protocol.Marshal(&protocol.Join{Type: protocol.TypeJoin, Name: c.name, Table: c.table})
	if err != nil {
		return err
	}
	if err := conn.WriteMessage(websocket.TextMessage, join); err != nil {
		return fmt.Errorf("joining table: %w", err)
	}

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		<-ctx.Done()
		_ = conn.Close()
		return nil
	})
	group.Go(func() error {
		defer func() { _ = conn.Close() }()
		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				return fmt.Errorf("reading from server: %w", err)
			}

			done, err := c.handle(ctx, conn, data)
			if err != nil {
				return err
			}
			if done {
				return errDone
			}
		}
	})

	if err := group.Wait(); err != nil && !errors.Is(err, errDone) {
		return err
	}
	return nil
}

// errDone stops the errgroup without reporting a failure.
var errDone = errors.New("game finished")

// handle processes one server message. It reports done once the game has a
// winner.
func (c *Client) handle(ctx context.Context, conn *websocket.Conn, data []byte) (bool, error) {
	msg, err := protocol.Decode(data)
	if err != nil {
		c.logger.Warn("undecodable message", "error", err)
		return false, nil
	}

	switch m := msg.(type) {
	case *protocol.ActionRequest:
		req, err := m.BetRequest()
		if err != nil {
			return false, fmt.Errorf("bad action request: %w", err)
		}

		action, err := c.actor.PlaceBet(ctx, req)
		if err != nil {
			return false, err
		}
		answer, err := protocol.Marshal(protocol.NewAction(action))
		if err != nil {
			return false, err
		}
		if err := conn.WriteMessage(websocket.TextMessage, answer); err != nil {
			return false, fmt.Errorf("sending action: %w", err)
		}
		return false, nil

	case *protocol.Error:
		c.logger.Warn("server error", "message", m.Message)
		return false, nil

	default:
		ev, err := protocol.ToEvent(msg)
		if err != nil {
			c.logger.Warn("unhandled message", "error", err)
			return false, nil
		}
		c.actor.Update(ev)
		_, finished := ev.(game.GameWinnerEvent)
		return finished, nil
	}
}

// websocketURL converts an http(s) or ws(s) URL to the server's ws endpoint.
func websocketURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid server URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}
	return u.String(), nil
}
