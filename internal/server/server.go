package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/lox/holdem/internal/bot"
	"github.com/lox/holdem/internal/game"
	"github.com/lox/holdem/internal/protocol"
	"github.com/lox/holdem/internal/randutil"
)

// Server hosts the configured tables over websockets. House bots are seated
// when a table is created; each remote player takes a seat with a join
// message, and a table's game starts the moment its last seat fills.
type Server struct {
	cfg       *Config
	logger    *log.Logger
	engineLog zerolog.Logger
	clock     quartz.Clock
	rng       *rand.Rand
	upgrader  websocket.Upgrader

	mu     sync.Mutex
	tables map[string]*table
	first  string

	ctx   context.Context
	group *errgroup.Group
}

type table struct {
	cfg     TableConfig
	g       *game.Game
	started bool
}

// Option configures a Server.
type Option func(*Server)

// WithEngineLogger sets the logger handed to each table's game engine.
func WithEngineLogger(logger zerolog.Logger) Option {
	return func(s *Server) { s.engineLog = logger }
}

// WithClock substitutes the clock used for action timeouts.
func WithClock(clock quartz.Clock) Option {
	return func(s *Server) { s.clock = clock }
}

// WithRNG sets the RNG shared by all tables and their house bots, for
// deterministic runs.
func WithRNG(rng *rand.Rand) Option {
	return func(s *Server) { s.rng = rng }
}

// New creates a server from a validated config.
func New(cfg *Config, logger *log.Logger, opts ...Option) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		logger:    logger.WithPrefix("server"),
		engineLog: zerolog.Nop(),
		clock:     quartz.NewReal(),
		rng:       randutil.New(time.Now().UnixNano()),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		tables: make(map[string]*table),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, tc := range cfg.Tables {
		t, err := s.newTable(tc)
		if err != nil {
			return nil, err
		}
		s.tables[tc.Name] = t
		if s.first == "" {
			s.first = tc.Name
		}
	}
	return s, nil
}

// newTable creates a table's game and seats its house bots.
func (s *Server) newTable(tc TableConfig) (*table, error) {
	g := game.New(tc.BigBlind, tc.MaxPlayers,
		game.WithLogger(s.engineLog.With().Str("table", tc.Name).Logger()),
		game.WithRNG(s.rng))

	for _, bc := range s.cfg.BotsForTable(tc.Name) {
		actor, err := bot.ByName(bc.Strategy, s.rng, s.logger)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", tc.Name, err)
		}
		if err := g.AddPlayerWithStack(bc.Name, tc.BuyIn, actor); err != nil {
			return nil, fmt.Errorf("seating bot %s: %w", bc.Name, err)
		}
	}

	s.logger.Info("table ready", "table", tc.Name,
		"seats", tc.MaxPlayers, "bots", len(g.Players()), "bigBlind", tc.BigBlind)
	return &table{cfg: tc, g: g}, nil
}

// Run serves websocket connections until the context is cancelled or a table
// fails with an internal error. Games run on the same errgroup as the HTTP
// listener.
func (s *Server) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)
	s.mu.Lock()
	s.ctx = ctx
	s.group = group
	s.mu.Unlock()

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpServer := &http.Server{Addr: s.cfg.ListenAddress(), Handler: mux}

	group.Go(func() error {
		s.logger.Info("listening", "addr", s.cfg.ListenAddress())
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

// handleWebSocket upgrades a connection and drives its message loop. The
// first message must be a join; after seating, only actions are accepted.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("upgrade failed", "error", err)
		return
	}

	conn := NewConn(ws, s.logger)
	defer func() { _ = conn.Close() }()

	var actor *RemoteActor
	conn.Run(func(data []byte) {
		msg, err := protocol.Decode(data)
		if err != nil {
			s.sendError(conn, err)
			return
		}

		switch m := msg.(type) {
		case *protocol.Join:
			if actor != nil {
				s.sendError(conn, errors.New("already seated"))
				return
			}
			seated, err := s.seat(m, conn)
			if err != nil {
				s.sendError(conn, err)
				return
			}
			actor = seated

		case *protocol.Action:
			if actor == nil {
				s.sendError(conn, errors.New("join a table first"))
				return
			}
			if err := actor.HandleAction(m); err != nil {
				s.sendError(conn, err)
			}

		default:
			s.sendError(conn, fmt.Errorf("unexpected message %T", msg))
		}
	})
}

// seat adds a remote player to the requested table, starting its game when
// the last seat fills.
func (s *Server) seat(join *protocol.Join, conn *Conn) (*RemoteActor, error) {
	if join.Name == "" {
		return nil, errors.New("join requires a name")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	name := join.Table
	if name == "" {
		name = s.first
	}
	t, ok := s.tables[name]
	if !ok {
		return nil, fmt.Errorf("unknown table %q", name)
	}
	if t.started {
		return nil, fmt.Errorf("table %s: game in progress", name)
	}

	timeout := time.Duration(t.cfg.ActionTimeout) * time.Second
	actor := NewRemoteActor(join.Name, conn, s.logger, timeout, s.clock)
	if err := t.g.AddPlayerWithStack(join.Name, t.cfg.BuyIn, actor); err != nil {
		return nil, err
	}
	s.logger.Info("player seated", "table", name, "player", join.Name,
		"seats", fmt.Sprintf("%d/%d", len(t.g.Players()), t.cfg.MaxPlayers))

	if len(t.g.Players()) == t.cfg.MaxPlayers {
		t.started = true
		s.group.Go(func() error { return s.play(t) })
	}
	return actor, nil
}

// play runs one table's game to completion. A pot accounting failure is the
// only game error that takes the server down.
func (s *Server) play(t *table) error {
	s.logger.Info("game starting", "table", t.cfg.Name)

	winner, err := t.g.Play(s.ctx)
	switch {
	case errors.Is(err, context.Canceled):
		return nil
	case err != nil:
		return fmt.Errorf("table %s: %w", t.cfg.Name, err)
	}

	s.logger.Info("game over", "table", t.cfg.Name, "winner", winner)
	return nil
}

func (s *Server) sendError(conn *Conn, err error) {
	s.logger.Warn("client error", "error", err)
	data, merr := protocol.Marshal(&protocol.Error{Type: protocol.TypeError, Message: err.Error()})
	if merr != nil {
		return
	}
	_ = conn.Send(data)
}
