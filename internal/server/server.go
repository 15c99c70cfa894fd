package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"citydrive/internal/drive"
)

const (
	DefaultTickRate = 60
	handshakeWait   = 5 * time.Second
	writeWait       = 5 * time.Second
	readWait        = 60 * time.Second
)

type Config struct {
	Addr        string
	TickRate    int
	Game        drive.Config
	Profiles    drive.ProfileSet
	VehiclePath string
}

// Server streams one private simulation per websocket connection.
type Server struct {
	cfg      Config
	log      *zap.Logger
	upgrader websocket.Upgrader
	sessions atomic.Int64
}

func New(cfg Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = DefaultTickRate
	}
	if len(cfg.Profiles.Profiles) == 0 {
		cfg.Profiles = drive.MustDefaultProfiles()
	}
	return &Server{
		cfg: cfg,
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "sessions": s.sessions.Load()})
	})
	return mux
}

// Run serves until ctx is cancelled; open sessions end with it.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	grp, ctx := errgroup.WithContext(ctx)
	grp.Go(func() error {
		s.log.Info("listening", zap.String("addr", s.cfg.Addr), zap.Int("tick_rate", s.cfg.TickRate))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return grp.Wait()
}

func (s *Server) handleWS(rw http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(rw, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	sess, err := s.handshake(r.Context(), conn)
	if err != nil {
		s.log.Debug("handshake failed", zap.Error(err))
		return
	}

	s.sessions.Add(1)
	defer s.sessions.Add(-1)
	sess.log.Info("session started")

	grp, ctx := errgroup.WithContext(r.Context())
	grp.Go(func() error { return sess.readLoop(ctx) })
	grp.Go(func() error {
		defer conn.Close()
		return sess.run(ctx)
	})
	err = grp.Wait()
	sess.log.Info("session ended", zap.Uint64("ticks", sess.game.Snapshot().Tick), zap.NamedError("cause", err))
}

func (s *Server) handshake(ctx context.Context, conn *websocket.Conn) (*session, error) {
	_ = conn.SetReadDeadline(time.Now().Add(handshakeWait))
	_, msg, err := conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("read hello: %w", err)
	}
	hello, err := decodeClientMsg(msg)
	if err != nil {
		closeWith(conn, websocket.ClosePolicyViolation, "expected hello")
		return nil, err
	}
	if hello.Type != TypeHello {
		closeWith(conn, websocket.ClosePolicyViolation, "expected hello")
		return nil, fmt.Errorf("expected hello, got %q", hello.Type)
	}
	if hello.Version != ProtocolVersion {
		closeWith(conn, websocket.ClosePolicyViolation, "bad version")
		return nil, fmt.Errorf("client version %d", hello.Version)
	}

	profile, err := s.cfg.Profiles.Get(hello.Profile)
	if err != nil {
		closeWith(conn, websocket.ClosePolicyViolation, "unknown profile")
		return nil, err
	}
	gcfg := s.sessionConfig(profile)

	id := uuid.New().String()
	log := s.log.With(zap.String("session", id))
	game, err := drive.NewGame(gcfg, log)
	if err != nil {
		closeWith(conn, websocket.CloseInternalServerErr, "game setup failed")
		return nil, fmt.Errorf("new game: %w", err)
	}
	game.Bus.Subscribe(drive.EventItemCollected, func(e drive.Event) {
		log.Info("pickup", zap.String("time", e.Text))
	})

	welcome := Welcome{
		Type:      TypeWelcome,
		Version:   ProtocolVersion,
		SessionID: id,
		Profile:   profile.Name,
		Profiles:  s.cfg.Profiles.Names(),
		TickRate:  s.cfg.TickRate,
		Layout:    game.Layout,
		Rain: RainParams{
			Drops:     s.cfg.Game.RainDrops,
			Area:      s.cfg.Game.RainArea,
			MinY:      drive.RainMinY,
			SpanY:     drive.RainSpanY,
			FallSpeed: drive.RainFallSpeed,
		},
	}
	if err := writeJSON(conn, welcome); err != nil {
		return nil, err
	}

	return &session{
		id:      id,
		conn:    conn,
		game:    game,
		log:     log,
		tick:    time.Second / time.Duration(s.cfg.TickRate),
		dt:      1 / float64(s.cfg.TickRate),
		inputs:  make(chan drive.InputState, 1),
		resizes: make(chan [2]int, 1),
		vehicle: drive.LoadVehicleAsync(ctx, s.cfg.VehiclePath, log),
	}, nil
}

// sessionConfig is the game config for one connection. Clients run rain from
// Welcome.Rain, so the session itself simulates none.
func (s *Server) sessionConfig(profile drive.Profile) drive.Config {
	gcfg := s.cfg.Game
	gcfg.Profile = profile
	gcfg.RainDrops = 0
	return gcfg
}

func writeJSON(conn *websocket.Conn, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteMessage(websocket.TextMessage, b)
}

func closeWith(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
}

// session is one connection. run owns the game and is the only writer to
// conn; readLoop only hands messages over through the channels.
type session struct {
	id   string
	conn *websocket.Conn
	game *drive.Game
	log  *zap.Logger

	tick time.Duration
	dt   float64

	inputs  chan drive.InputState
	resizes chan [2]int
	vehicle <-chan drive.VehicleSpec
}

// offer replaces any unread value so the sim always sees the latest one.
func offer[T any](ch chan T, v T) {
	select {
	case <-ch:
	default:
	}
	ch <- v
}

func (ss *session) readLoop(ctx context.Context) error {
	for {
		_ = ss.conn.SetReadDeadline(time.Now().Add(readWait))
		_, msg, err := ss.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("read: %w", err)
		}
		m, err := decodeClientMsg(msg)
		if err != nil {
			ss.log.Debug("dropping message", zap.Error(err))
			continue
		}
		switch m.Type {
		case TypeInput:
			if m.Input != nil {
				offer(ss.inputs, *m.Input)
			}
		case TypeResize:
			offer(ss.resizes, [2]int{m.Width, m.Height})
		default:
			ss.log.Debug("unknown message type", zap.String("type", m.Type))
		}
	}
}

func (ss *session) run(ctx context.Context) error {
	ticker := time.NewTicker(ss.tick)
	defer ticker.Stop()

	var in drive.InputState
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		ss.poll(&in)
		ss.game.Tick(in, ss.dt)

		frame, err := msgpack.Marshal(ss.game.Snapshot())
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		_ = ss.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := ss.conn.WriteMessage(websocket.BinaryMessage, frame); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
	}
}

// poll applies whatever arrived since the last tick without blocking.
func (ss *session) poll(in *drive.InputState) {
	select {
	case v := <-ss.inputs:
		*in = v
	default:
	}
	select {
	case sz := <-ss.resizes:
		ss.game.Resize(sz[0], sz[1])
	default:
	}
	if ss.vehicle == nil {
		return
	}
	select {
	case spec, ok := <-ss.vehicle:
		ss.vehicle = nil
		if !ok {
			return
		}
		if err := ss.game.AttachVehicle(spec); err != nil {
			ss.log.Warn("attach vehicle", zap.Error(err))
		}
	default:
	}
}
