package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/leighmacdonald/gridiron-tui/internal/config"
	"github.com/leighmacdonald/gridiron-tui/internal/datasource"
	"github.com/leighmacdonald/gridiron-tui/internal/draw"
	"github.com/leighmacdonald/gridiron-tui/internal/field"
	"github.com/leighmacdonald/gridiron-tui/internal/playback"
	"github.com/leighmacdonald/gridiron-tui/internal/visualizer"
	"golang.org/x/exp/slices"
)

const (
	serviceName     = "gridiron-tui"
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 10 * time.Second
)

var (
	ErrServe    = errors.New("failed to serve http")
	ErrShutdown = errors.New("failed to shutdown http server")
)

//go:embed static/index.html
var staticFS embed.FS

// Server drives a single shared playback session and mirrors its document to every connected
// browser. The controller is only touched from the loop goroutine.
type Server struct {
	conf     config.Config
	hub      *Hub
	loop     *playback.Loop
	ctrl     *playback.Controller
	doc      *draw.Document
	weeks    []string
	fetchErr error
	upgrader websocket.Upgrader
	ctx      context.Context //nolint:containedctx
}

// New builds the server. A non nil fetchErr puts it in the error state where every command
// is rejected.
func New(conf config.Config, dataset datasource.Dataset, fetchErr error) *Server {
	doc := draw.NewDocument(field.LengthYards, field.WidthYards)
	field.Render(doc)

	loop := playback.NewLoop()
	vis := visualizer.New(doc, field.NewMapper(conf.LeftToRightTeam), dataset.Teams)

	server := &Server{
		conf:     conf,
		hub:      NewHub(),
		loop:     loop,
		ctrl:     playback.NewController(vis, loop, dataset.Frames, conf.Speed()),
		doc:      doc,
		weeks:    dataset.Weeks,
		fetchErr: fetchErr,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
		},
		ctx: context.Background(),
	}

	doc.Subscribe(func(op draw.Op) {
		server.hub.Broadcast(newMessage(MessageOp, op))
	})
	server.ctrl.OnChange(func(state playback.State) {
		server.hub.Broadcast(newMessage(MessageState, statePayload(state)))
	})

	if fetchErr == nil && len(dataset.Weeks) > 0 {
		server.ctrl.SelectWeek(dataset.Weeks[0])
	}

	return server
}

// Start runs the playback loop and the hub until ctx is cancelled.
func (s *Server) Start(ctx context.Context) {
	s.ctx = ctx

	go s.loop.Run(ctx)
	go s.hub.Run(ctx)
}

// ListenAndServe starts the server on the configured listen address and shuts it down
// gracefully once ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.Start(ctx)

	httpServer := &http.Server{
		Addr:              s.conf.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errChan := make(chan error, 1)

	go func() {
		slog.Info("Starting http server", slog.String("addr", s.conf.ListenAddr))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
		close(errChan)
	}()

	select {
	case err := <-errChan:
		if err != nil {
			return errors.Join(err, ErrServe)
		}

		return nil
	case <-ctx.Done():
	}

	slog.Info("Shutting down http server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Join(err, ErrShutdown)
	}

	return nil
}

// Handler returns the router serving the page, the document and the websocket.
func (s *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Group(func(r chi.Router) {
		r.Use(requestLogger)
		r.Use(chimiddleware.Timeout(requestTimeout))
		r.Get("/", s.handleIndex)
		r.Get("/field.svg", s.handleFieldSVG)
		r.Get("/health", s.handleHealth)
		r.Route("/api", func(r chi.Router) {
			r.Get("/weeks", s.handleWeeks)
		})
	})

	router.Get("/ws", s.handleWebSocket)

	return router
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	page, err := staticFS.ReadFile("static/index.html")
	if err != nil {
		http.Error(w, "missing index", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}

func (s *Server) handleFieldSVG(w http.ResponseWriter, _ *http.Request) {
	var buf bytes.Buffer
	if err := s.doc.WriteSVG(&buf); err != nil {
		slog.Error("Failed to render svg", slog.String("error", err.Error()))
		http.Error(w, "failed to render field", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleWeeks(w http.ResponseWriter, _ *http.Request) {
	if s.fetchErr != nil {
		writeJSON(w, http.StatusServiceUnavailable, WeeksResponse{Weeks: []string{}, Error: s.fetchErr.Error()})

		return
	}

	weeks := s.weeks
	if weeks == nil {
		weeks = []string{}
	}

	writeJSON(w, http.StatusOK, WeeksResponse{Weeks: weeks})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "healthy"
	if s.fetchErr != nil {
		status = "degraded"
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:        status,
		Service:       serviceName,
		ActiveClients: s.hub.ClientCount(),
		Timestamp:     time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("Failed to upgrade websocket", slog.String("error", err.Error()))

		return
	}

	client := NewClient(uuid.New().String(), conn, s.hub, s.handleCommand)
	if !s.hub.Register(client) {
		_ = conn.Close()

		return
	}

	go client.WritePump(s.ctx)

	if errDo := s.loop.Do(s.ctx, func() { s.sendSnapshot(client) }); errDo != nil {
		slog.Warn("Failed to send snapshot", slog.String("id", client.ID), slog.String("error", errDo.Error()))
	}

	if s.fetchErr != nil {
		client.TrySend(errorMessage("data_unavailable", s.fetchErr.Error()))
	}

	go client.ReadPump(s.ctx)
}

// sendSnapshot queues the full document and state for a newly connected client. It runs on
// the loop goroutine so no op is applied between the two being captured.
func (s *Server) sendSnapshot(client *Client) {
	var buf bytes.Buffer
	if err := s.doc.WriteSVG(&buf); err != nil {
		slog.Error("Failed to render snapshot", slog.String("error", err.Error()))

		return
	}

	client.TrySend(newMessage(MessageSnapshot, SnapshotPayload{
		SVG:   buf.String(),
		State: statePayload(s.ctrl.State()),
	}))
}

func (s *Server) handleCommand(ctx context.Context, client *Client, msg ClientMessage) {
	if s.fetchErr != nil {
		client.TrySend(errorMessage("data_unavailable", s.fetchErr.Error()))

		return
	}

	var reply *ServerMessage
	if err := s.loop.Do(ctx, func() { reply = s.apply(msg) }); err != nil {
		slog.Warn("Failed to run command", slog.String("type", string(msg.Type)), slog.String("error", err.Error()))

		return
	}

	if reply != nil {
		client.TrySend(*reply)
	}
}

// apply executes msg against the controller. It returns an error reply for commands that
// cannot be applied.
func (s *Server) apply(msg ClientMessage) *ServerMessage {
	switch msg.Type {
	case MessageSelectWeek:
		if !slices.Contains(s.weeks, msg.Week) {
			reply := errorMessage("unknown_week", "unknown week: "+msg.Week)

			return &reply
		}

		s.ctrl.SelectWeek(msg.Week)
	case MessageTogglePlay:
		s.ctrl.TogglePlay()
	case MessageStep:
		switch {
		case msg.Dir < 0:
			s.ctrl.Step(playback.Prev)
		case msg.Dir > 0:
			s.ctrl.Step(playback.Next)
		default:
			reply := errorMessage("invalid_direction", "dir must be -1 or 1")

			return &reply
		}
	case MessageSpeed:
		s.ctrl.SetInterval(time.Duration(msg.Ms) * time.Millisecond)
	case MessageSeek:
		s.ctrl.Seek(msg.Index)
	default:
		reply := errorMessage("unknown_message_type", "unknown message type: "+string(msg.Type))

		return &reply
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(value); err != nil {
		slog.Error("Failed to encode response", slog.String("error", err.Error()))
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		writer := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(writer, r)

		slog.Debug("HTTP request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", writer.Status()),
			slog.Duration("elapsed", time.Since(start)),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())))
	})
}
