package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	sessionCookie    = "tictactoe_session"
	defaultCookieTTL = 24 * time.Hour
	shutdownTimeout  = 5 * time.Second
)

type gameUseCase interface {
	GetOrCreateSession(ctx context.Context, id string) (*entity.Session, error)

	MakeTurn(ctx context.Context, id string, cell int) (*entity.Session, error)
	ResetGame(ctx context.Context, id string) (*entity.Session, error)
	NextRound(ctx context.Context, id string) (*entity.Session, error)
}

type handlerFunc func(ctx context.Context, conn *connection, req *Request) (*entity.Session, error)

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	allowedOrigins []string
	cookieTTL      time.Duration

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, gameUseCase gameUseCase, opts ...Option) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,
		cookieTTL:   defaultCookieTTL,

		handlers: make(map[string]handlerFunc),
	}

	for _, opt := range opts {
		opt(server)
	}

	server.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     server.checkOrigin,
	}

	server.handlers[actionConnect] = server.handleConnect
	server.handlers[actionTurn] = server.handleTurn
	server.handlers[actionReset] = server.handleReset
	server.handlers[actionNextRound] = server.handleNextRound

	return server
}

func (that *Server) Handler() http.Handler {
	router := chi.NewRouter()
	router.Get("/ws", that.upgradeToWebSocket)

	return router
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           that.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			that.logger.Error("failed to shut down WebSocket server", "error", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
// The connection starts on the session named by the cookie, or a new one, and the cookie is (re)issued.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	if !that.checkOrigin(req) {
		log.Warn("origin not allowed", "origin", req.Header.Get("Origin"))
		http.Error(writer, http.StatusText(http.StatusForbidden), http.StatusForbidden)

		return
	}

	var sessionID string
	if cookie, err := req.Cookie(sessionCookie); err == nil {
		sessionID = cookie.Value
		log.Debug("session cookie found", "sessionID", sessionID)
	}

	session, err := that.gameUseCase.GetOrCreateSession(req.Context(), sessionID)
	if err != nil {
		log.Error("failed to get or create session", "error", err)
		http.Error(writer, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)

		return
	}

	header := http.Header{}
	header.Add("Set-Cookie", that.sessionCookie(session.ID).String())

	ws, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer ws.Close()

	conn := &connection{ws: ws, sessionID: session.ID}

	log.Info("WebSocket connection established", "sessionID", session.ID)

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Info("connection closed", "error", err)
	}
}

// sessionCookie - builds the cookie that lets a reloaded page resume its game.
func (that *Server) sessionCookie(id string) *http.Cookie {
	cookie := &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/ws",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	if that.cookieTTL > 0 {
		cookie.MaxAge = int(that.cookieTTL.Seconds())
	}

	return cookie
}

// checkOrigin - accepts requests without Origin, same-host pages and the configured origins.
func (that *Server) checkOrigin(req *http.Request) bool {
	origin := req.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range that.allowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}

	return strings.EqualFold(u.Host, req.Host)
}

// handleMessages - processes messages from the client one at a time.
func (that *Server) handleMessages(ctx context.Context, conn *connection) error {
	log := that.logger.With("method", "handleMessages")

	for {
		var message Message
		if err := conn.ws.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}

			return fmt.Errorf("failed to read message: %w", err)
		}

		handler, ok := that.handlers[message.Action]
		if !ok {
			log.Warn("unknown action", "action", message.Action)

			if err := conn.send(actionUnknown, Response{Error: "unknown action: " + message.Action}); err != nil {
				return err
			}

			continue
		}

		var req Request
		if len(message.Payload) > 0 {
			if err := json.Unmarshal(message.Payload, &req); err != nil {
				log.Warn("failed to unmarshal payload", "action", message.Action, "error", err)

				if err = conn.send(message.Action, Response{Error: "invalid payload"}); err != nil {
					return err
				}

				continue
			}
		}

		session, err := handler(ctx, conn, &req)

		resp := Response{Session: session}
		if err != nil {
			var rejected bool
			resp.Error, rejected = clientError(err)

			if rejected {
				log.Debug("action rejected", "action", message.Action, "error", err)
			} else {
				log.Error("error processing message", "action", message.Action, "error", err)
			}
		}

		if err = conn.send(message.Action, resp); err != nil {
			return err
		}
	}
}
