package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/rocketscienceinc/checkers-backend/internal/usecase"
)

const (
	shutdownTimeout = 5 * time.Second

	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 25 * time.Second

	maxMessageSize = 1 << 20
)

type gameUseCase interface {
	NewGame(ctx context.Context, name string) (*usecase.GameState, error)
	GetGame(ctx context.Context, id string) (*usecase.GameState, error)
	LoadGame(ctx context.Context, id string) (*usecase.GameState, error)

	Select(ctx context.Context, id string, pos entity.Position) (*usecase.GameState, error)
	CancelSelection(ctx context.Context, id string) (*usecase.GameState, error)
	LegalMoves(ctx context.Context, id string) ([]checkers.MoveRequest, error)
	MakeMove(ctx context.Context, id string, req checkers.MoveRequest) (*usecase.TurnResult, error)
	BotTurn(ctx context.Context, id string) (*usecase.TurnResult, error)
}

type Server struct {
	logger      *slog.Logger
	gameUseCase gameUseCase
	upgrader    websocket.Upgrader

	handlers map[string]func(ctx context.Context, payload *Payload, client *client) error

	subscribersMutex sync.RWMutex
	subscribers      map[string]map[*client]struct{}
}

func New(logger *slog.Logger, gameUseCase gameUseCase) *Server {
	server := &Server{
		logger:      logger.With("component", "websocket"),
		gameUseCase: gameUseCase,

		upgrader: websocket.Upgrader{
			// clients are served from other origins
			CheckOrigin: func(*http.Request) bool { return true },
		},

		handlers:    make(map[string]func(context.Context, *Payload, *client) error),
		subscribers: make(map[string]map[*client]struct{}),
	}

	server.handlers[actionNewGame] = server.handleNewGame
	server.handlers[actionJoinGame] = server.handleJoinGame
	server.handlers[actionLoadGame] = server.handleLoadGame
	server.handlers[actionLeaveGame] = server.handleLeaveGame
	server.handlers[actionSelect] = server.handleSelect
	server.handlers[actionCancel] = server.handleCancel
	server.handlers[actionLegalMoves] = server.handleLegalMoves
	server.handlers[actionMove] = server.handleMove
	server.handlers[actionBotTurn] = server.handleBotTurn

	return server
}

// Handler serves the WebSocket endpoint. Open connections are closed once ctx is done.
func (that *Server) Handler(ctx context.Context) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		that.upgradeToWebSocket(ctx, w, r)
	})

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(ctx),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(ctx context.Context, writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeConnection")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageSize)
	if err = conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error("failed to set read deadline", "error", err)
		return
	}
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	log.Info("WebSocket connection established")

	done := make(chan struct{})
	defer close(done)
	go that.keepAlive(ctx, conn, done)

	c := newClient(conn)
	defer that.unsubscribeAll(c)

	if err = that.handleMessages(ctx, c); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// keepAlive pings the client until the connection is done, and closes it once ctx is done.
func (that *Server) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			_ = conn.Close()
			return
		case <-done:
			return
		}
	}
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, c *client) error {
	log := that.logger.With("method", "handleMessages")

	for {
		msgType, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("failed to read message: %w", err)
		}

		if msgType != websocket.TextMessage {
			continue
		}

		var message Message
		if err = json.Unmarshal(data, &message); err != nil {
			log.Error("failed to unmarshal message", "error", err)
			that.sendError(c, actionError, "malformed message")
			continue
		}

		if err = that.processMessage(ctx, &message, c); err != nil {
			log.Error("error processing message", "action", message.Action, "error", err)
		}
	}
}

var ErrUnknownAction = errors.New("unknown action")

// processMessage - processes an incoming message from the client.
func (that *Server) processMessage(ctx context.Context, msg *Message, c *client) error {
	handler, ok := that.handlers[msg.Action]
	if !ok {
		that.sendError(c, msg.Action, ErrUnknownAction.Error())
		return fmt.Errorf("%w: %s", ErrUnknownAction, msg.Action)
	}

	var payload Payload
	if len(msg.Payload) > 0 {
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			that.sendError(c, msg.Action, "malformed payload")
			return fmt.Errorf("failed to unmarshal payload: %w", err)
		}
	}

	return handler(ctx, &payload, c)
}

func (that *Server) subscribe(gameID string, c *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	clients, ok := that.subscribers[gameID]
	if !ok {
		clients = make(map[*client]struct{})
		that.subscribers[gameID] = clients
	}

	clients[c] = struct{}{}
	c.games[gameID] = struct{}{}
}

func (that *Server) unsubscribe(gameID string, c *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	that.unsubscribeLocked(gameID, c)
}

func (that *Server) unsubscribeAll(c *client) {
	that.subscribersMutex.Lock()
	defer that.subscribersMutex.Unlock()

	for gameID := range c.games {
		that.unsubscribeLocked(gameID, c)
	}
}

func (that *Server) unsubscribeLocked(gameID string, c *client) {
	delete(c.games, gameID)

	clients, ok := that.subscribers[gameID]
	if !ok {
		return
	}

	delete(clients, c)
	if len(clients) == 0 {
		delete(that.subscribers, gameID)
	}
}

// broadcast sends an update to every client watching gameID except the sender.
func (that *Server) broadcast(gameID string, sender *client, payload ResponsePayload) {
	log := that.logger.With("method", "broadcast", "gameID", gameID)

	that.subscribersMutex.RLock()
	clients := make([]*client, 0, len(that.subscribers[gameID]))
	for c := range that.subscribers[gameID] {
		if c != sender {
			clients = append(clients, c)
		}
	}
	that.subscribersMutex.RUnlock()

	for _, c := range clients {
		if err := c.sendMessage(actionUpdate, payload); err != nil {
			log.Warn("failed to send update", "error", err)
		}
	}
}

func (that *Server) sendError(c *client, action, message string) {
	if err := c.sendMessage(action, ResponsePayload{Error: message}); err != nil {
		that.logger.Error("failed to send error response", "action", action, "error", err)
	}
}
