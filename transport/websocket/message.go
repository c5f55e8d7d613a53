package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rocketscienceinc/checkers-backend/internal/checkers"
	"github.com/rocketscienceinc/checkers-backend/internal/entity"
	"github.com/rocketscienceinc/checkers-backend/transport/view"
)

const (
	actionNewGame    = "game:new"
	actionJoinGame   = "game:join"
	actionLoadGame   = "game:load"
	actionLeaveGame  = "game:leave"
	actionSelect     = "game:select"
	actionCancel     = "game:cancel"
	actionLegalMoves = "game:moves"
	actionMove       = "game:move"
	actionBotTurn    = "game:bot"
	actionUpdate     = "game:update"
	actionError      = "error"
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID   string                `json:"game_id,omitempty"`
	Name     string                `json:"name,omitempty"`
	Position *entity.Position      `json:"position,omitempty"`
	Move     *checkers.MoveRequest `json:"move,omitempty"`
}

type ResponsePayload struct {
	Game  *view.Game             `json:"game,omitempty"`
	Turn  *view.Turn             `json:"turn,omitempty"`
	Moves []checkers.MoveRequest `json:"moves,omitempty"`
	Error string                 `json:"error,omitempty"`
}

// client is one WebSocket connection. Writes may come from the reading
// goroutine and from broadcasts, so they are serialized.
type client struct {
	writeMutex sync.Mutex
	conn       *websocket.Conn

	// games is only touched by the goroutine reading from this client.
	games map[string]struct{}
}

func newClient(conn *websocket.Conn) *client {
	return &client{
		conn:  conn,
		games: make(map[string]struct{}),
	}
}

func (that *client) sendMessage(action string, payload ResponsePayload) error {
	rawPayload, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	response, err := json.Marshal(Message{Action: action, Payload: rawPayload})
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	that.writeMutex.Lock()
	defer that.writeMutex.Unlock()

	if err = that.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}

	if err = that.conn.WriteMessage(websocket.TextMessage, response); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}
