package websocket

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
)

// connection is one browser tab. Messages are handled in order, so it needs no lock.
type connection struct {
	ws        *websocket.Conn
	sessionID string
}

func (that *connection) send(action string, resp Response) error {
	payload, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	if err = that.ws.WriteJSON(Message{Action: action, Payload: payload}); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}

	return nil
}

// resolveSession - picks the session named in the request, else the connection's one.
func (that *connection) resolveSession(req *Request) string {
	if req.SessionID != "" {
		return req.SessionID
	}

	return that.sessionID
}
