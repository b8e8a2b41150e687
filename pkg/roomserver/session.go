package roomserver

import (
	"encoding/json"
	"time"

	"github.com/decred/slog"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// Session binds one live websocket connection to a seated player, per
// spec.md §3's {sessionId, roomName, playerId}.
type Session struct {
	id       string
	roomName string
	playerID string

	conn *websocket.Conn
	out  chan ServerMessage
	log  slog.Logger

	// pendingCreatorToken is set once, on the session created by the room's
	// creator, so the very next broadcast includes the creatorToken field
	// (spec.md §4.5: "returned once to that client").
	pendingCreatorToken bool

	// isCreator marks a session authenticated with the room's creator token,
	// unlocking the creator-only actions gated in actions.go.
	isCreator bool
}

func newSession(id, roomName, playerID string, conn *websocket.Conn, log slog.Logger) *Session {
	return &Session{
		id:       id,
		roomName: roomName,
		playerID: playerID,
		conn:     conn,
		out:      make(chan ServerMessage, 16),
		log:      log,
	}
}

// send queues msg for delivery without blocking the room actor; a full
// buffer drops the oldest message, matching spec.md §5's "last-write-wins"
// backpressure policy for a slow client.
func (s *Session) send(msg ServerMessage) {
	select {
	case s.out <- msg:
	default:
		select {
		case <-s.out:
		default:
		}
		select {
		case s.out <- msg:
		default:
		}
	}
}

// writePump drains queued messages to the socket until it closes, and
// sends a control-frame ping every pingPeriod so a connection with no
// chatter still resets the peer's write side and, via the answering pong,
// this side's pongWait read deadline set up in readPump.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-s.out:
			if !ok {
				return
			}
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump decodes inbound frames and hands them to onMessage, running
// until the connection errors or closes; onClose always fires exactly
// once on return. A {type:"ping"} frame is answered with a pong right here,
// without being handed to onMessage.
func (s *Session) readPump(onMessage func(ClientMessage), onClose func()) {
	defer onClose()

	s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		s.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.send(errorMessage("malformed message"))
			continue
		}
		if msg.Type == msgTypePing {
			s.send(pongMessage())
			continue
		}
		onMessage(msg)
	}
}

// close sends a close frame, tears down the connection, and stops
// writePump by closing the outbound channel. Must only be called after the
// session has been removed from its room's session map, since send() is
// not safe to call concurrently with a closed out channel.
func (s *Session) close(code int, reason string) {
	deadline := time.Now().Add(writeWait)
	closeMsg := websocket.FormatCloseMessage(code, reason)
	s.conn.WriteControl(websocket.CloseMessage, closeMsg, deadline)
	s.conn.Close()
	close(s.out)
}
