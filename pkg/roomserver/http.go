package roomserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/decred/slog"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

const (
	maxRoomNameLen   = 24
	maxPlayerNameLen = 40
)

// Server wires the registry to the HTTP/WebSocket surface described in
// spec.md §6.
type Server struct {
	registry *Registry
	upgrader websocket.Upgrader
	log      slog.Logger
}

// NewServer builds a Server bound to registry.
func NewServer(registry *Registry, log slog.Logger) *Server {
	return &Server{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		log: log,
	}
}

// Mux returns the handler tree for rooms listing, deletion, and the
// websocket upgrade endpoint.
func (s *Server) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/rooms", s.handleRooms)
	mux.HandleFunc("/rooms/", s.handleRoomByName)
	mux.HandleFunc("/websocket", s.handleWebsocket)
	return mux
}

func (s *Server) handleRooms(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rooms": s.registry.List()})
}

func (s *Server) handleRoomByName(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/rooms/")
	if name == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "room not found"})
		return
	}

	actor := s.registry.Get(name)
	if actor == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "room not found"})
		return
	}

	token := r.URL.Query().Get("creatorToken")
	var isCreator bool
	actor.call(func(a *roomActor) { isCreator = a.room.IsCreator(token) })
	if !isCreator {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "creator token required"})
		return
	}

	s.registry.Delete(name)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	roomName := truncate(q.Get("room"), maxRoomNameLen)
	playerName := truncate(q.Get("name"), maxPlayerNameLen)
	password := q.Get("password")
	create := q.Get("create") == "1"
	creatorToken := q.Get("creatorToken")
	botDifficulty := euchre.BotDifficulty(q.Get("botDifficulty"))
	if botDifficulty == "" {
		botDifficulty = euchre.DifficultyMedium
	}

	if roomName == "" || playerName == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "room and name are required"})
		return
	}

	actor := s.registry.Get(roomName)
	isNewRoom := false
	if actor == nil {
		if !create {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": "room does not exist"})
			return
		}
		var err error
		actor, err = s.registry.Create(roomName, password, botDifficulty)
		if err != nil {
			writeJSON(w, http.StatusConflict, map[string]any{"error": err.Error()})
			return
		}
		isNewRoom = true
	}

	// Every read of room state and the seat assignment itself must run on
	// the room's own actor goroutine: the actor may concurrently be
	// mutating Players/Game from a scheduler tick fired by time.AfterFunc,
	// and this handler runs on the HTTP accept goroutine.
	var (
		creatorMatches bool
		roomPassword   string
	)
	if !isNewRoom {
		actor.call(func(a *roomActor) {
			creatorMatches = a.room.IsCreator(creatorToken)
			roomPassword = a.room.Password
		})
		if create && !creatorMatches {
			writeJSON(w, http.StatusConflict, map[string]any{"error": "room already exists"})
			return
		}
	} else {
		actor.call(func(a *roomActor) { roomPassword = a.room.Password })
	}

	if roomPassword != "" && roomPassword != password {
		writeJSON(w, http.StatusForbidden, map[string]any{"error": "invalid password"})
		return
	}

	var (
		player  *euchre.Player
		joinErr error
	)
	actor.call(func(a *roomActor) { player, joinErr = a.room.AddHumanPlayer(playerName) })
	if joinErr != nil {
		writeJSON(w, http.StatusConflict, map[string]any{"error": joinErr.Error()})
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Errorf("upgrade %s: %v", roomName, err)
		return
	}

	sess := newSession(uuid.NewString(), roomName, player.ID, conn, s.log)
	sess.isCreator = isNewRoom || creatorMatches
	sess.pendingCreatorToken = isNewRoom

	go sess.writePump()
	actor.submit(func(a *roomActor) { a.attach(sess) })

	sess.readPump(
		func(msg ClientMessage) { actor.submit(func(a *roomActor) { a.handleMessage(sess, msg) }) },
		func() { actor.submit(func(a *roomActor) { a.detach(sess) }) },
	)
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
