package roomserver

import (
	"fmt"
	"sync"
	"time"

	"github.com/decred/slog"
	"github.com/gorilla/websocket"

	"github.com/cardtable/euchre-rooms/pkg/euchre"
	"github.com/cardtable/euchre-rooms/pkg/store"
)

// Registry owns the room table: creation, lookup, and TTL reaping. Per
// spec.md §5, the table itself is only written by the connection accept
// path, creator deletion, and the reaper; once an actor exists for a room, only that actor's
// own goroutine mutates the room it owns. Modeled on the teacher's
// sync.RWMutex-guarded table of live games.
type Registry struct {
	mu     sync.RWMutex
	actors map[string]*roomActor
	store  *store.Store
	log    slog.Logger
}

// NewRegistry constructs an empty registry backed by st.
func NewRegistry(st *store.Store, log slog.Logger) *Registry {
	return &Registry{
		actors: make(map[string]*roomActor),
		store:  st,
		log:    log,
	}
}

// Bootstrap restores every persisted room on cold start and starts its
// actor goroutine, so a process restart never drops an in-progress game.
func (reg *Registry) Bootstrap() error {
	rooms, err := reg.store.LoadAll()
	if err != nil {
		return err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	for name, room := range rooms {
		actor := newRoomActor(room, reg, reg.log)
		reg.actors[name] = actor
		go actor.run()
		actor.submit(func(a *roomActor) { a.kickOff() })
	}
	return nil
}

// Get returns the live actor for name, or nil if no such room exists or it
// has expired past its TTL (in which case it is torn down and reaped).
func (reg *Registry) Get(name string) *roomActor {
	reg.mu.RLock()
	actor := reg.actors[name]
	reg.mu.RUnlock()
	if actor == nil {
		return nil
	}

	var expired bool
	actor.call(func(a *roomActor) { expired = a.room.Expired(time.Now()) })
	if expired {
		reg.reap(name)
		return nil
	}
	return actor
}

// Create seats a brand-new room under name, failing if one already exists.
func (reg *Registry) Create(name, password string, botDifficulty euchre.BotDifficulty) (*roomActor, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if _, exists := reg.actors[name]; exists {
		return nil, fmt.Errorf("room %q already exists", name)
	}

	room := euchre.NewRoom(name, password, botDifficulty)
	actor := newRoomActor(room, reg, reg.log)
	reg.actors[name] = actor
	go actor.run()
	return actor, nil
}

// Delete removes name's room, tearing down its actor and persisted row.
// Returns false if the room does not exist.
func (reg *Registry) Delete(name string) bool {
	reg.mu.Lock()
	actor, ok := reg.actors[name]
	if ok {
		delete(reg.actors, name)
	}
	reg.mu.Unlock()

	if !ok {
		return false
	}
	actor.shutdown(websocket.CloseGoingAway, "room deleted")
	if err := reg.store.DeleteRoom(name); err != nil {
		reg.log.Errorf("delete persisted room %s: %v", name, err)
	}
	return true
}

// reap tears down an expired room, matching Delete's teardown but triggered
// by TTL rather than the creator.
func (reg *Registry) reap(name string) {
	reg.mu.Lock()
	actor, ok := reg.actors[name]
	if ok {
		delete(reg.actors, name)
	}
	reg.mu.Unlock()

	if !ok {
		return
	}
	actor.shutdown(websocket.CloseGoingAway, "room deleted")
	if err := reg.store.DeleteRoom(name); err != nil {
		reg.log.Errorf("delete reaped room %s: %v", name, err)
	}
}

// RoomSummary is the listing entry returned by the HTTP rooms index.
type RoomSummary struct {
	Name          string               `json:"name"`
	Players       int                  `json:"players"`
	MaxPlayers    int                  `json:"maxPlayers"`
	BotCount      int                  `json:"botCount"`
	BotDifficulty euchre.BotDifficulty `json:"botDifficulty"`
	HasPassword   bool                 `json:"hasPassword"`
	Status        euchre.RoomStatus    `json:"status"`
	CreatedAt     time.Time            `json:"createdAt"`
}

// List returns a summary of every non-expired room, sorted by creation
// time ascending. Expired rooms are reaped as a side effect of listing.
func (reg *Registry) List() []RoomSummary {
	reg.mu.RLock()
	names := make([]string, 0, len(reg.actors))
	for name := range reg.actors {
		names = append(names, name)
	}
	reg.mu.RUnlock()

	now := time.Now()
	summaries := make([]RoomSummary, 0, len(names))
	for _, name := range names {
		actor := reg.Get(name)
		if actor == nil {
			continue
		}

		var (
			summary RoomSummary
			expired bool
		)
		actor.call(func(a *roomActor) {
			room := a.room
			if room.Expired(now) {
				expired = true
				return
			}
			summary = RoomSummary{
				Name:          room.Name,
				Players:       room.SeatedCount(),
				MaxPlayers:    room.MaxPlayers,
				BotCount:      room.BotCount,
				BotDifficulty: room.BotDifficulty,
				HasPassword:   room.Password != "",
				Status:        room.Status,
				CreatedAt:     room.CreatedAt,
			}
		})
		if expired {
			continue
		}
		summaries = append(summaries, summary)
	}

	for i := 1; i < len(summaries); i++ {
		for j := i; j > 0 && summaries[j].CreatedAt.Before(summaries[j-1].CreatedAt); j-- {
			summaries[j], summaries[j-1] = summaries[j-1], summaries[j]
		}
	}
	return summaries
}

// ReapExpired sweeps every room past its TTL; intended to be driven by a
// periodic ticker in cmd/euchresrv.
func (reg *Registry) ReapExpired() {
	reg.mu.RLock()
	names := make([]string, 0, len(reg.actors))
	for name := range reg.actors {
		names = append(names, name)
	}
	reg.mu.RUnlock()

	now := time.Now()
	for _, name := range names {
		reg.mu.RLock()
		actor, ok := reg.actors[name]
		reg.mu.RUnlock()
		if !ok {
			continue
		}

		var expired bool
		actor.call(func(a *roomActor) { expired = a.room.Expired(now) })
		if expired {
			reg.reap(name)
		}
	}
}

// Shutdown closes every live actor, used on graceful process exit.
func (reg *Registry) Shutdown() {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	for _, actor := range reg.actors {
		actor.shutdown(websocket.CloseGoingAway, "server shutting down")
	}
}
