package roomserver

import (
	"math/rand"
	"time"

	"github.com/decred/slog"

	"github.com/cardtable/euchre-rooms/pkg/euchre"
	"github.com/cardtable/euchre-rooms/pkg/scheduler"
)

// roomActor is the single-writer goroutine owning one room's authoritative
// state. Every mutation — a client action, a scheduler tick, a reap — runs
// as a closure submitted through commands, so it is impossible for two
// goroutines to touch the same Room concurrently. Modeled on the teacher's
// Table/Game split, generalized to a single actor per the concurrency
// model's single-writer requirement.
type roomActor struct {
	room     *euchre.Room
	registry *Registry
	sessions map[string]*Session

	commands chan func(*roomActor)
	done     chan struct{}

	log slog.Logger
	rng *rand.Rand

	// autoEpoch invalidates stale auto-advance timer fires scheduled by a
	// prior chain, so a fresh client action always takes precedence.
	autoEpoch  int
	chainTicks int
}

func newRoomActor(room *euchre.Room, registry *Registry, log slog.Logger) *roomActor {
	return &roomActor{
		room:     room,
		registry: registry,
		sessions: make(map[string]*Session),
		commands: make(chan func(*roomActor), 32),
		done:     make(chan struct{}),
		log:      log,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// run is the actor's single-writer loop; it must be started in its own
// goroutine and exits when close() closes done.
func (a *roomActor) run() {
	for {
		select {
		case fn := <-a.commands:
			fn(a)
		case <-a.done:
			return
		}
	}
}

// submit enqueues fn to run on the actor's goroutine. It never blocks
// indefinitely on a closed actor: once close() has closed done, the
// select returns without enqueuing.
func (a *roomActor) submit(fn func(*roomActor)) {
	select {
	case a.commands <- fn:
	case <-a.done:
	}
}

// call runs fn on the actor's own goroutine and blocks until it finishes,
// so a caller outside the actor (the HTTP accept path, the registry) can
// read or mutate a.room without racing the actor's own command loop. fn
// should report results by assigning into variables captured from the
// caller's scope.
func (a *roomActor) call(fn func(*roomActor)) {
	finished := make(chan struct{})
	a.submit(func(a *roomActor) {
		fn(a)
		close(finished)
	})
	select {
	case <-finished:
	case <-a.done:
	}
}

func (a *roomActor) close() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
}

// info broadcasts an {type:"info"} message to every attached session.
func (a *roomActor) info(message string) {
	a.broadcastRaw(infoMessage(message))
}

// broadcast sends each attached session its own personalized snapshot.
func (a *roomActor) broadcast() {
	for _, sess := range a.sessions {
		snap := BuildSnapshot(a.room, sess.playerID, sess.pendingCreatorToken)
		sess.pendingCreatorToken = false
		sess.send(stateMessage(snap))
	}
}

func (a *roomActor) broadcastRaw(msg ServerMessage) {
	for _, sess := range a.sessions {
		sess.send(msg)
	}
}

// attach registers a freshly upgraded session and marks its player
// reconnected, then broadcasts so every client sees the updated roster.
func (a *roomActor) attach(sess *Session) {
	a.sessions[sess.id] = sess
	if p := a.room.PlayerByID(sess.playerID); p != nil {
		p.Connected = true
	}
	a.persistAndBroadcast()
	a.kickOff()
}

// detach removes a closed session and marks its player disconnected,
// leaving the seat intact for reconnection-by-name (spec.md §4.5).
func (a *roomActor) detach(sess *Session) {
	delete(a.sessions, sess.id)
	a.room.Disconnect(sess.playerID)
	a.persistAndBroadcast()
	a.kickOff()
}

// handleMessage dispatches one decoded inbound frame.
func (a *roomActor) handleMessage(sess *Session, msg ClientMessage) {
	switch msg.Type {
	case msgTypePing:
		sess.send(pongMessage())
	case msgTypeAction:
		a.handleAction(sess, msg)
	default:
		sess.send(errorMessage("unknown message type"))
	}
}

// closeAllSessions sends every attached session a close frame and detaches
// it, used when the room is deleted or reaped out from under its clients.
func (a *roomActor) closeAllSessions(code int, reason string) {
	for id, sess := range a.sessions {
		sess.close(code, reason)
		delete(a.sessions, id)
	}
}

// shutdown closes every live session and stops the actor's run loop. It is
// safe to call from outside the actor's own goroutine: both the session
// teardown and the final close run as one command on the actor's own
// goroutine, so no session can be left dangling by a race with close().
func (a *roomActor) shutdown(code int, reason string) {
	a.submit(func(a *roomActor) {
		a.closeAllSessions(code, reason)
		a.close()
	})
}

func (a *roomActor) persistAndBroadcast() {
	a.room.UpdatedAt = time.Now()
	if a.registry != nil {
		if err := a.registry.store.SaveRoom(a.room); err != nil {
			a.log.Errorf("persist room %s: %v", a.room.Name, err)
		}
	}
	a.broadcast()
}

// kickOff reschedules the auto-advance chain from the current state,
// bumping autoEpoch so any in-flight timer from a prior chain becomes
// stale and is ignored when it fires. The chain's first action waits the
// same think delay as every later one, rather than firing instantly.
func (a *roomActor) kickOff() {
	a.autoEpoch++
	a.chainTicks = 0
	epoch := a.autoEpoch

	delay := scheduler.InitialDelay(a.room)
	if delay <= 0 {
		a.scheduleNextTick(epoch)
		return
	}
	time.AfterFunc(delay, func() {
		a.submit(func(a *roomActor) { a.scheduleNextTick(epoch) })
	})
}

func (a *roomActor) scheduleNextTick(epoch int) {
	if epoch != a.autoEpoch {
		return
	}
	if a.chainTicks >= scheduler.MaxIterationsPerAdvance {
		a.log.Warnf("room %s: auto-advance hit the %d-iteration safety cap", a.room.Name, scheduler.MaxIterationsPerAdvance)
		return
	}

	acted, delay := scheduler.Step(a.room, a.rng, a.info)
	if !acted {
		return
	}
	a.chainTicks++
	a.persistAndBroadcast()

	if a.room.Game != nil && a.room.Game.Phase == euchre.PhaseGameOver {
		return
	}

	if delay <= 0 {
		a.scheduleNextTick(epoch)
		return
	}
	time.AfterFunc(delay, func() {
		a.submit(func(a *roomActor) { a.scheduleNextTick(epoch) })
	})
}
