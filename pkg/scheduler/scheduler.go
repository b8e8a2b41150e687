// Package scheduler paces bot and disconnected-human turns so a room keeps
// moving without a connected human having to wait on someone who stepped
// away. It decides WHAT the next auto-action is and how long to wait
// before performing it; a caller (pkg/roomserver) drives the wall-clock
// timer and owns persistence/broadcast between steps, mirroring how the
// teacher's Game.scheduleAutoStart separates "what to do" from the
// time.AfterFunc that drives it.
package scheduler

import (
	"math/rand"
	"time"

	"github.com/cardtable/euchre-rooms/pkg/botengine"
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// Per-difficulty and disconnected-human think delays: how long the auto
// driver waits before performing a seat's decided action, so bot play
// still feels paced rather than instantaneous.
const (
	ThinkDelayEasy          = 1600 * time.Millisecond
	ThinkDelayMedium        = 1300 * time.Millisecond
	ThinkDelayHard          = 1050 * time.Millisecond
	ThinkDelayDisconnected  = 900 * time.Millisecond
	PostTrickMinPause       = 2300 * time.Millisecond
	HandOverPause           = 3600 * time.Millisecond
	MaxIterationsPerAdvance = 64
)

// ThinkDelay returns how long to wait before acting for seat, based on
// whether it is a bot (scaled by room difficulty) or a disconnected human.
func ThinkDelay(r *euchre.Room, seat int) time.Duration {
	p := r.Game.PlayerAt(seat)
	if p == nil || !p.IsBot {
		return ThinkDelayDisconnected
	}
	switch r.BotDifficulty {
	case euchre.DifficultyEasy:
		return ThinkDelayEasy
	case euchre.DifficultyHard:
		return ThinkDelayHard
	default:
		return ThinkDelayMedium
	}
}

// NeedsAutoAction reports whether seat's next move should be driven by the
// scheduler rather than waiting on a connected human.
func NeedsAutoAction(r *euchre.Room, seat int) bool {
	p := r.Game.PlayerAt(seat)
	if p == nil {
		return false
	}
	return p.IsBot || !p.Connected
}

// turnSeatFor returns the seat whose action is awaited in the current
// phase, or -1 if the phase has no acting seat (hand-over/game-over).
func turnSeatFor(g *euchre.GameState) int {
	switch g.Phase {
	case euchre.PhaseBiddingRound1, euchre.PhaseBiddingRound2, euchre.PhasePlaying:
		return g.TurnSeat
	case euchre.PhaseDealerDiscard:
		return g.DealerSeat
	default:
		return -1
	}
}

// InitialDelay returns how long the caller should wait before performing
// the next pending auto-action in r, without performing it. Zero means no
// auto-action is currently pending (a connected human is on turn, or the
// phase has no acting seat). Used to give the very first auto-action of a
// fresh chain the same think delay as every subsequent one (spec.md §4.4
// step 4: insert a per-action think delay before executing it).
func InitialDelay(r *euchre.Room) time.Duration {
	g := r.Game
	if g == nil || g.Phase == euchre.PhaseGameOver {
		return 0
	}
	if g.Phase == euchre.PhaseHandOver {
		if r.BotCount == 0 {
			return 0
		}
		return HandOverPause
	}
	seat := turnSeatFor(g)
	if seat < 0 || !NeedsAutoAction(r, seat) {
		return 0
	}
	return ThinkDelay(r, seat)
}

// Step performs at most one auto-advance action on r: either one seat's
// bidding/discard/play action, or starting the next hand after a
// hand-over when the room has bots seated. It returns whether an action
// was taken and how long the caller should wait before calling Step
// again (zero means no further auto-advance is currently pending).
func Step(r *euchre.Room, rng *rand.Rand, info func(string)) (acted bool, nextDelay time.Duration) {
	g := r.Game
	if g == nil {
		return false, 0
	}

	if g.Phase == euchre.PhaseGameOver {
		return false, 0
	}

	if g.Phase == euchre.PhaseHandOver {
		if r.BotCount == 0 {
			return false, 0
		}
		if err := r.StartNextHand(info); err != nil {
			return false, 0
		}
		return true, 0
	}

	seat := turnSeatFor(g)
	if seat < 0 || !NeedsAutoAction(r, seat) {
		return false, 0
	}

	tricksBefore := g.TrickIndex
	if err := performAutoAction(r, seat, rng, info); err != nil {
		// A malformed or stale action (e.g. a hand ended between scheduling
		// and execution) should not wedge the driver; just stop this round.
		return false, 0
	}

	g = r.Game
	if g.Phase == euchre.PhaseHandOver {
		if r.BotCount == 0 {
			return true, 0
		}
		return true, HandOverPause
	}
	if g.Phase == euchre.PhaseGameOver {
		return true, 0
	}

	nextSeat := turnSeatFor(g)
	if nextSeat < 0 || !NeedsAutoAction(r, nextSeat) {
		return true, 0
	}

	delay := ThinkDelay(r, nextSeat)
	if g.TrickIndex > tricksBefore {
		if delay < PostTrickMinPause {
			delay = PostTrickMinPause
		}
	}
	return true, delay
}

// performAutoAction executes exactly one action for seat: a bot's decision
// from pkg/botengine, or a disconnected human's deterministic fallback
// (always pass, discard the first card, or play the first legal card).
func performAutoAction(r *euchre.Room, seat int, rng *rand.Rand, info func(string)) error {
	g := r.Game
	p := g.PlayerAt(seat)
	if p == nil {
		return nil
	}

	if p.IsBot {
		action := botengine.Decide(r, seat, r.BotDifficulty, rng)
		return applyAction(r, p.ID, action, info)
	}

	switch g.Phase {
	case euchre.PhaseBiddingRound1, euchre.PhaseBiddingRound2:
		return r.Pass(p.ID, info)
	case euchre.PhaseDealerDiscard:
		if len(p.Hand) == 0 {
			return nil
		}
		return r.Discard(p.ID, p.Hand[0].ID, info)
	case euchre.PhasePlaying:
		legal := g.LegalPlays(seat)
		if len(legal) == 0 {
			return nil
		}
		return r.PlayCard(p.ID, legal[0].ID, info)
	default:
		return nil
	}
}

func applyAction(r *euchre.Room, playerID string, action botengine.Action, info func(string)) error {
	switch action.Kind {
	case botengine.ActionPass:
		return r.Pass(playerID, info)
	case botengine.ActionOrderUp:
		return r.OrderUp(playerID, action.Alone, info)
	case botengine.ActionChooseTrump:
		return r.ChooseTrump(playerID, action.Suit, action.Alone, info)
	case botengine.ActionDiscard:
		return r.Discard(playerID, action.CardID, info)
	case botengine.ActionPlayCard:
		return r.PlayCard(playerID, action.CardID, info)
	default:
		return nil
	}
}
