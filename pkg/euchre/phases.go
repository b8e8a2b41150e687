package euchre

import (
	"github.com/cardtable/euchre-rooms/pkg/cards"
	"github.com/cardtable/euchre-rooms/pkg/statemachine"
)

// dealStateFn is a Rob Pike-pattern state function driving the new-hand
// dealing pipeline, mirroring the teacher's NEW_HAND_DEALING -> PRE_DEAL ->
// DEAL -> BLINDS -> PRE_FLOP sequence. It runs once per hand, from
// dealStart through the first bidding-round-1 turn being set.
type dealStateFn = statemachine.StateFn[GameState]

// StateCallback reports phase transitions for info-event emission.
type StateCallback = func(stateName string, event statemachine.StateEvent)

func stateDealStart(g *GameState, cb StateCallback) dealStateFn {
	if cb != nil {
		cb("DEAL_START", statemachine.StateEntered)
	}
	return stateShuffleAndDeal
}

func stateShuffleAndDeal(g *GameState, cb StateCallback) dealStateFn {
	deck := cards.NewDeck()
	deck.Shuffle()
	hands, upcard, kitty := cards.Deal(deck, 4)

	for seat := 0; seat < 4; seat++ {
		if p := g.players[seat]; p != nil {
			p.Hand = hands[seat]
		}
	}
	g.Upcard = &upcard
	g.Kitty = kitty

	if cb != nil {
		cb("SHUFFLE_AND_DEAL", statemachine.StateEntered)
	}
	return stateOpenBidding
}

func stateOpenBidding(g *GameState, cb StateCallback) dealStateFn {
	g.Phase = PhaseBiddingRound1
	g.TurnSeat = g.NextActiveSeat(g.DealerSeat)
	g.Trump = ""
	g.MakerTeam = 0
	g.CalledByPlayerID = ""
	g.GoingAlonePlayerID = ""
	g.HasSittingOut = false
	g.CurrentTrick = nil
	g.CompletedTricks = nil
	g.TrickIndex = 0
	g.HandSummary = nil

	if cb != nil {
		cb("OPEN_BIDDING", statemachine.StateEntered)
	}
	return nil
}

// runDealPipeline drives a fresh hand's dealing state machine to
// completion. cb receives one call per stage for info-event emission.
func runDealPipeline(g *GameState, cb StateCallback) {
	sm := statemachine.NewStateMachine(g, stateDealStart)
	for sm.GetCurrentState() != nil {
		sm.Dispatch(cb)
	}
}
