package euchre

import "github.com/cardtable/euchre-rooms/pkg/statemachine"

// NewHand creates and deals a fresh GameState for the room, rotating the
// dealer clockwise from the previous hand's dealer (or seat 0 for the
// first hand). info receives human-readable event strings for the info
// broadcast (spec.md §4.5's {type:"info"} messages).
func (r *Room) NewHand(info func(string)) {
	prevDealer := 0
	handNumber := 1
	if r.Game != nil {
		prevDealer = (r.Game.DealerSeat + 1) % 4
		handNumber = r.Game.HandNumber + 1
	}

	g := &GameState{DealerSeat: prevDealer, HandNumber: handNumber}
	for _, p := range r.Players {
		g.players[p.SeatIndex] = p
	}

	runDealPipeline(g, func(stateName string, _ statemachine.StateEvent) {
		if info != nil && stateName == "SHUFFLE_AND_DEAL" {
			info("cards dealt")
		}
	})

	r.Game = g
}

// redeal starts a fresh hand with the dealer rotated one more seat, used by
// the screw-the-dealer policy when all four players pass in round 2.
func (r *Room) redeal(info func(string)) {
	g := &GameState{DealerSeat: (r.Game.DealerSeat + 1) % 4, HandNumber: r.Game.HandNumber}
	for _, p := range r.Players {
		g.players[p.SeatIndex] = p
	}
	runDealPipeline(g, func(stateName string, _ statemachine.StateEvent) {
		if info != nil && stateName == "SHUFFLE_AND_DEAL" {
			info("all players passed; redealing with new dealer")
		}
	})
	r.Game = g
}

// StartMatch deals the first hand of a fresh match, used by start-room and
// restart-match.
func (r *Room) StartMatch(info func(string)) {
	r.Score = Score{}
	r.Status = StatusPlaying
	r.Game = nil
	r.NewHand(info)
}

// RelinkAfterRestore re-links a restored GameState's player pointers to the
// Room's current Player objects, needed after persistence round-trips since
// JSON decoding cannot restore the unexported pointer array.
func (r *Room) RelinkAfterRestore() {
	if r.Game == nil {
		return
	}
	for _, p := range r.Players {
		r.Game.players[p.SeatIndex] = p
	}
}
