package euchre

import "github.com/cardtable/euchre-rooms/pkg/cards"

// Pass handles the "pass" action in either bidding round, per spec.md §4.2.
func (r *Room) Pass(playerID string, info func(string)) error {
	g := r.Game
	if g == nil {
		return phaseError("no hand in progress")
	}
	if g.Phase != PhaseBiddingRound1 && g.Phase != PhaseBiddingRound2 {
		return phaseError("pass is not legal in phase %s", g.Phase)
	}
	actor := r.PlayerByID(playerID)
	if actor == nil {
		return validationError("unknown player")
	}
	if actor.SeatIndex != g.TurnSeat {
		return phaseError("not your turn")
	}

	wasDealer := actor.SeatIndex == g.DealerSeat

	switch g.Phase {
	case PhaseBiddingRound1:
		if wasDealer {
			g.BlockedSuit = g.Upcard.Suit
			g.Phase = PhaseBiddingRound2
			g.TurnSeat = g.NextActiveSeat(g.DealerSeat)
			if info != nil {
				info("upcard turned down")
			}
			return nil
		}
		g.TurnSeat = g.NextActiveSeat(actor.SeatIndex)
		return nil

	case PhaseBiddingRound2:
		if wasDealer {
			if info != nil {
				info("all players passed; redealing")
			}
			r.redeal(info)
			return nil
		}
		g.TurnSeat = g.NextActiveSeat(actor.SeatIndex)
		return nil
	}
	return nil
}

// OrderUp handles round-1's "order-up" action: the actor directs the dealer
// to pick up the upcard, naming its suit as trump.
func (r *Room) OrderUp(playerID string, alone bool, info func(string)) error {
	g := r.Game
	if g == nil {
		return phaseError("no hand in progress")
	}
	if g.Phase != PhaseBiddingRound1 {
		return phaseError("order-up is not legal in phase %s", g.Phase)
	}
	actor := r.PlayerByID(playerID)
	if actor == nil {
		return validationError("unknown player")
	}
	if actor.SeatIndex != g.TurnSeat {
		return phaseError("not your turn")
	}
	if g.Upcard == nil {
		return phaseError("no upcard to order up")
	}

	dealer := g.PlayerAt(g.DealerSeat)
	dealer.Hand = append(dealer.Hand, *g.Upcard)

	g.Trump = g.Upcard.Suit
	g.MakerTeam = SeatTeam(actor.SeatIndex)
	g.CalledByPlayerID = actor.ID
	g.Upcard = nil

	if alone {
		g.GoingAlonePlayerID = actor.ID
		g.HasSittingOut = true
		g.SittingOutSeat = PartnerSeat(actor.SeatIndex)
	}

	g.Phase = PhaseDealerDiscard
	g.TurnSeat = g.DealerSeat
	if info != nil {
		info("trump ordered up: " + string(g.Trump))
	}
	return nil
}

// ChooseTrump handles round-2's "choose-trump" action.
func (r *Room) ChooseTrump(playerID string, suit cards.Suit, alone bool, info func(string)) error {
	g := r.Game
	if g == nil {
		return phaseError("no hand in progress")
	}
	if g.Phase != PhaseBiddingRound2 {
		return phaseError("choose-trump is not legal in phase %s", g.Phase)
	}
	actor := r.PlayerByID(playerID)
	if actor == nil {
		return validationError("unknown player")
	}
	if actor.SeatIndex != g.TurnSeat {
		return phaseError("not your turn")
	}
	if suit == g.BlockedSuit {
		return phaseError("cannot call the blocked suit")
	}

	g.Trump = suit
	g.MakerTeam = SeatTeam(actor.SeatIndex)
	g.CalledByPlayerID = actor.ID

	if alone {
		g.GoingAlonePlayerID = actor.ID
		g.HasSittingOut = true
		g.SittingOutSeat = PartnerSeat(actor.SeatIndex)
	}

	g.Phase = PhasePlaying
	g.TurnSeat = g.NextActiveSeat(g.DealerSeat)
	if info != nil {
		info("trump called: " + string(suit))
	}
	return nil
}

// Discard handles the dealer's post-order-up discard, returning the dealer's
// 6-card hand to 5.
func (r *Room) Discard(playerID, cardID string, info func(string)) error {
	g := r.Game
	if g == nil {
		return phaseError("no hand in progress")
	}
	if g.Phase != PhaseDealerDiscard {
		return phaseError("discard is not legal in phase %s", g.Phase)
	}
	actor := r.PlayerByID(playerID)
	if actor == nil {
		return validationError("unknown player")
	}
	if actor.SeatIndex != g.DealerSeat {
		return phaseError("not your turn")
	}

	idx := -1
	for i, c := range actor.Hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return validationError("invalid card id")
	}

	actor.Hand = append(actor.Hand[:idx], actor.Hand[idx+1:]...)

	g.Phase = PhasePlaying
	g.TurnSeat = g.NextActiveSeat(g.DealerSeat)
	if info != nil {
		info("dealer discarded")
	}
	return nil
}
