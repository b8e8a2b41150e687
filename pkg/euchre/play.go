package euchre

import "github.com/cardtable/euchre-rooms/pkg/cards"

// LegalPlays returns the cards seat may legally play right now, or nil if it
// is not seat's turn or the hand is not in the playing phase (the dealer's
// discard choice in dealer-discard is not reported here).
func (g *GameState) LegalPlays(seat int) []cards.Card {
	if g == nil || g.Phase != PhasePlaying || g.TurnSeat != seat {
		return nil
	}
	p := g.PlayerAt(seat)
	if p == nil {
		return nil
	}
	leadCards := make([]cards.Card, len(g.CurrentTrick))
	for i, tp := range g.CurrentTrick {
		leadCards[i] = tp.Card
	}
	return cards.LegalPlays(p.Hand, leadCards, g.Trump)
}

// PlayCard handles the "play-card" action, resolving the trick and
// finalizing the hand when appropriate.
func (r *Room) PlayCard(playerID, cardID string, info func(string)) error {
	g := r.Game
	if g == nil {
		return phaseError("no hand in progress")
	}
	if g.Phase != PhasePlaying {
		return phaseError("play-card is not legal in phase %s", g.Phase)
	}
	actor := r.PlayerByID(playerID)
	if actor == nil {
		return validationError("unknown player")
	}
	if actor.SeatIndex != g.TurnSeat {
		return phaseError("not your turn")
	}

	legal := g.LegalPlays(actor.SeatIndex)
	var played cards.Card
	found := false
	for _, c := range legal {
		if c.ID == cardID {
			played = c
			found = true
			break
		}
	}
	if !found {
		return phaseError("must follow suit")
	}

	idx := -1
	for i, c := range actor.Hand {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	actor.Hand = append(actor.Hand[:idx], actor.Hand[idx+1:]...)
	g.CurrentTrick = append(g.CurrentTrick, TrickPlay{PlayerID: actor.ID, Card: played})

	if len(g.CurrentTrick) < g.ActiveSeatCount() {
		g.TurnSeat = g.NextActiveSeat(actor.SeatIndex)
		return nil
	}

	r.resolveTrick(info)
	return nil
}

// resolveTrick determines the trick winner, appends the CompletedTrick, and
// either advances to the next trick or finalizes the hand.
func (r *Room) resolveTrick(info func(string)) {
	g := r.Game
	plays := make([]cards.Card, len(g.CurrentTrick))
	for i, tp := range g.CurrentTrick {
		plays[i] = tp.Card
	}
	winnerIdx := cards.TrickWinner(plays, g.Trump)
	winnerPlayerID := g.CurrentTrick[winnerIdx].PlayerID
	winner := r.PlayerByID(winnerPlayerID)

	g.CompletedTricks = append(g.CompletedTricks, CompletedTrick{
		Index:      g.TrickIndex,
		WinnerSeat: winner.SeatIndex,
		Cards:      append([]TrickPlay{}, g.CurrentTrick...),
	})
	g.TrickIndex++
	g.CurrentTrick = nil
	g.TurnSeat = winner.SeatIndex

	if info != nil {
		info("trick won by " + winner.Name)
	}

	if g.TrickIndex == 5 {
		r.finalizeHand(info)
	}
}

// finalizeHand tallies tricks by team, awards points per spec.md §4.2, and
// sets phase to hand-over or game-over.
func (r *Room) finalizeHand(info func(string)) {
	g := r.Game
	makerTricks, defenderTricks := 0, 0
	for _, t := range g.CompletedTricks {
		if SeatTeam(t.WinnerSeat) == g.MakerTeam {
			makerTricks++
		} else {
			defenderTricks++
		}
	}

	points := 0
	awardedTo := g.MakerTeam
	loner := g.HasSittingOut
	switch {
	case makerTricks == 5 && loner:
		points = 4
	case makerTricks == 5:
		points = 2
	case makerTricks >= 3:
		points = 1
	default:
		points = 2
		awardedTo = opposingTeam(g.MakerTeam)
	}

	g.HandSummary = &HandSummary{
		MakerTeam:      g.MakerTeam,
		MakerTricks:    makerTricks,
		DefenderTricks: defenderTricks,
		PointsAwarded:  points,
		AwardedTo:      awardedTo,
	}

	if awardedTo == TeamA {
		r.Score.Team0 += points
	} else {
		r.Score.Team1 += points
	}

	if r.Score.Team0 >= TargetScore || r.Score.Team1 >= TargetScore {
		g.Phase = PhaseGameOver
		if info != nil {
			info("match over")
		}
		return
	}
	g.Phase = PhaseHandOver
	if info != nil {
		info("hand over")
	}
}

func opposingTeam(t Team) Team {
	if t == TeamA {
		return TeamB
	}
	return TeamA
}
