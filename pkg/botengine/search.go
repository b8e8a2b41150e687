package botengine

import (
	"github.com/cardtable/euchre-rooms/pkg/cards"
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// simState is a lightweight, fully-determinized copy of the trick-play state
// the search walks. It never touches *euchre.Room or *euchre.GameState, so
// search can recurse freely without mutating the live room.
type simState struct {
	hands      [4][]cards.Card
	sittingOut int // seat index, or -1
	hasSitOut  bool
	trump      cards.Suit
	trick      []simPlay
	turnSeat   int
	tricksWon  [2]int // tricks won, indexed by euchre.Team
}

type simPlay struct {
	seat int
	card cards.Card
}

func newSimState(g *euchre.GameState, s sample) *simState {
	sit := -1
	if g.HasSittingOut {
		sit = g.SittingOutSeat
	}
	return &simState{
		hands:      s.hands,
		sittingOut: sit,
		hasSitOut:  g.HasSittingOut,
		trump:      g.Trump,
		turnSeat:   g.TurnSeat,
	}
}

func (s *simState) activeSeats() []int {
	var seats []int
	for seat := 0; seat < 4; seat++ {
		if s.hasSitOut && seat == s.sittingOut {
			continue
		}
		seats = append(seats, seat)
	}
	return seats
}

func (s *simState) nextActive(from int) int {
	seat := from
	for i := 0; i < 4; i++ {
		seat = (seat + 1) % 4
		if !(s.hasSitOut && seat == s.sittingOut) {
			return seat
		}
	}
	return from
}

func (s *simState) legalPlays(seat int) []cards.Card {
	var leadCards []cards.Card
	for _, p := range s.trick {
		leadCards = append(leadCards, p.card)
	}
	return cards.LegalPlays(s.hands[seat], leadCards, s.trump)
}

// play applies a card to the in-progress trick, removing it from the
// acting seat's hand, and resolves the trick once every active seat has
// played. Sets turnSeat to the seat that plays next.
func (s *simState) play(seat int, c cards.Card) {
	for i, hc := range s.hands[seat] {
		if hc.Suit == c.Suit && hc.Rank == c.Rank {
			s.hands[seat] = append(s.hands[seat][:i], s.hands[seat][i+1:]...)
			break
		}
	}
	s.trick = append(s.trick, simPlay{seat: seat, card: c})

	if len(s.trick) < len(s.activeSeats()) {
		s.turnSeat = s.nextActive(seat)
		return
	}

	plays := make([]cards.Card, len(s.trick))
	for i, p := range s.trick {
		plays[i] = p.card
	}
	winnerIdx := cards.TrickWinner(plays, s.trump)
	winnerSeat := s.trick[winnerIdx].seat
	winnerTeam := euchre.SeatTeam(winnerSeat)
	s.tricksWon[winnerTeam]++
	s.trick = nil
	s.turnSeat = winnerSeat
}

func (s *simState) handDone() bool {
	for _, h := range s.hands {
		if len(h) > 0 {
			return false
		}
	}
	return len(s.trick) == 0
}

func (s *simState) clone() *simState {
	c := *s
	for seat := range s.hands {
		c.hands[seat] = append([]cards.Card{}, s.hands[seat]...)
	}
	c.trick = append([]simPlay{}, s.trick...)
	return &c
}

// evaluate scores a terminal or depth-cut state from botSeat's perspective:
// a team-trick differential dominates, with a small tie-break on the
// residual trump-weighted value still held by the bot's team minus that
// held by the opposing team.
func evaluate(s *simState, botSeat int) float64 {
	botTeam := euchre.SeatTeam(botSeat)
	oppTeam := opposingSimTeam(botTeam)

	score := 100.0 * float64(s.tricksWon[botTeam]-s.tricksWon[oppTeam])

	residual := 0.0
	for seat, hand := range s.hands {
		sign := 1.0
		if euchre.SeatTeam(seat) != botTeam {
			sign = -1.0
		}
		for _, c := range hand {
			residual += sign * float64(c.RankStrength(s.trump, c.EffectiveSuit(s.trump)))
		}
	}
	score += 0.1 * residual
	return score
}

func opposingSimTeam(t euchre.Team) euchre.Team {
	if t == euchre.TeamA {
		return euchre.TeamB
	}
	return euchre.TeamA
}

// searchBest runs alpha-beta minimax from s's current turn down to depth
// plies (a ply is one card played), returning the best card for botSeat to
// play from its current turn along with its evaluated score. Other seats
// are modeled as playing to maximize their own team's score, i.e. this is a
// max^n search collapsed to two sides (bot's team vs. the other team).
func searchBest(s *simState, botSeat int, depth int) (cards.Card, float64) {
	return searchAlphaBeta(s, botSeat, depth, negInf, posInf)
}

// searchAlphaBeta is searchBest's recursive step, carrying the alpha/beta
// bounds down the tree so a branch that cannot change the outcome is cut.
func searchAlphaBeta(s *simState, botSeat int, depth int, alpha, beta float64) (cards.Card, float64) {
	legal := s.legalPlays(s.turnSeat)
	if len(legal) == 0 {
		return cards.Card{}, evaluate(s, botSeat)
	}

	maximizing := euchre.SeatTeam(s.turnSeat) == euchre.SeatTeam(botSeat)
	best := legal[0]
	bestScore := negInf
	if !maximizing {
		bestScore = posInf
	}

	for _, c := range legal {
		child := s.clone()
		actingSeat := s.turnSeat
		child.play(actingSeat, c)

		var childScore float64
		if child.handDone() || depth <= 1 {
			childScore = evaluate(child, botSeat)
		} else {
			_, childScore = searchAlphaBeta(child, botSeat, depth-1, alpha, beta)
		}

		if maximizing {
			if childScore > bestScore {
				bestScore = childScore
				best = c
			}
			if bestScore > alpha {
				alpha = bestScore
			}
		} else {
			if childScore < bestScore {
				bestScore = childScore
				best = c
			}
			if bestScore < beta {
				beta = bestScore
			}
		}
		if beta <= alpha {
			break
		}
	}
	return best, bestScore
}

const (
	negInf = -float64(1 << 30)
	posInf = float64(1 << 30)
)
