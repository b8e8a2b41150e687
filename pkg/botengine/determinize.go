package botengine

import (
	"math/rand"

	"github.com/cardtable/euchre-rooms/pkg/cards"
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// sample is one determinization: a guess at the full, otherwise-hidden deal
// consistent with everything the bot has observed (its own hand, cards
// played, and inferred voids).
type sample struct {
	hands [4][]cards.Card
}

// determinize produces one candidate full deal for the hidden seats. The
// bot's own seat is filled exactly from ownHand; the other three seats
// receive a random partition of the unseen cards, respecting known hand
// sizes and any suits those seats have revealed themselves void in.
func determinize(g *euchre.GameState, botSeat int, ownHand []cards.Card, voids voidSuits, rng *rand.Rand) sample {
	var s sample
	s.hands[botSeat] = append([]cards.Card{}, ownHand...)

	pool := append([]cards.Card{}, unseenCards(g, ownHand)...)
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	handSize := map[int]int{}
	for seat := 0; seat < 4; seat++ {
		if seat == botSeat {
			continue
		}
		if g.IsSittingOut(seat) {
			continue
		}
		if p := g.PlayerAt(seat); p != nil {
			handSize[seat] = len(p.Hand)
		}
	}

	// Greedily place cards that only one remaining seat can legally hold
	// (because the others are void in that suit) first, then fill the rest
	// by a uniform random choice among the seats still eligible for each
	// card (see pickSeatForCard). Keeps the sample consistent without
	// needing backtracking for the common case.
	var rest []cards.Card
	for _, c := range pool {
		candidateSeat := -1
		candidateCount := 0
		for seat, remaining := range handSize {
			if remaining <= 0 {
				continue
			}
			if voids[seat] != nil && voids[seat][c.EffectiveSuit(g.Trump)] {
				continue
			}
			candidateSeat = seat
			candidateCount++
		}
		if candidateCount == 1 {
			s.hands[candidateSeat] = append(s.hands[candidateSeat], c)
			handSize[candidateSeat]--
			continue
		}
		rest = append(rest, c)
	}

	for _, c := range rest {
		seat := pickSeatForCard(c, handSize, voids, g.Trump, rng)
		if seat < 0 {
			continue
		}
		s.hands[seat] = append(s.hands[seat], c)
		handSize[seat]--
	}

	return s
}

// pickSeatForCard chooses a seat with remaining capacity that is not known
// void in c's effective suit, falling back to any seat with capacity left
// if every seat with capacity happens to be void (an inconsistent but
// possible inference, e.g. a bluff discard after calling trump).
func pickSeatForCard(c cards.Card, handSize map[int]int, voids voidSuits, trump cards.Suit, rng *rand.Rand) int {
	var eligible, fallback []int
	for seat, remaining := range handSize {
		if remaining <= 0 {
			continue
		}
		fallback = append(fallback, seat)
		if voids[seat] != nil && voids[seat][c.EffectiveSuit(trump)] {
			continue
		}
		eligible = append(eligible, seat)
	}
	pool := eligible
	if len(pool) == 0 {
		pool = fallback
	}
	if len(pool) == 0 {
		return -1
	}
	return pool[rng.Intn(len(pool))]
}
