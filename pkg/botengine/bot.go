package botengine

import (
	"math/rand"

	"github.com/cardtable/euchre-rooms/pkg/cards"
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// Action is one decision a bot makes on its turn. Exactly one of the
// action-specific fields is meaningful, selected by Kind.
type Action struct {
	Kind   ActionKind
	CardID string
	Suit   cards.Suit
	Alone  bool
}

// ActionKind enumerates the wire-protocol actions a bot can take.
type ActionKind int

const (
	ActionPass ActionKind = iota
	ActionOrderUp
	ActionChooseTrump
	ActionDiscard
	ActionPlayCard
)

// Decide chooses seat's next action given the room's current game state,
// seat's bot difficulty, and an RNG (injected so callers, including tests,
// can force determinism).
func Decide(r *euchre.Room, seat int, difficulty euchre.BotDifficulty, rng *rand.Rand) Action {
	g := r.Game
	tuning := tuningFor(difficulty)

	switch g.Phase {
	case euchre.PhaseBiddingRound1:
		return decideRound1(g, seat, tuning, rng)
	case euchre.PhaseBiddingRound2:
		return decideRound2(g, seat, tuning, rng)
	case euchre.PhaseDealerDiscard:
		return decideDiscard(g, seat)
	case euchre.PhasePlaying:
		return decidePlay(g, seat, tuning, rng)
	default:
		return Action{Kind: ActionPass}
	}
}

// decideRound1 bids on the upcard's suit only, per spec.md's round-1 rule
// that the only nameable trump is the turned-up card's suit.
func decideRound1(g *euchre.GameState, seat int, tuning Tuning, rng *rand.Rand) Action {
	if g.Upcard == nil {
		return Action{Kind: ActionPass}
	}
	hand := g.PlayerAt(seat).Hand
	strength := handStrength(hand, g.Upcard.Suit)

	if rng.Float64() < tuning.RandomMoveRate {
		if rng.Intn(2) == 0 {
			return Action{Kind: ActionOrderUp}
		}
		return Action{Kind: ActionPass}
	}

	if strength >= tuning.BidThreshold {
		alone := strength >= tuning.BidThreshold+loneAloneBonus
		return Action{Kind: ActionOrderUp, Alone: alone}
	}
	return Action{Kind: ActionPass}
}

// decideRound2 bids on any suit but the blocked one, choosing the strongest
// candidate suit the bot holds.
func decideRound2(g *euchre.GameState, seat int, tuning Tuning, rng *rand.Rand) Action {
	hand := g.PlayerAt(seat).Hand

	bestSuit := cards.Suit("")
	bestStrength := -1
	for _, suit := range cards.AllSuits {
		if suit == g.BlockedSuit {
			continue
		}
		s := handStrength(hand, suit)
		if s > bestStrength {
			bestStrength = s
			bestSuit = suit
		}
	}

	if rng.Float64() < tuning.RandomMoveRate {
		if rng.Intn(2) == 0 {
			return Action{Kind: ActionChooseTrump, Suit: bestSuit}
		}
		return Action{Kind: ActionPass}
	}

	if bestStrength >= tuning.BidThreshold {
		alone := bestStrength >= tuning.BidThreshold+loneAloneBonus
		return Action{Kind: ActionChooseTrump, Suit: bestSuit, Alone: alone}
	}
	return Action{Kind: ActionPass}
}

// handStrength estimates a hand's worth as a bidder if suit becomes trump:
// full credit for trump cards (bowers score highest), a smaller bonus for
// off-suit aces and kings likely to win an uncontested lead.
func handStrength(hand []cards.Card, suit cards.Suit) int {
	total := 0
	for _, c := range hand {
		switch {
		case c.IsRightBower(suit):
			total += 100
		case c.IsLeftBower(suit):
			total += 99
		case c.Suit == suit:
			total += c.RankStrength(suit, suit)
		case c.Rank == cards.Ace:
			total += 20
		case c.Rank == cards.King:
			total += 10
		}
	}
	return total
}

// cardValue ranks a card's general worth once trump is fixed: trump cards
// by their trick-taking rank, off-suit cards by intrinsic rank only (an
// off-suit card never wins unless led and untrumped).
func cardValue(c cards.Card, trump cards.Suit) int {
	switch {
	case c.IsRightBower(trump):
		return 100
	case c.IsLeftBower(trump):
		return 99
	case c.Suit == trump:
		return c.RankStrength(trump, trump)
	}
	switch c.Rank {
	case cards.Ace:
		return 60
	case cards.King:
		return 50
	case cards.Queen:
		return 40
	case cards.Jack:
		return 30
	case cards.Ten:
		return 20
	default:
		return 10
	}
}

// decideDiscard picks the weakest card in the dealer's 6-card hand to
// bury, evaluated against the hand's own called trump.
func decideDiscard(g *euchre.GameState, seat int) Action {
	hand := g.PlayerAt(seat).Hand
	worstIdx := 0
	worstValue := -1
	for i, c := range hand {
		v := cardValue(c, g.Trump)
		if worstValue == -1 || v < worstValue {
			worstValue = v
			worstIdx = i
		}
	}
	return Action{Kind: ActionDiscard, CardID: hand[worstIdx].ID}
}

// decidePlay runs a determinized-sample minimax search to choose a card,
// falling back to a random legal play at the configured rate.
func decidePlay(g *euchre.GameState, seat int, tuning Tuning, rng *rand.Rand) Action {
	legal := g.LegalPlays(seat)
	if len(legal) == 0 {
		return Action{Kind: ActionPlayCard}
	}
	if rng.Float64() < tuning.RandomMoveRate {
		return Action{Kind: ActionPlayCard, CardID: legal[rng.Intn(len(legal))].ID}
	}

	ownHand := g.PlayerAt(seat).Hand
	voids := inferVoids(g)

	tally := map[string]float64{}
	for i := 0; i < tuning.SampleCount; i++ {
		s := determinize(g, seat, ownHand, voids, rng)
		sim := newSimState(g, s)
		sim.trick = nil
		for _, p := range g.CurrentTrick {
			sim.trick = append(sim.trick, simPlay{seat: seatForPlayer(g, p.PlayerID), card: p.Card})
		}
		sim.turnSeat = seat
		best, _ := searchBest(sim, seat, tuning.SearchDepth)
		tally[cardKey(best)] += 1
	}

	chosen := legal[0]
	bestVotes := -1.0
	for _, c := range legal {
		if v := tally[cardKey(c)]; v > bestVotes {
			bestVotes = v
			chosen = c
		}
	}
	return Action{Kind: ActionPlayCard, CardID: chosen.ID}
}
