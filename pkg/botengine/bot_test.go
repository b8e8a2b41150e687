package botengine

import (
	"math/rand"
	"testing"

	"github.com/cardtable/euchre-rooms/pkg/cards"
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

func newTestRoom(t *testing.T) *euchre.Room {
	t.Helper()
	r := euchre.NewRoom("test-room", "", euchre.DifficultyHard)
	for _, name := range []string{"north", "east", "south", "west"} {
		if _, err := r.AddHumanPlayer(name); err != nil {
			t.Fatalf("AddHumanPlayer(%s): %v", name, err)
		}
	}
	r.StartMatch(nil)
	return r
}

func TestDecideDiscardPicksWeakestCard(t *testing.T) {
	r := newTestRoom(t)
	g := r.Game
	dealer := g.PlayerAt(g.DealerSeat)
	dealer.Hand = []cards.Card{
		cards.NewCard(cards.Hearts, cards.Nine),
		cards.NewCard(cards.Hearts, cards.Ace),
		cards.NewCard(cards.Spades, cards.Jack),
		cards.NewCard(cards.Clubs, cards.King),
		cards.NewCard(cards.Diamonds, cards.Queen),
		cards.NewCard(cards.Diamonds, cards.Nine),
	}
	g.Trump = cards.Hearts
	g.Phase = euchre.PhaseDealerDiscard

	action := decideDiscard(g, g.DealerSeat)
	if action.Kind != ActionDiscard {
		t.Fatalf("expected ActionDiscard, got %v", action.Kind)
	}

	var discarded *cards.Card
	for i := range dealer.Hand {
		if dealer.Hand[i].ID == action.CardID {
			discarded = &dealer.Hand[i]
		}
	}
	if discarded == nil {
		t.Fatalf("discard chose a card not in hand")
	}
	// The off-suit nine has no trick-taking value under hearts trump and
	// should be the weakest card by cardValue.
	if discarded.Suit != cards.Diamonds || discarded.Rank != cards.Nine {
		t.Fatalf("expected to discard the off-suit nine, got %s of %s", discarded.Rank, discarded.Suit)
	}
}

func TestDecideRound1PassesOnWeakHand(t *testing.T) {
	r := newTestRoom(t)
	g := r.Game
	seat := g.TurnSeat
	g.PlayerAt(seat).Hand = []cards.Card{
		cards.NewCard(cards.Clubs, cards.Nine),
		cards.NewCard(cards.Clubs, cards.Ten),
		cards.NewCard(cards.Diamonds, cards.Nine),
		cards.NewCard(cards.Diamonds, cards.Ten),
		cards.NewCard(cards.Spades, cards.Nine),
	}
	g.Upcard = &cards.Card{Suit: cards.Hearts, Rank: cards.Nine}

	rng := rand.New(rand.NewSource(1))
	action := decideRound1(g, seat, Tuning{BidThreshold: 45, RandomMoveRate: 0}, rng)
	if action.Kind != ActionPass {
		t.Fatalf("expected a weak hand to pass, got %v", action.Kind)
	}
}

func TestDecideRound1OrdersUpOnStrongHand(t *testing.T) {
	r := newTestRoom(t)
	g := r.Game
	seat := g.TurnSeat
	g.PlayerAt(seat).Hand = []cards.Card{
		cards.NewCard(cards.Hearts, cards.Jack),
		cards.NewCard(cards.Diamonds, cards.Jack),
		cards.NewCard(cards.Hearts, cards.Ace),
		cards.NewCard(cards.Hearts, cards.King),
		cards.NewCard(cards.Spades, cards.Nine),
	}
	g.Upcard = &cards.Card{Suit: cards.Hearts, Rank: cards.Nine}

	rng := rand.New(rand.NewSource(1))
	action := decideRound1(g, seat, Tuning{BidThreshold: -5, RandomMoveRate: 0}, rng)
	if action.Kind != ActionOrderUp {
		t.Fatalf("expected both bowers plus ace-king to order up, got %v", action.Kind)
	}
}

func TestDecidePlayReturnsALegalCard(t *testing.T) {
	r := newTestRoom(t)
	g := r.Game
	seat := g.TurnSeat
	g.Phase = euchre.PhasePlaying
	g.Trump = cards.Spades
	g.PlayerAt(seat).Hand = []cards.Card{
		cards.NewCard(cards.Spades, cards.Jack),
		cards.NewCard(cards.Hearts, cards.Ace),
		cards.NewCard(cards.Clubs, cards.King),
		cards.NewCard(cards.Diamonds, cards.Queen),
		cards.NewCard(cards.Spades, cards.Nine),
	}

	rng := rand.New(rand.NewSource(7))
	action := Decide(r, seat, euchre.DifficultyEasy, rng)
	if action.Kind != ActionPlayCard {
		t.Fatalf("expected ActionPlayCard, got %v", action.Kind)
	}

	legal := g.LegalPlays(seat)
	found := false
	for _, c := range legal {
		if c.ID == action.CardID {
			found = true
		}
	}
	if !found {
		t.Fatalf("chosen card %s is not among legal plays", action.CardID)
	}
}

func TestInferVoidsDetectsRevealedVoid(t *testing.T) {
	r := newTestRoom(t)
	g := r.Game
	g.Trump = cards.Spades
	g.CompletedTricks = []euchre.CompletedTrick{
		{
			Index:      0,
			WinnerSeat: 0,
			Cards: []euchre.TrickPlay{
				{PlayerID: g.PlayerAt(0).ID, Card: cards.NewCard(cards.Hearts, cards.Ace)},
				{PlayerID: g.PlayerAt(1).ID, Card: cards.NewCard(cards.Clubs, cards.Nine)},
				{PlayerID: g.PlayerAt(2).ID, Card: cards.NewCard(cards.Hearts, cards.King)},
				{PlayerID: g.PlayerAt(3).ID, Card: cards.NewCard(cards.Hearts, cards.Queen)},
			},
		},
	}

	voids := inferVoids(g)
	if !voids[1][cards.Hearts] {
		t.Fatalf("expected seat 1 to be inferred void in hearts after discarding a club off-lead")
	}
	if voids[0] != nil && voids[0][cards.Hearts] {
		t.Fatalf("seat 0 led hearts and should not be marked void in it")
	}
}
