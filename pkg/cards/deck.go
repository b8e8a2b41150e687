package cards

import (
	"crypto/rand"
	"encoding/binary"
	mrand "math/rand"
)

// Deck is the 24-card Euchre deck (9 through Ace, all four suits).
type Deck struct {
	cards []Card
	rng   *mrand.Rand
}

// NewSeededRand returns a math/rand source seeded from a cryptographically
// random seed, per spec.md's "cryptographically-seeded PRNG" requirement.
// Tests that need determinism build their own *mrand.Rand with NewDeckWithRand.
func NewSeededRand() *mrand.Rand {
	var seed int64
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return mrand.New(mrand.NewSource(seed))
}

// NewDeck builds a freshly-ordered, unshuffled 24-card deck using a
// cryptographically-seeded RNG for subsequent shuffles.
func NewDeck() *Deck {
	return NewDeckWithRand(NewSeededRand())
}

// NewDeckWithRand builds a deck using the supplied RNG, letting callers
// (tests) inject a deterministic source.
func NewDeckWithRand(rng *mrand.Rand) *Deck {
	d := &Deck{cards: make([]Card, 0, 24), rng: rng}
	for _, suit := range AllSuits {
		for _, rank := range AllRanks {
			d.cards = append(d.cards, NewCard(suit, rank))
		}
	}
	return d
}

// Cards returns the deck's current card order.
func (d *Deck) Cards() []Card {
	return d.cards
}

// Shuffle performs a Fisher-Yates permutation over the deck in place.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rng.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

// Deal distributes 5 cards to each of numSeats seats in insertion order,
// then returns the upcard (21st card) and the 3-card kitty. Matches
// spec.md §4.1: 5 cards per seat, upcard, then kitty.
func Deal(deck *Deck, numSeats int) (hands [][]Card, upcard Card, kitty []Card) {
	hands = make([][]Card, numSeats)
	idx := 0
	for round := 0; round < 5; round++ {
		for seat := 0; seat < numSeats; seat++ {
			hands[seat] = append(hands[seat], deck.cards[idx])
			idx++
		}
	}
	upcard = deck.cards[idx]
	idx++
	kitty = append([]Card{}, deck.cards[idx:idx+3]...)
	return hands, upcard, kitty
}
