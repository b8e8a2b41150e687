// Package cards implements the Euchre rules kernel: card identity, deck
// construction, trump/bower resolution, and trick-winner determination.
package cards

import (
	"fmt"

	"github.com/google/uuid"
)

// Suit represents a card suit.
type Suit string

const (
	Clubs    Suit = "clubs"
	Diamonds Suit = "diamonds"
	Hearts   Suit = "hearts"
	Spades   Suit = "spades"
)

// AllSuits lists the four suits in a fixed order used for deck construction.
var AllSuits = [4]Suit{Clubs, Diamonds, Hearts, Spades}

// Rank represents a card rank. Euchre uses a 24-card deck: 9 through Ace.
type Rank string

const (
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

// AllRanks lists the six ranks present in a Euchre deck.
var AllRanks = [6]Rank{Nine, Ten, Jack, Queen, King, Ace}

// sameColor maps a suit to the other suit of its color, used to find the
// left bower's nominal suit.
var sameColor = map[Suit]Suit{
	Clubs:    Spades,
	Spades:   Clubs,
	Hearts:   Diamonds,
	Diamonds: Hearts,
}

// Card is a single playing card. id is globally unique per deal, so two
// cards with identical suit+rank remain distinguishable.
type Card struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// NewCard builds a card with a freshly minted id.
func NewCard(suit Suit, rank Rank) Card {
	return Card{ID: uuid.NewString(), Suit: suit, Rank: rank}
}

func (c Card) String() string {
	return fmt.Sprintf("%s-%s", c.Suit, c.Rank)
}

// IsLeftBower reports whether c is the left bower (the same-color jack) when
// trump is the given suit.
func (c Card) IsLeftBower(trump Suit) bool {
	return c.Rank == Jack && c.Suit == sameColor[trump]
}

// IsRightBower reports whether c is the right bower (the trump jack).
func (c Card) IsRightBower(trump Suit) bool {
	return c.Rank == Jack && c.Suit == trump
}

// EffectiveSuit returns the suit c counts as for following-suit purposes
// given the trump suit: the left bower counts as trump.
func (c Card) EffectiveSuit(trump Suit) Suit {
	if c.IsLeftBower(trump) {
		return trump
	}
	return c.Suit
}

// RankStrength returns c's strength under the given trump and lead suit.
// Higher wins; 0 means the card cannot win the trick (off-suit, non-trump).
func (c Card) RankStrength(trump, leadSuit Suit) int {
	if c.IsRightBower(trump) {
		return 100
	}
	if c.IsLeftBower(trump) {
		return 99
	}
	if c.Suit == trump {
		switch c.Rank {
		case Ace:
			return 98
		case King:
			return 97
		case Queen:
			return 96
		case Ten:
			return 95
		case Nine:
			return 94
		}
	}
	if c.EffectiveSuit(trump) == leadSuit {
		switch c.Rank {
		case Ace:
			return 60
		case King:
			return 59
		case Queen:
			return 58
		case Jack:
			return 57
		case Ten:
			return 56
		case Nine:
			return 55
		}
	}
	return 0
}
