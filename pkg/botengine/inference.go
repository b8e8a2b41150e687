package botengine

import (
	"github.com/cardtable/euchre-rooms/pkg/cards"
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// voidSuits tracks, per seat, the suits a seat is known not to hold: a seat
// that failed to follow the led effective suit on some trick cannot be
// holding that suit now. Mirrors the teacher's DeckStatus-style deduction in
// brain/memory.go, narrowed to what Euchre's follow-suit rule reveals.
type voidSuits map[int]map[cards.Suit]bool

// inferVoids walks the completed tricks of a hand and records every suit a
// seat revealed itself unable to follow.
func inferVoids(g *euchre.GameState) voidSuits {
	voids := voidSuits{}
	for _, trick := range g.CompletedTricks {
		if len(trick.Cards) == 0 {
			continue
		}
		lead := trick.Cards[0].Card.EffectiveSuit(g.Trump)
		for _, play := range trick.Cards {
			if play.Card.EffectiveSuit(g.Trump) != lead {
				seat := seatForPlayer(g, play.PlayerID)
				if seat < 0 {
					continue
				}
				if voids[seat] == nil {
					voids[seat] = map[cards.Suit]bool{}
				}
				voids[seat][lead] = true
			}
		}
	}
	// Also fold in the cards played in the trick currently underway.
	if len(g.CurrentTrick) > 0 {
		lead := g.CurrentTrick[0].Card.EffectiveSuit(g.Trump)
		for _, play := range g.CurrentTrick {
			if play.Card.EffectiveSuit(g.Trump) != lead {
				seat := seatForPlayer(g, play.PlayerID)
				if seat < 0 {
					continue
				}
				if voids[seat] == nil {
					voids[seat] = map[cards.Suit]bool{}
				}
				voids[seat][lead] = true
			}
		}
	}
	return voids
}

func seatForPlayer(g *euchre.GameState, playerID string) int {
	for seat := 0; seat < 4; seat++ {
		if p := g.PlayerAt(seat); p != nil && p.ID == playerID {
			return seat
		}
	}
	return -1
}

// cardKey identifies a card by its face (suit, rank) rather than its unique
// ID, since determinized samples mint fresh Card values for unseen cards.
func cardKey(c cards.Card) string {
	return string(c.Suit) + string(c.Rank)
}

// unseenCards returns every card not in the bot's own hand, not already
// played to a completed or in-progress trick, and not the upcard (while
// one is still set): the pool a determinized
// sample must redistribute among the other three seats. Each returned card
// is a freshly-minted Card value identified by its face, not by ID, since
// the original physical card's identity is hidden information to the bot.
func unseenCards(g *euchre.GameState, ownHand []cards.Card) []cards.Card {
	seen := map[string]bool{}
	for _, c := range ownHand {
		seen[cardKey(c)] = true
	}
	for _, t := range g.CompletedTricks {
		for _, p := range t.Cards {
			seen[cardKey(p.Card)] = true
		}
	}
	for _, p := range g.CurrentTrick {
		seen[cardKey(p.Card)] = true
	}
	if g.Upcard != nil {
		seen[cardKey(*g.Upcard)] = true
	}

	var unseen []cards.Card
	for _, suit := range cards.AllSuits {
		for _, rank := range cards.AllRanks {
			c := cards.Card{Suit: suit, Rank: rank}
			if !seen[cardKey(c)] {
				unseen = append(unseen, c)
			}
		}
	}
	return unseen
}
