package cards

// LegalPlays returns the subset of hand that may legally be played given the
// cards already led in the current trick (leadPlays, in play order) and the
// trump suit. With no lead, any card is legal. Otherwise the lead's
// effective suit must be followed if the hand holds a card of that suit.
func LegalPlays(hand []Card, leadPlays []Card, trump Suit) []Card {
	if len(leadPlays) == 0 {
		return append([]Card{}, hand...)
	}
	leadSuit := leadPlays[0].EffectiveSuit(trump)

	var followers []Card
	for _, c := range hand {
		if c.EffectiveSuit(trump) == leadSuit {
			followers = append(followers, c)
		}
	}
	if len(followers) > 0 {
		return followers
	}
	return append([]Card{}, hand...)
}

// TrickWinner returns the index into plays of the card with the highest
// RankStrength given trump and the lead suit (the effective suit of the
// first play).
func TrickWinner(plays []Card, trump Suit) int {
	leadSuit := plays[0].EffectiveSuit(trump)
	winner := 0
	best := plays[0].RankStrength(trump, leadSuit)
	for i := 1; i < len(plays); i++ {
		s := plays[i].RankStrength(trump, leadSuit)
		if s > best {
			best = s
			winner = i
		}
	}
	return winner
}
