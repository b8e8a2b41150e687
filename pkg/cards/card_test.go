package cards

import "testing"

func TestRightAndLeftBower(t *testing.T) {
	rightJack := NewCard(Hearts, Jack)
	leftJack := NewCard(Diamonds, Jack)

	if !rightJack.IsRightBower(Hearts) {
		t.Errorf("expected hearts jack to be right bower when trump is hearts")
	}
	if !leftJack.IsLeftBower(Hearts) {
		t.Errorf("expected diamonds jack to be left bower when trump is hearts")
	}
	if leftJack.EffectiveSuit(Hearts) != Hearts {
		t.Errorf("left bower should have effective suit hearts, got %s", leftJack.EffectiveSuit(Hearts))
	}
	if rightJack.RankStrength(Hearts, Hearts) != 100 {
		t.Errorf("right bower strength = %d, want 100", rightJack.RankStrength(Hearts, Hearts))
	}
	if leftJack.RankStrength(Hearts, Hearts) != 99 {
		t.Errorf("left bower strength = %d, want 99", leftJack.RankStrength(Hearts, Hearts))
	}
}

func TestOffSuitNonTrumpCannotWin(t *testing.T) {
	offSuit := NewCard(Clubs, Ace)
	if strength := offSuit.RankStrength(Hearts, Spades); strength != 0 {
		t.Errorf("off-suit non-trump should have strength 0, got %d", strength)
	}
}

func TestRankStrengthOrdering(t *testing.T) {
	trump := Spades
	lead := Hearts
	cards := []Card{
		NewCard(Spades, Jack),    // right bower: 100
		NewCard(Clubs, Jack),     // left bower: 99
		NewCard(Spades, Ace),     // trump ace: 98
		NewCard(Hearts, Ace),     // lead ace: 60
		NewCard(Diamonds, Ace),   // off-suit: 0
	}
	want := []int{100, 99, 98, 60, 0}
	for i, c := range cards {
		if got := c.RankStrength(trump, lead); got != want[i] {
			t.Errorf("card %d: RankStrength = %d, want %d", i, got, want[i])
		}
	}
}
