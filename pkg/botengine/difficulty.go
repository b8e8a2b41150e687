// Package botengine implements bot decision-making for Euchre rooms:
// void-suit inference over imperfect information, determinized-sample
// minimax search for card play, and heuristics for bidding and discarding.
package botengine

import "github.com/cardtable/euchre-rooms/pkg/euchre"

// Tuning holds the per-difficulty parameters governing search breadth,
// search depth, move randomization, and bid aggressiveness.
type Tuning struct {
	SampleCount    int
	SearchDepth    int
	RandomMoveRate float64
	BidThreshold   int
}

// tunings maps each room bot difficulty to its fixed parameter set.
var tunings = map[euchre.BotDifficulty]Tuning{
	euchre.DifficultyEasy:   {SampleCount: 4, SearchDepth: 2, RandomMoveRate: 0.35, BidThreshold: 45},
	euchre.DifficultyMedium: {SampleCount: 8, SearchDepth: 4, RandomMoveRate: 0.12, BidThreshold: 20},
	euchre.DifficultyHard:   {SampleCount: 16, SearchDepth: 8, RandomMoveRate: 0.00, BidThreshold: -5},
}

// loneAloneBonus is added to BidThreshold to decide whether a strong enough
// hand should be called alone rather than with a partner.
const loneAloneBonus = 80

// tuningFor resolves a difficulty to its parameter set, defaulting to medium
// for an unrecognized value so a malformed room never panics a bot turn.
func tuningFor(d euchre.BotDifficulty) Tuning {
	if t, ok := tunings[d]; ok {
		return t
	}
	return tunings[euchre.DifficultyMedium]
}
