package scheduler

import (
	"math/rand"
	"testing"

	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

func newTestRoom(t *testing.T) *euchre.Room {
	t.Helper()
	r := euchre.NewRoom("table", "", euchre.DifficultyMedium)
	for _, name := range []string{"Ann", "Bob", "Cid"} {
		if _, err := r.AddHumanPlayer(name); err != nil {
			t.Fatalf("seat %s: %v", name, err)
		}
	}
	if _, err := r.AddBot(); err != nil {
		t.Fatalf("add bot: %v", err)
	}
	r.StartMatch(nil)
	return r
}

func TestThinkDelayScalesWithBotDifficulty(t *testing.T) {
	r := newTestRoom(t)
	bot := r.PlayerByName("Bot A")
	r.BotDifficulty = euchre.DifficultyEasy
	if d := ThinkDelay(r, bot.SeatIndex); d != ThinkDelayEasy {
		t.Fatalf("expected easy think delay, got %v", d)
	}
	r.BotDifficulty = euchre.DifficultyHard
	if d := ThinkDelay(r, bot.SeatIndex); d != ThinkDelayHard {
		t.Fatalf("expected hard think delay, got %v", d)
	}
}

func TestThinkDelayIgnoresDifficultyForDisconnectedHuman(t *testing.T) {
	r := newTestRoom(t)
	ann := r.PlayerByName("Ann")
	r.Disconnect(ann.ID)
	r.BotDifficulty = euchre.DifficultyHard
	if d := ThinkDelay(r, ann.SeatIndex); d != ThinkDelayDisconnected {
		t.Fatalf("expected disconnected-human delay, got %v", d)
	}
}

func TestNeedsAutoActionTrueForBotAndDisconnected(t *testing.T) {
	r := newTestRoom(t)
	bot := r.PlayerByName("Bot A")
	if !NeedsAutoAction(r, bot.SeatIndex) {
		t.Fatalf("expected bot seat to need auto-action")
	}

	ann := r.PlayerByName("Ann")
	if NeedsAutoAction(r, ann.SeatIndex) {
		t.Fatalf("expected a connected human seat not to need auto-action")
	}
	r.Disconnect(ann.ID)
	if !NeedsAutoAction(r, ann.SeatIndex) {
		t.Fatalf("expected a disconnected human seat to need auto-action")
	}
}

func TestStepNoOpsWhenTurnSeatIsConnectedHuman(t *testing.T) {
	r := newTestRoom(t)
	r.Game.TurnSeat = r.PlayerByName("Ann").SeatIndex
	rng := rand.New(rand.NewSource(1))
	acted, delay := Step(r, rng, nil)
	if acted {
		t.Fatalf("expected no action while the connected human's turn is current")
	}
	if delay != 0 {
		t.Fatalf("expected zero delay when no action taken, got %v", delay)
	}
}

func TestStepDrivesDisconnectedHumanPass(t *testing.T) {
	r := newTestRoom(t)
	turnPlayer := r.PlayerBySeat(r.Game.TurnSeat)
	if turnPlayer.IsBot {
		t.Skip("turn landed on the bot seat; disconnect scenario needs a human seat")
	}
	r.Disconnect(turnPlayer.ID)

	beforeSeat := r.Game.TurnSeat
	rng := rand.New(rand.NewSource(1))
	acted, _ := Step(r, rng, nil)
	if !acted {
		t.Fatalf("expected the scheduler to act for a disconnected human")
	}
	if r.Game.TurnSeat == beforeSeat {
		t.Fatalf("expected turn to advance past the disconnected seat's pass")
	}
}

func TestStepStopsAtGameOver(t *testing.T) {
	r := newTestRoom(t)
	r.Game.Phase = euchre.PhaseGameOver
	acted, delay := Step(r, rand.New(rand.NewSource(1)), nil)
	if acted || delay != 0 {
		t.Fatalf("expected no action once the game is over")
	}
}

func TestStepStartsNextHandWhenBotsSeated(t *testing.T) {
	r := newTestRoom(t)
	r.Game.Phase = euchre.PhaseHandOver
	priorHandNumber := r.Game.HandNumber
	acted, delay := Step(r, rand.New(rand.NewSource(1)), nil)
	if !acted {
		t.Fatalf("expected the scheduler to start the next hand")
	}
	if delay != 0 {
		t.Fatalf("expected zero delay from Step itself for a hand-over transition, got %v", delay)
	}
	if r.Game.HandNumber != priorHandNumber+1 {
		t.Fatalf("expected hand number to advance, still at %d", r.Game.HandNumber)
	}
}

func TestStepDrivesBotOnlyRoomToGameOver(t *testing.T) {
	r := euchre.NewRoom("table", "", euchre.DifficultyMedium)
	for i := 0; i < 4; i++ {
		if _, err := r.AddBot(); err != nil {
			t.Fatalf("add bot %d: %v", i, err)
		}
	}
	r.StartMatch(nil)

	rng := rand.New(rand.NewSource(7))
	const safetyCap = 20000
	steps := 0
	for ; steps < safetyCap; steps++ {
		acted, _ := Step(r, rng, nil)
		if r.Game.Phase == euchre.PhaseGameOver {
			break
		}
		if !acted {
			t.Fatalf("scheduler stalled at phase %s with every seat bot-controlled", r.Game.Phase)
		}
	}
	if r.Game.Phase != euchre.PhaseGameOver {
		t.Fatalf("expected a bot-only room to reach game over within %d steps", safetyCap)
	}
	if r.Score.Team0 < euchre.TargetScore && r.Score.Team1 < euchre.TargetScore {
		t.Fatalf("expected a winning team to reach the target score, got %+v", r.Score)
	}
}

func TestStepWaitsForHumanAtHandOverWithoutBots(t *testing.T) {
	r := euchre.NewRoom("table", "", euchre.DifficultyMedium)
	for _, name := range []string{"Ann", "Bob", "Cid", "Dee"} {
		r.AddHumanPlayer(name)
	}
	r.StartMatch(nil)
	r.Game.Phase = euchre.PhaseHandOver

	acted, delay := Step(r, rand.New(rand.NewSource(1)), nil)
	if acted {
		t.Fatalf("expected no auto-advance past hand-over with no bots seated")
	}
	if delay != 0 {
		t.Fatalf("expected zero delay, got %v", delay)
	}
}
