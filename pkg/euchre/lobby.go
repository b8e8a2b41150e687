package euchre

import (
	"time"

	"github.com/google/uuid"
)

// NewRoom creates a fresh waiting-room, minting a creator capability token.
func NewRoom(name, password string, botDifficulty BotDifficulty) *Room {
	now := time.Now()
	return &Room{
		Name:          name,
		Password:      password,
		CreatorToken:  uuid.NewString(),
		CreatedAt:     now,
		UpdatedAt:     now,
		MaxPlayers:    4,
		Status:        StatusWaiting,
		BotDifficulty: botDifficulty,
	}
}

// Expired reports whether the room has outlived its one-hour TTL (spec.md §3).
func (r *Room) Expired(now time.Time) bool {
	return now.Sub(r.CreatedAt) > time.Hour
}

// SeatedCount returns the number of human players currently seated.
func (r *Room) SeatedCount() int {
	n := 0
	for _, p := range r.Players {
		if !p.IsBot {
			n++
		}
	}
	return n
}

// AddHumanPlayer seats a new human player by name, or returns the existing
// disconnected player of the same name (reconnection per spec.md §4.5).
// Bot names are permanently reserved and reject a human join of the same name.
func (r *Room) AddHumanPlayer(name string) (*Player, error) {
	if existing := r.PlayerByName(name); existing != nil {
		if existing.IsBot {
			return nil, conflictError("name %q is reserved by a bot", name)
		}
		if existing.Connected {
			return nil, conflictError("name %q is already connected", name)
		}
		existing.Connected = true
		return existing, nil
	}

	seat := r.FreeSeat()
	if seat < 0 {
		return nil, conflictError("room is full")
	}

	p := &Player{ID: uuid.NewString(), Name: name, SeatIndex: seat, Connected: true}
	r.Players = append(r.Players, p)
	if r.CreatorPlayerID == "" {
		r.CreatorPlayerID = p.ID
	}
	return p, nil
}

// Disconnect marks a player as disconnected without evicting their seat.
func (r *Room) Disconnect(playerID string) {
	if p := r.PlayerByID(playerID); p != nil {
		p.Connected = false
	}
}

// IsCreator reports whether token matches the room's creator capability token.
func (r *Room) IsCreator(token string) bool {
	return token != "" && token == r.CreatorToken
}

// botNamePrefix names bots deterministically so reconnection-by-name logic
// never collides with a human's chosen name.
const botNamePrefix = "Bot "

// AddBot seats a new bot player, named sequentially (spec.md §6 "add-bot").
func (r *Room) AddBot() (*Player, error) {
	seat := r.FreeSeat()
	if seat < 0 {
		return nil, conflictError("room is full")
	}
	r.BotCount++
	p := &Player{
		ID:        uuid.NewString(),
		Name:      botName(r.BotCount),
		SeatIndex: seat,
		Connected: true,
		IsBot:     true,
	}
	r.Players = append(r.Players, p)
	return p, nil
}

func botName(n int) string {
	suffix := string(rune('A' + (n-1)%26))
	return botNamePrefix + suffix
}

// RemoveBot removes the most recently added bot (spec.md §6 "remove-bot").
func (r *Room) RemoveBot() error {
	for i := len(r.Players) - 1; i >= 0; i-- {
		if r.Players[i].IsBot {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			r.BotCount--
			return nil
		}
	}
	return conflictError("no bots to remove")
}

// SetSeat moves a player to a new, unoccupied seat while the room is waiting.
func (r *Room) SetSeat(targetPlayerID string, seat int) error {
	if r.Status != StatusWaiting {
		return phaseError("cannot change seats once play has started")
	}
	if seat < 0 || seat >= r.MaxPlayers {
		return validationError("invalid seat index")
	}
	target := r.PlayerByID(targetPlayerID)
	if target == nil {
		return validationError("unknown player")
	}
	if occupant := r.PlayerBySeat(seat); occupant != nil && occupant.ID != targetPlayerID {
		return conflictError("seat is occupied")
	}
	target.SeatIndex = seat
	return nil
}

// SetBotDifficulty updates the room's bot tuning tier.
func (r *Room) SetBotDifficulty(difficulty BotDifficulty) error {
	switch difficulty {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		r.BotDifficulty = difficulty
		return nil
	default:
		return validationError("invalid bot difficulty %q", difficulty)
	}
}

// CanStart reports whether the room has exactly 4 seated players and is
// still waiting.
func (r *Room) CanStart() bool {
	return r.Status == StatusWaiting && len(r.Players) == r.MaxPlayers
}

// StartNextHand deals the next hand after a finished one.
func (r *Room) StartNextHand(info func(string)) error {
	if r.Game == nil || r.Game.Phase != PhaseHandOver {
		return phaseError("no finished hand to advance from")
	}
	r.NewHand(info)
	return nil
}

// RestartMatch zeroes the score and deals a fresh match after game-over.
func (r *Room) RestartMatch(info func(string)) error {
	if r.Game == nil || r.Game.Phase != PhaseGameOver {
		return phaseError("match is not over")
	}
	r.StartMatch(info)
	return nil
}
