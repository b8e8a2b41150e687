package roomserver

import (
	"github.com/cardtable/euchre-rooms/pkg/cards"
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// PlayerView is a player as seen by one particular recipient: own hand and
// card count are both populated for the recipient's own seat, but other
// seats only ever expose handCount (spec.md §6).
type PlayerView struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	SeatIndex int          `json:"seatIndex"`
	Connected bool         `json:"connected"`
	IsBot     bool         `json:"isBot"`
	HandCount int          `json:"handCount"`
	Hand      []cards.Card `json:"hand,omitempty"`
}

// GameView is the recipient-safe rendering of the active GameState.
type GameView struct {
	Phase              euchre.Phase            `json:"phase"`
	DealerSeat         int                     `json:"dealerSeat"`
	TurnSeat           int                     `json:"turnSeat"`
	Upcard             *cards.Card             `json:"upcard,omitempty"`
	BlockedSuit        cards.Suit              `json:"blockedSuit,omitempty"`
	Trump              cards.Suit              `json:"trump,omitempty"`
	MakerTeam          euchre.Team             `json:"makerTeam"`
	CalledByPlayerID   string                  `json:"calledByPlayerId,omitempty"`
	GoingAlonePlayerID string                  `json:"goingAlonePlayerId,omitempty"`
	SittingOutSeat     int                     `json:"sittingOutSeat"`
	HasSittingOut      bool                    `json:"hasSittingOut"`
	CurrentTrick       []euchre.TrickPlay      `json:"currentTrick"`
	CompletedTricks    []euchre.CompletedTrick `json:"completedTricks"`
	TrickIndex         int                     `json:"trickIndex"`
	HandSummary        *euchre.HandSummary     `json:"handSummary,omitempty"`
	HandNumber         int                     `json:"handNumber"`
}

// RoomSnapshot is the personalized server->client {type:"state"} payload.
// Every recipient in the same room sees the same public fields, but only
// their own hand and legalPlays.
type RoomSnapshot struct {
	RoomName      string               `json:"roomName"`
	MaxPlayers    int                  `json:"maxPlayers"`
	Status        euchre.RoomStatus    `json:"status"`
	BotDifficulty euchre.BotDifficulty `json:"botDifficulty"`
	BotCount      int                  `json:"botCount"`
	Score         euchre.Score         `json:"score"`
	Players       []PlayerView         `json:"players"`
	You           *PlayerView          `json:"you,omitempty"`
	Game          *GameView            `json:"game,omitempty"`
	LegalPlays    []cards.Card         `json:"legalPlays,omitempty"`
	TargetScore   int                  `json:"targetScore"`
	CreatorToken  string               `json:"creatorToken,omitempty"`
}

// BuildSnapshot renders r's state from recipientPlayerID's point of view.
// recipientPlayerID may be empty for an unseated observer. includeCreatorToken
// is set only on a creator's very first state message (spec.md §4.5: "returned
// once to that client").
func BuildSnapshot(r *euchre.Room, recipientPlayerID string, includeCreatorToken bool) *RoomSnapshot {
	snap := &RoomSnapshot{
		RoomName:      r.Name,
		MaxPlayers:    r.MaxPlayers,
		Status:        r.Status,
		BotDifficulty: r.BotDifficulty,
		BotCount:      r.BotCount,
		Score:         r.Score,
		TargetScore:   euchre.TargetScore,
	}

	for _, p := range r.Players {
		view := playerView(p, p.ID == recipientPlayerID)
		snap.Players = append(snap.Players, view)
		if p.ID == recipientPlayerID {
			you := view
			snap.You = &you
		}
	}

	if r.Game != nil {
		g := r.Game
		snap.Game = &GameView{
			Phase:              g.Phase,
			DealerSeat:         g.DealerSeat,
			TurnSeat:           g.TurnSeat,
			Upcard:             g.Upcard,
			BlockedSuit:        g.BlockedSuit,
			Trump:              g.Trump,
			MakerTeam:          g.MakerTeam,
			CalledByPlayerID:   g.CalledByPlayerID,
			GoingAlonePlayerID: g.GoingAlonePlayerID,
			SittingOutSeat:     g.SittingOutSeat,
			HasSittingOut:      g.HasSittingOut,
			CurrentTrick:       g.CurrentTrick,
			CompletedTricks:    g.CompletedTricks,
			TrickIndex:         g.TrickIndex,
			HandSummary:        g.HandSummary,
			HandNumber:         g.HandNumber,
		}
		if recipient := r.PlayerByID(recipientPlayerID); recipient != nil {
			snap.LegalPlays = g.LegalPlays(recipient.SeatIndex)
		}
	}

	if includeCreatorToken {
		snap.CreatorToken = r.CreatorToken
	}

	return snap
}

func playerView(p *euchre.Player, isSelf bool) PlayerView {
	view := PlayerView{
		ID:        p.ID,
		Name:      p.Name,
		SeatIndex: p.SeatIndex,
		Connected: p.Connected,
		IsBot:     p.IsBot,
		HandCount: len(p.Hand),
	}
	if isSelf {
		view.Hand = p.Hand
	}
	return view
}
