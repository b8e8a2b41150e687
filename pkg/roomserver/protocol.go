package roomserver

import "github.com/cardtable/euchre-rooms/pkg/cards"

// ClientMessage is one inbound wire-protocol frame (spec.md §6 client→server).
type ClientMessage struct {
	Type           string     `json:"type"`
	Action         string     `json:"action,omitempty"`
	Alone          bool       `json:"alone,omitempty"`
	Suit           cards.Suit `json:"suit,omitempty"`
	CardID         string     `json:"cardId,omitempty"`
	TargetPlayerID string     `json:"targetPlayerId,omitempty"`
	SeatIndex      int        `json:"seatIndex,omitempty"`
	BotDifficulty  string     `json:"botDifficulty,omitempty"`
}

// ServerMessage is one outbound wire-protocol frame (spec.md §6 server→client).
type ServerMessage struct {
	Type    string        `json:"type"`
	Message string        `json:"message,omitempty"`
	State   *RoomSnapshot `json:"state,omitempty"`
}

const (
	msgTypePing   = "ping"
	msgTypePong   = "pong"
	msgTypeInfo   = "info"
	msgTypeError  = "error"
	msgTypeState  = "state"
	msgTypeAction = "action"
)

const (
	actionPass             = "pass"
	actionOrderUp          = "order-up"
	actionChooseTrump      = "choose-trump"
	actionDiscard          = "discard"
	actionPlayCard         = "play-card"
	actionStartNextHand    = "start-next-hand"
	actionRestartMatch     = "restart-match"
	actionAddBot           = "add-bot"
	actionRemoveBot        = "remove-bot"
	actionSetSeat          = "set-seat"
	actionSetBotDifficulty = "set-bot-difficulty"
	actionStartRoom        = "start-room"
)

func pongMessage() ServerMessage { return ServerMessage{Type: msgTypePong} }

func infoMessage(message string) ServerMessage {
	return ServerMessage{Type: msgTypeInfo, Message: message}
}

func errorMessage(message string) ServerMessage {
	return ServerMessage{Type: msgTypeError, Message: message}
}

func stateMessage(snap *RoomSnapshot) ServerMessage {
	return ServerMessage{Type: msgTypeState, State: snap}
}
