package roomserver

import (
	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

// lobbyOnlyActions gates actions spec.md §6 marks "lobby only" — they must
// not be attempted once a match is in progress.
var lobbyOnlyActions = map[string]bool{
	actionAddBot:           true,
	actionRemoveBot:        true,
	actionSetSeat:          true,
	actionSetBotDifficulty: true,
	actionStartRoom:        true,
}

// creatorOnlyActions gates actions spec.md §6 marks "creator only".
var creatorOnlyActions = map[string]bool{
	actionAddBot:           true,
	actionRemoveBot:        true,
	actionSetSeat:          true,
	actionSetBotDifficulty: true,
	actionStartRoom:        true,
	actionRestartMatch:     true,
}

// handleAction dispatches one {type:"action"} client frame against the
// room, running entirely on the owning actor's goroutine. Any returned
// *euchre.ActionError is sent back to the originating session as an
// {type:"error"} frame instead of propagating.
func (a *roomActor) handleAction(sess *Session, msg ClientMessage) {
	if creatorOnlyActions[msg.Action] && !sess.isCreator {
		sess.send(errorMessage("only the room creator may do that"))
		return
	}
	if lobbyOnlyActions[msg.Action] && a.room.Status != euchre.StatusWaiting {
		sess.send(errorMessage("that action is only available in the lobby"))
		return
	}

	var err error
	switch msg.Action {
	case actionPass:
		err = a.room.Pass(sess.playerID, a.info)
	case actionOrderUp:
		err = a.room.OrderUp(sess.playerID, msg.Alone, a.info)
	case actionChooseTrump:
		err = a.room.ChooseTrump(sess.playerID, msg.Suit, msg.Alone, a.info)
	case actionDiscard:
		err = a.room.Discard(sess.playerID, msg.CardID, a.info)
	case actionPlayCard:
		err = a.room.PlayCard(sess.playerID, msg.CardID, a.info)
	case actionStartNextHand:
		err = a.room.StartNextHand(a.info)
	case actionRestartMatch:
		err = a.room.RestartMatch(a.info)
	case actionAddBot:
		_, err = a.room.AddBot()
	case actionRemoveBot:
		err = a.room.RemoveBot()
	case actionSetSeat:
		err = a.room.SetSeat(msg.TargetPlayerID, msg.SeatIndex)
	case actionSetBotDifficulty:
		err = a.room.SetBotDifficulty(euchre.BotDifficulty(msg.BotDifficulty))
	case actionStartRoom:
		if !a.room.CanStart() {
			err = &euchre.ActionError{Kind: euchre.KindPhase, Message: "the room needs exactly 4 seated players to start"}
		} else {
			a.room.StartMatch(a.info)
		}
	default:
		sess.send(errorMessage("unknown action"))
		return
	}

	if err != nil {
		sess.send(errorMessage(err.Error()))
		return
	}

	a.persistAndBroadcast()
	a.kickOff()
}
