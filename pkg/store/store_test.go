package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cardtable/euchre-rooms/pkg/euchre"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rooms.sqlite")
	s, err := Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveRoomThenLoadAllRestoresState(t *testing.T) {
	s := openTestStore(t)

	r := euchre.NewRoom("parlor", "secret", euchre.DifficultyHard)
	r.AddHumanPlayer("Ann")
	r.AddBot()
	r.StartMatch(nil)
	require.NoError(t, s.SaveRoom(r))

	restored, err := s.LoadAll()
	require.NoError(t, err)
	require.Contains(t, restored, "parlor")

	got := restored["parlor"]
	require.Equal(t, r.Password, got.Password)
	require.Equal(t, r.BotDifficulty, got.BotDifficulty)
	require.Equal(t, euchre.StatusPlaying, got.Status)
	require.NotNil(t, got.Game)
	require.Equal(t, euchre.PhaseBiddingRound1, got.Game.Phase)
}

func TestLoadAllMarksNonBotPlayersDisconnected(t *testing.T) {
	s := openTestStore(t)

	r := euchre.NewRoom("parlor", "", euchre.DifficultyMedium)
	ann, _ := r.AddHumanPlayer("Ann")
	ann.Connected = true
	r.AddBot()
	require.NoError(t, s.SaveRoom(r))

	restored, err := s.LoadAll()
	require.NoError(t, err)

	got := restored["parlor"]
	human := got.PlayerByName("Ann")
	require.False(t, human.Connected, "expected a restored human seat to start disconnected")
	bot := got.Players[1]
	require.True(t, bot.IsBot)
}

func TestLoadAllRelinksGamePlayerPointers(t *testing.T) {
	s := openTestStore(t)

	r := euchre.NewRoom("parlor", "", euchre.DifficultyMedium)
	for _, name := range []string{"Ann", "Bob", "Cid", "Dee"} {
		r.AddHumanPlayer(name)
	}
	r.StartMatch(nil)
	require.NoError(t, s.SaveRoom(r))

	restored, err := s.LoadAll()
	require.NoError(t, err)
	got := restored["parlor"]

	for seat := 0; seat < 4; seat++ {
		p := got.Game.PlayerAt(seat)
		require.NotNil(t, p, "expected seat %d to be relinked", seat)
		require.Equal(t, got.PlayerBySeat(seat).ID, p.ID)
	}
}

func TestSaveRoomUpsertsExistingRow(t *testing.T) {
	s := openTestStore(t)

	r := euchre.NewRoom("parlor", "", euchre.DifficultyMedium)
	require.NoError(t, s.SaveRoom(r))

	r.BotDifficulty = euchre.DifficultyHard
	require.NoError(t, s.SaveRoom(r))

	restored, err := s.LoadAll()
	require.NoError(t, err)
	require.Len(t, restored, 1)
	require.Equal(t, euchre.DifficultyHard, restored["parlor"].BotDifficulty)
}

func TestDeleteRoomRemovesPersistedRow(t *testing.T) {
	s := openTestStore(t)

	r := euchre.NewRoom("parlor", "", euchre.DifficultyMedium)
	require.NoError(t, s.SaveRoom(r))
	require.NoError(t, s.DeleteRoom("parlor"))

	restored, err := s.LoadAll()
	require.NoError(t, err)
	require.Empty(t, restored)
}
