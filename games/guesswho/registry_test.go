/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreate(t *testing.T) {
	reg := NewRegistry(Options{})

	room, hostID, err := reg.Create("  Host  ")
	require.NoError(t, err)

	view := room.View()
	assert.Len(t, view.Code, roomCodeLength)
	assert.Equal(t, hostID, view.HostID)
	assert.Equal(t, hostID, room.HostID())
	assert.False(t, view.Started)
	assert.Empty(t, view.TurnHolder)
	assert.Nil(t, view.PendingQuestion)
	assert.Equal(t, DefaultCharacters(), view.CharacterSet)

	require.Len(t, view.Players, 1)
	assert.Equal(t, PlayerView{ID: hostID, Nickname: "Host"}, view.Players[0])

	found, ok := reg.Lookup(view.Code)
	require.True(t, ok)
	assert.Same(t, room, found)
	assert.Equal(t, 1, reg.Len())
}

func TestCreateInvalidNickname(t *testing.T) {
	reg := NewRegistry(Options{})

	for _, nickname := range []string{"", "   ", strings.Repeat("x", MaxNicknameLength+1)} {
		_, _, err := reg.Create(nickname)
		assert.ErrorIs(t, err, ErrInvalidNickname, "nickname %q", nickname)
	}

	_, _, err := reg.Create(strings.Repeat("é", MaxNicknameLength))
	assert.NoError(t, err)

	assert.Equal(t, 1, reg.Len())
}

func TestJoin(t *testing.T) {
	reg := NewRegistry(Options{})

	room, hostID, err := reg.Create("host")
	require.NoError(t, err)

	joined, guestID, err := reg.Join(strings.ToLower(room.Code()), "guest")
	require.NoError(t, err)
	assert.Same(t, room, joined)
	assert.NotEqual(t, hostID, guestID)

	view := room.View()
	require.Len(t, view.Players, 2)
	assert.Equal(t, hostID, view.Players[0].ID)
	assert.Equal(t, PlayerView{ID: guestID, Nickname: "guest"}, view.Players[1])
	assert.Equal(t, hostID, view.HostID)
}

func TestJoinErrors(t *testing.T) {
	reg := NewRegistry(Options{})

	room, _, err := reg.Create("host")
	require.NoError(t, err)

	_, _, err = reg.Join("ZZZZZZ", "guest")
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, _, err = reg.Join(room.Code(), "")
	assert.ErrorIs(t, err, ErrInvalidNickname)

	for i := 1; i < MaxPlayers; i++ {
		_, _, err := reg.Join(room.Code(), "guest")
		require.NoError(t, err)
	}

	_, _, err = reg.Join(room.Code(), "ninth")
	assert.ErrorIs(t, err, ErrRoomFull)
	assert.Len(t, room.View().Players, MaxPlayers)
}

func TestConcurrentJoinsRespectCapacity(t *testing.T) {
	reg := NewRegistry(Options{})

	room, _, err := reg.Create("host")
	require.NoError(t, err)

	const attempts = 32

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		ok   int
		full int
	)

	for range attempts {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, _, err := reg.Join(room.Code(), "guest")

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				ok++
			case assert.ErrorIs(t, err, ErrRoomFull):
				full++
			}
		}()
	}

	wg.Wait()

	assert.Equal(t, MaxPlayers-1, ok)
	assert.Equal(t, attempts-(MaxPlayers-1), full)
	assert.Len(t, room.View().Players, MaxPlayers)
}

func TestJoinAfterStartRaces(t *testing.T) {
	reg := NewRegistry(Options{})

	room, hostID, err := reg.Create("host")
	require.NoError(t, err)

	_, guestID, err := reg.Join(room.Code(), "guest")
	require.NoError(t, err)

	connect(t, room, hostID)
	connect(t, room, guestID)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, room.StartGame(hostID))
	}()

	joinedIDs := make(chan string, 4)
	for range 4 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if _, id, err := reg.Join(room.Code(), "late"); err == nil {
				joinedIDs <- id
			} else {
				assert.ErrorIs(t, err, ErrGameAlreadyStarted)
			}
		}()
	}

	wg.Wait()
	close(joinedIDs)

	// Anyone who got in did so before the start and was not connected, so
	// they sit the game out.
	view := room.View()
	for id := range joinedIDs {
		assert.False(t, player(t, view, id).Ready)
	}

	_, _, err = reg.Join(room.Code(), "later")
	assert.ErrorIs(t, err, ErrGameAlreadyStarted)
}

func TestReapOnce(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	reg := NewRegistry(Options{
		SessionTimeout: time.Hour,
		Now:            func() time.Time { return now },
	})

	idle, _, err := reg.Create("idle")
	require.NoError(t, err)

	busy, busyHost, err := reg.Create("busy")
	require.NoError(t, err)

	c := connect(t, busy, busyHost)

	now = now.Add(2 * time.Hour)

	assert.Equal(t, 1, reg.reapOnce())

	_, ok := reg.Lookup(idle.Code())
	assert.False(t, ok)

	_, ok = reg.Lookup(busy.Code())
	assert.True(t, ok)

	// Once the last player leaves the room lingers for the full timeout.
	busy.Unbind(c)
	assert.Equal(t, 0, reg.reapOnce())

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, reg.reapOnce())
	assert.Equal(t, 0, reg.Len())
}
