/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Options configures a Registry and the rooms it creates.
type Options struct {
	// Characters is the catalog offered in every room. Defaults to the
	// built-in set.
	Characters []Character

	// SessionTimeout is how long a room with nobody connected is kept
	// around. Zero keeps rooms forever.
	SessionTimeout time.Duration

	// MessageRate and MessageBurst bound how fast a single connection may
	// send. A zero rate disables the limit.
	MessageRate  rate.Limit
	MessageBurst int

	// SendBuffer is the per-connection outbound queue length.
	SendBuffer int

	Logf func(format string, args ...any)
	Now  func() time.Time
}

// Registry maps room codes to live rooms.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
	opts  Options
}

func NewRegistry(opts Options) *Registry {
	if len(opts.Characters) == 0 {
		opts.Characters = DefaultCharacters()
	}
	if opts.Logf == nil {
		opts.Logf = func(string, ...any) {}
	}
	if opts.SendBuffer <= 0 {
		opts.SendBuffer = 32
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Registry{
		rooms: make(map[string]*Room),
		opts:  opts,
	}
}

// Create opens a new room hosted by a participant with the given nickname.
func (reg *Registry) Create(hostNickname string) (*Room, string, error) {
	nickname, err := validNickname(hostNickname)
	if err != nil {
		return nil, "", err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()

	code := NewRoomCode(func(code string) bool {
		_, exists := reg.rooms[code]
		return exists
	})

	room := newRoom(code, reg.opts)

	hostID, err := room.addParticipant(nickname)
	if err != nil {
		return nil, "", err
	}

	reg.rooms[code] = room

	reg.opts.Logf("GAMES: Created room %s for %q", code, nickname)

	return room, hostID, nil
}

// Join adds a participant to an existing room that is still in the lobby.
func (reg *Registry) Join(code, nickname string) (*Room, string, error) {
	nickname, err := validNickname(nickname)
	if err != nil {
		return nil, "", err
	}

	room, ok := reg.Lookup(code)
	if !ok {
		return nil, "", ErrRoomNotFound
	}

	id, err := room.addParticipant(nickname)
	if err != nil {
		return nil, "", err
	}

	return room, id, nil
}

// Lookup finds a room by code, ignoring case.
func (reg *Registry) Lookup(code string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, ok := reg.rooms[NormalizeCode(code)]

	return room, ok
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.rooms)
}

// Reap removes idle rooms every interval until ctx is done.
func (reg *Registry) Reap(ctx context.Context, interval time.Duration) {
	if reg.opts.SessionTimeout <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			reg.reapOnce()
		}
	}
}

// reapOnce removes rooms with nobody connected that have been quiet for
// longer than the session timeout, and returns how many it removed.
func (reg *Registry) reapOnce() int {
	cutoff := reg.opts.Now().Add(-reg.opts.SessionTimeout)

	reg.mu.Lock()
	defer reg.mu.Unlock()

	removed := 0

	for code, room := range reg.rooms {
		if room.idle(cutoff) {
			delete(reg.rooms, code)
			room.closeAll()
			removed++

			reg.opts.Logf("GAMES: Reaped idle room %s", code)
		}
	}

	return removed
}
