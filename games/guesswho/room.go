/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"crypto/rand"
	"math/big"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	MaxPlayers        = 8
	MaxNicknameLength = 24
	MaxQuestionLength = 200
	MaxChatLength     = 300
	minPlayersToStart = 2
)

// Participant is one player slot in a room. Participants are never removed.
type Participant struct {
	ID        string
	Nickname  string
	Connected bool
	Ready     bool
}

// Room holds the state of one game session. Every exported method takes
// the room's lock, so operations on a single room are linearizable.
type Room struct {
	mu sync.Mutex

	code      string
	createdAt time.Time
	hostID    string

	order      []string // participant IDs in join order
	members    map[string]*Participant
	characters []Character
	secrets    map[string]string // participant ID -> character name

	started    bool
	turnHolder string
	pending    *Question

	clients    map[*Client]struct{}
	lastActive time.Time

	now  func() time.Time
	logf func(format string, args ...any)
}

func newRoom(code string, opts Options) *Room {
	now := opts.Now()

	return &Room{
		code:       code,
		createdAt:  now,
		lastActive: now,
		members:    make(map[string]*Participant),
		characters: opts.Characters,
		secrets:    make(map[string]string),
		clients:    make(map[*Client]struct{}),
		now:        opts.Now,
		logf:       opts.Logf,
	}
}

// validNickname trims surrounding whitespace and checks the length bound.
func validNickname(nickname string) (string, error) {
	nickname = strings.TrimSpace(nickname)

	n := utf8.RuneCountInString(nickname)
	if n == 0 || n > MaxNicknameLength {
		return "", ErrInvalidNickname
	}

	return nickname, nil
}

func validText(text string, limit int) bool {
	n := utf8.RuneCountInString(text)

	return strings.TrimSpace(text) != "" && n <= limit
}

// randomIndex returns a uniform index in [0, n).
func randomIndex(n int) int {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		panic("crypto/rand failure: " + err.Error())
	}

	return int(v.Int64())
}

func (r *Room) Code() string {
	return r.code
}

func (r *Room) HostID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.hostID
}

// View returns the sanitized snapshot of the room.
func (r *Room) View() RoomView {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.viewLocked()
}

func (r *Room) viewLocked() RoomView {
	players := make([]PlayerView, 0, len(r.order))
	for _, id := range r.order {
		p := r.members[id]
		players = append(players, PlayerView{
			ID:        p.ID,
			Nickname:  p.Nickname,
			Connected: p.Connected,
			Ready:     p.Ready,
		})
	}

	var pending *Question
	if r.pending != nil {
		q := *r.pending
		pending = &q
	}

	return RoomView{
		Code:            r.code,
		CreatedAt:       r.createdAt,
		HostID:          r.hostID,
		Players:         players,
		Started:         r.started,
		TurnHolder:      r.turnHolder,
		CharacterSet:    r.characters,
		PendingQuestion: pending,
	}
}

func (r *Room) touchLocked() {
	r.lastActive = r.now()
}

// addParticipant checks the lobby state and capacity and appends the new
// member in one step.
func (r *Room) addParticipant(nickname string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return "", ErrGameAlreadyStarted
	}

	if len(r.order) >= MaxPlayers {
		return "", ErrRoomFull
	}

	id := NewParticipantID()
	for r.members[id] != nil {
		id = NewParticipantID()
	}

	r.members[id] = &Participant{
		ID:       id,
		Nickname: nickname,
	}
	r.order = append(r.order, id)

	if r.hostID == "" {
		r.hostID = id
	}

	r.touchLocked()

	r.logf("GAMES: Player %q joined %s", nickname, r.code)

	return id, nil
}

// SubmitReadiness commits participantID to a hidden character. A participant
// who is already ready keeps their first choice.
func (r *Room) SubmitReadiness(participantID, characterName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.members[participantID]
	if !ok {
		return ErrInvalidParticipant
	}

	if r.started {
		return ErrNotInLobby
	}

	if !r.hasCharacterLocked(characterName) {
		return ErrUnknownCharacter
	}

	if p.Ready {
		return ErrAlreadyReady
	}

	r.secrets[p.ID] = characterName
	p.Ready = true
	r.touchLocked()

	r.broadcastLocked(RoomUpdate{r.viewLocked()})

	return nil
}

func (r *Room) hasCharacterLocked(name string) bool {
	for _, c := range r.characters {
		if c.Name == name {
			return true
		}
	}

	return false
}

// StartGame moves the room out of the lobby. Connected participants who have
// not picked a character get a random one; disconnected ones sit the game out.
func (r *Room) StartGame(participantID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[participantID]; !ok {
		return ErrInvalidParticipant
	}

	if r.started {
		return ErrNotInLobby
	}

	if participantID != r.hostID {
		return ErrNotHost
	}

	connected := make([]*Participant, 0, len(r.order))
	for _, id := range r.order {
		if p := r.members[id]; p.Connected {
			connected = append(connected, p)
		}
	}

	if len(connected) < minPlayersToStart {
		return ErrInsufficientPlayers
	}

	for _, p := range connected {
		if p.Ready {
			continue
		}

		r.secrets[p.ID] = r.characters[randomIndex(len(r.characters))].Name
		p.Ready = true
	}

	r.started = true
	r.turnHolder = connected[randomIndex(len(connected))].ID
	r.touchLocked()

	r.logf("GAMES: Started %s with %d players, %q goes first", r.code, len(connected), r.members[r.turnHolder].Nickname)

	r.broadcastLocked(GameStarted{r.viewLocked()})

	return nil
}

// Ask records a question from the turn holder. An unanswered question from
// the same turn holder is replaced.
func (r *Room) Ask(participantID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return ErrNotActive
	}

	if participantID != r.turnHolder {
		return ErrNotTurnHolder
	}

	if !validText(text, MaxQuestionLength) {
		return ErrInvalidText
	}

	r.pending = &Question{
		From: participantID,
		Text: text,
	}
	r.touchLocked()

	r.broadcastLocked(QuestionEvent{Question: *r.pending})

	return nil
}

// Answer resolves the pending question and passes the turn on.
func (r *Room) Answer(participantID string, answer Answer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[participantID]; !ok {
		return ErrInvalidParticipant
	}

	if !r.started {
		return ErrNotActive
	}

	if r.pending == nil {
		return ErrNoPendingQuestion
	}

	if !answer.Valid() {
		return ErrInvalidAnswer
	}

	if participantID == r.pending.From {
		return ErrSelfAnswer
	}

	r.broadcastLocked(AnswerResolved{
		Answer:   answer,
		Question: *r.pending,
	})

	r.turnHolder = r.nextTurnLocked()
	r.pending = nil
	r.touchLocked()

	r.broadcastLocked(RoomUpdate{r.viewLocked()})

	return nil
}

// nextTurnLocked returns the ready participant after the current turn holder
// in join order, wrapping around. If the turn holder is not among the ready
// participants the turn does not move.
func (r *Room) nextTurnLocked() string {
	ready := make([]string, 0, len(r.order))
	for _, id := range r.order {
		if r.members[id].Ready {
			ready = append(ready, id)
		}
	}

	for i, id := range ready {
		if id == r.turnHolder {
			return ready[(i+1)%len(ready)]
		}
	}

	return r.turnHolder
}

// Chat relays a message to the whole room without touching game state.
func (r *Room) Chat(participantID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.members[participantID]; !ok {
		return ErrInvalidParticipant
	}

	if !validText(text, MaxChatLength) {
		return ErrInvalidText
	}

	r.touchLocked()

	r.broadcastLocked(ChatMessage{
		From: participantID,
		Text: text,
		At:   r.now(),
	})

	return nil
}

// secretOf returns the hidden character of a participant. It is never
// included in anything sent to clients.
func (r *Room) secretOf(participantID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	name, ok := r.secrets[participantID]

	return name, ok
}

// idle reports whether nobody is connected and nothing has happened since cutoff.
func (r *Room) idle(cutoff time.Time) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.members {
		if p.Connected {
			return false
		}
	}

	return r.lastActive.Before(cutoff)
}
