/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import "errors"

// Admission errors, returned by Registry.Create and Registry.Join.
var (
	ErrInvalidNickname    = errors.New("invalid nickname")
	ErrRoomNotFound       = errors.New("room not found")
	ErrGameAlreadyStarted = errors.New("game already started")
	ErrRoomFull           = errors.New("room is full")
)

// Connection errors.
var (
	ErrInvalidParticipant = errors.New("invalid participant")
)

// Authorization errors, reported to the originating connection.
var (
	ErrNotHost             = errors.New("only the host can start the game")
	ErrInsufficientPlayers = errors.New("need at least 2 connected players to start")
)

// Precondition violations. These are dropped without notifying anyone.
var (
	ErrNotInLobby         = errors.New("game is not in the lobby")
	ErrNotActive          = errors.New("game has not started")
	ErrUnknownCharacter   = errors.New("unknown character")
	ErrAlreadyReady       = errors.New("participant is already ready")
	ErrNotTurnHolder      = errors.New("not the turn holder")
	ErrInvalidText        = errors.New("invalid text")
	ErrNoPendingQuestion  = errors.New("no pending question")
	ErrInvalidAnswer      = errors.New("invalid answer")
	ErrSelfAnswer         = errors.New("cannot answer own question")
	ErrUnknownMessageType = errors.New("unknown message type")
)

// Reportable reports whether err should be sent back to the connection
// that caused it.
func Reportable(err error) bool {
	return errors.Is(err, ErrNotHost) || errors.Is(err, ErrInsufficientPlayers)
}
