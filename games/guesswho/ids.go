/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"crypto/rand"
	"strings"

	"github.com/google/uuid"
)

const (
	// Uppercase letters and digits, minus 0, O, 1 and I.
	roomCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	roomCodeLength   = 6
)

// randomCode draws n symbols from roomCodeAlphabet using crypto/rand,
// discarding bytes that would bias the result.
func randomCode(n int) string {
	const max = byte(255 - (256 % len(roomCodeAlphabet)))

	out := make([]byte, 0, n)
	buf := make([]byte, n*2)

	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			panic("crypto/rand failure: " + err.Error())
		}

		for _, b := range buf {
			if b <= max {
				out = append(out, roomCodeAlphabet[int(b)%len(roomCodeAlphabet)])
				if len(out) == n {
					return string(out)
				}
			}
		}
	}

	return string(out)
}

// NewRoomCode returns a fresh room code for which inUse reports false.
func NewRoomCode(inUse func(code string) bool) string {
	for {
		code := randomCode(roomCodeLength)
		if inUse == nil || !inUse(code) {
			return code
		}
	}
}

// NewParticipantID returns an opaque, unguessable participant identifier.
func NewParticipantID() string {
	return uuid.NewString()
}

// NormalizeCode upper-cases and trims a user-supplied room code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
