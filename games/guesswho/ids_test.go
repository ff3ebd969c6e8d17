/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomCodeAlphabet(t *testing.T) {
	for range 1000 {
		code := randomCode(roomCodeLength)

		assert.Len(t, code, roomCodeLength)
		for _, c := range code {
			assert.True(t, strings.ContainsRune(roomCodeAlphabet, c), "unexpected symbol %q in %s", c, code)
		}
		assert.False(t, strings.ContainsAny(code, "0O1I"), code)
	}
}

func TestNewRoomCodeRetriesOnCollision(t *testing.T) {
	var tried []string

	code := NewRoomCode(func(code string) bool {
		tried = append(tried, code)
		return len(tried) <= 3
	})

	assert.Len(t, tried, 4)
	assert.Equal(t, tried[3], code)
}

func TestNewParticipantIDUnique(t *testing.T) {
	seen := make(map[string]bool)

	for range 1000 {
		id := NewParticipantID()
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "ABC234", NormalizeCode(" abc234 "))
}
