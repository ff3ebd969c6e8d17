/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInbound(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Inbound
	}{
		{"ready", `{"type":"ready","payload":{"characterName":"Alice"}}`, ReadyRequest{CharacterName: "Alice"}},
		{"start game without payload", `{"type":"startGame"}`, StartGameRequest{}},
		{"start game with empty payload", `{"type":"startGame","payload":{}}`, StartGameRequest{}},
		{"ask", `{"type":"ask","payload":{"text":"Glasses?"}}`, AskRequest{Text: "Glasses?"}},
		{"answer", `{"type":"answer","payload":{"value":"unknown"}}`, AnswerRequest{Value: AnswerUnknown}},
		{"chat", `{"type":"chat","payload":{"text":"hi"}}`, ChatRequest{Text: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeInbound([]byte(tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeInboundRejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"not json", `ready`},
		{"unknown type", `{"type":"guess","payload":{}}`},
		{"missing type", `{"payload":{"text":"hi"}}`},
		{"unknown field", `{"type":"chat","payload":{"text":"hi","from":"someone"}}`},
		{"wrong field type", `{"type":"ask","payload":{"text":42}}`},
		{"payload not an object", `{"type":"answer","payload":"yes"}`},
		{"start game with fields", `{"type":"startGame","payload":{"force":true}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeInbound([]byte(tt.in))
			assert.Error(t, err)
		})
	}

	_, err := DecodeInbound([]byte(`{"type":"guess"}`))
	assert.ErrorIs(t, err, ErrUnknownMessageType)
}

func TestAnswerValid(t *testing.T) {
	assert.True(t, AnswerYes.Valid())
	assert.True(t, AnswerNo.Valid())
	assert.True(t, AnswerUnknown.Valid())
	assert.False(t, Answer("YES").Valid())
	assert.False(t, Answer("").Valid())
}

func TestEnvelopeEncoding(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		ev   Outbound
		want string
	}{
		{
			"question",
			QuestionEvent{Question: Question{From: "p1", Text: "Hat?"}},
			`{"type":"question","payload":{"question":{"from":"p1","text":"Hat?"}}}`,
		},
		{
			"answer",
			AnswerResolved{Answer: AnswerNo, Question: Question{From: "p1", Text: "Hat?"}},
			`{"type":"answerResolved","payload":{"answer":"no","question":{"from":"p1","text":"Hat?"}}}`,
		},
		{
			"chat",
			ChatMessage{From: "p2", Text: "gg", At: at},
			`{"type":"chatMessage","payload":{"from":"p2","text":"gg","at":"2026-03-01T09:30:00Z"}}`,
		},
		{
			"error",
			ErrorMessage{Text: "Room not found"},
			`{"type":"errorMessage","payload":{"text":"Room not found"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(NewEnvelope(tt.ev))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(data))
		})
	}
}

func TestSnapshotEnvelopesInlineRoomView(t *testing.T) {
	view := RoomView{Code: "ABCDEF", HostID: "h", Started: true, TurnHolder: "h"}

	for _, ev := range []Outbound{RoomUpdate{view}, GameStarted{view}} {
		data, err := json.Marshal(NewEnvelope(ev))
		require.NoError(t, err)

		var decoded struct {
			Type    string   `json:"type"`
			Payload RoomView `json:"payload"`
		}
		require.NoError(t, json.Unmarshal(data, &decoded))

		assert.Equal(t, ev.outboundType(), decoded.Type)
		assert.Equal(t, "ABCDEF", decoded.Payload.Code)
		assert.Equal(t, "h", decoded.Payload.TurnHolder)
	}
}
