/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Answer is the closed set of replies to a question.
type Answer string

const (
	AnswerYes     Answer = "yes"
	AnswerNo      Answer = "no"
	AnswerUnknown Answer = "unknown"
)

func (a Answer) Valid() bool {
	switch a {
	case AnswerYes, AnswerNo, AnswerUnknown:
		return true
	}

	return false
}

// Question is the single in-flight question of a room.
type Question struct {
	From string `json:"from"`
	Text string `json:"text"`
}

// PlayerView is the public projection of a participant.
type PlayerView struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Connected bool   `json:"connected"`
	Ready     bool   `json:"ready"`
}

// RoomView is the only representation of a room that leaves the process.
// It never carries secret character assignments.
type RoomView struct {
	Code            string       `json:"code"`
	CreatedAt       time.Time    `json:"createdAt"`
	HostID          string       `json:"hostId"`
	Players         []PlayerView `json:"players"`
	Started         bool         `json:"started"`
	TurnHolder      string       `json:"turnHolder,omitempty"`
	CharacterSet    []Character  `json:"characterSet"`
	PendingQuestion *Question    `json:"pendingQuestion"`
}

// Inbound messages, one type per event a client may send.
type Inbound interface {
	inboundType() string
}

type ReadyRequest struct {
	CharacterName string `json:"characterName"`
}

type StartGameRequest struct{}

type AskRequest struct {
	Text string `json:"text"`
}

type AnswerRequest struct {
	Value Answer `json:"value"`
}

type ChatRequest struct {
	Text string `json:"text"`
}

func (ReadyRequest) inboundType() string     { return "ready" }
func (StartGameRequest) inboundType() string { return "startGame" }
func (AskRequest) inboundType() string       { return "ask" }
func (AnswerRequest) inboundType() string    { return "answer" }
func (ChatRequest) inboundType() string      { return "chat" }

type inboundEnvelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func decodePayload[T Inbound](raw json.RawMessage) (T, error) {
	var msg T

	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return msg, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()

	if err := dec.Decode(&msg); err != nil {
		return msg, fmt.Errorf("decoding %s payload: %w", msg.inboundType(), err)
	}

	return msg, nil
}

// DecodeInbound parses a client frame of the form
// {"type": "...", "payload": {...}} into one of the inbound message types.
func DecodeInbound(data []byte) (Inbound, error) {
	var env inboundEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding message: %w", err)
	}

	switch env.Type {
	case "ready":
		return decodePayload[ReadyRequest](env.Payload)
	case "startGame":
		return decodePayload[StartGameRequest](env.Payload)
	case "ask":
		return decodePayload[AskRequest](env.Payload)
	case "answer":
		return decodePayload[AnswerRequest](env.Payload)
	case "chat":
		return decodePayload[ChatRequest](env.Payload)
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownMessageType, env.Type)
}

// Outbound events, one type per event the server may send.
type Outbound interface {
	outboundType() string
}

// RoomUpdate is the ordinary snapshot broadcast.
type RoomUpdate struct {
	RoomView
}

// GameStarted is the snapshot sent once when the room leaves the lobby.
type GameStarted struct {
	RoomView
}

type QuestionEvent struct {
	Question Question `json:"question"`
}

type AnswerResolved struct {
	Answer   Answer   `json:"answer"`
	Question Question `json:"question"`
}

type ChatMessage struct {
	From string    `json:"from"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

type ErrorMessage struct {
	Text string `json:"text"`
}

func (RoomUpdate) outboundType() string     { return "roomUpdate" }
func (GameStarted) outboundType() string    { return "gameStarted" }
func (QuestionEvent) outboundType() string  { return "question" }
func (AnswerResolved) outboundType() string { return "answerResolved" }
func (ChatMessage) outboundType() string    { return "chatMessage" }
func (ErrorMessage) outboundType() string   { return "errorMessage" }

// Envelope is the frame written to a connection.
type Envelope struct {
	Type    string   `json:"type"`
	Payload Outbound `json:"payload"`
}

func NewEnvelope(ev Outbound) Envelope {
	return Envelope{
		Type:    ev.outboundType(),
		Payload: ev,
	}
}
