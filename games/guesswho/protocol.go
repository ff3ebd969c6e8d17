/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import "errors"

// Handle applies one inbound message from client to the room. Authorization
// failures are reported back to client; any other rejection is dropped.
func (r *Room) Handle(client *Client, msg Inbound) error {
	pid := client.ParticipantID()

	var err error

	switch m := msg.(type) {
	case ReadyRequest:
		err = r.SubmitReadiness(pid, m.CharacterName)
	case StartGameRequest:
		err = r.StartGame(pid)
	case AskRequest:
		err = r.Ask(pid, m.Text)
	case AnswerRequest:
		err = r.Answer(pid, m.Value)
	case ChatRequest:
		err = r.Chat(pid, m.Text)
	default:
		err = ErrUnknownMessageType
	}

	if err == nil {
		return nil
	}

	if Reportable(err) {
		r.sendTo(client, ErrorMessage{Text: errorText(err)})
	} else {
		r.logf("GAMES: Ignored %T from %s in %s: %v", msg, pid, r.code, err)
	}

	return err
}

func errorText(err error) string {
	switch {
	case errors.Is(err, ErrNotHost):
		return "Only the host can start the game"
	case errors.Is(err, ErrInsufficientPlayers):
		return "Need at least 2 connected players to start"
	case errors.Is(err, ErrRoomNotFound):
		return "Room not found"
	case errors.Is(err, ErrInvalidParticipant):
		return "Invalid participant"
	}

	return err.Error()
}
