/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

import (
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
)

const (
	maxMessageSize = 4096
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
)

// ServeConn binds an upgraded websocket to participantID in the room with
// the given code and runs it until the connection closes. Unknown rooms or
// participants get a single error message before the connection is closed.
func (reg *Registry) ServeConn(conn *websocket.Conn, code, participantID string) {
	room, ok := reg.Lookup(code)
	if !ok {
		rejectConn(conn, ErrRoomNotFound)

		return
	}

	client := NewClient(participantID, reg.opts.SendBuffer)

	if err := room.Bind(client); err != nil {
		rejectConn(conn, err)

		return
	}

	var limiter *rate.Limiter
	if reg.opts.MessageRate > 0 {
		limiter = rate.NewLimiter(reg.opts.MessageRate, max(reg.opts.MessageBurst, 1))
	}

	go writePump(conn, client)
	readPump(conn, room, client, limiter)
}

func rejectConn(conn *websocket.Conn, err error) {
	defer conn.Close()

	text := errorText(err)

	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(NewEnvelope(ErrorMessage{Text: text})); err != nil {
		return
	}

	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.ClosePolicyViolation, text))
}

func readPump(conn *websocket.Conn, room *Room, client *Client, limiter *rate.Limiter) {
	defer func() {
		room.Unbind(client)
		_ = conn.Close()
	}()

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		if limiter != nil && !limiter.Allow() {
			room.logf("GAMES: Rate limited %s in %s", client.participantID, room.code)

			continue
		}

		msg, err := DecodeInbound(data)
		if err != nil {
			room.logf("GAMES: Bad message from %s in %s: %v", client.participantID, room.code, err)

			continue
		}

		_ = room.Handle(client, msg)
	}
}

func writePump(conn *websocket.Conn, client *Client) {
	ticker := time.NewTicker(pingPeriod)

	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case env, ok := <-client.send:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})

				return
			}

			if err := conn.WriteJSON(env); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
