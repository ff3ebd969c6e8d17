/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Guess Who room coordinator
//
// Players create or join a room over plain HTTP, then open a websocket for
// the rest of the session:
//
//   - POST $path                  → create a room, caller becomes host
//   - POST $path/:code/join       → join a room still in the lobby
//   - GET  $path/:code            → public snapshot of a room
//   - GET  $path/:code/ws         → websocket, ?participantId=...
//   - GET  $path/:code/qr         → PNG QR code of the join link
//
// Rooms hold at most 8 players. Codes are 6 characters from an alphabet
// without 0, O, 1 or I. Rooms nobody is connected to are reaped after
// --session-timeout.

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/Seednode/guesswho/games/guesswho"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"golang.org/x/time/rate"
)

const maxRequestBody = 4096

type admissionRequest struct {
	Nickname string `json:"nickname"`
}

type admissionResponse struct {
	Room          guesswho.RoomView `json:"room"`
	ParticipantID string            `json:"participantId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

func admissionStatus(err error) int {
	switch {
	case errors.Is(err, guesswho.ErrInvalidNickname):
		return http.StatusBadRequest
	case errors.Is(err, guesswho.ErrRoomNotFound):
		return http.StatusNotFound
	case errors.Is(err, guesswho.ErrGameAlreadyStarted), errors.Is(err, guesswho.ErrRoomFull):
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// writeJSON sends v as the response body and returns the bytes written.
func writeJSON(cfg *Config, w http.ResponseWriter, status int, v any) (int, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(data)+1))
	w.Header().Set("Cache-Control", "no-store")
	securityHeaders(cfg, w)
	w.WriteHeader(status)

	return w.Write(append(data, '\n'))
}

// admissionMessage hides wrapped detail from clients.
func admissionMessage(err error) string {
	for _, target := range []error{
		guesswho.ErrInvalidNickname,
		guesswho.ErrRoomNotFound,
		guesswho.ErrGameAlreadyStarted,
		guesswho.ErrRoomFull,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}

	return "internal error"
}

func writeError(cfg *Config, w http.ResponseWriter, err error, errs chan<- error) {
	if _, werr := writeJSON(cfg, w, admissionStatus(err), errorResponse{Error: admissionMessage(err)}); werr != nil {
		errs <- werr
	}
}

// readNickname decodes the admission body. Anything that is not a JSON
// object with a string nickname counts as an invalid nickname.
func readNickname(w http.ResponseWriter, r *http.Request) (string, error) {
	var req admissionRequest

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		return "", fmt.Errorf("%w: %v", guesswho.ErrInvalidNickname, err)
	}

	return req.Nickname, nil
}

func serveCreateRoom(cfg *Config, reg *guesswho.Registry, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		startTime := time.Now()

		nickname, err := readNickname(w, r)
		if err != nil {
			writeError(cfg, w, err, errs)

			return
		}

		room, id, err := reg.Create(nickname)
		if err != nil {
			writeError(cfg, w, err, errs)

			return
		}

		written, err := writeJSON(cfg, w, http.StatusOK, admissionResponse{Room: room.View(), ParticipantID: id})
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Created room %s (%s) for %s in %s",
			room.Code(),
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveJoinRoom(cfg *Config, reg *guesswho.Registry, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		nickname, err := readNickname(w, r)
		if err != nil {
			writeError(cfg, w, err, errs)

			return
		}

		room, id, err := reg.Join(ps.ByName("code"), nickname)
		if err != nil {
			writeError(cfg, w, err, errs)

			return
		}

		written, err := writeJSON(cfg, w, http.StatusOK, admissionResponse{Room: room.View(), ParticipantID: id})
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Joined room %s (%s) for %s in %s",
			room.Code(),
			humanReadableSize(int64(written)),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

func serveRoom(cfg *Config, reg *guesswho.Registry, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room, ok := reg.Lookup(ps.ByName("code"))
		if !ok {
			writeError(cfg, w, guesswho.ErrRoomNotFound, errs)

			return
		}

		if _, err := writeJSON(cfg, w, http.StatusOK, room.View()); err != nil {
			errs <- err
		}
	}
}

// serveRoomSocket upgrades first so that admission failures can be
// reported over the socket itself.
func serveRoomSocket(cfg *Config, reg *guesswho.Registry) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "ERROR: websocket upgrade for %s: %v", realIP(r), err)

			return
		}

		reg.ServeConn(conn, ps.ByName("code"), r.URL.Query().Get("participantId"))
	}
}

// joinURL is the link shared with other players, derived from the request
// (respecting TLS and X-Forwarded-Proto if present).
func joinURL(cfg *Config, r *http.Request, code string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	u := url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     cfg.prefix + "/",
		RawQuery: url.Values{"room": {code}}.Encode(),
	}

	return u.String()
}

// serveRoomQR generates a PNG QR code for the room's join link.
func serveRoomQR(cfg *Config, reg *guesswho.Registry, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		room, ok := reg.Lookup(ps.ByName("code"))
		if !ok {
			writeError(cfg, w, guesswho.ErrRoomNotFound, errs)

			return
		}

		const qrSize = 320 // mobile-friendly size
		png, err := qrcode.Encode(joinURL(cfg, r, room.Code()), qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)

		if _, err := w.Write(png); err != nil {
			errs <- err
		}
	}
}

func newRegistry(cfg *Config) *guesswho.Registry {
	return guesswho.NewRegistry(guesswho.Options{
		SessionTimeout: cfg.sessionTimeout,
		MessageRate:    rate.Limit(cfg.messageRate),
		MessageBurst:   cfg.messageBurst,
		Logf: func(format string, args ...any) {
			logf(cfg, format, args...)
		},
	})
}

func registerGuessWho(ctx context.Context, cfg *Config, path string, mux *httprouter.Router, errs chan<- error) *guesswho.Registry {
	reg := newRegistry(cfg)

	go reg.Reap(ctx, cfg.sessionTimeout/2)

	mux.POST(cfg.prefix+path, serveCreateRoom(cfg, reg, errs))

	mux.GET(cfg.prefix+path+"/:code", serveRoom(cfg, reg, errs))

	mux.POST(cfg.prefix+path+"/:code/join", serveJoinRoom(cfg, reg, errs))

	mux.GET(cfg.prefix+path+"/:code/ws", serveRoomSocket(cfg, reg))

	mux.GET(cfg.prefix+path+"/:code/qr", serveRoomQR(cfg, reg, errs))

	return reg
}
