/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package guesswho

// Client is one live connection bound to a participant of a room.
type Client struct {
	participantID string
	send          chan Envelope
}

// NewClient creates a client for participantID whose outbound queue holds
// up to buffer events.
func NewClient(participantID string, buffer int) *Client {
	return &Client{
		participantID: participantID,
		send:          make(chan Envelope, buffer),
	}
}

func (c *Client) ParticipantID() string {
	return c.participantID
}

// Outbound is closed once the room stops delivering to this client.
func (c *Client) Outbound() <-chan Envelope {
	return c.send
}

// broadcastLocked queues ev for every bound client.
func (r *Room) broadcastLocked(ev Outbound) {
	env := NewEnvelope(ev)

	for client := range r.clients {
		r.deliverLocked(client, env)
	}
}

// deliverLocked never blocks. A client that cannot keep up is dropped; its
// connection closes and Unbind brings the participant's flags up to date.
func (r *Room) deliverLocked(client *Client, env Envelope) {
	select {
	case client.send <- env:
	default:
		r.logf("GAMES: Dropping slow connection for %s in %s", client.participantID, r.code)

		delete(r.clients, client)
		close(client.send)
	}
}

// sendTo queues ev for a single client, if it is still bound.
func (r *Room) sendTo(client *Client, ev Outbound) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client]; ok {
		r.deliverLocked(client, NewEnvelope(ev))
	}
}

// Bind attaches client to its participant, marks them connected and
// broadcasts a snapshot.
func (r *Room) Bind(client *Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.members[client.participantID]
	if !ok {
		return ErrInvalidParticipant
	}

	r.clients[client] = struct{}{}
	p.Connected = true
	r.touchLocked()

	r.logf("GAMES: Player %q connected to %s", p.Nickname, r.code)

	r.broadcastLocked(RoomUpdate{r.viewLocked()})

	return nil
}

// Unbind detaches client. The participant stays connected while any other
// connection is bound to the same ID.
func (r *Room) Unbind(client *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.clients[client]; ok {
		delete(r.clients, client)
		close(client.send)
	}

	p, ok := r.members[client.participantID]
	if !ok {
		return
	}

	p.Connected = false
	for c := range r.clients {
		if c.participantID == p.ID {
			p.Connected = true
			break
		}
	}
	r.touchLocked()

	r.logf("GAMES: Player %q disconnected from %s", p.Nickname, r.code)

	r.broadcastLocked(RoomUpdate{r.viewLocked()})
}

// closeAll stops delivery to every bound client.
func (r *Room) closeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for c := range r.clients {
		delete(r.clients, c)
		close(c.send)
	}
}
