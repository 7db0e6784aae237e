package live

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const maxClients = 200

// ErrHubFull is returned when the viewer limit is reached.
var ErrHubFull = errors.New("maximum number of viewers reached")

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn    *websocket.Conn
	replyCh chan uuid.UUID
	errCh   chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	id uuid.UUID
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdSend struct {
	id   uuid.UUID
	data []byte
}

func (cmdSend) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, 16),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Hub ---

// Hub is the viewer subscription registry. All state is owned by a single
// command-loop goroutine; the public methods only exchange messages with it.
// onFirstConnect fires when the subscriber count goes 0 -> 1 and
// onLastDisconnect when it goes 1 -> 0, inside the loop, before the
// triggering call returns.
type Hub struct {
	cmdCh            chan hubCmd
	clients          map[uuid.UUID]*clientWriter
	onFirstConnect   func()
	onLastDisconnect func()
}

func NewHub(onFirstConnect, onLastDisconnect func()) *Hub {
	hub := &Hub{
		cmdCh:            make(chan hubCmd, 256),
		clients:          make(map[uuid.UUID]*clientWriter),
		onFirstConnect:   onFirstConnect,
		onLastDisconnect: onLastDisconnect,
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.id)
		case cmdBroadcast:
			h.handleBroadcast(c.data)
		case cmdSend:
			h.handleSend(c.id, c.data)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= maxClients {
		log.Warn().Int("max", maxClients).Msg("rejecting viewer: hub full")
		c.conn.Close()
		c.errCh <- ErrHubFull
		return
	}

	wasEmpty := len(h.clients) == 0
	id := uuid.New()
	h.clients[id] = newClientWriter(c.conn)
	log.Info().Str("client", id.String()).Int("total", len(h.clients)).Msg("viewer subscribed")

	if wasEmpty && h.onFirstConnect != nil {
		h.onFirstConnect()
	}
	c.replyCh <- id
	c.errCh <- nil
}

func (h *Hub) handleUnregister(id uuid.UUID) {
	cw, ok := h.clients[id]
	if !ok {
		return
	}
	cw.stop()
	delete(h.clients, id)

	if len(h.clients) == 0 {
		log.Info().Str("client", id.String()).Msg("last viewer disconnected")
		if h.onLastDisconnect != nil {
			h.onLastDisconnect()
		}
	} else {
		log.Info().Str("client", id.String()).Int("remaining", len(h.clients)).Msg("viewer unsubscribed")
	}
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []uuid.UUID
	for id, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			slow = append(slow, id)
		}
	}
	for _, id := range slow {
		log.Warn().Str("client", id.String()).Msg("dropping slow viewer")
		h.handleUnregister(id)
	}
}

func (h *Hub) handleSend(id uuid.UUID, data []byte) {
	cw, ok := h.clients[id]
	if !ok {
		return
	}
	select {
	case cw.sendCh <- data:
	default:
		log.Warn().Str("client", id.String()).Msg("dropping slow viewer")
		h.handleUnregister(id)
	}
}

func (h *Hub) handleStop() {
	for id, cw := range h.clients {
		cw.stop()
		delete(h.clients, id)
	}
}

// --- Public API ---

func (h *Hub) Register(conn *websocket.Conn) (uuid.UUID, error) {
	replyCh := make(chan uuid.UUID, 1)
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{conn: conn, replyCh: replyCh, errCh: errCh}
	if err := <-errCh; err != nil {
		return uuid.Nil, err
	}
	return <-replyCh, nil
}

func (h *Hub) Unregister(id uuid.UUID) {
	h.cmdCh <- cmdUnregister{id: id}
}

// Broadcast queues data for every connected viewer.
func (h *Hub) Broadcast(data []byte) {
	h.cmdCh <- cmdBroadcast{data: data}
}

// Send queues data for one viewer.
func (h *Hub) Send(id uuid.UUID, data []byte) {
	h.cmdCh <- cmdSend{id: id, data: data}
}

func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
}
