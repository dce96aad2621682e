// Package chat relays chat messages over a websocket. Every frame is one
// JSON encoded Message.
package chat

import (
	"context"
	"net/http"
	"sync"
	"time"

	"pagetui/internal/action"
	"pagetui/internal/errors"
	"pagetui/internal/log"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Message is one chat line.
type Message struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Message  string    `json:"message"`
	Ctime    time.Time `json:"ctime"`
}

// NewMessage stamps a message with a fresh id and the current time.
func NewMessage(user, text string) Message {
	return Message{ID: uuid.New(), Username: user, Message: text, Ctime: time.Now()}
}

// Received wraps m as a ChatReceived action.
func (m Message) Received() action.Action {
	return action.NewChatReceived(m.ID.String(), m.Username, m.Message, m.Ctime)
}

// FromAction rebuilds the message carried by a ChatReceived action. A
// missing or malformed id gets a fresh one and a zero time becomes now.
func FromAction(a action.Action) Message {
	m := Message{Username: a.Text, Message: a.Detail, Ctime: a.Time}
	id, err := uuid.Parse(a.ID)
	if err != nil {
		id = uuid.New()
	}
	m.ID = id
	if m.Ctime.IsZero() {
		m.Ctime = time.Now()
	}
	return m
}

// Relay is a connected chat session. Received messages are sent as
// ChatReceived actions.
type Relay struct {
	conn   *websocket.Conn
	tx     action.Sender
	user   string
	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Dial connects to url as user and starts the read loop. The loop stops
// when ctx is cancelled or Close is called.
func Dial(ctx context.Context, url, user string, tx action.Sender) (*Relay, error) {
	dialer := *websocket.DefaultDialer
	dialer.HandshakeTimeout = 5 * time.Second

	header := http.Header{}
	header.Set("X-Chat-User", user)
	conn, _, err := dialer.DialContext(ctx, url, header)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to %s", url)
	}

	ctx, cancel := context.WithCancel(ctx)
	r := &Relay{conn: conn, tx: tx, user: user, cancel: cancel, done: make(chan struct{})}
	go r.readLoop()
	go func() {
		<-ctx.Done()
		_ = r.conn.Close()
	}()

	log.LogWithFields(log.F("url", url), log.F("user", user)).Info("Connected to chat relay")
	return r, nil
}

// Publish sends a message to the relay.
func (r *Relay) Publish(m Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.conn.WriteJSON(m); err != nil {
		return errors.Wrap(err, "failed to send chat message")
	}
	return nil
}

// Close ends the session and waits for the read loop to exit.
func (r *Relay) Close() error {
	r.mu.Lock()
	_ = r.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	r.mu.Unlock()
	r.cancel()
	<-r.done
	return nil
}

// Done is closed when the read loop exits.
func (r *Relay) Done() <-chan struct{} { return r.done }

func (r *Relay) readLoop() {
	defer close(r.done)
	for {
		var m Message
		if err := r.conn.ReadJSON(&m); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug("Chat relay closed")
			} else {
				log.LogWithFields(log.F("error", err)).Warn("Chat relay read failed")
			}
			return
		}
		if m.Username == r.user {
			continue
		}
		r.tx.Send(m.Received())
	}
}
