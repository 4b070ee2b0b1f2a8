package server

import (
	"time"

	"github.com/faiface/pixel"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/they4kman/sweepcore/game"
)

// How often held presses are checked when the client is quiet
const tickInterval = 50 * time.Millisecond

// player owns the session of one connection. Only loop touches the session;
// read forwards client messages to it.
type player struct {
	conn    *websocket.Conn
	session *game.Session
	start   time.Time
	state   game.BoardState

	messages chan ClientMessage
	done     chan struct{}
}

func newPlayer(conn *websocket.Conn, session *game.Session) *player {
	return &player{
		conn:     conn,
		session:  session,
		start:    time.Now(),
		state:    session.State(),
		messages: make(chan ClientMessage),
		done:     make(chan struct{}),
	}
}

func (p *player) loop() {
	defer close(p.done)
	go p.read()

	if err := p.conn.WriteJSON([]ServerMessage{setupMessage(p.session)}); err != nil {
		log.WithError(err).Warn("Could not send setup")
		return
	}

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		var inputs []game.Input
		var events []game.Event
		var failure error

		select {
		case message, ok := <-p.messages:
			if !ok {
				return
			}
			inputs, events, failure = p.handle(message)
		case <-ticker.C:
		}

		events = append(events, p.session.Update(time.Since(p.start), inputs)...)

		reply := make([]ServerMessage, 0, len(events)+1)
		if failure != nil {
			reply = append(reply, ServerMessage{Type: MessageError, Error: failure.Error()})
		}
		for _, event := range events {
			reply = append(reply, eventMessage(event))
		}
		if state := p.session.State(); state != p.state {
			p.state = state
			reply = append(reply, ServerMessage{Type: MessageState, State: state.String()})
		}

		if len(reply) == 0 {
			continue
		}
		if err := p.conn.WriteJSON(reply); err != nil {
			log.WithError(err).Warn("Could not send events")
			return
		}
	}
}

func (p *player) read() {
	defer close(p.messages)

	for {
		var message ClientMessage
		if err := p.conn.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.WithError(err).Warn("Could not read message")
			}
			return
		}

		select {
		case p.messages <- message:
		case <-p.done:
			return
		}
	}
}

// handle turns a message into session inputs, or applies it directly
func (p *player) handle(message ClientMessage) ([]game.Input, []game.Event, error) {
	position := pixel.V(message.X, message.Y)
	coords := game.Coordinates{X: message.Col, Y: message.Row}

	switch message.Type {
	case MessagePointer:
		phase, ok := pointerPhases[message.Phase]
		if !ok {
			return nil, nil, errors.Errorf("unknown pointer phase %q", message.Phase)
		}
		return []game.Input{game.PointerEvent{Phase: phase, Position: position}}, nil, nil

	case MessageClick:
		button, ok := mouseButtons[message.Button]
		if !ok {
			return nil, nil, errors.Errorf("unknown button %q", message.Button)
		}
		return []game.Input{game.ClickEvent{Button: button, Position: position}}, nil, nil

	case MessageResize:
		return []game.Input{game.ResizeEvent{Size: position}}, nil, nil

	case MessageUncover:
		return nil, p.session.Uncover(coords), nil

	case MessageMark:
		return nil, p.session.ToggleMark(coords), nil
	}

	return nil, nil, errors.Errorf("unknown message type %q", message.Type)
}
