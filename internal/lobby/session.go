package lobby

import (
	"context"
	"log/slog"

	"github.com/mememaster/lobby/internal/bus"
	"github.com/mememaster/lobby/internal/dependencies/random"
	"github.com/mememaster/lobby/internal/model"
	"github.com/mememaster/lobby/internal/protocol"
)

// State is the lobby UI mode of one participant's device
type State string

const (
	StateMenu    State = "MENU"
	StateHost    State = "HOST"
	StateJoin    State = "JOIN"
	StateWaiting State = "WAITING"
)

// StartFunc is the game-start hand-off: the single call by which the lobby
// surrenders control once a game begins. Hosts pass the frozen roster and
// selected personality; guests know neither (the start broadcast carries
// only the room code), so they pass a nil roster.
type StartFunc func(roster []model.Player, personality model.Personality, isHost bool)

// Session is one participant's lobby state machine. All state is owned by a
// single event loop goroutine: commands from the UI and messages from the
// bus funnel into the same loop and run to completion one at a time, so
// admissions are serialized per room and a bus handler never observes a
// stale room code mid-transition.
type Session struct {
	ctx    context.Context
	cancel context.CancelFunc

	bus        *bus.Bus
	mgr        *Manager
	random     random.Random
	logger     *slog.Logger
	onStart    StartFunc
	minPlayers int

	inbox chan command

	// Owned by the event loop
	state      State
	conn       *bus.Conn      // nil unless the current state listens
	code       model.RoomCode // host's own room code
	joinedCode model.RoomCode // guest's submitted code
	finished   bool

	accepted chan protocol.JoinAccepted
}

// SessionConfig holds the per-participant knobs
type SessionConfig struct {
	// MinPlayers is the roster size required to start; defaults to
	// model.DefaultMinPlayers when zero.
	MinPlayers int
	// OnStart is the game-start hand-off (optional)
	OnStart StartFunc
}

// NewSession creates a session in MENU state and starts its event loop
func NewSession(
	parent context.Context,
	b *bus.Bus,
	mgr *Manager,
	rnd random.Random,
	logger *slog.Logger,
	cfg SessionConfig,
) *Session {
	minPlayers := cfg.MinPlayers
	if minPlayers <= 0 {
		minPlayers = model.DefaultMinPlayers
	}

	ctx, cancel := context.WithCancel(parent)
	s := &Session{
		ctx:        ctx,
		cancel:     cancel,
		bus:        b,
		mgr:        mgr,
		random:     rnd,
		logger:     logger.With(slog.String("component", "session")),
		onStart:    cfg.OnStart,
		minPlayers: minPlayers,
		inbox:      make(chan command, 16),
		state:      StateMenu,
		accepted:   make(chan protocol.JoinAccepted, 1),
	}

	go s.loop()
	return s
}

// Commands

type command interface{ isCommand() }

type createGame struct {
	personality model.Personality
	reply       chan createGameResult
}

type createGameResult struct {
	code model.RoomCode
	err  error
}

type chooseJoin struct{ reply chan error }

type submitJoin struct {
	code  string
	name  string
	reply chan error
}

type startGame struct{ reply chan error }

type leave struct{ reply chan error }

type getState struct{ reply chan stateView }

type stateView struct {
	state    State
	finished bool
}

type getRoom struct{ reply chan getRoomResult }

type getRoomResult struct {
	room *model.Room
	err  error
}

func (createGame) isCommand() {}
func (chooseJoin) isCommand() {}
func (submitJoin) isCommand() {}
func (startGame) isCommand()  {}
func (leave) isCommand()      {}
func (getState) isCommand()   {}
func (getRoom) isCommand()    {}

// CreateGame transitions MENU -> HOST: generates a room and starts
// listening for join requests addressed to its code.
func (s *Session) CreateGame(personality model.Personality) (model.RoomCode, error) {
	reply := make(chan createGameResult, 1)
	if err := s.send(createGame{personality: personality, reply: reply}); err != nil {
		return "", err
	}
	res := <-reply
	return res.code, res.err
}

// ChooseJoin transitions MENU -> JOIN (the code/name input screen)
func (s *Session) ChooseJoin() error {
	reply := make(chan error, 1)
	if err := s.send(chooseJoin{reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// SubmitJoin publishes a join request and transitions JOIN -> WAITING.
// The transition is optimistic: the guest moves to WAITING without any
// acknowledgment, and nothing times out or retries if no host answers.
func (s *Session) SubmitJoin(code, name string) error {
	reply := make(chan error, 1)
	if err := s.send(submitJoin{code: code, name: name, reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// Start attempts the host's game start. Below the player minimum it fails
// with model.ErrInsufficientPlayers and the session stays in HOST.
func (s *Session) Start() error {
	reply := make(chan error, 1)
	if err := s.send(startGame{reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// Leave returns to MENU from any non-MENU state. A leaving host tears its
// room down; its guests are not notified and keep waiting.
func (s *Session) Leave() error {
	reply := make(chan error, 1)
	if err := s.send(leave{reply: reply}); err != nil {
		return err
	}
	return <-reply
}

// State returns the current lobby state
func (s *Session) State() State {
	reply := make(chan stateView, 1)
	if err := s.send(getState{reply: reply}); err != nil {
		return StateMenu
	}
	return (<-reply).state
}

// Finished reports whether the session has handed control to the game phase
func (s *Session) Finished() bool {
	reply := make(chan stateView, 1)
	if err := s.send(getState{reply: reply}); err != nil {
		return false
	}
	return (<-reply).finished
}

// Room returns the host's current room with its live roster
func (s *Session) Room() (*model.Room, error) {
	reply := make(chan getRoomResult, 1)
	if err := s.send(getRoom{reply: reply}); err != nil {
		return nil, err
	}
	res := <-reply
	return res.room, res.err
}

// Accepted exposes matching JOIN_ACCEPTED notifications to the guest UI.
// Purely informational: no guest state change depends on it.
func (s *Session) Accepted() <-chan protocol.JoinAccepted {
	return s.accepted
}

// Close stops the event loop and releases the bus subscription
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) send(cmd command) error {
	select {
	case s.inbox <- cmd:
		return nil
	case <-s.ctx.Done():
		return model.ErrSessionClosed
	}
}

// Event loop

func (s *Session) loop() {
	for {
		// The message channel tracks the current subscription: states that
		// do not listen leave it nil, which never selects.
		var msgs <-chan protocol.Message
		if s.conn != nil {
			msgs = s.conn.Messages()
		}

		select {
		case <-s.ctx.Done():
			s.releaseConn()
			return

		case cmd := <-s.inbox:
			s.handleCommand(cmd)

		case msg, ok := <-msgs:
			if !ok {
				s.conn = nil
				continue
			}
			s.handleMessage(msg)
		}
	}
}

func (s *Session) handleCommand(cmd command) {
	switch c := cmd.(type) {
	case getState:
		c.reply <- stateView{state: s.state, finished: s.finished}
		return
	case getRoom:
		if s.state != StateHost {
			c.reply <- getRoomResult{err: model.ErrInvalidTransition}
			return
		}
		room, err := s.mgr.GetRoom(s.ctx, s.code)
		c.reply <- getRoomResult{room: room, err: err}
		return
	}

	if s.finished {
		s.replyErr(cmd, model.ErrSessionClosed)
		return
	}

	switch c := cmd.(type) {
	case createGame:
		if s.state != StateMenu {
			c.reply <- createGameResult{err: model.ErrInvalidTransition}
			return
		}
		room, err := s.mgr.CreateRoom(s.ctx, c.personality)
		if err != nil {
			c.reply <- createGameResult{err: err}
			return
		}
		s.code = room.Code
		s.conn = s.bus.Subscribe("host:" + string(room.Code))
		s.state = StateHost
		c.reply <- createGameResult{code: room.Code}

	case chooseJoin:
		if s.state != StateMenu {
			c.reply <- model.ErrInvalidTransition
			return
		}
		s.state = StateJoin
		c.reply <- nil

	case submitJoin:
		c.reply <- s.handleSubmitJoin(c)

	case startGame:
		c.reply <- s.handleStart()

	case leave:
		c.reply <- s.handleLeave()
	}
}

func (s *Session) handleSubmitJoin(c submitJoin) error {
	if s.state != StateJoin {
		return model.ErrInvalidTransition
	}
	// Invalid local input: nothing is published and the state is unchanged
	if c.code == "" {
		return model.ErrEmptyCode
	}
	if c.name == "" {
		return model.ErrEmptyName
	}

	code := model.RoomCode(c.code).Normalize()
	avatar := model.RandomAvatar(s.random)

	s.joinedCode = code
	s.conn = s.bus.Subscribe("guest:" + c.name)
	s.conn.Send(protocol.JoinRequest{
		Name:     c.name,
		RoomCode: code,
		Avatar:   avatar,
	})

	s.state = StateWaiting
	s.logger.Info("join request sent",
		slog.String("code", string(code)),
		slog.String("name", c.name))
	return nil
}

func (s *Session) handleStart() error {
	if s.state != StateHost {
		return model.ErrInvalidTransition
	}

	room, err := s.mgr.StartGame(s.ctx, s.code, s.minPlayers)
	if err != nil {
		// Insufficient roster is non-fatal: report it, stay in HOST
		return err
	}

	s.conn.Send(protocol.GameStarted{RoomCode: s.code})
	s.finish(room.Roster, room.Personality, true)
	return nil
}

func (s *Session) handleLeave() error {
	switch s.state {
	case StateMenu:
		return model.ErrInvalidTransition
	case StateHost:
		// Roster is discarded; admitted guests are not notified (there is
		// no teardown message in the protocol).
		if err := s.mgr.CloseRoom(s.ctx, s.code); err != nil {
			return err
		}
		s.code = ""
	case StateWaiting:
		s.joinedCode = ""
	}

	s.releaseConn()
	s.state = StateMenu
	return nil
}

// handleMessage is the single bus handler for the current state. Dispatching
// on s.state inside the loop is what "reinstalls" the handler on every
// transition: there is never a second live handler, and messages arriving
// after a state exit fall through and are discarded.
func (s *Session) handleMessage(msg protocol.Message) {
	switch s.state {
	case StateHost:
		req, ok := msg.(protocol.JoinRequest)
		if !ok || req.RoomCode != s.code {
			return
		}
		player, err := s.mgr.Admit(s.ctx, s.code, req.Name, req.Avatar)
		if err != nil {
			s.logger.Warn("admission failed",
				slog.String("code", string(s.code)),
				slog.String("name", req.Name),
				slog.Any("error", err))
			return
		}
		// The bus has no unicast: acceptance goes to everyone and
		// non-matching receivers drop it.
		s.conn.Send(protocol.JoinAccepted{PlayerID: player.ID, RoomCode: s.code})

	case StateWaiting:
		switch m := msg.(type) {
		case protocol.JoinAccepted:
			if m.RoomCode != s.joinedCode {
				return
			}
			select {
			case s.accepted <- m:
			default:
			}
		case protocol.GameStarted:
			if m.RoomCode != s.joinedCode {
				return
			}
			s.finish(nil, "", false)
		}

	default:
		// MENU and JOIN do not listen; anything still in flight from a
		// previous state is dropped here.
	}
}

// finish invokes the hand-off exactly once and retires the session
func (s *Session) finish(roster []model.Player, personality model.Personality, isHost bool) {
	if s.onStart != nil {
		s.onStart(roster, personality, isHost)
	}
	s.releaseConn()
	s.finished = true
	s.logger.Info("lobby handed off", slog.Bool("is_host", isHost))
}

func (s *Session) replyErr(cmd command, err error) {
	switch c := cmd.(type) {
	case createGame:
		c.reply <- createGameResult{err: err}
	case chooseJoin:
		c.reply <- err
	case submitJoin:
		c.reply <- err
	case startGame:
		c.reply <- err
	case leave:
		c.reply <- err
	}
}

func (s *Session) releaseConn() {
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
}
