package clusterrows

import (
	"fmt"
	"log/slog"
)

// Target names the address slot a range pick fills.
type Target int

const (
	TargetInput Target = iota
	TargetOutput
)

func (t Target) String() string {
	if t == TargetOutput {
		return "output"
	}
	return "input"
}

// Field returns the form field holding the target's text.
func (t Target) Field() Field {
	if t == TargetOutput {
		return FieldOutputLocation
	}
	return FieldInputRange
}

// SelectionRequest parameterizes the host's interactive selection mode.
type SelectionRequest struct {
	InitialValue   string
	Title          string
	CloseOnRelease bool
	SingleCellOnly bool
}

// SelectionListener receives the outcome of one selection session.
// Exactly one of Done or Aborted is delivered per session.
type SelectionListener interface {
	Done(text string)
	Aborted()
}

// RangePicker is the host's interactive range selection mode.
type RangePicker interface {
	AddRangeSelectionListener(l SelectionListener)
	RemoveRangeSelectionListener(l SelectionListener)
	StartRangeSelection(req SelectionRequest) error
}

// SessionState is the state of a selection session.
type SessionState int

const (
	SessionIdle SessionState = iota
	SessionRequested
)

func (s SessionState) String() string {
	if s == SessionRequested {
		return "requested"
	}
	return "idle"
}

// sessionHooks connect a Session to the form and model it serves.
type sessionHooks struct {
	// suspend hides the form before the host takes over.
	suspend func()
	// complete merges picked text into the model.
	complete func(t Target, text string) error
	// resume shows the form and revalidates. It runs after every session.
	resume func()
}

// Session hands the user over to the host's range selection mode and back.
// At most one selection is in flight; there is no timeout and no way to
// cancel it from this side.
type Session struct {
	picker   RangePicker
	hooks    sessionHooks
	logger   *slog.Logger
	state    SessionState
	listener *sessionListener
}

func newSession(picker RangePicker, hooks sessionHooks, logger *slog.Logger) *Session {
	return &Session{
		picker: picker,
		hooks:  hooks,
		logger: logger,
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	return s.state
}

// Pending returns the target of the selection in flight, if any.
func (s *Session) Pending() (Target, bool) {
	if s.listener == nil {
		return 0, false
	}
	return s.listener.target, true
}

// Request starts a selection for t. It fails with ErrSelectionPending while
// another selection is in flight.
func (s *Session) Request(t Target, req SelectionRequest) error {
	if s.state != SessionIdle {
		pending, _ := s.Pending()
		s.logger.Warn("rejecting range selection while another is pending",
			"target", t.String(), "pending", pending.String())
		return ErrSelectionPending
	}

	l := &sessionListener{session: s, target: t}
	s.listener = l
	s.state = SessionRequested
	s.hooks.suspend()
	s.picker.AddRangeSelectionListener(l)
	s.logger.Debug("range selection started", "target", t.String(), "initial", req.InitialValue)

	if err := s.picker.StartRangeSelection(req); err != nil {
		s.logger.Error("host refused range selection", "target", t.String(), "error", err)
		s.finish(l, nil)
		return fmt.Errorf("start range selection: %w", err)
	}
	return nil
}

func (s *Session) done(l *sessionListener, text string) {
	if !s.current(l) {
		return
	}
	s.logger.Debug("range selection done", "target", l.target.String(), "text", text)
	s.finish(l, func() error {
		return s.hooks.complete(l.target, text)
	})
}

func (s *Session) aborted(l *sessionListener) {
	if !s.current(l) {
		return
	}
	s.logger.Debug("range selection aborted", "target", l.target.String())
	s.finish(l, nil)
}

func (s *Session) current(l *sessionListener) bool {
	if s.listener != l {
		s.logger.Warn("ignoring event from stale range selection", "target", l.target.String())
		return false
	}
	return true
}

// finish deregisters l, applies step and always brings the form back,
// whatever step does.
func (s *Session) finish(l *sessionListener, step func() error) {
	defer s.resume()
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("range selection callback panicked", "target", l.target.String(), "panic", r)
		}
	}()

	s.listener = nil
	s.state = SessionIdle
	s.picker.RemoveRangeSelectionListener(l)
	if step == nil {
		return
	}
	if err := step(); err != nil {
		s.logger.Warn("discarding range selection", "target", l.target.String(), "error", err)
	}
}

func (s *Session) resume() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("resuming form panicked", "panic", r)
		}
	}()
	s.hooks.resume()
}

// sessionListener ties host callbacks to the session that registered it.
type sessionListener struct {
	session *Session
	target  Target
}

func (l *sessionListener) Done(text string) {
	l.session.done(l, text)
}

func (l *sessionListener) Aborted() {
	l.session.aborted(l)
}
