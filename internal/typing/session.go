package typing

import (
	"context"
	"errors"
	"time"
)

// State is the session lifecycle. The only permitted transitions are
// Idle -> Loading -> Active -> Ended, with Loading falling back to Idle when
// the prompt fetch fails or returns nothing.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateActive
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

var (
	// ErrNoPrompts is returned when the prompt source yields an empty set.
	ErrNoPrompts = errors.New("no prompts available")
	// ErrSessionActive is returned when Start is called mid-session.
	ErrSessionActive = errors.New("session already in progress")
	// ErrSessionNotActive is returned for input outside an active session.
	ErrSessionNotActive = errors.New("no active session")
)

// PromptFunc fetches the prompt set for a new session.
type PromptFunc func(ctx context.Context) ([]Prompt, error)

// Session drives the keystroke evaluator across a prompt set. It owns the
// session clock and counters and computes the final summary. All methods are
// called from a single event loop; the Session does no locking of its own.
type Session struct {
	fetch   PromptFunc
	formula ScoreFormula
	now     func() time.Time

	state   State
	prompts []Prompt
	index   int
	ks      *KeystrokeState
	stats   Stats
	endedAt time.Time
}

// NewSession creates an idle session that will pull prompts through fetch.
func NewSession(fetch PromptFunc, formula ScoreFormula) *Session {
	return &Session{
		fetch:   fetch,
		formula: formula,
		now:     time.Now,
	}
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	return s.state
}

// Start fetches a prompt set and activates the session. A fetch error or an
// empty set returns the session to idle so the start action can simply be
// retried. Starting over is only permitted from idle or a finished session.
func (s *Session) Start(ctx context.Context) error {
	if s.state == StateLoading || s.state == StateActive {
		return ErrSessionActive
	}

	s.state = StateLoading
	prompts, err := s.fetch(ctx)
	if err != nil {
		s.state = StateIdle
		return err
	}
	if len(prompts) == 0 {
		s.state = StateIdle
		return ErrNoPrompts
	}

	s.prompts = prompts
	s.index = 0
	s.stats = Stats{StartedAt: s.now()}
	s.endedAt = time.Time{}
	s.state = StateActive
	s.loadCurrent()
	return nil
}

// Current returns the active prompt. ok is false once the session has ended.
func (s *Session) Current() (Prompt, bool) {
	if s.state != StateActive || s.index >= len(s.prompts) {
		return Prompt{}, false
	}
	return s.prompts[s.index], true
}

// Index reports the zero-based position of the active prompt.
func (s *Session) Index() int {
	return s.index
}

// Len reports the size of the prompt set.
func (s *Session) Len() int {
	return len(s.prompts)
}

// Input evaluates the full current field content against the active prompt.
// A solved evaluation does not advance by itself: the controller advances
// after its feedback delay via Advance.
func (s *Session) Input(value string) (Evaluation, error) {
	if s.state != StateActive {
		return Evaluation{}, ErrSessionNotActive
	}
	return s.ks.Evaluate(value, &s.stats), nil
}

// Advance moves to the next prompt, ending the session when none remain.
func (s *Session) Advance() {
	if s.state != StateActive {
		return
	}
	s.index++
	s.loadCurrent()
}

// Skip reveals the expected answer and discards the current prompt's
// bookkeeping without touching the already accumulated counters.
func (s *Session) Skip() (string, error) {
	current, ok := s.Current()
	if !ok {
		return "", ErrSessionNotActive
	}
	s.Advance()
	return current.Answer, nil
}

// Stats returns the accumulated counters.
func (s *Session) Stats() Stats {
	return s.stats
}

// Live computes display metrics for the ticking clock. It reads the counters
// without mutating them.
func (s *Session) Live() Summary {
	return ComputeSummary(s.stats, s.now(), s.formula)
}

// Summary computes the final metrics. After the session has ended the clock
// is frozen at the completion time.
func (s *Session) Summary() Summary {
	endedAt := s.endedAt
	if s.state != StateEnded {
		endedAt = s.now()
	}
	return ComputeSummary(s.stats, endedAt, s.formula)
}

// loadCurrent installs evaluator state for the prompt at the current index.
// Prompts with an empty answer cannot be typed and are completed on sight.
func (s *Session) loadCurrent() {
	for s.index < len(s.prompts) {
		if s.prompts[s.index].Answer != "" {
			s.ks = NewKeystrokeState(s.prompts[s.index].Answer)
			return
		}
		s.index++
	}

	s.ks = nil
	s.endedAt = s.now()
	s.state = StateEnded
}
