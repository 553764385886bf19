package game

import (
	"sync"

	"github.com/Sixteen1-6/Pong/internal/model"
)

// State is a session's lifecycle phase
type State string

const (
	// StateActive means a match is being played
	StateActive State = "active"
	// StateAwaitingVotes means a winner was detected and the session is
	// waiting for both rematch votes
	StateAwaitingVotes State = "game_over_awaiting_votes"
	// StateEnded is terminal: a player declined the rematch
	StateEnded State = "ended"
)

// Update is one side's decoded steady-state frame
type Update struct {
	Sync   int64
	Paddle model.Position
	Ball   model.Position
	Score  model.Score
	Vote   *bool
}

// Outcome reports what a merge changed, alongside a snapshot of the calling
// side's mirror taken under the session lock.
type Outcome struct {
	View  model.SideState
	State State

	// WonBy is the winning player's username, set only on the call that
	// latched the game-over transition
	WonBy string
	// Winner is the winning side, set together with WonBy
	Winner model.Side
	// Reset is true on the call that performed a rematch reset
	Reset bool
	// Ended is true on the call that ended the session
	Ended bool
}

// Session is one match's authoritative state: both side mirrors, the player
// names, and the rematch lifecycle. All mutation happens under mu; socket
// I/O stays outside it so one player's slow network never blocks the
// opponent's merge.
type Session struct {
	ID int64

	mu      sync.Mutex
	left    model.SideState
	right   model.SideState
	players map[model.Side]string
	width   int
	height  int

	waitingForRematch bool
	rematchInProgress bool
	winnerLatched     bool
	ended             bool
}

// NewSession creates an empty session. Sides join as their workers start.
func NewSession(id int64) *Session {
	return &Session{
		ID:      id,
		players: make(map[model.Side]string),
		width:   model.ScreenWidth,
		height:  model.ScreenHeight,
	}
}

// Join registers a player on a side and initializes both mirrors for match
// start. Safe to call from both workers; initialization is idempotent.
func (s *Session) Join(side model.Side, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players[side] = username

	center := model.Position{X: float64(s.width) / 2, Y: float64(s.height) / 2}
	s.left.Ball = model.BallState{Position: center}
	s.right.Ball = model.BallState{Position: center}
	s.left.Active = true
	s.right.Active = true
}

// Player returns the username on a side
func (s *Session) Player(side model.Side) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.players[side]
}

// Dimensions returns the fixed playfield size
func (s *Session) Dimensions() (width, height int) {
	return s.width, s.height
}

// State returns the session's current lifecycle phase
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	switch {
	case s.ended:
		return StateEnded
	case s.waitingForRematch:
		return StateAwaitingVotes
	default:
		return StateActive
	}
}

// Active reports whether both sides are still playing
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.left.Active && s.right.Active
}

// View returns a snapshot of a side's mirror
func (s *Session) View(side model.Side) model.SideState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.side(side)
}

func (s *Session) side(side model.Side) *model.SideState {
	if side == model.SideLeft {
		return &s.left
	}
	return &s.right
}

// Apply merges one side's update and evaluates the win and rematch
// transitions, all under the session lock.
//
// Acceptance rules: the side's tick, own paddle and rematch vote are taken
// unconditionally. A score pair is taken only while the game is running and
// only if its sum does not regress, which drops stale and duplicate frames.
// The ball is taken only from the authoritative left side; the right mirror's
// ball and each side's view of the opposing paddle are refreshed from the
// opponent's mirror on every merge. A side whose tick is behind the
// opponent's adopts the opponent's tick and score, the convergence rule that
// keeps both mirrors consistent across bounded round trips.
func (s *Session) Apply(side model.Side, upd Update) Outcome {
	s.mu.Lock()
	defer s.mu.Unlock()

	ss := s.side(side)
	opp := s.side(side.Opponent())

	if s.ended {
		return Outcome{View: *ss, State: StateEnded}
	}

	ss.Sync = upd.Sync
	if upd.Vote != nil {
		ss.RematchVote = upd.Vote
	}
	if !ss.GameOver && upd.Score.Sum() >= ss.Score.Sum() {
		ss.Score = upd.Score
	}
	if side == model.SideLeft {
		ss.LeftPaddle = model.PaddleState{Position: upd.Paddle}
	} else {
		ss.RightPaddle = model.PaddleState{Position: upd.Paddle}
	}
	if side == model.SideLeft && !ss.GameOver {
		ss.Ball = model.BallState{Position: upd.Ball}
	}

	var out Outcome

	if !s.waitingForRematch {
		s.converge(side, ss, opp)

		if winner, ok := ss.Score.Winner(); ok && !s.winnerLatched {
			s.winnerLatched = true
			s.waitingForRematch = true
			ss.GameOver = true
			opp.GameOver = true
			out.Winner = winner
			out.WonBy = s.players[winner]
		}
	} else {
		switch {
		case s.eitherDeclined():
			// One "no" is final, whatever the other side says
			s.ended = true
			s.left.Active = false
			s.right.Active = false
			out.Ended = true
		case s.bothDecided() && s.bothWantRematch():
			out.Reset = s.resetForRematch()
		}
	}

	out.View = *ss
	out.State = s.stateLocked()
	return out
}

// converge refreshes this side's mirrors from the opponent and applies the
// tick-based leader/follower rule
func (s *Session) converge(side model.Side, ss, opp *model.SideState) {
	if side == model.SideRight {
		ss.Ball = opp.Ball
	}
	if side == model.SideLeft {
		ss.RightPaddle = opp.RightPaddle
	} else {
		ss.LeftPaddle = opp.LeftPaddle
	}
	if ss.Sync < opp.Sync {
		ss.Sync = opp.Sync
		ss.Score = opp.Score
	}
}

func (s *Session) eitherDeclined() bool {
	return (s.left.RematchVote != nil && !*s.left.RematchVote) ||
		(s.right.RematchVote != nil && !*s.right.RematchVote)
}

func (s *Session) bothDecided() bool {
	return s.left.RematchVote != nil && s.right.RematchVote != nil
}

func (s *Session) bothWantRematch() bool {
	return s.left.RematchVote != nil && *s.left.RematchVote &&
		s.right.RematchVote != nil && *s.right.RematchVote
}

// resetForRematch restores both mirrors for a new match. The
// rematchInProgress flag makes a duplicate trigger a no-op, so concurrent
// accept votes produce exactly one reset.
func (s *Session) resetForRematch() bool {
	if s.rematchInProgress {
		return false
	}
	s.rematchInProgress = true

	s.left.ResetForNewGame(s.width, s.height)
	s.right.ResetForNewGame(s.width, s.height)
	s.waitingForRematch = false
	s.winnerLatched = false

	s.rematchInProgress = false
	return true
}

// Close marks the session ended on behalf of a departing worker, used when a
// connection fails outside the normal decline path
func (s *Session) Close(side model.Side) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.side(side).Active = false
}
