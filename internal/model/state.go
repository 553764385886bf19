package model

// WinThreshold is the score at which a match ends.
const WinThreshold = 5

// Default playfield dimensions shared with the clients.
const (
	ScreenWidth  = 640
	ScreenHeight = 480
)

// Side identifies which half of the field a player owns
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Opponent returns the other side
func (s Side) Opponent() Side {
	if s == SideLeft {
		return SideRight
	}
	return SideLeft
}

// Position is a 2D point in screen coordinates
type Position struct {
	X float64
	Y float64
}

// PaddleState is a paddle's current position
type PaddleState struct {
	Position Position
}

// BallState is the ball's current position. The authoritative copy lives
// with the left side; the right side's mirror is overwritten on every merge.
type BallState struct {
	Position Position
}

// Score holds both players' points
type Score struct {
	Left  int
	Right int
}

// Sum returns the total points scored. Accepted updates never decrease it
// outside of an explicit new-game reset.
func (s Score) Sum() int {
	return s.Left + s.Right
}

// Winner returns the winning side once a score reaches the threshold.
// If both sides are at or past the threshold, left wins: the tie is possible
// because updates are accepted whenever their sum increases, and the
// authoritative side takes precedence.
func (s Score) Winner() (Side, bool) {
	if s.Left >= WinThreshold {
		return SideLeft, true
	}
	if s.Right >= WinThreshold {
		return SideRight, true
	}
	return "", false
}

// Reset zeroes both scores
func (s *Score) Reset() {
	s.Left = 0
	s.Right = 0
}

// SideState is one connection's mirror of the match: its logical clock, both
// paddles, ball, score, and lifecycle flags. Each worker reads and writes its
// own mirror; the convergence rule keeps the two mirrors consistent.
type SideState struct {
	Sync        int64
	LeftPaddle  PaddleState
	RightPaddle PaddleState
	Ball        BallState
	Score       Score
	Active      bool
	GameOver    bool

	// RematchVote is nil until the player decides
	RematchVote *bool
}

// ResetForNewGame restores the mirror to match-start values
func (ss *SideState) ResetForNewGame(width, height int) {
	ss.Sync = 0
	ss.Score.Reset()
	ss.Ball = BallState{Position: Position{X: float64(width) / 2, Y: float64(height) / 2}}
	ss.GameOver = false
	ss.RematchVote = nil
	ss.Active = true
}
