package wire

import "github.com/Sixteen1-6/Pong/internal/model"

// Handshake acknowledgements sent after token verification
const (
	TokenOK      = "TOKEN_OK"
	InvalidToken = "INVALID_TOKEN"
)

// Auth request actions
const (
	ActionLogin    = "login"
	ActionRegister = "register"
)

// Setup is sent to a client once its match is paired, before steady state
type Setup struct {
	Side   string `json:"side"`
	Height int    `json:"height"`
	Width  int    `json:"width"`
}

// ClientUpdate is one steady-state frame from a client. The four required
// fields are pointers so a missing key can be rejected as malformed rather
// than silently zeroed.
type ClientUpdate struct {
	Sync      *int64      `json:"sync"`
	Paddle    *[2]float64 `json:"paddle"`
	Ball      *[2]float64 `json:"ball"`
	Score     *[2]int     `json:"score"`
	PlayAgain *bool       `json:"play_again,omitempty"`
}

// Validate rejects frames with missing required fields
func (u *ClientUpdate) Validate() error {
	if u.Sync == nil || u.Paddle == nil || u.Ball == nil || u.Score == nil {
		return ErrMalformedPayload
	}
	return nil
}

// ServerView is the per-side state sent back after every merge. PlayAgain is
// null until the side votes, so it has no omitempty.
type ServerView struct {
	Sync      int64      `json:"sync"`
	Left      [2]float64 `json:"left"`
	Right     [2]float64 `json:"right"`
	Ball      [2]float64 `json:"ball"`
	Score     [2]int     `json:"score"`
	GameOver  bool       `json:"game_over"`
	PlayAgain *bool      `json:"play_again"`
}

// ViewFromState flattens a side's mirror into the wire shape
func ViewFromState(ss *model.SideState) ServerView {
	return ServerView{
		Sync:      ss.Sync,
		Left:      [2]float64{ss.LeftPaddle.Position.X, ss.LeftPaddle.Position.Y},
		Right:     [2]float64{ss.RightPaddle.Position.X, ss.RightPaddle.Position.Y},
		Ball:      [2]float64{ss.Ball.Position.X, ss.Ball.Position.Y},
		Score:     [2]int{ss.Score.Left, ss.Score.Right},
		GameOver:  ss.GameOver,
		PlayAgain: ss.RematchVote,
	}
}

// AuthRequest is a login or register request on the auth port
type AuthRequest struct {
	Action   string `json:"action"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the structured reply to an AuthRequest. Token and Username
// are set only on successful login.
type AuthResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Token    string `json:"token,omitempty"`
	Username string `json:"username,omitempty"`
}
