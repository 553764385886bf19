package wire

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/Sixteen1-6/Pong/internal/model"
)

type ConnSuite struct {
	suite.Suite
	codec  *Codec
	client *Conn
	server *Conn
	rawC   net.Conn
	rawS   net.Conn
}

func TestConnSuite(t *testing.T) {
	suite.Run(t, new(ConnSuite))
}

func (s *ConnSuite) SetupTest() {
	codec, err := NewCodec(DefaultPassphrase)
	s.Require().NoError(err)
	s.codec = codec

	s.rawC, s.rawS = net.Pipe()
	s.client = NewConn(s.rawC, codec, time.Second)
	s.server = NewConn(s.rawS, codec, time.Second)
}

func (s *ConnSuite) TearDownTest() {
	_ = s.client.Close()
	_ = s.server.Close()
}

func (s *ConnSuite) TestTextRoundTrip() {
	go func() {
		_ = s.client.WriteText("some-token")
	}()

	got, err := s.server.ReadText()
	s.Require().NoError(err)
	s.Equal("some-token", got)
}

func (s *ConnSuite) TestJSONRoundTrip() {
	sync := int64(3)
	upd := ClientUpdate{
		Sync:   &sync,
		Paddle: &[2]float64{10, 200},
		Ball:   &[2]float64{320, 240},
		Score:  &[2]int{1, 0},
	}

	go func() {
		_ = s.client.WriteJSON(upd)
	}()

	var got ClientUpdate
	s.Require().NoError(s.server.ReadJSON(&got))
	s.Require().NoError(got.Validate())
	s.Equal(int64(3), *got.Sync)
	s.Equal([2]float64{10, 200}, *got.Paddle)
	s.Equal([2]int{1, 0}, *got.Score)
	s.Nil(got.PlayAgain)
}

func (s *ConnSuite) TestReadFrameRejectsUnencryptedBytes() {
	go func() {
		_, _ = s.rawC.Write([]byte("plaintext garbage"))
	}()

	_, err := s.server.ReadFrame()
	s.ErrorIs(err, ErrDecryptFailure)
}

func (s *ConnSuite) TestReadJSONRejectsNonJSONPayload() {
	go func() {
		_ = s.client.WriteText("not json at all")
	}()

	var got ClientUpdate
	err := s.server.ReadJSON(&got)
	s.ErrorIs(err, ErrMalformedPayload)
}

func (s *ConnSuite) TestReadAfterPeerCloseIsGraceful() {
	_ = s.client.Close()

	_, err := s.server.ReadFrame()
	s.Equal(KindGracefulClose, Classify(err))
}

func (s *ConnSuite) TestReadTimesOutWithoutTraffic() {
	conn := NewConn(s.rawS, s.codec, 20*time.Millisecond)

	_, err := conn.ReadFrame()
	s.Require().Error(err)
	s.True(IsTimeout(err))
	s.Equal(KindIOError, Classify(err))
}

func TestClientUpdateValidate(t *testing.T) {
	sync := int64(0)
	paddle := [2]float64{0, 0}
	ball := [2]float64{0, 0}
	score := [2]int{0, 0}

	full := ClientUpdate{Sync: &sync, Paddle: &paddle, Ball: &ball, Score: &score}
	assert.NoError(t, full.Validate())

	missing := []ClientUpdate{
		{Paddle: &paddle, Ball: &ball, Score: &score},
		{Sync: &sync, Ball: &ball, Score: &score},
		{Sync: &sync, Paddle: &paddle, Score: &score},
		{Sync: &sync, Paddle: &paddle, Ball: &ball},
	}
	for _, upd := range missing {
		assert.ErrorIs(t, upd.Validate(), ErrMalformedPayload)
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindNone, Classify(nil))
	assert.Equal(t, KindGracefulClose, Classify(ErrPeerClosed))
	assert.Equal(t, KindGracefulClose, Classify(io.EOF))
	assert.Equal(t, KindDecryptFailure, Classify(ErrDecryptFailure))
	assert.Equal(t, KindMalformedPayload, Classify(ErrMalformedPayload))
	assert.Equal(t, KindIOError, Classify(io.ErrUnexpectedEOF))
}

func TestViewFromStateFlattens(t *testing.T) {
	vote := true
	ss := model.SideState{
		Sync:        9,
		LeftPaddle:  model.PaddleState{Position: model.Position{X: 10, Y: 100}},
		RightPaddle: model.PaddleState{Position: model.Position{X: 630, Y: 200}},
		Ball:        model.BallState{Position: model.Position{X: 320, Y: 240}},
		Score:       model.Score{Left: 2, Right: 1},
		GameOver:    true,
		RematchVote: &vote,
	}

	view := ViewFromState(&ss)
	assert.Equal(t, int64(9), view.Sync)
	assert.Equal(t, [2]float64{10, 100}, view.Left)
	assert.Equal(t, [2]float64{630, 200}, view.Right)
	assert.Equal(t, [2]float64{320, 240}, view.Ball)
	assert.Equal(t, [2]int{2, 1}, view.Score)
	assert.True(t, view.GameOver)
	require.NotNil(t, view.PlayAgain)
	assert.True(t, *view.PlayAgain)
}
