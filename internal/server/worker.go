package server

import (
	"context"
	"log/slog"
	"time"

	"github.com/Sixteen1-6/Pong/internal/model"
	"github.com/Sixteen1-6/Pong/internal/services/game"
	"github.com/Sixteen1-6/Pong/internal/services/leaderboard"
	"github.com/Sixteen1-6/Pong/internal/wire"
)

// worker is the per-connection protocol loop. Any failure unwinds to closing
// this worker's socket only; the peer discovers the break on its own next
// exchange.
type worker struct {
	conn        *wire.Conn
	session     *game.Session
	side        model.Side
	username    string
	registry    *game.Registry
	leaderboard *leaderboard.Service
	throttle    time.Duration
	startDelay  time.Duration
	logger      *slog.Logger
}

func (w *worker) run(ctx context.Context) {
	defer w.teardown()

	w.session.Join(w.side, w.username)

	width, height := w.session.Dimensions()
	setup := wire.Setup{Side: string(w.side), Width: width, Height: height}
	if err := w.conn.WriteJSON(setup); err != nil {
		w.logger.Warn("setup send failed", slog.String("kind", wire.Classify(err).String()))
		return
	}

	if w.startDelay > 0 {
		time.Sleep(w.startDelay)
	}

	for w.session.Active() {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if w.throttle > 0 {
			time.Sleep(w.throttle)
		}

		var upd wire.ClientUpdate
		if err := w.conn.ReadJSON(&upd); err != nil {
			w.logExchangeError("read failed", err)
			return
		}
		if err := upd.Validate(); err != nil {
			w.logExchangeError("bad frame", err)
			return
		}

		out := w.session.Apply(w.side, game.Update{
			Sync:   *upd.Sync,
			Paddle: model.Position{X: upd.Paddle[0], Y: upd.Paddle[1]},
			Ball:   model.Position{X: upd.Ball[0], Y: upd.Ball[1]},
			Score:  model.Score{Left: upd.Score[0], Right: upd.Score[1]},
			Vote:   upd.PlayAgain,
		})

		if out.WonBy != "" {
			w.logger.Info("game over",
				slog.String("winner", string(out.Winner)),
				slog.String("won_by", out.WonBy),
			)
			if err := w.leaderboard.RecordWin(ctx, out.WonBy); err != nil {
				w.logger.Error("leaderboard write failed", slog.String("error", err.Error()))
			}
		}
		if out.Reset {
			w.logger.Info("rematch starting")
		}

		view := wire.ViewFromState(&out.View)
		if err := w.conn.WriteJSON(view); err != nil {
			w.logExchangeError("write failed", err)
			return
		}

		if out.Ended {
			w.logger.Info("rematch declined, session ended")
			return
		}
	}
}

func (w *worker) logExchangeError(msg string, err error) {
	kind := wire.Classify(err)
	if kind == wire.KindGracefulClose {
		w.logger.Info("peer disconnected")
		return
	}
	w.logger.Warn(msg,
		slog.String("kind", kind.String()),
		slog.String("error", err.Error()),
	)
}

// teardown closes this worker's socket and, once both sides are gone, evicts
// the session from the registry
func (w *worker) teardown() {
	_ = w.conn.Close()
	w.session.Close(w.side)
	if !w.session.Active() {
		w.registry.Remove(w.session.ID)
	}
	w.logger.Info("connection closed", slog.String("username", w.username))
}
