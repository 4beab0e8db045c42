package shiritori

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/obslog"
)

// Reporter receives structured session events. Implementations render them
// into user-facing text; the engine itself never formats presentation.
type Reporter interface {
	GameOpening(room, player string, limit time.Duration)
	GameSeeded(room, player, seed string)
	TurnResult(room, player string, rep *TurnReport)
	GameTimeout(room, player string, score int)
}

// Session is one player's running game. It is owned by exactly one Manager
// entry and runs on its own goroutine; all turn evaluation is sequential
// within the session.
type Session struct {
	id        string
	player    string
	room      string
	limit     time.Duration
	used      []string
	startedAt time.Time

	// seeded flips once the opening countdown has elapsed and the seed word
	// is installed; chat arriving before that is not an answer.
	seeded atomic.Bool

	msgCh  chan string
	done   chan struct{}
	cancel context.CancelFunc
}

func newSession(player, room string, limit time.Duration, cancel context.CancelFunc) *Session {
	return &Session{
		id:        uuid.NewString(),
		player:    player,
		room:      room,
		limit:     limit,
		startedAt: time.Now(),
		msgCh:     make(chan string, 1),
		done:      make(chan struct{}),
		cancel:    cancel,
	}
}

// run drives the session state machine: opening broadcast, seed install,
// then a wait loop racing the per-turn deadline against message arrival.
// The registry entry is released on every exit path.
func (s *Session) run(ctx context.Context, m *Manager) {
	defer m.release(s)

	m.reporter.GameOpening(s.room, s.player, s.limit)
	if m.cfg.OpeningDelay > 0 {
		select {
		case <-ctx.Done():
			return
		case <-time.After(m.cfg.OpeningDelay):
		}
	}
	if ctx.Err() != nil {
		return
	}

	s.used = append(s.used, SeedWord)
	s.seeded.Store(true)
	m.reporter.GameSeeded(s.room, s.player, SeedWord)
	obslog.L().Info("session_start",
		zap.String("session_id", s.id),
		zap.String("player_id", s.player),
		zap.String("room", s.room),
		zap.Duration("time_limit", s.limit),
	)

	timer := time.NewTimer(s.limit)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			obslog.L().Info("session_cancelled",
				zap.String("session_id", s.id),
				zap.String("player_id", s.player),
			)
			m.finish(s, EndCancelled, sessionScore(s.used))
			return

		case <-timer.C:
			score := sessionScore(s.used)
			m.reporter.GameTimeout(s.room, s.player, score)
			m.finish(s, EndTimeout, score)
			return

		case text := <-s.msgCh:
			rep := judge(ctx, m.lex, s.used, text)
			if ctx.Err() != nil {
				// Cancelled while validating: emit nothing further.
				m.finish(s, EndCancelled, sessionScore(s.used))
				return
			}
			m.reporter.TurnResult(s.room, s.player, rep)
			obslog.L().Info("turn_outcome",
				zap.String("session_id", s.id),
				zap.String("player_id", s.player),
				zap.String("outcome", string(rep.Outcome)),
				zap.String("word", rep.Word),
				zap.Int("score", rep.Score),
			)

			if rep.Outcome == OutcomeAccepted {
				s.used = append(s.used, rep.Word, rep.Reply)
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(s.limit)
				continue
			}

			reason := EndRuleViolation
			switch rep.Outcome {
			case OutcomeStoreExhausted:
				reason = EndExhausted
			case OutcomeStoreFailure:
				reason = EndStoreFailure
			}
			m.finish(s, reason, rep.Score)
			return
		}
	}
}
