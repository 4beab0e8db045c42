package shiritori

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/obslog"
)

// SeedWord opens every game; it never counts toward the score.
const SeedWord = "しりとり"

// skipPrefix marks messages the session must ignore without resetting the
// turn deadline.
const skipPrefix = `\`

var (
	ErrInvalidArgs       = errors.New("invalid arguments")
	ErrTimeLimitTooShort = errors.New("time limit below minimum")
	ErrTimeLimitTooLong  = errors.New("time limit above maximum")
)

// ScoreRecorder persists a player's best score when a session ends.
type ScoreRecorder interface {
	RecordBest(ctx context.Context, player string, score int) error
}

type Config struct {
	MinTurnTime     time.Duration
	MaxTurnTime     time.Duration
	DefaultTurnTime time.Duration
	OpeningDelay    time.Duration
}

func (c Config) withDefaults() Config {
	if c.MinTurnTime <= 0 {
		c.MinTurnTime = 5 * time.Second
	}
	if c.MaxTurnTime <= 0 {
		c.MaxTurnTime = 60 * time.Second
	}
	if c.DefaultTurnTime <= 0 {
		c.DefaultTurnTime = 20 * time.Second
	}
	return c
}

// Manager is the process-wide registry of running sessions, keyed by player
// identity. At most one live session per player; starting a new one cancels
// and fully unregisters the old one first.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	lex      Lexicon
	reporter Reporter
	cfg      Config

	repo *Repository
	rec  ScoreRecorder
}

func NewManager(lex Lexicon, reporter Reporter, cfg Config) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		lex:      lex,
		reporter: reporter,
		cfg:      cfg.withDefaults(),
	}
}

// AttachRepository wires a database repository for persisting game results.
func (m *Manager) AttachRepository(r *Repository) {
	if m != nil {
		m.repo = r
	}
}

// AttachRecorder wires a leaderboard recorder for finished sessions.
func (m *Manager) AttachRecorder(rec ScoreRecorder) {
	if m != nil {
		m.rec = rec
	}
}

// Start validates the time limit and launches a session for the player,
// replacing any running one. The old session is cancelled and has released
// its registry slot before the new one is installed.
func (m *Manager) Start(player, room string, limit time.Duration) error {
	if strings.TrimSpace(player) == "" || strings.TrimSpace(room) == "" {
		return ErrInvalidArgs
	}
	if limit == 0 {
		limit = m.cfg.DefaultTurnTime
	}
	if limit < m.cfg.MinTurnTime {
		return ErrTimeLimitTooShort
	}
	if limit > m.cfg.MaxTurnTime {
		return ErrTimeLimitTooLong
	}

	for {
		m.mu.Lock()
		if cur := m.sessions[player]; cur != nil {
			m.mu.Unlock()
			cur.cancel()
			<-cur.done
			continue
		}
		ctx, cancel := context.WithCancel(context.Background())
		s := newSession(player, room, limit, cancel)
		m.sessions[player] = s
		m.mu.Unlock()
		go s.run(ctx, m)
		return nil
	}
}

// Cancel stops the player's running session, if any, and waits until its
// registry slot is released.
func (m *Manager) Cancel(player string) bool {
	m.mu.Lock()
	s := m.sessions[player]
	m.mu.Unlock()
	if s == nil {
		return false
	}
	s.cancel()
	<-s.done
	return true
}

// CancelAll stops every running session; used at process shutdown.
func (m *Manager) CancelAll() {
	m.mu.Lock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.Unlock()
	for _, s := range all {
		s.cancel()
		<-s.done
	}
}

// Active reports whether the player currently has a running session.
func (m *Manager) Active(player string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[player] != nil
}

// Dispatch routes an inbound chat message to the author's session. Only
// messages from the session owner in the session's room qualify; messages
// with the skip prefix are ignored and do not touch the turn deadline.
// Messages sent during the opening countdown are not answers and are
// dropped, as is a message arriving while the previous turn is still being
// validated (single-wait-per-turn model).
func (m *Manager) Dispatch(author, room, text string) bool {
	m.mu.Lock()
	s := m.sessions[author]
	m.mu.Unlock()
	if s == nil || s.room != room || !s.seeded.Load() {
		return false
	}
	if strings.HasPrefix(text, skipPrefix) {
		return false
	}
	select {
	case s.msgCh <- text:
		return true
	default:
		return false
	}
}

// CheckWord runs the session-free validity check against the lexicon.
func (m *Manager) CheckWord(ctx context.Context, literal string) (*CheckResult, error) {
	return CheckWord(ctx, m.lex, literal)
}

// release removes the session's registry entry exactly once and signals
// completion. Guarded by identity so a replacement session installed under
// the same key is never evicted by its predecessor.
func (m *Manager) release(s *Session) {
	m.mu.Lock()
	if m.sessions[s.player] == s {
		delete(m.sessions, s.player)
	}
	m.mu.Unlock()
	close(s.done)
}

// finish records a terminal session result. Persistence failures are logged
// and never propagate into the session loop.
func (m *Manager) finish(s *Session, reason EndReason, score int) {
	res := &GameResult{
		SessionID: s.id,
		PlayerID:  s.player,
		Room:      s.room,
		Score:     score,
		Words:     len(s.used) - 1,
		EndReason: reason,
		StartedAt: s.startedAt,
		EndedAt:   time.Now(),
	}
	obslog.L().Info("session_end",
		zap.String("session_id", s.id),
		zap.String("player_id", s.player),
		zap.String("reason", string(reason)),
		zap.Int("score", score),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if m.repo != nil {
		if err := m.repo.SaveResult(ctx, res); err != nil {
			obslog.L().Error("result_persist_error",
				zap.String("session_id", s.id),
				zap.Error(err),
			)
		}
	}
	if m.rec != nil {
		if err := m.rec.RecordBest(ctx, s.player, score); err != nil {
			obslog.L().Error("rank_record_error",
				zap.String("player_id", s.player),
				zap.Error(err),
			)
		}
	}
}
