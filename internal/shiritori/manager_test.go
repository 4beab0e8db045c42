package shiritori

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/lexicon"
)

type event struct {
	kind   string // opening | seed | turn | timeout
	player string
	room   string
	rep    *TurnReport
	score  int
}

// recorder captures reporter events for assertions.
type recorder struct {
	ch chan event
}

func newRecorder() *recorder { return &recorder{ch: make(chan event, 32)} }

func (r *recorder) GameOpening(room, player string, _ time.Duration) {
	r.ch <- event{kind: "opening", player: player, room: room}
}

func (r *recorder) GameSeeded(room, player, _ string) {
	r.ch <- event{kind: "seed", player: player, room: room}
}

func (r *recorder) TurnResult(room, player string, rep *TurnReport) {
	r.ch <- event{kind: "turn", player: player, room: room, rep: rep}
}

func (r *recorder) GameTimeout(room, player string, score int) {
	r.ch <- event{kind: "timeout", player: player, room: room, score: score}
}

func (r *recorder) next(t *testing.T) event {
	t.Helper()
	select {
	case ev := <-r.ch:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatalf("timed out waiting for reporter event")
		return event{}
	}
}

func (r *recorder) expect(t *testing.T, kind string) event {
	t.Helper()
	ev := r.next(t)
	if ev.kind != kind {
		t.Fatalf("event = %s, want %s", ev.kind, kind)
	}
	return ev
}

type capturedScore struct {
	player string
	score  int
}

type fakeRecorderStore struct {
	mu     sync.Mutex
	scores []capturedScore
}

func (f *fakeRecorderStore) RecordBest(_ context.Context, player string, score int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scores = append(f.scores, capturedScore{player: player, score: score})
	return nil
}

func testConfig() Config {
	return Config{
		MinTurnTime:     10 * time.Millisecond,
		MaxTurnTime:     time.Minute,
		DefaultTurnTime: 200 * time.Millisecond,
	}
}

func waitInactive(t *testing.T, m *Manager, player string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if !m.Active(player) {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("session for %s never released its registry slot", player)
}

func TestSessionAcceptedTurnThenTimeout(t *testing.T) {
	lex := lexicon.NewMemory("りす", "すいか")
	rec := newRecorder()
	m := NewManager(lex, rec, testConfig())

	if err := m.Start("u1", "roomA", 150*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.expect(t, "opening")
	rec.expect(t, "seed")

	if !m.Dispatch("u1", "roomA", "りす") {
		t.Fatalf("Dispatch returned false for active session")
	}
	ev := rec.expect(t, "turn")
	if ev.rep.Outcome != OutcomeAccepted {
		t.Fatalf("outcome = %s, want ACCEPTED", ev.rep.Outcome)
	}
	if ev.rep.Reply != "すいか" || ev.rep.Score != 1 {
		t.Fatalf("reply/score = %q/%d, want すいか/1", ev.rep.Reply, ev.rep.Score)
	}

	// No further qualifying message: the refreshed deadline elapses.
	ev = rec.expect(t, "timeout")
	if ev.score != 1 {
		t.Fatalf("timeout score = %d, want 1", ev.score)
	}
	waitInactive(t, m, "u1")
}

func TestCountdownChatterIsNotATurn(t *testing.T) {
	lex := lexicon.NewMemory("たいこ")
	rec := newRecorder()
	cfg := testConfig()
	cfg.OpeningDelay = 80 * time.Millisecond
	m := NewManager(lex, rec, cfg)

	if err := m.Start("u1", "roomA", 60*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.expect(t, "opening")

	// The seed is not installed yet; chat during the countdown is ignored.
	if m.Dispatch("u1", "roomA", "たいこ") {
		t.Fatalf("countdown message must not be delivered")
	}
	rec.expect(t, "seed")

	// No turn was judged from the countdown message: the game simply runs
	// out its first deadline.
	ev := rec.expect(t, "timeout")
	if ev.score != 0 {
		t.Fatalf("timeout score = %d, want 0", ev.score)
	}
	waitInactive(t, m, "u1")
}

func TestRuleViolationEndsSession(t *testing.T) {
	lex := lexicon.NewMemory("たいこ")
	rec := newRecorder()
	m := NewManager(lex, rec, testConfig())

	if err := m.Start("u1", "roomA", 500*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.expect(t, "opening")
	rec.expect(t, "seed")

	m.Dispatch("u1", "roomA", "たいこ")
	ev := rec.expect(t, "turn")
	if ev.rep.Outcome != OutcomeWrongStartSyllable {
		t.Fatalf("outcome = %s, want WRONG_START_SYLLABLE", ev.rep.Outcome)
	}
	waitInactive(t, m, "u1")
}

func TestStartReplacesRunningSession(t *testing.T) {
	lex := lexicon.NewMemory("りす", "すいか")
	rec := newRecorder()
	m := NewManager(lex, rec, testConfig())

	if err := m.Start("u1", "roomA", time.Second); err != nil {
		t.Fatalf("Start#1: %v", err)
	}
	rec.expect(t, "opening")
	rec.expect(t, "seed")

	if err := m.Start("u1", "roomB", time.Second); err != nil {
		t.Fatalf("Start#2: %v", err)
	}
	rec.expect(t, "opening")
	rec.expect(t, "seed")

	// The first session is gone: its room no longer routes.
	if m.Dispatch("u1", "roomA", "りす") {
		t.Fatalf("message routed to replaced session")
	}
	if !m.Dispatch("u1", "roomB", "りす") {
		t.Fatalf("message not routed to replacement session")
	}
	ev := rec.expect(t, "turn")
	if ev.room != "roomB" {
		t.Fatalf("turn emitted for room %s, want roomB", ev.room)
	}
	m.CancelAll()
}

func TestStartRejectsBadTimeLimit(t *testing.T) {
	m := NewManager(lexicon.NewMemory(), newRecorder(), testConfig())

	if err := m.Start("u1", "roomA", time.Millisecond); err != ErrTimeLimitTooShort {
		t.Fatalf("err = %v, want ErrTimeLimitTooShort", err)
	}
	if err := m.Start("u1", "roomA", time.Hour); err != ErrTimeLimitTooLong {
		t.Fatalf("err = %v, want ErrTimeLimitTooLong", err)
	}
	if m.Active("u1") {
		t.Fatalf("rejected start must not install a session")
	}
}

func TestTimeoutScoreZero(t *testing.T) {
	rec := newRecorder()
	m := NewManager(lexicon.NewMemory(), rec, testConfig())
	scores := &fakeRecorderStore{}
	m.AttachRecorder(scores)

	if err := m.Start("u1", "roomA", 30*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.expect(t, "opening")
	rec.expect(t, "seed")
	ev := rec.expect(t, "timeout")
	if ev.score != 0 {
		t.Fatalf("score = %d, want 0", ev.score)
	}
	waitInactive(t, m, "u1")

	scores.mu.Lock()
	defer scores.mu.Unlock()
	if len(scores.scores) != 1 || scores.scores[0].score != 0 {
		t.Fatalf("recorded scores = %+v, want one zero entry for u1", scores.scores)
	}
}

func TestSkipMarkerIgnored(t *testing.T) {
	rec := newRecorder()
	m := NewManager(lexicon.NewMemory(), rec, testConfig())

	if err := m.Start("u1", "roomA", 60*time.Millisecond); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.expect(t, "opening")
	rec.expect(t, "seed")

	if m.Dispatch("u1", "roomA", `\りす`) {
		t.Fatalf("skip-marked message must not be delivered")
	}
	// The skipped message produced no turn; the deadline still fires.
	rec.expect(t, "timeout")
	waitInactive(t, m, "u1")
}

func TestDispatchFilters(t *testing.T) {
	rec := newRecorder()
	m := NewManager(lexicon.NewMemory(), rec, testConfig())

	if err := m.Start("u1", "roomA", time.Second); err != nil {
		t.Fatalf("Start: %v", err)
	}
	rec.expect(t, "opening")
	rec.expect(t, "seed")

	if m.Dispatch("u2", "roomA", "りす") {
		t.Fatalf("message from another user must not route")
	}
	if m.Dispatch("u1", "roomB", "りす") {
		t.Fatalf("message from another room must not route")
	}
	m.CancelAll()
}

func TestCancelAllReleasesEverything(t *testing.T) {
	rec := newRecorder()
	m := NewManager(lexicon.NewMemory(), rec, testConfig())

	for _, p := range []string{"u1", "u2", "u3"} {
		if err := m.Start(p, "roomA", time.Second); err != nil {
			t.Fatalf("Start(%s): %v", p, err)
		}
	}
	m.CancelAll()
	for _, p := range []string{"u1", "u2", "u3"} {
		if m.Active(p) {
			t.Fatalf("session for %s still registered after CancelAll", p)
		}
	}
}

func TestCancelStopsSingleSession(t *testing.T) {
	rec := newRecorder()
	m := NewManager(lexicon.NewMemory(), rec, testConfig())

	if err := m.Start("u1", "roomA", time.Second); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if !m.Cancel("u1") {
		t.Fatalf("Cancel returned false for running session")
	}
	if m.Active("u1") {
		t.Fatalf("session still registered after Cancel")
	}
	if m.Cancel("u1") {
		t.Fatalf("Cancel returned true with no session")
	}
}
