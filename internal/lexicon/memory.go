package lexicon

import (
	"context"
	"sync"

	"github.com/park285/Shiritori-KakaoTalk-bot/internal/kana"
)

// Memory is an in-memory lexical store for tests and offline runs. Words
// keep insertion order so reply selection stays deterministic under test.
type Memory struct {
	mu    sync.RWMutex
	order []string
	nouns map[string]struct{}
}

func NewMemory(words ...string) *Memory {
	m := &Memory{nouns: make(map[string]struct{})}
	m.Add(words...)
	return m
}

func (m *Memory) Add(words ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range words {
		if _, ok := m.nouns[w]; ok {
			continue
		}
		m.nouns[w] = struct{}{}
		m.order = append(m.order, w)
	}
}

func (m *Memory) IsCommonNoun(_ context.Context, literal string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.nouns[literal]
	return ok, nil
}

func (m *Memory) NextReply(_ context.Context, start kana.Unit, excluding []string) (string, error) {
	skip := make(map[string]struct{}, len(excluding))
	for _, w := range excluding {
		skip[w] = struct{}{}
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, cand := range m.order {
		if _, used := skip[cand]; used {
			continue
		}
		if !start.StartsWord(cand) {
			continue
		}
		word, err := kana.Tokenize(cand)
		if err != nil || len(word.Units) < 2 {
			continue
		}
		if word.Trailing().Equal(kana.N) {
			continue
		}
		return cand, nil
	}
	return "", nil
}
