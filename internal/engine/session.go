package engine

import (
	"sync"
	"time"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/infrastructure/storage"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
)

// Session - одна игровая сессия: стор, журнал шагов и таймер автосохранения.
// Все команды сессии выполняются под mu, поэтому стор внутри хендлеров
// можно мутировать без дополнительной синхронизации.
type Session struct {
	ID string

	mu    sync.Mutex
	store *state.Store

	journal storage.Journal

	// autosave перевзводится на каждой мутации; срабатывает после паузы тишины
	autosave *time.Timer
}

func newSession(id string) *Session {
	return &Session{
		ID:    id,
		store: state.NewStore(),
		journal: storage.Journal{
			SessionID: id,
			StartedAt: time.Now().Unix(),
		},
	}
}

// markDirty перевзводит дебаунс автосохранения: persist вызовется один раз,
// когда мутации стихнут на debounce.
func (s *Session) markDirty(debounce time.Duration, persist func()) {
	if s.autosave != nil {
		s.autosave.Stop()
	}
	s.autosave = time.AfterFunc(debounce, persist)
}

// stopAutosave гасит отложенное сохранение (перед немедленным или финальным).
func (s *Session) stopAutosave() {
	if s.autosave != nil {
		s.autosave.Stop()
		s.autosave = nil
	}
}

func (s *Session) appendJournal(entry storage.JournalEntry) {
	s.journal.Entries = append(s.journal.Entries, entry)
}
