package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/logger"
)

// FormatVersion - версия конверта сохранения. Несовпадение при чтении -
// жесткий отказ: молча грузить чужой формат опаснее, чем не грузить вовсе.
const FormatVersion uint32 = 1

// ErrSlotNotFound - в запрошенном слоте нет сохранения.
var ErrSlotNotFound = errors.New("save slot not found")

// Envelope - сериализованная форма сохранения: версия формата, момент записи
// и полный снимок состояния. Конверт пишется в BLOB целиком, одним JSON.
type Envelope struct {
	FormatVersion uint32          `json:"formatVersion"`
	Timestamp     int64           `json:"timestamp"`
	Profile       json.RawMessage `json:"playerProfile"`
	Player        json.RawMessage `json:"playerState"`
	World         json.RawMessage `json:"worldState"`
	Position      json.RawMessage `json:"position"`
}

// SlotInfo - метаданные слота для списка сохранений.
type SlotInfo struct {
	Slot      string    `json:"slot"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SaveStore - хранилище сохранений поверх SQLite. Один файл БД на сервер,
// одна строка на слот; перезапись слота атомарна (UPSERT).
type SaveStore struct {
	db *sql.DB
}

// NewSaveStore открывает (или создает) файл БД и накатывает схему.
func NewSaveStore(path string) (*SaveStore, error) {
	if path == "" {
		return nil, fmt.Errorf("save db path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open save db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping save db: %w", err)
	}

	const schema = `
	CREATE TABLE IF NOT EXISTS saves (
		slot       TEXT PRIMARY KEY,
		payload    BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create saves schema: %w", err)
	}

	return &SaveStore{db: db}, nil
}

// Close закрывает файл БД.
func (s *SaveStore) Close() error {
	return s.db.Close()
}

// Save упаковывает снимок состояния в конверт и пишет его в слот.
// Повторная запись в тот же слот затирает предыдущую.
func (s *SaveStore) Save(ctx context.Context, slot string, st *state.Store) error {
	if slot == "" {
		return fmt.Errorf("slot name is required")
	}

	payload, err := encodeEnvelope(st)
	if err != nil {
		return fmt.Errorf("encode save: %w", err)
	}

	const q = `
	INSERT INTO saves (slot, payload, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(slot) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at;`
	if _, err := s.db.ExecContext(ctx, q, slot, payload, time.Now().Unix()); err != nil {
		return fmt.Errorf("write slot %q: %w", slot, err)
	}

	logger.Log.WithField("slot", slot).Debug("Save written")
	return nil
}

// Load читает конверт слота и восстанавливает из него НОВЫЙ стор.
// Текущее состояние в памяти не трогается до полной успешной декодировки:
// битое сохранение не должно портить живую сессию.
func (s *SaveStore) Load(ctx context.Context, slot string) (*state.Store, error) {
	const q = `SELECT payload FROM saves WHERE slot = ?;`

	var payload []byte
	err := s.db.QueryRowContext(ctx, q, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read slot %q: %w", slot, err)
	}

	return decodeEnvelope(payload)
}

// List возвращает слоты, отсортированные по свежести записи.
func (s *SaveStore) List(ctx context.Context) ([]SlotInfo, error) {
	const q = `SELECT slot, updated_at FROM saves ORDER BY updated_at DESC;`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}
	defer rows.Close()

	var out []SlotInfo
	for rows.Next() {
		var info SlotInfo
		var ts int64
		if err := rows.Scan(&info.Slot, &ts); err != nil {
			return nil, fmt.Errorf("scan slot: %w", err)
		}
		info.UpdatedAt = time.Unix(ts, 0)
		out = append(out, info)
	}
	return out, rows.Err()
}

// Delete удаляет слот. Отсутствующий слот - no-op.
func (s *SaveStore) Delete(ctx context.Context, slot string) error {
	const q = `DELETE FROM saves WHERE slot = ?;`
	if _, err := s.db.ExecContext(ctx, q, slot); err != nil {
		return fmt.Errorf("delete slot %q: %w", slot, err)
	}
	return nil
}

func encodeEnvelope(st *state.Store) ([]byte, error) {
	profile, err := json.Marshal(st.Profile)
	if err != nil {
		return nil, err
	}
	player, err := json.Marshal(st.Player)
	if err != nil {
		return nil, err
	}
	world, err := json.Marshal(st.World)
	if err != nil {
		return nil, err
	}
	pos, err := json.Marshal(st.Pos)
	if err != nil {
		return nil, err
	}

	return json.Marshal(Envelope{
		FormatVersion: FormatVersion,
		Timestamp:     time.Now().Unix(),
		Profile:       profile,
		Player:        player,
		World:         world,
		Position:      pos,
	})
}

func decodeEnvelope(payload []byte) (*state.Store, error) {
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.FormatVersion != FormatVersion {
		return nil, fmt.Errorf("unsupported save format: %d (expected %d)", env.FormatVersion, FormatVersion)
	}

	st := state.NewStore()
	if err := json.Unmarshal(env.Profile, &st.Profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	if err := json.Unmarshal(env.Player, &st.Player); err != nil {
		return nil, fmt.Errorf("decode player state: %w", err)
	}
	if err := json.Unmarshal(env.World, &st.World); err != nil {
		return nil, fmt.Errorf("decode world state: %w", err)
	}
	if err := json.Unmarshal(env.Position, &st.Pos); err != nil {
		return nil, fmt.Errorf("decode position: %w", err)
	}
	return st, nil
}
