package storage

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

const (
	JournalMagic   string = `SSJ1` // 4 байта
	JournalVersion uint32 = 1
)

// JournalFileHeader - точное представление заголовка файла в памяти.
// binary.Write умеет писать его целиком: тут нет слайсов и строк,
// только массивы и числа.
type JournalFileHeader struct {
	Magic      [4]byte // 4 байта
	Version    uint32  // 4 байта
	StartedAt  int64   // 8 байт
	EntryCount int32   // 4 байта
}

// entryHeader - заголовок каждой записи журнала.
type entryHeader struct {
	Timestamp int64  // 8
	Act       int32  // 4
	Action    uint8  // 1
	KeyLen    uint8  // 1
	SceneLen  uint16 // 2
}

// JournalEntry - один шаг игрока: что за действие, каким ключом,
// на какой сцене он после этого оказался.
type JournalEntry struct {
	Timestamp int64
	Act       int
	Action    domain.ActionType
	ChoiceKey string
	SceneID   string
}

// Journal - полная хроника одной сессии для отладки и разбора прохождений.
type Journal struct {
	SessionID string
	StartedAt int64
	Entries   []JournalEntry
}

// JournalService пишет и читает журналы прохождений в бинарном формате .ssj.
type JournalService struct {
	Dir string
}

func NewJournalService(dir string) *JournalService {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		_ = os.MkdirAll(dir, 0755)
	}
	return &JournalService{Dir: dir}
}

// Save пишет журнал сессии в файл journal_<session>_<ts>.ssj.
func (s *JournalService) Save(j *Journal) (string, error) {
	filename := fmt.Sprintf("journal_%s_%d.ssj", j.SessionID, j.StartedAt)
	path := filepath.Join(s.Dir, filename)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := writeJournal(f, j); err != nil {
		return "", err
	}
	return path, nil
}

// Load читает журнал из файла, проверяя магию и версию формата.
func (s *JournalService) Load(path string) (*Journal, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readJournal(f)
}

func writeJournal(w io.Writer, j *Journal) error {
	// 1. Глобальный заголовок - одной командой
	header := JournalFileHeader{
		Version:    JournalVersion,
		StartedAt:  j.StartedAt,
		EntryCount: int32(len(j.Entries)),
	}
	copy(header.Magic[:], JournalMagic)

	if err := binary.Write(w, binary.LittleEndian, &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// 2. Записи
	for _, e := range j.Entries {
		keyBytes := []byte(e.ChoiceKey)
		if len(keyBytes) > 255 {
			return fmt.Errorf("choice key too long: %d", len(keyBytes))
		}
		sceneBytes := []byte(e.SceneID)
		if len(sceneBytes) > 65535 {
			return fmt.Errorf("scene id too long: %d", len(sceneBytes))
		}

		eh := entryHeader{
			Timestamp: e.Timestamp,
			Act:       int32(e.Act),
			Action:    uint8(e.Action),
			KeyLen:    uint8(len(keyBytes)),
			SceneLen:  uint16(len(sceneBytes)),
		}
		if err := binary.Write(w, binary.LittleEndian, &eh); err != nil {
			return err
		}

		if _, err := w.Write(keyBytes); err != nil {
			return err
		}
		if _, err := w.Write(sceneBytes); err != nil {
			return err
		}
	}

	return nil
}

func readJournal(r io.Reader) (*Journal, error) {
	// 1. Заголовок целиком
	var header JournalFileHeader
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// Валидация
	if string(header.Magic[:]) != JournalMagic {
		return nil, fmt.Errorf("invalid magic")
	}
	if header.Version != JournalVersion {
		return nil, fmt.Errorf("unsupported version: %d (expected %d)", header.Version, JournalVersion)
	}

	j := &Journal{
		StartedAt: header.StartedAt,
		Entries:   make([]JournalEntry, header.EntryCount),
	}

	// 2. Записи
	for i := 0; i < int(header.EntryCount); i++ {
		var eh entryHeader
		if err := binary.Read(r, binary.LittleEndian, &eh); err != nil {
			return nil, err
		}

		entry := JournalEntry{
			Timestamp: eh.Timestamp,
			Act:       int(eh.Act),
			Action:    domain.ActionType(eh.Action),
		}

		keyBuf := make([]byte, eh.KeyLen)
		if _, err := io.ReadFull(r, keyBuf); err != nil {
			return nil, err
		}
		entry.ChoiceKey = string(keyBuf)

		sceneBuf := make([]byte, eh.SceneLen)
		if _, err := io.ReadFull(r, sceneBuf); err != nil {
			return nil, err
		}
		entry.SceneID = string(sceneBuf)

		j.Entries[i] = entry
	}

	return j, nil
}
