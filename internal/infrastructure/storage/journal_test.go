package storage

import (
	"bytes"
	"testing"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

func sampleJournal() *Journal {
	return &Journal{
		SessionID: "abc123",
		StartedAt: 1700000000,
		Entries: []JournalEntry{
			{Timestamp: 1700000001, Act: 1, Action: domain.ActionChoice, ChoiceKey: "JOURNEY_START#0", SceneID: "GHAT_RITUAL_FOCUS"},
			{Timestamp: 1700000005, Act: 1, Action: domain.ActionPuzzle, ChoiceKey: "", SceneID: "TEMPLE_INNER"},
			{Timestamp: 1700000009, Act: 2, Action: domain.ActionChoice, ChoiceKey: "FOREST_EDGE#0", SceneID: "BANYAN_HEART"},
		},
	}
}

func TestJournalRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	original := sampleJournal()

	if err := writeJournal(&buf, original); err != nil {
		t.Fatalf("writeJournal() failed: %v", err)
	}

	loaded, err := readJournal(&buf)
	if err != nil {
		t.Fatalf("readJournal() failed: %v", err)
	}

	if loaded.StartedAt != original.StartedAt {
		t.Errorf("StartedAt = %d, want %d", loaded.StartedAt, original.StartedAt)
	}
	if len(loaded.Entries) != len(original.Entries) {
		t.Fatalf("entries = %d, want %d", len(loaded.Entries), len(original.Entries))
	}
	for i, want := range original.Entries {
		got := loaded.Entries[i]
		if got != want {
			t.Errorf("entry %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestJournalRejectsBadMagic(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJournal(&buf, sampleJournal()); err != nil {
		t.Fatalf("writeJournal() failed: %v", err)
	}

	raw := buf.Bytes()
	copy(raw[:4], "XXXX")

	if _, err := readJournal(bytes.NewReader(raw)); err == nil {
		t.Error("readJournal() accepted corrupted magic")
	}
}

func TestJournalRejectsFutureVersion(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJournal(&buf, sampleJournal()); err != nil {
		t.Fatalf("writeJournal() failed: %v", err)
	}

	raw := buf.Bytes()
	// Версия - uint32 little-endian сразу после магии
	raw[4] = 0xFF

	if _, err := readJournal(bytes.NewReader(raw)); err == nil {
		t.Error("readJournal() accepted unsupported version")
	}
}

func TestJournalTruncatedFile(t *testing.T) {
	var buf bytes.Buffer
	if err := writeJournal(&buf, sampleJournal()); err != nil {
		t.Fatalf("writeJournal() failed: %v", err)
	}

	raw := buf.Bytes()
	if _, err := readJournal(bytes.NewReader(raw[:len(raw)-5])); err == nil {
		t.Error("readJournal() accepted truncated input")
	}
}

func TestJournalSaveLoadFile(t *testing.T) {
	svc := NewJournalService(t.TempDir())
	original := sampleJournal()

	path, err := svc.Save(original)
	if err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	loaded, err := svc.Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(loaded.Entries) != 3 {
		t.Errorf("entries = %d, want 3", len(loaded.Entries))
	}
	if loaded.Entries[0].ChoiceKey != "JOURNEY_START#0" {
		t.Errorf("first entry key = %q, want JOURNEY_START#0", loaded.Entries[0].ChoiceKey)
	}
}
