package api

import (
	"strings"
	"testing"
)

func TestChoicePayloadValidate(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"minted key", "JOURNEY_START#0", false},
		{"author id", "focus_ritual", false},
		{"empty", "", true},
		{"whitespace only", "   ", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ChoicePayload{Key: tt.key}.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPuzzlePayloadValidate(t *testing.T) {
	if err := (PuzzlePayload{Solution: "moksha"}).Validate(); err != nil {
		t.Errorf("valid solution rejected: %v", err)
	}
	if err := (PuzzlePayload{Solution: " \t"}).Validate(); err == nil {
		t.Error("blank solution accepted")
	}
}

func TestSlotPayloadValidate(t *testing.T) {
	if err := (SlotPayload{Slot: "temple"}).Validate(); err != nil {
		t.Errorf("valid slot rejected: %v", err)
	}
	if err := (SlotPayload{Slot: ""}).Validate(); err == nil {
		t.Error("empty slot accepted")
	}
	if err := (SlotPayload{Slot: strings.Repeat("x", 65)}).Validate(); err == nil {
		t.Error("oversized slot name accepted")
	}
}

func TestNewGamePayloadValidate(t *testing.T) {
	if err := (NewGamePayload{}).Validate(); err != nil {
		t.Errorf("empty nakshatra rejected: %v", err)
	}
	if err := (NewGamePayload{Nakshatra: strings.Repeat("x", 65)}).Validate(); err == nil {
		t.Error("oversized nakshatra accepted")
	}
}
