package api

import (
	"errors"
	"strings"
)

// Validator - интерфейс, который могут реализовать DTO
type Validator interface {
	Validate() error
}

func (p ChoicePayload) Validate() error {
	if strings.TrimSpace(p.Key) == "" {
		return errors.New("choice key is required")
	}
	return nil
}

func (p PuzzlePayload) Validate() error {
	if strings.TrimSpace(p.Solution) == "" {
		return errors.New("solution cannot be empty")
	}
	return nil
}

func (p SlotPayload) Validate() error {
	slot := strings.TrimSpace(p.Slot)
	if slot == "" {
		return errors.New("slot name is required")
	}
	if len(slot) > 64 {
		return errors.New("slot name too long")
	}
	return nil
}

func (p NewGamePayload) Validate() error {
	if len(p.Nakshatra) > 64 {
		return errors.New("nakshatra name too long")
	}
	return nil
}
