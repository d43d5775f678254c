package domain

import "strings"

// ActionType - внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionNewGame
	ActionChoice
	ActionPuzzle
	ActionMeditate
	ActionSave
	ActionLoad
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":     ActionInit,
	"NEWGAME":  ActionNewGame,
	"CHOICE":   ActionChoice,
	"PUZZLE":   ActionPuzzle,
	"MEDITATE": ActionMeditate,
	"SAVE":     ActionSave,
	"LOAD":     ActionLoad,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:     "INIT",
	ActionNewGame:  "NEWGAME",
	ActionChoice:   "CHOICE",
	ActionPuzzle:   "PUZZLE",
	ActionMeditate: "MEDITATE",
	ActionSave:     "SAVE",
	ActionLoad:     "LOAD",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
