package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" повествования, видимого для конкретной
// сессии: текущая сцена, доступные выборы и состояние игрока.
// Отправляется после каждой обработанной команды.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// SessionID идентификатор сессии, которой адресован снимок.
	SessionID string `json:"sessionId,omitempty"`

	// Scene текущая сцена. Отсутствует, пока игра не начата (до NEWGAME).
	Scene *SceneView `json:"scene,omitempty"`

	// Choices точный список выборов, доступных ПРЯМО СЕЙЧАС.
	// КЛИЕНТ НЕ ДОЛЖЕН вычислять доступность сам - только рендерить этот список.
	Choices []ChoiceView `json:"choices,omitempty"`

	// State слепок состояния игрока для панелей интерфейса.
	State *StateView `json:"state,omitempty"`

	// Slots список слотов сохранений (заполняется в ответ на SAVE/LOAD).
	Slots []SlotView `json:"slots,omitempty"`

	// Logs новые сообщения, сгенерированные этой командой.
	Logs []LogEntry `json:"logs,omitempty"`
}

// SceneView это DTO текущей сцены со всем, что нужно для рендеринга.
type SceneView struct {
	Act      int    `json:"act"`
	ActTitle string `json:"actTitle,omitempty"`
	ID       string `json:"id"`
	Title    string `json:"title,omitempty"`
	Text     string `json:"text"`

	// PuzzleText условие головоломки, если сцена её объявляет.
	// Решение клиенту, разумеется, не отправляется.
	PuzzleText string `json:"puzzleText,omitempty"`

	// MeditationAvailable true, если на сцене доступно действие MEDITATE.
	MeditationAvailable bool `json:"meditationAvailable,omitempty"`
}

// ChoiceView это DTO одного доступного выбора.
type ChoiceView struct {
	// Key уникальный ключ выбора. Именно его клиент отправляет в CHOICE.
	Key string `json:"key"`

	Text string `json:"text"`

	// Badge категория выбора для визуальной пометки:
	// "INTERACTION" или "ARCHETYPE". Пусто для обычных выборов.
	Badge string `json:"badge,omitempty"`
}

// StateView это DTO состояния игрока.
type StateView struct {
	Nakshatra string `json:"nakshatra,omitempty"`
	Gana      string `json:"gana,omitempty"`

	Attributes     map[string]float64 `json:"attributes"`
	Inventory      []string           `json:"inventory"`
	SpecialItems   []SpecialItemView  `json:"specialItems,omitempty"`
	Karma          float64            `json:"karma"`
	DharmicProfile map[string]float64 `json:"dharmicProfile"`

	Progression ProgressionView `json:"progression"`
}

// SpecialItemView это DTO богатого предмета.
type SpecialItemView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProgressionView это DTO счетчиков прогрессии.
type ProgressionView struct {
	QuestsCompleted int `json:"questsCompleted"`
	PuzzlesSolved   int `json:"puzzlesSolved"`
	ChoicesMade     int `json:"choicesMade"`
}

// SlotView это DTO слота сохранения.
type SlotView struct {
	Slot      string `json:"slot"`
	UpdatedAt int64  `json:"updatedAt"` // Unix seconds
}

// LogEntry представляет одну запись в ленте сообщений.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, STORY, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сессии, от имени которой выполняется команда.
	// Обязателен только для первого сообщения; пустой токен означает
	// "выдай мне новую сессию".
	Token string `json:"token,omitempty"`

	// Action название действия: INIT, NEWGAME, CHOICE, PUZZLE, MEDITATE,
	// SAVE, LOAD.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// NewGamePayload используется для NEWGAME.
type NewGamePayload struct {
	// Nakshatra имя архетипа ("Ashwini"). Пустое - игра без архетипных бонусов.
	Nakshatra string `json:"nakshatra,omitempty"`
}

// ChoicePayload используется для CHOICE.
type ChoicePayload struct {
	// Key ключ выбора из последнего списка Choices (допустим и авторский ID).
	Key string `json:"key"`
}

// PuzzlePayload используется для PUZZLE.
type PuzzlePayload struct {
	Solution string `json:"solution"`
}

// SlotPayload используется для SAVE и LOAD.
type SlotPayload struct {
	Slot string `json:"slot"`
}
