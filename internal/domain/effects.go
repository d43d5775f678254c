package domain

// AttributeAll - псевдо-имя атрибута: дельта применяется ко ВСЕМ известным
// атрибутам за один атомарный шаг.
const AttributeAll = "all"

// Аспекты дхармического профиля. Неизвестный аспект в данных сцены - это
// тихий no-op (контент может ссылаться на опциональные аспекты), не ошибка.
const (
	AspectDharma = "dharma"
	AspectArtha  = "artha"
	AspectKama   = "kama"
	AspectMoksha = "moksha"
)

// KnownAspects перечисляет признаваемые аккумуляторы профиля.
var KnownAspects = []string{AspectDharma, AspectArtha, AspectKama, AspectMoksha}

// Ключи счетчиков прогрессии (монотонно растущие аудит-счетчики).
const (
	ProgressQuests  = "questsCompleted"
	ProgressPuzzles = "puzzlesSolved"
	ProgressChoices = "choicesMade"
)

// Effects - декларативная нагрузка выбора: какие мутации состояния применить,
// когда выбор сделан. Порядок применения фиксирован (см. systems.ApplyEffects),
// откатов нет - эффекты считаются свершившимися в момент выбора.
type Effects struct {
	// Attributes - дельты атрибутов. Ключ "all" - ко всем существующим.
	Attributes map[string]float64 `json:"attributes,omitempty"`

	// DharmicProfile - дельты аккумуляторов dharma/artha/kama/moksha.
	DharmicProfile map[string]float64 `json:"dharmicProfile,omitempty"`

	// AddItems / RemoveItems - простой инвентарь (список, дубликаты допустимы).
	AddItems    []string `json:"addItems,omitempty"`
	RemoveItems []string `json:"removeItems,omitempty"`

	// SpecialItems - "богатые" предметы, дедупликация по ID при добавлении.
	SpecialItems []SpecialItem `json:"specialItems,omitempty"`

	// Flags - установка флагов памяти ветвления.
	Flags map[string]any `json:"flags,omitempty"`

	// WorldState - shallow-merge в мировое состояние.
	WorldState map[string]any `json:"worldState,omitempty"`

	// Progression - дельты счетчиков прогрессии.
	Progression map[string]int `json:"progression,omitempty"`

	// Karma - дельта кармы (может быть отрицательной).
	Karma float64 `json:"karma,omitempty"`
}

// IsZero сообщает, пуста ли нагрузка целиком.
func (e *Effects) IsZero() bool {
	if e == nil {
		return true
	}
	return len(e.Attributes) == 0 &&
		len(e.DharmicProfile) == 0 &&
		len(e.AddItems) == 0 &&
		len(e.RemoveItems) == 0 &&
		len(e.SpecialItems) == 0 &&
		len(e.Flags) == 0 &&
		len(e.WorldState) == 0 &&
		len(e.Progression) == 0 &&
		e.Karma == 0
}

// SpecialItem - предмет с собственной карточкой (в отличие от строк
// простого инвентаря).
type SpecialItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}
