package state

import (
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

// Progression - монотонно растущие аудит-счетчики.
type Progression struct {
	QuestsCompleted int `json:"questsCompleted"`
	PuzzlesSolved   int `json:"puzzlesSolved"`
	ChoicesMade     int `json:"choicesMade"`
}

// PlayerState - все, что описывает протагониста (в отличие от WorldState,
// который описывает мир).
type PlayerState struct {
	// Attributes - открытый набор именованных числовых значений
	// (wisdom, compassion...). Отсутствующий атрибут читается как 0.
	Attributes map[string]float64 `json:"attributes"`

	// Inventory - простой список идентификаторов предметов, дубликаты допустимы.
	Inventory []string `json:"inventory"`

	// SpecialItems - богатые предметы, ключ - ID, дубликаты невозможны.
	SpecialItems map[string]domain.SpecialItem `json:"specialItems"`

	// Flags - память ветвления: ключ -> произвольное значение.
	Flags map[string]any `json:"flags"`

	Karma float64 `json:"karma"`

	// DharmicProfile - аккумуляторы dharma/artha/kama/moksha.
	DharmicProfile map[string]float64 `json:"dharmicProfile"`

	Progression Progression `json:"progression"`
}

// Store - единственный владелец PlayerState, WorldState и Position.
// НЕ потокобезопасен сам по себе: сериализацию доступа обеспечивает Session.
// Мутируется только движком переходов - презентация сюда не пишет.
type Store struct {
	Profile domain.Profile  `json:"playerProfile"`
	Player  PlayerState     `json:"playerState"`
	World   map[string]any  `json:"worldState"`
	Pos     domain.Position `json:"position"`
}

// NewStore создает стор с пустым (но инициализированным) состоянием.
func NewStore() *Store {
	s := &Store{}
	s.reset()
	return s
}

func (s *Store) reset() {
	s.Profile = domain.Profile{}
	s.Player = PlayerState{
		Attributes:     make(map[string]float64),
		Inventory:      make([]string, 0),
		SpecialItems:   make(map[string]domain.SpecialItem),
		Flags:          make(map[string]any),
		DharmicProfile: make(map[string]float64),
	}
	for _, aspect := range domain.KnownAspects {
		s.Player.DharmicProfile[aspect] = 0
	}
	s.World = make(map[string]any)
	s.Pos = domain.Position{}
}

// Initialize сбрасывает состояние к дефолтам. Идемпотентна: повторный вызов
// полностью затирает предыдущую игру, никаких остатков.
// Если указана накшатра, из таблицы архетипов берутся стартовые бонусы.
func (s *Store) Initialize(nakshatra string) error {
	s.reset()

	if nakshatra == "" {
		return nil
	}

	arch, ok := domain.LookupArchetype(nakshatra)
	if !ok {
		return domain.ErrUnknownArchetype
	}

	s.Profile.Nakshatra = nakshatra
	s.Profile.Gana = arch.Gana
	s.Profile.Gunas = make(map[string]float64, len(arch.Gunas))
	for guna, v := range arch.Gunas {
		s.Profile.Gunas[guna] = v
	}
	for attr, v := range arch.Attributes {
		s.Player.Attributes[attr] = v
	}
	return nil
}

// ApplyAttributeDelta прибавляет amount к атрибуту (создавая его с 0, если
// не было). Псевдо-имя "all" применяет дельту ко ВСЕМ существующим атрибутам
// одним атомарным шагом.
func (s *Store) ApplyAttributeDelta(name string, amount float64) {
	if name == domain.AttributeAll {
		for attr := range s.Player.Attributes {
			s.Player.Attributes[attr] += amount
		}
		return
	}
	s.Player.Attributes[name] += amount
}

// Attribute читает атрибут; отсутствующий читается как 0.
func (s *Store) Attribute(name string) float64 {
	return s.Player.Attributes[name]
}

// AddInventoryItem добавляет предмет в конец списка. Дубликаты допустимы -
// это простейшая list-семантика.
func (s *Store) AddInventoryItem(item string) {
	s.Player.Inventory = append(s.Player.Inventory, item)
}

// RemoveInventoryItem убирает ПЕРВОЕ вхождение предмета.
// Удаление отсутствующего - no-op, не ошибка.
func (s *Store) RemoveInventoryItem(item string) {
	for i, have := range s.Player.Inventory {
		if have == item {
			s.Player.Inventory = append(s.Player.Inventory[:i], s.Player.Inventory[i+1:]...)
			return
		}
	}
}

// HasInventoryItem проверяет наличие предмета в простом инвентаре.
func (s *Store) HasInventoryItem(item string) bool {
	for _, have := range s.Player.Inventory {
		if have == item {
			return true
		}
	}
	return false
}

// AddSpecialItem добавляет богатый предмет с дедупликацией по ID.
// Возвращает false (no-op), если предмет уже есть.
func (s *Store) AddSpecialItem(item domain.SpecialItem) bool {
	if _, exists := s.Player.SpecialItems[item.ID]; exists {
		return false
	}
	s.Player.SpecialItems[item.ID] = item
	return true
}

// SetFlag сохраняет произвольные данные флага.
func (s *Store) SetFlag(key string, value any) {
	s.Player.Flags[key] = value
}

// ReadFlag читает флаг.
func (s *Store) ReadFlag(key string) (any, bool) {
	v, ok := s.Player.Flags[key]
	return v, ok
}

// MergeWorldState делает shallow-merge патча в мировое состояние:
// поздние записи по тому же ключу затирают ранние, deep-merge нет.
func (s *Store) MergeWorldState(patch map[string]any) {
	for k, v := range patch {
		s.World[k] = v
	}
}

// AdjustKarma прибавляет дельту и возвращает новый итог.
func (s *Store) AdjustKarma(amount float64) float64 {
	s.Player.Karma += amount
	return s.Player.Karma
}

// AdjustDharmicProfile прибавляет дельту к аспекту. Возвращает false, если
// аспект не распознан - это тихий no-op по дизайну: данные сцен могут
// ссылаться на опциональные аспекты.
func (s *Store) AdjustDharmicProfile(aspect string, amount float64) bool {
	if _, ok := s.Player.DharmicProfile[aspect]; !ok {
		return false
	}
	s.Player.DharmicProfile[aspect] += amount
	return true
}

// AddProgression прибавляет дельту к счетчику прогрессии по ключу.
// Неизвестный ключ игнорируется (и логируется вызывающим кодом).
func (s *Store) AddProgression(key string, delta int) bool {
	switch key {
	case domain.ProgressQuests:
		s.Player.Progression.QuestsCompleted += delta
	case domain.ProgressPuzzles:
		s.Player.Progression.PuzzlesSolved += delta
	case domain.ProgressChoices:
		s.Player.Progression.ChoicesMade += delta
	default:
		return false
	}
	return true
}

// SetPosition атомарно переводит курсор (акт и сцена меняются вместе).
func (s *Store) SetPosition(pos domain.Position) {
	s.Pos = pos
}
