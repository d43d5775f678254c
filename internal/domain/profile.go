package domain

// Profile - кто наш протагонист: выбранная накшатра (архетип по звезде
// рождения), её гана и стартовые гуны. Профиль задается при NEWGAME и
// дальше не меняется (в отличие от PlayerState).
type Profile struct {
	Nakshatra string             `json:"nakshatra,omitempty"`
	Gana      string             `json:"gana,omitempty"`
	Gunas     map[string]float64 `json:"gunas,omitempty"`
}

// Archetype - статическая карточка накшатры: гана и стартовые бонусы атрибутов.
type Archetype struct {
	Gana       string
	Attributes map[string]float64
	Gunas      map[string]float64
}

// Ганы (темпераменты) накшатр.
const (
	GanaDeva     = "deva"
	GanaManushya = "manushya"
	GanaRakshasa = "rakshasa"
)

// archetypes - таблица поддерживаемых накшатр.
// Контент может объявлять archetypeChoices только для этих имен -
// загрузчик проверяет это при валидации акта.
var archetypes = map[string]Archetype{
	"Ashwini": {
		Gana:       GanaDeva,
		Attributes: map[string]float64{"vitality": 2, "spiritual_insight": 1},
		Gunas:      map[string]float64{"sattva": 2, "rajas": 1},
	},
	"Bharani": {
		Gana:       GanaManushya,
		Attributes: map[string]float64{"willpower": 2, "perception": 1},
		Gunas:      map[string]float64{"rajas": 2, "tamas": 1},
	},
	"Krittika": {
		Gana:       GanaRakshasa,
		Attributes: map[string]float64{"willpower": 1, "wisdom": 2},
		Gunas:      map[string]float64{"rajas": 2, "sattva": 1},
	},
	"Rohini": {
		Gana:       GanaManushya,
		Attributes: map[string]float64{"compassion": 2, "perception": 1},
		Gunas:      map[string]float64{"sattva": 1, "tamas": 2},
	},
	"Pushya": {
		Gana:       GanaDeva,
		Attributes: map[string]float64{"wisdom": 1, "compassion": 2},
		Gunas:      map[string]float64{"sattva": 3},
	},
}

// LookupArchetype возвращает карточку накшатры.
func LookupArchetype(name string) (Archetype, bool) {
	a, ok := archetypes[name]
	return a, ok
}

// ArchetypeNames возвращает имена всех известных накшатр (порядок не гарантирован).
func ArchetypeNames() []string {
	names := make([]string, 0, len(archetypes))
	for name := range archetypes {
		names = append(names, name)
	}
	return names
}
