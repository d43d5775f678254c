package domain

import (
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/condition"
)

// ChoiceSource - категория, из которой выбор попал в итоговый список.
// Порядок выдачи детерминирован: standard -> interaction -> archetype.
type ChoiceSource uint8

const (
	SourceStandard ChoiceSource = iota
	SourceInteraction
	SourceArchetype
)

func (s ChoiceSource) String() string {
	switch s {
	case SourceInteraction:
		return "INTERACTION"
	case SourceArchetype:
		return "ARCHETYPE"
	default:
		return "STANDARD"
	}
}

// Scene - один нарративный узел графа. Сцены загружаются один раз на акт и
// НИКОГДА не мутируются в рантайме: меняется только курсор Position.
type Scene struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`

	// Choices - авторский порядок сохраняется как есть.
	Choices []Choice `json:"choices"`

	// Interactions - пары глагол+существительное, всегда доступные псевдо-выборы.
	Interactions []Interaction `json:"interactions,omitempty"`

	// ArchetypeChoices - бонусные выборы по накшатре игрока.
	// Ключ - имя накшатры ("Ashwini"), значение - упорядоченный список.
	ArchetypeChoices map[string][]Choice `json:"archetypeChoices,omitempty"`

	Puzzle     *Puzzle     `json:"puzzle,omitempty"`
	Meditation *Meditation `json:"meditation,omitempty"`
}

// Choice - один вариант действия игрока.
type Choice struct {
	// Key - гарантированно уникальный ключ, чеканится загрузчиком контента
	// (sceneID#index). Авторский ID остается только меткой для людей.
	Key string `json:"-"`

	ID   string `json:"id,omitempty"`
	Text string `json:"text"`

	// Condition - исходный текст условия (данные автора).
	// Cond - его AST, построенный загрузчиком. В рантайме работает только Cond.
	Condition string         `json:"condition,omitempty"`
	Cond      condition.Expr `json:"-"`

	// Requirements - упрощенная форма предиката (пороги атрибутов + флаги).
	// Сосуществует с Condition; если задано Condition, оно имеет приоритет.
	Requirements *Requirements `json:"requirements,omitempty"`

	Effects *Effects `json:"effects,omitempty"`

	// WorldStateTriggers - прямые записи в мировое состояние,
	// применяются безусловно после Effects.
	WorldStateTriggers map[string]any `json:"worldStateTriggers,omitempty"`

	// Навигация: либо NextScene, либо NextAct (>0), либо ничего
	// (выбор только мутирует состояние, позиция не меняется).
	NextScene string `json:"nextScene,omitempty"`
	NextAct   int    `json:"nextAct,omitempty"`

	Source ChoiceSource `json:"-"`
}

// Interaction - взаимодействие вида "ОСМОТРЕТЬ РЕКУ". Превращается
// резолвером в синтетический всегда-доступный выбор.
type Interaction struct {
	Verb      string   `json:"verb"`
	Noun      string   `json:"noun"`
	Text      string   `json:"text,omitempty"`
	NextScene string   `json:"nextScene"`
	Effects   *Effects `json:"effects,omitempty"`
}

// Requirements - пороговый предикат: каждый атрибут >= порога (отсутствующий
// атрибут считается 0) И каждый флаг truthy. Обе проверки должны пройти.
type Requirements struct {
	Attributes map[string]float64 `json:"attributes,omitempty"`
	Flags      []string           `json:"flags,omitempty"`
}

// Puzzle - головоломка сцены. Решение сверяется политикой "trim + case-insensitive"
// (см. systems.SubmitSolution). Счетчик попыток головоломка не хранит.
type Puzzle struct {
	Description string `json:"description"`
	Solution    string `json:"solution"`
	Success     string `json:"success"`
	Failure     string `json:"failure,omitempty"`
}

// Meditation - декларация медитации на сцене: эффекты применяются
// по действию MEDITATE, позиция не меняется.
type Meditation struct {
	Available bool     `json:"available"`
	Text      string   `json:"text,omitempty"`
	Effects   *Effects `json:"effects,omitempty"`
}

// Act - именованный раздел графа сцен со своей входной сценой.
type Act struct {
	Number int               `json:"act"`
	Title  string            `json:"title"`
	Entry  string            `json:"entry"`
	Scenes map[string]*Scene `json:"-"`
}

// Position - пара (акт, сцена): единственный изменяемый курсор в графе.
// Обновляется ТОЛЬКО движком переходов, всегда атомарно (оба поля вместе).
type Position struct {
	Act     int    `json:"act"`
	SceneID string `json:"sceneId"`
}
