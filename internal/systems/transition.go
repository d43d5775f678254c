package systems

import (
	"github.com/sirupsen/logrus"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/logger"
)

// TransitionResult - итог применения выбора.
type TransitionResult struct {
	// Choice - выбор, который был применен (с эффектами и категорией).
	Choice domain.Choice

	// Pos - новая позиция. При навигационной ошибке равна старой.
	Pos domain.Position

	// ActChanged true при переходе между актами - сигнал вызывающему коду
	// сделать немедленную запись сохранения.
	ActChanged bool

	// Moved true, если сцена или акт изменились.
	Moved bool
}

// ApplyChoice - ЕДИНСТВЕННЫЙ путь, которым ввод игрока меняет позицию и
// состояние. Последовательность фиксирована:
//
//  1. Повторный резолв доступных выборов и поиск по ключу. Нет совпадения -
//     ErrChoiceNotFound, никаких догадок и fallback на первый выбор.
//  2. Применение Effects в фиксированном порядке (см. ApplyEffects).
//     Каждая под-мутация атомарна; отката середины списка нет по дизайну -
//     под-мутации коммутативны.
//  3. Merge WorldStateTriggers (независимо от effects.worldState и поверх).
//  4. Разрешение новой позиции: nextAct > nextScene > остаться на месте.
//     Навигационная ошибка оставляет позицию нетронутой, НО эффекты шагов
//     2-3 уже свершились и не откатываются: "эффекты происходят в момент
//     выбора", провалилась только навигация.
//  5. Счетчик choicesMade инкрементируется ровно один раз на успешный шаг 1,
//     независимо от исхода шага 4.
func ApplyChoice(store *state.Store, graph Graph, scene *domain.Scene, choiceKey string) (*TransitionResult, error) {
	// 1. Повторный резолв: защита от устаревшего UI и двойных сабмитов
	snap := store.Snapshot()
	available := AvailableChoices(scene, snap)

	chosen, ok := findChoice(available, choiceKey)
	if !ok {
		return nil, domain.ErrChoiceNotFound
	}

	// 2. Эффекты
	ApplyEffects(store, chosen.Effects)

	// 3. Прямые триггеры мирового состояния
	if len(chosen.WorldStateTriggers) > 0 {
		store.MergeWorldState(chosen.WorldStateTriggers)
	}

	// 5. (до навигации: счетчик не зависит от её исхода)
	store.AddProgression(domain.ProgressChoices, 1)

	result := &TransitionResult{Choice: chosen, Pos: store.Pos}

	// 4. Навигация
	switch {
	case chosen.NextAct > 0:
		act, ok := graph.Act(chosen.NextAct)
		if !ok {
			logger.Log.WithFields(logrus.Fields{
				"choice": chosen.Key,
				"act":    chosen.NextAct,
			}).Warn("Choice points to unknown act")
			return result, domain.ErrUnknownAct
		}
		store.SetPosition(domain.Position{Act: act.Number, SceneID: act.Entry})
		result.Pos = store.Pos
		result.ActChanged = true
		result.Moved = true

	case chosen.NextScene != "":
		if _, ok := graph.Scene(store.Pos.Act, chosen.NextScene); !ok {
			logger.Log.WithFields(logrus.Fields{
				"choice": chosen.Key,
				"scene":  chosen.NextScene,
				"act":    store.Pos.Act,
			}).Warn("Choice points to unknown scene")
			return result, domain.ErrUnknownScene
		}
		store.SetPosition(domain.Position{Act: store.Pos.Act, SceneID: chosen.NextScene})
		result.Pos = store.Pos
		result.Moved = true

	default:
		// Валидный терминальный no-op: состояние мутировало, позиция на месте
	}

	return result, nil
}

// findChoice ищет сперва по чеканному ключу (канонический путь),
// затем по авторскому ID - первое совпадение в стабильном порядке списка.
func findChoice(available []domain.Choice, key string) (domain.Choice, bool) {
	for _, ch := range available {
		if ch.Key == key {
			return ch, true
		}
	}
	for _, ch := range available {
		if ch.ID != "" && ch.ID == key {
			return ch, true
		}
	}
	return domain.Choice{}, false
}

// ApplyEffects применяет декларативную нагрузку к стору в фиксированном
// порядке. Порядок важен только для воспроизводимости и тестируемости:
//
//	атрибуты -> дхармический профиль -> добавление предметов ->
//	удаление предметов -> флаги -> world-state merge -> прогрессия -> карма
func ApplyEffects(store *state.Store, e *domain.Effects) {
	if e.IsZero() {
		return
	}

	for name, delta := range e.Attributes {
		store.ApplyAttributeDelta(name, delta)
	}

	for aspect, delta := range e.DharmicProfile {
		if !store.AdjustDharmicProfile(aspect, delta) {
			logger.Log.WithField("aspect", aspect).Debug("Unknown dharmic aspect, skipping")
		}
	}

	for _, item := range e.AddItems {
		store.AddInventoryItem(item)
	}
	for _, item := range e.SpecialItems {
		store.AddSpecialItem(item)
	}

	for _, item := range e.RemoveItems {
		store.RemoveInventoryItem(item)
	}

	for key, v := range e.Flags {
		store.SetFlag(key, v)
	}

	if len(e.WorldState) > 0 {
		store.MergeWorldState(e.WorldState)
	}

	for key, delta := range e.Progression {
		if !store.AddProgression(key, delta) {
			logger.Log.WithField("counter", key).Debug("Unknown progression counter, skipping")
		}
	}

	if e.Karma != 0 {
		store.AdjustKarma(e.Karma)
	}
}
