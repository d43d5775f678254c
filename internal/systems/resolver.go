package systems

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/logger"
)

// AvailableChoices вычисляет точный упорядоченный список выборов, доступных
// игроку прямо сейчас. Порядок детерминирован:
//
//	стандартные выборы -> interactions -> архетипные бонусы
//
// Дубликаты авторских ID между категориями НЕ дедуплицируются - ключи (Key)
// и так уникальны, а за дизамбигуацию меток отвечает презентация.
//
// Функция ЧИТАЕТ только снапшот и никогда не мутирует состояние: два вызова
// подряд без ApplyChoice между ними возвращают идентичные списки.
func AvailableChoices(scene *domain.Scene, snap *state.Snapshot) []domain.Choice {
	if scene == nil {
		return nil
	}

	out := make([]domain.Choice, 0, len(scene.Choices)+len(scene.Interactions))

	// 1. Стандартные выборы: гейтинг условием либо требованиями
	for i := range scene.Choices {
		ch := scene.Choices[i]
		if !choiceOpen(&ch, snap, scene.ID) {
			continue
		}
		ch.Source = domain.SourceStandard
		out = append(out, ch)
	}

	// 2. Interactions - синтетические всегда-доступные выборы,
	// после стандартных, в авторском порядке
	for i := range scene.Interactions {
		in := scene.Interactions[i]
		text := in.Text
		if text == "" {
			text = fmt.Sprintf("%s %s", in.Verb, in.Noun)
		}
		out = append(out, domain.Choice{
			Key:       InteractionKey(scene.ID, i),
			ID:        fmt.Sprintf("%s_%s", in.Verb, in.Noun),
			Text:      text,
			Effects:   in.Effects,
			NextScene: in.NextScene,
			Source:    domain.SourceInteraction,
		})
	}

	// 3. Архетипные бонусы по накшатре игрока, помечены отдельно,
	// чтобы презентация могла их бейджить
	if bonus, ok := scene.ArchetypeChoices[snap.Profile.Nakshatra]; ok {
		for i := range bonus {
			ch := bonus[i]
			if !choiceOpen(&ch, snap, scene.ID) {
				continue
			}
			ch.Source = domain.SourceArchetype
			out = append(out, ch)
		}
	}

	return out
}

// InteractionKey чеканит детерминированный ключ синтетического выбора.
func InteractionKey(sceneID string, index int) string {
	return fmt.Sprintf("%s#i%d", sceneID, index)
}

// choiceOpen вычисляет гейтинг одного выбора.
// Приоритет: Condition (AST) > Requirements > всегда доступен.
func choiceOpen(ch *domain.Choice, snap *state.Snapshot, sceneID string) bool {
	if ch.Cond != nil {
		ok, err := ch.Cond.Eval(snap)
		if err != nil {
			// Fail closed: битое условие прячет выбор, но не роняет движок.
			logger.Log.WithFields(logrus.Fields{
				"scene":     sceneID,
				"choice":    ch.Key,
				"condition": ch.Condition,
			}).WithError(err).Warn("Condition failed, hiding choice")
			return false
		}
		return ok
	}

	if ch.Requirements != nil {
		return requirementsMet(ch.Requirements, snap)
	}

	return true
}

// requirementsMet проверяет пороговый предикат: каждый атрибут >= порога
// (отсутствующий считается 0) И каждый флаг truthy. Логическое И.
func requirementsMet(req *domain.Requirements, snap *state.Snapshot) bool {
	for attr, min := range req.Attributes {
		if snap.Player.Attributes[attr] < min {
			return false
		}
	}
	for _, flag := range req.Flags {
		v, ok := snap.Player.Flags[flag]
		if !ok || !flagTruthy(v) {
			return false
		}
	}
	return true
}

func flagTruthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case nil:
		return false
	}
	return true
}
