package systems

import (
	"strings"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/logger"
)

// PuzzleResult - итог проверки решения.
type PuzzleResult struct {
	Solved bool
	Pos    domain.Position
	Moved  bool
}

// SubmitSolution сверяет присланное решение с головоломкой сцены.
//
// Политика сравнения: TrimSpace + case-insensitive ("Moksha " == "moksha").
// Это сознательное решение: игрок вводит текст руками, и наказывать его за
// регистр или хвостовой пробел - плохой дизайн ввода.
//
// Совпадение: счетчик puzzlesSolved++, позиция на puzzle.success.
// Промах: позиция на puzzle.failure, если объявлена, иначе остаемся на месте.
// Промах - это НЕ ошибка (возвращается Solved=false); ошибка только
// ErrNoPuzzleActive, когда на сцене нет головоломки.
func SubmitSolution(store *state.Store, graph Graph, scene *domain.Scene, submitted string) (*PuzzleResult, error) {
	if scene == nil || scene.Puzzle == nil {
		return nil, domain.ErrNoPuzzleActive
	}
	pz := scene.Puzzle

	result := &PuzzleResult{Pos: store.Pos}

	if solutionsEqual(submitted, pz.Solution) {
		store.AddProgression(domain.ProgressPuzzles, 1)

		if _, ok := graph.Scene(store.Pos.Act, pz.Success); !ok {
			// Дефект данных: успех ведет в никуда. Fail closed - остаемся.
			logger.Log.WithField("scene", pz.Success).Warn("Puzzle success scene missing")
			result.Solved = true
			return result, nil
		}
		store.SetPosition(domain.Position{Act: store.Pos.Act, SceneID: pz.Success})
		result.Solved = true
		result.Pos = store.Pos
		result.Moved = true
		return result, nil
	}

	if pz.Failure != "" {
		if _, ok := graph.Scene(store.Pos.Act, pz.Failure); ok {
			store.SetPosition(domain.Position{Act: store.Pos.Act, SceneID: pz.Failure})
			result.Pos = store.Pos
			result.Moved = true
		} else {
			logger.Log.WithField("scene", pz.Failure).Warn("Puzzle failure scene missing")
		}
	}
	return result, nil
}

func solutionsEqual(submitted, expected string) bool {
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(expected))
}
