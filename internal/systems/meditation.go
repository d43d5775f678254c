package systems

import (
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
)

// Meditate применяет объявленные на сцене эффекты медитации, если она
// доступна. Позиция никогда не меняется - это действие только над состоянием.
// Возвращает false (no-op), если сцена медитацию не объявляет.
func Meditate(store *state.Store, scene *domain.Scene) bool {
	if scene == nil || scene.Meditation == nil || !scene.Meditation.Available {
		return false
	}
	ApplyEffects(store, scene.Meditation.Effects)
	return true
}
