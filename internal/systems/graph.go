package systems

import (
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

// Graph описывает любую структуру, которая умеет находить акты и сцены.
// content.Library неявно реализует этот интерфейс.
type Graph interface {
	// Act возвращает акт по номеру.
	Act(number int) (*domain.Act, bool)
	// Scene возвращает сцену по номеру акта и ID.
	Scene(act int, sceneID string) (*domain.Scene, bool)
}
