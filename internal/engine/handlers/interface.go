package handlers

import (
	"context"
	"encoding/json"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/state"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/systems"
)

// Persister описывает любую структуру, которая умеет писать и читать слоты
// сохранений. SaveStore реализует этот интерфейс.
type Persister interface {
	SaveSlot(ctx context.Context, slot string, st *state.Store) error
	LoadSlot(ctx context.Context, slot string) (*state.Store, error)
}

// Context передает хендлеру состояние сессии.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать стор).
type Context struct {
	Ctx context.Context

	Store *state.Store
	Graph systems.Graph

	// Scene - сцена, на которой стоит игрок. nil до начала игры.
	Scene *domain.Scene

	// Start - стартовая позиция новой игры (вход первого акта).
	Start domain.Position

	// Persister - доступ к слотам сохранений. nil, если хранилище отключено.
	Persister Persister

	// ReplaceStore подменяет стор сессии целиком (используется LOAD).
	ReplaceStore func(*state.Store)
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в ленту сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст сообщения
	MsgType string // Тип сообщения (INFO, STORY, ERROR)

	// ActChanged true при переходе между актами - сигнал сервису
	// немедленно записать автосохранение.
	ActChanged bool
}

// HandlerFunc - это контракт для любой команды (CHOICE, PUZZLE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
