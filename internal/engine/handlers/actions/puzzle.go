package actions

import (
	"errors"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/systems"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/api"
)

// HandlePuzzle сверяет присланное решение с головоломкой текущей сцены.
// Неверный ответ - не ошибка протокола: игрок просто остается (или уходит
// на сцену провала), и может пробовать снова.
func HandlePuzzle(ctx handlers.Context, p api.PuzzlePayload) (handlers.Result, error) {
	if ctx.Scene == nil {
		return handlers.Result{}, errors.New("no active game, send NEWGAME first")
	}

	res, err := systems.SubmitSolution(ctx.Store, ctx.Graph, ctx.Scene, p.Solution)
	if err != nil {
		if errors.Is(err, domain.ErrNoPuzzleActive) {
			return handlers.Result{Msg: "Здесь нечего разгадывать.", MsgType: "ERROR"}, nil
		}
		return handlers.Result{}, err
	}

	if res.Solved {
		return handlers.Result{Msg: "Ответ принят.", MsgType: "STORY"}, nil
	}
	return handlers.Result{Msg: "Ответ не подошел.", MsgType: "STORY"}, nil
}
