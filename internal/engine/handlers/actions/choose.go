package actions

import (
	"errors"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/systems"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/api"
)

// HandleChoice применяет выбор игрока через движок переходов.
func HandleChoice(ctx handlers.Context, p api.ChoicePayload) (handlers.Result, error) {
	if ctx.Scene == nil {
		return handlers.Result{}, errors.New("no active game, send NEWGAME first")
	}

	res, err := systems.ApplyChoice(ctx.Store, ctx.Graph, ctx.Scene, p.Key)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrChoiceNotFound):
			return handlers.Result{Msg: "Этот путь сейчас закрыт.", MsgType: "ERROR"}, nil
		case errors.Is(err, domain.ErrUnknownScene), errors.Is(err, domain.ErrUnknownAct):
			// Эффекты уже применены, позиция не сдвинулась. Дефект контента -
			// игроку сообщаем мягко, в лог уже написано жестко.
			return handlers.Result{Msg: "Дорога впереди обрывается.", MsgType: "ERROR"}, nil
		default:
			return handlers.Result{}, err
		}
	}

	return handlers.Result{ActChanged: res.ActChanged}, nil
}
