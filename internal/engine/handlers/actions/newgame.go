package actions

import (
	"errors"
	"fmt"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/api"
)

// HandleNewGame сбрасывает состояние сессии и ставит курсор на вход первого
// акта. Повторный NEWGAME полностью затирает предыдущую игру.
func HandleNewGame(ctx handlers.Context, p api.NewGamePayload) (handlers.Result, error) {
	// Накшатра проверяется ДО сброса: неудачный NEWGAME не должен
	// затирать идущую игру
	if p.Nakshatra != "" {
		if _, ok := domain.LookupArchetype(p.Nakshatra); !ok {
			return handlers.Result{}, fmt.Errorf("unknown nakshatra %q", p.Nakshatra)
		}
	}

	if err := ctx.Store.Initialize(p.Nakshatra); err != nil {
		if errors.Is(err, domain.ErrUnknownArchetype) {
			return handlers.Result{}, fmt.Errorf("unknown nakshatra %q", p.Nakshatra)
		}
		return handlers.Result{}, err
	}

	ctx.Store.SetPosition(ctx.Start)

	msg := "Новое рождение. Путь начинается."
	if p.Nakshatra != "" {
		msg = fmt.Sprintf("Новое рождение под накшатрой %s. Путь начинается.", p.Nakshatra)
	}
	return handlers.Result{Msg: msg, MsgType: "STORY"}, nil
}
