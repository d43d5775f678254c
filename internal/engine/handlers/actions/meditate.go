package actions

import (
	"errors"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/systems"
)

// HandleMeditate применяет эффекты медитации текущей сцены.
func HandleMeditate(ctx handlers.Context) (handlers.Result, error) {
	if ctx.Scene == nil {
		return handlers.Result{}, errors.New("no active game, send NEWGAME first")
	}

	if !systems.Meditate(ctx.Store, ctx.Scene) {
		return handlers.Result{Msg: "Это место не располагает к медитации.", MsgType: "ERROR"}, nil
	}

	msg := "Дыхание выравнивается. Что-то внутри становится яснее."
	if ctx.Scene.Meditation.Text != "" {
		msg = ctx.Scene.Meditation.Text
	}
	return handlers.Result{Msg: msg, MsgType: "STORY"}, nil
}
