package actions

import "github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"

func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     "Колесо Сансары ждет. Отправьте NEWGAME, чтобы начать путь.",
		MsgType: "INFO",
	}, nil
}
