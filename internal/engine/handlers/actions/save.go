package actions

import (
	"errors"
	"fmt"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/api"
)

// HandleSave пишет снимок состояния сессии в именованный слот.
func HandleSave(ctx handlers.Context, p api.SlotPayload) (handlers.Result, error) {
	if ctx.Persister == nil {
		return handlers.Result{}, errors.New("persistence is disabled")
	}

	if err := ctx.Persister.SaveSlot(ctx.Ctx, p.Slot, ctx.Store); err != nil {
		return handlers.Result{}, fmt.Errorf("save failed: %w", err)
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("Сохранено в слот «%s».", p.Slot),
		MsgType: "INFO",
	}, nil
}
