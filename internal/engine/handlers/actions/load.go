package actions

import (
	"errors"
	"fmt"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine/handlers"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/infrastructure/storage"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/api"
)

// HandleLoad восстанавливает сессию из слота. Текущий стор подменяется
// ТОЛЬКО после полной успешной декодировки: битое сохранение не трогает
// живую игру.
func HandleLoad(ctx handlers.Context, p api.SlotPayload) (handlers.Result, error) {
	if ctx.Persister == nil {
		return handlers.Result{}, errors.New("persistence is disabled")
	}

	restored, err := ctx.Persister.LoadSlot(ctx.Ctx, p.Slot)
	if err != nil {
		if errors.Is(err, storage.ErrSlotNotFound) {
			return handlers.Result{Msg: fmt.Sprintf("Слот «%s» пуст.", p.Slot), MsgType: "ERROR"}, nil
		}
		return handlers.Result{}, fmt.Errorf("load failed: %w", err)
	}

	// Позиция из сохранения должна существовать в текущем контенте
	if restored.Pos.SceneID != "" {
		if _, ok := ctx.Graph.Scene(restored.Pos.Act, restored.Pos.SceneID); !ok {
			return handlers.Result{}, fmt.Errorf("save points to unknown scene %q in act %d",
				restored.Pos.SceneID, restored.Pos.Act)
		}
	}

	ctx.ReplaceStore(restored)
	return handlers.Result{
		Msg:     fmt.Sprintf("Загружено из слота «%s».", p.Slot),
		MsgType: "INFO",
	}, nil
}
