package systems

import (
	"errors"
	"testing"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

func TestApplyChoiceFocusRitual(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "JOURNEY_START")

	// Выбор по авторскому ID, не по чеканному ключу
	res, err := ApplyChoice(store, graph, scene, "focus_ritual")
	if err != nil {
		t.Fatalf("ApplyChoice() failed: %v", err)
	}

	if got := store.Attribute("spiritual_insight"); got != 1 {
		t.Errorf("spiritual_insight = %v, want 1", got)
	}
	wantPos := domain.Position{Act: 1, SceneID: "GHAT_RITUAL_FOCUS"}
	if store.Pos != wantPos {
		t.Errorf("Position = %+v, want %+v", store.Pos, wantPos)
	}
	if got := store.Player.Progression.ChoicesMade; got != 1 {
		t.Errorf("choicesMade = %d, want 1", got)
	}
	if !res.Moved || res.ActChanged {
		t.Errorf("result Moved=%v ActChanged=%v, want true/false", res.Moved, res.ActChanged)
	}
}

func TestApplyChoiceByMintedKey(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "JOURNEY_START")

	if _, err := ApplyChoice(store, graph, scene, "JOURNEY_START#0"); err != nil {
		t.Fatalf("ApplyChoice() by minted key failed: %v", err)
	}
	if store.Pos.SceneID != "GHAT_RITUAL_FOCUS" {
		t.Errorf("SceneID = %q, want GHAT_RITUAL_FOCUS", store.Pos.SceneID)
	}
}

func TestApplyChoiceGatedChoiceRejected(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "JOURNEY_START")

	// Без жемчужины offer_pearl не резолвится - защита от устаревшего UI
	_, err := ApplyChoice(store, graph, scene, "offer_pearl")
	if !errors.Is(err, domain.ErrChoiceNotFound) {
		t.Fatalf("err = %v, want ErrChoiceNotFound", err)
	}
	if got := store.Player.Progression.ChoicesMade; got != 0 {
		t.Errorf("choicesMade = %d after rejected choice, want 0", got)
	}
}

func TestApplyChoiceOfferPearl(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	store.AddInventoryItem("Pearl Earring")
	scene, _ := graph.Scene(1, "JOURNEY_START")

	res, err := ApplyChoice(store, graph, scene, "offer_pearl")
	if err != nil {
		t.Fatalf("ApplyChoice() failed: %v", err)
	}

	if store.HasInventoryItem("Pearl Earring") {
		t.Error("Pearl Earring should be removed from inventory")
	}
	if v, ok := store.World["boatman_pleased"]; !ok || v != true {
		t.Errorf("worldState boatman_pleased = %v, want true", v)
	}
	if res.Pos.SceneID != "RIVER_VIEW" {
		t.Errorf("SceneID = %q, want RIVER_VIEW", res.Pos.SceneID)
	}
}

func TestApplyChoiceActTransition(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "JOURNEY_START")

	res, err := ApplyChoice(store, graph, scene, "cross_the_river")
	if err != nil {
		t.Fatalf("ApplyChoice() failed: %v", err)
	}

	wantPos := domain.Position{Act: 2, SceneID: "FOREST_EDGE"}
	if store.Pos != wantPos {
		t.Errorf("Position = %+v, want %+v", store.Pos, wantPos)
	}
	if !res.ActChanged {
		t.Error("ActChanged = false, want true for act transition")
	}
	if got := store.Player.Progression.QuestsCompleted; got != 1 {
		t.Errorf("questsCompleted = %d, want 1", got)
	}
}

func TestApplyChoiceUnknownAct(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "JOURNEY_START")

	res, err := ApplyChoice(store, graph, scene, "sail_beyond")
	if !errors.Is(err, domain.ErrUnknownAct) {
		t.Fatalf("err = %v, want ErrUnknownAct", err)
	}

	// Позиция не тронута, но счетчик выбора уже инкрементирован
	wantPos := domain.Position{Act: 1, SceneID: "JOURNEY_START"}
	if store.Pos != wantPos {
		t.Errorf("Position = %+v after nav failure, want %+v", store.Pos, wantPos)
	}
	if got := store.Player.Progression.ChoicesMade; got != 1 {
		t.Errorf("choicesMade = %d, want 1 even on nav failure", got)
	}
	if res == nil || res.Moved {
		t.Errorf("result = %+v, want non-nil with Moved=false", res)
	}
}

func TestApplyChoiceUnknownSceneKeepsEffects(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "JOURNEY_START")

	_, err := ApplyChoice(store, graph, scene, "broken_door")
	if !errors.Is(err, domain.ErrUnknownScene) {
		t.Fatalf("err = %v, want ErrUnknownScene", err)
	}

	// Эффекты свершились в момент выбора и не откатываются
	if got := store.Attribute("perception"); got != 1 {
		t.Errorf("perception = %v after nav failure, want 1 (effects are not rolled back)", got)
	}
	if store.Pos.SceneID != "JOURNEY_START" {
		t.Errorf("SceneID = %q, want JOURNEY_START", store.Pos.SceneID)
	}
}

func TestApplyChoiceInteraction(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "JOURNEY_START")

	res, err := ApplyChoice(store, graph, scene, "JOURNEY_START#i0")
	if err != nil {
		t.Fatalf("ApplyChoice() on interaction failed: %v", err)
	}
	if res.Choice.Source != domain.SourceInteraction {
		t.Errorf("Source = %v, want SourceInteraction", res.Choice.Source)
	}
	if store.Pos.SceneID != "RIVER_VIEW" {
		t.Errorf("SceneID = %q, want RIVER_VIEW", store.Pos.SceneID)
	}
}

func TestApplyEffectsOrderRemoveAfterAdd(t *testing.T) {
	store := freshStore(t)

	// Один и тот же предмет добавляется и удаляется в одной нагрузке:
	// добавление идет раньше удаления, итог - предмета нет
	ApplyEffects(store, &domain.Effects{
		AddItems:    []string{"Lotus"},
		RemoveItems: []string{"Lotus"},
	})
	if store.HasInventoryItem("Lotus") {
		t.Error("Lotus should be gone: remove is applied after add")
	}
}

func TestApplyEffectsAllAttributes(t *testing.T) {
	store := freshStore(t)
	store.ApplyAttributeDelta("wisdom", 1)
	store.ApplyAttributeDelta("vitality", 2)

	ApplyEffects(store, &domain.Effects{
		Attributes: map[string]float64{domain.AttributeAll: 1},
	})

	if got := store.Attribute("wisdom"); got != 2 {
		t.Errorf("wisdom = %v, want 2", got)
	}
	if got := store.Attribute("vitality"); got != 3 {
		t.Errorf("vitality = %v, want 3", got)
	}
}

func TestApplyEffectsNilIsNoop(t *testing.T) {
	store := freshStore(t)
	before := store.Snapshot()

	ApplyEffects(store, nil)

	after := store.Snapshot()
	if before.Player.Karma != after.Player.Karma || len(before.Player.Attributes) != len(after.Player.Attributes) {
		t.Error("ApplyEffects(nil) should not mutate the store")
	}
}
