package state

import (
	"testing"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

func TestInitialize_Idempotent(t *testing.T) {
	s := NewStore()
	if err := s.Initialize("Ashwini"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}

	// Наигрываем мусор
	s.AddInventoryItem("Pearl Earring")
	s.SetFlag("met_the_pilgrims", true)
	s.AdjustKarma(5)
	s.MergeWorldState(map[string]any{"curse_broken": true})
	s.SetPosition(domain.Position{Act: 2, SceneID: "FOREST_EDGE"})

	// Повторная инициализация обязана затереть ВСЁ
	if err := s.Initialize("Bharani"); err != nil {
		t.Fatalf("re-Initialize failed: %v", err)
	}

	if len(s.Player.Inventory) != 0 {
		t.Errorf("inventory not reset: %v", s.Player.Inventory)
	}
	if _, ok := s.ReadFlag("met_the_pilgrims"); ok {
		t.Error("flags not reset")
	}
	if s.Player.Karma != 0 {
		t.Errorf("karma not reset: %v", s.Player.Karma)
	}
	if len(s.World) != 0 {
		t.Errorf("world state not reset: %v", s.World)
	}
	if s.Pos != (domain.Position{}) {
		t.Errorf("position not reset: %+v", s.Pos)
	}
	if s.Profile.Nakshatra != "Bharani" {
		t.Errorf("profile: got %s, want Bharani", s.Profile.Nakshatra)
	}

	// Стартовые бонусы нового архетипа, без остатков старого
	if s.Attribute("willpower") != 2 {
		t.Errorf("Bharani willpower: got %v, want 2", s.Attribute("willpower"))
	}
	if s.Attribute("vitality") != 0 {
		t.Errorf("Ashwini residue detected: vitality = %v", s.Attribute("vitality"))
	}
}

func TestInitialize_UnknownArchetype(t *testing.T) {
	s := NewStore()
	if err := s.Initialize("Andromeda"); err != domain.ErrUnknownArchetype {
		t.Errorf("got %v, want ErrUnknownArchetype", err)
	}
}

func TestApplyAttributeDelta(t *testing.T) {
	s := NewStore()

	// Создание с нуля
	s.ApplyAttributeDelta("wisdom", 2)
	if s.Attribute("wisdom") != 2 {
		t.Errorf("wisdom: got %v, want 2", s.Attribute("wisdom"))
	}

	// Прибавление
	s.ApplyAttributeDelta("wisdom", 3)
	if s.Attribute("wisdom") != 5 {
		t.Errorf("wisdom: got %v, want 5", s.Attribute("wisdom"))
	}

	// Отсутствующий атрибут читается как 0
	if s.Attribute("compassion") != 0 {
		t.Errorf("missing attribute should read as 0")
	}
}

func TestApplyAttributeDelta_All(t *testing.T) {
	s := NewStore()
	s.ApplyAttributeDelta("wisdom", 1)
	s.ApplyAttributeDelta("compassion", 2)

	s.ApplyAttributeDelta(domain.AttributeAll, 3)

	if s.Attribute("wisdom") != 4 {
		t.Errorf("wisdom after 'all': got %v, want 4", s.Attribute("wisdom"))
	}
	if s.Attribute("compassion") != 5 {
		t.Errorf("compassion after 'all': got %v, want 5", s.Attribute("compassion"))
	}
	// "all" не создает новых атрибутов
	if len(s.Player.Attributes) != 2 {
		t.Errorf("'all' must not mint attributes, have %d", len(s.Player.Attributes))
	}
}

func TestInventory(t *testing.T) {
	s := NewStore()

	// Дубликаты допустимы
	s.AddInventoryItem("Clay Lamp")
	s.AddInventoryItem("Clay Lamp")
	if len(s.Player.Inventory) != 2 {
		t.Errorf("duplicates should be allowed, got %v", s.Player.Inventory)
	}

	// Удаление убирает только первое вхождение
	s.RemoveInventoryItem("Clay Lamp")
	if len(s.Player.Inventory) != 1 {
		t.Errorf("only first occurrence should be removed, got %v", s.Player.Inventory)
	}

	// Удаление отсутствующего - no-op
	s.RemoveInventoryItem("Rusty Sword")
	if len(s.Player.Inventory) != 1 {
		t.Error("removing absent item must be a no-op")
	}

	if !s.HasInventoryItem("Clay Lamp") {
		t.Error("HasInventoryItem should find the lamp")
	}
}

func TestSpecialItems_Dedup(t *testing.T) {
	s := NewStore()
	item := domain.SpecialItem{ID: "rudraksha", Name: "Рудракша"}

	if !s.AddSpecialItem(item) {
		t.Error("first add should succeed")
	}
	if s.AddSpecialItem(item) {
		t.Error("second add of the same ID must be a no-op")
	}
	if len(s.Player.SpecialItems) != 1 {
		t.Errorf("want exactly one special item, got %d", len(s.Player.SpecialItems))
	}
}

func TestKarmaAndDharma(t *testing.T) {
	s := NewStore()

	if got := s.AdjustKarma(2); got != 2 {
		t.Errorf("karma: got %v, want 2", got)
	}
	if got := s.AdjustKarma(-5); got != -3 {
		t.Errorf("karma: got %v, want -3", got)
	}

	if !s.AdjustDharmicProfile(domain.AspectDharma, 1) {
		t.Error("dharma is a recognized aspect")
	}
	if s.Player.DharmicProfile[domain.AspectDharma] != 1 {
		t.Errorf("dharma: got %v, want 1", s.Player.DharmicProfile[domain.AspectDharma])
	}

	// Неизвестный аспект - тихий no-op, возвращает false
	if s.AdjustDharmicProfile("chaos", 10) {
		t.Error("unknown aspect must report false")
	}
	if _, ok := s.Player.DharmicProfile["chaos"]; ok {
		t.Error("unknown aspect must not be created")
	}
}

func TestMergeWorldState_ShallowOverwrite(t *testing.T) {
	s := NewStore()
	s.MergeWorldState(map[string]any{"curse_broken": false, "river_level": 3.0})
	s.MergeWorldState(map[string]any{"curse_broken": true})

	if s.World["curse_broken"] != true {
		t.Error("later write must overwrite earlier one")
	}
	if s.World["river_level"] != 3.0 {
		t.Error("untouched keys must survive the merge")
	}
}

func TestProgression(t *testing.T) {
	s := NewStore()
	if !s.AddProgression(domain.ProgressChoices, 1) {
		t.Error("choicesMade is a known counter")
	}
	if !s.AddProgression(domain.ProgressPuzzles, 2) {
		t.Error("puzzlesSolved is a known counter")
	}
	if s.AddProgression("trophiesWon", 1) {
		t.Error("unknown counter must report false")
	}
	if s.Player.Progression.ChoicesMade != 1 || s.Player.Progression.PuzzlesSolved != 2 {
		t.Errorf("progression mismatch: %+v", s.Player.Progression)
	}
}

func TestSnapshot_Independence(t *testing.T) {
	s := NewStore()
	if err := s.Initialize("Ashwini"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	s.AddInventoryItem("Pearl Earring")
	s.MergeWorldState(map[string]any{"nested": map[string]any{"depth": 1.0}})

	snap := s.Snapshot()

	// Мутация снапшота не трогает живой стор
	snap.Player.Attributes["vitality"] = 99
	snap.Player.Inventory[0] = "Forged Earring"
	snap.World["nested"].(map[string]any)["depth"] = 42.0

	if s.Attribute("vitality") != 2 {
		t.Errorf("live store mutated through snapshot: vitality = %v", s.Attribute("vitality"))
	}
	if s.Player.Inventory[0] != "Pearl Earring" {
		t.Error("live inventory mutated through snapshot")
	}
	if s.World["nested"].(map[string]any)["depth"] != 1.0 {
		t.Error("live nested world state mutated through snapshot")
	}
}

func TestSnapshot_Lookup(t *testing.T) {
	s := NewStore()
	if err := s.Initialize("Pushya"); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	s.AddInventoryItem("Clay Lamp")
	s.SetFlag("angered_priest", true)
	s.MergeWorldState(map[string]any{"boatman_name": "Vishram"})
	s.AdjustKarma(4)

	snap := s.Snapshot()

	cases := []struct {
		path []string
		want any
	}{
		{[]string{"playerState", "karma"}, 4.0},
		{[]string{"playerState", "attributes", "compassion"}, 2.0},
		{[]string{"playerState", "attributes", "never_touched"}, 0.0},
		{[]string{"playerState", "flags", "angered_priest"}, true},
		{[]string{"playerProfile", "nakshatra"}, "Pushya"},
		{[]string{"playerProfile", "gana"}, domain.GanaDeva},
		{[]string{"worldState", "boatman_name"}, "Vishram"},
	}
	for _, tc := range cases {
		got, ok := snap.Lookup(tc.path)
		if !ok {
			t.Errorf("Lookup(%v) not found", tc.path)
			continue
		}
		if got != tc.want {
			t.Errorf("Lookup(%v) = %v, want %v", tc.path, got, tc.want)
		}
	}

	// Неопределенные пути
	for _, path := range [][]string{
		{"worldState", "no_such_key"},
		{"playerState", "flags", "no_such_flag"},
		{"spellbook"},
		{},
	} {
		if _, ok := snap.Lookup(path); ok {
			t.Errorf("Lookup(%v) should not resolve", path)
		}
	}

	// Инвентарь отдается списком
	inv, ok := snap.Lookup([]string{"playerState", "inventory"})
	if !ok {
		t.Fatal("inventory path should resolve")
	}
	if list, ok := inv.([]string); !ok || len(list) != 1 || list[0] != "Clay Lamp" {
		t.Errorf("inventory lookup = %v", inv)
	}
}
