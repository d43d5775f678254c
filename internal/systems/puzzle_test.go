package systems

import (
	"errors"
	"testing"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

func TestSubmitSolutionCorrect(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	store.SetPosition(domain.Position{Act: 1, SceneID: "TEMPLE_DOOR"})
	scene, _ := graph.Scene(1, "TEMPLE_DOOR")

	res, err := SubmitSolution(store, graph, scene, "moksha")
	if err != nil {
		t.Fatalf("SubmitSolution() failed: %v", err)
	}
	if !res.Solved {
		t.Error("Solved = false, want true")
	}
	if store.Pos.SceneID != "TEMPLE_INNER" {
		t.Errorf("SceneID = %q, want TEMPLE_INNER", store.Pos.SceneID)
	}
	if got := store.Player.Progression.PuzzlesSolved; got != 1 {
		t.Errorf("puzzlesSolved = %d, want 1", got)
	}
}

func TestSubmitSolutionComparisonPolicy(t *testing.T) {
	// Нормализация ввода: регистр и краевые пробелы не считаются
	tests := []struct {
		submitted string
		want      bool
	}{
		{"moksha", true},
		{"Moksha", true},
		{"MOKSHA", true},
		{"  moksha  ", true},
		{"\tMoksha\n", true},
		{"mok sha", false},
		{"mokshaa", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.submitted, func(t *testing.T) {
			graph := testGraph(t)
			store := freshStore(t)
			store.SetPosition(domain.Position{Act: 1, SceneID: "TEMPLE_DOOR"})
			scene, _ := graph.Scene(1, "TEMPLE_DOOR")

			res, err := SubmitSolution(store, graph, scene, tt.submitted)
			if err != nil {
				t.Fatalf("SubmitSolution() failed: %v", err)
			}
			if res.Solved != tt.want {
				t.Errorf("Solved = %v for %q, want %v", res.Solved, tt.submitted, tt.want)
			}
		})
	}
}

func TestSubmitSolutionWrongMovesToFailure(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	store.SetPosition(domain.Position{Act: 1, SceneID: "TEMPLE_DOOR"})
	scene, _ := graph.Scene(1, "TEMPLE_DOOR")

	res, err := SubmitSolution(store, graph, scene, "samsara")
	if err != nil {
		t.Fatalf("wrong answer is not an error, got: %v", err)
	}
	if res.Solved {
		t.Error("Solved = true for wrong answer")
	}
	if store.Pos.SceneID != "TEMPLE_REBUKE" {
		t.Errorf("SceneID = %q, want TEMPLE_REBUKE", store.Pos.SceneID)
	}
	if got := store.Player.Progression.PuzzlesSolved; got != 0 {
		t.Errorf("puzzlesSolved = %d after miss, want 0", got)
	}
}

func TestSubmitSolutionWrongNoFailureSceneStays(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	store.SetPosition(domain.Position{Act: 1, SceneID: "SILENT_DOOR"})
	scene, _ := graph.Scene(1, "SILENT_DOOR")

	res, err := SubmitSolution(store, graph, scene, "aum")
	if err != nil {
		t.Fatalf("SubmitSolution() failed: %v", err)
	}
	if res.Moved {
		t.Error("Moved = true without declared failure scene")
	}
	if store.Pos.SceneID != "SILENT_DOOR" {
		t.Errorf("SceneID = %q, want SILENT_DOOR (stay in place)", store.Pos.SceneID)
	}
}

func TestSubmitSolutionNoPuzzle(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "RIVER_VIEW")

	_, err := SubmitSolution(store, graph, scene, "anything")
	if !errors.Is(err, domain.ErrNoPuzzleActive) {
		t.Errorf("err = %v, want ErrNoPuzzleActive", err)
	}
}

func TestMeditateAppliesEffects(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	store.SetPosition(domain.Position{Act: 1, SceneID: "GHAT_RITUAL_FOCUS"})
	scene, _ := graph.Scene(1, "GHAT_RITUAL_FOCUS")

	if !Meditate(store, scene) {
		t.Fatal("Meditate() = false on scene with meditation")
	}
	if got := store.Attribute("spiritual_insight"); got != 1 {
		t.Errorf("spiritual_insight = %v, want 1", got)
	}
	if got := store.Player.Karma; got != 1 {
		t.Errorf("karma = %v, want 1", got)
	}
	// Медитация никогда не двигает позицию
	if store.Pos.SceneID != "GHAT_RITUAL_FOCUS" {
		t.Errorf("SceneID = %q, meditation must not move the player", store.Pos.SceneID)
	}
}

func TestMeditateUnavailable(t *testing.T) {
	graph := testGraph(t)
	store := freshStore(t)
	scene, _ := graph.Scene(1, "RIVER_VIEW")

	if Meditate(store, scene) {
		t.Error("Meditate() = true on scene without meditation")
	}
	if Meditate(store, nil) {
		t.Error("Meditate(nil scene) = true")
	}
}
