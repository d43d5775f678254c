package domain

import "testing"

func TestParseAction(t *testing.T) {
	cases := []struct {
		in   string
		want ActionType
	}{
		{"INIT", ActionInit},
		{"init", ActionInit},
		{"Choice", ActionChoice},
		{"PUZZLE", ActionPuzzle},
		{"MEDITATE", ActionMeditate},
		{"NEWGAME", ActionNewGame},
		{"SAVE", ActionSave},
		{"LOAD", ActionLoad},
		{"FIREBALL", ActionUnknown},
		{"", ActionUnknown},
	}
	for _, tc := range cases {
		if got := ParseAction(tc.in); got != tc.want {
			t.Errorf("ParseAction(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestActionTypeString(t *testing.T) {
	if ActionChoice.String() != "CHOICE" {
		t.Errorf("got %s, want CHOICE", ActionChoice.String())
	}
	if ActionType(200).String() != "UNKNOWN" {
		t.Errorf("unmapped action should stringify to UNKNOWN")
	}
}

func TestLookupArchetype(t *testing.T) {
	a, ok := LookupArchetype("Ashwini")
	if !ok {
		t.Fatal("Ashwini should be a known archetype")
	}
	if a.Gana != GanaDeva {
		t.Errorf("Ashwini gana: got %s, want %s", a.Gana, GanaDeva)
	}
	if len(a.Attributes) == 0 {
		t.Error("archetype should carry starting attribute bonuses")
	}

	if _, ok := LookupArchetype("Nonexistent"); ok {
		t.Error("unknown archetype should not resolve")
	}
}

func TestEffectsIsZero(t *testing.T) {
	var e *Effects
	if !e.IsZero() {
		t.Error("nil effects should be zero")
	}
	if !(&Effects{}).IsZero() {
		t.Error("empty effects should be zero")
	}
	if (&Effects{Karma: 1}).IsZero() {
		t.Error("karma delta should make effects non-zero")
	}
	if (&Effects{AddItems: []string{"Clay Lamp"}}).IsZero() {
		t.Error("addItems should make effects non-zero")
	}
}
