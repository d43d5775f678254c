package state

import (
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
)

// Snapshot - глубокая независимая копия {profile, playerState, worldState}
// для read-only инспекции резолвером выборов. Условие, вычисляемое по
// снапшоту, физически не может испортить живое состояние.
//
// Snapshot реализует condition.Source (метод Lookup).
type Snapshot struct {
	Profile domain.Profile
	Player  PlayerState
	World   map[string]any
	Pos     domain.Position
}

// Snapshot возвращает глубокую копию текущего состояния.
func (s *Store) Snapshot() *Snapshot {
	snap := &Snapshot{
		Profile: s.Profile,
		Player: PlayerState{
			Attributes:     copyFloatMap(s.Player.Attributes),
			Inventory:      append([]string(nil), s.Player.Inventory...),
			SpecialItems:   make(map[string]domain.SpecialItem, len(s.Player.SpecialItems)),
			Flags:          copyAnyMap(s.Player.Flags),
			Karma:          s.Player.Karma,
			DharmicProfile: copyFloatMap(s.Player.DharmicProfile),
			Progression:    s.Player.Progression,
		},
		World: copyAnyMap(s.World),
		Pos:   s.Pos,
	}
	snap.Profile.Gunas = copyFloatMap(s.Profile.Gunas)
	for id, item := range s.Player.SpecialItems {
		snap.Player.SpecialItems[id] = item
	}
	return snap
}

// Lookup резолвит dotted-path условия против снапшота.
// Корни: playerState, worldState, playerProfile.
func (sn *Snapshot) Lookup(path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	switch path[0] {
	case "playerState":
		return sn.lookupPlayer(path[1:])
	case "worldState":
		return lookupMap(sn.World, path[1:])
	case "playerProfile":
		return sn.lookupProfile(path[1:])
	}
	return nil, false
}

func (sn *Snapshot) lookupPlayer(path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}

	switch path[0] {
	case "attributes":
		if len(path) != 2 {
			return nil, false
		}
		// Отсутствующий атрибут читается как 0: пороги вида
		// attributes.wisdom >= 1 должны работать и на свежем сторе.
		return sn.Player.Attributes[path[1]], true

	case "flags":
		if len(path) != 2 {
			return nil, false
		}
		v, ok := sn.Player.Flags[path[1]]
		return v, ok

	case "inventory":
		if len(path) != 1 {
			return nil, false
		}
		return sn.Player.Inventory, true

	case "specialItems":
		if len(path) != 1 {
			return nil, false
		}
		ids := make([]string, 0, len(sn.Player.SpecialItems))
		for id := range sn.Player.SpecialItems {
			ids = append(ids, id)
		}
		return ids, true

	case "karma":
		if len(path) != 1 {
			return nil, false
		}
		return sn.Player.Karma, true

	case "dharmicProfile":
		if len(path) != 2 {
			return nil, false
		}
		v, ok := sn.Player.DharmicProfile[path[1]]
		return v, ok

	case "progression":
		if len(path) != 2 {
			return nil, false
		}
		switch path[1] {
		case "questsCompleted":
			return sn.Player.Progression.QuestsCompleted, true
		case "puzzlesSolved":
			return sn.Player.Progression.PuzzlesSolved, true
		case "choicesMade":
			return sn.Player.Progression.ChoicesMade, true
		}
		return nil, false
	}
	return nil, false
}

func (sn *Snapshot) lookupProfile(path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	switch path[0] {
	case "nakshatra":
		if len(path) != 1 {
			return nil, false
		}
		return sn.Profile.Nakshatra, true
	case "gana":
		if len(path) != 1 {
			return nil, false
		}
		return sn.Profile.Gana, true
	case "gunas":
		if len(path) != 2 {
			return nil, false
		}
		v, ok := sn.Profile.Gunas[path[1]]
		return v, ok
	}
	return nil, false
}

// lookupMap спускается по вложенным map[string]any (мировое состояние
// может хранить вложенные объекты из JSON).
func lookupMap(m map[string]any, path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	cur := any(m)
	for _, seg := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = obj[seg]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

func copyFloatMap(src map[string]float64) map[string]float64 {
	if src == nil {
		return nil
	}
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

// copyAnyMap копирует мапу рекурсивно для вложенных map[string]any и слайсов.
func copyAnyMap(src map[string]any) map[string]any {
	if src == nil {
		return nil
	}
	dst := make(map[string]any, len(src))
	for k, v := range src {
		dst[k] = copyAny(v)
	}
	return dst
}

func copyAny(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return copyAnyMap(t)
	case []any:
		cp := make([]any, len(t))
		for i, item := range t {
			cp[i] = copyAny(item)
		}
		return cp
	case []string:
		return append([]string(nil), t...)
	}
	return v
}
