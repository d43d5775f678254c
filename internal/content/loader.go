package content

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/condition"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/domain"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/logger"
)

//go:embed acts/*.json
var actsFS embed.FS

// Library - неизменяемый граф сцен всех актов. Собирается один раз при старте,
// после этого только читается; потокобезопасность достигается иммутабельностью.
type Library struct {
	acts map[int]*domain.Act
}

// Load парсит и валидирует встроенный контент. Ошибка здесь - ошибка
// деплоя: битые данные сцен не должны доживать до первого игрока,
// поэтому ВСЕ дефекты собираются и возвращаются разом, а не по одному.
func Load() (*Library, error) {
	return LoadFS(actsFS)
}

// LoadFS - как Load, но из произвольной файловой системы (для тестов).
func LoadFS(fsys fs.FS) (*Library, error) {
	files, err := fs.Glob(fsys, "acts/*.json")
	if err != nil {
		return nil, fmt.Errorf("glob acts: %w", err)
	}
	if len(files) == 0 {
		return nil, domain.ErrContentUnavailable
	}
	sort.Strings(files)

	lib := &Library{acts: make(map[int]*domain.Act, len(files))}
	var problems []error

	// 1. Парсинг и чеканка ключей - по одному акту на файл
	for _, name := range files {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		act, errs := parseAct(raw, name)
		problems = append(problems, errs...)
		if act == nil {
			continue
		}
		if _, dup := lib.acts[act.Number]; dup {
			problems = append(problems, fmt.Errorf("%s: duplicate act number %d", name, act.Number))
			continue
		}
		lib.acts[act.Number] = act
	}

	// 2. Перекрестная валидация ссылок - только когда все акты загружены
	for _, act := range lib.acts {
		problems = append(problems, lib.validateAct(act)...)
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}

	logger.Log.WithFields(logrus.Fields{
		"acts":   len(lib.acts),
		"scenes": lib.sceneCount(),
	}).Info("Content library loaded")
	return lib, nil
}

// Act возвращает акт по номеру.
func (l *Library) Act(number int) (*domain.Act, bool) {
	act, ok := l.acts[number]
	return act, ok
}

// Scene возвращает сцену по (акт, ID).
func (l *Library) Scene(act int, sceneID string) (*domain.Scene, bool) {
	a, ok := l.acts[act]
	if !ok {
		return nil, false
	}
	scene, ok := a.Scenes[sceneID]
	return scene, ok
}

// ActNumbers - отсортированные номера загруженных актов.
func (l *Library) ActNumbers() []int {
	nums := make([]int, 0, len(l.acts))
	for n := range l.acts {
		nums = append(nums, n)
	}
	sort.Ints(nums)
	return nums
}

// FirstAct - акт с наименьшим номером (точка входа новой игры).
func (l *Library) FirstAct() *domain.Act {
	nums := l.ActNumbers()
	if len(nums) == 0 {
		return nil
	}
	return l.acts[nums[0]]
}

func (l *Library) sceneCount() int {
	total := 0
	for _, act := range l.acts {
		total += len(act.Scenes)
	}
	return total
}

// rawAct - файловая форма акта: сцены лежат массивом, в рантайме - map.
type rawAct struct {
	Number int             `json:"act"`
	Title  string          `json:"title"`
	Entry  string          `json:"entry"`
	Scenes []*domain.Scene `json:"scenes"`
}

func parseAct(data []byte, name string) (*domain.Act, []error) {
	var raw rawAct
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, []error{fmt.Errorf("%s: parse: %w", name, err)}
	}

	var problems []error
	if raw.Number <= 0 {
		problems = append(problems, fmt.Errorf("%s: act number must be positive, got %d", name, raw.Number))
	}

	act := &domain.Act{
		Number: raw.Number,
		Title:  raw.Title,
		Entry:  raw.Entry,
		Scenes: make(map[string]*domain.Scene, len(raw.Scenes)),
	}

	for _, scene := range raw.Scenes {
		if scene.ID == "" {
			problems = append(problems, fmt.Errorf("%s: scene without id", name))
			continue
		}
		if _, dup := act.Scenes[scene.ID]; dup {
			problems = append(problems, fmt.Errorf("%s: duplicate scene %q", name, scene.ID))
			continue
		}
		problems = append(problems, mintScene(scene)...)
		act.Scenes[scene.ID] = scene
	}

	return act, problems
}

// mintScene чеканит уникальные ключи выборов и компилирует условия в AST.
// Авторский ID после этого - только человекочитаемая метка.
func mintScene(scene *domain.Scene) []error {
	var problems []error

	for i := range scene.Choices {
		ch := &scene.Choices[i]
		ch.Key = fmt.Sprintf("%s#%d", scene.ID, i)
		problems = append(problems, compileCondition(ch, scene.ID)...)
	}

	for arch, bonus := range scene.ArchetypeChoices {
		if _, ok := domain.LookupArchetype(arch); !ok {
			problems = append(problems, fmt.Errorf("scene %q: unknown archetype %q", scene.ID, arch))
		}
		for i := range bonus {
			ch := &bonus[i]
			ch.Key = fmt.Sprintf("%s#a%s#%d", scene.ID, arch, i)
			problems = append(problems, compileCondition(ch, scene.ID)...)
		}
	}

	return problems
}

func compileCondition(ch *domain.Choice, sceneID string) []error {
	if ch.Condition == "" {
		return nil
	}
	expr, err := condition.Parse(ch.Condition)
	if err != nil {
		return []error{fmt.Errorf("scene %q, choice %q: condition %q: %w", sceneID, ch.Key, ch.Condition, err)}
	}
	ch.Cond = expr
	return nil
}

// validateAct проверяет, что ни одна ссылка не ведет в никуда.
func (l *Library) validateAct(act *domain.Act) []error {
	var problems []error

	if _, ok := act.Scenes[act.Entry]; !ok {
		problems = append(problems, fmt.Errorf("act %d: entry scene %q not found", act.Number, act.Entry))
	}

	for _, scene := range act.Scenes {
		check := func(ch *domain.Choice) {
			if ch.NextAct > 0 {
				if _, ok := l.acts[ch.NextAct]; !ok {
					problems = append(problems, fmt.Errorf("act %d, scene %q, choice %q: nextAct %d not found",
						act.Number, scene.ID, ch.Key, ch.NextAct))
				}
				return
			}
			if ch.NextScene != "" {
				if _, ok := act.Scenes[ch.NextScene]; !ok {
					problems = append(problems, fmt.Errorf("act %d, scene %q, choice %q: nextScene %q not found",
						act.Number, scene.ID, ch.Key, ch.NextScene))
				}
			}
		}

		for i := range scene.Choices {
			check(&scene.Choices[i])
		}
		for _, bonus := range scene.ArchetypeChoices {
			for i := range bonus {
				check(&bonus[i])
			}
		}
		for i, in := range scene.Interactions {
			if in.NextScene == "" {
				continue
			}
			if _, ok := act.Scenes[in.NextScene]; !ok {
				problems = append(problems, fmt.Errorf("act %d, scene %q, interaction %d: nextScene %q not found",
					act.Number, scene.ID, i, in.NextScene))
			}
		}

		if pz := scene.Puzzle; pz != nil {
			if pz.Solution == "" {
				problems = append(problems, fmt.Errorf("act %d, scene %q: puzzle without solution", act.Number, scene.ID))
			}
			if _, ok := act.Scenes[pz.Success]; !ok {
				problems = append(problems, fmt.Errorf("act %d, scene %q: puzzle success %q not found", act.Number, scene.ID, pz.Success))
			}
			if pz.Failure != "" {
				if _, ok := act.Scenes[pz.Failure]; !ok {
					problems = append(problems, fmt.Errorf("act %d, scene %q: puzzle failure %q not found", act.Number, scene.ID, pz.Failure))
				}
			}
		}
	}

	return problems
}
