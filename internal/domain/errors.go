package domain

import "errors"

// Типизированные ошибки движка. Все они НЕ фатальны для сессии:
// вызывающий код решает, что показать игроку, и продолжает работу.
var (
	// ErrChoiceNotFound - ключ выбора не найден среди доступных сейчас
	// (устаревший UI, двойной сабмит, выбор стал недоступен между рендером
	// и сабмитом). Никогда не подменяется "первым попавшимся" выбором.
	ErrChoiceNotFound = errors.New("choice not found among available")

	// ErrUnknownScene - nextScene не существует в графе текущего акта.
	// Позиция не меняется; уже примененные эффекты НЕ откатываются.
	ErrUnknownScene = errors.New("unknown scene in current act")

	// ErrUnknownAct - nextAct не загружен. Позиция не меняется.
	ErrUnknownAct = errors.New("unknown act")

	// ErrNoPuzzleActive - решение отправлено на сцену без головоломки.
	ErrNoPuzzleActive = errors.New("no puzzle active on current scene")

	// ErrContentUnavailable - акт вообще не загрузился. Единственное
	// невосстановимое условие: без контента играть не во что.
	ErrContentUnavailable = errors.New("act content unavailable")

	// ErrUnknownArchetype - NEWGAME с накшатрой, которой нет в таблице.
	ErrUnknownArchetype = errors.New("unknown archetype")
)
