package engine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска движка. Все значения читаются из
// окружения; .env подхватывается в main до парсинга.
type Config struct {
	// Port - HTTP порт сервера.
	Port string `env:"SS_PORT" envDefault:"8080"`

	// SaveDBPath - путь к файлу SQLite со слотами сохранений.
	SaveDBPath string `env:"SS_SAVE_DB" envDefault:"data/saves.db"`

	// JournalDir - каталог для бинарных журналов прохождений.
	JournalDir string `env:"SS_JOURNAL_DIR" envDefault:"data/journals"`

	// AutosaveDebounce - пауза тишины перед автосохранением. Каждая мутация
	// перевзводит таймер; переход между актами пишется немедленно.
	AutosaveDebounce time.Duration `env:"SS_AUTOSAVE_DEBOUNCE" envDefault:"3s"`
}

// NewConfig читает конфиг из переменных окружения.
func NewConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
