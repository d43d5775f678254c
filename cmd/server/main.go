package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/content"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/engine"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/infrastructure/storage"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/server"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/internal/version"
	"github.com/sumanthudupi585-coder/SAMSAGA-sub001/pkg/logger"
)

func init() {
	// .env опционален: в контейнере конфиг приходит из окружения
	_ = godotenv.Load()
	logger.Init()
}

func main() {
	logger.Log.Info("Starting Samsara Saga...")
	logger.Log.Info(version.String())

	// 1. Конфигурация из окружения
	cfg, err := engine.NewConfig()
	if err != nil {
		logger.Log.Fatal("Config error: ", err)
	}

	// 2. Контент: битые данные сцен валят процесс ДО первого игрока
	library, err := content.Load()
	if err != nil {
		logger.Log.Fatal("Content error: ", err)
	}

	// 3. Хранилища
	if err := os.MkdirAll(filepath.Dir(cfg.SaveDBPath), 0755); err != nil {
		logger.Log.Fatal("Save dir error: ", err)
	}
	saves, err := storage.NewSaveStore(cfg.SaveDBPath)
	if err != nil {
		logger.Log.Fatal("Save store error: ", err)
	}
	defer saves.Close()

	journals := storage.NewJournalService(cfg.JournalDir)

	// 4. Инициализация ядра
	gameService := engine.NewService(cfg, library, saves, journals)

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	// 5. Запуск сервера
	srv := server.New(gameService, cfg.Port)

	go func() {
		if err := srv.Run(); err != nil {
			logger.Log.Fatal("Server start error: ", err)
		}
	}()

	<-stop
	logger.Log.Info("Shutting down...")

	// Дописываем автосохранения и журналы живых сессий
	gameService.Shutdown()

	logger.Log.Info("Done.")
}
