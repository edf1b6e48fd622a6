package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/auth"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/config"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository/postgres"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/storage"
	httpTransport "github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/handler"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Подключаемся к базе данных
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Проверяем подключение
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	log.Println("Successfully connected to database")

	// Применяем миграции
	if err := runMigrations(cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations applied successfully")

	// Инициализируем файловое хранилище
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	fileStorage, err := storage.NewLocalFileStorage(cfg.FileStoragePath, rnd, time.Now)
	if err != nil {
		log.Fatalf("Failed to init file storage: %v", err)
	}

	// Инициализируем репозитории
	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	subjectRepo := postgres.NewSubjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	submissionRepo := postgres.NewSubmissionRepository(pool)
	fileRepo := postgres.NewSubjectFileRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	// Инициализируем use cases
	hasher := auth.NewBcryptHasher(0)
	authUseCase := usecase.NewAuthUseCase(userRepo, hasher)
	teamUseCase := usecase.NewTeamUseCase(teamRepo, memberRepo, subjectRepo, fileRepo, txManager, fileStorage, rnd)
	memberUseCase := usecase.NewMemberUseCase(memberRepo)
	subjectUseCase := usecase.NewSubjectUseCase(subjectRepo, fileRepo, fileStorage)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, subjectRepo)
	submissionUseCase := usecase.NewSubmissionUseCase(submissionRepo, taskRepo, time.Now)
	fileUseCase := usecase.NewSubjectFileUseCase(fileRepo, subjectRepo, fileStorage, time.Now)

	// Инициализируем handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	teamHandler := handler.NewTeamHandler(teamUseCase)
	memberHandler := handler.NewMemberHandler(memberUseCase)
	subjectHandler := handler.NewSubjectHandler(subjectUseCase)
	taskHandler := handler.NewTaskHandler(taskUseCase)
	submissionHandler := handler.NewSubmissionHandler(submissionUseCase, taskUseCase)
	fileHandler := handler.NewFileHandler(fileUseCase)
	healthHandler := handler.NewHealthHandler(pool)

	// Создаем роутер
	router := httpTransport.NewRouter(httpTransport.RouterConfig{
		AuthHandler:       authHandler,
		TeamHandler:       teamHandler,
		MemberHandler:     memberHandler,
		SubjectHandler:    subjectHandler,
		TaskHandler:       taskHandler,
		SubmissionHandler: submissionHandler,
		FileHandler:       fileHandler,
		HealthHandler:     healthHandler,
		MaxUploadSize:     cfg.MaxUploadSize(),
	})

	// Создаем HTTP сервер
	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Запускаем сервер в отдельной горутине
	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// Применяем миграции базы данных
func runMigrations(dsn string) error {
	m, err := migrate.New(
		"file://migrations",
		dsn,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	return nil
}
