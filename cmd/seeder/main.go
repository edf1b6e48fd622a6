package main

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/auth"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/config"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
	domainErrors "github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/errors"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/repository/postgres"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/storage"
	"github.com/lnu-2025-pmi32-wpf/Klava/internal/usecase"
)

// seedUser описывает демонстрационного пользователя
type seedUser struct {
	firstname string
	lastname  string
	password  string
}

var seedUsers = []seedUser{
	{"Olena", "Kovalenko", "olena123"},
	{"Taras", "Shevchuk", "taras123"},
	{"Iryna", "Bondar", "iryna123"},
	{"Andrii", "Melnyk", "andrii123"},
}

// Заполняет базу демонстрационными данными через те же usecases, что и сервер.
// Повторный запуск не создает дубликатов: уже существующие записи пропускаются.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.GetDSN())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}

	userRepo := postgres.NewUserRepository(pool)
	teamRepo := postgres.NewTeamRepository(pool)
	memberRepo := postgres.NewMemberRepository(pool)
	subjectRepo := postgres.NewSubjectRepository(pool)
	taskRepo := postgres.NewTaskRepository(pool)
	submissionRepo := postgres.NewSubmissionRepository(pool)
	fileRepo := postgres.NewSubjectFileRepository(pool)
	txManager := postgres.NewTransactionManager(pool)

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	fileStorage, err := storage.NewLocalFileStorage(cfg.FileStoragePath, rnd, time.Now)
	if err != nil {
		log.Fatalf("Failed to init file storage: %v", err)
	}

	hasher := auth.NewBcryptHasher(0)
	authUseCase := usecase.NewAuthUseCase(userRepo, hasher)
	teamUseCase := usecase.NewTeamUseCase(teamRepo, memberRepo, subjectRepo, fileRepo, txManager, fileStorage, rnd)
	subjectUseCase := usecase.NewSubjectUseCase(subjectRepo, fileRepo, fileStorage)
	taskUseCase := usecase.NewTaskUseCase(taskRepo, subjectRepo)
	submissionUseCase := usecase.NewSubmissionUseCase(submissionRepo, taskRepo, time.Now)

	users := registerUsers(ctx, authUseCase)
	if len(users) == 0 {
		log.Fatal("No users available for seeding")
	}

	owner := users[0]
	team := ensureTeam(ctx, teamUseCase, owner)

	for _, user := range users[1:] {
		_, err := teamUseCase.JoinTeam(ctx, user.ID, team.Code)
		if err != nil && !errors.Is(err, domainErrors.ErrAlreadyExists) {
			log.Fatalf("Failed to join team: %v", err)
		}
	}

	seedSubjects(ctx, subjectUseCase, taskUseCase, submissionUseCase, team, users)

	log.Printf("Seeding finished: team %q, code %s, %d users", team.Name, team.Code, len(users))
}

// registerUsers регистрирует демонстрационных пользователей.
// Уже зарегистрированные получаются через вход.
func registerUsers(ctx context.Context, authUseCase *usecase.AuthUseCase) []*entity.User {
	var users []*entity.User

	for _, seed := range seedUsers {
		user, err := authUseCase.Register(ctx, seed.firstname, seed.lastname, seed.password)
		if err != nil {
			if !errors.Is(err, domainErrors.ErrAlreadyExists) {
				log.Fatalf("Failed to register user %s %s: %v", seed.firstname, seed.lastname, err)
			}

			user, err = authUseCase.Login(ctx, seed.firstname, seed.lastname, seed.password)
			if err != nil {
				log.Fatalf("Failed to login seeded user %s %s: %v", seed.firstname, seed.lastname, err)
			}
		}

		users = append(users, user)
	}

	return users
}

// ensureTeam создает команду владельца или возвращает уже созданную
func ensureTeam(ctx context.Context, teamUseCase *usecase.TeamUseCase, owner *entity.User) *entity.Team {
	const teamName = "PMI-32"

	teams, err := teamUseCase.GetUserTeams(ctx, owner.ID)
	if err != nil {
		log.Fatalf("Failed to list owner teams: %v", err)
	}

	for _, team := range teams {
		if team.Name == teamName {
			return team
		}
	}

	team, err := teamUseCase.CreateTeam(ctx, teamName, owner.ID)
	if err != nil {
		log.Fatalf("Failed to create team: %v", err)
	}

	return team
}

// seedSubjects создает предметы с заданиями и отмечает часть заданий сданными
func seedSubjects(
	ctx context.Context,
	subjectUseCase *usecase.SubjectUseCase,
	taskUseCase *usecase.TaskUseCase,
	submissionUseCase *usecase.SubmissionUseCase,
	team *entity.Team,
	users []*entity.User,
) {
	existing, err := subjectUseCase.GetTeamSubjects(ctx, team.ID)
	if err != nil {
		log.Fatalf("Failed to list team subjects: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Subjects already seeded, skipping")
		return
	}

	info := "Лекції по вівторках, лабораторні по п'ятницях"
	mathAnalysis, err := subjectUseCase.CreateSubject(ctx, team.ID, "Математичний аналіз", &info, entity.SubjectExam)
	if err != nil {
		log.Fatalf("Failed to create subject: %v", err)
	}

	programming, err := subjectUseCase.CreateSubject(ctx, team.ID, "Програмування", nil, entity.SubjectTest)
	if err != nil {
		log.Fatalf("Failed to create subject: %v", err)
	}

	deadline := time.Now().AddDate(0, 0, 14)
	lab1, err := taskUseCase.CreateTask(ctx, programming.ID, "Лабораторна 1", nil, &deadline)
	if err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	if _, err := taskUseCase.CreateTask(ctx, mathAnalysis.ID, "Колоквіум", nil, nil); err != nil {
		log.Fatalf("Failed to create task: %v", err)
	}

	// Первый студент уже сдал первую лабораторную
	if len(users) > 1 {
		if _, err := submissionUseCase.ToggleStatus(ctx, lab1.ID, users[1].ID); err != nil {
			log.Fatalf("Failed to toggle submission: %v", err)
		}
	}
}
