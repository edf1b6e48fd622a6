package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/handler"
	customMiddleware "github.com/lnu-2025-pmi32-wpf/Klava/internal/transport/http/middleware"
)

// RouterConfig содержит конфигурацию для роутера
type RouterConfig struct {
	AuthHandler       *handler.AuthHandler
	TeamHandler       *handler.TeamHandler
	MemberHandler     *handler.MemberHandler
	SubjectHandler    *handler.SubjectHandler
	TaskHandler       *handler.TaskHandler
	SubmissionHandler *handler.SubmissionHandler
	FileHandler       *handler.FileHandler
	HealthHandler     *handler.HealthHandler
	MaxUploadSize     int64
}

// NewRouter создает и настраивает роутер
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	// Health check
	r.Get("/health", cfg.HealthHandler.Check)

	// Auth
	r.Post("/auth/register", cfg.AuthHandler.Register)
	r.Post("/auth/login", cfg.AuthHandler.Login)

	// Teams
	r.Post("/teams", cfg.TeamHandler.CreateTeam)
	r.Post("/teams/join", cfg.TeamHandler.JoinTeam)
	r.Get("/teams/code/{code}", cfg.TeamHandler.GetTeamByCode)
	r.Get("/teams/{teamID}", cfg.TeamHandler.GetTeam)
	r.Delete("/teams/{teamID}", cfg.TeamHandler.DeleteTeam)
	r.Get("/users/{userID}/teams", cfg.TeamHandler.GetUserTeams)

	// Members
	r.Get("/teams/{teamID}/members", cfg.MemberHandler.GetTeamMembers)
	r.Put("/teams/{teamID}/members/role", cfg.MemberHandler.UpdateMemberRole)
	r.Delete("/teams/{teamID}/members/{userID}", cfg.MemberHandler.RemoveMember)

	// Subjects
	r.Post("/teams/{teamID}/subjects", cfg.SubjectHandler.CreateSubject)
	r.Get("/teams/{teamID}/subjects", cfg.SubjectHandler.GetTeamSubjects)
	r.Get("/subjects/{subjectID}", cfg.SubjectHandler.GetSubject)
	r.Put("/subjects/{subjectID}", cfg.SubjectHandler.UpdateSubject)
	r.Delete("/subjects/{subjectID}", cfg.SubjectHandler.DeleteSubject)

	// Tasks
	r.Post("/subjects/{subjectID}/tasks", cfg.TaskHandler.CreateTask)
	r.Get("/subjects/{subjectID}/tasks", cfg.TaskHandler.GetSubjectTasks)
	r.Get("/tasks/{taskID}", cfg.TaskHandler.GetTask)
	r.Put("/tasks/{taskID}", cfg.TaskHandler.UpdateTask)
	r.Delete("/tasks/{taskID}", cfg.TaskHandler.DeleteTask)

	// Submissions
	r.Post("/tasks/{taskID}/toggle", cfg.SubmissionHandler.ToggleStatus)
	r.Get("/tasks/{taskID}/status", cfg.SubmissionHandler.GetUserTaskStatus)
	r.Get("/teams/{teamID}/tasks", cfg.SubmissionHandler.GetTeamTasks)

	// Files
	r.With(customMiddleware.MaxBodySize(cfg.MaxUploadSize)).Post("/subjects/{subjectID}/files", cfg.FileHandler.UploadFile)
	r.Get("/subjects/{subjectID}/files", cfg.FileHandler.GetSubjectFiles)
	r.Get("/files/{fileID}", cfg.FileHandler.DownloadFile)
	r.Delete("/files/{fileID}", cfg.FileHandler.DeleteFile)

	return r
}
