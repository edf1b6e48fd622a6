package repository

import (
	"context"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, userID int) (*entity.User, error)
	GetByName(ctx context.Context, firstname, lastname string) (*entity.User, error)
	Exists(ctx context.Context, firstname, lastname string) (bool, error)
}

type TeamRepository interface {
	Create(ctx context.Context, team *entity.Team) error
	GetByID(ctx context.Context, teamID int) (*entity.Team, error)
	GetByCode(ctx context.Context, code string) (*entity.Team, error)
	GetByUser(ctx context.Context, userID int) ([]*entity.Team, error)
	Delete(ctx context.Context, teamID int) error
}

type MemberRepository interface {
	Create(ctx context.Context, member *entity.TeamMember) error
	Get(ctx context.Context, teamID, userID int) (*entity.TeamMember, error)
	GetByTeam(ctx context.Context, teamID int) ([]*entity.TeamMemberInfo, error)
	UpdateRole(ctx context.Context, teamID, userID int, role entity.TeamMemberRole) error
	Delete(ctx context.Context, teamID, userID int) error
}

type SubjectRepository interface {
	Create(ctx context.Context, subject *entity.Subject) error
	GetByID(ctx context.Context, subjectID int) (*entity.Subject, error)
	GetByTeam(ctx context.Context, teamID int) ([]*entity.Subject, error)
	Update(ctx context.Context, subject *entity.Subject) error
	Delete(ctx context.Context, subjectID int) error
}

type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, taskID int) (*entity.Task, error)
	GetBySubject(ctx context.Context, subjectID int) ([]*entity.Task, error)
	GetByTeam(ctx context.Context, teamID int) ([]*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, taskID int) error
}

type SubmissionRepository interface {
	Create(ctx context.Context, submission *entity.Submission) error
	Update(ctx context.Context, submission *entity.Submission) error
	Get(ctx context.Context, taskID, userID int) (*entity.Submission, error)
	GetTeamTasksWithStatus(ctx context.Context, teamID, userID int) ([]*entity.TaskWithStatus, error)
}

type SubjectFileRepository interface {
	Create(ctx context.Context, file *entity.SubjectFile) error
	GetByID(ctx context.Context, fileID int) (*entity.SubjectFile, error)
	GetBySubject(ctx context.Context, subjectID int) ([]*entity.SubjectFile, error)
	Delete(ctx context.Context, fileID int) error
}

type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
