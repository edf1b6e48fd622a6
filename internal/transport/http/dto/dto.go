package dto

import (
	"time"

	"github.com/lnu-2025-pmi32-wpf/Klava/internal/domain/entity"
)

// ErrorResponse представляет ответ с ошибкой
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail содержит детали ошибки
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RegisterRequest запрос на регистрацию
type RegisterRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Password  string `json:"password"`
}

// LoginRequest запрос на вход
type LoginRequest struct {
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Password  string `json:"password"`
}

// UserDTO представляет пользователя без хеша пароля
type UserDTO struct {
	ID        int    `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// ToUserDTO преобразует пользователя в DTO
func ToUserDTO(user *entity.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Firstname: user.Firstname,
		Lastname:  user.Lastname,
	}
}

// CreateTeamRequest запрос на создание команды
type CreateTeamRequest struct {
	Name    string `json:"name"`
	OwnerID int    `json:"owner_id"`
}

// JoinTeamRequest запрос на вступление в команду
type JoinTeamRequest struct {
	UserID int    `json:"user_id"`
	Code   string `json:"code"`
}

// TeamDTO представляет команду
type TeamDTO struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Code    string `json:"code"`
	OwnerID *int   `json:"owner_id,omitempty"`
}

// ToTeamDTO преобразует команду в DTO
func ToTeamDTO(team *entity.Team) TeamDTO {
	return TeamDTO{
		ID:      team.ID,
		Name:    team.Name,
		Code:    team.Code,
		OwnerID: team.OwnerID,
	}
}

// ToTeamDTOs преобразует список команд в DTO
func ToTeamDTOs(teams []*entity.Team) []TeamDTO {
	dtos := make([]TeamDTO, 0, len(teams))
	for _, team := range teams {
		dtos = append(dtos, ToTeamDTO(team))
	}
	return dtos
}

// TeamMemberDTO представляет участника команды
type TeamMemberDTO struct {
	TeamID    int    `json:"team_id"`
	UserID    int    `json:"user_id"`
	Role      string `json:"role"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// ToTeamMemberDTOs преобразует список участников в DTO
func ToTeamMemberDTOs(members []*entity.TeamMemberInfo) []TeamMemberDTO {
	dtos := make([]TeamMemberDTO, 0, len(members))
	for _, member := range members {
		dtos = append(dtos, TeamMemberDTO{
			TeamID:    member.TeamID,
			UserID:    member.UserID,
			Role:      member.Role.String(),
			Firstname: member.Firstname,
			Lastname:  member.Lastname,
		})
	}
	return dtos
}

// UpdateMemberRoleRequest запрос на смену роли участника
type UpdateMemberRoleRequest struct {
	UserID int    `json:"user_id"`
	Role   string `json:"role"`
}

// CreateSubjectRequest запрос на создание предмета
type CreateSubjectRequest struct {
	Title       string  `json:"title"`
	SubjectInfo *string `json:"subject_info,omitempty"`
	Status      string  `json:"status"`
}

// UpdateSubjectRequest запрос на обновление предмета
type UpdateSubjectRequest struct {
	Title       string  `json:"title"`
	SubjectInfo *string `json:"subject_info,omitempty"`
	Status      string  `json:"status"`
}

// SubjectDTO представляет предмет
type SubjectDTO struct {
	ID          int       `json:"id"`
	TeamID      int       `json:"team_id"`
	Title       string    `json:"title"`
	SubjectInfo *string   `json:"subject_info,omitempty"`
	Status      string    `json:"status"`
	Tasks       []TaskDTO `json:"tasks"`
}

// ToSubjectDTO преобразует предмет в DTO
func ToSubjectDTO(subject *entity.Subject) SubjectDTO {
	return SubjectDTO{
		ID:          subject.ID,
		TeamID:      subject.TeamID,
		Title:       subject.Title,
		SubjectInfo: subject.SubjectInfo,
		Status:      subject.Status.String(),
		Tasks:       ToTaskDTOs(subject.Tasks),
	}
}

// ToSubjectDTOs преобразует список предметов в DTO
func ToSubjectDTOs(subjects []*entity.Subject) []SubjectDTO {
	dtos := make([]SubjectDTO, 0, len(subjects))
	for _, subject := range subjects {
		dtos = append(dtos, ToSubjectDTO(subject))
	}
	return dtos
}

// CreateTaskRequest запрос на создание задания
type CreateTaskRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// UpdateTaskRequest запрос на обновление задания
type UpdateTaskRequest struct {
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// TaskDTO представляет задание
type TaskDTO struct {
	ID          int        `json:"id"`
	SubjectID   int        `json:"subject_id"`
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

// ToTaskDTO преобразует задание в DTO
func ToTaskDTO(task *entity.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		SubjectID:   task.SubjectID,
		Name:        task.Name,
		Description: task.Description,
		Deadline:    task.Deadline,
	}
}

// ToTaskDTOs преобразует список заданий в DTO
func ToTaskDTOs(tasks []*entity.Task) []TaskDTO {
	dtos := make([]TaskDTO, 0, len(tasks))
	for _, task := range tasks {
		dtos = append(dtos, ToTaskDTO(task))
	}
	return dtos
}

// ToggleStatusRequest запрос на переключение отметки о сдаче
type ToggleStatusRequest struct {
	UserID int `json:"user_id"`
}

// SubmissionDTO представляет отметку о сдаче
type SubmissionDTO struct {
	ID          int       `json:"id"`
	TaskID      int       `json:"task_id"`
	UserID      int       `json:"user_id"`
	Status      string    `json:"status"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// ToSubmissionDTO преобразует отметку о сдаче в DTO
func ToSubmissionDTO(submission *entity.Submission) SubmissionDTO {
	return SubmissionDTO{
		ID:          submission.ID,
		TaskID:      submission.TaskID,
		UserID:      submission.UserID,
		Status:      submission.Status.String(),
		SubmittedAt: submission.SubmittedAt,
	}
}

// TaskStatusDTO представляет текущий статус сдачи задания пользователем
type TaskStatusDTO struct {
	TaskID int     `json:"task_id"`
	UserID int     `json:"user_id"`
	Status *string `json:"status"`
}

// ToTaskStatusDTO преобразует статус сдачи в DTO, nil без отметки
func ToTaskStatusDTO(taskID, userID int, status *entity.SubmissionStatus) TaskStatusDTO {
	dto := TaskStatusDTO{
		TaskID: taskID,
		UserID: userID,
	}
	if status != nil {
		s := status.String()
		dto.Status = &s
	}
	return dto
}

// TaskWithStatusDTO представляет задание со статусом сдачи пользователя
type TaskWithStatusDTO struct {
	ID            int        `json:"id"`
	SubjectID     int        `json:"subject_id"`
	SubjectTitle  string     `json:"subject_title"`
	Name          string     `json:"name"`
	Description   *string    `json:"description,omitempty"`
	Deadline      *time.Time `json:"deadline,omitempty"`
	CurrentStatus *string    `json:"current_status,omitempty"`
	SubmittedAt   *time.Time `json:"submitted_at,omitempty"`
}

// ToTaskWithStatusDTOs преобразует список заданий со статусом в DTO
func ToTaskWithStatusDTOs(tasks []*entity.TaskWithStatus) []TaskWithStatusDTO {
	dtos := make([]TaskWithStatusDTO, 0, len(tasks))
	for _, task := range tasks {
		dto := TaskWithStatusDTO{
			ID:           task.ID,
			SubjectID:    task.SubjectID,
			SubjectTitle: task.SubjectTitle,
			Name:         task.Name,
			Description:  task.Description,
			Deadline:     task.Deadline,
			SubmittedAt:  task.SubmittedAt,
		}
		if task.CurrentStatus != nil {
			status := task.CurrentStatus.String()
			dto.CurrentStatus = &status
		}
		dtos = append(dtos, dto)
	}
	return dtos
}

// SubjectFileDTO представляет запись о файле предмета
type SubjectFileDTO struct {
	ID          int       `json:"id"`
	SubjectID   int       `json:"subject_id"`
	DisplayName string    `json:"display_name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// ToSubjectFileDTO преобразует запись о файле в DTO
func ToSubjectFileDTO(file *entity.SubjectFile) SubjectFileDTO {
	return SubjectFileDTO{
		ID:          file.ID,
		SubjectID:   file.SubjectID,
		DisplayName: file.DisplayName,
		ContentType: file.ContentType,
		Size:        file.Size,
		UploadedAt:  file.UploadedAt,
	}
}

// ToSubjectFileDTOs преобразует список записей о файлах в DTO
func ToSubjectFileDTOs(files []*entity.SubjectFile) []SubjectFileDTO {
	dtos := make([]SubjectFileDTO, 0, len(files))
	for _, file := range files {
		dtos = append(dtos, ToSubjectFileDTO(file))
	}
	return dtos
}
