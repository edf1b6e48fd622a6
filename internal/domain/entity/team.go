package entity

// TeamCodeLength задает длину кода приглашения
const TeamCodeLength = 8

// TeamCodeAlphabet задает допустимые символы кода приглашения
const TeamCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Team представляет учебную команду
type Team struct {
	ID   int
	Name string
	// Code — глобально уникальный код приглашения из TeamCodeLength символов
	Code string
	// OwnerID равен nil, если создатель команды удален
	OwnerID *int
}

// TeamMember представляет членство пользователя в команде.
// Пара (TeamID, UserID) уникальна.
type TeamMember struct {
	TeamID int
	UserID int
	Role   TeamMemberRole
}

// TeamMemberInfo представляет членство вместе с отображаемыми полями пользователя
type TeamMemberInfo struct {
	TeamID    int
	UserID    int
	Role      TeamMemberRole
	Firstname string
	Lastname  string
}
