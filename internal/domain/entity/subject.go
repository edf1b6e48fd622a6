package entity

// Subject представляет учебный предмет команды
type Subject struct {
	ID          int
	TeamID      int
	Title       string
	SubjectInfo *string
	Status      SubjectStatus
	// Tasks заполняется при чтении предмета вместе с заданиями
	Tasks []*Task
}
