package entity

// User представляет зарегистрированного пользователя
type User struct {
	ID        int
	Firstname string
	Lastname  string
	// Password содержит bcrypt-хеш, исходный пароль не хранится
	Password string
}
