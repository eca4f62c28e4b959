package models

type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
}

// UserSummary — краткая форма пользователя, встраиваемая в транзакцию.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
}
