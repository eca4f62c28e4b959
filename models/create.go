package models

import "github.com/shopspring/decimal"

// CreateTransaction — тело запроса на создание и обновление транзакции.
// user_id сюда не входит: владелец всегда берётся из токена.
type CreateTransaction struct {
	CategoryID  *int             `json:"category_id"`
	Description string           `json:"description"`
	Amount      *decimal.Decimal `json:"amount"`
	Date        string           `json:"date"`
}

type CreateUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateCategory — тело запроса на создание и обновление категории.
type CreateCategory struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Type        string `json:"type"`
}
