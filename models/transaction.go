package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Transaction struct {
	ID          int             `json:"id"`
	UserID      int             `json:"user_id"`
	CategoryID  *int            `json:"category_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`

	User     *UserSummary     `json:"user,omitempty"`
	Category *CategorySummary `json:"category,omitempty"`
}
