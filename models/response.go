package models

type RegisterResponse struct {
	ID       int    `json:"id" example:"1"`
	Username string `json:"username" example:"john_doe"`
}

type LoginResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

type PaginationMeta struct {
	Total    int64 `json:"total" example:"42"`
	Page     int   `json:"page" example:"1"`
	PerPage  int   `json:"per_page" example:"10"`
	LastPage int   `json:"last_page" example:"5"`
}

// AppliedFilters — применённые фильтры списка, возвращаются клиенту
// как есть, чтобы он мог восстановить состояние формы.
type AppliedFilters struct {
	Search    string `json:"search" example:"groceries"`
	DateFrom  string `json:"date_from" example:"2024-01-01"`
	DateTo    string `json:"date_to" example:"2024-01-31"`
	Sort      string `json:"sort" example:"date"`
	Direction string `json:"direction" example:"desc"`
}

type GetTransactionsResponse struct {
	Transactions []Transaction  `json:"transactions"`
	Meta         PaginationMeta `json:"meta"`
	Filters      AppliedFilters `json:"filters"`
}

type MessageResponse struct {
	Message string `json:"message" example:"deleted"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"error"`
}

// ValidationErrorResponse — ошибки валидации по полям: имя поля -> сообщение.
type ValidationErrorResponse struct {
	Errors map[string]string `json:"errors"`
}
