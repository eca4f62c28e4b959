package models

import (
	"strings"
	"time"
)

const (
	DefaultSort      = "date"
	DefaultDirection = "desc"
	DefaultPerPage   = 10
	MaxPerPage       = 100
)

// Разрешённые колонки сортировки. Всё остальное сводится к date,
// чтобы значение из запроса никогда не попадало в ORDER BY как есть.
var allowedSortColumns = map[string]bool{
	"date":        true,
	"description": true,
	"amount":      true,
}

// TransactionFilter описывает параметры списка транзакций: поиск,
// диапазон дат, сортировку и пагинацию. Пустые поля фильтров не применяются.
type TransactionFilter struct {
	Search    string
	DateFrom  *time.Time
	DateTo    *time.Time
	Sort      string
	Direction string
	Page      int
	PerPage   int
}

// Normalize приводит фильтр к безопасным значениям: сортировка только по
// колонкам из списка, направление asc/desc, страница и размер в пределах.
func (f *TransactionFilter) Normalize() {
	f.Sort = strings.ToLower(f.Sort)
	if !allowedSortColumns[f.Sort] {
		f.Sort = DefaultSort
	}

	f.Direction = strings.ToLower(f.Direction)
	if f.Direction != "asc" && f.Direction != "desc" {
		f.Direction = DefaultDirection
	}

	if f.Page <= 0 {
		f.Page = 1
	}
	if f.PerPage <= 0 {
		f.PerPage = DefaultPerPage
	}
	if f.PerPage > MaxPerPage {
		f.PerPage = MaxPerPage
	}
}

func (f *TransactionFilter) Offset() int {
	return (f.Page - 1) * f.PerPage
}
