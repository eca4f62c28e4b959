package db

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/akarpov/fintrack/models"
)

// Колонки и соединения для чтения транзакции вместе с пользователем
// и категорией одним запросом.
const transactionColumns = `
	t.id, t.user_id, t.category_id, t.description, t.amount, t.date,
	u.id, u.username, c.id, c.name, c.type`

const transactionJoins = `
	FROM transactions t
	JOIN users u ON u.id = t.user_id
	LEFT JOIN categories c ON c.id = t.category_id`

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row scannable) (*models.Transaction, error) {
	var t models.Transaction
	var user models.UserSummary
	var categoryID, catID sql.NullInt64
	var catName, catType sql.NullString

	err := row.Scan(
		&t.ID, &t.UserID, &categoryID, &t.Description, &t.Amount, &t.Date,
		&user.ID, &user.Username, &catID, &catName, &catType,
	)
	if err != nil {
		return nil, err
	}

	if categoryID.Valid {
		id := int(categoryID.Int64)
		t.CategoryID = &id
	}
	t.User = &user
	if catID.Valid {
		t.Category = &models.CategorySummary{
			ID:   int(catID.Int64),
			Name: catName.String,
			Type: catType.String,
		}
	}
	return &t, nil
}

func (s *Storage) CreateTransaction(t *models.Transaction) error {
	return s.DB.QueryRow(
		"INSERT INTO transactions (user_id, category_id, description, amount, date) VALUES ($1, $2, $3, $4, $5) RETURNING id",
		t.UserID, nullInt(t.CategoryID), t.Description, t.Amount, t.Date,
	).Scan(&t.ID)
}

func (s *Storage) GetTransaction(id int) (*models.Transaction, error) {
	row := s.DB.QueryRow("SELECT"+transactionColumns+transactionJoins+" WHERE t.id = $1", id)
	t, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTransaction перезаписывает редактируемые поля записи.
// user_id не меняется никогда.
func (s *Storage) UpdateTransaction(t *models.Transaction) (bool, error) {
	res, err := s.DB.Exec(
		"UPDATE transactions SET category_id = $1, description = $2, amount = $3, date = $4 WHERE id = $5",
		nullInt(t.CategoryID), t.Description, t.Amount, t.Date, t.ID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) DeleteTransaction(id int) (bool, error) {
	res, err := s.DB.Exec("DELETE FROM transactions WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// ListTransactions возвращает страницу транзакций по фильтру и общее
// количество строк, подходящих под фильтр. Фильтр должен быть нормализован.
func (s *Storage) ListTransactions(f *models.TransactionFilter) ([]models.Transaction, int64, error) {
	var conditions []string
	var args []interface{}

	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		p := fmt.Sprintf("$%d", len(args))
		conditions = append(conditions, "(t.description ILIKE "+p+" OR c.name ILIKE "+p+")")
	}
	if f.DateFrom != nil {
		args = append(args, *f.DateFrom)
		conditions = append(conditions, fmt.Sprintf("t.date >= $%d", len(args)))
	}
	if f.DateTo != nil {
		args = append(args, *f.DateTo)
		conditions = append(conditions, fmt.Sprintf("t.date <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	if err := s.DB.QueryRow("SELECT COUNT(*)"+transactionJoins+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	// f.Sort прошёл через Normalize, так что здесь только одна из
	// разрешённых колонок.
	direction := "DESC"
	if f.Direction == "asc" {
		direction = "ASC"
	}
	orderBy := fmt.Sprintf(" ORDER BY t.%s %s, t.id %s", f.Sort, direction, direction)

	args = append(args, f.PerPage, f.Offset())
	query := "SELECT" + transactionColumns + transactionJoins + where + orderBy +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.DB.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var transactions = []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, total, rows.Err()
}
