package db

import (
	"database/sql"

	"github.com/akarpov/fintrack/models"
)

func (s *Storage) CreateCategory(c *models.Category) error {
	return s.DB.QueryRow(
		"INSERT INTO categories (name, description, type) VALUES ($1, $2, $3) RETURNING id",
		c.Name, nullString(c.Description), nullString(c.Type),
	).Scan(&c.ID)
}

func (s *Storage) GetCategories() ([]models.Category, error) {
	rows, err := s.DB.Query("SELECT id, name, description, type FROM categories ORDER BY name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories = []models.Category{}
	for rows.Next() {
		var c models.Category
		var description, ctype sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &description, &ctype); err != nil {
			return nil, err
		}
		c.Description = description.String
		c.Type = ctype.String
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Storage) GetCategory(id int) (*models.Category, error) {
	var c models.Category
	var description, ctype sql.NullString
	err := s.DB.QueryRow(
		"SELECT id, name, description, type FROM categories WHERE id = $1",
		id,
	).Scan(&c.ID, &c.Name, &description, &ctype)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	c.Description = description.String
	c.Type = ctype.String
	return &c, nil
}

func (s *Storage) UpdateCategory(c *models.Category) (bool, error) {
	res, err := s.DB.Exec(
		"UPDATE categories SET name = $1, description = $2, type = $3 WHERE id = $4",
		c.Name, nullString(c.Description), nullString(c.Type), c.ID,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

func (s *Storage) DeleteCategory(id int) (bool, error) {
	res, err := s.DB.Exec("DELETE FROM categories WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}
