package api

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/akarpov/fintrack/models"
)

const dateLayout = "2006-01-02"

// validateTransaction проверяет поля запроса и возвращает разобранную дату
// и карту ошибок по полям. Существование категории проверяется отдельно,
// потому что для этого нужна база.
func validateTransaction(req *models.CreateTransaction) (time.Time, map[string]string) {
	errs := map[string]string{}

	if strings.TrimSpace(req.Description) == "" {
		errs["description"] = "description is required"
	} else if utf8.RuneCountInString(req.Description) > 255 {
		errs["description"] = "description must be at most 255 characters"
	}

	if req.Amount == nil {
		errs["amount"] = "amount is required"
	} else if !req.Amount.GreaterThan(decimal.Zero) {
		errs["amount"] = "amount must be greater than 0"
	} else if req.Amount.Exponent() < -2 {
		errs["amount"] = "amount must have at most 2 decimal places"
	}

	var date time.Time
	if req.Date == "" {
		errs["date"] = "date is required"
	} else {
		parsed, err := time.Parse(dateLayout, req.Date)
		if err != nil {
			errs["date"] = "date must be a valid date in YYYY-MM-DD format"
		} else {
			date = parsed
		}
	}

	return date, errs
}

func validateCategory(req *models.CreateCategory) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.Name) == "" {
		errs["name"] = "name is required"
	} else if utf8.RuneCountInString(req.Name) > 255 {
		errs["name"] = "name must be at most 255 characters"
	}
	if utf8.RuneCountInString(req.Description) > 255 {
		errs["description"] = "description must be at most 255 characters"
	}
	if utf8.RuneCountInString(req.Type) > 32 {
		errs["type"] = "type must be at most 32 characters"
	}

	return errs
}
