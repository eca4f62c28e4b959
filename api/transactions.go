package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/akarpov/fintrack/models"
)

// parseTransactionFilter разбирает query-параметры списка. Пустые параметры
// не накладывают фильтров, неизвестные sort/direction сводятся к значениям
// по умолчанию в Normalize.
func parseTransactionFilter(c *gin.Context) (*models.TransactionFilter, map[string]string) {
	errs := map[string]string{}

	filter := &models.TransactionFilter{
		Search:    c.Query("search"),
		Sort:      c.DefaultQuery("sort", models.DefaultSort),
		Direction: c.DefaultQuery("direction", models.DefaultDirection),
	}

	if s := c.Query("date_from"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			errs["date_from"] = "date_from must be a valid date in YYYY-MM-DD format"
		} else {
			filter.DateFrom = &t
		}
	}
	if s := c.Query("date_to"); s != "" {
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			errs["date_to"] = "date_to must be a valid date in YYYY-MM-DD format"
		} else {
			filter.DateTo = &t
		}
	}

	filter.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	filter.PerPage, _ = strconv.Atoi(c.DefaultQuery("per_page", strconv.Itoa(models.DefaultPerPage)))
	filter.Normalize()

	if len(errs) > 0 {
		return nil, errs
	}
	return filter, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

// GetTransactions godoc
// @Summary List transactions
// @Description Filtered, sorted and paginated list of transactions with their user and category.
// @Tags transactions
// @Produce json
// @Param search query string false "Substring match over description or category name"
// @Param date_from query string false "Inclusive lower bound, YYYY-MM-DD"
// @Param date_to query string false "Inclusive upper bound, YYYY-MM-DD"
// @Param sort query string false "Sort column: date, description or amount" default(date)
// @Param direction query string false "asc or desc" default(desc)
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Page size" default(10)
// @Security ApiKeyAuth
// @Success 200 {object} models.GetTransactionsResponse
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	filter, errs := parseTransactionFilter(c)
	if errs != nil {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
		return
	}

	transactions, total, err := h.storage.ListTransactions(filter)
	if err != nil {
		serverError(c, err, "failed to list transactions")
		return
	}

	lastPage := int((total + int64(filter.PerPage) - 1) / int64(filter.PerPage))
	if lastPage == 0 {
		lastPage = 1
	}

	c.JSON(http.StatusOK, models.GetTransactionsResponse{
		Transactions: transactions,
		Meta: models.PaginationMeta{
			Total:    total,
			Page:     filter.Page,
			PerPage:  filter.PerPage,
			LastPage: lastPage,
		},
		Filters: models.AppliedFilters{
			Search:    filter.Search,
			DateFrom:  formatDate(filter.DateFrom),
			DateTo:    formatDate(filter.DateTo),
			Sort:      filter.Sort,
			Direction: filter.Direction,
		},
	})
}

// checkCategoryExists дополняет карту ошибок, если указанная категория
// не существует.
func (h *Handler) checkCategoryExists(c *gin.Context, categoryID *int, errs map[string]string) bool {
	if categoryID == nil {
		return true
	}
	category, err := h.storage.GetCategory(*categoryID)
	if err != nil {
		serverError(c, err, "failed to check category")
		return false
	}
	if category == nil {
		errs["category_id"] = "category does not exist"
	}
	return true
}

// CreateTransaction godoc
// @Summary Create a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param input body models.CreateTransaction true "Transaction fields"
// @Security ApiKeyAuth
// @Success 201 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions [post]
func (h *Handler) CreateTransaction(c *gin.Context) {
	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	date, errs := validateTransaction(&req)
	if !h.checkCategoryExists(c, req.CategoryID, errs) {
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
		return
	}

	transaction := models.Transaction{
		UserID:      currentUserID(c), // всегда из токена, а не из тела запроса
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      *req.Amount,
		Date:        date,
	}
	if err := h.storage.CreateTransaction(&transaction); err != nil {
		serverError(c, err, "failed to create transaction")
		return
	}

	created, err := h.storage.GetTransaction(transaction.ID)
	if err != nil || created == nil {
		serverError(c, err, "failed to load created transaction")
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetTransaction godoc
// @Summary Get a transaction by id
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/{id} [get]
func (h *Handler) GetTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	transaction, err := h.storage.GetTransaction(id)
	if err != nil {
		serverError(c, err, "failed to get transaction")
		return
	}
	if transaction == nil {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

// UpdateTransaction godoc
// @Summary Update a transaction
// @Description Full replacement of category_id, description, amount and date. user_id never changes.
// @Tags transactions
// @Accept json
// @Produce json
// @Param id path int true "Transaction ID"
// @Param input body models.CreateTransaction true "Transaction fields"
// @Security ApiKeyAuth
// @Success 200 {object} models.Transaction
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 422 {object} models.ValidationErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/{id} [put]
func (h *Handler) UpdateTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req models.CreateTransaction
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	date, errs := validateTransaction(&req)
	if !h.checkCategoryExists(c, req.CategoryID, errs) {
		return
	}
	if len(errs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, models.ValidationErrorResponse{Errors: errs})
		return
	}

	transaction := models.Transaction{
		ID:          id,
		CategoryID:  req.CategoryID,
		Description: req.Description,
		Amount:      *req.Amount,
		Date:        date,
	}
	found, err := h.storage.UpdateTransaction(&transaction)
	if err != nil {
		serverError(c, err, "failed to update transaction")
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
		return
	}

	updated, err := h.storage.GetTransaction(id)
	if err != nil || updated == nil {
		serverError(c, err, "failed to load updated transaction")
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Produce json
// @Param id path int true "Transaction ID"
// @Security ApiKeyAuth
// @Success 200 {object} models.MessageResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Failure 500 {object} models.ErrorResponse
// @Router /transactions/{id} [delete]
func (h *Handler) DeleteTransaction(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	found, err := h.storage.DeleteTransaction(id)
	if err != nil {
		serverError(c, err, "failed to delete transaction")
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "transaction deleted"})
}
