package db

import (
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/akarpov/fintrack/models"
)

// setupTestDB инициализирует тестовую базу данных и очищает таблицы
// перед тестом. Без POSTGRES_TEST_URL тест пропускается.
func setupTestDB(t *testing.T) *Storage {
	_ = godotenv.Load("../.env")

	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL is not set")
	}

	store, err := NewStorage(connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Очищаем таблицы transactions, categories, users перед тестами
	_, err = store.DB.Exec("TRUNCATE TABLE transactions, categories, users RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}

	return store
}

func mustDate(t *testing.T, s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("Failed to parse date %q: %v", s, err)
	}
	return d
}

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// TestCreateAndGetUser тестирует создание пользователя и получение его по имени.
func TestCreateAndGetUser(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	if user.ID == 0 {
		t.Error("Expected user ID to be set, got 0")
	}
	// Проверяем, что пароль захеширован корректно
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")); err != nil {
		t.Error("Password hash does not match")
	}

	fetchedUser, err := store.GetUserByUsername("testuser")
	if err != nil {
		t.Fatalf("Failed to get user: %v", err)
	}
	if fetchedUser == nil || fetchedUser.ID != user.ID {
		t.Errorf("Expected user with ID %d, got %+v", user.ID, fetchedUser)
	}

	// Несуществующий пользователь -> nil, nil
	fetchedUser, err = store.GetUserByUsername("nonexistent")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fetchedUser != nil {
		t.Errorf("Expected nil user, got %+v", fetchedUser)
	}
}

// TestCategoryCRUD тестирует полный цикл категории.
func TestCategoryCRUD(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	category := models.Category{Name: "Groceries", Description: "Food shopping", Type: "expense"}
	if err := store.CreateCategory(&category); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	if category.ID == 0 {
		t.Error("Expected category ID to be set, got 0")
	}

	fetched, err := store.GetCategory(category.ID)
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if fetched == nil || fetched.Name != "Groceries" || fetched.Type != "expense" {
		t.Errorf("Expected category Groceries/expense, got %+v", fetched)
	}

	categories, err := store.GetCategories()
	if err != nil {
		t.Fatalf("Failed to list categories: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("Expected 1 category, got %d", len(categories))
	}

	category.Name = "Food"
	category.Description = ""
	found, err := store.UpdateCategory(&category)
	if err != nil {
		t.Fatalf("Failed to update category: %v", err)
	}
	if !found {
		t.Error("Expected update to find the category")
	}
	fetched, err = store.GetCategory(category.ID)
	if err != nil {
		t.Fatalf("Failed to get category: %v", err)
	}
	if fetched.Name != "Food" || fetched.Description != "" {
		t.Errorf("Expected updated category Food with empty description, got %+v", fetched)
	}

	found, err = store.DeleteCategory(category.ID)
	if err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}
	if !found {
		t.Error("Expected delete to find the category")
	}
	fetched, err = store.GetCategory(category.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fetched != nil {
		t.Errorf("Expected nil category after delete, got %+v", fetched)
	}

	// Update/Delete несуществующего id -> found=false
	if found, err = store.UpdateCategory(&category); err != nil || found {
		t.Errorf("Expected found=false, got found=%v err=%v", found, err)
	}
	if found, err = store.DeleteCategory(category.ID); err != nil || found {
		t.Errorf("Expected found=false, got found=%v err=%v", found, err)
	}
}

// TestTransactionCRUD тестирует создание, чтение, обновление и удаление
// транзакции вместе с подгрузкой пользователя и категории.
func TestTransactionCRUD(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	category := models.Category{Name: "Groceries", Type: "expense"}
	if err := store.CreateCategory(&category); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}

	tx := models.Transaction{
		UserID:      user.ID,
		CategoryID:  &category.ID,
		Description: "weekly shopping",
		Amount:      amount("100.50"),
		Date:        mustDate(t, "2024-01-15"),
	}
	if err := store.CreateTransaction(&tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}
	if tx.ID == 0 {
		t.Error("Expected transaction ID to be set, got 0")
	}

	fetched, err := store.GetTransaction(tx.ID)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if fetched == nil {
		t.Fatal("Expected transaction, got nil")
	}
	if !fetched.Amount.Equal(amount("100.50")) {
		t.Errorf("Expected amount 100.50, got %s", fetched.Amount)
	}
	if fetched.Date.Format("2006-01-02") != "2024-01-15" {
		t.Errorf("Expected date 2024-01-15, got %v", fetched.Date)
	}
	// Пользователь и категория подгружены одним запросом
	if fetched.User == nil || fetched.User.Username != "testuser" {
		t.Errorf("Expected embedded user testuser, got %+v", fetched.User)
	}
	if fetched.Category == nil || fetched.Category.Name != "Groceries" {
		t.Errorf("Expected embedded category Groceries, got %+v", fetched.Category)
	}

	// Транзакция без категории
	noCat := models.Transaction{
		UserID:      user.ID,
		Description: "cash withdrawal",
		Amount:      amount("50.00"),
		Date:        mustDate(t, "2024-01-16"),
	}
	if err := store.CreateTransaction(&noCat); err != nil {
		t.Fatalf("Failed to create transaction without category: %v", err)
	}
	fetched, err = store.GetTransaction(noCat.ID)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if fetched.CategoryID != nil || fetched.Category != nil {
		t.Errorf("Expected no category, got %+v", fetched.Category)
	}

	// Обновление меняет сумму, но не владельца
	tx.Amount = amount("200.00")
	tx.Description = "monthly shopping"
	found, err := store.UpdateTransaction(&tx)
	if err != nil {
		t.Fatalf("Failed to update transaction: %v", err)
	}
	if !found {
		t.Error("Expected update to find the transaction")
	}
	fetched, err = store.GetTransaction(tx.ID)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if !fetched.Amount.Equal(amount("200.00")) {
		t.Errorf("Expected amount 200.00, got %s", fetched.Amount)
	}
	if fetched.UserID != user.ID {
		t.Errorf("Expected user_id %d unchanged, got %d", user.ID, fetched.UserID)
	}

	// Удаление, после него Get возвращает nil
	found, err = store.DeleteTransaction(tx.ID)
	if err != nil {
		t.Fatalf("Failed to delete transaction: %v", err)
	}
	if !found {
		t.Error("Expected delete to find the transaction")
	}
	fetched, err = store.GetTransaction(tx.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if fetched != nil {
		t.Errorf("Expected nil transaction after delete, got %+v", fetched)
	}

	if found, err = store.DeleteTransaction(tx.ID); err != nil || found {
		t.Errorf("Expected found=false for repeated delete, got found=%v err=%v", found, err)
	}
}

// TestDeleteCategorySetsNull проверяет, что удаление категории обнуляет
// ссылки в транзакциях, а не удаляет их.
func TestDeleteCategorySetsNull(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()

	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	category := models.Category{Name: "Transport"}
	if err := store.CreateCategory(&category); err != nil {
		t.Fatalf("Failed to create category: %v", err)
	}
	tx := models.Transaction{
		UserID:      user.ID,
		CategoryID:  &category.ID,
		Description: "bus ticket",
		Amount:      amount("2.50"),
		Date:        mustDate(t, "2024-01-10"),
	}
	if err := store.CreateTransaction(&tx); err != nil {
		t.Fatalf("Failed to create transaction: %v", err)
	}

	if _, err := store.DeleteCategory(category.ID); err != nil {
		t.Fatalf("Failed to delete category: %v", err)
	}

	fetched, err := store.GetTransaction(tx.ID)
	if err != nil {
		t.Fatalf("Failed to get transaction: %v", err)
	}
	if fetched == nil {
		t.Fatal("Expected transaction to survive category delete")
	}
	if fetched.CategoryID != nil {
		t.Errorf("Expected category_id to be null, got %v", *fetched.CategoryID)
	}
}

func seedListFixtures(t *testing.T, store *Storage) {
	user, err := store.CreateUser("testuser", "password123")
	if err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}

	groceries := models.Category{Name: "Groceries", Type: "expense"}
	salary := models.Category{Name: "Salary", Type: "income"}
	for _, c := range []*models.Category{&groceries, &salary} {
		if err := store.CreateCategory(c); err != nil {
			t.Fatalf("Failed to create category: %v", err)
		}
	}

	fixtures := []models.Transaction{
		{UserID: user.ID, CategoryID: &groceries.ID, Description: "weekly shopping", Amount: amount("100.50"), Date: mustDate(t, "2024-01-05")},
		{UserID: user.ID, CategoryID: &groceries.ID, Description: "fruit market", Amount: amount("15.20"), Date: mustDate(t, "2024-01-20")},
		{UserID: user.ID, CategoryID: &salary.ID, Description: "january paycheck", Amount: amount("3000.00"), Date: mustDate(t, "2024-01-31")},
		{UserID: user.ID, Description: "cinema", Amount: amount("12.00"), Date: mustDate(t, "2024-02-03")},
		{UserID: user.ID, Description: "Groceries run", Amount: amount("42.00"), Date: mustDate(t, "2023-12-28")},
	}
	for i := range fixtures {
		if err := store.CreateTransaction(&fixtures[i]); err != nil {
			t.Fatalf("Failed to create transaction: %v", err)
		}
	}
}

func listFilter(modify func(*models.TransactionFilter)) *models.TransactionFilter {
	f := &models.TransactionFilter{}
	if modify != nil {
		modify(f)
	}
	f.Normalize()
	return f
}

// TestListTransactionsSearch тестирует поиск по описанию и имени категории.
func TestListTransactionsSearch(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	seedListFixtures(t, store)

	// "groceries" находит и описания, и транзакции категории Groceries,
	// без учёта регистра
	transactions, total, err := store.ListTransactions(listFilter(func(f *models.TransactionFilter) {
		f.Search = "groceries"
	}))
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	for _, tx := range transactions {
		byDescription := tx.Description == "Groceries run"
		byCategory := tx.Category != nil && tx.Category.Name == "Groceries"
		if !byDescription && !byCategory {
			t.Errorf("Unexpected transaction in search results: %+v", tx)
		}
	}

	// Пустой поиск не накладывает фильтра
	_, total, err = store.ListTransactions(listFilter(nil))
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
}

// TestListTransactionsDateRange тестирует включающие границы диапазона дат.
func TestListTransactionsDateRange(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	seedListFixtures(t, store)

	from := mustDate(t, "2024-01-01")
	to := mustDate(t, "2024-01-31")
	transactions, total, err := store.ListTransactions(listFilter(func(f *models.TransactionFilter) {
		f.DateFrom = &from
		f.DateTo = &to
	}))
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	if total != 3 {
		t.Errorf("Expected total 3, got %d", total)
	}
	for _, tx := range transactions {
		d := tx.Date.Format("2006-01-02")
		if d < "2024-01-01" || d > "2024-01-31" {
			t.Errorf("Transaction date %s outside range", d)
		}
	}

	// Граница включается: транзакция за 2024-01-31 попадает в выборку
	found := false
	for _, tx := range transactions {
		if tx.Date.Format("2006-01-02") == "2024-01-31" {
			found = true
		}
	}
	if !found {
		t.Error("Expected transaction on date_to boundary to be included")
	}
}

// TestListTransactionsSort тестирует сортировку по сумме по возрастанию.
func TestListTransactionsSort(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	seedListFixtures(t, store)

	transactions, _, err := store.ListTransactions(listFilter(func(f *models.TransactionFilter) {
		f.Sort = "amount"
		f.Direction = "asc"
	}))
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	for i := 1; i < len(transactions); i++ {
		if transactions[i].Amount.LessThan(transactions[i-1].Amount) {
			t.Errorf("Expected non-decreasing amounts, got %s before %s",
				transactions[i-1].Amount, transactions[i].Amount)
		}
	}

	// Сортировка по умолчанию: дата по убыванию
	transactions, _, err = store.ListTransactions(listFilter(nil))
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	for i := 1; i < len(transactions); i++ {
		if transactions[i].Date.After(transactions[i-1].Date) {
			t.Errorf("Expected dates in descending order, got %v before %v",
				transactions[i-1].Date, transactions[i].Date)
		}
	}
}

// TestListTransactionsPagination тестирует размер страницы и общее количество.
func TestListTransactionsPagination(t *testing.T) {
	store := setupTestDB(t)
	defer store.Close()
	seedListFixtures(t, store)

	transactions, total, err := store.ListTransactions(listFilter(func(f *models.TransactionFilter) {
		f.PerPage = 2
	}))
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	if len(transactions) != 2 {
		t.Errorf("Expected 2 transactions on page, got %d", len(transactions))
	}
	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}

	// Последняя страница неполная
	transactions, _, err = store.ListTransactions(listFilter(func(f *models.TransactionFilter) {
		f.PerPage = 2
		f.Page = 3
	}))
	if err != nil {
		t.Fatalf("Failed to list transactions: %v", err)
	}
	if len(transactions) != 1 {
		t.Errorf("Expected 1 transaction on last page, got %d", len(transactions))
	}
}
