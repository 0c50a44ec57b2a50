package repository

import (
	"context"
	"database/sql"
	"log"
	"testing"
	"time"

	"product-catalog/internal/domain"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var testDB *sql.DB

func setupTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, error) {
	var (
		dbName = "testdb"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:15",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), "5432/tcp")
	if err != nil {
		return dbContainer.Terminate, err
	}

	connStr := "postgres://" + dbUser + ":" + dbPwd + "@" + dbHost + ":" + dbPort.Port() + "/" + dbName + "?sslmode=disable"
	testDB, err = sql.Open("pgx", connStr)
	if err != nil {
		return dbContainer.Terminate, err
	}

	// Create the products table
	_, err = testDB.Exec(`
		CREATE TABLE IF NOT EXISTS products (
			product_id BIGSERIAL PRIMARY KEY,
			category VARCHAR(255) NOT NULL,
			name VARCHAR(255)
		)
	`)
	if err != nil {
		return dbContainer.Terminate, err
	}

	return dbContainer.Terminate, nil
}

func TestMain(m *testing.M) {
	teardown, err := setupTestDB()
	if err != nil {
		log.Fatalf("could not start postgres container: %v", err)
	}

	m.Run()

	if teardown != nil {
		if err := teardown(context.Background()); err != nil {
			log.Fatalf("could not teardown postgres container: %v", err)
		}
	}
}

func clearProducts(t *testing.T) {
	t.Helper()
	if _, err := testDB.Exec("DELETE FROM products"); err != nil {
		t.Fatalf("Failed to clear products table: %v", err)
	}
}

func TestSaveAssignsIDOnInsert(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	saved, err := repo.Save(ctx, domain.NewProduct("book", "Dune"))
	if err != nil {
		t.Fatalf("Failed to save product: %v", err)
	}

	if saved.ID == 0 {
		t.Fatal("Expected store to assign a non-zero ID on insert")
	}

	retrieved, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Failed to find product: %v", err)
	}

	if retrieved.Category != "book" || retrieved.Name != "Dune" {
		t.Errorf("Retrieved product mismatch: got (%q, %q)", retrieved.Category, retrieved.Name)
	}
}

func TestSaveUpdatesExistingRow(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	saved, err := repo.Save(ctx, domain.NewProduct("book", "Dune"))
	if err != nil {
		t.Fatalf("Failed to save product: %v", err)
	}

	saved.Replace("movie", "Dune Part Two")
	updated, err := repo.Save(ctx, saved)
	if err != nil {
		t.Fatalf("Failed to update product: %v", err)
	}

	if updated.ID != saved.ID {
		t.Errorf("Update must not change the ID: got %d, want %d", updated.ID, saved.ID)
	}

	retrieved, err := repo.FindByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("Failed to find product after update: %v", err)
	}

	if retrieved.Category != "movie" || retrieved.Name != "Dune Part Two" {
		t.Errorf("Update not persisted: got (%q, %q)", retrieved.Category, retrieved.Name)
	}
}

func TestSaveUnknownIDReturnsNotFound(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)

	unknown := &domain.Product{ID: 999999, Category: "book", Name: "Dune"}
	if _, err := repo.Save(context.Background(), unknown); err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func TestFindByIDUnknownReturnsNotFound(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)

	if _, err := repo.FindByID(context.Background(), 999999); err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func TestDeleteRemovesRow(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	saved, err := repo.Save(ctx, domain.NewProduct("book", "Dune"))
	if err != nil {
		t.Fatalf("Failed to save product: %v", err)
	}

	if err := repo.Delete(ctx, saved); err != nil {
		t.Fatalf("Failed to delete product: %v", err)
	}

	if _, err := repo.FindByID(ctx, saved.ID); err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound after delete, got: %v", err)
	}
}

func TestDeleteUnknownIDReturnsNotFound(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)

	unknown := &domain.Product{ID: 999999, Category: "book"}
	if err := repo.Delete(context.Background(), unknown); err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound, got: %v", err)
	}
}

func TestFindPageByCategorySlicesAndCounts(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if _, err := repo.Save(ctx, domain.NewProduct("book", "Book")); err != nil {
			t.Fatalf("Failed to seed product: %v", err)
		}
	}
	// Rows of another category must not leak into the page or the count
	if _, err := repo.Save(ctx, domain.NewProduct("movie", "Film")); err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}

	products, total, err := repo.FindPageByCategory(ctx, "book", 0, 2)
	if err != nil {
		t.Fatalf("Failed to list page: %v", err)
	}

	if total != 5 {
		t.Errorf("Expected total 5, got %d", total)
	}
	if len(products) != 2 {
		t.Errorf("Expected 2 products on page 0, got %d", len(products))
	}
	for _, p := range products {
		if p.Category != "book" {
			t.Errorf("Unexpected category in page: %q", p.Category)
		}
	}

	// Last page holds the remainder
	products, total, err = repo.FindPageByCategory(ctx, "book", 2, 2)
	if err != nil {
		t.Fatalf("Failed to list last page: %v", err)
	}
	if total != 5 || len(products) != 1 {
		t.Errorf("Expected last page of 1 with total 5, got %d with total %d", len(products), total)
	}

	// Past the end is empty, total unchanged
	products, total, err = repo.FindPageByCategory(ctx, "book", 3, 2)
	if err != nil {
		t.Fatalf("Failed to list page past the end: %v", err)
	}
	if total != 5 || len(products) != 0 {
		t.Errorf("Expected empty page with total 5, got %d with total %d", len(products), total)
	}
}

func TestFindPageByCategoryEmptyCategoryIsLiteralMatch(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	if _, err := repo.Save(ctx, domain.NewProduct("book", "Dune")); err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}
	if _, err := repo.Save(ctx, domain.NewProduct("", "Unlabelled")); err != nil {
		t.Fatalf("Failed to seed product: %v", err)
	}

	// Empty string matches only rows whose category is '' — it is not a
	// match-all filter.
	products, total, err := repo.FindPageByCategory(ctx, "", 0, 10)
	if err != nil {
		t.Fatalf("Failed to list page: %v", err)
	}

	if total != 1 || len(products) != 1 {
		t.Fatalf("Expected exactly the one empty-category row, got %d rows with total %d", len(products), total)
	}
	if products[0].Name != "Unlabelled" {
		t.Errorf("Unexpected product matched: %q", products[0].Name)
	}
}

func TestFindDistinctCategoriesDeduplicates(t *testing.T) {
	clearProducts(t)
	repo := NewProductRepository(testDB)
	ctx := context.Background()

	for _, category := range []string{"a", "b", "a"} {
		if _, err := repo.Save(ctx, domain.NewProduct(category, "")); err != nil {
			t.Fatalf("Failed to seed product: %v", err)
		}
	}

	categories, err := repo.FindDistinctCategories(ctx)
	if err != nil {
		t.Fatalf("Failed to list distinct categories: %v", err)
	}

	seen := make(map[string]bool)
	for _, c := range categories {
		if seen[c] {
			t.Errorf("Duplicate category returned: %q", c)
		}
		seen[c] = true
	}

	if len(seen) != 2 || !seen["a"] || !seen["b"] {
		t.Errorf("Expected category set {a, b}, got %v", categories)
	}
}
