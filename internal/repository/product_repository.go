package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"product-catalog/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the interface for product data access
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
	Delete(ctx context.Context, product *domain.Product) error
	FindPageByCategory(ctx context.Context, category string, page, pageSize int) ([]*domain.Product, int64, error)
	FindDistinctCategories(ctx context.Context) ([]string, error)
}

type productRepository struct {
	db *sql.DB
}

// NewProductRepository creates a new instance of ProductRepository
func NewProductRepository(db *sql.DB) ProductRepository {
	return &productRepository{db: db}
}

// Save persists a product using parameterized queries. A product without an
// assigned ID is inserted and comes back with the generated ID populated;
// a product with an ID updates the matching row in place.
func (r *productRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product.ID == 0 {
		return r.insert(ctx, product)
	}
	return r.update(ctx, product)
}

func (r *productRepository) insert(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		INSERT INTO products (category, name)
		VALUES ($1, $2)
		RETURNING product_id
	`

	err := r.db.QueryRowContext(ctx, query, product.Category, product.Name).Scan(&product.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product: %w", err)
	}

	return product, nil
}

func (r *productRepository) update(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	query := `
		UPDATE products
		SET category = $2, name = $3
		WHERE product_id = $1
	`

	result, err := r.db.ExecContext(ctx, query, product.ID, product.Category, product.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	return product, nil
}

// FindByID retrieves a product by ID using parameterized queries
func (r *productRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `
		SELECT product_id, category, COALESCE(name, '')
		FROM products
		WHERE product_id = $1
	`

	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&product.ID,
		&product.Category,
		&product.Name,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	return product, nil
}

// Delete removes the row matching the product's ID
func (r *productRepository) Delete(ctx context.Context, product *domain.Product) error {
	query := `DELETE FROM products WHERE product_id = $1`

	result, err := r.db.ExecContext(ctx, query, product.ID)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

// FindPageByCategory retrieves one zero-based page of products matching the
// category exactly, ordered ascending by category, together with the total
// number of matching rows. An empty category is a literal match on ''.
func (r *productRepository) FindPageByCategory(ctx context.Context, category string, page, pageSize int) ([]*domain.Product, int64, error) {
	countQuery := `SELECT COUNT(*) FROM products WHERE category = $1`

	var total int64
	err := r.db.QueryRowContext(ctx, countQuery, category).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	offset := page * pageSize

	// product_id as tie-breaker keeps pages stable within one category
	query := `
		SELECT product_id, category, COALESCE(name, '')
		FROM products
		WHERE category = $1
		ORDER BY category ASC, product_id ASC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, category, pageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	products := []*domain.Product{}
	for rows.Next() {
		product := &domain.Product{}
		err := rows.Scan(
			&product.ID,
			&product.Category,
			&product.Name,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating products: %w", err)
	}

	return products, total, nil
}

// FindDistinctCategories returns the distinct category values currently in
// use, one entry per value; order is unspecified.
func (r *productRepository) FindDistinctCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM products`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list distinct categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, category)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}
