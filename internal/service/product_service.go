package service

import (
	"context"
	"fmt"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository"
)

const DefaultPageSize = 10

// ProductService defines the interface for product business logic
type ProductService interface {
	Create(ctx context.Context, category, name string) (*domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	Update(ctx context.Context, id int64, category, name string) (*domain.Product, error)
	DeleteByID(ctx context.Context, id int64) error
	ListByCategory(ctx context.Context, category string, page, pageSize int) (*domain.ProductPage, error)
	ListUniqueCategories(ctx context.Context) ([]string, error)
}

type productService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a new instance of ProductService
func NewProductService(productRepo repository.ProductRepository) ProductService {
	return &productService{
		productRepo: productRepo,
	}
}

// Create constructs a new product and persists it. The store assigns the ID.
func (s *productService) Create(ctx context.Context, category, name string) (*domain.Product, error) {
	product := domain.NewProduct(category, name)

	saved, err := s.productRepo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return saved, nil
}

// GetByID is the single existence-check chokepoint reused by Update and
// DeleteByID. Absence surfaces as repository.ErrProductNotFound unchanged.
func (s *productService) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if err == repository.ErrProductNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// Update resolves the existing product, overwrites both mutable fields with
// the supplied values (full replace, not a patch), and persists the result.
// The read-then-write pair carries no concurrency guard: concurrent updates
// to the same ID are last-write-wins.
func (s *productService) Update(ctx context.Context, id int64, category, name string) (*domain.Product, error) {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	product.Replace(category, name)

	updated, err := s.productRepo.Save(ctx, product)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return updated, nil
}

// DeleteByID resolves the existing product and removes it. Hard delete.
func (s *productService) DeleteByID(ctx context.Context, id int64) error {
	product, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.productRepo.Delete(ctx, product); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// ListByCategory returns one zero-based page of products matching the
// category, sorted ascending by category. The sort order is fixed; callers
// cannot supply their own.
func (s *productService) ListByCategory(ctx context.Context, category string, page, pageSize int) (*domain.ProductPage, error) {
	if page < 0 {
		page = 0
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	products, total, err := s.productRepo.FindPageByCategory(ctx, category, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}

	return &domain.ProductPage{
		Products:      products,
		TotalPages:    totalPages(total, pageSize),
		TotalElements: total,
		Page:          page,
	}, nil
}

// ListUniqueCategories returns the distinct set of categories in use.
func (s *productService) ListUniqueCategories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.FindDistinctCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list unique categories: %w", err)
	}
	return categories, nil
}

// totalPages is ceil(total/pageSize); zero when there are no matching rows.
func totalPages(total int64, pageSize int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}
