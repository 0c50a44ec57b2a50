package domain

// Product is the single managed resource: an identified (category, name) pair.
// The ID is assigned by the store on first save and is immutable afterwards.
type Product struct {
	ID       int64  `json:"id" db:"product_id"`
	Category string `json:"category" db:"category"`
	Name     string `json:"name" db:"name"`
}

// NewProduct creates an unsaved product. Name may be empty; category carries
// the grouping label and is expected for meaningful use.
func NewProduct(category, name string) *Product {
	return &Product{
		Category: category,
		Name:     name,
	}
}

// Replace overwrites both mutable fields with full replacement values.
// There is no partial patch: an empty value overwrites the stored one.
func (p *Product) Replace(category, name string) {
	p.Category = category
	p.Name = name
}

// ProductPage is a request-scoped slice of products matching a category,
// ordered ascending by category, with total-count metadata. Page is zero-based.
type ProductPage struct {
	Products      []*Product `json:"products"`
	TotalPages    int        `json:"totalPages"`
	TotalElements int64      `json:"totalElements"`
	Page          int        `json:"page"`
}
