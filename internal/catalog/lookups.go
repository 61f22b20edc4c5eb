package catalog

import (
	"strings"

	"github.com/angelmondragon/superstore-backend/pkg/db/models"
)

// FindProduct returns the product with id.
func (r *Repository) FindProduct(id string) (models.Product, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.products {
		if p.ID == id {
			return p.Clone(), true
		}
	}
	return models.Product{}, false
}

func (r *Repository) FindCategory(id string) (models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return models.Category{}, false
}

func (r *Repository) FindCategoryBySlug(slug string) (models.Category, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			return c.Clone(), true
		}
	}
	return models.Category{}, false
}

func (r *Repository) ActiveCategories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Category{}
	for _, c := range r.categories {
		if c.IsActive() {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (r *Repository) ActiveProducts() []models.Product {
	return r.filterProducts(func(p models.Product) bool { return p.IsActive() })
}

// ProductsByCategory returns active products in the category.
func (r *Repository) ProductsByCategory(categoryID string) []models.Product {
	return r.filterProducts(func(p models.Product) bool {
		return p.IsActive() && p.CategoryID == categoryID
	})
}

// SearchProducts matches active products whose name, category or subcategory
// contains query, case-insensitively. An empty query matches nothing.
func (r *Repository) SearchProducts(query string) []models.Product {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return []models.Product{}
	}
	return r.filterProducts(func(p models.Product) bool {
		if !p.IsActive() {
			return false
		}
		return strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Category), q) ||
			strings.Contains(strings.ToLower(p.Subcategory), q)
	})
}

func (r *Repository) filterProducts(keep func(models.Product) bool) []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []models.Product{}
	for _, p := range r.products {
		if keep(p) {
			out = append(out, p.Clone())
		}
	}
	return out
}

// FindCustomer returns the customer with id.
func (r *Repository) FindCustomer(id string) (models.Customer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.ID == id {
			return c, true
		}
	}
	return models.Customer{}, false
}

// FindCustomerByEmail compares emails case-insensitively.
func (r *Repository) FindCustomerByEmail(email string) (models.Customer, bool) {
	email = strings.TrimSpace(email)
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if email != "" && strings.EqualFold(c.Email, email) {
			return c, true
		}
	}
	return models.Customer{}, false
}

// FindCustomerByIdentifier accepts an email or a phone number.
func (r *Repository) FindCustomerByIdentifier(identifier string) (models.Customer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.customers {
		if c.MatchesIdentifier(identifier) {
			return c, true
		}
	}
	return models.Customer{}, false
}
