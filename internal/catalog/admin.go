package catalog

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// SaveProduct inserts or updates a product by id and persists the collection.
func (r *Repository) SaveProduct(ctx context.Context, p models.Product) (models.Product, error) {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "product name is required")
	}
	if p.Price < 0 {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "price must be non-negative")
	}
	if p.Stock < 0 {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "stock must be non-negative")
	}
	if p.Discount != nil && (*p.Discount < 0 || *p.Discount > 100) {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "discount must be between 0 and 100")
	}
	if p.Status == "" {
		p.Status = enums.RecordStatusActive
	}
	if !p.Status.IsValid() {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product status")
	}
	if p.CoinReward == nil {
		p.CoinReward = models.Int64Ptr(int64(math.Floor(float64(p.Price) * 0.1)))
	}
	if p.MaxCoinDeduction == nil {
		p.MaxCoinDeduction = models.Int64Ptr(int64(math.Floor(float64(p.Price) * 5)))
	}
	if *p.CoinReward < 0 || *p.MaxCoinDeduction < 0 {
		return models.Product{}, pkgerrors.New(pkgerrors.CodeValidation, "coin fields must be non-negative")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p.CategoryID != "" {
		for _, c := range r.categories {
			if c.ID == p.CategoryID {
				p.Category = c.Name
				break
			}
		}
	}
	if p.ID == "" {
		p.ID = "prod-" + uuid.NewString()
	}

	replaced := false
	for i := range r.products {
		if r.products[i].ID == p.ID {
			r.products[i] = p.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		r.products = append(r.products, p.Clone())
	}
	r.store.Save(ctx, snapshot.KeyProducts, r.products)
	return p.Clone(), nil
}

func (r *Repository) DeleteProduct(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.products {
		if r.products[i].ID == id {
			r.products = append(r.products[:i], r.products[i+1:]...)
			r.store.Save(ctx, snapshot.KeyProducts, r.products)
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

// SaveCategory inserts or updates a category. The slug is always derived from the
// name and must be unique across categories.
func (r *Repository) SaveCategory(ctx context.Context, c models.Category) (models.Category, error) {
	c.Name = strings.TrimSpace(c.Name)
	if c.Name == "" {
		return models.Category{}, pkgerrors.New(pkgerrors.CodeValidation, "category name is required")
	}
	c.Slug = Slugify(c.Name)
	if c.Slug == "" {
		return models.Category{}, pkgerrors.New(pkgerrors.CodeValidation, "category name must contain letters or digits")
	}
	if c.Status == "" {
		c.Status = enums.RecordStatusActive
	}
	if !c.Status.IsValid() {
		return models.Category{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid category status")
	}
	if c.Subcategories == nil {
		c.Subcategories = []string{}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.categories {
		if existing.Slug == c.Slug && existing.ID != c.ID {
			return models.Category{}, pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists").
				WithDetails(map[string]any{"slug": c.Slug})
		}
	}

	now := r.clock.Now().UTC().Format(time.RFC3339)
	c.UpdatedAt = now
	idx := -1
	if c.ID != "" {
		for i := range r.categories {
			if r.categories[i].ID == c.ID {
				idx = i
				break
			}
		}
	}
	if idx >= 0 {
		c.CreatedAt = r.categories[idx].CreatedAt
		renamed := r.categories[idx].Name != c.Name
		r.categories[idx] = c.Clone()
		if renamed {
			r.renameProductCategory(ctx, c.ID, c.Name)
		}
	} else {
		if c.ID == "" {
			c.ID = "cat-" + uuid.NewString()
		}
		c.CreatedAt = now
		r.categories = append(r.categories, c.Clone())
	}
	r.store.Save(ctx, snapshot.KeyCategories, r.categories)
	return c.Clone(), nil
}

// renameProductCategory keeps the denormalized category name on products in sync.
// Caller holds the write lock.
func (r *Repository) renameProductCategory(ctx context.Context, categoryID, name string) {
	changed := false
	for i := range r.products {
		if r.products[i].CategoryID == categoryID {
			r.products[i].Category = name
			changed = true
		}
	}
	if changed {
		r.store.Save(ctx, snapshot.KeyProducts, r.products)
	}
}

// DeleteCategory refuses while any product still references the category.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := -1
	for i := range r.categories {
		if r.categories[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "category not found")
	}
	name := r.categories[idx].Name
	for _, p := range r.products {
		if p.CategoryID == id || p.Category == name {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "cannot delete category with products")
		}
	}
	r.categories = append(r.categories[:idx], r.categories[idx+1:]...)
	r.store.Save(ctx, snapshot.KeyCategories, r.categories)
	return nil
}

// PrependOrder stores a new order ahead of older ones.
func (r *Repository) PrependOrder(ctx context.Context, order models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = append([]models.Order{order.Clone()}, r.orders...)
	r.store.Save(ctx, snapshot.KeyOrders, r.orders)
}

// UpdateOrderStatus is the only mutation allowed on a placed order.
func (r *Repository) UpdateOrderStatus(ctx context.Context, id string, status enums.OrderStatus) (models.Order, error) {
	if !status.IsValid() {
		return models.Order{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.store.Save(ctx, snapshot.KeyOrders, r.orders)
			return r.orders[i].Clone(), nil
		}
	}
	return models.Order{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

// AddCustomer registers a customer; emails are unique case-insensitively.
func (r *Repository) AddCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	c.Email = strings.TrimSpace(c.Email)
	if c.Email == "" {
		return models.Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}
	if c.Status == "" {
		c.Status = enums.CustomerStatusActive
	}
	if c.Coins < 0 {
		c.Coins = 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.customers {
		if strings.EqualFold(existing.Email, c.Email) {
			return models.Customer{}, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.DateJoined == "" {
		c.DateJoined = r.clock.Now().Format(dateLayout)
	}
	r.customers = append(r.customers, c)
	r.store.Save(ctx, snapshot.KeyCustomers, r.customers)
	return c, nil
}

// UpdateCustomer replaces the stored record with the same id.
func (r *Repository) UpdateCustomer(ctx context.Context, c models.Customer) (models.Customer, error) {
	if c.Coins < 0 {
		c.Coins = 0
	}
	if !c.Status.IsValid() {
		return models.Customer{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer status")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	idx := -1
	for i, existing := range r.customers {
		if existing.ID == c.ID {
			idx = i
			continue
		}
		if strings.EqualFold(existing.Email, c.Email) {
			return models.Customer{}, pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		}
	}
	if idx < 0 {
		return models.Customer{}, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	r.customers[idx] = c
	r.store.Save(ctx, snapshot.KeyCustomers, r.customers)
	return c, nil
}

// ToggleCustomerBlock flips a customer between active and blocked.
func (r *Repository) ToggleCustomerBlock(ctx context.Context, id string) (models.Customer, error) {
	return r.mutateCustomer(ctx, id, func(c *models.Customer) {
		if c.IsBlocked() {
			c.Status = enums.CustomerStatusActive
		} else {
			c.Status = enums.CustomerStatusBlocked
		}
	})
}

// RecordCustomerOrder bumps the customer's order counter.
func (r *Repository) RecordCustomerOrder(ctx context.Context, id string) (models.Customer, error) {
	return r.mutateCustomer(ctx, id, func(c *models.Customer) {
		c.OrdersCount++
	})
}

// SetCustomerCoins mirrors a wallet balance onto the customer record.
func (r *Repository) SetCustomerCoins(ctx context.Context, id string, coins int64) (models.Customer, error) {
	if coins < 0 {
		coins = 0
	}
	return r.mutateCustomer(ctx, id, func(c *models.Customer) {
		c.Coins = coins
	})
}

func (r *Repository) mutateCustomer(ctx context.Context, id string, fn func(*models.Customer)) (models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].ID == id {
			fn(&r.customers[i])
			r.store.Save(ctx, snapshot.KeyCustomers, r.customers)
			return r.customers[i], nil
		}
	}
	return models.Customer{}, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
}

func (r *Repository) DeleteCustomer(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.customers {
		if r.customers[i].ID == id {
			r.customers = append(r.customers[:i], r.customers[i+1:]...)
			r.store.Save(ctx, snapshot.KeyCustomers, r.customers)
			return nil
		}
	}
	return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
}

// DashboardStats summarizes the admin dashboard counters.
type DashboardStats struct {
	TotalEarnings  decimal.Decimal `json:"totalEarnings"`
	TotalOrders    int             `json:"totalOrders"`
	TotalCustomers int             `json:"totalCustomers"`
	TotalProducts  int             `json:"totalProducts"`
}

func (r *Repository) Stats() DashboardStats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	earnings := decimal.Zero
	for _, o := range r.orders {
		earnings = earnings.Add(o.Total)
	}
	return DashboardStats{
		TotalEarnings:  earnings,
		TotalOrders:    len(r.orders),
		TotalCustomers: len(r.customers),
		TotalProducts:  len(r.products),
	}
}
