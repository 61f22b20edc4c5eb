package catalog

import (
	"context"
	"fmt"
	"math"
	"sync"

	"github.com/angelmondragon/superstore-backend/internal/snapshot"
	"github.com/angelmondragon/superstore-backend/pkg/clock"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/superstore-backend/pkg/errors"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
)

const unknownCategoryID = "unknown"

// Params wires a Repository.
type Params struct {
	Store    *snapshot.Store
	Logger   *logger.Logger
	Clock    clock.Clock
	Commerce config.CommerceConfig
	// AdminEmail seeds the default admin profile.
	AdminEmail string
}

// Repository holds every catalog collection in memory. Each mutation is written
// through to the snapshot store under the collection's key before it returns.
type Repository struct {
	mu       sync.RWMutex
	store    *snapshot.Store
	logg     *logger.Logger
	clock    clock.Clock
	commerce config.CommerceConfig

	products       []models.Product
	categories     []models.Category
	orders         []models.Order
	customers      []models.Customer
	siteMedia      models.SiteMedia
	mediaLibrary   []models.LibraryItem
	adminProfile   models.AdminProfile
	socialSettings models.SocialSettings
}

// Load reads each collection independently, falling back to seed data per key.
// Seeded or backfilled collections are persisted immediately.
func Load(ctx context.Context, params Params) (*Repository, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	commerce := params.Commerce
	if commerce.ExchangeRate <= 0 {
		commerce = config.DefaultCommerce()
	}
	adminEmail := params.AdminEmail
	if adminEmail == "" {
		adminEmail = "admin@superstore.com"
	}

	r := &Repository{
		store:    params.Store,
		logg:     params.Logger,
		clock:    clock.OrDefault(params.Clock),
		commerce: commerce,
	}

	dirty := map[string]any{}
	load := func(key string, found bool, value any) {
		if !found {
			dirty[key] = value
		}
	}

	var found bool
	r.categories, found = snapshot.LoadFound(ctx, r.store, snapshot.KeyCategories, SeedCategories())
	load(snapshot.KeyCategories, found, r.categories)

	var products []models.Product
	products, found = snapshot.LoadFound[[]models.Product](ctx, r.store, snapshot.KeyProducts, nil)
	if !found {
		products = SeedProducts(commerce.SeedProductCount, commerce.ExchangeRate)
	}
	var backfilled bool
	r.products, backfilled = r.backfillProducts(products)
	load(snapshot.KeyProducts, found && !backfilled, r.products)

	r.orders, found = snapshot.LoadFound(ctx, r.store, snapshot.KeyOrders, SeedOrders(r.products))
	load(snapshot.KeyOrders, found, r.orders)

	r.customers, found = snapshot.LoadFound(ctx, r.store, snapshot.KeyCustomers, SeedCustomers())
	load(snapshot.KeyCustomers, found, r.customers)

	r.siteMedia, found = snapshot.LoadFound(ctx, r.store, snapshot.KeySiteMedia, SeedSiteMedia())
	load(snapshot.KeySiteMedia, found, r.siteMedia)

	r.mediaLibrary, found = snapshot.LoadFound(ctx, r.store, snapshot.KeyMediaLibrary, SeedMediaLibrary())
	load(snapshot.KeyMediaLibrary, found, r.mediaLibrary)

	r.adminProfile, found = snapshot.LoadFound(ctx, r.store, snapshot.KeyAdminProfile, SeedAdminProfile(adminEmail))
	load(snapshot.KeyAdminProfile, found, r.adminProfile)

	r.socialSettings, found = snapshot.LoadFound(ctx, r.store, snapshot.KeySocialSettings, SeedSocialSettings())
	load(snapshot.KeySocialSettings, found, r.socialSettings)

	if len(dirty) > 0 {
		if err := r.store.SaveAll(ctx, dirty); err != nil {
			r.logg.Error(ctx, "persisting seeded catalog collections", err)
		}
	}
	r.logg.Info(r.logg.WithFields(ctx, map[string]any{
		"products":   len(r.products),
		"categories": len(r.categories),
		"orders":     len(r.orders),
		"customers":  len(r.customers),
	}), "catalog loaded")
	return r, nil
}

// backfillProducts fills coin fields and category ids missing from older snapshots.
func (r *Repository) backfillProducts(in []models.Product) ([]models.Product, bool) {
	byName := make(map[string]string, len(r.categories))
	for _, c := range r.categories {
		byName[c.Name] = c.ID
	}
	changed := false
	out := make([]models.Product, 0, len(in))
	for _, p := range in {
		if p.CategoryID == "" {
			if id, ok := byName[p.Category]; ok {
				p.CategoryID = id
			} else {
				p.CategoryID = unknownCategoryID
			}
			changed = true
		}
		if p.CoinReward == nil {
			p.CoinReward = models.Int64Ptr(int64(math.Floor(float64(p.Price) * 0.1)))
			changed = true
		}
		if p.MaxCoinDeduction == nil {
			p.MaxCoinDeduction = models.Int64Ptr(int64(math.Floor(float64(p.Price) * 5)))
			changed = true
		}
		if p.Status == "" {
			p.Status = enums.RecordStatusActive
			changed = true
		}
		out = append(out, p)
	}
	return out, changed
}

// Commerce exposes the pricing constants the catalog was loaded with.
func (r *Repository) Commerce() config.CommerceConfig {
	return r.commerce
}

// Products returns a copy of every product.
func (r *Repository) Products() []models.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneProducts(r.products)
}

// ReplaceProducts swaps the whole collection and persists it.
func (r *Repository) ReplaceProducts(ctx context.Context, products []models.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products = cloneProducts(products)
	r.store.Save(ctx, snapshot.KeyProducts, r.products)
}

func (r *Repository) Categories() []models.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneCategories(r.categories)
}

// ReplaceCategories swaps the whole collection, deriving every slug from its
// name. A blank or duplicate slug rejects the batch and nothing is written.
func (r *Repository) ReplaceCategories(ctx context.Context, categories []models.Category) error {
	next := cloneCategories(categories)
	owners := make(map[string]string, len(next))
	for i := range next {
		slug := Slugify(next[i].Name)
		if slug == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "category name must contain letters or digits").
				WithDetails(map[string]any{"id": next[i].ID})
		}
		if owner, taken := owners[slug]; taken {
			return pkgerrors.New(pkgerrors.CodeConflict, "category slug already exists").
				WithDetails(map[string]any{"slug": slug, "ids": []string{owner, next[i].ID}})
		}
		owners[slug] = next[i].ID
		next[i].Slug = slug
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.categories = next
	r.store.Save(ctx, snapshot.KeyCategories, r.categories)
	return nil
}

// Orders returns orders most recent first.
func (r *Repository) Orders() []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneOrders(r.orders)
}

func (r *Repository) ReplaceOrders(ctx context.Context, orders []models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = cloneOrders(orders)
	r.store.Save(ctx, snapshot.KeyOrders, r.orders)
}

func (r *Repository) Customers() []models.Customer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Customer{}, r.customers...)
}

func (r *Repository) ReplaceCustomers(ctx context.Context, customers []models.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers = append([]models.Customer{}, customers...)
	r.store.Save(ctx, snapshot.KeyCustomers, r.customers)
}

func (r *Repository) SiteMedia() models.SiteMedia {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.siteMedia.Clone()
}

func (r *Repository) SetSiteMedia(ctx context.Context, media models.SiteMedia) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.siteMedia = media.Clone()
	r.store.Save(ctx, snapshot.KeySiteMedia, r.siteMedia)
}

func (r *Repository) MediaLibrary() []models.LibraryItem {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.LibraryItem{}, r.mediaLibrary...)
}

func (r *Repository) SetMediaLibrary(ctx context.Context, items []models.LibraryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mediaLibrary = append([]models.LibraryItem{}, items...)
	r.store.Save(ctx, snapshot.KeyMediaLibrary, r.mediaLibrary)
}

func (r *Repository) AdminProfile() models.AdminProfile {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adminProfile
}

func (r *Repository) SetAdminProfile(ctx context.Context, profile models.AdminProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adminProfile = profile
	r.store.Save(ctx, snapshot.KeyAdminProfile, r.adminProfile)
}

func (r *Repository) SocialSettings() models.SocialSettings {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.socialSettings
}

func (r *Repository) SetSocialSettings(ctx context.Context, settings models.SocialSettings) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.socialSettings = settings
	r.store.Save(ctx, snapshot.KeySocialSettings, r.socialSettings)
}

func cloneProducts(in []models.Product) []models.Product {
	out := make([]models.Product, 0, len(in))
	for _, p := range in {
		out = append(out, p.Clone())
	}
	return out
}

func cloneCategories(in []models.Category) []models.Category {
	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		out = append(out, c.Clone())
	}
	return out
}

func cloneOrders(in []models.Order) []models.Order {
	out := make([]models.Order, 0, len(in))
	for _, o := range in {
		out = append(out, o.Clone())
	}
	return out
}
