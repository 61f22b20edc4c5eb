package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/angelmondragon/superstore-backend/api/controllers"
	admincontrollers "github.com/angelmondragon/superstore-backend/api/controllers/admin"
	"github.com/angelmondragon/superstore-backend/api/middleware"
	"github.com/angelmondragon/superstore-backend/internal/storefront"
	"github.com/angelmondragon/superstore-backend/pkg/config"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
	"github.com/angelmondragon/superstore-backend/pkg/logger"
	"github.com/angelmondragon/superstore-backend/pkg/redis"
)

// Params wires the router. Backend and Limiter are nil for the in-process snapshot backend.
type Params struct {
	Config  *config.Config
	Logger  *logger.Logger
	Store   *storefront.Store
	Backend controllers.Pinger
	Limiter redis.RateLimiter
	Metrics http.Handler
}

func NewRouter(params Params) http.Handler {
	cfg, logg, store := params.Config, params.Logger, params.Store
	repo := store.Catalog()

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy("login", cfg.AuthRateLimit.LoginWindow, cfg.AuthRateLimit.LoginIPLimit, cfg.AuthRateLimit.LoginLimit)
	adminPolicy := middleware.NewAuthRateLimitPolicy("admin_login", cfg.AuthRateLimit.LoginWindow, cfg.AuthRateLimit.LoginIPLimit, cfg.AuthRateLimit.LoginLimit)
	signupPolicy := middleware.NewAuthRateLimitPolicy("signup", cfg.AuthRateLimit.LoginWindow, cfg.AuthRateLimit.LoginIPLimit, cfg.AuthRateLimit.LoginLimit)
	socialPolicy := middleware.NewAuthRateLimitPolicy("social", cfg.AuthRateLimit.LoginWindow, cfg.AuthRateLimit.LoginIPLimit, cfg.AuthRateLimit.LoginLimit)
	limiter := params.Limiter

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, params.Backend))
	})
	if params.Metrics != nil {
		r.Handle("/metrics", params.Metrics)
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(store, logg))

		r.Get("/session", controllers.SessionInfo(logg))
		r.Put("/session/currency", controllers.SetCurrency(logg))

		r.Get("/categories", controllers.Categories(repo))
		r.Get("/products", controllers.Products(repo, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(repo, logg))
		r.Get("/site-media", controllers.SiteMedia(repo))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(logg))
			r.Delete("/", controllers.CartClear(logg))
			r.Post("/items", controllers.CartAddItem(repo, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateItem(logg))
			r.Delete("/items/{productId}", controllers.CartRemoveItem(logg))
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", controllers.WishlistFetch(logg))
			r.Post("/{productId}/toggle", controllers.WishlistToggle(repo, logg))
		})

		r.Route("/coins", func(r chi.Router) {
			r.Get("/", controllers.CoinsStatus(logg))
			r.Post("/check-in", controllers.CoinsCheckIn(logg))
			r.Post("/missions/{missionId}/complete", controllers.MissionComplete(logg))
			r.Post("/products/{productId}/collect", controllers.ProductRewardCollect(logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/quote", controllers.CheckoutQuote(logg))
			r.Post("/orders", controllers.CheckoutPlace(logg))
		})

		r.Route("/auth", func(r chi.Router) {
			r.With(middleware.AuthRateLimit(loginPolicy, limiter, logg)).Post("/login", controllers.AuthLogin(logg))
			r.With(middleware.AuthRateLimit(signupPolicy, limiter, logg)).Post("/signup", controllers.AuthSignup(logg))
			r.With(middleware.AuthRateLimit(socialPolicy, limiter, logg)).Post("/social", controllers.AuthSocial(logg))
			r.Post("/logout", controllers.AuthLogout(logg))
		})
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Session(store, logg))
		r.With(middleware.AuthRateLimit(adminPolicy, limiter, logg)).Post("/auth/login", admincontrollers.Login(logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.AdminAuth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(enums.ActorRoleAdmin, logg))

			r.Post("/auth/logout", admincontrollers.Logout(logg))
			r.Get("/dashboard", admincontrollers.Dashboard(repo))

			r.Route("/products", func(r chi.Router) {
				r.Get("/", admincontrollers.ProductList(repo, logg))
				r.Post("/", admincontrollers.ProductCreate(repo, logg))
				r.Put("/{productId}", admincontrollers.ProductUpdate(repo, logg))
				r.Delete("/{productId}", admincontrollers.ProductDelete(repo, logg))
			})
			r.Route("/categories", func(r chi.Router) {
				r.Get("/", admincontrollers.CategoryList(repo))
				r.Post("/", admincontrollers.CategoryCreate(repo, logg))
				r.Put("/{categoryId}", admincontrollers.CategoryUpdate(repo, logg))
				r.Delete("/{categoryId}", admincontrollers.CategoryDelete(repo, logg))
			})
			r.Route("/orders", func(r chi.Router) {
				r.Get("/", admincontrollers.OrderList(repo, logg))
				r.Patch("/{orderId}/status", admincontrollers.OrderUpdateStatus(repo, logg))
			})
			r.Route("/customers", func(r chi.Router) {
				r.Get("/", admincontrollers.CustomerList(repo, logg))
				r.Post("/{customerId}/block", admincontrollers.CustomerToggleBlock(repo, logg))
				r.Delete("/{customerId}", admincontrollers.CustomerDelete(repo, logg))
			})
			r.Get("/site-media", admincontrollers.SiteMediaFetch(repo))
			r.Put("/site-media", admincontrollers.SiteMediaUpdate(repo, logg))
			r.Route("/media-library", func(r chi.Router) {
				r.Get("/", admincontrollers.MediaLibraryList(repo))
				r.Post("/", admincontrollers.MediaLibraryAdd(repo, store.Clock(), logg))
				r.Delete("/{itemId}", admincontrollers.MediaLibraryDelete(repo, logg))
			})
			r.Get("/social-settings", admincontrollers.SocialSettingsFetch(repo))
			r.Put("/social-settings", admincontrollers.SocialSettingsUpdate(repo, logg))
			r.Get("/profile", admincontrollers.ProfileFetch(repo))
			r.Put("/profile", admincontrollers.ProfileUpdate(repo, logg))
			r.Route("/2fa", func(r chi.Router) {
				r.Post("/setup", admincontrollers.TwoFactorSetup(repo, store.TwoFactor(), logg))
				r.Post("/enable", admincontrollers.TwoFactorEnable(store.TwoFactor(), logg))
				r.Post("/disable", admincontrollers.TwoFactorDisable(store.TwoFactor(), logg))
			})
		})
	})

	return r
}
