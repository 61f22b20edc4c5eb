package catalog

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/superstore-backend/pkg/db/models"
	"github.com/angelmondragon/superstore-backend/pkg/enums"
)

var seedCategories = []models.Category{
	{
		ID: "1", Name: "Professional Cinema", Icon: "🎥", IsPopular: true,
		Thumbnail:     "https://images.unsplash.com/photo-1473968512647-3e44a224fe8f?q=80&w=400",
		Subcategories: []string{"8K Cinema", "Hollywood Grade", "Heavy Lift", "Production Ready"},
	},
	{
		ID: "2", Name: "FPV Racing & Freestyle", Icon: "⚡", IsPopular: true,
		Thumbnail:     "https://images.unsplash.com/photo-1533560235473-19e31f711f14?q=80&w=400",
		Subcategories: []string{"Digital FPV", "6S Racers", "Cinewhoops", "Long Range FPV"},
	},
	{
		ID: "3", Name: "Consumer Photography", Icon: "📸", IsPopular: true,
		Thumbnail:     "https://images.unsplash.com/photo-1507582020474-9a35b7d455d9?q=80&w=400",
		Subcategories: []string{"Travel Drones", "Beginner Friendly", "4K Folding", "Mini Series"},
	},
	{
		ID: "4", Name: "Industrial & Agriculture", Icon: "🏗️", IsPopular: false,
		Thumbnail:     "https://images.unsplash.com/photo-1527142879024-c6c91aa6423c?q=80&w=400",
		Subcategories: []string{"Thermal Mapping", "Agri-Sprayer", "Surveying", "Search & Rescue"},
	},
}

type droneType struct {
	name       string
	categoryID string
}

var droneTypes = []droneType{
	{"Mini Pocket Drone", "3"},
	{"Extreme Battery Life Drone", "3"},
	{"High-Speed Racing Drone", "2"},
	{"Ultra-Light Foldable Travel Drone", "3"},
	{"Stealth Silent Flight Drone", "4"},
	{"Compact Urban Exploration Drone", "3"},
	{"Luxury Premium Design Drone", "1"},
	{"Long-Range GPS Survey Drone", "4"},
	{"Weather-Resistant Industrial Drone", "4"},
	{"AI-Powered Smart Tracking Drone", "4"},
	{"Stabilized Gimbal Camera Drone", "3"},
	{"Autonomous Mapping Drone", "4"},
	{"Professional 8K Camera Drone", "1"},
	{"Cinematic Aerial Photography Drone", "1"},
	{"Night Vision Surveillance Drone", "4"},
}

var droneFeatures = []string{
	"low-latency FPV mode", "silent propeller technology", "long endurance battery",
	"precision GPS lock", "foldable portable design", "intelligent return-to-home",
	"smart subject tracking", "cinematic stabilization", "real-time HD transmission",
	"carbon fiber body", "brushless motors", "professional-grade camera module",
	"ultra-stable hovering", "AI obstacle avoidance", "wind-resistant flight system",
}

// SeedCategories returns the default category set with slugs derived from names.
func SeedCategories() []models.Category {
	out := make([]models.Category, 0, len(seedCategories))
	for _, c := range seedCategories {
		c = c.Clone()
		c.Slug = Slugify(c.Name)
		c.Status = enums.RecordStatusActive
		out = append(out, c)
	}
	return out
}

// SeedProducts generates count deterministic drone listings priced in BDT.
func SeedProducts(count int, exchangeRate int64) []models.Product {
	categoryNames := make(map[string]string, len(seedCategories))
	for _, c := range seedCategories {
		categoryNames[c.ID] = c.Name
	}

	products := make([]models.Product, 0, count)
	nf := len(droneFeatures)
	for i := 1; i <= count; i++ {
		dt := droneTypes[(i-1)%len(droneTypes)]

		f1 := (i * 3) % nf
		f2 := (i * 7) % nf
		if f2 == f1 {
			f2 = (f2 + 1) % nf
		}
		f3 := (i * 11) % nf
		if f3 == f1 || f3 == f2 {
			f3 = (f3 + 2) % nf
		}

		priceUSD := int64(130+((i*17)%350)) + 50
		price := priceUSD * exchangeRate
		discount := 5 + (i % 20)
		original := int64(math.Round(float64(price) * (1 + float64(discount)/100)))
		serial := 1000 + i

		products = append(products, models.Product{
			ID:            fmt.Sprintf("drone-inv-1000-%d", i),
			Name:          fmt.Sprintf("%s X-%d Series", dt.name, serial),
			Category:      categoryNames[dt.categoryID],
			CategoryID:    dt.categoryID,
			Subcategory:   dt.name,
			Price:         price,
			OriginalPrice: models.Int64Ptr(original),
			Discount:      models.IntPtr(discount),
			Image:         fmt.Sprintf("https://picsum.photos/seed/drone-main-%d/800/600", i),
			Images: []string{
				fmt.Sprintf("https://picsum.photos/seed/drone-angle1-%d/800/600", i),
				fmt.Sprintf("https://picsum.photos/seed/drone-angle2-%d/800/600", i),
				fmt.Sprintf("https://picsum.photos/seed/drone-angle3-%d/800/600", i),
			},
			Description: fmt.Sprintf(
				"%s featuring %s, %s, and %s. Engineered for high-precision operations and durability, the X-%d ships with integrated smart safety systems and advanced telemetry.",
				dt.name, droneFeatures[f1], droneFeatures[f2], droneFeatures[f3], serial),
			Stock:            5 + (i % 95),
			Rating:           4.1 + float64(i%10)/10,
			Reviews:          8 + (i % 1200),
			Status:           enums.RecordStatusActive,
			CoinReward:       models.Int64Ptr(int64(math.Round(float64(price) * 0.01))),
			MaxCoinDeduction: models.Int64Ptr(int64(math.Round(float64(price) * 0.05))),
		})
	}
	return products
}

// SeedOrders returns the single historical order shipped with the demo data.
func SeedOrders(products []models.Product) []models.Order {
	var items []models.CartItem
	if len(products) > 0 {
		items = []models.CartItem{{Product: products[0].Clone(), Quantity: 1}}
	}
	return []models.Order{{
		ID:            "ORD-8821",
		CustomerName:  "Md Samiul",
		CustomerEmail: "md4518199@gmail.com",
		CustomerPhone: "01711111111",
		Address:       "Banani, Dhaka",
		Total:         decimal.NewFromInt(35000),
		Status:        enums.OrderStatusPaid,
		Date:          "2023-12-01",
		Items:         items,
		CoinDiscount:  decimal.Zero,
	}}
}

// SeedCustomers returns the demo customer account.
func SeedCustomers() []models.Customer {
	return []models.Customer{{
		ID:          "c1",
		Name:        "Md Samiul",
		Email:       "md4518199@gmail.com",
		Phone:       "01711111111",
		Password:    "password123",
		OrdersCount: 1,
		DateJoined:  "2023-01-15",
		Avatar:      "https://images.unsplash.com/photo-1535713875002-d1d0cf377fde?q=80&w=100",
		Status:      enums.CustomerStatusActive,
		Coins:       4500,
	}}
}

func SeedSiteMedia() models.SiteMedia {
	return models.SiteMedia{
		HeroSlides: []models.MediaItem{
			{
				ID: "h1", Type: enums.MediaTypeImage,
				URL:      "https://images.unsplash.com/photo-1508614589041-895b88991e3e?q=80&w=1470",
				Title:    "Next-Gen Aerial Systems",
				Subtitle: "Experience the world from a new perspective with our professional 8K drone series.",
				CTA:      "Explore Drones",
			},
			{
				ID: "h2", Type: enums.MediaTypeImage,
				URL:      "https://images.unsplash.com/photo-1473968512647-3e44a224fe8f?q=80&w=1470",
				Title:    "FPV Racing Revolution",
				Subtitle: "High-speed, low-latency digital FPV systems for the ultimate competitive edge.",
				CTA:      "Shop Racing",
			},
			{
				ID: "h3", Type: enums.MediaTypeImage,
				URL:      "https://images.unsplash.com/photo-1521405924368-64c5b84bec60?q=80&w=1399",
				Title:    "Mini Drones, Maxi Power",
				Subtitle: "Compact, portable, and powerful. No registration required for our sub-249g models.",
				CTA:      "Order Now",
			},
		},
		PromoBanner: models.MediaItem{
			ID: "p1", Type: enums.MediaTypeImage,
			URL:      "https://images.unsplash.com/photo-1527142879024-c6c91aa6423c?q=80&w=1470",
			Title:    "Precision Agriculture",
			Subtitle: "Optimize your yield with our automated crop spraying and mapping solutions.",
		},
	}
}

func SeedMediaLibrary() []models.LibraryItem {
	return []models.LibraryItem{
		{ID: "lib-1", Name: "Cinema Drone", URL: "https://images.unsplash.com/photo-1507582020474-9a35b7d455d9?q=80&w=1470", Type: enums.MediaTypeImage, CreatedAt: "2023-11-20"},
		{ID: "lib-2", Name: "Racing Unit", URL: "https://images.unsplash.com/photo-1533560235473-19e31f711f14?q=80&w=1470", Type: enums.MediaTypeImage, CreatedAt: "2023-11-21"},
		{ID: "lib-3", Name: "Mini Drone White", URL: "https://images.unsplash.com/photo-1521405924368-64c5b84bec60?q=80&w=1399", Type: enums.MediaTypeImage, CreatedAt: "2023-11-22"},
	}
}

func SeedAdminProfile(email string) models.AdminProfile {
	return models.AdminProfile{
		FirstName: "Admin",
		LastName:  "SuperStore",
		Address:   "Drone Innovation Hub, Silicon Valley",
		Contact:   "+1 800 DRONE PRO",
		Email:     email,
		Role:      "Systems Administrator",
	}
}

func SeedSocialSettings() models.SocialSettings {
	return models.SocialSettings{
		GoogleEnabled:   true,
		FacebookEnabled: true,
	}
}
