package models

import "github.com/angelmondragon/superstore-backend/pkg/enums"

// MediaItem is a hero slide or promo banner.
type MediaItem struct {
	ID       string          `json:"id"`
	Type     enums.MediaType `json:"type"`
	URL      string          `json:"url"`
	Title    string          `json:"title,omitempty"`
	Subtitle string          `json:"subtitle,omitempty"`
	CTA      string          `json:"cta,omitempty"`
	Link     string          `json:"link,omitempty"`
}

// SiteMedia is the home page hero carousel plus the promo banner.
type SiteMedia struct {
	HeroSlides  []MediaItem `json:"heroSlides"`
	PromoBanner MediaItem   `json:"promoBanner"`
}

func (s SiteMedia) Clone() SiteMedia {
	return SiteMedia{
		HeroSlides:  append([]MediaItem{}, s.HeroSlides...),
		PromoBanner: s.PromoBanner,
	}
}

// LibraryItem is an uploaded asset available to the media picker.
type LibraryItem struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	URL       string          `json:"url"`
	Type      enums.MediaType `json:"type"`
	CreatedAt string          `json:"createdAt"`
}
