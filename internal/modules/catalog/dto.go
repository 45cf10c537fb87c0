package catalog

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

type ServiceQuery struct {
	CategoryID int64  `form:"categoryId"`
	ProviderID int64  `form:"providerId"`
	Search     string `form:"search"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
	Sort       string `form:"sort"`
}

type ProviderQuery struct {
	Search   string `form:"search"`
	Featured *bool  `form:"featured"`
}

type TenantInfo struct {
	ID           int64             `json:"id"`
	Name         string            `json:"name"`
	Subdomain    string            `json:"subdomain"`
	Plan         domain.TenantPlan `json:"plan"`
	LogoURL      string            `json:"logoUrl,omitempty"`
	PrimaryColor string            `json:"primaryColor,omitempty"`
}

type ProviderSummary struct {
	ID           int64           `json:"id"`
	BusinessName string          `json:"businessName"`
	Description  string          `json:"description,omitempty"`
	Rating       decimal.Decimal `json:"rating"`
	ReviewCount  int64           `json:"reviewCount"`
	IsFeatured   bool            `json:"isFeatured"`
}

type RatingBucket struct {
	Stars      int   `json:"stars"`
	Count      int64 `json:"count"`
	Percentage int64 `json:"percentage"`
}

type RatingSummary struct {
	Average decimal.Decimal `json:"average"`
	Count   int64           `json:"count"`
}

type ServiceDetail struct {
	Service         *domain.Service       `json:"service"`
	Provider        ProviderSummary       `json:"provider"`
	Addons          []domain.ServiceAddon `json:"addons"`
	Reviews         []domain.Review       `json:"reviews"`
	Rating          RatingSummary         `json:"rating"`
	RatingBreakdown []RatingBucket        `json:"ratingBreakdown"`
}
