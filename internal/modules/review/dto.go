package review

import (
	"github.com/shopspring/decimal"

	"marketplace/internal/domain"
)

type CreateReviewRequest struct {
	BookingID int64  `json:"bookingId" binding:"required,gt=0"`
	Rating    int    `json:"rating" binding:"required,gte=1,lte=5"`
	Comment   string `json:"comment" binding:"max=2000"`
}

type CreateReviewResponse struct {
	Review         *domain.Review  `json:"review"`
	ProviderRating decimal.Decimal `json:"providerRating"`
	ReviewCount    int64           `json:"reviewCount"`
}
