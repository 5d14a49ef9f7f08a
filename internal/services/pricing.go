package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/pkaminski/lakiernia/internal/models"
)

// ErrInvalidPrice is returned when an override price is not positive.
var ErrInvalidPrice = errors.New("price_per_m2 must be positive")

// PricingService resolves effective prices and maintains client overrides.
type PricingService struct {
	DB *gorm.DB
}

func NewPricingService(db *gorm.DB) *PricingService { return &PricingService{DB: db} }

// Resolve returns the effective price per m² for a client/variant pair.
// A client override wins over the variant default; with neither the price
// is 0. clientID may be nil for items with no override context.
func (s *PricingService) Resolve(clientID *uint, variantID uint) (float64, error) {
	if clientID != nil {
		var cp models.ClientPricing
		err := s.DB.Where("client_id = ? AND variant_id = ?", *clientID, variantID).
			Order("id").First(&cp).Error
		if err == nil {
			return cp.PricePerM2, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, err
		}
	}
	var v models.PaintingVariant
	if err := s.DB.First(&v, variantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return v.DefaultPricePerM2, nil
}

// Upsert sets the override price for a client/variant pair: updates the
// existing row if present, inserts otherwise. The unique index on the pair
// keeps resolution unambiguous.
func (s *PricingService) Upsert(clientID, variantID uint, price float64) (*models.ClientPricing, error) {
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	var cp models.ClientPricing
	err := s.DB.Where("client_id = ? AND variant_id = ?", clientID, variantID).First(&cp).Error
	switch {
	case err == nil:
		if err := s.DB.Model(&cp).Update("price_per_m2", price).Error; err != nil {
			return nil, err
		}
		cp.PricePerM2 = price
		return &cp, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		cp = models.ClientPricing{ClientID: clientID, VariantID: variantID, PricePerM2: price}
		if err := s.DB.Create(&cp).Error; err != nil {
			return nil, err
		}
		return &cp, nil
	default:
		return nil, err
	}
}

// Delete removes an override; resolution reverts to the variant default.
func (s *PricingService) Delete(id uint) error {
	return s.DB.Delete(&models.ClientPricing{}, id).Error
}
