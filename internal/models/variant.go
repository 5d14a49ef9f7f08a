package models

// PaintingVariant is a catalog entry for a paint/finish type.
// Sides says whether one or both faces of a panel are painted.
type PaintingVariant struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null;unique" json:"name"`
	DefaultPricePerM2 float64 `gorm:"not null" json:"default_price_per_m2"`
	Sides             int     `gorm:"not null;default:2" json:"sides"` // 1 or 2
}

// ClientPricing overrides the catalog price for one client/variant pair.
// At most one row may exist per pair.
type ClientPricing struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	ClientID   uint    `gorm:"not null;index:idx_client_variant,unique,priority:1" json:"client_id"`
	VariantID  uint    `gorm:"not null;index:idx_client_variant,unique,priority:2" json:"variant_id"`
	PricePerM2 float64 `gorm:"not null" json:"price_per_m2"`
}
