package models

// Purchase units
const (
	UnitKg    = "kg"
	UnitLiter = "l"
	UnitPiece = "szt"
)

// ValidUnit reports whether u is a known purchase unit.
func ValidUnit(u string) bool {
	return u == UnitKg || u == UnitLiter || u == UnitPiece
}

// PaintPurchase is a material purchase, optionally tied to an order.
// Total is frozen at creation (quantity × unit price).
type PaintPurchase struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	Date      string  `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	Supplier  string  `gorm:"not null" json:"supplier"`
	Product   string  `gorm:"not null" json:"product"`
	Quantity  float64 `gorm:"not null" json:"quantity"`
	Unit      string  `gorm:"not null;default:'kg'" json:"unit"` // kg | l | szt
	UnitPrice float64 `gorm:"not null" json:"unit_price"`
	Total     float64 `gorm:"not null" json:"total"`
	OrderID   *uint   `gorm:"index" json:"order_id"`
}

// MonthlyCost is a recurring fixed operating cost, unique per month.
// Total is recomputed on every upsert from the three components.
type MonthlyCost struct {
	ID    uint    `gorm:"primaryKey" json:"id"`
	Month string  `gorm:"size:7;not null;uniqueIndex" json:"month"` // YYYY-MM
	Rent  float64 `gorm:"not null" json:"rent"`
	Waste float64 `gorm:"not null" json:"waste"`
	Other float64 `gorm:"not null" json:"other"`
	Total float64 `gorm:"not null" json:"total"`
}
