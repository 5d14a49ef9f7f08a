package models

import "time"

// Order statuses. The canonical forward path is new -> in progress -> ready
// -> delivered -> paid, but any status can be selected directly.
const (
	StatusNew        = "nowe"
	StatusInProgress = "w_trakcie"
	StatusReady      = "gotowe"
	StatusDelivered  = "wydane"
	StatusPaid       = "zapłacone"
)

// StatusFlow lists statuses in canonical order.
var StatusFlow = []string{StatusNew, StatusInProgress, StatusReady, StatusDelivered, StatusPaid}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	for _, known := range StatusFlow {
		if s == known {
			return true
		}
	}
	return false
}

// Order aggregates items and work logs for one client job.
type Order struct {
	ID                uint   `gorm:"primaryKey" json:"id"`
	Number            int    `gorm:"not null;uniqueIndex" json:"number"`
	ClientID          uint   `gorm:"not null;index" json:"client_id"`
	Client            Client `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Description       string `json:"description"`
	Status            string `gorm:"not null;default:'nowe'" json:"status"`
	PlannedDate       string `gorm:"size:10" json:"planned_date"` // YYYY-MM-DD
	ReadyDate         string `gorm:"size:10" json:"ready_date"`   // stamped once on entering gotowe
	MaterialProvided  bool   `json:"material_provided"`
	PaintsProvided    bool   `json:"paints_provided"`
	DimensionsEntered bool   `json:"dimensions_entered"`
	Notes             string `json:"notes"`
	CreatedBy         string `json:"created_by"`
	Items             []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	WorkLogs          []WorkLog   `gorm:"foreignKey:OrderID" json:"work_logs,omitempty"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// OrderItem is one priced line of an order. M2, PricePerM2 and TotalPrice are
// computed once at creation and stored; later catalog or pricing changes must
// not alter them.
type OrderItem struct {
	ID         uint            `gorm:"primaryKey" json:"id"`
	OrderID    uint            `gorm:"not null;index" json:"order_id"`
	LengthMM   float64         `gorm:"not null" json:"length_mm"`
	WidthMM    float64         `gorm:"not null" json:"width_mm"`
	Quantity   int             `gorm:"not null;default:1" json:"quantity"`
	VariantID  uint            `gorm:"not null" json:"variant_id"`
	Variant    PaintingVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	HasHandle  bool            `json:"has_handle"`
	Notes      string          `json:"notes"`
	M2         float64         `gorm:"not null" json:"m2"`
	PricePerM2 float64         `gorm:"not null" json:"price_per_m2"`
	TotalPrice float64         `gorm:"not null" json:"total_price"`
}
