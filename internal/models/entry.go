package models

import "time"

// Entry represents one financial transaction in a project's cashbook.
// Dates are stored as zero-padded YYYY-MM-DD strings so that range filters
// and sorting can compare them lexicographically, the same way the rest of
// the system does.
type Entry struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	ProjectID string `gorm:"index;size:64;not null" json:"projectId"`
	Type      string `gorm:"size:16;not null" json:"type"`  // cash_in / cash_out
	Category  string `gorm:"size:16;index" json:"category"` // material / labor / service (cash_out only)
	Date      string `gorm:"size:10;index;not null" json:"date"`

	PartyName string  `gorm:"size:128;index" json:"party_name"`
	ItemName  string  `gorm:"size:128" json:"item_name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `gorm:"size:16" json:"unit"`
	Rate      float64 `json:"rate"`

	Amount      float64 `gorm:"not null" json:"amount"` // total billed
	Paid        float64 `json:"paid"`                   // cumulative paid, always == sum(payments)
	Due         float64 `json:"due"`                    // amount - paid, never negative
	PaymentMode string  `gorm:"size:32" json:"payment_mode"`
	Notes       string  `gorm:"size:255" json:"notes"`

	// Append-only payment history. Only the payment path may grow this.
	Payments []Payment `gorm:"serializer:json" json:"payments"`

	// Structured line items, present only when item_name matches the
	// corresponding material type.
	StockDetails   []SteelRow   `gorm:"serializer:json" json:"stockDetails,omitempty"`
	TilesDetails   []TilesRow   `gorm:"serializer:json" json:"tilesDetails,omitempty"`
	GraniteDetails []GraniteRow `gorm:"serializer:json" json:"graniteDetails,omitempty"`

	// Optional receipt image as a base64 data URL.
	Attachment string `gorm:"type:text" json:"attachment,omitempty"`

	CreatedBy string    `gorm:"size:64" json:"createdBy"`
	Timestamp string    `gorm:"size:40" json:"timestamp"` // RFC3339 creation time, immutable
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Payment is one record in an entry's payment history.
type Payment struct {
	Amount float64 `json:"amount"`
	Date   string  `json:"date"`
	Mode   string  `json:"mode"`
	Note   string  `json:"note"`
}

// SteelRow is one bar-diameter line of a steel purchase.
type SteelRow struct {
	Diameter int     `json:"diameter"` // mm
	Nos      float64 `json:"nos"`
	Kg       float64 `json:"kg"`
	Rate     float64 `json:"rate"` // per kg
}

// TilesRow is one room line of a tiles purchase. W and H describe a single
// tile in feet; sqft is per tile, not multiplied by boxes.
type TilesRow struct {
	Room  string  `json:"room"`
	Boxes float64 `json:"boxes"`
	Name  string  `json:"name"`
	W     float64 `json:"w"`
	H     float64 `json:"h"`
	Rate  float64 `json:"rate"` // per sqft
}

// GraniteRow is one slab line of a granite purchase. W and H describe a
// single piece in feet.
type GraniteRow struct {
	Name string  `json:"name"`
	Nos  float64 `json:"nos"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Rate float64 `json:"rate"` // per sqft
}
