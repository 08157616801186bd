package record

import (
	"time"

	"github.com/google/uuid"
)

// Dimensions is the length/width/height triple of a catalog item.
type Dimensions struct {
	Length float64 `json:"length"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// NewDimensions builds a Dimensions value. No validation is performed.
func NewDimensions(length, width, height float64) Dimensions {
	return Dimensions{Length: length, Width: width, Height: height}
}

// Record is one synthetic catalog entry.
type Record struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	Brand         string     `json:"brand"`
	SKU           string     `json:"sku"`
	Description   string     `json:"description"`
	Price         float64    `json:"price"`
	Weight        float64    `json:"weight"`
	Dimensions    Dimensions `json:"dimensions"`
	Rating        float64    `json:"rating"`
	StockQuantity uint32     `json:"stock_quantity"`
	Category      Category   `json:"category"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Currency      Currency   `json:"currency"`
	Manufacturer  string     `json:"manufacturer"`
}

// Set is an ordered collection of records. It is never mutated after generation.
type Set []Record

// Len returns the number of records in the set.
func (s Set) Len() int {
	return len(s)
}

// Clone returns a copy of the set that shares no backing array with s.
// Record values contain no pointers, so a shallow copy is a full copy.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	copy(out, s)

	return out
}
