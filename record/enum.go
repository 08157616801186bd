package record

import "fmt"

// Category is the closed set of catalog categories.
type Category uint8

const (
	CategoryElectronics Category = iota
	CategoryClothing
	CategoryHomeGoods
	CategoryBooks
	CategoryToys
)

// Categories lists every Category in declaration order.
var Categories = []Category{
	CategoryElectronics,
	CategoryClothing,
	CategoryHomeGoods,
	CategoryBooks,
	CategoryToys,
}

var categoryNames = [...]string{"Electronics", "Clothing", "HomeGoods", "Books", "Toys"}

func (c Category) String() string {
	if !c.IsValid() {
		return "Unknown"
	}

	return categoryNames[c]
}

// IsValid reports whether c is one of the declared categories.
func (c Category) IsValid() bool {
	return int(c) < len(categoryNames)
}

// MarshalText encodes the category as its name.
func (c Category) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid category: %d", uint8(c))
	}

	return []byte(categoryNames[c]), nil
}

// UnmarshalText decodes a category name.
func (c *Category) UnmarshalText(text []byte) error {
	for i, name := range categoryNames {
		if name == string(text) {
			*c = Category(i) //nolint:gosec
			return nil
		}
	}

	return fmt.Errorf("invalid category: %q", text)
}

// Currency is the closed set of ISO 4217 codes a price may be quoted in.
type Currency uint8

const (
	CurrencyUSD Currency = iota
	CurrencyGBP
	CurrencyEUR
	CurrencyJPY
	CurrencyAUD
	CurrencyCAD
)

// Currencies lists every Currency in declaration order.
var Currencies = []Currency{
	CurrencyUSD,
	CurrencyGBP,
	CurrencyEUR,
	CurrencyJPY,
	CurrencyAUD,
	CurrencyCAD,
}

var currencyNames = [...]string{"USD", "GBP", "EUR", "JPY", "AUD", "CAD"}

func (c Currency) String() string {
	if !c.IsValid() {
		return "Unknown"
	}

	return currencyNames[c]
}

// IsValid reports whether c is one of the declared currencies.
func (c Currency) IsValid() bool {
	return int(c) < len(currencyNames)
}

// MarshalText encodes the currency as its ISO code.
func (c Currency) MarshalText() ([]byte, error) {
	if !c.IsValid() {
		return nil, fmt.Errorf("invalid currency: %d", uint8(c))
	}

	return []byte(currencyNames[c]), nil
}

// UnmarshalText decodes an ISO currency code.
func (c *Currency) UnmarshalText(text []byte) error {
	for i, name := range currencyNames {
		if name == string(text) {
			*c = Currency(i) //nolint:gosec
			return nil
		}
	}

	return fmt.Errorf("invalid currency: %q", text)
}
