package types

import (
	"strconv"
	"strings"
)

// Price tolerates the item API sending either a JSON number or a quoted
// numeric string. An unparsable, negative or missing price stays invalid
// instead of failing the whole catalog decode.
type Price struct {
	Value float64
	Valid bool
}

func NewPrice(value float64) Price {
	return Price{Value: value, Valid: true}
}

func (p *Price) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "" || s == "null" {
		return nil
	}
	value, err := strconv.ParseFloat(s, 64)
	if err != nil || value < 0 {
		return nil
	}
	p.Value = value
	p.Valid = true
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.FormatFloat(p.Value, 'f', -1, 64)), nil
}

// MenuItem is one catalog entry as delivered by the item API. Records are
// immutable for the duration of a render cycle and replaced wholesale on
// every refetch.
type MenuItem struct {
	Id       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Price    Price  `json:"price"`
	OldPrice Price  `json:"oldPrice,omitempty"`
	Img      string `json:"img,omitempty"`
	Desc     string `json:"desc,omitempty"`
}

// GetPrice returns the parsed price and whether it is usable for
// price-range comparisons.
func (m *MenuItem) GetPrice() (float64, bool) {
	return m.Price.Value, m.Price.Valid
}
