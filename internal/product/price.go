package product

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Price is a nullable amount. Missing and non-numeric values are kept as
// invalid and read back as zero.
type Price struct {
	Float64 float64
	Valid   bool
}

// NewPrice returns a valid price.
func NewPrice(v float64) Price {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Price{}
	}
	return Price{Float64: v, Valid: true}
}

// Amount returns the value, or 0 when the price is absent or malformed.
func (p Price) Amount() float64 {
	if !p.Valid {
		return 0
	}
	return p.Float64
}

// Scan implements sql.Scanner. Text that does not parse as a number
// yields an invalid price rather than an error.
func (p *Price) Scan(src any) error {
	*p = Price{}
	switch v := src.(type) {
	case nil:
	case float64:
		*p = NewPrice(v)
	case float32:
		*p = NewPrice(float64(v))
	case int64:
		*p = NewPrice(float64(v))
	case int32:
		*p = NewPrice(float64(v))
	case []byte:
		*p = parsePrice(string(v))
	case string:
		*p = parsePrice(v)
	default:
		return fmt.Errorf("price: unsupported type %T", src)
	}
	return nil
}

// Value implements driver.Valuer.
func (p Price) Value() (driver.Value, error) {
	if !p.Valid {
		return nil, nil
	}
	return p.Float64, nil
}

// UnmarshalJSON accepts numbers, numeric strings and null. Anything else
// decodes to an invalid price.
func (p *Price) UnmarshalJSON(data []byte) error {
	*p = Price{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return nil
		}
		*p = parsePrice(s)
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return nil
	}
	*p = NewPrice(f)
	return nil
}

func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(p.Float64)
}

func parsePrice(s string) Price {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return Price{}
	}
	return NewPrice(f)
}
