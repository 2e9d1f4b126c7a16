package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

// Money is a value object for monetary amounts, stored in minor units
// (kopecks) to avoid floating point arithmetic on prices.
// It is immutable - all operations return new Money instances.
type Money struct {
	kopecks int64
}

// NewMoney creates Money from an amount in kopecks
func NewMoney(kopecks int64) Money {
	return Money{kopecks: kopecks}
}

// ZeroMoney returns a zero-value Money
func ZeroMoney() Money {
	return Money{}
}

// Kopecks returns the amount in minor units
func (m Money) Kopecks() int64 {
	return m.kopecks
}

// IsZero returns true if the amount is zero
func (m Money) IsZero() bool {
	return m.kopecks == 0
}

// IsNegative returns true if the amount is negative
func (m Money) IsNegative() bool {
	return m.kopecks < 0
}

// Add returns a new Money with the sum of both amounts
func (m Money) Add(other Money) Money {
	return Money{kopecks: m.kopecks + other.kopecks}
}

// MultiplyByInt returns a new Money multiplied by an integer count
func (m Money) MultiplyByInt(factor int64) Money {
	return Money{kopecks: m.kopecks * factor}
}

// Equal returns true if both amounts are equal
func (m Money) Equal(other Money) bool {
	return m.kopecks == other.kopecks
}

// String formats the amount as rubles and kopecks, e.g. "180 ₽ 00"
func (m Money) String() string {
	kop := m.kopecks % 100
	if kop < 0 {
		kop = -kop
	}
	return fmt.Sprintf("%d ₽ %02d", m.kopecks/100, kop)
}

// MarshalJSON serializes Money as its kopeck amount
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.kopecks)
}

// UnmarshalJSON deserializes Money from a kopeck amount
func (m *Money) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &m.kopecks)
}

// Value implements driver.Valuer for database storage
func (m Money) Value() (driver.Value, error) {
	return m.kopecks, nil
}

// Scan implements sql.Scanner for database retrieval
func (m *Money) Scan(value any) error {
	switch v := value.(type) {
	case int64:
		m.kopecks = v
		return nil
	case nil:
		m.kopecks = 0
		return nil
	default:
		return errors.New("unsupported type for Money")
	}
}
