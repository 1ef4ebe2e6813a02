// Package cart owns the active package being assembled: an ordered list of
// line items identified by (product id, size), with merge-on-add semantics
// and the derived aggregate counts the UI shows.
package cart

import (
	"encoding/json"

	"github.com/slfireworks/quotation/pkg/numeric"
)

// Key is the identity of a line: two lines are the same line iff both the
// product id and the size match.
type Key struct {
	ID   string
	Size string
}

// PriceValue is a unit price that may be unset. An unset price serializes as
// the empty string, mirroring a cleared price input, and contributes 0 to
// totals.
type PriceValue struct {
	Set    bool
	Amount float64
}

func Price(amount float64) PriceValue {
	return PriceValue{Set: true, Amount: amount}
}

// ParsePrice applies the reprice coercion rules: empty text stays unset,
// non-numeric text becomes 0, anything else is the parsed value.
func ParsePrice(text string) PriceValue {
	if text == "" {
		return PriceValue{}
	}
	return Price(numeric.FloatOrZero(text))
}

// Float returns the numeric value, 0 when unset.
func (p PriceValue) Float() float64 {
	if !p.Set {
		return 0
	}
	return p.Amount
}

func (p PriceValue) MarshalJSON() ([]byte, error) {
	if !p.Set {
		return json.Marshal("")
	}
	return json.Marshal(p.Amount)
}

func (p *PriceValue) UnmarshalJSON(data []byte) error {
	var amount float64
	if err := json.Unmarshal(data, &amount); err == nil {
		*p = Price(amount)
		return nil
	}
	var text string
	if err := json.Unmarshal(data, &text); err != nil {
		return err
	}
	*p = ParsePrice(text)
	return nil
}

// Line is one row of the active package.
type Line struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Size     string     `json:"size"`
	Price    PriceValue `json:"price"`
	Quantity int        `json:"quantity"`
	Image    string     `json:"image"`
}

func (l Line) Key() Key {
	return Key{ID: l.ID, Size: l.Size}
}

// Total is the line's contribution to the subtotal.
func (l Line) Total() float64 {
	return l.Price.Float() * float64(l.Quantity)
}

// Description is the printed form: name plus the size in parentheses when
// one is set.
func (l Line) Description() string {
	if l.Size == "" {
		return l.Name
	}
	return l.Name + " (" + l.Size + ")"
}
