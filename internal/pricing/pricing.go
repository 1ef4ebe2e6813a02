// Package pricing derives the monetary totals of a cart under the discount
// and advance rules. Derivation is pure and recomputed on every read; no
// snapshot is ever cached.
package pricing

import (
	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/pkg/numeric"
)

// Snapshot is the derived monetary state of a cart.
type Snapshot struct {
	SubTotal           float64 `json:"subTotal"`
	Discount           float64 `json:"discount"`
	TotalAfterDiscount float64 `json:"totalAfterDiscount"`
	Advance            float64 `json:"advance"`
	BalanceDue         float64 `json:"balanceDue"`
}

// Derive computes the snapshot from the cart lines and the raw discount and
// advance inputs. Clamping order matters: the discount floors the total at
// 0 but is not itself capped against the subtotal; the advance is clamped
// against the post-discount total on both sides.
func Derive(lines []cart.Line, discountText, advanceText string) Snapshot {
	var subTotal float64
	for _, line := range lines {
		subTotal += line.Total()
	}

	discount := numeric.Amount(discountText)
	totalAfterDiscount := subTotal - discount
	if totalAfterDiscount < 0 {
		totalAfterDiscount = 0
	}

	advance := numeric.Amount(advanceText)
	if advance > totalAfterDiscount {
		advance = totalAfterDiscount
	}

	balanceDue := totalAfterDiscount - advance
	if balanceDue < 0 {
		balanceDue = 0
	}

	return Snapshot{
		SubTotal:           subTotal,
		Discount:           discount,
		TotalAfterDiscount: totalAfterDiscount,
		Advance:            advance,
		BalanceDue:         balanceDue,
	}
}
