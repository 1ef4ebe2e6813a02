// Package admission validates ad-hoc item input and converts it into both a
// cart line and a catalog entry, so a custom item can be re-added later like
// any product.
package admission

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/internal/catalog"
	"github.com/slfireworks/quotation/internal/images"
	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
	"github.com/slfireworks/quotation/pkg/numeric"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" {
			return f.Name
		}
		return tag
	})
	return v
}

// Input is the raw custom-item form. Everything arrives as text; the only
// rule that can reject is a blank name.
type Input struct {
	Name  string `json:"name" validate:"required"`
	Size  string `json:"size"`
	Price string `json:"price"`
	Qty   string `json:"qty"`
}

// Result pairs the cart line with the catalog entry to prepend.
type Result struct {
	Line    cart.Line
	Product catalog.Product
}

// Admit validates and coerces the input. A blank name is the single
// validation failure in the system; everything else falls back (price 0,
// quantity 1, empty size). The synthesized id is custom-<epoch millis>.
func Admit(input Input, now time.Time) (Result, error) {
	input.Name = strings.TrimSpace(input.Name)
	if err := validate.Struct(input); err != nil {
		return Result{}, pkgerrors.New(pkgerrors.CodeValidation, "Please enter an item name").
			WithDetails(map[string]string{"name": "required"})
	}

	size := strings.TrimSpace(input.Size)
	price := numeric.FloatOrZero(input.Price)
	if price < 0 {
		price = 0
	}
	qty := numeric.Quantity(input.Qty)

	id := "custom-" + strconv.FormatInt(now.UnixMilli(), 10)
	placeholder := images.PlaceholderURI(input.Name)

	line := cart.Line{
		ID:       id,
		Name:     input.Name,
		Size:     size,
		Price:    cart.Price(price),
		Quantity: qty,
		Image:    placeholder,
	}

	variantSize := size
	if variantSize == "" {
		variantSize = "Custom"
	}
	product := catalog.Product{
		ID:    id,
		Name:  input.Name,
		Image: placeholder,
		Sizes: []catalog.SizeVariant{{Size: variantSize, Price: price}},
	}

	return Result{Line: line, Product: product}, nil
}
