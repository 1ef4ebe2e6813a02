package invoice

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/internal/images"
	"github.com/slfireworks/quotation/pkg/config"
	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
)

// placeholderOnlyRenderer resolves every URI to a generated tile, so builds
// run without any network.
type placeholderOnlyRenderer struct{}

func (placeholderOnlyRenderer) Render(_ context.Context, uri string) ([]byte, error) {
	return images.Placeholder(uri, 32), nil
}

// failingRenderer refuses everything, simulating total image unavailability.
type failingRenderer struct{}

func (failingRenderer) Render(context.Context, string) ([]byte, error) {
	return nil, pkgerrors.New(pkgerrors.CodeResource, "offline")
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

func testLines() []cart.Line {
	return []cart.Line{
		{ID: "p1", Name: "Sky Rocket", Size: "Large", Price: cart.Price(500), Quantity: 2, Image: "sky.png"},
		{ID: "p2", Name: "Ground Spinner", Size: "", Price: cart.Price(120), Quantity: 1},
		{ID: "custom-1", Name: "Client Special Mega Cake Arrangement", Size: "XL", Price: cart.Price(9000), Quantity: 1},
	}
}

func TestBuildProducesPDF(t *testing.T) {
	t.Parallel()

	assembler := NewAssembler(placeholderOnlyRenderer{}, testConfig(t), nil)
	meta := Metadata{
		InvoiceTo:          "Mr. Perera",
		EventDate:          "2026-04-12",
		IncludeEventDate:   true,
		IncludeBankDetails: true,
		Discount:           "100",
		Advance:            "500",
	}

	pdf, err := assembler.Build(context.Background(), testLines(), meta, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")), "output should be a PDF")
}

func TestBuildWithGallery(t *testing.T) {
	t.Parallel()

	assembler := NewAssembler(placeholderOnlyRenderer{}, testConfig(t), nil)
	meta := Metadata{InvoiceTo: "Client", IncludeGallery: true}

	pdf, err := assembler.Build(context.Background(), testLines(), meta, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestBuildDegradesWhenImagesUnavailable(t *testing.T) {
	t.Parallel()

	assembler := NewAssembler(failingRenderer{}, testConfig(t), nil)
	meta := Metadata{InvoiceTo: "Client", IncludeGallery: true}

	pdf, err := assembler.Build(context.Background(), testLines(), meta, time.Now())
	require.NoError(t, err, "image failures must never be fatal")
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestBuildEverySectionTogether(t *testing.T) {
	t.Parallel()

	assembler := NewAssembler(placeholderOnlyRenderer{}, testConfig(t), nil)

	lines := make([]cart.Line, 0, 7)
	for i := 0; i < 7; i++ {
		lines = append(lines, cart.Line{
			ID:       fmt.Sprintf("p%d", i),
			Name:     fmt.Sprintf("Item %d", i),
			Price:    cart.Price(float64(100 * (i + 1))),
			Quantity: i + 1,
		})
	}

	// No advance: totals end on the Total Amount row; 7 gallery cards leave
	// a partially filled final grid row.
	meta := Metadata{
		InvoiceTo:          "Sōma Perera",
		EventDate:          "2026-04-12",
		IncludeEventDate:   true,
		IncludeBankDetails: true,
		IncludeGallery:     true,
		Discount:           "50",
	}

	pdf, err := assembler.Build(context.Background(), lines, meta, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	withAdvance := meta
	withAdvance.Advance = "500"
	pdf, err = assembler.Build(context.Background(), lines, withAdvance, time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestUnderlinePercent(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 4.0, underlinePercent(""), "floor keeps a visible stub")
	assert.InDelta(t, 32.0, underlinePercent("Mr. Perera"), 1e-9)
	assert.Equal(t, underlinePercent("Perera"), underlinePercent("ペレラさん漢"),
		"width follows character count, not byte count")
	assert.Equal(t, 100.0, underlinePercent(strings.Repeat("x", 40)), "capped at the column width")
}

func TestFormatMoney(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Rs. 12,500", formatMoney(12500))
	assert.Equal(t, "Rs. 0", formatMoney(0))
	assert.Equal(t, "Rs. 1,234.56", formatMoney(1234.56))
}
