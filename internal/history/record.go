// Package history retains finalized quotations: a bounded, most-recent-first
// list of compact records that can be searched, reloaded into an editing
// session, or deleted.
package history

import (
	"strconv"
	"time"

	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/internal/invoice"
	"github.com/slfireworks/quotation/internal/pricing"
)

// LineItem is the compact persisted form of a cart line.
type LineItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Image    string  `json:"image,omitempty"`
}

// Totals is the pricing snapshot frozen at export time.
type Totals struct {
	SubTotal           float64 `json:"subTotal"`
	Discount           float64 `json:"discount"`
	Advance            float64 `json:"advance"`
	TotalAfterDiscount float64 `json:"totalAfterDiscount"`
	BalanceDue         float64 `json:"balanceDue"`
}

// Inputs preserves the raw form values so a reloaded quotation shows
// exactly what the user typed. Pointer fields distinguish "absent" in
// records written by older versions.
type Inputs struct {
	PDFName            string `json:"pdfName"`
	InvoiceTo          string `json:"invoiceTo"`
	EventDate          string `json:"eventDate"`
	Discount           string `json:"discount"`
	Advance            string `json:"advance"`
	IncludeBankDetails *bool  `json:"includeBankDetails,omitempty"`
}

// Record is one archived quotation.
type Record struct {
	ID                 string     `json:"id"`
	SavedAt            string     `json:"savedAt"`
	PDFName            string     `json:"pdfName"`
	InvoiceTo          string     `json:"invoiceTo"`
	InvoiceDate        string     `json:"invoiceDate"`
	EventDate          string     `json:"eventDate"`
	IncludeGallery     bool       `json:"includeGallery"`
	IncludeBankDetails *bool      `json:"includeBankDetails,omitempty"`
	Inputs             *Inputs    `json:"inputs,omitempty"`
	Totals             Totals     `json:"totals"`
	LineItems          []LineItem `json:"lineItems"`
	ItemsCount         int        `json:"itemsCount"`
}

// NewRecord freezes a completed export into its persisted form.
func NewRecord(lines []cart.Line, meta invoice.Metadata, snap pricing.Snapshot, now time.Time) Record {
	items := make([]LineItem, 0, len(lines))
	itemsCount := 0
	for _, line := range lines {
		items = append(items, LineItem{
			ID:       line.ID,
			Name:     line.Name,
			Size:     line.Size,
			Quantity: line.Quantity,
			Price:    line.Price.Float(),
			Image:    line.Image,
		})
		itemsCount += line.Quantity
	}

	invoiceTo := meta.InvoiceTo
	if invoiceTo == "" {
		invoiceTo = "Unnamed client"
	}

	includeBank := meta.IncludeBankDetails
	return Record{
		ID:                 "quote-" + strconv.FormatInt(now.UnixMilli(), 10),
		SavedAt:            now.UTC().Format(time.RFC3339),
		PDFName:            meta.SafePDFName(now),
		InvoiceTo:          invoiceTo,
		InvoiceDate:        invoice.FormatDate(now),
		EventDate:          meta.EventDate,
		IncludeGallery:     meta.IncludeGallery,
		IncludeBankDetails: &includeBank,
		Inputs: &Inputs{
			PDFName:            meta.PDFName,
			InvoiceTo:          meta.InvoiceTo,
			EventDate:          meta.EventDate,
			Discount:           meta.Discount,
			Advance:            meta.Advance,
			IncludeBankDetails: &includeBank,
		},
		Totals: Totals{
			SubTotal:           snap.SubTotal,
			Discount:           snap.Discount,
			Advance:            snap.Advance,
			TotalAfterDiscount: snap.TotalAfterDiscount,
			BalanceDue:         snap.BalanceDue,
		},
		LineItems:  items,
		ItemsCount: itemsCount,
	}
}

// FormatSavedAt renders the archive timestamp for display, e.g.
// "12 Apr 2026, 09:30". Unparseable values pass through; empty becomes
// "Unknown".
func FormatSavedAt(savedAt string) string {
	if savedAt == "" {
		return "Unknown"
	}
	t, err := time.Parse(time.RFC3339, savedAt)
	if err != nil {
		return savedAt
	}
	return t.Format("2 Jan 2006, 15:04")
}
