package history

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/internal/invoice"
	"github.com/slfireworks/quotation/internal/pricing"
	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
	"github.com/slfireworks/quotation/pkg/logger"
)

// Store is the persistence capability behind the archiver: one namespaced
// slot holding the whole bounded record list.
type Store interface {
	Load() ([]Record, error)
	Save([]Record) error
}

// Archiver owns the in-memory history list and mirrors every mutation to
// the store. Storage failures are logged and swallowed; the session
// continues on the in-memory list.
type Archiver struct {
	store   Store
	limit   int
	log     *logger.Logger
	records []Record
}

// NewArchiver loads the persisted list once. Corrupt or absent data
// degrades to an empty history, never an error.
func NewArchiver(store Store, limit int, log *logger.Logger) *Archiver {
	if log == nil {
		log = logger.Nop()
	}
	if limit <= 0 {
		limit = 1000
	}

	a := &Archiver{store: store, limit: limit, log: log}
	if store != nil {
		records, err := store.Load()
		if err != nil {
			log.Warn(context.Background(), "history load failed, starting empty", err)
		} else {
			a.records = records
		}
	}
	return a
}

// Archive freezes a completed export, prepends it, evicts beyond the
// bound, and persists fire-and-forget.
func (a *Archiver) Archive(lines []cart.Line, meta invoice.Metadata, snap pricing.Snapshot, now time.Time) Record {
	record := NewRecord(lines, meta, snap, now)

	a.records = append([]Record{record}, a.records...)
	if len(a.records) > a.limit {
		a.records = a.records[:a.limit]
	}
	a.persist()
	return record
}

// All returns the list most-recent-first.
func (a *Archiver) All() []Record {
	out := make([]Record, len(a.records))
	copy(out, a.records)
	return out
}

func (a *Archiver) Len() int {
	return len(a.records)
}

// Search filters by case-insensitive substring over the name, client,
// date and item-name fields. An empty term returns everything in order.
func (a *Archiver) Search(term string) []Record {
	term = strings.TrimSpace(strings.ToLower(term))
	if term == "" {
		return a.All()
	}

	var out []Record
	for _, record := range a.records {
		if strings.Contains(haystack(record), term) {
			out = append(out, record)
		}
	}
	return out
}

func haystack(record Record) string {
	parts := []string{record.PDFName, record.InvoiceTo, record.InvoiceDate, record.EventDate}
	for _, item := range record.LineItems {
		parts = append(parts, item.Name)
	}
	filtered := parts[:0]
	for _, part := range parts {
		if part != "" {
			filtered = append(filtered, part)
		}
	}
	return strings.ToLower(strings.Join(filtered, " "))
}

// LoadForEdit reconstructs editable state from a record, preferring the
// raw inputs and falling back to the denormalized fields. Missing
// quantities default to 1 and missing prices to 0. The bank toggle
// defaults to on for records predating the toggle.
func (a *Archiver) LoadForEdit(record Record, now time.Time) ([]cart.Line, invoice.Metadata) {
	lines := make([]cart.Line, 0, len(record.LineItems))
	for _, item := range record.LineItems {
		qty := item.Quantity
		if qty < 1 {
			qty = 1
		}
		lines = append(lines, cart.Line{
			ID:       item.ID,
			Name:     item.Name,
			Size:     item.Size,
			Price:    cart.Price(item.Price),
			Quantity: qty,
			Image:    item.Image,
		})
	}

	meta := invoice.Metadata{
		PDFName:        record.PDFName,
		InvoiceTo:      record.InvoiceTo,
		EventDate:      record.EventDate,
		IncludeGallery: record.IncludeGallery,
		Discount:       formatAmount(record.Totals.Discount),
		Advance:        formatAmount(record.Totals.Advance),
	}
	if meta.EventDate == "" {
		meta.EventDate = now.Format("2006-01-02")
	}

	bankToggle := record.IncludeBankDetails
	if inputs := record.Inputs; inputs != nil {
		meta.PDFName = inputs.PDFName
		meta.InvoiceTo = inputs.InvoiceTo
		if inputs.EventDate != "" {
			meta.EventDate = inputs.EventDate
		}
		meta.Discount = inputs.Discount
		meta.Advance = inputs.Advance
		if inputs.IncludeBankDetails != nil {
			bankToggle = inputs.IncludeBankDetails
		}
	}

	meta.IncludeBankDetails = bankToggle == nil || *bankToggle
	return lines, meta
}

// Delete removes one record by id.
func (a *Archiver) Delete(id string) error {
	for i, record := range a.records {
		if record.ID == id {
			a.records = append(a.records[:i], a.records[i+1:]...)
			a.persist()
			return nil
		}
	}
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "history record %s not found", id)
}

// ClearAll empties the list. Callers gate this behind a confirmation.
func (a *Archiver) ClearAll() {
	a.records = nil
	a.persist()
}

func (a *Archiver) persist() {
	if a.store == nil {
		return
	}
	if err := a.store.Save(a.records); err != nil {
		a.log.Warn(context.Background(), "history save failed, keeping in-memory state", err)
	}
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
