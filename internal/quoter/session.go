// Package quoter ties the catalog, cart, pricing, invoice and history
// packages together into one editing session: the unit of state behind a
// single open quotation.
package quoter

import (
	"context"
	"sync"
	"time"

	"github.com/slfireworks/quotation/internal/admission"
	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/internal/catalog"
	"github.com/slfireworks/quotation/internal/history"
	"github.com/slfireworks/quotation/internal/invoice"
	"github.com/slfireworks/quotation/internal/pricing"
	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
	"github.com/slfireworks/quotation/pkg/logger"
)

// Confirmer gates destructive operations behind a yes/no prompt. A nil
// confirmer answers yes, which suits non-interactive embedding.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

// ConfirmerFunc adapts a function to the Confirmer interface.
type ConfirmerFunc func(ctx context.Context, prompt string) bool

func (f ConfirmerFunc) Confirm(ctx context.Context, prompt string) bool {
	return f(ctx, prompt)
}

// Builder produces the finished document bytes from a stable cart snapshot.
type Builder interface {
	Build(ctx context.Context, lines []cart.Line, meta invoice.Metadata, generatedAt time.Time) ([]byte, error)
}

// ExportResult is one completed export: the document, its file name, and
// the archived record.
type ExportResult struct {
	FileName string
	PDF      []byte
	Record   history.Record
}

// Session owns the mutable state of one quotation being edited. All methods
// are safe for concurrent use; document assembly runs on a snapshot taken
// at invocation time, so the cart stays editable while an export is in
// flight without the document going inconsistent with itself.
type Session struct {
	mu       sync.Mutex
	engine   *cart.Engine
	provider *catalog.Provider
	meta     invoice.Metadata
	builder  Builder
	archiver *history.Archiver
	confirm  Confirmer
	log      *logger.Logger
	now      func() time.Time
}

// Options configures a session. Catalog, Builder and Archiver are required
// for their respective operations; the rest default sensibly.
type Options struct {
	Catalog  []catalog.Product
	Builder  Builder
	Archiver *history.Archiver
	Notifier cart.Notifier
	Confirm  Confirmer
	Logger   *logger.Logger
	Now      func() time.Time
}

func NewSession(opts Options) *Session {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Session{
		engine:   cart.NewEngine(opts.Notifier),
		provider: catalog.NewProvider(opts.Catalog),
		meta:     invoice.DefaultMetadata(now()),
		builder:  opts.Builder,
		archiver: opts.Archiver,
		confirm:  opts.Confirm,
		log:      log,
		now:      now,
	}
}

// Catalog returns the browsable products, session-local custom entries
// first.
func (s *Session) Catalog() []catalog.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.provider.Products()
}

// AddProduct merges one unit of a catalog variant into the cart.
func (s *Session) AddProduct(productID, size string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, ok := s.provider.Find(productID)
	if !ok {
		return pkgerrors.Newf(pkgerrors.CodeNotFound, "product %s not found", productID)
	}
	for _, variant := range product.Sizes {
		if variant.Size == size {
			s.engine.AddOrIncrement(product, variant)
			return nil
		}
	}
	return pkgerrors.Newf(pkgerrors.CodeNotFound, "product %s has no %q size", productID, size)
}

// AdmitCustom validates an ad-hoc item, adds it to the cart, and injects a
// matching entry at the front of the catalog so it is browsable for the
// rest of the session.
func (s *Session) AdmitCustom(input admission.Input) (cart.Line, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := admission.Admit(input, s.now())
	if err != nil {
		return cart.Line{}, err
	}

	s.engine.AddLine(result.Line)
	s.provider.Prepend(result.Product)
	s.engine.NotifyMessage(result.Line.Name + " added to cart!")
	return result.Line, nil
}

// Cart returns a copy of the current lines in insertion order.
func (s *Session) Cart() []cart.Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Lines()
}

// CartCount is the sum of quantities across lines.
func (s *Session) CartCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Count()
}

func (s *Session) SetQuantity(key cart.Key, qty int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.SetQuantity(key, qty)
}

func (s *Session) Rename(key cart.Key, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Rename(key, name)
}

func (s *Session) Resize(key cart.Key, size string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Resize(key, size)
}

func (s *Session) Reprice(key cart.Key, priceText string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Reprice(key, priceText)
}

func (s *Session) Remove(key cart.Key) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Remove(key)
}

// ClearCart empties the cart and resets the document inputs, gated behind
// confirmation.
func (s *Session) ClearCart(ctx context.Context) bool {
	if !s.confirmed(ctx, "Clear the current package?") {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.engine.Clear()
	s.meta.PDFName = ""
	s.meta.InvoiceTo = ""
	s.meta.Discount = ""
	s.meta.Advance = ""
	return true
}

// Metadata returns the current document inputs.
func (s *Session) Metadata() invoice.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meta
}

// UpdateMetadata applies an edit to the document inputs.
func (s *Session) UpdateMetadata(apply func(*invoice.Metadata)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.meta)
}

// Pricing derives the totals from the live cart and inputs. Never stored;
// always recomputed on read.
func (s *Session) Pricing() pricing.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Derive(s.engine.Lines(), s.meta.Discount, s.meta.Advance)
}

// Export assembles the document from a stable snapshot, archives the
// completed quotation, and returns the bytes plus the record. An empty
// cart is rejected before any work happens.
func (s *Session) Export(ctx context.Context) (ExportResult, error) {
	s.mu.Lock()
	if s.engine.Len() == 0 {
		s.mu.Unlock()
		return ExportResult{}, pkgerrors.New(pkgerrors.CodePrecondition, "No items selected!")
	}
	lines := s.engine.Lines()
	meta := s.meta
	s.mu.Unlock()

	generatedAt := s.now()
	pdf, err := s.builder.Build(ctx, lines, meta, generatedAt)
	if err != nil {
		return ExportResult{}, err
	}

	snap := pricing.Derive(lines, meta.Discount, meta.Advance)
	record := s.archiver.Archive(lines, meta, snap, generatedAt)
	ctx = s.log.WithFields(ctx, map[string]any{
		"pdf_name":    record.PDFName,
		"items_count": record.ItemsCount,
	})
	s.log.Info(ctx, "quotation exported")

	return ExportResult{
		FileName: meta.SafePDFName(generatedAt) + ".pdf",
		PDF:      pdf,
		Record:   record,
	}, nil
}

// History returns the archived records, most recent first.
func (s *Session) History() []history.Record {
	return s.archiver.All()
}

// SearchHistory filters archived records by a case-insensitive term.
func (s *Session) SearchHistory(term string) []history.Record {
	return s.archiver.Search(term)
}

// LoadRecord rehydrates the cart and document inputs from an archived
// quotation, replacing the current editing state.
func (s *Session) LoadRecord(record history.Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines, meta := s.archiver.LoadForEdit(record, s.now())
	// The event-date toggle is session state, not part of the record; loading
	// a quotation leaves it as the user last set it.
	meta.IncludeEventDate = s.meta.IncludeEventDate
	s.engine.Load(lines)
	s.meta = meta
	s.engine.NotifyMessage("Quotation loaded for editing")
}

// DeleteRecord removes one archived quotation.
func (s *Session) DeleteRecord(id string) error {
	return s.archiver.Delete(id)
}

// ClearHistory empties the archive, gated behind confirmation.
func (s *Session) ClearHistory(ctx context.Context) bool {
	if !s.confirmed(ctx, "Clear all saved quotations?") {
		return false
	}
	s.archiver.ClearAll()
	return true
}

func (s *Session) confirmed(ctx context.Context, prompt string) bool {
	if s.confirm == nil {
		return true
	}
	return s.confirm.Confirm(ctx, prompt)
}
