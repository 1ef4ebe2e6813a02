package cart

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/slfireworks/quotation/internal/catalog"
)

// Engine maintains the active package. Lookup and merge are keyed by
// (id, size); iteration preserves insertion order. At rest no two lines
// share a key.
type Engine struct {
	lines    map[Key]*Line
	order    []Key
	notifier Notifier
}

func NewEngine(notifier Notifier) *Engine {
	return &Engine{
		lines:    map[Key]*Line{},
		notifier: notifier,
	}
}

// AddOrIncrement merges a catalog selection into the cart: an existing
// (id, size) line gains quantity 1 and has its image backfilled if missing,
// otherwise a new line is appended with quantity 1. Always succeeds.
func (e *Engine) AddOrIncrement(product catalog.Product, variant catalog.SizeVariant) {
	key := Key{ID: product.ID, Size: variant.Size}
	imageSource := product.ImageSource()

	if line, ok := e.lines[key]; ok {
		line.Quantity++
		if line.Image == "" {
			line.Image = imageSource
		}
	} else {
		e.insert(Line{
			ID:       product.ID,
			Name:     product.Name,
			Size:     variant.Size,
			Price:    Price(variant.Price),
			Quantity: 1,
			Image:    imageSource,
		})
	}

	e.notify(fmt.Sprintf("%s (%s) added to cart!", product.Name, variant.Size))
}

// SetQuantity replaces the matched line's quantity, clamping to 1 from
// below so a cart line can never drop to zero through an edit.
func (e *Engine) SetQuantity(key Key, qty int) {
	if line, ok := e.lines[key]; ok {
		if qty < 1 {
			qty = 1
		}
		line.Quantity = qty
	}
}

// Rename replaces the matched line's display name. The name is not part of
// the identity, so the key is unchanged.
func (e *Engine) Rename(key Key, newName string) {
	if line, ok := e.lines[key]; ok {
		line.Name = newName
	}
}

// Resize moves the matched line to a new size. Because size is part of the
// identity, the line is re-keyed in place; if a line with the target key
// already exists the two merge, summing quantities into the earlier line.
func (e *Engine) Resize(key Key, newSize string) {
	line, ok := e.lines[key]
	if !ok || newSize == key.Size {
		return
	}

	newKey := Key{ID: key.ID, Size: newSize}
	if existing, clash := e.lines[newKey]; clash {
		existing.Quantity += line.Quantity
		if existing.Image == "" {
			existing.Image = line.Image
		}
		e.removeKey(key)
		return
	}

	delete(e.lines, key)
	line.Size = newSize
	e.lines[newKey] = line
	for i, k := range e.order {
		if k == key {
			e.order[i] = newKey
			break
		}
	}
}

// Reprice parses the raw price text for the matched line: empty input
// clears the price to the unset sentinel, non-numeric input coerces to 0.
func (e *Engine) Reprice(key Key, newPriceText string) {
	if line, ok := e.lines[key]; ok {
		line.Price = ParsePrice(newPriceText)
	}
}

// Remove deletes the matched line.
func (e *Engine) Remove(key Key) {
	e.removeKey(key)
}

// Clear empties the cart.
func (e *Engine) Clear() {
	e.lines = map[Key]*Line{}
	e.order = nil
}

// AddLine inserts a prepared line (custom admission, history reload). Lines
// sharing an existing key merge quantities.
func (e *Engine) AddLine(line Line) {
	if line.Quantity < 1 {
		line.Quantity = 1
	}
	if existing, ok := e.lines[line.Key()]; ok {
		existing.Quantity += line.Quantity
		if existing.Image == "" {
			existing.Image = line.Image
		}
		return
	}
	e.insert(line)
}

// Load replaces the cart content with the given lines.
func (e *Engine) Load(lines []Line) {
	e.Clear()
	for _, line := range lines {
		e.AddLine(line)
	}
}

// Lines returns the cart in insertion order. The slice and its elements are
// copies; the engine's state cannot be mutated through it.
func (e *Engine) Lines() []Line {
	out := make([]Line, 0, len(e.order))
	for _, key := range e.order {
		out = append(out, *e.lines[key])
	}
	return out
}

// Get returns a copy of the matched line.
func (e *Engine) Get(key Key) (Line, bool) {
	if line, ok := e.lines[key]; ok {
		return *line, true
	}
	return Line{}, false
}

// Len is the number of distinct lines.
func (e *Engine) Len() int {
	return len(e.order)
}

// Count is the aggregate item count (sum of quantities).
func (e *Engine) Count() int {
	total := 0
	for _, line := range e.lines {
		total += line.Quantity
	}
	return total
}

// NotifyMessage emits an ad-hoc event through the engine's notifier.
func (e *Engine) NotifyMessage(message string) {
	e.notify(message)
}

func (e *Engine) insert(line Line) {
	stored := line
	e.lines[line.Key()] = &stored
	e.order = append(e.order, line.Key())
}

func (e *Engine) removeKey(key Key) {
	if _, ok := e.lines[key]; !ok {
		return
	}
	delete(e.lines, key)
	for i, k := range e.order {
		if k == key {
			e.order = append(e.order[:i], e.order[i+1:]...)
			break
		}
	}
}

func (e *Engine) notify(message string) {
	if e.notifier == nil {
		return
	}
	e.notifier.Notify(Event{
		ID:        uuid.New(),
		Message:   message,
		CartCount: e.Count(),
	})
}
