package invoice

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/slfireworks/quotation/internal/cart"
	"github.com/slfireworks/quotation/internal/images"
)

// assetSet holds every bitmap the document needs, fetched up front. A nil
// entry means the fetch failed and the section degrades (icon omitted,
// product card falls back to a placeholder).
type assetSet struct {
	backdrop []byte
	logo     []byte

	regIcon     []byte
	personIcon  []byte
	addressIcon []byte
	phoneIcon   []byte
	emailIcon   []byte
	webIcon     []byte

	productImages [][]byte
}

// fetchAssets runs all image fetches concurrently and joins on completion.
// Every fetch either resolves or individually degrades to nil within the
// timeout; no failure propagates.
func (a *Assembler) fetchAssets(ctx context.Context, lines []cart.Line, includeGallery bool) *assetSet {
	ctx, cancel := context.WithTimeout(ctx, a.fetchTimeout)
	defer cancel()

	set := &assetSet{}
	var g errgroup.Group

	fetch := func(uri string, dst *[]byte) {
		if uri == "" {
			return
		}
		g.Go(func() error {
			rendered, err := a.renderer.Render(ctx, uri)
			if err != nil {
				a.log.Warn(ctx, "image unavailable, continuing without it", err)
				return nil
			}
			*dst = rendered
			return nil
		})
	}

	fetch(a.brand.BackdropURI, &set.backdrop)
	fetch(a.brand.LogoURI, &set.logo)
	fetch(a.brand.RegIcon, &set.regIcon)
	fetch(a.brand.PersonIcon, &set.personIcon)
	fetch(a.brand.AddressIcon, &set.addressIcon)
	fetch(a.brand.PhoneIcon, &set.phoneIcon)
	fetch(a.brand.EmailIcon, &set.emailIcon)
	fetch(a.brand.WebIcon, &set.webIcon)

	if includeGallery {
		set.productImages = make([][]byte, len(lines))
		for i, line := range lines {
			i, line := i, line
			g.Go(func() error {
				set.productImages[i] = a.productImage(ctx, line)
				return nil
			})
		}
	}

	_ = g.Wait()
	return set
}

// productImage resolves the card bitmap for one line: the line's own image
// first, then a placeholder keyed by the item name.
func (a *Assembler) productImage(ctx context.Context, line cart.Line) []byte {
	uri := line.Image
	if uri == "" {
		uri = images.PlaceholderURI(line.Name)
	}
	if rendered, err := a.renderer.Render(ctx, uri); err == nil {
		return rendered
	}

	name := line.Name
	if name == "" {
		name = "Item"
	}
	rendered, err := a.renderer.Render(ctx, images.PlaceholderURI(name))
	if err != nil {
		a.log.Warn(ctx, "placeholder render failed, card will have no image", err)
		return nil
	}
	return rendered
}
