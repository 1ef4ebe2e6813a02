// Package images implements the bitmap rendering capability used by the
// document assembler: fetching a product or asset image, normalizing it to a
// square PNG, and generating deterministic placeholder tiles when no real
// image exists.
package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"

	xdraw "golang.org/x/image/draw"

	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
)

// Renderer resolves a URI into PNG bytes ready for PDF embedding. A failed
// render is reported as RESOURCE_UNAVAILABLE and is never fatal to callers.
type Renderer interface {
	Render(ctx context.Context, uri string) ([]byte, error)
}

const placeholderScheme = "placeholder://"

// PlaceholderURI builds the synthetic URI resolved to a generated initials
// tile instead of a remote fetch.
func PlaceholderURI(name string) string {
	return placeholderScheme + strings.TrimSpace(name)
}

// IsPlaceholder reports whether uri refers to a generated placeholder.
func IsPlaceholder(uri string) bool {
	return strings.HasPrefix(uri, placeholderScheme)
}

// HTTPRenderer fetches remote or local images and squares them to a fixed
// side. Placeholder URIs short-circuit to generated tiles.
type HTTPRenderer struct {
	client *http.Client
	side   int
}

func NewHTTPRenderer(client *http.Client, squareSide int) *HTTPRenderer {
	if client == nil {
		client = http.DefaultClient
	}
	if squareSide <= 0 {
		squareSide = 320
	}
	return &HTTPRenderer{client: client, side: squareSide}
}

func (r *HTTPRenderer) Render(ctx context.Context, uri string) ([]byte, error) {
	uri = strings.TrimSpace(uri)
	if uri == "" {
		return nil, pkgerrors.New(pkgerrors.CodeResource, "empty image uri")
	}
	if IsPlaceholder(uri) {
		return Placeholder(strings.TrimPrefix(uri, placeholderScheme), r.side), nil
	}

	raw, err := r.fetch(ctx, uri)
	if err != nil {
		return nil, err
	}
	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeResource, err, "decoding image")
	}
	return Square(src, r.side)
}

func (r *HTTPRenderer) fetch(ctx context.Context, uri string) ([]byte, error) {
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeResource, err, "building image request")
		}
		resp, err := r.client.Do(req)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeResource, err, "fetching image")
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return nil, pkgerrors.Newf(pkgerrors.CodeResource, "fetching image: status %d", resp.StatusCode)
		}
		raw, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeResource, err, "reading image body")
		}
		return raw, nil
	}

	// Anything else is treated as a local asset path.
	raw, err := os.ReadFile(uri)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeResource, err, "reading image file")
	}
	return raw, nil
}

// Square scales src to cover a side x side canvas, center-cropped on white,
// and re-encodes it as PNG.
func Square(src image.Image, side int) ([]byte, error) {
	bounds := src.Bounds()
	if bounds.Dx() == 0 || bounds.Dy() == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeResource, "empty image")
	}

	dst := image.NewRGBA(image.Rect(0, 0, side, side))
	xdraw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, xdraw.Src)

	scale := float64(side) / float64(bounds.Dx())
	if s := float64(side) / float64(bounds.Dy()); s > scale {
		scale = s
	}
	drawW := int(float64(bounds.Dx()) * scale)
	drawH := int(float64(bounds.Dy()) * scale)
	offsetX := (side - drawW) / 2
	offsetY := (side - drawH) / 2

	target := image.Rect(offsetX, offsetY, offsetX+drawW, offsetY+drawH)
	xdraw.ApproxBiLinear.Scale(dst, target, src, bounds, xdraw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeResource, err, "encoding image")
	}
	return buf.Bytes(), nil
}

// CachingRenderer memoizes successful renders keyed by normalized URI.
// Failures are not cached so a transient fetch error can recover on the next
// export.
type CachingRenderer struct {
	inner Renderer

	mu    sync.Mutex
	cache map[string][]byte
}

func NewCachingRenderer(inner Renderer) *CachingRenderer {
	return &CachingRenderer{inner: inner, cache: map[string][]byte{}}
}

func (c *CachingRenderer) Render(ctx context.Context, uri string) ([]byte, error) {
	key := strings.TrimSpace(uri) + "-square"

	c.mu.Lock()
	if cached, ok := c.cache[key]; ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	rendered, err := c.inner.Render(ctx, uri)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache[key] = rendered
	c.mu.Unlock()
	return rendered, nil
}
