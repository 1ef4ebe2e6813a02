package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/slfireworks/quotation/pkg/errors"
)

func TestInitials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"Sky Rocket", "SR"},
		{"thunder", "T"},
		{"Mega Cake Deluxe", "MC"},
		{"", "+"},
		{"   ", "+"},
		{"日本 花火", "日花"},
		{"ólafur", "Ó"},
	}
	for _, tt := range tests {
		if got := Initials(tt.name); got != tt.want {
			t.Fatalf("Initials(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestPlaceholderDeterministic(t *testing.T) {
	t.Parallel()

	first := Placeholder("Sky Rocket", 64)
	second := Placeholder("Sky Rocket", 64)
	require.NotEmpty(t, first)
	assert.Equal(t, first, second)

	other := Placeholder("Ground Spinner", 64)
	assert.NotEqual(t, first, other)

	img, err := png.Decode(bytes.NewReader(first))
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestSquarePadsAndCovers(t *testing.T) {
	t.Parallel()

	src := image.NewRGBA(image.Rect(0, 0, 40, 10))
	out, err := Square(src, 32)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
	assert.Equal(t, 32, img.Bounds().Dy())
}

func TestHTTPRendererPlaceholderShortCircuit(t *testing.T) {
	t.Parallel()

	r := NewHTTPRenderer(nil, 48)
	out, err := r.Render(context.Background(), PlaceholderURI("Sky Rocket"))
	require.NoError(t, err)
	assert.Equal(t, Placeholder("Sky Rocket", 48), out)
}

func TestHTTPRendererFetchesAndSquares(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	src := image.NewRGBA(image.Rect(0, 0, 10, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 10; x++ {
			src.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	require.NoError(t, png.Encode(&buf, src))

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(buf.Bytes())
	}))
	defer server.Close()

	r := NewHTTPRenderer(server.Client(), 32)
	out, err := r.Render(context.Background(), server.URL+"/rocket.png")
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestHTTPRendererFailureIsResourceUnavailable(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	r := NewHTTPRenderer(server.Client(), 32)
	_, err := r.Render(context.Background(), server.URL+"/missing.png")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeResource))

	_, err = r.Render(context.Background(), "")
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeResource))
}

type countingRenderer struct {
	calls int
}

func (c *countingRenderer) Render(_ context.Context, uri string) ([]byte, error) {
	c.calls++
	if uri == "bad" {
		return nil, pkgerrors.New(pkgerrors.CodeResource, "nope")
	}
	return []byte(uri), nil
}

func TestCachingRenderer(t *testing.T) {
	t.Parallel()

	inner := &countingRenderer{}
	cached := NewCachingRenderer(inner)

	first, err := cached.Render(context.Background(), "a.png")
	require.NoError(t, err)
	second, err := cached.Render(context.Background(), " a.png ")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, inner.calls, "normalized URIs should share one render")

	// Failures are not cached.
	_, err = cached.Render(context.Background(), "bad")
	require.Error(t, err)
	_, err = cached.Render(context.Background(), "bad")
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}
