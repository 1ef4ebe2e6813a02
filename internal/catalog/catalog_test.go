package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slfireworks/quotation/internal/images"
)

func baseProducts() []Product {
	return []Product{
		{ID: "p1", Name: "Sky Rocket", Image: "https://cdn.example/sky.png", Sizes: []SizeVariant{{Size: "Large", Price: 500}}},
		{ID: "p2", Name: "Ground Spinner", Sizes: []SizeVariant{{Size: "Small", Price: 120}, {Size: "Large", Price: 260}}},
	}
}

func TestImageSourceFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	withImage := Product{Name: "Sky Rocket", Image: "  https://cdn.example/sky.png  "}
	assert.Equal(t, "https://cdn.example/sky.png", withImage.ImageSource())

	withoutImage := Product{Name: "Ground Spinner"}
	assert.Equal(t, images.PlaceholderURI("Ground Spinner"), withoutImage.ImageSource())
}

func TestProviderPrependPutsCustomFirst(t *testing.T) {
	t.Parallel()

	provider := NewProvider(baseProducts())
	provider.Prepend(Product{ID: "custom-1", Name: "Client Special", Sizes: []SizeVariant{{Size: "Custom", Price: 900}}})
	provider.Prepend(Product{ID: "custom-2", Name: "Another", Sizes: []SizeVariant{{Size: "Custom", Price: 50}}})

	products := provider.Products()
	require.Len(t, products, 4)
	assert.Equal(t, "custom-2", products[0].ID)
	assert.Equal(t, "custom-1", products[1].ID)
	assert.Equal(t, "p1", products[2].ID)
}

func TestProviderFind(t *testing.T) {
	t.Parallel()

	provider := NewProvider(baseProducts())
	provider.Prepend(Product{ID: "custom-1", Name: "Client Special"})

	found, ok := provider.Find("custom-1")
	require.True(t, ok)
	assert.Equal(t, "Client Special", found.Name)

	found, ok = provider.Find("p2")
	require.True(t, ok)
	assert.Equal(t, "Ground Spinner", found.Name)

	_, ok = provider.Find("missing")
	assert.False(t, ok)
}

func TestProductsReturnsCopy(t *testing.T) {
	t.Parallel()

	provider := NewProvider(baseProducts())
	products := provider.Products()
	products[0].Name = "mutated"

	again := provider.Products()
	assert.Equal(t, "Sky Rocket", again[0].Name)
}
