package catalog_test

import (
	"io"
	"log/slog"
	"regexp"
	"testing"

	"CartPilot/internal/service/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *catalog.Service {
	t.Helper()
	s, err := catalog.NewCatalogService(slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	return s
}

func TestEmbeddedDataLoads(t *testing.T) {
	s := newService(t)

	assert.NotEmpty(t, s.Products())
	assert.NotEmpty(t, s.Stores())
}

func TestProductIdsAreWellFormed(t *testing.T) {
	s := newService(t)

	pattern := regexp.MustCompile(`^p\d+$`)
	for _, p := range s.Products() {
		assert.True(t, pattern.MatchString(p.ID), "product id %q", p.ID)
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, 0.0)
	}
}

func TestProductLookup(t *testing.T) {
	s := newService(t)

	p, ok := s.Product("p001")
	require.True(t, ok)
	assert.Equal(t, "Classic Oxford Shirt", p.Name)

	_, ok = s.Product("p999")
	assert.False(t, ok)
}

func TestStoreLookup(t *testing.T) {
	s := newService(t)

	st, ok := s.Store("s01")
	require.True(t, ok)
	assert.Equal(t, "Mumbai", st.City)

	_, ok = s.Store("s99")
	assert.False(t, ok)
}

func TestPurchaserOfUsesMostRecentTransaction(t *testing.T) {
	s := newService(t)

	// p001 was bought by u0002 (ord0001) and later by u0003 (ord0005)
	c, ok := s.PurchaserOf("p001")
	require.True(t, ok)
	assert.Equal(t, "u0003", c.ID)
}

func TestPurchaserOfMiss(t *testing.T) {
	s := newService(t)

	// p006 has stock history but no recorded purchase
	_, ok := s.PurchaserOf("p006")
	assert.False(t, ok)
}
