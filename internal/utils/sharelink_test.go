package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSupplier_RoundTrip(t *testing.T) {
	names := []string{
		"Fornecedor & Cia",
		"Acme",
		"Locação São Paulo Ltda.",
		"a+b=c?d#e/f",
		"100% Tools",
		"  spaced  ",
		"quote\"and'apostrophe",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			decoded, err := DecodeSupplier(EncodeSupplier(name))
			require.NoError(t, err)
			assert.Equal(t, name, decoded)
		})
	}
}

func TestEncodeSupplier_Format(t *testing.T) {
	assert.Equal(t, "Fornecedor%20%26%20Cia", EncodeSupplier("Fornecedor & Cia"))
}

func TestBuildShareLink(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		link, err := BuildShareLink("https://rentals.example.com/", "Fornecedor & Cia")
		require.NoError(t, err)
		assert.Equal(t, "https://rentals.example.com/#/view?supplier=Fornecedor%20%26%20Cia", link)
	})

	t.Run("Drops existing fragment", func(t *testing.T) {
		link, err := BuildShareLink("https://rentals.example.com/#/old", "Acme")
		require.NoError(t, err)
		assert.Equal(t, "https://rentals.example.com/#/view?supplier=Acme", link)
	})

	t.Run("Wildcard supplier", func(t *testing.T) {
		for _, supplier := range []string{"", "all", "  "} {
			link, err := BuildShareLink("https://rentals.example.com/", supplier)
			assert.ErrorIs(t, err, ErrShareSupplierRequired)
			assert.Empty(t, link)
		}
	})

	t.Run("Supplier named All", func(t *testing.T) {
		link, err := BuildShareLink("https://rentals.example.com/", "All")
		require.NoError(t, err)
		supplier, err := ParseShareLink(link)
		require.NoError(t, err)
		assert.Equal(t, "All", supplier)
	})
}

func TestParseShareLink(t *testing.T) {
	t.Run("Full link round trip", func(t *testing.T) {
		link, err := BuildShareLink("http://localhost:5173/", "Fornecedor & Cia")
		require.NoError(t, err)

		supplier, err := ParseShareLink(link)
		require.NoError(t, err)
		assert.Equal(t, "Fornecedor & Cia", supplier)
	})

	t.Run("Fragment only", func(t *testing.T) {
		supplier, err := ParseShareLink("#/view?supplier=Beta%20Equipamentos")
		require.NoError(t, err)
		assert.Equal(t, "Beta Equipamentos", supplier)
	})

	t.Run("Other route", func(t *testing.T) {
		_, err := ParseShareLink("http://localhost/#/rentals")
		assert.ErrorIs(t, err, ErrInvalidShareLink)
	})

	t.Run("Missing supplier", func(t *testing.T) {
		_, err := ParseShareLink("#/view?project=Tower")
		assert.ErrorIs(t, err, ErrInvalidShareLink)
	})

	t.Run("Wildcard supplier", func(t *testing.T) {
		_, err := ParseShareLink("#/view?supplier=all")
		assert.ErrorIs(t, err, ErrShareSupplierRequired)
	})

	t.Run("Bad escape", func(t *testing.T) {
		_, err := ParseShareLink("#/view?supplier=%zz")
		assert.ErrorIs(t, err, ErrInvalidShareLink)
	})
}
