package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSimplePrice(t *testing.T) {
	np := Normalize(&RawCandidate{Price: "$29.99"})

	assert.NotNil(t, np)
	assert.Equal(t, 29.99, np.Price)
	assert.Equal(t, 29.99, np.OriginalPrice)
	assert.Nil(t, np.SalePrice)
	assert.Equal(t, "USD", np.Currency)
	assert.False(t, np.IsOnSale)
}

func TestNormalizeSalePrice(t *testing.T) {
	np := Normalize(&RawCandidate{Price: "39.99", SalePrice: "29.99"})

	assert.NotNil(t, np)
	assert.True(t, np.IsOnSale)
	assert.Equal(t, 29.99, np.Price)
	assert.Equal(t, 39.99, np.OriginalPrice)
	if assert.NotNil(t, np.SalePrice) {
		assert.Equal(t, 29.99, *np.SalePrice)
	}
}

func TestNormalizeListPrice(t *testing.T) {
	np := Normalize(&RawCandidate{Price: "$24.99", ListPrice: "$34.99"})

	assert.NotNil(t, np)
	assert.Equal(t, 24.99, np.Price)
	assert.Equal(t, 34.99, np.OriginalPrice)
	assert.Nil(t, np.SalePrice)
	assert.False(t, np.IsOnSale)
}

// A sale price textually identical to the price is not a sale.
func TestNormalizeIdenticalSalePrice(t *testing.T) {
	np := Normalize(&RawCandidate{Price: "29.99", SalePrice: "29.99"})

	assert.NotNil(t, np)
	assert.False(t, np.IsOnSale)
	if assert.NotNil(t, np.SalePrice) {
		assert.Equal(t, 29.99, *np.SalePrice)
	}
}

func TestNormalizeResolutionOrder(t *testing.T) {
	// Only a list price: it becomes the final price
	np := Normalize(&RawCandidate{ListPrice: "$49.99"})
	assert.NotNil(t, np)
	assert.Equal(t, 49.99, np.Price)
	assert.Equal(t, 49.99, np.OriginalPrice)

	// Sale price beats both
	np = Normalize(&RawCandidate{Price: "30", SalePrice: "20", ListPrice: "40"})
	assert.NotNil(t, np)
	assert.Equal(t, 20.0, np.Price)
	assert.Equal(t, 40.0, np.OriginalPrice)
	assert.True(t, np.IsOnSale)
}

func TestNormalizeExplicitCurrency(t *testing.T) {
	np := Normalize(&RawCandidate{Price: "29.99", Currency: "eur"})
	assert.NotNil(t, np)
	assert.Equal(t, "EUR", np.Currency)

	// A symbol-bearing currency string goes through glyph detection
	np = Normalize(&RawCandidate{Price: "29.99", Currency: "£"})
	assert.NotNil(t, np)
	assert.Equal(t, "GBP", np.Currency)

	// Inferred from the chosen price string when absent
	np = Normalize(&RawCandidate{Price: "€29.99"})
	assert.NotNil(t, np)
	assert.Equal(t, "EUR", np.Currency)
}

func TestNormalizeFailures(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize(&RawCandidate{}))
	assert.Nil(t, Normalize(&RawCandidate{Price: "invalid"}))
	assert.Nil(t, Normalize(&RawCandidate{Price: "0"}))
	assert.Nil(t, Normalize(&RawCandidate{Price: "-10.00"}))
	// The winning field fails to parse: no partial record from listPrice
	assert.Nil(t, Normalize(&RawCandidate{SalePrice: "n/a", ListPrice: "39.99"}))
}

func TestNormalizeUnparseableListPrice(t *testing.T) {
	np := Normalize(&RawCandidate{Price: "$19.99", ListPrice: "see details"})

	assert.NotNil(t, np)
	assert.Equal(t, 19.99, np.Price)
	assert.Equal(t, 19.99, np.OriginalPrice)
}
