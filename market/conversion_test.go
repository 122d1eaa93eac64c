package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteToAccountRate_QuoteEqualsAccount(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	rate, err := QuoteToAccountRate("EUR_USD", r.LookupFX("EUR_USD"), "usd", 1.0850)
	require.NoError(t, err)
	assert.Equal(t, 1.0, rate)
}

func TestQuoteToAccountRate_BaseEqualsAccount(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	rate, err := QuoteToAccountRate("USDJPY", r.LookupFX("USDJPY"), "USD", 150)
	require.NoError(t, err)
	assert.Equal(t, 150.0, rate)

	_, err = QuoteToAccountRate("USDJPY", r.LookupFX("USDJPY"), "USD", 0)
	assert.Error(t, err)
}

func TestQuoteToAccountRate_Cross(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	rate, err := QuoteToAccountRate("EURGBP", r.LookupFX("EURGBP"), "USD", 0.85)
	assert.ErrorContains(t, err, "cross conversion not implemented")
	assert.Equal(t, 0.0, rate)
}
