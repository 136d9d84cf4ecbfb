package services

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmount(t *testing.T) {
	normalizer := NewAmountNormalizer()

	testCases := []struct {
		name     string
		input    any
		expected float64
	}{
		{name: "millions suffix", input: "500M", expected: 500_000_000},
		{name: "billions suffix with decimal", input: "1.2B", expected: 1_200_000_000},
		{name: "thousands suffix lowercase", input: "250k", expected: 250_000},
		{name: "currency prefix and separators", input: "$1,200,000,000", expected: 1_200_000_000},
		{name: "plain numeric string", input: "425000000", expected: 425_000_000},
		{name: "plain number", input: float64(425_000_000), expected: 425_000_000},
		{name: "integer value", input: 1_000_000, expected: 1_000_000},
		{name: "absent value", input: nil, expected: 0},
		{name: "empty string", input: "", expected: 0},
		{name: "unparsable text", input: "to be announced", expected: 0},
		{name: "negative number clamped", input: float64(-500), expected: 0},
		{name: "negative string rejected", input: "-500M", expected: 0},
		{name: "unsupported type", input: []string{"500M"}, expected: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, normalizer.NormalizeAmount(tc.input))
		})
	}
}

func TestResolveOfferAmount(t *testing.T) {
	normalizer := NewAmountNormalizer()
	price := 25.00
	shares := int64(20_000_000)

	t.Run("explicit total takes precedence over price times shares", func(t *testing.T) {
		amount := normalizer.ResolveOfferAmount("1.2B", &price, &shares)
		assert.Equal(t, 1_200_000_000.0, amount)
	})

	t.Run("absent total falls back to price times shares", func(t *testing.T) {
		amount := normalizer.ResolveOfferAmount(nil, &price, &shares)
		assert.Equal(t, 500_000_000.0, amount)
	})

	t.Run("unparsable total falls back to price times shares", func(t *testing.T) {
		amount := normalizer.ResolveOfferAmount("TBD", &price, &shares)
		assert.Equal(t, 500_000_000.0, amount)
	})

	t.Run("fully absent resolves to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, normalizer.ResolveOfferAmount(nil, nil, nil))
	})

	t.Run("price without shares resolves to zero", func(t *testing.T) {
		assert.Equal(t, 0.0, normalizer.ResolveOfferAmount(nil, &price, nil))
	})
}

func TestNormalizeAmountProperties(t *testing.T) {
	normalizer := NewAmountNormalizer()
	properties := gopter.NewProperties(nil)

	properties.Property("any string input resolves to a non-negative amount", prop.ForAll(
		func(input string) bool {
			return normalizer.NormalizeAmount(input) >= 0
		},
		gen.AnyString(),
	))

	properties.Property("any numeric input resolves to a non-negative amount", prop.ForAll(
		func(input float64) bool {
			return normalizer.NormalizeAmount(input) >= 0
		},
		gen.Float64(),
	))

	properties.Property("resolution from price and shares is never negative", prop.ForAll(
		func(price float64, shares int64) bool {
			return normalizer.ResolveOfferAmount(nil, &price, &shares) >= 0
		},
		gen.Float64(),
		gen.Int64(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
