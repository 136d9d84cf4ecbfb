package services

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// amountPattern matches a numeric amount with an optional currency prefix and
// an optional trailing magnitude suffix, after thousands separators and
// whitespace have been stripped: "$1.2B", "500M", "425000000".
var amountPattern = regexp.MustCompile(`^\$?([0-9]*\.?[0-9]+)([KMB])?$`)

var magnitudeMultipliers = map[string]float64{
	"K": 1e3,
	"M": 1e6,
	"B": 1e9,
}

// AmountNormalizer converts raw provider values into USD offer amounts.
// It is a total function over untrusted input: absent, malformed, negative,
// and non-finite values all resolve to zero, never to an error, so downstream
// filtering never branches on missing data.
type AmountNormalizer struct{}

// NewAmountNormalizer creates a new amount normalizer instance
func NewAmountNormalizer() *AmountNormalizer {
	return &AmountNormalizer{}
}

// NormalizeAmount converts one raw value into a non-negative USD amount.
// Accepted shapes: plain numbers, numeric strings, and numeric strings with a
// case-insensitive K/M/B magnitude suffix, with optional "$" prefix and ","
// thousands separators.
func (n *AmountNormalizer) NormalizeAmount(value any) float64 {
	switch typed := value.(type) {
	case nil:
		return 0
	case float64:
		return clampAmount(typed)
	case float32:
		return clampAmount(float64(typed))
	case int:
		return clampAmount(float64(typed))
	case int64:
		return clampAmount(float64(typed))
	case string:
		return n.normalizeAmountText(typed)
	default:
		logrus.WithFields(logrus.Fields{
			"component":  "AmountNormalizer",
			"value_type": fmt.Sprintf("%T", value),
		}).Debug("Unsupported amount value type, resolving to zero")
		return 0
	}
}

func (n *AmountNormalizer) normalizeAmountText(text string) float64 {
	cleaned := strings.ToUpper(strings.TrimSpace(text))
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return 0
	}

	match := amountPattern.FindStringSubmatch(cleaned)
	if match == nil {
		logrus.WithFields(logrus.Fields{
			"component": "AmountNormalizer",
			"raw_text":  text,
		}).Debug("Unparsable amount text, resolving to zero")
		return 0
	}

	parsedValue, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	if multiplier, hasSuffix := magnitudeMultipliers[match[2]]; hasSuffix {
		parsedValue *= multiplier
	}

	return clampAmount(parsedValue)
}

// ResolveOfferAmount resolves the final offer amount for a record. An
// explicit total field that normalizes to a positive value takes precedence;
// otherwise the amount is price multiplied by share count when both are
// known, and zero when the offering size is unconfirmed.
func (n *AmountNormalizer) ResolveOfferAmount(totalValue any, price *float64, shares *int64) float64 {
	if amount := n.NormalizeAmount(totalValue); amount > 0 {
		return amount
	}

	if price != nil && shares != nil {
		return clampAmount(*price * float64(*shares))
	}

	return 0
}

// clampAmount forces negative and non-finite parse results to zero
func clampAmount(amount float64) float64 {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0
	}
	return amount
}
