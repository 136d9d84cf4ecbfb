package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/fenilmodi00/ipo-monitor/models"
	"github.com/fenilmodi00/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
)

// providerDateLayout is the date format used by the Finnhub IPO calendar
const providerDateLayout = "2006-01-02"

// UnknownExchange is the placeholder for records that omit the listing venue
const UnknownExchange = "Unknown"

// IPORecordParser maps raw provider records into validated IPO entities.
// Parsing is total: a malformed record yields a per-record error that the
// caller logs and skips, never a failure of the whole batch.
type IPORecordParser struct {
	normalizer *AmountNormalizer
}

// NewIPORecordParser creates a new record parser using the given normalizer
func NewIPORecordParser(normalizer *AmountNormalizer) *IPORecordParser {
	return &IPORecordParser{
		normalizer: normalizer,
	}
}

// ParseSummary reports the outcome of parsing one calendar payload
type ParseSummary struct {
	TotalRecords  int
	ParsedRecords int
	SkippedCount  int
	SampleErrors  []error
}

// ParseRecord converts a single raw record into an IPO entity. It returns a
// malformed-record error when the ticker is missing or the listing date does
// not parse; every other field degrades to its documented default instead.
func (p *IPORecordParser) ParseRecord(raw models.RawIPORecord) (models.IPOEntity, error) {
	ticker := firstNonEmptyString(raw, "ticker", "symbol")
	if ticker == "" {
		return models.IPOEntity{}, malformedRecord("record has neither ticker nor symbol field")
	}

	dateText := stringField(raw, "date")
	listingDate, err := time.Parse(providerDateLayout, dateText)
	if err != nil {
		return models.IPOEntity{}, malformedRecord(fmt.Sprintf("record %s has unparsable date %q", ticker, dateText))
	}

	price := parsePriceValue(raw["price"])
	shares := parseShareCount(raw["numberOfShares"])

	exchange := stringField(raw, "exchange")
	if exchange == "" {
		exchange = UnknownExchange
	}

	return models.IPOEntity{
		Ticker:      ticker,
		CompanyName: stringField(raw, "name"),
		ListingDate: listingDate,
		Price:       price,
		Shares:      shares,
		OfferAmount: p.normalizer.ResolveOfferAmount(raw["totalSharesValue"], price, shares),
		Exchange:    exchange,
	}, nil
}

// ParseAll parses every record in the payload, skipping malformed entries and
// keeping the rest. One bad record never affects its neighbors.
func (p *IPORecordParser) ParseAll(records []models.RawIPORecord) ([]models.IPOEntity, ParseSummary) {
	summary := ParseSummary{TotalRecords: len(records)}
	entities := make([]models.IPOEntity, 0, len(records))

	for i, raw := range records {
		entity, err := p.ParseRecord(raw)
		if err != nil {
			summary.SkippedCount++
			if len(summary.SampleErrors) < 3 {
				summary.SampleErrors = append(summary.SampleErrors, err)
			}
			logrus.WithFields(logrus.Fields{
				"component":    "IPORecordParser",
				"record_index": i,
			}).WithError(err).Warn("Skipping malformed IPO record")
			continue
		}
		entities = append(entities, entity)
		summary.ParsedRecords++
	}

	if summary.SkippedCount > 0 {
		logrus.WithField("component", "IPORecordParser").
			Warn(shared.BuildSkippedRecordSummary(summary.ParsedRecords, summary.SkippedCount, summary.SampleErrors))
	}

	return entities, summary
}

func malformedRecord(message string) *shared.ServiceError {
	return shared.NewServiceError(
		shared.ErrorCategoryValidation,
		shared.CodeMalformedRecord,
		message,
		"ParseRecord",
		false,
		nil,
	)
}

// parsePriceValue extracts the offering price. Providers send either a plain
// number, a numeric string, or a range such as "10-12"; a range resolves to
// its midpoint, anything unparsable to nil. Price absence is distinct from a
// zero offer amount, so nil is preserved rather than collapsed to zero.
func parsePriceValue(value any) *float64 {
	switch typed := value.(type) {
	case float64:
		return positiveOrNil(typed)
	case int:
		return positiveOrNil(float64(typed))
	case string:
		return parsePriceText(typed)
	default:
		return nil
	}
}

func parsePriceText(text string) *float64 {
	cleaned := strings.TrimSpace(strings.ReplaceAll(text, "$", ""))
	if cleaned == "" {
		return nil
	}

	if low, high, isRange := strings.Cut(cleaned, "-"); isRange {
		lowValue, lowErr := strconv.ParseFloat(strings.TrimSpace(low), 64)
		highValue, highErr := strconv.ParseFloat(strings.TrimSpace(high), 64)
		if lowErr != nil || highErr != nil {
			return nil
		}
		return positiveOrNil((lowValue + highValue) / 2)
	}

	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return positiveOrNil(parsed)
}

func parseShareCount(value any) *int64 {
	switch typed := value.(type) {
	case float64:
		if typed <= 0 {
			return nil
		}
		count := int64(typed)
		return &count
	case int:
		if typed <= 0 {
			return nil
		}
		count := int64(typed)
		return &count
	case string:
		cleaned := strings.ReplaceAll(strings.TrimSpace(typed), ",", "")
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil || parsed <= 0 {
			return nil
		}
		count := int64(parsed)
		return &count
	default:
		return nil
	}
}

func positiveOrNil(value float64) *float64 {
	if value <= 0 {
		return nil
	}
	return &value
}

func stringField(raw models.RawIPORecord, key string) string {
	if value, exists := raw[key]; exists {
		if text, isString := value.(string); isString {
			return strings.TrimSpace(text)
		}
	}
	return ""
}

func firstNonEmptyString(raw models.RawIPORecord, keys ...string) string {
	for _, key := range keys {
		if value := stringField(raw, key); value != "" {
			return value
		}
	}
	return ""
}
