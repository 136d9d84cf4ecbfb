package models

import "time"

// RawIPORecord is a single entry from the provider's IPO calendar payload.
// The calendar endpoint mixes strings and numbers freely (price may arrive as
// "14.00-16.00", the total value as a number or as "1.2B") and every field is
// optional, so the record is kept as an untyped mapping and validated
// explicitly by the parser instead of being decoded into a fixed schema.
type RawIPORecord map[string]any

// IPOEntity is a validated IPO calendar entry.
//
// OfferAmount is always resolvable: when the provider supplies neither a total
// value nor a usable price/shares pair it is an explicit zero, never a missing
// field. Price and Shares stay nil when unannounced, which is a different
// condition from a zero amount.
type IPOEntity struct {
	Ticker      string
	CompanyName string
	ListingDate time.Time
	Price       *float64
	Shares      *int64
	OfferAmount float64
	Exchange    string
}

// Report is the composed notification for one monitor run.
type Report struct {
	Subject         string
	TextBody        string
	HTMLBody        string
	QualifyingCount int
}
