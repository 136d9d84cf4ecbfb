package services

import (
	"sort"
	"strings"
	"time"

	"github.com/fenilmodi00/ipo-monitor/models"
	"github.com/sirupsen/logrus"
)

// QualificationFilter selects the IPO entities worth alerting on: listings
// for the reference date whose offer amount strictly exceeds the threshold.
// It is a pure function of its inputs; the reference date is injected so the
// filter never touches the wall clock.
type QualificationFilter struct{}

// NewQualificationFilter creates a new qualification filter instance
func NewQualificationFilter() *QualificationFilter {
	return &QualificationFilter{}
}

// SelectQualifying returns the qualifying subset in report order: offer
// amount descending, ties broken by ticker ascending (case-insensitive) so
// runs with tied amounts produce identical reports.
//
// An amount exactly equal to the threshold does not qualify; the alert is for
// offerings above the configured size, not at it.
func (f *QualificationFilter) SelectQualifying(entities []models.IPOEntity, referenceDate time.Time, threshold float64) []models.IPOEntity {
	qualifying := make([]models.IPOEntity, 0, len(entities))

	for _, entity := range entities {
		if !sameCalendarDay(entity.ListingDate, referenceDate) {
			continue
		}
		if entity.OfferAmount <= threshold {
			continue
		}

		logrus.WithFields(logrus.Fields{
			"component":    "QualificationFilter",
			"ticker":       entity.Ticker,
			"offer_amount": entity.OfferAmount,
			"exchange":     entity.Exchange,
		}).Info("Found qualifying IPO")
		qualifying = append(qualifying, entity)
	}

	sort.Slice(qualifying, func(i, j int) bool {
		if qualifying[i].OfferAmount != qualifying[j].OfferAmount {
			return qualifying[i].OfferAmount > qualifying[j].OfferAmount
		}
		return strings.ToLower(qualifying[i].Ticker) < strings.ToLower(qualifying[j].Ticker)
	})

	return qualifying
}

// sameCalendarDay compares calendar dates only, ignoring time-of-day and
// location offsets carried by either value.
func sameCalendarDay(a, b time.Time) bool {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	return aYear == bYear && aMonth == bMonth && aDay == bDay
}
