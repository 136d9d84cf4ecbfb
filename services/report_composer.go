package services

import (
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/fenilmodi00/ipo-monitor/models"
	"github.com/fenilmodi00/ipo-monitor/shared"
)

// reportHTMLTemplate renders the HTML alternative of the report. Inline
// styles only; mail clients ignore stylesheets.
var reportHTMLTemplate = template.Must(template.New("report").Parse(`<html>
<body style="font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px;">
<h2 style="color: #2c3e50;">IPO Monitor Report - {{.Date}}</h2>
{{if .Rows}}<p style="background-color: #d4edda; padding: 15px; border-radius: 5px; color: #155724;"><strong>Alert:</strong> Found <strong>{{.Count}}</strong> IPO(s) with offer amount above {{.Threshold}} today!</p>
<table style="width: 100%; border-collapse: collapse; margin-top: 20px;">
<thead>
<tr style="background-color: #3498db; color: white;">
<th style="padding: 12px; text-align: left;">Ticker</th>
<th style="padding: 12px; text-align: left;">Company</th>
<th style="padding: 12px; text-align: left;">Price</th>
<th style="padding: 12px; text-align: left;">Offer Amount</th>
<th style="padding: 12px; text-align: left;">Exchange</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td style="padding: 12px; border-bottom: 1px solid #ecf0f1;"><strong style="color: #2980b9;">{{.Ticker}}</strong></td>
<td style="padding: 12px; border-bottom: 1px solid #ecf0f1;">{{.Company}}</td>
<td style="padding: 12px; border-bottom: 1px solid #ecf0f1;">{{.Price}}</td>
<td style="padding: 12px; border-bottom: 1px solid #ecf0f1;"><strong style="color: #27ae60;">{{.OfferAmount}}</strong></td>
<td style="padding: 12px; border-bottom: 1px solid #ecf0f1;">{{.Exchange}}</td>
</tr>
{{end}}</tbody>
</table>
{{else}}<p style="color: #7f8c8d;">No IPOs with offer amount above {{.Threshold}} scheduled for today.</p>
{{end}}<hr style="border: 1px solid #ecf0f1; margin-top: 30px;">
<p style="font-size: 12px; color: #95a5a6;">This is an automated report from your IPO Monitor.<br>Threshold: Offer Amount &gt; {{.Threshold}}</p>
</body>
</html>
`))

type reportTemplateData struct {
	Date      string
	Count     int
	Threshold string
	Rows      []reportRow
}

type reportRow struct {
	Ticker      string
	Company     string
	Price       string
	OfferAmount string
	Exchange    string
}

// ReportComposer turns a qualifying set into the subject and bodies of the
// notification mail. Composition is pure and byte-stable: the same entities
// and reference date always produce identical output.
type ReportComposer struct {
	threshold float64
}

// NewReportComposer creates a composer that embeds the given threshold in its
// report text so recipients can see what bar was applied.
func NewReportComposer(threshold float64) *ReportComposer {
	return &ReportComposer{
		threshold: threshold,
	}
}

// Compose builds the report for the qualifying set, which may be empty. The
// entities are rendered in the order given; ordering is the filter's job.
func (c *ReportComposer) Compose(qualifying []models.IPOEntity, referenceDate time.Time) (models.Report, error) {
	date := referenceDate.Format("2006-01-02")
	thresholdText := FormatOfferAmount(c.threshold)

	data := reportTemplateData{
		Date:      date,
		Count:     len(qualifying),
		Threshold: thresholdText,
		Rows:      make([]reportRow, 0, len(qualifying)),
	}
	for _, entity := range qualifying {
		data.Rows = append(data.Rows, reportRow{
			Ticker:      entity.Ticker,
			Company:     entity.CompanyName,
			Price:       FormatPrice(entity.Price),
			OfferAmount: FormatOfferAmount(entity.OfferAmount),
			Exchange:    entity.Exchange,
		})
	}

	var htmlBody strings.Builder
	if err := reportHTMLTemplate.Execute(&htmlBody, data); err != nil {
		return models.Report{}, shared.WrapError(err, shared.ErrorCategoryProcessing, shared.CodeReportComposeFailed, "Compose", false)
	}

	return models.Report{
		Subject:         c.composeSubject(len(qualifying), date),
		TextBody:        c.composeTextBody(qualifying, date, thresholdText),
		HTMLBody:        htmlBody.String(),
		QualifyingCount: len(qualifying),
	}, nil
}

func (c *ReportComposer) composeSubject(count int, date string) string {
	if count == 0 {
		return fmt.Sprintf("IPO Monitor Report - %s", date)
	}
	return fmt.Sprintf("IPO Alert: %d Large IPO(s) Today - %s", count, date)
}

func (c *ReportComposer) composeTextBody(qualifying []models.IPOEntity, date, thresholdText string) string {
	var body strings.Builder

	if len(qualifying) == 0 {
		fmt.Fprintf(&body, "IPO Monitor Report - %s\n\n", date)
		fmt.Fprintf(&body, "No IPOs with offer amount above %s scheduled for today.\n", thresholdText)
		return body.String()
	}

	fmt.Fprintf(&body, "IPO Monitor Report - %s\n", date)
	fmt.Fprintf(&body, "Found %d IPO(s) with offer amount above %s\n", len(qualifying), thresholdText)
	body.WriteString(strings.Repeat("=", 50) + "\n\n")

	for _, entity := range qualifying {
		fmt.Fprintf(&body, "Ticker: %s\n", entity.Ticker)
		fmt.Fprintf(&body, "Company: %s\n", entity.CompanyName)
		fmt.Fprintf(&body, "IPO Date: %s\n", entity.ListingDate.Format("2006-01-02"))
		fmt.Fprintf(&body, "Price: %s\n", FormatPrice(entity.Price))
		fmt.Fprintf(&body, "Shares: %s\n", formatShareCount(entity.Shares))
		fmt.Fprintf(&body, "Offer Amount: %s\n", FormatOfferAmount(entity.OfferAmount))
		fmt.Fprintf(&body, "Exchange: %s\n", entity.Exchange)
		body.WriteString(strings.Repeat("-", 30) + "\n\n")
	}

	return body.String()
}

// FormatOfferAmount renders a USD amount with a magnitude suffix: billions as
// "$X.XXB", millions as "$X.XXM", smaller values with thousands separators.
func FormatOfferAmount(amount float64) string {
	switch {
	case amount >= 1e9:
		return fmt.Sprintf("$%.2fB", amount/1e9)
	case amount >= 1e6:
		return fmt.Sprintf("$%.2fM", amount/1e6)
	default:
		return "$" + groupThousands(fmt.Sprintf("%.2f", amount))
	}
}

// FormatPrice renders an offering price, or "N/A" when unannounced
func FormatPrice(price *float64) string {
	if price == nil {
		return "N/A"
	}
	return fmt.Sprintf("$%.2f", *price)
}

func formatShareCount(shares *int64) string {
	if shares == nil {
		return "N/A"
	}
	return groupThousands(fmt.Sprintf("%d", *shares))
}

// groupThousands inserts "," separators into the integer part of a plain
// non-negative decimal string
func groupThousands(number string) string {
	integerPart, fraction, hasFraction := strings.Cut(number, ".")

	var grouped strings.Builder
	for i, digit := range integerPart {
		if i > 0 && (len(integerPart)-i)%3 == 0 {
			grouped.WriteByte(',')
		}
		grouped.WriteRune(digit)
	}

	if hasFraction {
		return grouped.String() + "." + fraction
	}
	return grouped.String()
}
