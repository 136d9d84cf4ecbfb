package jobs

import (
	"context"
	"time"

	"github.com/fenilmodi00/ipo-monitor/services"
	"github.com/fenilmodi00/ipo-monitor/shared"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// RunState is the terminal state of one monitor run
type RunState string

const (
	RunStateCompleted   RunState = "completed"
	RunStateFailedFatal RunState = "failed_fatal"
)

// MonitorRunJob orchestrates one run of the IPO monitor: fetch today's
// calendar, parse and filter it, compose the report, send it. The run is
// single-shot and holds no state beyond its own metrics; a killed or failed
// run leaves nothing behind for the next one to trip over.
type MonitorRunJob struct {
	Provider  services.CalendarProvider
	Parser    *services.IPORecordParser
	Filter    *services.QualificationFilter
	Composer  *services.ReportComposer
	Notifier  services.Notifier
	Recipient string
	Threshold float64
	Location  *time.Location

	// Clock supplies "now"; injectable so tests can pin the reference date
	Clock func() time.Time
}

// NewMonitorRunJob creates a monitor run job with the wall clock as its clock
func NewMonitorRunJob(
	provider services.CalendarProvider,
	parser *services.IPORecordParser,
	filter *services.QualificationFilter,
	composer *services.ReportComposer,
	notifier services.Notifier,
	recipient string,
	threshold float64,
	location *time.Location,
) *MonitorRunJob {
	return &MonitorRunJob{
		Provider:  provider,
		Parser:    parser,
		Filter:    filter,
		Composer:  composer,
		Notifier:  notifier,
		Recipient: recipient,
		Threshold: threshold,
		Location:  location,
		Clock:     time.Now,
	}
}

// Run executes the monitor once. A nil return is the Completed state; any
// error is FailedFatal with the category identifying which phase failed.
// Parse failures of individual records are contained and never fail the run.
func (j *MonitorRunJob) Run(ctx context.Context) error {
	runID := uuid.New().String()
	metrics := shared.NewRunMetrics()
	logger := logrus.WithFields(logrus.Fields{
		"component": "MonitorRunJob",
		"run_id":    runID,
	})

	referenceDate := j.referenceDate()
	logger = logger.WithField("reference_date", referenceDate.Format("2006-01-02"))
	logger.Info("Starting IPO monitor run")

	fetchStart := time.Now()
	rawRecords, err := j.Provider.FetchIPOCalendar(ctx, referenceDate, referenceDate)
	metrics.FetchDuration = time.Since(fetchStart)
	if err != nil {
		logger.WithError(err).Error("IPO calendar fetch failed, no report will be sent")
		return err
	}
	metrics.RecordsFetched = len(rawRecords)

	entities, parseSummary := j.Parser.ParseAll(rawRecords)
	metrics.RecordsParsed = parseSummary.ParsedRecords
	metrics.RecordsSkipped = parseSummary.SkippedCount

	qualifying := j.Filter.SelectQualifying(entities, referenceDate, j.Threshold)
	metrics.QualifyingCount = len(qualifying)

	report, err := j.Composer.Compose(qualifying, referenceDate)
	if err != nil {
		logger.WithError(err).Error("Report composition failed")
		return err
	}

	sendStart := time.Now()
	err = j.Notifier.Send(j.Recipient, report.Subject, report.TextBody, report.HTMLBody)
	metrics.SendDuration = time.Since(sendStart)
	if err != nil {
		logger.WithError(err).Error("Report delivery failed; report is not queued, next scheduled run supersedes it")
		return err
	}

	metrics.LogSummary(logger.WithField("state", string(RunStateCompleted)))
	return nil
}

// referenceDate is today's calendar date in the configured timezone,
// truncated to midnight UTC so date comparisons see a pure date value.
func (j *MonitorRunJob) referenceDate() time.Time {
	now := j.Clock().In(j.Location)
	year, month, day := now.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
