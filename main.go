package main

import (
	"context"
	"os"

	"github.com/fenilmodi00/ipo-monitor/config"
	"github.com/fenilmodi00/ipo-monitor/jobs"
	"github.com/fenilmodi00/ipo-monitor/services"
	"github.com/fenilmodi00/ipo-monitor/shared"
	"github.com/sirupsen/logrus"
)

// Exit codes let the invoking scheduler distinguish which phase failed
const (
	exitConfigInvalid = 1
	exitFetchFailed   = 2
	exitSendFailed    = 3
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.WithError(err).Error("Invalid configuration, aborting before any network call")
		os.Exit(exitConfigInvalid)
	}

	configureLogging(cfg.LogLevel)
	logrus.Info("IPO Monitor starting")

	clientFactory := shared.NewHTTPClientFactory(cfg.HTTPTimeout)
	provider := services.NewFinnhubClient(cfg.FinnhubAPIKey, clientFactory, cfg.HTTPTimeout, cfg.HTTPMaxRetries)
	parser := services.NewIPORecordParser(services.NewAmountNormalizer())
	filter := services.NewQualificationFilter()
	composer := services.NewReportComposer(cfg.OfferAmountThreshold)
	notifier := services.NewEmailNotifier(cfg.EmailSender, cfg.EmailPassword, cfg.SMTPServer, cfg.SMTPPort)

	job := jobs.NewMonitorRunJob(
		provider,
		parser,
		filter,
		composer,
		notifier,
		cfg.EmailRecipient,
		cfg.OfferAmountThreshold,
		cfg.Location,
	)

	if err := job.Run(context.Background()); err != nil {
		os.Exit(exitCode(err))
	}

	logrus.Info("IPO Monitor completed successfully")
}

// exitCode maps the failed phase to the process exit contract
func exitCode(err error) int {
	switch shared.CategoryOf(err) {
	case shared.ErrorCategoryNetwork:
		return exitFetchFailed
	case shared.ErrorCategoryDelivery:
		return exitSendFailed
	default:
		return exitConfigInvalid
	}
}

func configureLogging(level string) {
	parsedLevel, err := logrus.ParseLevel(level)
	if err != nil {
		logrus.Warnf("Invalid LOG_LEVEL %q, using info", level)
		parsedLevel = logrus.InfoLevel
	}
	logrus.SetLevel(parsedLevel)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
}
