package scheduler

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"

	"github.com/drshravan/phc-helper-api/ancstats"
	"github.com/drshravan/phc-helper-api/config"
	"github.com/drshravan/phc-helper-api/databases"
	templates "github.com/drshravan/phc-helper-api/templates/html"
)

// Scheduler handles the periodic background jobs: the nightly ledger
// drift audit and the monthly report email to the medical officer
type Scheduler struct {
	cron       *cron.Cron
	ledger     *ancstats.Ledger
	summaryDB  databases.SummaryDatabase
	lockDB     databases.SchedulerLockDatabase
	conf       *config.Config
	instanceID string
}

// NewScheduler creates a new scheduler instance
func NewScheduler(
	ledger *ancstats.Ledger,
	summaryDB databases.SummaryDatabase,
	lockDB databases.SchedulerLockDatabase,
	conf *config.Config,
) *Scheduler {
	// Generate a unique instance ID for this pod
	instanceID := os.Getenv("DYNO") // Heroku sets this to "web.1", "web.2", etc.
	if instanceID == "" {
		instanceID = fmt.Sprintf("instance-%d", time.Now().UnixNano())
	}

	return &Scheduler{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		ledger:     ledger,
		summaryDB:  summaryDB,
		lockDB:     lockDB,
		conf:       conf,
		instanceID: instanceID,
	}
}

// Start begins the scheduler with all registered jobs
func (s *Scheduler) Start() {
	// Audit the ledger against a fresh recompute nightly at 02:30 UTC
	_, err := s.cron.AddFunc("30 2 * * *", s.auditLedger)
	if err != nil {
		zap.S().Errorw("failed to register drift audit job", "error", err)
	}

	// Email last month's statistics on the 1st at 03:00 UTC
	_, err = s.cron.AddFunc("0 3 1 * *", s.sendMonthlyReport)
	if err != nil {
		zap.S().Errorw("failed to register monthly report job", "error", err)
	}

	s.cron.Start()
	zap.S().Info("PHC scheduler started")
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	zap.S().Info("PHC scheduler stopped")
}

// auditLedger recomputes every bucket from the records collection and
// logs any divergence from the stored summaries. It never writes; a
// rebuild stays an explicit admin action.
func (s *Scheduler) auditLedger() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acquired, err := s.lockDB.TryAcquireLock(ctx, "ledger_audit_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for drift audit job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Drift audit already running on another instance, skipping")
		return
	}
	defer s.lockDB.ReleaseLock(ctx, "ledger_audit_job", s.instanceID)

	zap.S().Infow("Running ledger drift audit", "instance", s.instanceID)

	computed, unbucketed, err := s.ledger.Snapshot(ctx)
	if err != nil {
		zap.S().Errorw("drift audit failed to recompute buckets", "error", err)
		return
	}

	stored, err := s.summaryDB.All(ctx)
	if err != nil {
		zap.S().Errorw("drift audit failed to load summaries", "error", err)
		return
	}

	driftCount := 0
	seen := map[string]bool{}
	for i := range stored {
		summary := stored[i]
		seen[summary.ID] = true
		want := computed[summary.ID]
		got := ancstats.SummaryCounters(&summary)
		if got != want {
			driftCount++
			zap.S().Warnw("ledger drift detected",
				"monthGroup", summary.ID,
				"stored", got,
				"computed", want,
			)
		}
	}
	for bucket := range computed {
		if !seen[bucket] {
			driftCount++
			zap.S().Warnw("ledger drift detected, summary doc missing",
				"monthGroup", bucket,
				"computed", computed[bucket],
			)
		}
	}
	for _, id := range unbucketed {
		zap.S().Warnw("record has no usable date, excluded from audit", "recordID", id)
	}

	zap.S().Infow("Ledger drift audit complete",
		"monthsChecked", len(computed),
		"driftsFound", driftCount,
		"unbucketedRecords", len(unbucketed),
	)
}

// sendMonthlyReport emails the previous month's summary to the medical
// officer
func (s *Scheduler) sendMonthlyReport() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	acquired, err := s.lockDB.TryAcquireLock(ctx, "monthly_report_job", s.instanceID, 10*time.Minute)
	if err != nil {
		zap.S().Errorw("failed to acquire lock for monthly report job", "error", err)
		return
	}
	if !acquired {
		zap.S().Debug("Monthly report already running on another instance, skipping")
		return
	}
	defer s.lockDB.ReleaseLock(ctx, "monthly_report_job", s.instanceID)

	if s.conf.ReportEmail == "" {
		zap.S().Warn("REPORT_EMAIL not set, skipping monthly report")
		return
	}

	// last day of the previous month avoids AddDate normalization on the 31st
	now := time.Now().UTC()
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	lastMonth := ancstats.BucketKey(firstOfMonth.AddDate(0, 0, -1))
	summary, err := s.summaryDB.Get(ctx, lastMonth)
	if err != nil {
		zap.S().Warnw("no summary for last month, skipping report",
			"monthGroup", lastMonth,
			"error", err,
		)
		return
	}

	subject := fmt.Sprintf("ANC Monthly Report - %s", summary.Title)
	htmlContent := templates.RenderMonthlyReportEmail(*summary)
	plainText := fmt.Sprintf("ANC statistics for %s: %d registered, %d delivered, %d pending, %d aborted.",
		summary.Title, summary.Total, summary.Delivered, summary.Pending, summary.Aborted)

	if err := s.sendEmail(s.conf.ReportEmail, "Medical Officer", subject, htmlContent, plainText); err != nil {
		zap.S().Errorw("failed to send monthly report email", "error", err, "monthGroup", lastMonth)
		return
	}

	zap.S().Infow("Sent monthly report email", "monthGroup", lastMonth, "to", s.conf.ReportEmail)
}

func (s *Scheduler) sendEmail(toEmail, toName, subject, htmlContent, plainText string) error {
	from := mail.NewEmail("PHC Helper", "no-reply@phc-helper.in")
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)
	client := sendgrid.NewSendClient(os.Getenv("SENDGRID_API_KEY"))
	response, err := client.Send(message)
	if err != nil {
		return err
	}
	if response.StatusCode >= 400 {
		zap.S().Errorw("sendgrid returned error status", "status", response.StatusCode, "body", response.Body)
	}
	return nil
}
