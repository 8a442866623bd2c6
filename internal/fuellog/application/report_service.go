package application

import (
	"context"
	"errors"
	"log"
	"time"

	"fuelwatch-cloud/internal/chat"
	fuellog "fuelwatch-cloud/internal/fuellog/domain"
	"fuelwatch-cloud/internal/notify"
	"fuelwatch-cloud/internal/observability/metrics"
	payout "fuelwatch-cloud/internal/payout/domain"
)

// DeliveryLedger persists reconciled delivery events and summary snapshots.
// Implementations must tolerate replays: the same window may be recorded
// more than once and must not double-count.
type DeliveryLedger interface {
	RecordDeliveries(ctx context.Context, window fuellog.Window, events []fuellog.DeliveryEvent) error
	SaveSummary(ctx context.Context, report fuellog.SummaryReport) error
}

// RowAppender appends one row to the spreadsheet ledger boundary.
type RowAppender interface {
	AppendRow(ctx context.Context, fields []any) error
}

// Clock provides time for services.
type Clock interface {
	Now() time.Time
}

// SystemClock uses time.Now.
type SystemClock struct{}

// Now returns current time.
func (SystemClock) Now() time.Time { return time.Now() }

// ReportService runs the summary and payout commands over a chat channel.
// Each run recomputes from the full message window; nothing is carried
// between calls.
type ReportService struct {
	source    chat.MessageSource
	channelID string
	rates     payout.RateSchedule
	logger    *log.Logger

	sink     chat.ReportSink
	ledger   DeliveryLedger
	appender RowAppender
	notifier notify.Notifier
	render   func(fuellog.SummaryReport) string
}

// Option configures the service.
type Option func(*ReportService)

// WithReportSink sets the chat destination for periodic reports.
func WithReportSink(sink chat.ReportSink) Option {
	return func(s *ReportService) { s.sink = sink }
}

// WithLedger sets the persistent delivery ledger.
func WithLedger(ledger DeliveryLedger) Option {
	return func(s *ReportService) { s.ledger = ledger }
}

// WithRowAppender sets the spreadsheet ledger boundary.
func WithRowAppender(appender RowAppender) Option {
	return func(s *ReportService) { s.appender = appender }
}

// WithNotifier sets the webhook notifier.
func WithNotifier(notifier notify.Notifier) Option {
	return func(s *ReportService) { s.notifier = notifier }
}

// WithRenderer sets the text renderer used for periodic report delivery.
func WithRenderer(render func(fuellog.SummaryReport) string) Option {
	return func(s *ReportService) { s.render = render }
}

// NewReportService constructs a report service.
func NewReportService(source chat.MessageSource, channelID string, rates payout.RateSchedule, logger *log.Logger, opts ...Option) (*ReportService, error) {
	if source == nil {
		return nil, errors.New("report service: nil message source")
	}
	if channelID == "" {
		return nil, errors.New("report service: empty channel id")
	}
	if err := rates.Validate(); err != nil {
		return nil, err
	}
	service := &ReportService{
		source:    source,
		channelID: channelID,
		rates:     rates,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// Rates returns the configured rate schedule.
func (s *ReportService) Rates() payout.RateSchedule { return s.rates }

// Summary fetches the channel window, parses readings and aggregates them.
func (s *ReportService) Summary(ctx context.Context, window fuellog.Window) (fuellog.SummaryReport, error) {
	start := time.Now()
	readings, err := s.readWindow(ctx, window)
	if err != nil {
		metrics.ObserveReportRun("oil-summary", metrics.ResultError, time.Since(start))
		return fuellog.SummaryReport{}, err
	}
	report := fuellog.Aggregate(readings, window)
	metrics.ObserveReportRun("oil-summary", metrics.ResultSuccess, time.Since(start))
	return report, nil
}

// FinalCalc computes the summary and its payout breakdown.
func (s *ReportService) FinalCalc(ctx context.Context, window fuellog.Window) (fuellog.SummaryReport, payout.Breakdown, error) {
	report, err := s.Summary(ctx, window)
	if err != nil {
		return fuellog.SummaryReport{}, payout.Breakdown{}, err
	}
	breakdown, err := payout.Compute(report, s.rates)
	if err != nil {
		metrics.IncPayout(metrics.ResultError)
		return fuellog.SummaryReport{}, payout.Breakdown{}, err
	}
	metrics.IncPayout(metrics.ResultSuccess)
	return report, breakdown, nil
}

// RunPeriodicReport computes the window summary and delivers it to every
// configured sink: postgres ledger, spreadsheet ledger, chat channel,
// webhook. Sink failures are logged and do not abort the remaining sinks;
// each sink dedupes its own replays.
func (s *ReportService) RunPeriodicReport(ctx context.Context, window fuellog.Window) (fuellog.SummaryReport, error) {
	start := time.Now()
	report, breakdown, err := s.FinalCalc(ctx, window)
	if err != nil {
		metrics.ObserveReportRun("periodic", metrics.ResultError, time.Since(start))
		return fuellog.SummaryReport{}, err
	}

	if s.ledger != nil {
		if err := s.ledger.RecordDeliveries(ctx, window, report.Events); err != nil {
			metrics.IncLedgerAppend("postgres", metrics.ResultError)
			s.logf("ledger record error: window=%s err=%v", window.TimeKey(), err)
		} else {
			metrics.IncLedgerAppend("postgres", metrics.ResultSuccess)
		}
		if err := s.ledger.SaveSummary(ctx, report); err != nil {
			s.logf("summary snapshot error: window=%s err=%v", window.TimeKey(), err)
		}
	}
	if s.appender != nil {
		s.appendRows(ctx, report)
	}
	if s.sink != nil {
		text := s.renderText(report)
		if err := s.sink.SendReport(ctx, s.channelID, text); err != nil {
			s.logf("report send error: channel=%s err=%v", s.channelID, err)
		}
	}
	if s.notifier != nil {
		msg := notify.ReportMessage{
			Channel:     s.channelID,
			WindowStart: window.Start.Format(time.RFC3339),
			WindowEnd:   window.End.Format(time.RFC3339),
			TotalVolume: report.TotalVolumeTaken,
			EventCount:  report.EventCount,
			TripCount:   report.Trips.Total(),
			NetTotal:    breakdown.NetTotal,
		}
		if err := s.notifier.Notify(ctx, msg); err != nil {
			s.logf("report notify error: err=%v", err)
		}
	}

	metrics.ObserveReportRun("periodic", metrics.ResultSuccess, time.Since(start))
	return report, nil
}

func (s *ReportService) readWindow(ctx context.Context, window fuellog.Window) ([]fuellog.Reading, error) {
	messages, err := s.source.FetchMessages(ctx, s.channelID, window.Start, window.End)
	if err != nil {
		return nil, err
	}
	var readings []fuellog.Reading
	for _, msg := range messages {
		reading, ok := fuellog.ParseReading(msg.Author, msg.SentAt, msg.Text)
		metrics.IncMessageScanned(ok)
		if !ok {
			continue
		}
		readings = append(readings, reading)
	}
	return readings, nil
}

func (s *ReportService) appendRows(ctx context.Context, report fuellog.SummaryReport) {
	for _, event := range report.Events {
		row := []any{
			event.To.Author,
			event.To.LoggedAt.UTC().Format(time.RFC3339),
			event.From.StockAfter,
			event.To.StockBefore,
			event.VolumeTaken,
		}
		if err := s.appender.AppendRow(ctx, row); err != nil {
			metrics.IncLedgerAppend("sheet", metrics.ResultError)
			s.logf("sheet append error: err=%v", err)
			return
		}
		metrics.IncLedgerAppend("sheet", metrics.ResultSuccess)
	}
}

func (s *ReportService) renderText(report fuellog.SummaryReport) string {
	if s.render != nil {
		return s.render(report)
	}
	return report.Window.TimeKey()
}

func (s *ReportService) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
