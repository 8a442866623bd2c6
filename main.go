package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"fuelwatch-cloud/internal/audit"
	"fuelwatch-cloud/internal/auth"
	"fuelwatch-cloud/internal/chat"
	fuellogapp "fuelwatch-cloud/internal/fuellog/application"
	fuellogrepo "fuelwatch-cloud/internal/fuellog/infrastructure/postgres"
	fuelloginterfaces "fuelwatch-cloud/internal/fuellog/interfaces"
	fuelloghttp "fuelwatch-cloud/internal/fuellog/interfaces/http"
	"fuelwatch-cloud/internal/notify"
	"fuelwatch-cloud/internal/observability/metrics"
	payout "fuelwatch-cloud/internal/payout/domain"
	"fuelwatch-cloud/internal/sheets"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg := loadConfig()
	logger := log.New(os.Stdout, "", log.LstdFlags)

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatalf("db open error: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatalf("db ping error: %v", err)
	}

	metrics.Init()
	auditRepo := audit.NewRepository(db)

	rates, err := payout.LoadSchedule()
	if err != nil {
		logger.Fatalf("rate schedule error: %v", err)
	}

	chatClient, err := chat.NewClient(cfg.ChatBaseURL, cfg.ChatToken)
	if err != nil {
		logger.Fatalf("chat client error: %v", err)
	}

	ledgerRepo := fuellogrepo.NewLedgerRepository(db)
	opts := []fuellogapp.Option{
		fuellogapp.WithReportSink(chatClient),
		fuellogapp.WithLedger(ledgerRepo),
		fuellogapp.WithRenderer(fuelloginterfaces.FormatSummaryText),
	}
	if cfg.SheetLedgerPath != "" {
		appender, err := sheets.NewAppender(cfg.SheetLedgerPath, cfg.SheetLedgerSheet)
		if err != nil {
			logger.Fatalf("sheet appender error: %v", err)
		}
		opts = append(opts, fuellogapp.WithRowAppender(appender))
	}
	if cfg.ReportWebhookURL != "" {
		opts = append(opts, fuellogapp.WithNotifier(notify.NewWebhookNotifier(cfg.ReportWebhookURL)))
	}

	reportService, err := fuellogapp.NewReportService(chatClient, cfg.ChannelID, rates, logger, opts...)
	if err != nil {
		logger.Fatalf("report service error: %v", err)
	}

	loc, err := time.LoadLocation(cfg.ReportTimezone)
	if err != nil {
		logger.Fatalf("report timezone error: %v", err)
	}
	scheduler := fuellogapp.NewScheduler(reportService, cfg.ReportDailyAt, loc, logger)
	go scheduler.Start(context.Background())

	reportsHandler, err := fuelloghttp.NewReportsHandler(reportService, auditRepo)
	if err != nil {
		logger.Fatalf("reports handler error: %v", err)
	}

	policy := auth.NewDefaultPolicy([]string{"/healthz", "/metrics"}, nil)
	authMiddleware := auth.NewMiddleware([]byte(cfg.JWTSecret), policy)

	mux := http.NewServeMux()
	mux.Handle("/api/v1/reports/", reportsHandler)
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	server := &http.Server{Addr: cfg.HTTPAddr, Handler: loggingMiddleware(authMiddleware.Wrap(mux), logger)}
	logger.Printf("http listening on %s", cfg.HTTPAddr)
	logger.Fatal(server.ListenAndServe())
}

type config struct {
	DatabaseURL      string
	HTTPAddr         string
	ChatBaseURL      string
	ChatToken        string
	ChannelID        string
	SheetLedgerPath  string
	SheetLedgerSheet string
	ReportWebhookURL string
	ReportDailyAt    string
	ReportTimezone   string
	JWTSecret        string
}

func loadConfig() config {
	cfg := config{
		DatabaseURL:      getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:         getenvDefault("HTTP_ADDR", ":8080"),
		ChatBaseURL:      getenvDefault("CHAT_BASE_URL", ""),
		ChatToken:        getenvDefault("CHAT_TOKEN", ""),
		ChannelID:        getenvDefault("CHAT_CHANNEL_ID", ""),
		SheetLedgerPath:  getenvDefault("SHEET_LEDGER_PATH", ""),
		SheetLedgerSheet: getenvDefault("SHEET_LEDGER_SHEET", "ledger"),
		ReportWebhookURL: getenvDefault("REPORT_WEBHOOK_URL", ""),
		ReportDailyAt:    getenvDefault("REPORT_DAILY_AT", "00:05"),
		ReportTimezone:   getenvDefault("REPORT_TIMEZONE", "UTC"),
		JWTSecret:        getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL or PG_DSN is required")
	}
	if cfg.ChatBaseURL == "" {
		log.Fatal("CHAT_BASE_URL is required")
	}
	if cfg.ChannelID == "" {
		log.Fatal("CHAT_CHANNEL_ID is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("AUTH_JWT_SECRET is required")
	}
	return cfg
}

func getenvDefault(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func loggingMiddleware(next http.Handler, logger *log.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		resp := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(resp, r)
		logger.Printf("http %s %s %d %s", r.Method, r.URL.Path, resp.status, time.Since(start))
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}
