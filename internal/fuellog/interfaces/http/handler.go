package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"fuelwatch-cloud/internal/audit"
	"fuelwatch-cloud/internal/auth"
	"fuelwatch-cloud/internal/chat"
	fuellog "fuelwatch-cloud/internal/fuellog/domain"
	"fuelwatch-cloud/internal/fuellog/interfaces"
	"fuelwatch-cloud/internal/observability/metrics"
	payout "fuelwatch-cloud/internal/payout/domain"
)

const timeLayout = time.RFC3339

// ReportRunner is the application surface the handler needs.
type ReportRunner interface {
	Summary(ctx context.Context, window fuellog.Window) (fuellog.SummaryReport, error)
	FinalCalc(ctx context.Context, window fuellog.Window) (fuellog.SummaryReport, payout.Breakdown, error)
	RunPeriodicReport(ctx context.Context, window fuellog.Window) (fuellog.SummaryReport, error)
}

// ReportsHandler serves the report command surface under /api/v1/reports.
type ReportsHandler struct {
	service     ReportRunner
	auditLogger audit.Logger
}

// NewReportsHandler constructs a handler.
func NewReportsHandler(service ReportRunner, auditLogger audit.Logger) (*ReportsHandler, error) {
	if service == nil {
		return nil, errors.New("reports handler: nil service")
	}
	return &ReportsHandler{service: service, auditLogger: auditLogger}, nil
}

type summaryResponse struct {
	WindowStart      string             `json:"window_start"`
	WindowEnd        string             `json:"window_end"`
	ReadingCount     int                `json:"reading_count"`
	EventCount       int                `json:"event_count"`
	TotalVolumeTaken float64            `json:"total_volume_taken"`
	Trips            map[string]int     `json:"trips"`
	VolumeByAuthor   map[string]float64 `json:"volume_by_author"`
	Text             string             `json:"text"`
}

type payoutResponse struct {
	summaryResponse
	TripRevenue     float64            `json:"trip_revenue"`
	VolumeRevenue   float64            `json:"volume_revenue"`
	GrossTotal      float64            `json:"gross_total"`
	BonusDeductions map[string]float64 `json:"bonus_deductions"`
	NetTotal        float64            `json:"net_total"`
	Shares          map[string]float64 `json:"shares"`
}

// ServeHTTP dispatches report routes.
func (h *ReportsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/v1/reports/oil-summary" && r.Method == http.MethodGet:
		h.handleOilSummary(w, r)
	case r.URL.Path == "/api/v1/reports/trip-summary" && r.Method == http.MethodGet:
		h.handleTripSummary(w, r)
	case r.URL.Path == "/api/v1/reports/bonus-summary" && r.Method == http.MethodGet:
		h.handleBonusSummary(w, r)
	case r.URL.Path == "/api/v1/reports/final-calc" && r.Method == http.MethodGet:
		h.handleFinalCalc(w, r)
	case r.URL.Path == "/api/v1/reports/final-calc/export.pdf" && r.Method == http.MethodGet:
		h.handleExport(w, r, "pdf")
	case r.URL.Path == "/api/v1/reports/final-calc/export.xlsx" && r.Method == http.MethodGet:
		h.handleExport(w, r, "xlsx")
	case r.URL.Path == "/api/v1/reports/run-periodic" && r.Method == http.MethodPost:
		h.handleRunPeriodic(w, r)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *ReportsHandler) handleOilSummary(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowFromQuery(w, r)
	if !ok {
		return
	}
	report, err := h.service.Summary(r.Context(), window)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, buildSummaryResponse(report, interfaces.FormatSummaryText(report)))
}

func (h *ReportsHandler) handleTripSummary(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowFromQuery(w, r)
	if !ok {
		return
	}
	report, err := h.service.Summary(r.Context(), window)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, buildSummaryResponse(report, interfaces.FormatTripText(report)))
}

func (h *ReportsHandler) handleBonusSummary(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowFromQuery(w, r)
	if !ok {
		return
	}
	report, breakdown, err := h.service.FinalCalc(r.Context(), window)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	resp := buildSummaryResponse(report, interfaces.FormatBonusText(report, breakdown))
	respondJSON(w, resp)
}

func (h *ReportsHandler) handleFinalCalc(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowFromQuery(w, r)
	if !ok {
		return
	}
	report, breakdown, err := h.service.FinalCalc(r.Context(), window)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	resp := payoutResponse{
		summaryResponse: buildSummaryResponse(report, interfaces.FormatPayoutText(report, breakdown)),
		TripRevenue:     breakdown.TripRevenue,
		VolumeRevenue:   breakdown.VolumeRevenue,
		GrossTotal:      breakdown.GrossTotal,
		BonusDeductions: breakdown.BonusDeductions,
		NetTotal:        breakdown.NetTotal,
		Shares:          breakdown.Shares,
	}
	respondJSON(w, resp)
	h.logAudit(r, window, "report.final_calc")
}

func (h *ReportsHandler) handleExport(w http.ResponseWriter, r *http.Request, format string) {
	window, ok := h.windowFromQuery(w, r)
	if !ok {
		return
	}
	started := time.Now()
	report, breakdown, err := h.service.FinalCalc(r.Context(), window)
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(started))
		respondServiceError(w, err)
		return
	}

	var payload []byte
	var contentType string
	switch format {
	case "pdf":
		payload, err = interfaces.BuildReportPDF(report, breakdown)
		contentType = "application/pdf"
	case "xlsx":
		payload, err = interfaces.BuildReportXLSX(report, breakdown)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if err != nil {
		metrics.ObserveExport(format, metrics.ResultError, time.Since(started))
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	metrics.ObserveExport(format, metrics.ResultSuccess, time.Since(started))

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="fuel-report-`+window.TimeKey()+`.`+format+`"`)
	_, _ = w.Write(payload)
	h.logAudit(r, window, "report.export."+format)
}

func (h *ReportsHandler) handleRunPeriodic(w http.ResponseWriter, r *http.Request) {
	window, ok := h.windowFromQuery(w, r)
	if !ok {
		return
	}
	report, err := h.service.RunPeriodicReport(r.Context(), window)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, buildSummaryResponse(report, interfaces.FormatSummaryText(report)))
	h.logAudit(r, window, "report.run_periodic")
}

func (h *ReportsHandler) windowFromQuery(w http.ResponseWriter, r *http.Request) (fuellog.Window, bool) {
	start, err := time.Parse(timeLayout, r.URL.Query().Get("start"))
	if err != nil {
		http.Error(w, "invalid start: use RFC 3339, e.g. 2025-04-19T08:00:00+05:30", http.StatusBadRequest)
		return fuellog.Window{}, false
	}
	end, err := time.Parse(timeLayout, r.URL.Query().Get("end"))
	if err != nil {
		http.Error(w, "invalid end: use RFC 3339, e.g. 2025-04-19T20:00:00+05:30", http.StatusBadRequest)
		return fuellog.Window{}, false
	}
	window, err := fuellog.NewWindow(start, end)
	if err != nil {
		http.Error(w, "start must be before end", http.StatusBadRequest)
		return fuellog.Window{}, false
	}
	return window, true
}

func (h *ReportsHandler) logAudit(r *http.Request, window fuellog.Window, action string) {
	if h.auditLogger == nil {
		return
	}
	entry := audit.Entry{
		Actor:       auth.SubjectFromContext(r.Context()),
		Role:        string(auth.RoleFromContext(r.Context())),
		Action:      action,
		WindowStart: window.Start,
		WindowEnd:   window.End,
		IP:          r.RemoteAddr,
		UserAgent:   r.UserAgent(),
	}
	_ = h.auditLogger.Log(r.Context(), entry)
}

func buildSummaryResponse(report fuellog.SummaryReport, text string) summaryResponse {
	return summaryResponse{
		WindowStart:      report.Window.Start.Format(timeLayout),
		WindowEnd:        report.Window.End.Format(timeLayout),
		ReadingCount:     report.ReadingCount,
		EventCount:       report.EventCount,
		TotalVolumeTaken: report.TotalVolumeTaken,
		Trips:            report.Trips,
		VolumeByAuthor:   report.VolumeByAuthor,
		Text:             text,
	}
}

func respondJSON(w http.ResponseWriter, payload any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(payload)
}

func respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, chat.ErrUnavailable):
		http.Error(w, "message source unavailable, retry later", http.StatusBadGateway)
	case errors.Is(err, fuellog.ErrInvalidTimeRange):
		http.Error(w, "start must be before end", http.StatusBadRequest)
	case errors.Is(err, payout.ErrInvalidRateSchedule), errors.Is(err, payout.ErrEmptyShareTable):
		http.Error(w, "invalid rate schedule", http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
