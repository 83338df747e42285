package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/iwvelando/mortgage-calculator/internal/config"
	"github.com/iwvelando/mortgage-calculator/internal/report"
	"github.com/iwvelando/mortgage-calculator/pkg/amount"
	"github.com/iwvelando/mortgage-calculator/pkg/constants"
	"github.com/iwvelando/mortgage-calculator/pkg/output"
	"github.com/iwvelando/mortgage-calculator/pkg/validation"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Options configures the HTTP handler.
type Options struct {
	MaxRequestSize int64
	Version        string
	// Defaults fill any input the request omits. HousePrice is ignored.
	Defaults report.Inputs
}

type handler struct {
	logger         *zap.Logger
	builder        *report.Builder
	maxRequestSize int64
	version        string
	defaults       report.Inputs
}

// NewHandler constructs the HTTP handler that serves the mortgage API.
func NewHandler(logger *zap.Logger, opts Options) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if opts.MaxRequestSize <= 0 {
		opts.MaxRequestSize = constants.DefaultMaxRequestSizeBytes
	}

	trimmedVersion := strings.TrimSpace(opts.Version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	defaults := opts.Defaults
	if defaults == (report.Inputs{}) {
		defaults = report.DefaultInputs()
	}

	h := &handler{
		logger:         logger,
		builder:        report.NewBuilder(logger),
		maxRequestSize: opts.MaxRequestSize,
		version:        trimmedVersion,
		defaults:       defaults,
	}

	mux := http.NewServeMux()

	// Calculation endpoint
	mux.HandleFunc("/api/mortgage", h.handleMortgage)

	// Config serialization endpoint, produces a CLI config file for the inputs
	mux.HandleFunc("/api/mortgage/config", h.handleConfigExport)

	mux.HandleFunc("/api/version", h.handleVersion)

	return mux
}

// mortgageRequest mirrors the CLI flags. Absent fields take the handler defaults.
type mortgageRequest struct {
	Price   *amount.Amount `json:"price"`
	Down    *amount.Amount `json:"down"`
	Closing *amount.Amount `json:"closing"`
	Realtor *float64       `json:"realtor"`
	Rate    *float64       `json:"rate"`
	Term    *int           `json:"term"`
	HOA     *amount.Amount `json:"hoa"`
	APR     *float64       `json:"apr"`
}

type mortgageResponse struct {
	Summary  *report.Summary `json:"summary"`
	CSV      string          `json:"csv"`
	Warnings []string        `json:"warnings,omitempty"`
	Duration string          `json:"duration"`
}

func (h *handler) handleMortgage(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleMortgage"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()

	in, warnings, status, err := h.decodeInputs(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	summary := h.builder.Build(in)
	if err := summary.CheckFinite(); err != nil {
		h.respondErrorWithOp(w, http.StatusBadRequest, err.Error(), op)
		return
	}

	csvData, err := output.CsvString(summary)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to render CSV: %v", err), op)
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), constants.OutputFormatCSV) {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="mortgage.csv"`)
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, csvData); err != nil {
			h.logger.Error("failed to write CSV response", zap.String("op", op), zap.Error(err))
		}
		return
	}

	elapsed := time.Since(start)
	response := mortgageResponse{
		Summary:  summary,
		CSV:      csvData,
		Warnings: warnings,
		Duration: elapsed.String(),
	}

	h.logger.Info("mortgage calculation completed",
		zap.String("op", op),
		zap.Float64("housePrice", in.HousePrice),
		zap.Int("term", in.LoanTermYears),
		zap.Int("rows", len(summary.Rows)),
		zap.Duration("duration", elapsed),
	)

	h.writeJSON(w, http.StatusOK, response)
}

func (h *handler) handleConfigExport(w http.ResponseWriter, r *http.Request) {
	const op = "server.handleConfigExport"
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	in, _, status, err := h.decodeInputs(w, r)
	if err != nil {
		h.respondErrorWithOp(w, status, err.Error(), op)
		return
	}

	cfg := config.Configuration{
		Defaults: config.Defaults{
			Rate:    in.MortgageRatePercent,
			Term:    in.LoanTermYears,
			Down:    formatAmount(in.DownPayment),
			Closing: formatAmount(in.ClosingCosts),
			Realtor: in.RealtorPercent,
			HOA:     formatAmount(in.MonthlyHOA),
			APR:     in.InvestmentAPRPercent,
		},
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		h.respondErrorWithOp(w, http.StatusInternalServerError, fmt.Sprintf("failed to serialize configuration: %v", err), op)
		return
	}

	w.Header().Set("Content-Type", "application/x-yaml")
	w.Header().Set("Content-Disposition", `attachment; filename="`+constants.DefaultConfigFile+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write configuration", zap.String("op", op), zap.Error(err))
	}
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

// decodeInputs reads and validates the request body. On failure it returns
// the HTTP status that should be reported.
func (h *handler) decodeInputs(w http.ResponseWriter, r *http.Request) (report.Inputs, []string, int, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxRequestSize)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	var req mortgageRequest
	if err := decoder.Decode(&req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return report.Inputs{}, nil, http.StatusRequestEntityTooLarge,
				fmt.Errorf("request exceeds limit of %d bytes", h.maxRequestSize)
		}
		if errors.Is(err, io.EOF) {
			return report.Inputs{}, nil, http.StatusBadRequest, errors.New("empty request body")
		}
		return report.Inputs{}, nil, http.StatusBadRequest, fmt.Errorf("failed to decode request: %w", err)
	}

	if req.Price == nil {
		return report.Inputs{}, nil, http.StatusBadRequest, errors.New("price is required")
	}

	in := req.apply(h.defaults)
	warnings, err := validation.ValidateInputs(in)
	if err != nil {
		return report.Inputs{}, nil, http.StatusBadRequest, err
	}
	return in, warnings, http.StatusOK, nil
}

func (req mortgageRequest) apply(defaults report.Inputs) report.Inputs {
	in := defaults
	in.HousePrice = float64(*req.Price)
	if req.Down != nil {
		in.DownPayment = float64(*req.Down)
	}
	if req.Closing != nil {
		in.ClosingCosts = float64(*req.Closing)
	}
	if req.Realtor != nil {
		in.RealtorPercent = *req.Realtor
	}
	if req.Rate != nil {
		in.MortgageRatePercent = *req.Rate
	}
	if req.Term != nil {
		in.LoanTermYears = *req.Term
	}
	if req.HOA != nil {
		in.MonthlyHOA = float64(*req.HOA)
	}
	if req.APR != nil {
		in.InvestmentAPRPercent = *req.APR
	}
	return in
}

func formatAmount(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func (h *handler) respondErrorWithOp(w http.ResponseWriter, status int, msg string, op string) {
	h.logger.Error("mortgage request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)

	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		h.logger.Error("failed to encode JSON response", zap.Error(err))
		status = http.StatusInternalServerError
		buf.Reset()
		buf.WriteString(`{"error":"failed to encode response"}` + "\n")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
