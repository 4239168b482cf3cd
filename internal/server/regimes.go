package server

import (
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pivotlab/regime-core/internal/logger"
	"github.com/pivotlab/regime-core/internal/model"
	"github.com/pivotlab/regime-core/internal/regime"
)

const _defaultRangeDays = 90

// RegimeHandler exposes the persisted regime table as JSON for dashboards.
// Read-only; the backtest engine reads the store directly.
type RegimeHandler struct {
	store  *regime.Store
	logger logger.Logger
}

func NewRegimeHandler(store *regime.Store, logger logger.Logger) *RegimeHandler {
	return &RegimeHandler{
		store:  store,
		logger: logger,
	}
}

func (h *RegimeHandler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /regimes", h.getRegimes)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

type regimeRow struct {
	Date            string            `json:"date"`
	BenchmarkClose  *float64          `json:"benchmark_close"`
	BenchmarkSMA    *float64          `json:"benchmark_sma"`
	VolatilityClose *float64          `json:"volatility_close"`
	Label           model.RegimeLabel `json:"label"`
}

type regimesResponse struct {
	From      string                    `json:"from"`
	To        string                    `json:"to"`
	Regimes   []regimeRow               `json:"regimes"`
	Histogram map[model.RegimeLabel]int `json:"histogram"`
}

func (h *RegimeHandler) getRegimes(w http.ResponseWriter, r *http.Request) {
	to := time.Now().UTC()
	from := to.AddDate(0, 0, -_defaultRangeDays)

	if s := r.URL.Query().Get("from"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid from date, use YYYY-MM-DD")
			return
		}
		from = t
	}
	if s := r.URL.Query().Get("to"); s != "" {
		t, err := time.Parse(time.DateOnly, s)
		if err != nil {
			h.writeError(w, http.StatusBadRequest, "invalid to date, use YYYY-MM-DD")
			return
		}
		to = t
	}

	records, err := h.store.QueryRange(r.Context(), from, to)
	if err != nil {
		h.logger.Errorf("%s: can't query regimes", err)
		h.writeError(w, http.StatusInternalServerError, "can't query regimes")
		return
	}

	response := regimesResponse{
		From:      from.Format(time.DateOnly),
		To:        to.Format(time.DateOnly),
		Regimes:   make([]regimeRow, 0, len(records)),
		Histogram: make(map[model.RegimeLabel]int),
	}
	for _, rec := range records {
		response.Histogram[rec.Label]++
		response.Regimes = append(response.Regimes, regimeRow{
			Date:            rec.Ts.UTC().Format(time.DateOnly),
			BenchmarkClose:  nullToPtr(rec.BenchmarkClose.Float64, rec.BenchmarkClose.Valid),
			BenchmarkSMA:    nullToPtr(rec.BenchmarkSMA.Float64, rec.BenchmarkSMA.Valid),
			VolatilityClose: nullToPtr(rec.VolatilityClose.Float64, rec.VolatilityClose.Valid),
			Label:           rec.Label,
		})
	}

	h.writeJSON(w, http.StatusOK, response)
}

func (h *RegimeHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		h.logger.Errorf("%s: can't marshal response", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		h.logger.Errorf("%s: can't write response", err)
	}
}

func (h *RegimeHandler) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"message": msg})
}

func nullToPtr(v float64, valid bool) *float64 {
	if !valid {
		return nil
	}
	return &v
}
