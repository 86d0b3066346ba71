package httpapi

import (
	"context"
	"net/http"

	"log/slog"

	json "github.com/goccy/go-json"
	"github.com/modamart/shop-analytics/internal/analytics"
)

type response struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func respond(w http.ResponseWriter, status int, body response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Default().Error("encode response", "error", err.Error())
	}
}

// respondErr logs the cause and returns a generic 500. Error detail
// stays out of the response body.
func respondErr(r *http.Request, w http.ResponseWriter, err error) {
	slog.Default().ErrorContext(r.Context(), "analytics request failed",
		slog.String("request_id", requestIDFrom(r.Context())),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	respond(w, http.StatusInternalServerError, response{Success: false, Error: "internal server error"})
}

type analyticsHandler struct {
	svc *analytics.Service
}

func (h *analyticsHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Dashboard(r.Context(), r.URL.Query().Get("timeRange"))
	if err != nil {
		respondErr(r, w, err)
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: d})
}

func (h *analyticsHandler) metrics(w http.ResponseWriter, r *http.Request) {
	m, err := h.svc.Metrics(r.Context(), r.URL.Query().Get("timeRange"))
	if err != nil {
		respondErr(r, w, err)
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: m})
}

func (h *analyticsHandler) revenueChart(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.RevenueSeries(r.Context(), r.URL.Query().Get("timeRange"))
	if err != nil {
		respondErr(r, w, err)
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: s})
}

func (h *analyticsHandler) ordersChart(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.OrdersSeries(r.Context(), r.URL.Query().Get("timeRange"))
	if err != nil {
		respondErr(r, w, err)
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: s})
}

// categorySales takes no timeRange; category share is always all-time.
func (h *analyticsHandler) categorySales(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.CategorySeries(r.Context())
	if err != nil {
		respondErr(r, w, err)
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: s})
}

func (h *analyticsHandler) trafficSources(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.TrafficSeries(r.Context(), r.URL.Query().Get("timeRange"))
	if err != nil {
		respondErr(r, w, err)
		return
	}
	respond(w, http.StatusOK, response{Success: true, Data: s})
}

func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ping(r.Context()); err != nil {
			respondErr(r, w, err)
			return
		}
		respond(w, http.StatusOK, response{Success: true})
	}
}
