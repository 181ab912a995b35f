package http

import (
	"fmt"
	"net/http"
	"time"

	"pocketledger/internal/catalog"
	"pocketledger/internal/currency"
	"pocketledger/internal/services"
)

type dashboardResponse struct {
	Balance          string             `json:"balance"`
	FormattedBalance string             `json:"formattedBalance"`
	Currency         string             `json:"currency"`
	Month            monthSummaryDTO    `json:"month"`
	Breakdown        []categoryShareDTO `json:"breakdown"`
	Trend            []trendPointDTO    `json:"trend"`
}

type monthSummaryDTO struct {
	TotalIncome   string `json:"totalIncome"`
	TotalExpenses string `json:"totalExpenses"`
}

type categoryShareDTO struct {
	Category string  `json:"category"`
	Amount   string  `json:"amount"`
	Percent  float64 `json:"percent"`
	Color    string  `json:"color"`
}

type trendPointDTO struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type categoryDTO struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
	Type  string `json:"type"`
}

func toDashboardResponse(d services.Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Balance:          d.Balance.StringFixed(2),
		FormattedBalance: currency.Format(d.Balance, d.Currency),
		Currency:         d.Currency,
		Month: monthSummaryDTO{
			TotalIncome:   d.Month.TotalIncome.StringFixed(2),
			TotalExpenses: d.Month.TotalExpenses.StringFixed(2),
		},
		Breakdown: make([]categoryShareDTO, 0, len(d.Breakdown)),
		Trend:     make([]trendPointDTO, 0, len(d.Trend)),
	}
	for _, share := range d.Breakdown {
		resp.Breakdown = append(resp.Breakdown, categoryShareDTO{
			Category: share.Category,
			Amount:   share.Amount.StringFixed(2),
			Percent:  share.Percent,
			Color:    share.Color,
		})
	}
	for _, p := range d.Trend {
		resp.Trend = append(resp.Trend, trendPointDTO{Label: p.Label, Value: p.Value.StringFixed(2)})
	}
	return resp
}

// loadDashboard serves a cached view when one exists for the window,
// otherwise assembles a fresh one. The key carries the calendar month so a
// cached entry can never straddle a month boundary.
func (s *Server) loadDashboard(r *http.Request, months int) (services.Dashboard, error) {
	now := time.Now()
	key := fmt.Sprintf("dashboard:%s:%d", now.Format("2006-01"), months)
	if d, ok := s.dashboardCache.Get(key); ok {
		return d, nil
	}

	d, err := s.ledger.Dashboard(r.Context(), now, months)
	if err != nil {
		return services.Dashboard{}, err
	}
	s.dashboardCache.Set(key, d)
	return d, nil
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	d, err := s.loadDashboard(r, s.trendMonths)
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDashboardResponse(d))
}

// handleTrend serves just the expense trend, with an optional months
// override between 1 and 24.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	months := s.trendMonths
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := queryInt(raw, 0)
		if err != nil || n < 1 || n > 24 {
			writeError(w, http.StatusBadRequest, "months must be between 1 and 24")
			return
		}
		months = n
	}

	d, err := s.loadDashboard(r, months)
	if err != nil {
		respondError(w, err)
		return
	}

	trend := make([]trendPointDTO, 0, len(d.Trend))
	for _, p := range d.Trend {
		trend = append(trend, trendPointDTO{Label: p.Label, Value: p.Value.StringFixed(2)})
	}
	writeJSON(w, http.StatusOK, trend)
}

func (s *Server) handleCategories(w http.ResponseWriter, _ *http.Request) {
	all := catalog.All()
	out := make([]categoryDTO, 0, len(all))
	for _, c := range all {
		out = append(out, categoryDTO{
			ID:    c.ID,
			Name:  c.Name,
			Icon:  c.Icon,
			Color: c.Color,
			Type:  string(c.Type),
		})
	}
	writeJSON(w, http.StatusOK, out)
}
