package http

import (
	"encoding/json"
	"net/http"

	"pocketledger/internal/core"
	"pocketledger/internal/currency"
)

type settingsPatchRequest struct {
	Currency  *string `json:"currency"`
	Language  *string `json:"language"`
	Theme     *string `json:"theme"`
	IsPremium *bool   `json:"isPremium"`
}

type settingsResponse struct {
	Currency       string `json:"currency"`
	CurrencySymbol string `json:"currencySymbol"`
	Language       string `json:"language"`
	Theme          string `json:"theme"`
	IsPremium      bool   `json:"isPremium"`
}

func toSettingsResponse(s core.Settings) settingsResponse {
	return settingsResponse{
		Currency:       s.Currency,
		CurrencySymbol: currency.Symbol(s.Currency),
		Language:       s.Language,
		Theme:          string(s.Theme),
		IsPremium:      s.IsPremium,
	}
}

func (req settingsPatchRequest) toPatch() (core.SettingsPatch, error) {
	patch := core.SettingsPatch{
		Currency:  req.Currency,
		Language:  req.Language,
		IsPremium: req.IsPremium,
	}
	if req.Theme != nil {
		theme, err := core.ParseTheme(*req.Theme)
		if err != nil {
			return core.SettingsPatch{}, err
		}
		patch.Theme = &theme
	}
	return patch, nil
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.ledger.Settings(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		respondError(w, err)
		return
	}

	settings, err := s.ledger.UpdateSettings(r.Context(), patch)
	if err != nil {
		respondError(w, err)
		return
	}

	s.invalidateDashboard()
	writeJSON(w, http.StatusOK, toSettingsResponse(settings))
}
