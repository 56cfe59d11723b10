package handlers

import (
	"net/http"

	"arnio/internal/domain"
)

type planDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	PriceIDR     int64     `json:"price"`
	PriceUSDCent int64     `json:"priceUSD"`
	Features     []string  `json:"features"`
	Limits       limitsDTO `json:"limits"`
}

// Unbounded limits serialize as -1, matching what clients already expect.
type limitsDTO struct {
	MaxDocuments       int64 `json:"maxDocuments"`
	MaxStorageBytes    int64 `json:"maxStorage"`
	AIRecommendations  int64 `json:"aiRecommendations"`
	CanDeleteDocuments bool  `json:"canDeleteDocuments"`
}

func toPlanDTO(p domain.Plan) planDTO {
	return planDTO{
		ID:           string(p.ID),
		Name:         p.DisplayName,
		PriceIDR:     p.PriceIDR,
		PriceUSDCent: p.PriceUSDCent,
		Features:     p.Features,
		Limits: limitsDTO{
			MaxDocuments:       int64(p.Limits.MaxDocuments),
			MaxStorageBytes:    int64(p.Limits.MaxStorageBytes),
			AIRecommendations:  int64(p.Limits.MaxAIRecommendations),
			CanDeleteDocuments: p.Limits.CanDeleteDocuments,
		},
	}
}

func (a *App) Plans(w http.ResponseWriter, r *http.Request) {
	plans := domain.Plans()
	out := make([]planDTO, 0, len(plans))
	for _, p := range plans {
		out = append(out, toPlanDTO(p))
	}
	a.json(w, http.StatusOK, map[string]any{"plans": out})
}
