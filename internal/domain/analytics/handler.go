package analytics

import (
	"net/http"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

type typeStatsResponse struct {
	Type           string `json:"type"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completionRate"`
}

type petStatsResponse struct {
	PetID          string `json:"petId"`
	PetName        string `json:"petName"`
	PetType        string `json:"petType"`
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	CompletionRate int    `json:"completionRate"`
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/analytics", func(r chi.Router) {
		r.Get("/tasks", taskAnalytics(svc))
		r.Get("/pets", petAnalytics(svc))
	})
}

func taskAnalytics(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		q := req.URL.Query()
		stats, err := svc.TasksByType(req.Context(), claims.UserID, TaskFilter{
			PetID:     q.Get("petId"),
			StartDate: q.Get("startDate"),
			EndDate:   q.Get("endDate"),
		})
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "Failed to fetch analytics")
			return
		}

		out := make([]typeStatsResponse, 0, len(stats))
		for _, s := range stats {
			out = append(out, typeStatsResponse{
				Type:           s.Type,
				Total:          s.Total,
				Completed:      s.Completed,
				CompletionRate: s.CompletionRate,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func petAnalytics(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		stats, err := svc.TasksByPet(req.Context(), claims.UserID, req.URL.Query().Get("petId"))
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "Failed to fetch analytics")
			return
		}

		out := make([]petStatsResponse, 0, len(stats))
		for _, s := range stats {
			out = append(out, petStatsResponse{
				PetID:          s.PetID,
				PetName:        s.PetName,
				PetType:        s.PetType,
				Total:          s.Total,
				Completed:      s.Completed,
				CompletionRate: s.CompletionRate,
			})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
