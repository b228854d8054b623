package tasklogs

import (
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/task-logs", listLogsHandler(svc))
}

type logResponse struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"taskId"`
	PetID       string    `json:"petId"`
	CompletedAt time.Time `json:"completedAt"`
	Notes       string    `json:"notes,omitempty"`
	Duration    *int      `json:"duration"`
	Quantity    *int      `json:"quantity"`
	Mood        string    `json:"mood,omitempty"`
	TaskTitle   string    `json:"taskTitle"`
	TaskType    string    `json:"taskType"`
	PetName     string    `json:"petName"`
	PetType     string    `json:"petType"`
}

func listLogsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		q := r.URL.Query()
		items, err := svc.List(r.Context(), claims.UserID, Filter{
			PetID:  q.Get("petId"),
			TaskID: q.Get("taskId"),
		})
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "Failed to fetch task logs")
			return
		}

		out := make([]logResponse, 0, len(items))
		for _, e := range items {
			out = append(out, logResponse{
				ID:          e.ID,
				TaskID:      e.TaskID,
				PetID:       e.PetID,
				CompletedAt: e.CompletedAt,
				Notes:       e.Notes,
				Duration:    e.Duration,
				Quantity:    e.Quantity,
				Mood:        string(e.Mood),
				TaskTitle:   e.TaskTitle,
				TaskType:    e.TaskType,
				PetName:     e.PetName,
				PetType:     e.PetType,
			})
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}
