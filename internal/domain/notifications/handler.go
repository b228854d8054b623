package notifications

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

type notificationRequest struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
}

type notificationResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

func toResponse(n Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Title:     n.Title,
		Message:   n.Message,
		Read:      n.Read,
		CreatedAt: n.CreatedAt,
	}
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", listNotifications(svc))
		r.Post("/", createNotification(svc))
		r.Post("/{notificationID}/read", markRead(svc))
	})
}

func listNotifications(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		items, err := svc.ListByUser(req.Context(), claims.UserID)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "Failed to fetch notifications")
			return
		}

		out := make([]notificationResponse, 0, len(items))
		for _, n := range items {
			out = append(out, toResponse(n))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createNotification(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body notificationRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Title == "" {
			httpx.FieldErrors(w, []httpx.FieldError{{Field: "title", Message: "Title is required"}})
			return
		}

		created, err := svc.Create(req.Context(), claims.UserID, CreateInput{
			Type:    body.Type,
			Title:   body.Title,
			Message: body.Message,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Error(w, http.StatusBadRequest, "Invalid input")
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "Failed to create notification")
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toResponse(created))
	}
}

func markRead(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		err := svc.MarkRead(req.Context(), chi.URLParam(req, "notificationID"), claims.UserID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, http.StatusNotFound, "Notification not found")
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "Failed to update notification")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
	}
}
