package tasks

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

type taskRequest struct {
	PetID             string    `json:"petId"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	Type              string    `json:"type"`
	Priority          string    `json:"priority"`
	ScheduledTime     time.Time `json:"scheduledTime"`
	IsRecurring       bool      `json:"isRecurring"`
	RecurrencePattern string    `json:"recurrencePattern"`
	Notes             string    `json:"notes"`
}

type completeRequest struct {
	Notes    string `json:"notes"`
	Duration *int   `json:"duration"`
	Quantity *int   `json:"quantity"`
	Mood     string `json:"mood"`
}

type taskResponse struct {
	ID                string     `json:"id"`
	PetID             string     `json:"petId"`
	PetName           string     `json:"petName"`
	PetType           string     `json:"petType"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Type              string     `json:"type"`
	Priority          string     `json:"priority"`
	ScheduledTime     time.Time  `json:"scheduledTime"`
	CompletedAt       *time.Time `json:"completedAt"`
	IsOverdue         bool       `json:"isOverdue"`
	IsRecurring       bool       `json:"isRecurring"`
	RecurrencePattern string     `json:"recurrencePattern"`
	Notes             string     `json:"notes"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func toResponse(t TaskWithPet, now time.Time) taskResponse {
	return taskResponse{
		ID:                t.ID,
		PetID:             t.PetID,
		PetName:           t.PetName,
		PetType:           string(t.PetType),
		Title:             t.Title,
		Description:       t.Description,
		Type:              string(t.Type),
		Priority:          string(t.Priority),
		ScheduledTime:     t.ScheduledTime,
		CompletedAt:       t.CompletedAt,
		IsOverdue:         t.Overdue(now),
		IsRecurring:       t.IsRecurring,
		RecurrencePattern: string(t.RecurrencePattern),
		Notes:             t.Notes,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

func (r taskRequest) validate() []httpx.FieldError {
	var errs []httpx.FieldError
	if r.PetID == "" {
		errs = append(errs, httpx.FieldError{Field: "petId", Message: "Pet ID is required"})
	}
	if r.Title == "" {
		errs = append(errs, httpx.FieldError{Field: "title", Message: "Task title is required"})
	}
	if !ValidType(r.Type) {
		errs = append(errs, httpx.FieldError{Field: "type", Message: "Valid task type is required"})
	}
	if r.ScheduledTime.IsZero() {
		errs = append(errs, httpx.FieldError{Field: "scheduledTime", Message: "Valid scheduled time is required"})
	}
	if r.Priority != "" && !ValidPriority(r.Priority) {
		errs = append(errs, httpx.FieldError{Field: "priority", Message: "Valid priority is required"})
	}
	if r.IsRecurring && !ValidRecurrence(r.RecurrencePattern) {
		errs = append(errs, httpx.FieldError{Field: "recurrencePattern", Message: "Valid recurrence pattern is required"})
	}
	return errs
}

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", listTasks(svc))
		r.Post("/", createTask(svc))
		r.Get("/{taskID}", getTask(svc))
		r.Put("/{taskID}", updateTask(svc))
		r.Delete("/{taskID}", deleteTask(svc))
		r.Post("/{taskID}/complete", completeTask(svc))
	})
}

func listTasks(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		q := req.URL.Query()
		f := Filter{
			PetID:    q.Get("petId"),
			Date:     q.Get("date"),
			Priority: q.Get("priority"),
			Type:     q.Get("type"),
		}

		tasks, err := svc.List(req.Context(), claims.UserID, f)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "Failed to fetch tasks")
			return
		}

		now := time.Now()
		out := make([]taskResponse, 0, len(tasks))
		for _, t := range tasks {
			out = append(out, toResponse(t, now))
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body taskRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if errs := body.validate(); len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		created, err := svc.Create(req.Context(), claims.UserID, CreateInput{
			PetID:             body.PetID,
			Title:             body.Title,
			Description:       body.Description,
			Type:              body.Type,
			Priority:          body.Priority,
			ScheduledTime:     body.ScheduledTime,
			IsRecurring:       body.IsRecurring,
			RecurrencePattern: body.RecurrencePattern,
			Notes:             body.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "Pet not found")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "Invalid input")
			default:
				httpx.Error(w, http.StatusInternalServerError, "Failed to create task")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toResponse(created, time.Now()))
	}
}

func getTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		task, err := svc.GetByID(req.Context(), chi.URLParam(req, "taskID"), claims.UserID)
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "Task not found")
			return
		}
		httpx.WriteJSON(w, http.StatusOK, toResponse(task, time.Now()))
	}
}

func updateTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body taskRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		var errs []httpx.FieldError
		if body.Title == "" {
			errs = append(errs, httpx.FieldError{Field: "title", Message: "Task title is required"})
		}
		if !ValidType(body.Type) {
			errs = append(errs, httpx.FieldError{Field: "type", Message: "Valid task type is required"})
		}
		if body.ScheduledTime.IsZero() {
			errs = append(errs, httpx.FieldError{Field: "scheduledTime", Message: "Valid scheduled time is required"})
		}
		if len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		updated, err := svc.Update(req.Context(), chi.URLParam(req, "taskID"), claims.UserID, UpdateInput{
			Title:             body.Title,
			Description:       body.Description,
			Type:              body.Type,
			Priority:          body.Priority,
			ScheduledTime:     body.ScheduledTime,
			IsRecurring:       body.IsRecurring,
			RecurrencePattern: body.RecurrencePattern,
			Notes:             body.Notes,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "Task not found")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "Invalid input")
			default:
				httpx.Error(w, http.StatusInternalServerError, "Failed to update task")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toResponse(updated, time.Now()))
	}
}

func completeTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		// Body opcional: completar sin detalles es válido.
		var body completeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		completed, err := svc.Complete(req.Context(), chi.URLParam(req, "taskID"), claims.UserID, CompleteInput{
			Notes:    body.Notes,
			Duration: body.Duration,
			Quantity: body.Quantity,
			Mood:     body.Mood,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "Task not found")
			case errors.Is(err, ErrAlreadyCompleted):
				httpx.Error(w, http.StatusConflict, "Task is already completed")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "Invalid input")
			default:
				httpx.Error(w, http.StatusInternalServerError, "Failed to complete task")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toResponse(completed, time.Now()))
	}
}

func deleteTask(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		if err := svc.Delete(req.Context(), chi.URLParam(req, "taskID"), claims.UserID); err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "Task not found")
			default:
				httpx.Error(w, http.StatusInternalServerError, "Failed to delete task")
			}
			return
		}
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
	}
}
