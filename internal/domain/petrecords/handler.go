package petrecords

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

type photoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

type photoResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"petId"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"createdAt"`
}

type milestoneRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AchievedAt  time.Time `json:"achievedAt"`
}

type milestoneResponse struct {
	ID          string    `json:"id"`
	PetID       string    `json:"petId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AchievedAt  time.Time `json:"achievedAt"`
	CreatedAt   time.Time `json:"createdAt"`
}

type weightRequest struct {
	Weight     float64   `json:"weight"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recordedAt"`
}

type weightResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"petId"`
	Weight     float64   `json:"weight"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type moodRequest struct {
	Mood       string    `json:"mood"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recordedAt"`
}

type moodResponse struct {
	ID         string    `json:"id"`
	PetID      string    `json:"petId"`
	Mood       string    `json:"mood"`
	Notes      string    `json:"notes"`
	RecordedAt time.Time `json:"recordedAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

type achievementRequest struct {
	Title    string    `json:"title"`
	Icon     string    `json:"icon"`
	EarnedAt time.Time `json:"earnedAt"`
}

type achievementResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"petId"`
	Title     string    `json:"title"`
	Icon      string    `json:"icon"`
	EarnedAt  time.Time `json:"earnedAt"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterRoutes cuelga las sub-rutas de registros bajo /pets/{petID}.
// Van como endpoints sueltos, no como Route anidada, para no pisar el
// GET /pets/{petID} del paquete pets.
func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/pets/{petID}/photos", listPhotos(svc))
	r.Post("/pets/{petID}/photos", addPhoto(svc))
	r.Get("/pets/{petID}/milestones", listMilestones(svc))
	r.Post("/pets/{petID}/milestones", addMilestone(svc))
	r.Get("/pets/{petID}/weight", listWeight(svc))
	r.Post("/pets/{petID}/weight", addWeight(svc))
	r.Get("/pets/{petID}/mood", listMood(svc))
	r.Post("/pets/{petID}/mood", addMood(svc))
	r.Get("/pets/{petID}/achievements", listAchievements(svc))
	r.Post("/pets/{petID}/achievements", addAchievement(svc))
}

func writeRecordErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		httpx.Error(w, http.StatusNotFound, "Pet not found")
	case errors.Is(err, ErrInvalidInput):
		httpx.Error(w, http.StatusBadRequest, "Invalid input")
	default:
		httpx.Error(w, http.StatusInternalServerError, "Failed to process record")
	}
}

func listPhotos(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		items, err := svc.ListPhotos(req.Context(), chi.URLParam(req, "petID"), claims.UserID)
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		out := make([]photoResponse, 0, len(items))
		for _, p := range items {
			out = append(out, photoResponse{ID: p.ID, PetID: p.PetID, URL: p.URL, Caption: p.Caption, CreatedAt: p.CreatedAt})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func addPhoto(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body photoRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.URL == "" {
			httpx.FieldErrors(w, []httpx.FieldError{{Field: "url", Message: "Photo URL is required"}})
			return
		}

		p, err := svc.AddPhoto(req.Context(), chi.URLParam(req, "petID"), claims.UserID, PhotoInput{
			URL:     body.URL,
			Caption: body.Caption,
		})
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, photoResponse{ID: p.ID, PetID: p.PetID, URL: p.URL, Caption: p.Caption, CreatedAt: p.CreatedAt})
	}
}

func listMilestones(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		items, err := svc.ListMilestones(req.Context(), chi.URLParam(req, "petID"), claims.UserID)
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		out := make([]milestoneResponse, 0, len(items))
		for _, m := range items {
			out = append(out, milestoneResponse{ID: m.ID, PetID: m.PetID, Title: m.Title, Description: m.Description, AchievedAt: m.AchievedAt, CreatedAt: m.CreatedAt})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func addMilestone(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body milestoneRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Title == "" {
			httpx.FieldErrors(w, []httpx.FieldError{{Field: "title", Message: "Milestone title is required"}})
			return
		}

		m, err := svc.AddMilestone(req.Context(), chi.URLParam(req, "petID"), claims.UserID, MilestoneInput{
			Title:       body.Title,
			Description: body.Description,
			AchievedAt:  body.AchievedAt,
		})
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, milestoneResponse{ID: m.ID, PetID: m.PetID, Title: m.Title, Description: m.Description, AchievedAt: m.AchievedAt, CreatedAt: m.CreatedAt})
	}
}

func listWeight(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		items, err := svc.ListWeightEntries(req.Context(), chi.URLParam(req, "petID"), claims.UserID)
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		out := make([]weightResponse, 0, len(items))
		for _, e := range items {
			out = append(out, weightResponse{ID: e.ID, PetID: e.PetID, Weight: e.Weight, Notes: e.Notes, RecordedAt: e.RecordedAt, CreatedAt: e.CreatedAt})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func addWeight(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body weightRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Weight <= 0 {
			httpx.FieldErrors(w, []httpx.FieldError{{Field: "weight", Message: "Weight must be a positive number"}})
			return
		}

		e, err := svc.AddWeightEntry(req.Context(), chi.URLParam(req, "petID"), claims.UserID, WeightInput{
			Weight:     body.Weight,
			Notes:      body.Notes,
			RecordedAt: body.RecordedAt,
		})
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, weightResponse{ID: e.ID, PetID: e.PetID, Weight: e.Weight, Notes: e.Notes, RecordedAt: e.RecordedAt, CreatedAt: e.CreatedAt})
	}
}

func listMood(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		items, err := svc.ListMoodEntries(req.Context(), chi.URLParam(req, "petID"), claims.UserID)
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		out := make([]moodResponse, 0, len(items))
		for _, e := range items {
			out = append(out, moodResponse{ID: e.ID, PetID: e.PetID, Mood: string(e.Mood), Notes: e.Notes, RecordedAt: e.RecordedAt, CreatedAt: e.CreatedAt})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func addMood(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body moodRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		e, err := svc.AddMoodEntry(req.Context(), chi.URLParam(req, "petID"), claims.UserID, MoodInput{
			Mood:       body.Mood,
			Notes:      body.Notes,
			RecordedAt: body.RecordedAt,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.FieldErrors(w, []httpx.FieldError{{Field: "mood", Message: "Valid mood is required"}})
				return
			}
			writeRecordErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, moodResponse{ID: e.ID, PetID: e.PetID, Mood: string(e.Mood), Notes: e.Notes, RecordedAt: e.RecordedAt, CreatedAt: e.CreatedAt})
	}
}

func listAchievements(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		items, err := svc.ListAchievements(req.Context(), chi.URLParam(req, "petID"), claims.UserID)
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		out := make([]achievementResponse, 0, len(items))
		for _, a := range items {
			out = append(out, achievementResponse{ID: a.ID, PetID: a.PetID, Title: a.Title, Icon: a.Icon, EarnedAt: a.EarnedAt, CreatedAt: a.CreatedAt})
		}
		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func addAchievement(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		claims, ok := middleware.GetClaims(req.Context())
		if !ok {
			httpx.Error(w, http.StatusUnauthorized, "Access token required")
			return
		}

		var body achievementRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			httpx.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if body.Title == "" {
			httpx.FieldErrors(w, []httpx.FieldError{{Field: "title", Message: "Achievement title is required"}})
			return
		}

		a, err := svc.AddAchievement(req.Context(), chi.URLParam(req, "petID"), claims.UserID, AchievementInput{
			Title:    body.Title,
			Icon:     body.Icon,
			EarnedAt: body.EarnedAt,
		})
		if err != nil {
			writeRecordErr(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, achievementResponse{ID: a.ID, PetID: a.PetID, Title: a.Title, Icon: a.Icon, EarnedAt: a.EarnedAt, CreatedAt: a.CreatedAt})
	}
}
