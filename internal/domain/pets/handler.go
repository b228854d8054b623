package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Get("/", listPetsHandler(svc))
		pr.Post("/", createPetHandler(svc))

		// Perfil: owner o rol compartido
		pr.Get("/{petID}", getPetHandler(svc))

		// Editar: owner o caregiver. Borrar: solo owner.
		pr.Put("/{petID}", updatePetHandler(svc))
		pr.Delete("/{petID}", deletePetHandler(svc))
	})
}

type petRequest struct {
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Breed        string   `json:"breed"`
	Age          *int     `json:"age"`
	Weight       *float64 `json:"weight"`
	Avatar       string   `json:"avatar"`
	FavoriteToys string   `json:"favoriteToys"`
	Allergies    string   `json:"allergies"`
	SpecialNeeds string   `json:"specialNeeds"`
	AdoptionDate string   `json:"adoptionDate"` // YYYY-MM-DD opcional
}

type petResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Breed        string    `json:"breed,omitempty"`
	Age          *int      `json:"age"`
	Weight       *float64  `json:"weight"`
	Avatar       string    `json:"avatar,omitempty"`
	FavoriteToys string    `json:"favoriteToys,omitempty"`
	Allergies    string    `json:"allergies,omitempty"`
	SpecialNeeds string    `json:"specialNeeds,omitempty"`
	AdoptionDate *string   `json:"adoptionDate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (req petRequest) validate() []httpx.FieldError {
	var errs []httpx.FieldError
	if strings.TrimSpace(req.Name) == "" {
		errs = append(errs, httpx.FieldError{Field: "name", Message: "Pet name is required"})
	}
	if !ValidType(req.Type) {
		errs = append(errs, httpx.FieldError{Field: "type", Message: "Valid pet type is required"})
	}
	if req.Age != nil && *req.Age < 0 {
		errs = append(errs, httpx.FieldError{Field: "age", Message: "Age must be a positive number"})
	}
	if req.Weight != nil && *req.Weight < 0 {
		errs = append(errs, httpx.FieldError{Field: "weight", Message: "Weight must be a positive number"})
	}
	return errs
}

func (req petRequest) toInput() (CreateInput, error) {
	var adoption *time.Time
	if strings.TrimSpace(req.AdoptionDate) != "" {
		t, err := time.Parse("2006-01-02", req.AdoptionDate)
		if err != nil {
			return CreateInput{}, err
		}
		adoption = &t
	}

	return CreateInput{
		Name:         req.Name,
		Type:         req.Type,
		Breed:        req.Breed,
		Age:          req.Age,
		Weight:       req.Weight,
		Avatar:       req.Avatar,
		FavoriteToys: req.FavoriteToys,
		Allergies:    req.Allergies,
		SpecialNeeds: req.SpecialNeeds,
		AdoptionDate: adoption,
	}, nil
}

func listPetsHandler(svc *Service) http.HandlerFunc {
	// Solo las del owner (las compartidas no se mezclan acá)
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.UserID)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func createPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		if errs := req.validate(); len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		in, err := req.toInput()
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "adoptionDate must be YYYY-MM-DD")
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, in)
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "Error creating pet")
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toPetResponse(p))
	}
}

func getPetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")
		access, err := svc.AccessFor(r.Context(), petID, claims.UserID)
		if err != nil || access < AccessView {
			// mascota ajena sin grant => mismo 404 que inexistente
			httpx.Error(w, http.StatusNotFound, "Pet not found")
			return
		}

		p, err := svc.GetByID(r.Context(), petID)
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "Pet not found")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func updatePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req petRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		if errs := req.validate(); len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		in, err := req.toInput()
		if err != nil {
			httpx.Error(w, http.StatusBadRequest, "adoptionDate must be YYYY-MM-DD")
			return
		}

		petID := chi.URLParam(r, "petID")
		p, err := svc.Update(r.Context(), petID, claims.UserID, in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, err.Error())
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "Pet not found")
			default:
				httpx.Error(w, http.StatusInternalServerError, "Error updating pet")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toPetResponse(p))
	}
}

func deletePetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		petID := chi.URLParam(r, "petID")
		if err := svc.Delete(r.Context(), petID, claims.UserID); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, http.StatusNotFound, "Pet not found")
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "Error deleting pet")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Pet deleted successfully"})
	}
}

func toPetResponse(p Pet) petResponse {
	var adoption *string
	if p.AdoptionDate != nil {
		s := p.AdoptionDate.Format("2006-01-02")
		adoption = &s
	}

	return petResponse{
		ID:           p.ID,
		UserID:       p.OwnerUserID,
		Name:         p.Name,
		Type:         string(p.Type),
		Breed:        p.Breed,
		Age:          p.Age,
		Weight:       p.Weight,
		Avatar:       p.Avatar,
		FavoriteToys: p.FavoriteToys,
		Allergies:    p.Allergies,
		SpecialNeeds: p.SpecialNeeds,
		AdoptionDate: adoption,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
