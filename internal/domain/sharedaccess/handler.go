package sharedaccess

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"

	"github.com/go-chi/chi/v5"
)

// PetOwnerLookup evita importar el paquete pets (rompe ciclos).
type PetOwnerLookup interface {
	OwnerOf(ctx context.Context, petID string) (string, error)
}

func RegisterRoutes(r chi.Router, svc *Service, petOwners PetOwnerLookup) {
	r.Route("/pets/{petID}/shared", func(sr chi.Router) {
		sr.Get("/", listGrantsHandler(svc, petOwners))
		sr.Post("/", grantHandler(svc, petOwners))
		sr.Delete("/{grantID}", revokeHandler(svc, petOwners))
	})
}

type grantRequest struct {
	UserID string `json:"userId"`
	Role   string `json:"role"`
}

type grantResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"petId"`
	UserID    string    `json:"userId"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// requireOwner devuelve el petID si el caller es el dueño directo.
func requireOwner(w http.ResponseWriter, r *http.Request, petOwners PetOwnerLookup) (string, bool) {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok || strings.TrimSpace(claims.UserID) == "" {
		httpx.Error(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}

	petID := chi.URLParam(r, "petID")
	owner, err := petOwners.OwnerOf(r.Context(), petID)
	if err != nil {
		httpx.Error(w, http.StatusNotFound, "Pet not found")
		return "", false
	}
	if owner != claims.UserID {
		httpx.Error(w, http.StatusNotFound, "Pet not found")
		return "", false
	}

	return petID, true
}

func grantHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := requireOwner(w, r, petOwners)
		if !ok {
			return
		}
		claims, _ := middleware.GetClaims(r.Context())

		var req grantRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var errs []httpx.FieldError
		if strings.TrimSpace(req.UserID) == "" {
			errs = append(errs, httpx.FieldError{Field: "userId", Message: "User ID is required"})
		}
		if !ValidRole(req.Role) {
			errs = append(errs, httpx.FieldError{Field: "role", Message: "Valid role is required"})
		}
		if len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		g, err := svc.Grant(r.Context(), claims.UserID, GrantInput{
			PetID:  petID,
			UserID: req.UserID,
			Role:   req.Role,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				httpx.Error(w, http.StatusBadRequest, err.Error())
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, toGrantResponse(g))
	}
}

func listGrantsHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := requireOwner(w, r, petOwners)
		if !ok {
			return
		}

		items, err := svc.ListByPet(r.Context(), petID)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]grantResponse, 0, len(items))
		for _, g := range items {
			out = append(out, toGrantResponse(g))
		}

		httpx.WriteJSON(w, http.StatusOK, out)
	}
}

func revokeHandler(svc *Service, petOwners PetOwnerLookup) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		petID, ok := requireOwner(w, r, petOwners)
		if !ok {
			return
		}

		grantID := chi.URLParam(r, "grantID")
		if err := svc.Revoke(r.Context(), grantID, petID); err != nil {
			if errors.Is(err, ErrNotFound) {
				httpx.Error(w, http.StatusNotFound, "Grant not found")
				return
			}
			httpx.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Access revoked successfully"})
	}
}

func toGrantResponse(g Grant) grantResponse {
	return grantResponse{
		ID:        g.ID,
		PetID:     g.PetID,
		UserID:    g.UserID,
		Role:      g.Role,
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
