package users

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
)

var emailRx = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// RegisterAuthRoutes monta los endpoints públicos (sin token).
func RegisterAuthRoutes(r chi.Router, svc *Service, issuer auth.TokenIssuer) {
	r.Route("/auth", func(ar chi.Router) {
		ar.Post("/register", registerHandler(svc, issuer))
		ar.Post("/login", loginHandler(svc, issuer))
	})
}

// RegisterProfileRoutes monta los endpoints de perfil (requieren token).
func RegisterProfileRoutes(r chi.Router, svc *Service) {
	r.Route("/user", func(ur chi.Router) {
		ur.Get("/profile", getProfileHandler(svc))
		ur.Put("/profile", updateProfileHandler(svc))
		ur.Get("/preferences", getPreferencesHandler(svc))
		ur.Put("/preferences", updatePreferencesHandler(svc))
	})
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

type authResponse struct {
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    userResponse `json:"user"`
}

type updateProfileRequest struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Avatar string `json:"avatar"`
}

func registerHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var errs []httpx.FieldError
		if strings.TrimSpace(req.Name) == "" {
			errs = append(errs, httpx.FieldError{Field: "name", Message: "Name is required"})
		}
		if !emailRx.MatchString(strings.TrimSpace(req.Email)) {
			errs = append(errs, httpx.FieldError{Field: "email", Message: "Valid email is required"})
		}
		if len(req.Password) < 6 {
			errs = append(errs, httpx.FieldError{Field: "password", Message: "Password must be at least 6 characters"})
		}
		if len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		u, err := svc.Register(r.Context(), RegisterInput{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				httpx.Error(w, http.StatusBadRequest, "User already exists")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, err.Error())
			default:
				httpx.Error(w, http.StatusInternalServerError, "Server error")
			}
			return
		}

		token, err := issuer.Issue(u.ID, u.Email)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "Server error")
			return
		}

		httpx.WriteJSON(w, http.StatusCreated, authResponse{
			Message: "User created successfully",
			Token:   token,
			User:    toUserResponse(u),
		})
	}
}

func loginHandler(svc *Service, issuer auth.TokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var errs []httpx.FieldError
		if !emailRx.MatchString(strings.TrimSpace(req.Email)) {
			errs = append(errs, httpx.FieldError{Field: "email", Message: "Valid email is required"})
		}
		if req.Password == "" {
			errs = append(errs, httpx.FieldError{Field: "password", Message: "Password is required"})
		}
		if len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		u, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			// genérico a propósito: no distinguimos email desconocido de password malo
			httpx.Error(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		token, err := issuer.Issue(u.ID, u.Email)
		if err != nil {
			httpx.Error(w, http.StatusInternalServerError, "Server error")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, authResponse{
			Message: "Login successful",
			Token:   token,
			User:    toUserResponse(u),
		})
	}
}

func getProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := svc.GetByID(r.Context(), claims.UserID)
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "User not found")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func updateProfileHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		var errs []httpx.FieldError
		if strings.TrimSpace(req.Name) == "" {
			errs = append(errs, httpx.FieldError{Field: "name", Message: "Name is required"})
		}
		if !emailRx.MatchString(strings.TrimSpace(req.Email)) {
			errs = append(errs, httpx.FieldError{Field: "email", Message: "Valid email is required"})
		}
		if len(errs) > 0 {
			httpx.FieldErrors(w, errs)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), claims.UserID, UpdateProfileInput{
			Name:   req.Name,
			Email:  req.Email,
			Avatar: req.Avatar,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrEmailTaken):
				httpx.Error(w, http.StatusBadRequest, "Email is already taken")
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "User not found")
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, err.Error())
			default:
				httpx.Error(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, toUserResponse(u))
	}
}

func getPreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		p, err := svc.GetPreferences(r.Context(), claims.UserID)
		if err != nil {
			httpx.Error(w, http.StatusNotFound, "User not found")
			return
		}

		httpx.WriteJSON(w, http.StatusOK, p)
	}
}

func updatePreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			httpx.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		// Se parte de los defaults: un PUT parcial no borra lo que no envía.
		p := DefaultPreferences()
		if err := dec.Decode(&p); err != nil {
			httpx.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		saved, err := svc.UpdatePreferences(r.Context(), claims.UserID, p)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				httpx.Error(w, http.StatusBadRequest, "invalid preferences")
			case errors.Is(err, ErrNotFound):
				httpx.Error(w, http.StatusNotFound, "User not found")
			default:
				httpx.Error(w, http.StatusInternalServerError, "internal error")
			}
			return
		}

		httpx.WriteJSON(w, http.StatusOK, saved)
	}
}

func toUserResponse(u User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}
