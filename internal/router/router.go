// Package router arma la API completa: repos, servicios y rutas.
package router

import (
	"database/sql"
	"net/http"

	"pet-care-tracker/internal/adapters/storage/memory"
	"pet-care-tracker/internal/adapters/storage/sqlite"
	"pet-care-tracker/internal/domain/analytics"
	"pet-care-tracker/internal/domain/notifications"
	"pet-care-tracker/internal/domain/petrecords"
	"pet-care-tracker/internal/domain/pets"
	"pet-care-tracker/internal/domain/sharedaccess"
	"pet-care-tracker/internal/domain/tasklogs"
	"pet-care-tracker/internal/domain/tasks"
	"pet-care-tracker/internal/domain/users"
	"pet-care-tracker/internal/middleware"
	"pet-care-tracker/internal/platform/httpx"
	"pet-care-tracker/internal/platform/logger"
	"pet-care-tracker/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Verifier auth.AuthVerifier
	Issuer   auth.TokenIssuer

	// DB nil usa el store en memoria (modo dev y tests).
	DB *sql.DB

	Logger logger.Logger
}

type repos struct {
	users         users.Repository
	pets          pets.Repository
	shared        sharedaccess.Repository
	tasks         tasks.Repository
	taskLogs      tasklogs.Repository
	notifications notifications.Repository
	records       petrecords.Repository
	analytics     analytics.Repository
}

func buildRepos(db *sql.DB) repos {
	if db == nil {
		store := memory.NewStore()
		return repos{
			users:         store.Users(),
			pets:          store.Pets(),
			shared:        store.SharedAccess(),
			tasks:         store.Tasks(),
			taskLogs:      store.TaskLogs(),
			notifications: store.Notifications(),
			records:       store.PetRecords(),
			analytics:     store.Analytics(),
		}
	}
	return repos{
		users:         sqlite.NewUsersRepo(db),
		pets:          sqlite.NewPetsRepo(db),
		shared:        sqlite.NewSharedAccessRepo(db),
		tasks:         sqlite.NewTasksRepo(db),
		taskLogs:      sqlite.NewTaskLogsRepo(db),
		notifications: sqlite.NewNotificationsRepo(db),
		records:       sqlite.NewPetRecordsRepo(db),
		analytics:     sqlite.NewAnalyticsRepo(db),
	}
}

func New(opts Options) http.Handler {
	rp := buildRepos(opts.DB)

	usersSvc := users.NewService(rp.users)
	sharedSvc := sharedaccess.NewService(rp.shared)
	petsSvc := pets.NewService(rp.pets, sharedSvc)
	tasksSvc := tasks.NewService(rp.tasks, petsSvc)
	logsSvc := tasklogs.NewService(rp.taskLogs)
	notificationsSvc := notifications.NewService(rp.notifications)
	recordsSvc := petrecords.NewService(rp.records, petsSvc)
	analyticsSvc := analytics.NewService(rp.analytics)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if opts.Logger != nil {
		r.Use(middleware.RequestLogger(opts.Logger))
	}
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(api chi.Router) {
		users.RegisterAuthRoutes(api, usersSvc, opts.Issuer)

		api.Group(func(protected chi.Router) {
			protected.Use(middleware.RequireAuth(opts.Verifier))

			users.RegisterProfileRoutes(protected, usersSvc)
			pets.RegisterRoutes(protected, petsSvc)
			sharedaccess.RegisterRoutes(protected, sharedSvc, petsSvc)
			petrecords.RegisterRoutes(protected, recordsSvc)
			tasks.RegisterRoutes(protected, tasksSvc)
			tasklogs.RegisterRoutes(protected, logsSvc)
			notifications.RegisterRoutes(protected, notificationsSvc)
			analytics.RegisterRoutes(protected, analyticsSvc)
		})
	})

	return r
}
