package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/users", h.createUser)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
	})

	// routes behind the access-token gate
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)

		r.Get("/api/users", h.listUsers)
		r.Get("/api/users/{id}", h.getUser)
		r.Patch("/api/users/{id}", h.updateUser)
		r.Delete("/api/users/{id}", h.deleteUser)

		r.Post("/api/staffs", h.createStaff)
		r.Get("/api/staffs", h.listStaff)
		r.Get("/api/staffs/{id}", h.getStaff)
		r.Patch("/api/staffs/{id}", h.updateStaff)
		r.Delete("/api/staffs/{id}", h.deleteStaff)

		r.Post("/api/permissions", h.createPermission)
		r.Get("/api/permissions", h.listPermissions)
		r.Get("/api/permissions/{id}", h.getPermission)
		r.Patch("/api/permissions/{id}", h.renamePermission)
		r.Delete("/api/permissions/{id}", h.deletePermission)

		r.Post("/api/api-keys", h.createAPIKey)
		r.Get("/api/api-keys", h.listAPIKeys)
		r.Get("/api/api-keys/{id}", h.getAPIKey)
		r.Patch("/api/api-keys/{id}", h.updateAPIKey)
		r.Delete("/api/api-keys/{id}", h.deleteAPIKey)

		r.Post("/api/kyc", h.submitKYC)
		r.Get("/api/kyc/latest", h.latestKYC)
		r.Get("/api/kyc/users/{id}", h.listKYC)
		r.Post("/api/kyc/{id}/review", h.reviewKYC)

		r.Get("/api/activity-logs", h.listActivityLogs)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
