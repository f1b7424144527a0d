package routes

import (
	"github.com/giglegig/portfolio-api/internal/auth"
	"github.com/giglegig/portfolio-api/internal/handlers"
	"github.com/giglegig/portfolio-api/internal/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	userHandler *handlers.UserHandler,
	blogHandler *handlers.BlogHandler,
	projectHandler *handlers.ProjectHandler,
	profileHandler *handlers.ProfileHandler,
	uploadHandler *handlers.UploadHandler,
	tokenManager *auth.TokenManager,
	userRepo auth.UserRepository,
) {
	// Rate limiting config for auth endpoints
	rateLimitConfig := middleware.DefaultAuthRateLimit()
	rateLimited := middleware.RateLimitByIP(rateLimitConfig)
	requireAuth := auth.RequireAuth(tokenManager, userRepo)

	router.Route("/api", func(r chi.Router) {
		// Public routes - no authentication required
		r.Post("/users", userHandler.Register)
		r.With(rateLimited).Post("/users/login", userHandler.Login)
		r.With(rateLimited).Post("/users/request-code", userHandler.RequestCode)
		r.With(rateLimited).Post("/users/verify-code", userHandler.VerifyCode)

		r.Get("/blogs", blogHandler.List)
		r.Get("/blogs/{id}", blogHandler.Get)

		r.Get("/projects", projectHandler.List)
		r.Get("/projects/{id}", projectHandler.Get)

		r.Get("/profile", profileHandler.Get)

		// Any authenticated user
		r.Group(func(r chi.Router) {
			r.Use(requireAuth)

			r.Get("/users/profile", userHandler.GetAccount)
			r.Put("/users/profile", userHandler.UpdateAccount)

			// Admin-only routes
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAdmin)

				r.Post("/blogs", blogHandler.Create)
				r.Put("/blogs/{id}", blogHandler.Update)
				r.Delete("/blogs/{id}", blogHandler.Delete)

				r.Post("/projects", projectHandler.Create)
				r.Put("/projects/{id}", projectHandler.Update)
				r.Delete("/projects/{id}", projectHandler.Delete)
				r.Post("/projects/import-github", projectHandler.ImportGitHub)

				r.Post("/profile", profileHandler.Upsert)
				r.Post("/profile/avatar", profileHandler.UploadAvatar)
				r.Put("/profile/education", profileHandler.AddEducation)
				r.Delete("/profile/education/{id}", profileHandler.DeleteEducation)
				r.Put("/profile/experience", profileHandler.AddExperience)
				r.Delete("/profile/experience/{id}", profileHandler.DeleteExperience)
				r.Put("/profile/project", profileHandler.AddProjectExperience)
				r.Delete("/profile/project/{id}", profileHandler.DeleteProjectExperience)

				r.Post("/upload/image", uploadHandler.UploadImage)
			})
		})
	})
}
