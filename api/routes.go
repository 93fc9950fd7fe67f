package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires the public surface and the authenticated surface.
// The JSON API mirrors the page routes served by the frontend.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Post("/users", handlers.authHandler.signup())
		r.Post("/users/token", handlers.authHandler.login())
		r.Post("/users/refresh", handlers.authHandler.refresh())
		r.Get("/users/search", handlers.profileHandler.searchProfiles())
		r.Get("/users/{profileID}", handlers.profileHandler.getProfile())
		r.Get("/users/{profileID}/skills", handlers.skillHandler.getProfileSkills())

		r.Get("/projects", handlers.projectHandler.getAllProjects())
		r.Get("/projects/search", handlers.projectHandler.searchProjects())
		r.Get("/projects/{projectID}", handlers.projectHandler.getProject())
		r.Get("/projects/{projectID}/reviews", handlers.reviewHandler.getProjectReviews())
		r.Get("/projects/{projectID}/tags", handlers.tagHandler.getProjectTags())

		r.Get("/verify-email/{token}", handlers.authHandler.verifyEmail())
		r.Post("/password-reset", handlers.authHandler.requestPasswordReset())
		r.Post("/password-reset/{token}", handlers.authHandler.changePassword())

		r.Post("/messages/anonymous", handlers.messageHandler.sendAnonymousMessage())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.authenticate)
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Put("/me", handlers.profileHandler.updateProfile())
		r.Delete("/me", handlers.profileHandler.deactivateProfile())
		r.Put("/me/profile-image", handlers.profileHandler.updateProfileImage())
		r.Post("/me/verify-email", handlers.authHandler.sendVerificationEmail())

		r.Post("/me/skills", handlers.skillHandler.createSkill())
		r.Put("/me/skills/{skillID}", handlers.skillHandler.updateSkill())
		r.Delete("/me/skills/{skillID}", handlers.skillHandler.deleteSkill())

		r.Post("/projects", handlers.projectHandler.createProject())
		r.Put("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Put("/projects/{projectID}/image", handlers.projectHandler.updateProjectImage())

		r.Post("/projects/{projectID}/tags", handlers.tagHandler.addTag())
		r.Delete("/projects/{projectID}/tags/{tagID}", handlers.tagHandler.removeTag())

		r.Post("/projects/{projectID}/reviews", handlers.reviewHandler.createReview())
		r.Put("/reviews/{reviewID}", handlers.reviewHandler.updateReview())
		r.Delete("/reviews/{reviewID}", handlers.reviewHandler.deleteReview())

		r.Get("/messages/inbox", handlers.messageHandler.inbox())
		r.Get("/messages/sent", handlers.messageHandler.sent())
		r.Get("/messages/{messageID}", handlers.messageHandler.openMessage())
		r.Post("/messages", handlers.messageHandler.sendMessage())
		r.Delete("/messages/{messageID}", handlers.messageHandler.deleteMessage())
	})
}
