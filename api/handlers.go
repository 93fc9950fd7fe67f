package api

import (
	"github.com/devsearch-app/backend/auth"
	"github.com/devsearch-app/backend/database"
	"github.com/devsearch-app/backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, tokens auth.TokenService, mailer *services.Mailer, images *services.ImageStore) *routeHandlers {
	return &routeHandlers{
		authHandler:    newAuthHandler(database.ProfileRepo(), database.VerificationTokenRepo(), tokens, mailer),
		profileHandler: newProfileHandler(database.ProfileRepo(), database.ProjectRepo(), images),
		skillHandler:   newSkillHandler(database.SkillRepo(), database.ProfileRepo()),
		projectHandler: newProjectHandler(database.ProjectRepo(), database.TagRepo(), database.ReviewRepo(), images),
		reviewHandler:  newReviewHandler(database.ReviewRepo()),
		messageHandler: newMessageHandler(database.MessageRepo(), database.ProfileRepo()),
		tagHandler:     newTagHandler(database.TagRepo()),
	}
}
