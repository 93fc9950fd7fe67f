package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devsearch-app/backend/database"
	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
)

type skillHandler struct {
	responder   Responder
	logger      zerolog.Logger
	skillRepo   *database.SkillRepo
	profileRepo *database.ProfileRepo
}

func newSkillHandler(skillRepo *database.SkillRepo, profileRepo *database.ProfileRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		skillRepo:   skillRepo,
		profileRepo: profileRepo,
	}
}

type skillRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// getProfileSkills lists any profile's skills; this is public.
func (h skillHandler) getProfileSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid profileID"))
			return
		}

		skills, err := h.skillRepo.FindAllByOwner(profileID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}

		h.responder.WriteJSON(w, skills)
	}
}

// createSkill adds a skill to the caller's profile.
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req skillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if req.Name == "" {
			h.responder.WriteError(w, errs.NewValidationError("name", "name is required"))
			return
		}

		skill := models.Skill{
			Name:    req.Name,
			OwnerID: profileID,
		}
		if req.Description != nil {
			skill.Description = *req.Description
		}

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}

		h.responder.WriteCreated(w, skill)
	}
}

// updateSkill edits one of the caller's skills. A null description
// clears it; an absent one keeps the current value.
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		skill, err := h.skillRepo.FindOwned(skillID, profileID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req skillRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Name != "" {
			skill.Name = req.Name
		}
		if req.Description != nil {
			skill.Description = *req.Description
		}

		if err := h.skillRepo.Update(skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteSkill removes one of the caller's skills.
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skillID, err := uuid.Parse(chi.URLParam(r, "skillID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid skillID"))
			return
		}

		if err := h.skillRepo.Delete(skillID, profileID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}
