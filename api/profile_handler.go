package api

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devsearch-app/backend/database"
	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/services"
)

type profileHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	projectRepo *database.ProjectRepo
	images      *services.ImageStore
}

func newProfileHandler(profileRepo *database.ProfileRepo, projectRepo *database.ProjectRepo, images *services.ImageStore) profileHandler {
	logger := log.With().Str("handlerName", "profileHandler").Logger()

	return profileHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		projectRepo: projectRepo,
		images:      images,
	}
}

// ProfileWithProjects is the developer page payload.
type ProfileWithProjects struct {
	Profile  interface{} `json:"profile"`
	Projects interface{} `json:"projects"`
}

// pageParams reads page/size query parameters with the usual floors.
func pageParams(r *http.Request) (page, size int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	size, _ = strconv.Atoi(r.URL.Query().Get("size"))
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = 10
	}
	return page, size
}

// getProfile retrieves a developer page: the profile with its skills
// and a page of its projects.
func (h profileHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := uuid.Parse(chi.URLParam(r, "profileID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid profileID"))
			return
		}

		profile, err := h.profileRepo.FindByID(profileID, true)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, size := pageParams(r)
		projects, err := h.projectRepo.FindByOwner(profileID, page, size)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProfileWithProjects{Profile: profile, Projects: projects})
	}
}

// searchProfiles lists developers matching the free-text query and
// optional skill filter. An empty query returns the unfiltered page.
func (h profileHandler) searchProfiles() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r)
		query := r.URL.Query().Get("q")
		skill := r.URL.Query().Get("skill")

		profiles, err := h.profileRepo.Search(query, skill, page, size)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "profiles", err))
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"profiles": profiles,
			"total":    len(profiles),
			"page":     page,
		})
	}
}

type updateProfileRequest struct {
	FirstName  *string `json:"first_name"`
	LastName   *string `json:"last_name"`
	Location   *string `json:"location"`
	ShortIntro *string `json:"short_intro"`
	Bio        *string `json:"bio"`
	Github     *string `json:"github"`
	X          *string `json:"x"`
	Linkedin   *string `json:"linkedin"`
	Youtube    *string `json:"youtube"`
	Website    *string `json:"website"`
}

// updateProfile partially updates the caller's profile. Absent fields
// keep their value; fields present with null are cleared.
func (h profileHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req updateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		profile, err := h.profileRepo.FindByID(profileID, false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		apply := func(dst *string, src *string) {
			if src != nil {
				*dst = *src
			}
		}
		apply(&profile.FirstName, req.FirstName)
		apply(&profile.LastName, req.LastName)
		apply(&profile.Location, req.Location)
		apply(&profile.ShortIntro, req.ShortIntro)
		apply(&profile.Bio, req.Bio)
		apply(&profile.Github, req.Github)
		apply(&profile.X, req.X)
		apply(&profile.Linkedin, req.Linkedin)
		apply(&profile.Youtube, req.Youtube)
		apply(&profile.Website, req.Website)

		if err := h.profileRepo.Update(profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// updateProfileImage runs the upload through the image pipeline and
// swaps the stored path, removing the previous image afterwards.
func (h profileHandler) updateProfileImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile, err := h.profileRepo.FindByID(profileID, false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		path, err := h.saveUpload(w, r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		oldImage := profile.ProfileImage
		profile.ProfileImage = path
		if err := h.profileRepo.Update(profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		if err := h.images.Remove(oldImage); err != nil {
			h.logger.Error().Err(err).Str("path", oldImage).Msg("error removing old image")
		}

		h.responder.WriteJSON(w, map[string]string{"profile_image": path})
	}
}

// deactivateProfile soft-deletes the caller's account.
func (h profileHandler) deactivateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.profileRepo.Deactivate(profileID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// saveUpload reads the multipart "image" field within the configured
// size ceiling and hands the bytes to the pipeline.
func (h profileHandler) saveUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.images.MaxBytes()+4096)
	if err := r.ParseMultipartForm(h.images.MaxBytes()); err != nil {
		return "", errs.NewInvalidImageError("file size exceeds the maximum limit")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return "", errs.NewBadRequestError("missing image file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return "", errs.NewBadRequestError("failed to read image file")
	}

	return h.images.Save(header.Filename, data)
}
