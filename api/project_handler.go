package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devsearch-app/backend/database"
	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
	"github.com/devsearch-app/backend/services"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
	tagRepo     *database.TagRepo
	reviewRepo  *database.ReviewRepo
	images      *services.ImageStore
}

func newProjectHandler(projectRepo *database.ProjectRepo, tagRepo *database.TagRepo, reviewRepo *database.ReviewRepo, images *services.ImageStore) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
		tagRepo:     tagRepo,
		reviewRepo:  reviewRepo,
		images:      images,
	}
}

// ProjectCollection represents a page of projects
type ProjectCollection struct {
	Projects []*models.Project `json:"projects"`
	Total    int               `json:"total"`
	Page     int               `json:"page"`
}

// getAllProjects retrieves a page of projects with their tags
func (h projectHandler) getAllProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r)

		projects, err := h.projectRepo.FindAll(page, size)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
			Page:     page,
		})
	}
}

// searchProjects matches the free text against project titles, owner
// usernames and tag names. An empty query lists projects unfiltered.
func (h projectHandler) searchProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, size := pageParams(r)
		query := r.URL.Query().Get("q")

		projects, err := h.projectRepo.Search(query, page, size)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("search", "projects", err))
			return
		}

		h.responder.WriteJSON(w, ProjectCollection{
			Projects: projects,
			Total:    len(projects),
			Page:     page,
		})
	}
}

// getProject retrieves a project with its owner, tags and reviews
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

type projectRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DemoLink    *string `json:"demo_link"`
	SourceCode  *string `json:"source_code"`
}

// createProject creates a project owned by the caller.
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}
		if len(req.Title) < 2 {
			h.responder.WriteError(w, errs.NewValidationError("title", "title must be at least 2 characters"))
			return
		}

		project := models.Project{
			Title:         req.Title,
			OwnerID:       profileID,
			FeaturedImage: models.DefaultProjectImage,
		}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if req.DemoLink != nil {
			project.DemoLink = *req.DemoLink
		}
		if req.SourceCode != nil {
			project.SourceCode = *req.SourceCode
		}

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.responder.WriteCreated(w, project)
	}
}

// ownedProject loads the project and enforces that the caller owns it.
func (h projectHandler) ownedProject(r *http.Request) (*models.Project, error) {
	profileID, err := ctxProfileID(r.Context())
	if err != nil {
		return nil, err
	}

	projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
	if err != nil {
		return nil, errs.NewBadRequestError("invalid projectID")
	}

	project, err := h.projectRepo.FindByID(projectID)
	if err != nil {
		return nil, err
	}
	if project.OwnerID != profileID {
		return nil, errs.NewForbiddenError("only the project owner can edit it")
	}
	return project, nil
}

// updateProject partially updates one of the caller's projects.
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.ownedProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req projectRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Title != "" {
			if len(req.Title) < 2 {
				h.responder.WriteError(w, errs.NewValidationError("title", "title must be at least 2 characters"))
				return
			}
			project.Title = req.Title
		}
		if req.Description != nil {
			project.Description = *req.Description
		}
		if req.DemoLink != nil {
			project.DemoLink = *req.DemoLink
		}
		if req.SourceCode != nil {
			project.SourceCode = *req.SourceCode
		}

		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// updateProjectImage swaps the featured image through the pipeline.
func (h projectHandler) updateProjectImage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.ownedProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, h.images.MaxBytes()+4096)
		if err := r.ParseMultipartForm(h.images.MaxBytes()); err != nil {
			h.responder.WriteError(w, errs.NewInvalidImageError("file size exceeds the maximum limit"))
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing image file"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("failed to read image file"))
			return
		}

		path, err := h.images.Save(header.Filename, data)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		oldImage := project.FeaturedImage
		project.FeaturedImage = path
		if err := h.projectRepo.Update(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}

		if err := h.images.Remove(oldImage); err != nil {
			h.logger.Error().Err(err).Str("path", oldImage).Msg("error removing old image")
		}

		h.responder.WriteJSON(w, map[string]string{"featured_image": path})
	}
}

// deleteProject removes one of the caller's projects and its image.
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		project, err := h.ownedProject(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.Delete(project.ID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		if err := h.images.Remove(project.FeaturedImage); err != nil {
			h.logger.Error().Err(err).Str("path", project.FeaturedImage).Msg("error removing old image")
		}

		h.responder.WriteNoContent(w)
	}
}
