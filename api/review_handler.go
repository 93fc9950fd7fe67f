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

type reviewHandler struct {
	responder  Responder
	logger     zerolog.Logger
	reviewRepo *database.ReviewRepo
}

func newReviewHandler(reviewRepo *database.ReviewRepo) reviewHandler {
	logger := log.With().Str("handlerName", "reviewHandler").Logger()

	return reviewHandler{
		responder:  NewResponder(logger),
		logger:     logger,
		reviewRepo: reviewRepo,
	}
}

type reviewRequest struct {
	Body  string `json:"body"`
	Value string `json:"value"`
}

// getProjectReviews lists a page of a project's reviews.
func (h reviewHandler) getProjectReviews() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		page, size := pageParams(r)
		reviews, err := h.reviewRepo.FindByProject(projectID, page, size)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "reviews", err))
			return
		}

		h.responder.WriteJSON(w, reviews)
	}
}

// createReview records the caller's vote on a project. Voting on your
// own project or voting twice is rejected by the repository.
func (h reviewHandler) createReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := uuid.Parse(chi.URLParam(r, "projectID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid projectID"))
			return
		}

		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		review := models.Review{
			Body:      req.Body,
			Value:     req.Value,
			OwnerID:   profileID,
			ProjectID: projectID,
		}
		if err := h.reviewRepo.Add(&review); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, review)
	}
}

// updateReview edits the caller's review.
func (h reviewHandler) updateReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		review, err := h.reviewRepo.FindOwned(reviewID, profileID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req reviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		review.Body = req.Body
		review.Value = req.Value

		if err := h.reviewRepo.Update(review); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// deleteReview removes the caller's review.
func (h reviewHandler) deleteReview() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		reviewID, err := uuid.Parse(chi.URLParam(r, "reviewID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid reviewID"))
			return
		}

		if err := h.reviewRepo.Delete(reviewID, profileID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}
