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

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
	profileRepo *database.ProfileRepo
}

func newMessageHandler(messageRepo *database.MessageRepo, profileRepo *database.ProfileRepo) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		profileRepo: profileRepo,
	}
}

// InboxResponse bundles the received messages with the derived unread
// count.
type InboxResponse struct {
	Messages    []*models.Message `json:"messages"`
	UnreadCount int64             `json:"unread_count"`
}

type sendMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
}

type anonymousMessageRequest struct {
	RecipientID uuid.UUID `json:"recipient_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Subject     string    `json:"subject"`
	Body        string    `json:"body"`
}

// inbox lists received messages, unread first, with the unread count.
func (h messageHandler) inbox() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		messages, err := h.messageRepo.Inbox(profileID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "messages", err))
			return
		}

		unread, err := h.messageRepo.UnreadCount(profileID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "messages", err))
			return
		}

		h.responder.WriteJSON(w, InboxResponse{Messages: messages, UnreadCount: unread})
	}
}

// sent lists messages the caller has sent.
func (h messageHandler) sent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		messages, err := h.messageRepo.Sent(profileID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "messages", err))
			return
		}

		h.responder.WriteJSON(w, messages)
	}
}

// openMessage returns a single message and marks it read when the
// caller is the recipient.
func (h messageHandler) openMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		message, err := h.messageRepo.Open(messageID, profileID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, message)
	}
}

// sendMessage sends a message from the authenticated caller. The
// sender's name and email are stamped from their profile.
func (h messageHandler) sendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		sender, err := h.profileRepo.FindByID(profileID, false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req sendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		message := models.Message{
			Name:        sender.Username,
			Email:       sender.Email,
			Subject:     req.Subject,
			Body:        req.Body,
			SenderID:    &sender.ID,
			RecipientID: &req.RecipientID,
		}
		if err := h.messageRepo.Send(&message); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, message)
	}
}

// sendAnonymousMessage accepts a message from the public contact form
// without a registered sender.
func (h messageHandler) sendAnonymousMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req anonymousMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		message := models.Message{
			Name:        req.Name,
			Email:       req.Email,
			Subject:     req.Subject,
			Body:        req.Body,
			RecipientID: &req.RecipientID,
		}
		if err := h.messageRepo.Send(&message); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteCreated(w, message)
	}
}

// deleteMessage drops the caller's side of a message.
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		profileID, err := ctxProfileID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		messageID, err := uuid.Parse(chi.URLParam(r, "messageID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid messageID"))
			return
		}

		if err := h.messageRepo.Delete(messageID, profileID); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteNoContent(w)
	}
}
