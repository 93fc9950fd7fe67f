package api

import (
	"encoding/json"
	"net/http"
	"net/mail"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/devsearch-app/backend/auth"
	"github.com/devsearch-app/backend/database"
	"github.com/devsearch-app/backend/errs"
	"github.com/devsearch-app/backend/models"
	"github.com/devsearch-app/backend/services"
)

type authHandler struct {
	responder   Responder
	logger      zerolog.Logger
	profileRepo *database.ProfileRepo
	tokenRepo   *database.VerificationTokenRepo
	tokens      auth.TokenService
	mailer      *services.Mailer
}

func newAuthHandler(profileRepo *database.ProfileRepo, tokenRepo *database.VerificationTokenRepo, tokens auth.TokenService, mailer *services.Mailer) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		profileRepo: profileRepo,
		tokenRepo:   tokenRepo,
		tokens:      tokens,
		mailer:      mailer,
	}
}

type signupRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// validateSignup collects every per-field problem in one pass so the
// form can be re-rendered with all of them at once.
func (h authHandler) validateSignup(req signupRequest) (map[string][]string, error) {
	fieldErrors := map[string][]string{}

	if req.Username == "" {
		fieldErrors["username"] = append(fieldErrors["username"], "Username is required.")
	} else {
		taken, err := h.profileRepo.UsernameTaken(req.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			fieldErrors["username"] = append(fieldErrors["username"], "Username used before!")
		}
	}

	if _, err := mail.ParseAddress(req.Email); err != nil {
		fieldErrors["email"] = append(fieldErrors["email"], "Not a valid email address.")
	} else {
		taken, err := h.profileRepo.EmailTaken(req.Email)
		if err != nil {
			return nil, err
		}
		if taken {
			fieldErrors["email"] = append(fieldErrors["email"], "Email used before!")
		}
	}

	if passwordErrors := auth.ValidatePassword(req.Password); len(passwordErrors) > 0 {
		fieldErrors["password"] = passwordErrors
	}

	return fieldErrors, nil
}

// signup registers a new, unverified profile.
func (h authHandler) signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req signupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		fieldErrors, err := h.validateSignup(req)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("validate signup", "profile", err))
			return
		}
		if len(fieldErrors) > 0 {
			h.responder.WriteFieldErrors(w, fieldErrors)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		profile := models.Profile{
			Username:     req.Username,
			Email:        req.Email,
			PasswordHash: hash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			IsActive:     true,
			ProfileImage: models.DefaultProfileImage,
		}
		if err := h.profileRepo.Add(&profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "profile", err))
			return
		}

		h.responder.WriteCreated(w, profile)
	}
}

type loginRequest struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

// login verifies credentials and issues access and refresh tokens.
// The response never reveals which credential failed.
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		profile, err := h.profileRepo.FindByUsernameOrEmail(strings.TrimSpace(req.UsernameOrEmail))
		if err != nil || !auth.CheckPassword(profile.PasswordHash, req.Password) {
			h.responder.WriteError(w, errs.NewUnauthorizedError("incorrect username or password"))
			return
		}

		accessToken, err := h.tokens.GenerateAccessToken(profile.ID, profile.Username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		refreshToken, err := h.tokens.GenerateRefreshToken(profile.ID, profile.Username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, tokenResponse{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
			TokenType:    "bearer",
		})
	}
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// refresh exchanges a valid refresh token for a new access token.
func (h authHandler) refresh() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refreshRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		claims, err := h.tokens.ParseToken(req.RefreshToken)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		profileID, err := claims.ProfileID()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		accessToken, err := h.tokens.GenerateAccessToken(profileID, claims.Username)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, tokenResponse{
			AccessToken:  accessToken,
			RefreshToken: req.RefreshToken,
			TokenType:    "bearer",
		})
	}
}

// sendVerificationEmail issues a single-use token and mails the
// confirmation link to the authenticated profile.
func (h authHandler) sendVerificationEmail() http.HandlerFunc {
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

		token, err := h.tokenRepo.Issue(profile.ID, database.DefaultTokenTTL)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("issue", "verification token", err))
			return
		}

		if err := h.mailer.SendVerificationEmail(profile.Email, token.Token); err != nil {
			h.logger.Error().Err(err).Msg("failed to send verification email")
			h.responder.WriteError(w, errs.NewInternalError("error sending verification email"))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// verifyEmail is the confirmation-link callback. The token redeems
// exactly once.
func (h authHandler) verifyEmail() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tokenValue := chi.URLParam(r, "token")
		if tokenValue == "" {
			h.responder.WriteError(w, errs.NewBadRequestError("missing token"))
			return
		}

		token, err := h.tokenRepo.Redeem(tokenValue)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.responder.WriteJSON(w, map[string]interface{}{
			"status":     "verified",
			"profile_id": token.ProfileID,
		})
	}
}

type passwordResetRequest struct {
	Email string `json:"email"`
}

// requestPasswordReset emails a short-lived reset link when the
// account exists. It always answers 204 so the endpoint cannot be
// used to probe which emails are registered.
func (h authHandler) requestPasswordReset() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req passwordResetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		profile, err := h.profileRepo.FindByEmail(req.Email)
		if err == nil {
			token, err := h.tokens.GenerateToken(profile.ID, profile.Username, database.DefaultTokenTTL)
			if err == nil {
				if err := h.mailer.SendPasswordResetEmail(profile.Email, token); err != nil {
					h.logger.Error().Err(err).Msg("failed to send password reset email")
				}
			}
		}

		h.responder.WriteNoContent(w)
	}
}

type changePasswordRequest struct {
	Password string `json:"password"`
}

// changePassword sets a new password for the profile named by a valid
// reset token.
func (h authHandler) changePassword() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := h.tokens.ParseToken(chi.URLParam(r, "token"))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		profileID, err := claims.ProfileID()
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req changePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if passwordErrors := auth.ValidatePassword(req.Password); len(passwordErrors) > 0 {
			h.responder.WriteFieldErrors(w, map[string][]string{"password": passwordErrors})
			return
		}

		profile, err := h.profileRepo.FindByID(profileID, false)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		profile.PasswordHash = hash

		if err := h.profileRepo.Update(profile); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "profile", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}
