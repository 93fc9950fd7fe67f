package api

import (
	"context"

	"github.com/google/uuid"

	"github.com/devsearch-app/backend/errs"
)

type keyType string

const (
	profileIDKey keyType = "profileID"
	usernameKey  keyType = "username"
)

// ctxWithProfile adds the authenticated profile's identity to the context
func ctxWithProfile(ctx context.Context, profileID uuid.UUID, username string) context.Context {
	ctx = context.WithValue(ctx, profileIDKey, profileID)
	return context.WithValue(ctx, usernameKey, username)
}

// ctxProfileID retrieves the authenticated profile id from the context
func ctxProfileID(ctx context.Context) (uuid.UUID, error) {
	value := ctx.Value(profileIDKey)
	if value == nil {
		return uuid.Nil, errs.NewUnauthorizedError("not authenticated")
	}
	id, ok := value.(uuid.UUID)
	if !ok {
		return uuid.Nil, errs.NewUnauthorizedError("not authenticated")
	}
	return id, nil
}

// ctxUsername retrieves the authenticated username from the context
func ctxUsername(ctx context.Context) string {
	if value, ok := ctx.Value(usernameKey).(string); ok {
		return value
	}
	return ""
}
