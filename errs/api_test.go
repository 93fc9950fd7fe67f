package errs

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSelfReviewMatchesForbidden(t *testing.T) {
	err := NewSelfReviewError()

	assert.Equal(t, http.StatusForbidden, err.StatusCode)
	assert.True(t, IsForbidden(err))
	assert.True(t, errors.Is(err, ErrSelfReview))
}

func TestDuplicateReviewMatchesConflict(t *testing.T) {
	err := NewDuplicateReviewError()

	assert.Equal(t, http.StatusConflict, err.StatusCode)
	assert.True(t, IsConflict(err))
	assert.True(t, errors.Is(err, ErrDuplicateReview))
}

func TestSentinelPredicates(t *testing.T) {
	assert.True(t, IsForbidden(NewForbiddenError("nope")))
	assert.True(t, IsUnauthorized(NewUnauthorizedError("who are you")))
	assert.True(t, IsNotFound(NewNotFound("profile")))
	assert.True(t, IsTokenAlreadyUsed(NewTokenAlreadyUsedError()))
	assert.True(t, IsInvalidImage(NewInvalidImageError("bad file")))

	assert.False(t, IsForbidden(NewNotFound("profile")))
	assert.False(t, IsConflict(NewForbiddenError("nope")))
}
