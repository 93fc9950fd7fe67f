package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("Sup3rSecret")
	require.NoError(t, err)
	assert.NotEqual(t, "Sup3rSecret", hash)

	assert.True(t, CheckPassword(hash, "Sup3rSecret"))
	assert.False(t, CheckPassword(hash, "sup3rsecret"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestValidatePassword(t *testing.T) {
	assert.Empty(t, ValidatePassword("Sup3rSecret!"))

	tests := []struct {
		name     string
		password string
		want     string
	}{
		{"too short", "Ab1", "Password must be at least 8 characters."},
		{"no uppercase", "lowercase1!", "Password must contain at least one uppercase letter."},
		{"no lowercase", "UPPERCASE1!", "Password must contain at least one lowercase letter."},
		{"no digit", "NoDigitsHere!", "Password must contain at least one digit."},
		{"has spaces", "With Space1!", "Password must not contain spaces."},
		{"no symbol", "Sup3rSecret", "Password must contain at least one symbol."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, ValidatePassword(tt.password), tt.want)
		})
	}

	// A hopeless password collects every violation at once.
	assert.Len(t, ValidatePassword("a b"), 5)
}
