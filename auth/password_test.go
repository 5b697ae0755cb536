package auth

import (
	"testing"

	"github.com/natakamm/My-Art-Gallery-BE/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{"all requirements met", "Sunflower1!", false},
		{"exactly eight characters", "Aa1!Bb2?", false},
		{"too short", "Aa1!xyz", true},
		{"no upper case letter", "sunflower1!", true},
		{"no digit", "Sunflower!!", true},
		{"no symbol", "Sunflower12", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errs.IsValidation(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Sunflower1!")
	require.NoError(t, err)
	require.NotEqual(t, "Sunflower1!", hash)

	assert.True(t, CheckPassword(hash, "Sunflower1!"))
	assert.False(t, CheckPassword(hash, "sunflower1!"))
	assert.False(t, CheckPassword(hash, ""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("nata@example.com"))
	assert.NoError(t, ValidateEmail("nata+tag@sub.example.co"))

	for _, email := range []string{
		"",
		"not-an-email",
		"missing@domain @space.com",
		"Nata <nata@example.com>",
	} {
		err := ValidateEmail(email)
		require.Error(t, err, "email %q", email)
		assert.True(t, errs.IsValidation(err))
	}
}
