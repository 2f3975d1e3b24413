package validator_test

import (
	"testing"

	"github.com/Yogesharu2003/BalajiDairy/internal/validator"

	"github.com/stretchr/testify/assert"
)

func TestValidatePasswordStrength(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     string
	}{
		{"too short", "Ab1@xyz", "Password must be at least 8 characters long."},
		{"no uppercase", "secret@123", "Password must contain at least one uppercase letter."},
		{"no lowercase", "SECRET@123", "Password must contain at least one lowercase letter."},
		{"no digit", "Secret@abc", "Password must contain at least one digit."},
		{"no special", "Secret1234", "Password must contain at least one special character."},
		{"valid", "Secret@123", ""},
		{"underscore counts as special", "Secret_123", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, validator.ValidatePasswordStrength(tc.password))
		})
	}
}

func TestIsEmailLike(t *testing.T) {
	assert.True(t, validator.IsEmailLike("a@b.co"))
	assert.True(t, validator.IsEmailLike("  a@b.co  "))
	assert.False(t, validator.IsEmailLike("a@b"))
	assert.False(t, validator.IsEmailLike("not-an-email"))
	assert.False(t, validator.IsEmailLike("a b@c.de"))
}
