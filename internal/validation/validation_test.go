package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"a@x.com",
		"first.last@example.co.uk",
		"user+tag@domain.io",
	}
	for _, e := range valid {
		assert.NoError(t, ValidateEmail(e), e)
	}

	invalid := []string{
		"",
		"notanemail",
		"missing@tld",
		"@nodomain.com",
		"spaces in@mail.com",
		strings.Repeat("a", 250) + "@x.com",
	}
	for _, e := range invalid {
		assert.Error(t, ValidateEmail(e), e)
	}
}

func TestValidatePassword(t *testing.T) {
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(strings.Repeat("p", 129)))
	assert.NoError(t, ValidatePassword("password1234"))
	assert.NoError(t, ValidatePassword("123456"))
}
