package user

import (
	"regexp"
	"strings"

	"github.com/studyhive/studyhive/internal/apperror"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

const passwordSpecials = "@$!%*?&"

func validateName(name string) string {
	n := strings.TrimSpace(name)
	if len(n) < 3 || len(n) > 30 {
		return "name must be between 3 and 30 characters"
	}
	return ""
}

func validateEmail(email string) string {
	if !emailPattern.MatchString(email) {
		return "email must be a valid address"
	}
	return ""
}

// validatePassword enforces the registration policy: 8-30 characters with
// at least one upper, one lower, one digit and one of @$!%*?&.
func validatePassword(password string) string {
	if len(password) < 8 || len(password) > 30 {
		return "password must be between 8 and 30 characters"
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	if !upper || !lower || !digit || !special {
		return "password must contain upper and lower case letters, a digit and one of " + passwordSpecials
	}
	return ""
}

// validateNewPassword is the change-password policy: a length floor only,
// looser than registration so existing clients keep working.
func validateNewPassword(password string) string {
	if len(password) < 6 || len(password) > 30 {
		return "password must be between 6 and 30 characters"
	}
	return ""
}

func validateRegister(in RegisterInput) error {
	ve := &apperror.ValidationError{}
	if msg := validateName(in.Name); msg != "" {
		ve.Add("name", msg)
	}
	if msg := validateEmail(in.Email); msg != "" {
		ve.Add("email", msg)
	}
	if msg := validatePassword(in.Password); msg != "" {
		ve.Add("password", msg)
	}
	if ve.Empty() {
		return nil
	}
	return ve
}
