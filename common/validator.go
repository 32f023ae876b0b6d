package common

import (
	"encoding/json"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

var (
	phonePattern  = regexp.MustCompile(`^\+?\d{12,15}$`)
	upperPattern  = regexp.MustCompile(`[A-Z]`)
	digitPattern  = regexp.MustCompile(`\d`)
	symbolPattern = regexp.MustCompile(`[^\w\s]`)
)

func ValidateAndDecode(w http.ResponseWriter, r *http.Request, payload interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return false
	}

	if err := validate.Struct(payload); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		http.Error(w, validationErrors.Error(), http.StatusBadRequest)
		return false
	}

	return true
}

// ValidatePassword enforces the password complexity rule: at least one
// uppercase letter, one digit and one symbol.
func ValidatePassword(password string) error {
	if !upperPattern.MatchString(password) || !digitPattern.MatchString(password) || !symbolPattern.MatchString(password) {
		return errors.New("password must contain at least one uppercase letter, one number and one symbol")
	}
	return nil
}

// ValidatePhoneNumber accepts an optional leading '+' followed by 12 to
// 15 digits. An empty value is allowed, the field is optional.
func ValidatePhoneNumber(phone string) error {
	if phone != "" && !phonePattern.MatchString(phone) {
		return errors.New("phone number must start with an optional '+' and contain 12 to 15 digits")
	}
	return nil
}

// ValidateImageFilename restricts uploaded images to .jpg and .png files.
func ValidateImageFilename(filename string) error {
	lower := strings.ToLower(filename)
	if !strings.HasSuffix(lower, ".jpg") && !strings.HasSuffix(lower, ".png") {
		return errors.New("uploaded file is not a .jpg or .png image")
	}
	return nil
}
