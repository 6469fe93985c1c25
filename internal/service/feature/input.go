package feature

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/heartmarshall/featureboard-backend/internal/domain"
)

// SubmitInput holds the parameters for submitting a feature request.
type SubmitInput struct {
	Title       string
	Description string
	Categories  []string
}

// Validate checks all fields and collects all errors.
func (i SubmitInput) Validate() error {
	var errs []domain.FieldError

	title := strings.TrimSpace(i.Title)
	if title == "" {
		errs = append(errs, domain.FieldError{Field: "title", Message: "required"})
	}
	if utf8.RuneCountInString(title) > domain.MaxTitleLength {
		errs = append(errs, domain.FieldError{Field: "title", Message: "max 100 characters"})
	}

	description := strings.TrimSpace(i.Description)
	if description == "" {
		errs = append(errs, domain.FieldError{Field: "description", Message: "required"})
	}
	if utf8.RuneCountInString(description) > domain.MaxDescriptionLength {
		errs = append(errs, domain.FieldError{Field: "description", Message: "max 500 characters"})
	}

	if _, err := domain.ParseCategories(i.Categories); err != nil {
		var ve *domain.ValidationError
		if errors.As(err, &ve) {
			errs = append(errs, ve.Errors...)
		}
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// ListInput holds raw view parameters for List and Watch.
type ListInput struct {
	Tab        string
	Sort       string
	Search     string
	Categories []string
}

// DecideInput holds an admin decision.
type DecideInput struct {
	Status string
}

// Validate checks the target status is a known one. Edge legality is checked
// against the stored record.
func (i DecideInput) Validate() error {
	if !domain.Status(strings.TrimSpace(i.Status)).IsValid() {
		return domain.NewValidationError("status", "unknown status "+i.Status)
	}
	return nil
}
