package model

import (
	"fmt"
	"strings"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func JoinFieldErrors(errs []FieldError) string {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.String())
	}
	return strings.Join(parts, "; ")
}

const (
	maxUsernameLength    = 50
	minPasswordLength    = 6
	maxTitleLength       = 100
	maxLanguageLength    = 50
	maxDescriptionLength = 200
)

func (r RegisterRequest) Validate() []FieldError {
	var errs []FieldError

	username := strings.TrimSpace(r.Username)
	if username == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	} else if len(username) > maxUsernameLength {
		errs = append(errs, FieldError{Field: "username", Message: fmt.Sprintf("username must be at most %d characters", maxUsernameLength)})
	}

	if len(r.Password) < minPasswordLength {
		errs = append(errs, FieldError{Field: "password", Message: fmt.Sprintf("password must be at least %d characters", minPasswordLength)})
	}

	if email := strings.TrimSpace(r.Email); email != "" && !strings.Contains(email, "@") {
		errs = append(errs, FieldError{Field: "email", Message: "email must be a valid address"})
	}

	return errs
}

func (r LoginRequest) Validate() []FieldError {
	var errs []FieldError

	if strings.TrimSpace(r.Username) == "" {
		errs = append(errs, FieldError{Field: "username", Message: "username is required"})
	}
	if r.Password == "" {
		errs = append(errs, FieldError{Field: "password", Message: "password is required"})
	}

	return errs
}

func (r CreateDocumentRequest) Validate() []FieldError {
	var errs []FieldError

	title := strings.TrimSpace(r.Title)
	if title == "" {
		errs = append(errs, FieldError{Field: "title", Message: "title is required"})
	} else if len(title) > maxTitleLength {
		errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", maxTitleLength)})
	}

	if r.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "content is required"})
	}

	if r.Type != "" && !r.Type.Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "type must be one of: css, html, js, article"})
	}

	if len(r.Language) > maxLanguageLength {
		errs = append(errs, FieldError{Field: "language", Message: fmt.Sprintf("language must be at most %d characters", maxLanguageLength)})
	}
	if len(r.Description) > maxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", maxDescriptionLength)})
	}

	return errs
}

func (r UpdateDocumentRequest) Validate() []FieldError {
	var errs []FieldError

	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			errs = append(errs, FieldError{Field: "title", Message: "title cannot be empty"})
		} else if len(title) > maxTitleLength {
			errs = append(errs, FieldError{Field: "title", Message: fmt.Sprintf("title must be at most %d characters", maxTitleLength)})
		}
	}

	if r.Content != nil && *r.Content == "" {
		errs = append(errs, FieldError{Field: "content", Message: "content cannot be empty"})
	}

	if r.Type != nil && !r.Type.Valid() {
		errs = append(errs, FieldError{Field: "type", Message: "type must be one of: css, html, js, article"})
	}

	if r.Language != nil && len(*r.Language) > maxLanguageLength {
		errs = append(errs, FieldError{Field: "language", Message: fmt.Sprintf("language must be at most %d characters", maxLanguageLength)})
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLength {
		errs = append(errs, FieldError{Field: "description", Message: fmt.Sprintf("description must be at most %d characters", maxDescriptionLength)})
	}

	return errs
}
