package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRegisterRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid payload", func(t *testing.T) {
		req := RegisterRequest{Username: "alice", Password: "password1", Email: "alice@example.com"}
		require.Empty(t, req.Validate())
	})

	t.Run("requires username and a minimum password length", func(t *testing.T) {
		req := RegisterRequest{Username: "  ", Password: "short"}
		errs := req.Validate()
		require.Len(t, errs, 2)
		require.Equal(t, "username", errs[0].Field)
		require.Equal(t, "password", errs[1].Field)
	})

	t.Run("rejects an overlong username", func(t *testing.T) {
		req := RegisterRequest{Username: strings.Repeat("a", 51), Password: "password1"}
		errs := req.Validate()
		require.Len(t, errs, 1)
		require.Equal(t, "username", errs[0].Field)
	})

	t.Run("rejects a malformed email", func(t *testing.T) {
		req := RegisterRequest{Username: "alice", Password: "password1", Email: "not-an-email"}
		errs := req.Validate()
		require.Len(t, errs, 1)
		require.Equal(t, "email", errs[0].Field)
	})
}

func TestCreateDocumentRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("accepts a valid payload", func(t *testing.T) {
		req := CreateDocumentRequest{Title: "notes", Content: "hello", Type: DocumentTypeArticle}
		require.Empty(t, req.Validate())
	})

	t.Run("requires title and content", func(t *testing.T) {
		errs := CreateDocumentRequest{}.Validate()
		require.Len(t, errs, 2)
	})

	t.Run("rejects an unknown type", func(t *testing.T) {
		req := CreateDocumentRequest{Title: "notes", Content: "hello", Type: "pdf"}
		errs := req.Validate()
		require.Len(t, errs, 1)
		require.Equal(t, "type", errs[0].Field)
	})

	t.Run("enforces length bounds", func(t *testing.T) {
		req := CreateDocumentRequest{
			Title:       strings.Repeat("t", 101),
			Content:     "hello",
			Language:    strings.Repeat("l", 51),
			Description: strings.Repeat("d", 201),
		}
		require.Len(t, req.Validate(), 3)
	})
}

func TestUpdateDocumentRequestValidate(t *testing.T) {
	t.Parallel()

	t.Run("nil fields are not validated", func(t *testing.T) {
		require.Empty(t, UpdateDocumentRequest{}.Validate())
	})

	t.Run("set fields keep the create rules", func(t *testing.T) {
		empty := ""
		badType := DocumentType("word")
		req := UpdateDocumentRequest{Title: &empty, Type: &badType}
		require.Len(t, req.Validate(), 2)
	})
}
