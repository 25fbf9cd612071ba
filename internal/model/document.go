package model

import "time"

type DocumentType string

const (
	DocumentTypeCSS     DocumentType = "css"
	DocumentTypeHTML    DocumentType = "html"
	DocumentTypeJS      DocumentType = "js"
	DocumentTypeArticle DocumentType = "article"
)

func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeCSS, DocumentTypeHTML, DocumentTypeJS, DocumentTypeArticle:
		return true
	}
	return false
}

type Document struct {
	ID          int64        `json:"id"`
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Type        DocumentType `json:"type"`
	Language    string       `json:"language,omitempty"`
	Description string       `json:"description,omitempty"`
	IsPublic    bool         `json:"is_public"`
	UserID      *int64       `json:"user_id,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
