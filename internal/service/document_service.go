package service

import (
	"context"
	"strings"
	"time"

	"go-docs-api/internal/model"
	"go-docs-api/pkg/apierror"
)

type DocumentStore interface {
	Create(ctx context.Context, d model.Document) (model.Document, error)
	FindByID(ctx context.Context, id int64) (model.Document, error)
	Update(ctx context.Context, d model.Document) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]model.Document, error)
	ListByType(ctx context.Context, docType model.DocumentType) ([]model.Document, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Document, error)
}

type DocumentService struct {
	store DocumentStore
}

func NewDocumentService(store DocumentStore) *DocumentService {
	return &DocumentService{store: store}
}

func (s *DocumentService) Create(ctx context.Context, req model.CreateDocumentRequest) (model.Document, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return model.Document{}, apierror.BadRequest("invalid document payload", model.JoinFieldErrors(fieldErrs))
	}

	docType := req.Type
	if docType == "" {
		docType = model.DocumentTypeArticle
	}

	now := time.Now().UTC()
	doc := model.Document{
		Title:       strings.TrimSpace(req.Title),
		Content:     req.Content,
		Type:        docType,
		Language:    req.Language,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		UserID:      req.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	return s.store.Create(ctx, doc)
}

func (s *DocumentService) Get(ctx context.Context, id int64) (model.Document, error) {
	return s.store.FindByID(ctx, id)
}

func (s *DocumentService) List(ctx context.Context) ([]model.Document, error) {
	return s.store.List(ctx)
}

func (s *DocumentService) ListByType(ctx context.Context, docType model.DocumentType) ([]model.Document, error) {
	if !docType.Valid() {
		return nil, apierror.BadRequest("invalid document type", string(docType))
	}
	return s.store.ListByType(ctx, docType)
}

func (s *DocumentService) ListByUser(ctx context.Context, userID int64) ([]model.Document, error) {
	return s.store.ListByUser(ctx, userID)
}

func (s *DocumentService) Update(ctx context.Context, id int64, req model.UpdateDocumentRequest) (model.Document, error) {
	if fieldErrs := req.Validate(); len(fieldErrs) > 0 {
		return model.Document{}, apierror.BadRequest("invalid document payload", model.JoinFieldErrors(fieldErrs))
	}

	doc, err := s.store.FindByID(ctx, id)
	if err != nil {
		return model.Document{}, err
	}

	if req.Title != nil {
		doc.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		doc.Content = *req.Content
	}
	if req.Type != nil {
		doc.Type = *req.Type
	}
	if req.Language != nil {
		doc.Language = *req.Language
	}
	if req.Description != nil {
		doc.Description = *req.Description
	}
	if req.IsPublic != nil {
		doc.IsPublic = *req.IsPublic
	}
	if req.UserID != nil {
		doc.UserID = req.UserID
	}
	doc.UpdatedAt = time.Now().UTC()

	if err := s.store.Update(ctx, doc); err != nil {
		return model.Document{}, err
	}
	return doc, nil
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	return s.store.Delete(ctx, id)
}
