package model

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateUserRequest struct {
	Email    *string `json:"email"`
	Nickname *string `json:"nickname"`
}

type CreateDocumentRequest struct {
	Title       string       `json:"title"`
	Content     string       `json:"content"`
	Type        DocumentType `json:"type"`
	Language    string       `json:"language"`
	Description string       `json:"description"`
	IsPublic    bool         `json:"is_public"`
	UserID      *int64       `json:"user_id"`
}

type UpdateDocumentRequest struct {
	Title       *string       `json:"title"`
	Content     *string       `json:"content"`
	Type        *DocumentType `json:"type"`
	Language    *string       `json:"language"`
	Description *string       `json:"description"`
	IsPublic    *bool         `json:"is_public"`
	UserID      *int64        `json:"user_id"`
}
