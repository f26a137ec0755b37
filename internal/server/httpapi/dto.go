package httpapi

import "github.com/dmitrijs2005/dailydo/internal/server/models"

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type todoRequest struct {
	Content     string `json:"content"`
	IsCompleted bool   `json:"is_completed"`
}

type todoResponse struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	IsCompleted bool   `json:"is_completed"`
	UserID      string `json:"user_id"`
}

func toTodoResponse(t *models.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Content:     t.Content,
		IsCompleted: t.IsCompleted,
		UserID:      t.UserID,
	}
}

type attachmentRequest struct {
	FileName string `json:"file_name"`
}

type attachmentUploadResponse struct {
	TodoID    string `json:"todo_id"`
	UploadURL string `json:"upload_url"`
}

type attachmentDownloadResponse struct {
	DownloadURL string `json:"download_url"`
}
