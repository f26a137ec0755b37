package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/dailydo/internal/common"
	"github.com/go-chi/chi/v5"
)

func (s *Server) Root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to dailyDo todo app"})
}

func (s *Server) UserRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, messageResponse{Message: "Welcome to dailyDo todo app user page. Please register or login to continue"})
}

// RegisterUser creates an account from a username(email)+password form.
// Registering an email that is already on file is a 409; the plaintext
// password never leaves this handler unhashed.
func (s *Server) RegisterUser(w http.ResponseWriter, r *http.Request) {

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Detail: "username and password are required"})
		return
	}

	user, err := s.users.Register(r.Context(), email, []byte(password))
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeJSON(w, http.StatusConflict, errorResponse{
				Detail: fmt.Sprintf("Whoops! %s is already taken. Did you mean to sign in?", email),
			})
			return
		}
		s.logger.Error(r.Context(), "registration failed", "error", err.Error())
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "user registered", "email", user.Email)
	writeJSON(w, http.StatusCreated, messageResponse{Message: fmt.Sprintf("%s successfully registered", user.Email)})
}

// Login verifies the submitted credentials and emits a bearer token. Wrong
// email and wrong password produce the same generic 401.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	token, err := s.users.Login(r.Context(), email, []byte(password))
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeJSON(w, http.StatusUnauthorized, errorResponse{Detail: "Invalid username or password"})
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{AccessToken: token.AccessToken, TokenType: token.TokenType})
}

// Me returns the authenticated user's public fields. The password hash is
// never serialized.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}
	writeJSON(w, http.StatusOK, userResponse{ID: user.ID, Email: user.Email})
}

func (s *Server) CreateTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	todo, err := s.todos.Create(r.Context(), user.ID, req.Content, req.IsCompleted)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTodoResponse(todo))
}

// ListTodos returns the caller's todos only. Zero rows is reported as
// 404 "No Task found" at this boundary; below it an empty list is a normal
// result.
func (s *Server) ListTodos(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	todos, err := s.todos.List(r.Context(), user.ID)
	if err != nil {
		s.logger.Error(r.Context(), "listing todos failed", "error", err.Error())
		writeError(w, err)
		return
	}

	if len(todos) == 0 {
		writeJSON(w, http.StatusNotFound, errorResponse{Detail: "No Task found"})
		return
	}

	result := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		result = append(result, toTodoResponse(t))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) GetTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	todo, err := s.todos.Get(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (s *Server) UpdateTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req todoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	todo, err := s.todos.Update(r.Context(), chi.URLParam(r, "id"), user.ID, req.Content, req.IsCompleted)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toTodoResponse(todo))
}

func (s *Server) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := s.todos.Delete(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Task successfully deleted"})
}

// RequestAttachmentUpload mints a presigned PUT URL for a todo's attachment.
func (s *Server) RequestAttachmentUpload(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req attachmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Detail: "invalid request body"})
		return
	}

	task, err := s.todos.RequestAttachmentUpload(r.Context(), chi.URLParam(r, "id"), user.ID, req.FileName)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(r.Context(), "attachment upload request failed", "error", err.Error())
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attachmentUploadResponse{TodoID: task.TodoID, UploadURL: task.URL})
}

func (s *Server) MarkAttachmentUploaded(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	if err := s.todos.MarkAttachmentUploaded(r.Context(), chi.URLParam(r, "id"), user.ID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Attachment marked as uploaded"})
}

func (s *Server) GetAttachmentDownloadURL(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	url, err := s.todos.GetAttachmentDownloadURL(r.Context(), chi.URLParam(r, "id"), user.ID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			s.logger.Error(r.Context(), "attachment download request failed", "error", err.Error())
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, attachmentDownloadResponse{DownloadURL: url})
}
