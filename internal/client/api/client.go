// Package api implements the HTTP client for the dailyDo backend. It speaks
// the same JSON shapes the server emits and maps error responses back onto
// the shared sentinel errors so callers can branch with errors.Is.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/dailydo/internal/common"
)

// Todo mirrors the server's todo JSON shape.
type Todo struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	IsCompleted bool   `json:"is_completed"`
	UserID      string `json:"user_id"`
}

// User mirrors the server's user JSON shape.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type errorPayload struct {
	Detail string `json:"detail"`
}

type tokenPayload struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Client is a thin HTTP wrapper around the backend API. After a successful
// Login it attaches the bearer token to every subsequent request. Client is
// not safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// Token returns the bearer token acquired by Login, or "" before login.
func (c *Client) Token() string {
	return c.token
}

// decodeError maps an HTTP error response onto the shared sentinel errors,
// keeping the server's human-readable detail in the message.
func decodeError(resp *http.Response) error {
	var p errorPayload
	body, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(body, &p); err != nil || p.Detail == "" {
		p.Detail = resp.Status
	}

	var sentinel error
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		sentinel = common.ErrorUnauthorized
	case http.StatusNotFound:
		sentinel = common.ErrorNotFound
	case http.StatusConflict:
		sentinel = common.ErrorAlreadyExists
	case http.StatusUnprocessableEntity:
		sentinel = common.ErrorValidation
	default:
		sentinel = common.ErrorInternal
	}
	return fmt.Errorf("%s: %w", p.Detail, sentinel)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) doJSON(ctx context.Context, method, path string, in any, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

func (c *Client) doForm(ctx context.Context, path string, form url.Values, out any) error {
	return c.do(ctx, http.MethodPost, path, strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded", out)
}

// Register creates a new account. The password is only held for the duration
// of the request.
func (c *Client) Register(ctx context.Context, email string, password []byte) error {
	form := url.Values{"username": {email}, "password": {string(password)}}
	return c.doForm(ctx, "/user/register", form, nil)
}

// Login exchanges credentials for a bearer token and remembers it for
// subsequent calls.
func (c *Client) Login(ctx context.Context, email string, password []byte) error {
	form := url.Values{"username": {email}, "password": {string(password)}}

	var tok tokenPayload
	if err := c.doForm(ctx, "/token", form, &tok); err != nil {
		return err
	}
	c.token = tok.AccessToken
	return nil
}

// Logout drops the remembered token.
func (c *Client) Logout() {
	c.token = ""
}

func (c *Client) Me(ctx context.Context) (*User, error) {
	var u User
	if err := c.doJSON(ctx, http.MethodGet, "/user/me", nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) ListTodos(ctx context.Context) ([]Todo, error) {
	var todos []Todo
	if err := c.doJSON(ctx, http.MethodGet, "/todos/", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

type todoPayload struct {
	Content     string `json:"content"`
	IsCompleted bool   `json:"is_completed"`
}

func (c *Client) CreateTodo(ctx context.Context, content string, isCompleted bool) (*Todo, error) {
	var t Todo
	in := todoPayload{Content: content, IsCompleted: isCompleted}
	if err := c.doJSON(ctx, http.MethodPost, "/todos/", in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) GetTodo(ctx context.Context, id string) (*Todo, error) {
	var t Todo
	if err := c.doJSON(ctx, http.MethodGet, "/todos/"+url.PathEscape(id), nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id string, content string, isCompleted bool) (*Todo, error) {
	var t Todo
	in := todoPayload{Content: content, IsCompleted: isCompleted}
	if err := c.doJSON(ctx, http.MethodPut, "/todos/"+url.PathEscape(id), in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/todos/"+url.PathEscape(id), nil, nil)
}

type attachmentUploadPayload struct {
	TodoID    string `json:"todo_id"`
	UploadURL string `json:"upload_url"`
}

// RequestAttachmentUpload asks the server for a presigned PUT URL for the
// given todo's attachment.
func (c *Client) RequestAttachmentUpload(ctx context.Context, id string, fileName string) (string, error) {
	var out attachmentUploadPayload
	in := struct {
		FileName string `json:"file_name"`
	}{FileName: fileName}
	if err := c.doJSON(ctx, http.MethodPost, "/todos/"+url.PathEscape(id)+"/attachment", in, &out); err != nil {
		return "", err
	}
	return out.UploadURL, nil
}

// MarkAttachmentUploaded tells the server the presigned upload finished.
func (c *Client) MarkAttachmentUploaded(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodPost, "/todos/"+url.PathEscape(id)+"/attachment/uploaded", nil, nil)
}

type attachmentDownloadPayload struct {
	DownloadURL string `json:"download_url"`
}

// GetAttachmentDownloadURL returns a presigned GET URL for the todo's
// attachment.
func (c *Client) GetAttachmentDownloadURL(ctx context.Context, id string) (string, error) {
	var out attachmentDownloadPayload
	if err := c.doJSON(ctx, http.MethodGet, "/todos/"+url.PathEscape(id)+"/attachment", nil, &out); err != nil {
		return "", err
	}
	return out.DownloadURL, nil
}
