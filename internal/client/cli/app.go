// Package cli implements the interactive dailyDo terminal client: a small
// REPL over the backend HTTP API.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/dmitrijs2005/dailydo/internal/client/api"
	"github.com/dmitrijs2005/dailydo/internal/client/config"
)

// backend is the slice of the API client the CLI uses. Tests substitute a
// stub.
type backend interface {
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) error
	Logout()
	Token() string
	Me(ctx context.Context) (*api.User, error)
	ListTodos(ctx context.Context) ([]api.Todo, error)
	CreateTodo(ctx context.Context, content string, isCompleted bool) (*api.Todo, error)
	GetTodo(ctx context.Context, id string) (*api.Todo, error)
	UpdateTodo(ctx context.Context, id string, content string, isCompleted bool) (*api.Todo, error)
	DeleteTodo(ctx context.Context, id string) error
	RequestAttachmentUpload(ctx context.Context, id string, fileName string) (string, error)
	MarkAttachmentUploaded(ctx context.Context, id string) error
	GetAttachmentDownloadURL(ctx context.Context, id string) (string, error)
}

type App struct {
	config   *config.Config
	api      backend
	userName string
	reader   *bufio.Reader
}

func NewApp(c *config.Config) (*App, error) {
	return &App{
		config: c,
		api:    api.NewClient(c.ServerEndpointAddr),
		reader: bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}
