package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/dailydo/internal/common"
	"github.com/dmitrijs2005/dailydo/internal/dbx"
	sc "github.com/dmitrijs2005/dailydo/internal/server/config"
	"github.com/dmitrijs2005/dailydo/internal/server/models"
	"github.com/dmitrijs2005/dailydo/internal/server/repositories/repomanager"
	"github.com/google/uuid"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Content length bounds, inclusive, counted in runes.
const (
	ContentMinLen = 3
	ContentMaxLen = 54
)

// presignExpiry bounds how long a minted upload/download URL stays usable.
const presignExpiry = 15 * time.Minute

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	newS3PresignClient = func(c *s3.Client) *s3.PresignClient {
		return s3.NewPresignClient(c)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// TodoService implements owner-scoped CRUD over todos plus attachment
// handling via presigned object-storage URLs. Every operation takes the
// caller's user ID explicitly; there is no ambient identity.
type TodoService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	config      *sc.Config
}

func NewTodoService(db *sql.DB, repomanager repomanager.RepositoryManager, config *sc.Config) *TodoService {
	return &TodoService{
		db:          db,
		repomanager: repomanager,
		config:      config,
	}
}

func validateContent(content string) error {
	n := utf8.RuneCountInString(content)
	if n < ContentMinLen || n > ContentMaxLen {
		return common.ErrorValidation
	}
	return nil
}

// Create stores a new todo owned by userID. Content outside the 3..54 rune
// bounds yields common.ErrorValidation.
func (s *TodoService) Create(ctx context.Context, userID string, content string, isCompleted bool) (*models.Todo, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	repo := s.repomanager.Todos(s.db)
	todo := &models.Todo{UserID: userID, Content: content, IsCompleted: isCompleted}
	t, err := repo.Create(ctx, todo)
	if err != nil {
		return nil, fmt.Errorf("error creating todo: %w", err)
	}
	return t, nil
}

// List returns all todos owned by userID. An empty result is not an error.
func (s *TodoService) List(ctx context.Context, userID string) ([]*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	result, err := repo.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing todos: %w", err)
	}
	return result, nil
}

// Get fetches a single todo. A todo that does not exist and a todo owned by
// someone else both surface common.ErrorNotFound.
func (s *TodoService) Get(ctx context.Context, id string, userID string) (*models.Todo, error) {
	repo := s.repomanager.Todos(s.db)
	todo, err := repo.GetByIDAndOwner(ctx, id, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error fetching todo: %w", err)
	}
	return todo, nil
}

// Update replaces content and completion state of an owned todo.
func (s *TodoService) Update(ctx context.Context, id string, userID string, content string, isCompleted bool) (*models.Todo, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}

	repo := s.repomanager.Todos(s.db)
	todo := &models.Todo{ID: id, UserID: userID, Content: content, IsCompleted: isCompleted}
	t, err := repo.Update(ctx, todo)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error updating todo: %w", err)
	}
	return t, nil
}

// Delete removes an owned todo.
func (s *TodoService) Delete(ctx context.Context, id string, userID string) error {
	repo := s.repomanager.Todos(s.db)
	if err := repo.Delete(ctx, id, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error deleting todo: %w", err)
	}
	return nil
}

// GetRandomStorageKey builds a date-prefixed unique object key.
func GetRandomStorageKey() string {
	d := time.Now()
	return fmt.Sprintf("users/%d/%d/%d/%v", d.Year(), d.Month(), d.Day(), uuid.New())
}

func (s *TodoService) getPresignClient() (*s3.PresignClient, error) {
	cfg, err := loadDefaultAWSConfig(context.Background(),
		config.WithRegion(s.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
	})

	return newS3PresignClient(client), nil
}

func (s *TodoService) getPresignedPutUrl(ctx context.Context) (string, string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", "", err
	}

	bucket := s.config.S3Bucket
	key := GetRandomStorageKey()

	req, err := presignPutObject(presignClient, ctx, &s3.PutObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))

	if err != nil {
		return "", "", err
	}

	return key, req.URL, nil
}

func (s *TodoService) getPresignedGetUrl(ctx context.Context, key string) (string, error) {

	presignClient, err := s.getPresignClient()
	if err != nil {
		return "", err
	}

	bucket := s.config.S3Bucket

	req, err := presignGetObject(presignClient, ctx, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	}, s3.WithPresignExpires(presignExpiry))
	if err != nil {
		return "", err
	}

	return req.URL, nil
}

// RequestAttachmentUpload verifies the todo belongs to userID, records a
// pending attachment, and returns a presigned PUT URL for the client to
// upload the blob. The metadata write and the ownership check sit inside one
// transaction so a foreign todo can never gain an attachment row.
func (s *TodoService) RequestAttachmentUpload(ctx context.Context, todoID string, userID string, fileName string) (*models.AttachmentUploadTask, error) {

	storageKey, url, err := s.getPresignedPutUrl(ctx)
	if err != nil {
		return nil, fmt.Errorf("error presigning upload: %w", err)
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		todoRepo := s.repomanager.Todos(tx)
		if _, err := todoRepo.GetByIDAndOwner(ctx, todoID, userID); err != nil {
			return err
		}

		attachmentRepo := s.repomanager.Attachments(tx)
		return attachmentRepo.CreateOrUpdate(ctx, &models.Attachment{
			TodoID:       todoID,
			UserID:       userID,
			StorageKey:   storageKey,
			FileName:     fileName,
			UploadStatus: "pending",
		})
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error recording attachment: %w", err)
	}

	return &models.AttachmentUploadTask{TodoID: todoID, URL: url}, nil
}

// MarkAttachmentUploaded flips the attachment's state to completed once the
// client reports a finished upload.
func (s *TodoService) MarkAttachmentUploaded(ctx context.Context, todoID string, userID string) error {
	repo := s.repomanager.Attachments(s.db)
	if err := repo.MarkUploaded(ctx, todoID, userID); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("error updating attachment: %w", err)
	}
	return nil
}

// GetAttachmentDownloadURL returns a presigned GET URL for an owned todo's
// attachment.
func (s *TodoService) GetAttachmentDownloadURL(ctx context.Context, todoID string, userID string) (string, error) {
	repo := s.repomanager.Attachments(s.db)
	a, err := repo.GetByTodoIDAndOwner(ctx, todoID, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorNotFound
		}
		return "", fmt.Errorf("error getting attachment: %w", err)
	}

	url, err := s.getPresignedGetUrl(ctx, a.StorageKey)
	if err != nil {
		return "", fmt.Errorf("error presigning download: %w", err)
	}

	return url, nil
}
