package cli

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/dailydo/internal/client/utils"
)

// readFile is a test seam for os.ReadFile.
var readFile = os.ReadFile

// uploadToPresignedURL is a test seam for utils.UploadToPresignedURL.
var uploadToPresignedURL = utils.UploadToPresignedURL

// Attach uploads a local file as a task's attachment: it asks the server for
// a presigned PUT URL, uploads the file body there, then confirms the upload
// so the server flips the attachment's state to completed.
func (a *App) Attach(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	path, err := getSimpleText(a.reader, "Enter file path", os.Stdout)
	if err != nil {
		return err
	}

	data, err := readFile(path)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	url, err := a.api.RequestAttachmentUpload(ctx, id, filepath.Base(path))
	if err != nil {
		log.Println(err.Error())
		return err
	}

	if err := uploadToPresignedURL(ctx, url, data); err != nil {
		log.Println(err.Error())
		return err
	}

	if err := a.api.MarkAttachmentUploaded(ctx, id); err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Attachment uploaded")
	return nil
}

// Download prints a presigned link to a task's attachment.
func (a *App) Download(ctx context.Context) error {
	id, err := getSimpleText(a.reader, "Enter task id", os.Stdout)
	if err != nil {
		return err
	}

	url, err := a.api.GetAttachmentDownloadURL(ctx, id)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	printlnFn("Download link:", url)
	return nil
}
