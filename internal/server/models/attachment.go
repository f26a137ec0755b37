package models

// Attachment describes server-side metadata for a binary payload associated
// with a todo. The content itself is stored in object storage.
type Attachment struct {
	// TodoID links the attachment to its parent todo.
	TodoID string
	// UserID is the owner of the attachment.
	UserID string

	// StorageKey is the object-storage key (path) of the blob.
	StorageKey string
	// FileName is the client-supplied display name.
	FileName string

	// UploadStatus tracks server-side upload state ("pending", "completed").
	UploadStatus string
}

// AttachmentUploadTask instructs the client to upload a file using a
// presigned URL.
type AttachmentUploadTask struct {
	// TodoID identifies which todo's attachment should be uploaded.
	TodoID string
	// URL is a temporary presigned HTTP URL for the client to PUT the blob.
	URL string
}
