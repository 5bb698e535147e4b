// Package uploads stores the images that come with a signup request.
//
// The middleware runs before the signup handler. It accepts at most one file
// per field, sniffs the content type instead of trusting the client, writes
// accepted files to storage and leaves their references in the gin context.
// If signup then fails, Release hands the stored objects to a Cleaner.
package uploads

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mrlokans/hirehub/internal/config"
	"github.com/mrlokans/hirehub/internal/storage"
)

const (
	contextKeyStored = "uploads_stored"

	MsgUnsupportedFormat = "Only jpg, jpeg, and png formats are allowed"
	MsgInvalidForm       = "Invalid multipart form"

	sniffLen       = 512
	maxMemory      = 8 << 20
	maxBaseNameLen = 64
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrTooManyFiles      = errors.New("too many files for field")
	ErrFileTooLarge      = errors.New("file too large")
)

// Field describes a multipart file field and the folder its files go to.
type Field struct {
	Name   string
	Folder string
}

var (
	FieldProfileImage     = Field{Name: "profileImage", Folder: "profile_images"}
	FieldIdentityDocument = Field{Name: "aadharCard", Folder: "aadhar_cards"}
)

var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

var unsafeNameChars = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// Cleaner disposes of objects that no account references.
type Cleaner interface {
	EnqueueUploadDeletion(ctx context.Context, keys ...string) error
}

// StoredFile is an object written for the current request.
type StoredFile struct {
	Field Field
	Key   string
	URL   string
}

// Pipeline is the signup upload middleware.
type Pipeline struct {
	store   storage.Client
	maxSize int64
	cleaner Cleaner
	now     func() time.Time
}

// NewPipeline creates the upload pipeline. With a nil cleaner orphaned
// objects are deleted inline.
func NewPipeline(store storage.Client, maxSize int64, cleaner Cleaner) *Pipeline {
	if maxSize <= 0 {
		maxSize = config.DefaultMaxUploadSize
	}
	return &Pipeline{
		store:   store,
		maxSize: maxSize,
		cleaner: cleaner,
		now:     time.Now,
	}
}

// Middleware parses multipart requests and stores their files. Other
// content types pass through untouched.
func (p *Pipeline) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
			c.Next()
			return
		}

		// Two files plus form fields
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, 2*p.maxSize+1<<20)
		if err := c.Request.ParseMultipartForm(maxMemory); err != nil {
			var tooBig *http.MaxBytesError
			if errors.As(err, &tooBig) {
				p.reject(c, p.tooLargeMessage())
				return
			}
			p.reject(c, MsgInvalidForm)
			return
		}

		var stored []StoredFile
		for _, field := range []Field{FieldProfileImage, FieldIdentityDocument} {
			file, err := p.store1(c.Request.Context(), c.Request.MultipartForm, field)
			if err != nil {
				p.discard(c.Request.Context(), stored)
				p.rejectErr(c, field, err)
				return
			}
			if file != nil {
				stored = append(stored, *file)
			}
		}

		c.Set(contextKeyStored, stored)
		c.Next()
	}
}

func (p *Pipeline) store1(ctx context.Context, form *multipart.Form, field Field) (*StoredFile, error) {
	headers := form.File[field.Name]
	switch {
	case len(headers) == 0:
		return nil, nil
	case len(headers) > 1:
		return nil, ErrTooManyFiles
	}

	header := headers[0]
	if header.Size > p.maxSize {
		return nil, ErrFileTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	contentType := http.DetectContentType(head[:n])
	ext, ok := allowedTypes[contentType]
	if !ok {
		return nil, ErrUnsupportedFormat
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to rewind upload: %w", err)
	}

	key := p.objectKey(field, header.Filename, ext)
	if err := p.store.Upload(ctx, key, f, header.Size, contentType); err != nil {
		return nil, fmt.Errorf("failed to store %s: %w", field.Name, err)
	}

	return &StoredFile{Field: field, Key: key, URL: p.store.URL(key)}, nil
}

// objectKey builds <folder>/<basename>-<unix millis>-<8 hex chars><ext>.
// The client's extension is kept when it agrees with the sniffed type.
func (p *Pipeline) objectKey(field Field, filename, sniffedExt string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	origExt := strings.ToLower(filepath.Ext(base))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	// Keep only the part before the first dot
	if i := strings.Index(base, "."); i >= 0 {
		base = base[:i]
	}
	base = strings.Trim(unsafeNameChars.ReplaceAllString(base, "_"), "_")
	if base == "" {
		base = "file"
	}
	if len(base) > maxBaseNameLen {
		base = base[:maxBaseNameLen]
	}

	ext := sniffedExt
	if origExt == ".jpeg" && sniffedExt == ".jpg" {
		ext = origExt
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("%s/%s-%d-%s%s", field.Folder, base, p.now().UnixMilli(), suffix, ext)
}

// Stored returns the objects written for this request.
func Stored(c *gin.Context) []StoredFile {
	if v, ok := c.Get(contextKeyStored); ok {
		if files, ok := v.([]StoredFile); ok {
			return files
		}
	}
	return nil
}

// Refs returns the references of the stored profile image and identity document.
func (p *Pipeline) Refs(c *gin.Context) (profileImage, identityDocument *string) {
	for _, f := range Stored(c) {
		url := f.URL
		switch f.Field {
		case FieldProfileImage:
			profileImage = &url
		case FieldIdentityDocument:
			identityDocument = &url
		}
	}
	return profileImage, identityDocument
}

// Release disposes of the objects stored for this request. Called when the
// account they belong to was never created.
func (p *Pipeline) Release(c *gin.Context) {
	stored := Stored(c)
	if len(stored) == 0 {
		return
	}
	c.Set(contextKeyStored, []StoredFile(nil))
	p.discard(context.WithoutCancel(c.Request.Context()), stored)
}

func (p *Pipeline) discard(ctx context.Context, stored []StoredFile) {
	if len(stored) == 0 {
		return
	}
	keys := make([]string, 0, len(stored))
	for _, f := range stored {
		keys = append(keys, f.Key)
	}

	if p.cleaner != nil {
		err := p.cleaner.EnqueueUploadDeletion(ctx, keys...)
		if err == nil {
			return
		}
		log.Printf("Failed to enqueue upload cleanup, deleting inline: %v", err)
	}

	for _, key := range keys {
		if err := p.store.Delete(ctx, key); err != nil {
			log.Printf("Failed to delete orphaned upload %s: %v", key, err)
		}
	}
}

func (p *Pipeline) rejectErr(c *gin.Context, field Field, err error) {
	switch {
	case errors.Is(err, ErrUnsupportedFormat):
		p.reject(c, MsgUnsupportedFormat)
	case errors.Is(err, ErrFileTooLarge):
		p.reject(c, p.tooLargeMessage())
	case errors.Is(err, ErrTooManyFiles):
		p.reject(c, fmt.Sprintf("Only one file is allowed for %s", field.Name))
	default:
		log.Printf("Upload error (%s): %v", field.Name, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Error occurred while uploading files",
		})
	}
}

func (p *Pipeline) reject(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"message": message,
	})
}

func (p *Pipeline) tooLargeMessage() string {
	return fmt.Sprintf("File size must not exceed %d MB", p.maxSize>>20)
}
