// Package upload validates and stages multipart image uploads before
// persistence. Acceptance is based on the declared MIME type and the
// filename extension only; file content is not inspected.
package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"profilehub/internal/storage"
)

var (
	// ErrUnsupportedFileType is returned when a part's MIME type or
	// extension falls outside the accepted image set.
	ErrUnsupportedFileType = errors.New("unsupported file type")
	// ErrTooManyFiles is returned when a field carries more than one file.
	ErrTooManyFiles = errors.New("too many files")
)

// Form field names accepted by profile creation.
const (
	FieldProfileImage = "profileImage"
	FieldCoverImage   = "coverImage"
)

var allowedMIME = map[string]struct{}{
	"image/jpeg": {},
	"image/jpg":  {},
	"image/png":  {},
	"image/gif":  {},
}

var allowedExt = map[string]struct{}{
	".jpeg": {},
	".jpg":  {},
	".png":  {},
	".gif":  {},
}

// Staged is an accepted upload: either raw bytes plus MIME (inline
// staging) or the unique name the bytes were durably written under.
type Staged struct {
	Data []byte
	MIME string
	Name string
}

// Intake validates uploaded parts and stages them. With a nil store the
// bytes are staged in memory; otherwise each accepted file is written to
// the store under a timestamp-based unique name.
type Intake struct {
	store storage.Store
}

func NewIntake(store storage.Store) *Intake {
	return &Intake{store: store}
}

// Images stages the optional profile and cover image parts of a multipart
// form. Every part is validated before any byte is written, so a rejected
// file leaves nothing behind.
func (in *Intake) Images(ctx context.Context, form *multipart.Form) (profile, cover *Staged, err error) {
	profileHeader, err := fieldHeader(form, FieldProfileImage)
	if err != nil {
		return nil, nil, err
	}
	coverHeader, err := fieldHeader(form, FieldCoverImage)
	if err != nil {
		return nil, nil, err
	}

	if profileHeader != nil {
		if err := validate(profileHeader); err != nil {
			return nil, nil, err
		}
	}
	if coverHeader != nil {
		if err := validate(coverHeader); err != nil {
			return nil, nil, err
		}
	}

	if profileHeader != nil {
		if profile, err = in.stage(ctx, profileHeader); err != nil {
			return nil, nil, err
		}
	}
	if coverHeader != nil {
		if cover, err = in.stage(ctx, coverHeader); err != nil {
			return nil, nil, err
		}
	}
	return profile, cover, nil
}

// Single validates and stages one file part, as used by the standalone
// upload endpoint.
func (in *Intake) Single(ctx context.Context, header *multipart.FileHeader) (*Staged, error) {
	if err := validate(header); err != nil {
		return nil, err
	}
	return in.stage(ctx, header)
}

func fieldHeader(form *multipart.Form, field string) (*multipart.FileHeader, error) {
	if form == nil {
		return nil, nil
	}
	headers := form.File[field]
	switch len(headers) {
	case 0:
		return nil, nil
	case 1:
		return headers[0], nil
	default:
		return nil, fmt.Errorf("%w: field %s", ErrTooManyFiles, field)
	}
}

func validate(header *multipart.FileHeader) error {
	mime := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	ext := strings.ToLower(filepath.Ext(header.Filename))

	if _, ok := allowedMIME[mime]; !ok {
		return fmt.Errorf("%w: mime %q", ErrUnsupportedFileType, mime)
	}
	if _, ok := allowedExt[ext]; !ok {
		return fmt.Errorf("%w: extension %q", ErrUnsupportedFileType, ext)
	}
	return nil
}

func (in *Intake) stage(ctx context.Context, header *multipart.FileHeader) (*Staged, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload %s: %w", header.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read upload %s: %w", header.Filename, err)
	}

	mime := strings.ToLower(strings.TrimSpace(header.Header.Get("Content-Type")))
	if in.store == nil {
		return &Staged{Data: data, MIME: mime}, nil
	}

	name := uniqueName(header.Filename)
	if err := in.store.Put(ctx, name, mime, data); err != nil {
		return nil, err
	}
	return &Staged{Name: name, MIME: mime}, nil
}

// uniqueName derives a collision-free blob name from the upload time,
// keeping the original extension.
func uniqueName(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
