package production

import (
	"context"

	"github.com/podplatform/backend/internal/domain/shared"
)

var (
	ErrRenderFailed = shared.NewDomainError("RENDER_FAILED", "Failed to render production file")
	ErrStoreFailed  = shared.NewDomainError("STORAGE_FAILED", "Failed to store production file")
)

// SheetRenderer turns a sheet layout into PDF bytes
type SheetRenderer interface {
	Render(ctx context.Context, sheet Sheet) ([]byte, error)
}

// StoredFile describes a persisted production file
type StoredFile struct {
	Key  string
	URL  string
	Size int64
}

// FileStore persists production files and reports where they can be fetched
type FileStore interface {
	Save(ctx context.Context, name string, data []byte) (*StoredFile, error)
}
