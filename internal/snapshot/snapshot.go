// Package snapshot persists built outlines so renderers can run later
// without re-parsing the source file.
package snapshot

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/dgallion1/lessongest/internal/outline"
)

// Snapshot is a stored outline plus the metadata of the upload it came from.
type Snapshot struct {
	ID          string          `json:"id"`
	Filename    string          `json:"filename"`
	Title       string          `json:"title,omitempty"`
	ContentHash string          `json:"content_hash"`
	CreatedAt   time.Time       `json:"created_at"`
	PageCount   int             `json:"page_count"`
	Outline     outline.Outline `json:"outline"`
}

// Store persists snapshots by session ID. Get returns nil, nil when the ID
// is unknown; Delete of an unknown ID is not an error.
type Store interface {
	Put(ctx context.Context, id string, snap *Snapshot) error
	Get(ctx context.Context, id string) (*Snapshot, error)
	Delete(ctx context.Context, id string) error
}

// ErrInvalidID is returned for IDs that cannot be used as a storage key.
var ErrInvalidID = errors.New("invalid snapshot id")

var validID = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

func checkID(id string) error {
	if !validID.MatchString(id) {
		return ErrInvalidID
	}
	return nil
}
