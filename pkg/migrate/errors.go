package migrate

import (
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ErrNoContent reports that neither index discovery nor API enumeration
// produced anything to migrate. It is the only way an otherwise healthy run
// fails outright.
var ErrNoContent = errors.New("no content found to migrate")

// ❌ CreateError is a failure to create a post on the destination. It fails
// the item it belongs to; the run continues with the next item.
type CreateError struct {
	Ref string // Item slug or URL
	Err error
}

func (e *CreateError) Error() string {
	return fmt.Sprintf("creating %q on destination: %v", e.Ref, e.Err)
}

func (e *CreateError) Unwrap() error {
	return e.Err
}

// ⚠️ MediaError is a failure at one stage of the featured-media carry-over.
// It never fails the item: the post exists on the destination, just without
// its image.
type MediaError struct {
	Stage string // download, upload, or link
	URL   string // Media source URL
	Err   error
}

func (e *MediaError) Error() string {
	return fmt.Sprintf("media %s failed for %s: %v", e.Stage, e.URL, e.Err)
}

func (e *MediaError) Unwrap() error {
	return e.Err
}
