package corpus

import (
	"context"
	"os"

	"github.com/go-git/go-git/v5"
)

// CloneFunc fetches the repository at url into dir.
type CloneFunc func(ctx context.Context, url, dir string) error

// GitClone performs a shallow clone of the repository at url into dir. A partially cloned directory is removed so
// the next run retries the clone.
func GitClone(ctx context.Context, url, dir string) error {
	_, err := git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:      url,
		Depth:    1,
		Progress: os.Stderr,
	})
	if err != nil {
		_ = os.RemoveAll(dir)
		return err
	}
	return nil
}
