package corpus

import (
	"context"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// Loader loads sources from local copies of their repositories, cloning them first when necessary.
type Loader struct {
	// Directory that repositories are cloned into, one sub-directory per source.
	Directory string
	Processor Processor
	// Cache is optional.
	Cache *Cache
	// Clone defaults to GitClone.
	Clone CloneFunc
}

// Load reads the true and fake documents of a source.
func (l Loader) Load(ctx context.Context, source Source) (Split, error) {
	split, err := l.load(ctx, source)
	if err != nil {
		log.Printf("error reading %s data: %v\n", source.Name(), err)
		return Split{}, errors.Wrapf(err, "reading %s data", source.Name())
	}
	return split, nil
}

func (l Loader) load(ctx context.Context, source Source) (Split, error) {
	if l.Processor == nil {
		return Split{}, errors.New("no text processor configured")
	}

	if l.Cache != nil {
		split, err := l.Cache.Get(source.Name(), l.Processor.Key())
		if err == nil {
			log.Printf("found a cached copy of the %s corpus\n", source.Name())
			return split, nil
		} else if err != ErrCacheMiss {
			return Split{}, err
		}
	}

	dir := filepath.Join(l.Directory, source.Name())
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(l.Directory, 0777); err != nil {
			return Split{}, err
		}
		clone := l.Clone
		if clone == nil {
			clone = GitClone
		}
		log.Printf("cloning %s repository into %s...\n", source.Name(), dir)
		if err := clone(ctx, source.URL(), dir); err != nil {
			return Split{}, errors.Wrapf(err, "cloning %s", source.URL())
		}
		log.Println("repository cloned successfully")
	} else if err != nil {
		return Split{}, err
	}

	trueDocs, fakeDocs, err := source.Load(dir, l.Processor)
	if err != nil {
		return Split{}, err
	}
	if len(trueDocs) == 0 || len(fakeDocs) == 0 {
		return Split{}, errors.New("true or fake class is empty after loading")
	}
	split := Split{Source: source.Name(), True: trueDocs, Fake: fakeDocs}
	log.Printf("%s corpus loaded successfully (%d true, %d fake)\n", source.Name(), len(trueDocs), len(fakeDocs))

	if l.Cache != nil {
		if err := l.Cache.Set(source.Name(), l.Processor.Key(), split); err != nil {
			return Split{}, errors.Wrap(err, "caching corpus")
		}
	}
	return split, nil
}
