package boato

import (
	"github.com/BurntSushi/toml"
	"github.com/hscells/boato/learning"
	"github.com/hscells/boato/preprocess"
	"github.com/hscells/boato/represent"
	"github.com/pkg/errors"
)

// SampleOptions down-sample the fake documents of one source before bases are composed.
type SampleOptions struct {
	Source string `toml:"source"`
	// Fake is the number of fake documents kept. Zero keeps every document.
	Fake int   `toml:"fake"`
	Seed int64 `toml:"seed"`
}

// Config holds every setting of an experiment.
type Config struct {
	RepoDir       string `toml:"repo_dir"`
	ResultsDir    string `toml:"results_dir"`
	CacheDir      string `toml:"cache_dir"`
	NoCache       bool   `toml:"no_cache"`
	HeadwayServer string `toml:"headway_server"`

	// Representations are the keys of the representations compared, in the order they are run.
	Representations []string `toml:"representations"`

	Sample      SampleOptions             `toml:"sample"`
	Split       learning.SplitOptions     `toml:"split"`
	Preprocess  preprocess.Options        `toml:"preprocess"`
	Word2Vec    represent.Word2VecOptions `toml:"word2vec"`
	Classifiers learning.Options          `toml:"classifiers"`
}

// DefaultConfig is the configuration of the published experiment.
func DefaultConfig() Config {
	return Config{
		RepoDir:         "repo",
		ResultsDir:      "results",
		CacheDir:        ".boato_cache",
		Representations: represent.Keys(),
		Sample:          SampleOptions{Source: "BoatosBR", Fake: 1516, Seed: 42},
		Split:           learning.DefaultSplitOptions(),
		Preprocess:      preprocess.DefaultOptions(),
		Word2Vec:        represent.DefaultWord2VecOptions(),
		Classifiers:     learning.DefaultOptions(),
	}
}

// LoadConfig reads a TOML file over the default configuration, so the file only needs the settings it changes.
func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	md, err := toml.DecodeFile(path, &c)
	if err != nil {
		return Config{}, errors.Wrapf(err, "reading configuration %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.Errorf("unknown configuration keys in %s: %v", path, undecoded)
	}
	if _, err := c.representations(); err != nil {
		return Config{}, errors.Wrapf(err, "reading configuration %s", path)
	}
	return c, nil
}

// representations creates the configured representations.
func (c Config) representations() ([]represent.Representation, error) {
	reps := make([]represent.Representation, len(c.Representations))
	for i, key := range c.Representations {
		rep, err := represent.New(key, c.Word2Vec)
		if err != nil {
			return nil, err
		}
		reps[i] = rep
	}
	return reps, nil
}
