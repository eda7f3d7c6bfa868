package config

import (
	"os"

	"github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/klaus-strele/shipshape/pkg/logging"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultFileName is the configuration file looked for in the invocation
// directory when no explicit path is given.
const DefaultFileName = "shipshape.json"

type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New(errors.ErrInternal, "confmap read not implemented")
}

// Load reads and parses the configuration file at path. A missing file is
// ConfigNotFound; anything unreadable or not a JSON object is ConfigParse.
func Load(path string) (*Raw, error) {
	logger := logging.GetLogger("config.loader")

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrConfigNotFound,
				"configuration file not found: %s", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrConfigNotFound,
			"configuration file not accessible: %s", path).
			WithDetail("path", path)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"failed to read or parse configuration file: %s", path).
			WithDetail("path", path)
	}

	logger.Debug().Str("path", path).Msg("Configuration loaded")
	return &Raw{tree: k.Raw()}, nil
}

// LoadBytes parses configuration from JSON bytes already in memory.
func LoadBytes(data []byte) (*Raw, error) {
	k := koanf.New(".")
	if err := k.Load(&rawBytesProvider{bytes: data}, json.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse,
			"configuration is not a valid JSON object")
	}
	return &Raw{tree: k.Raw()}, nil
}
