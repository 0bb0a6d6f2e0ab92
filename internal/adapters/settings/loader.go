// Package settings loads the tsmeta command line settings.
package settings

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.trai.ch/tsmeta/internal/core/domain"
	"go.trai.ch/tsmeta/internal/core/ports"
	"go.trai.ch/zerr"
)

// Loader merges the settings file, TSMETA_ environment variables and
// overrides, in increasing order of precedence.
type Loader struct {
	logger ports.Logger
}

// NewLoader creates a new settings loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger}
}

// Load implements ports.SettingsLoader.
func (l *Loader) Load(path string, overrides map[string]any) (domain.Settings, error) {
	k := koanf.New(".")

	explicit := path != ""
	if !explicit {
		path = domain.SettingsFileName
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "path", path)
		}
	} else {
		l.logger.Debug("loaded settings from " + path)
	}

	if err := k.Load(env.ProviderWithValue(domain.EnvPrefix, ".", envValue), nil); err != nil {
		return domain.Settings{}, zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error())
	}

	for key, value := range overrides {
		if err := k.Set(key, value); err != nil {
			return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "key", key)
		}
	}

	var f File
	if err := k.Unmarshal("", &f); err != nil {
		return domain.Settings{}, zerr.With(zerr.Wrap(err, domain.ErrSettingsLoadFailed.Error()), "path", path)
	}
	return f.toDomain(), nil
}

// listKeys hold comma-separated lists when set from the environment.
var listKeys = map[string]bool{
	domain.KeyEntryPoints: true,
}

// envValue maps TSMETA_SRC_DIR to src_dir and splits list values.
func envValue(name, value string) (string, any) {
	key := strings.ToLower(strings.TrimPrefix(name, domain.EnvPrefix))
	if !listKeys[key] {
		return key, value
	}

	var items []string
	for item := range strings.SplitSeq(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return key, items
}
