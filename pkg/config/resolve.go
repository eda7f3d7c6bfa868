package config

import (
	"strings"

	"github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/klaus-strele/shipshape/pkg/logging"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/v2"
)

// Resolve produces the effective configuration for requestedEnv. The
// environment name is case-normalized before lookup. When environments
// are defined the caller must have selected one; Resolve never guesses.
// The merge is shallow: every key present in the override replaces the
// default value wholesale. The result is validated before return.
func Resolve(raw *Raw, requestedEnv string) (*Deployment, error) {
	logger := logging.GetLogger("config.resolve")

	var override map[string]interface{}
	switch {
	case raw.HasEnvironments():
		valid := raw.validNames()
		if requestedEnv == "" {
			return nil, errors.Newf(errors.ErrInvalidEnvironment,
				"no environment selected; valid environments: %s",
				strings.Join(valid, ", ")).
				WithDetail("valid", valid)
		}
		env, ok := raw.environment(requestedEnv)
		if !ok {
			return nil, errors.Newf(errors.ErrInvalidEnvironment,
				"unknown environment %q; valid environments: %s",
				requestedEnv, strings.Join(valid, ", ")).
				WithDetail("requested", requestedEnv).
				WithDetail("valid", valid)
		}
		override = env

	case requestedEnv != "":
		return nil, errors.Newf(errors.ErrInvalidEnvironment,
			"environment %q requested but the configuration defines none",
			requestedEnv).
			WithDetail("requested", requestedEnv)
	}

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(raw.base(), "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal,
			"failed to load configuration defaults")
	}
	if override != nil {
		// Layered load: top-level keys in the override win, arrays
		// included. Keys absent here fall through to the defaults.
		if err := k.Load(confmap.Provider(override, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal,
				"failed to apply environment override")
		}
	}

	var cfg Deployment
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid,
			"configuration fields have unexpected types")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("environment", requestedEnv).
		Str("source", cfg.Source).
		Str("destination", cfg.Destination).
		Int("preDeploy", len(cfg.PreDeploy)).
		Int("postDeploy", len(cfg.PostDeploy)).
		Int("keepList", len(cfg.KeepList)).
		Msg("Effective configuration resolved")

	return &cfg, nil
}
