// pkg/config/resolve_test.go
// TEST TYPE: Unit Test
// DEPENDENCIES: None (in-memory JSON)
// PURPOSE: Verify environment merge precedence, case-normalized lookup,
// and post-merge validation

package config_test

import (
	"testing"

	"github.com/klaus-strele/shipshape/pkg/config"
	"github.com/klaus-strele/shipshape/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T, data string) *config.Raw {
	t.Helper()
	raw, err := config.LoadBytes([]byte(data))
	require.NoError(t, err)
	return raw
}

func TestResolve_MergePrecedence(t *testing.T) {
	raw := mustLoad(t, `{
		"default": {
			"source": "dist",
			"destination": "/srv/default",
			"preDeploy": ["npm run build"],
			"keepList": ["log", "tmp"]
		},
		"environments": {
			"staging": {
				"destination": "/srv/staging",
				"keepList": ["cache"]
			}
		}
	}`)

	cfg, err := config.Resolve(raw, "staging")
	require.NoError(t, err)

	// Keys present in the override win.
	assert.Equal(t, "/srv/staging", cfg.Destination)

	// The override's array replaces the default's wholesale, no union.
	assert.Equal(t, []string{"cache"}, cfg.KeepList)

	// Keys absent from the override fall through to the default.
	assert.Equal(t, "dist", cfg.Source)
	assert.Equal(t, []string{"npm run build"}, cfg.PreDeploy)
}

func TestResolve_CaseNormalizedLookup(t *testing.T) {
	raw := mustLoad(t, `{
		"default": { "source": "dist" },
		"environments": {
			"Prod": { "destination": "/srv/prod" }
		}
	}`)

	for _, requested := range []string{"prod", "Prod", "PROD", "pRoD"} {
		t.Run(requested, func(t *testing.T) {
			cfg, err := config.Resolve(raw, requested)
			require.NoError(t, err)
			assert.Equal(t, "/srv/prod", cfg.Destination)
		})
	}
}

func TestResolve_UnknownEnvironment(t *testing.T) {
	raw := mustLoad(t, `{
		"default": { "source": "dist", "destination": "/srv/apps" },
		"environments": {
			"staging": {},
			"prod": {}
		}
	}`)

	_, err := config.Resolve(raw, "qa")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidEnvironment))

	// The valid set is reported so the operator can correct the call.
	assert.Contains(t, err.Error(), "staging")
	assert.Contains(t, err.Error(), "prod")
}

func TestResolve_NoEnvironmentSelected(t *testing.T) {
	raw := mustLoad(t, `{
		"default": { "source": "dist", "destination": "/srv/apps" },
		"environments": { "staging": {}, "prod": {} }
	}`)

	_, err := config.Resolve(raw, "")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidEnvironment))
}

func TestResolve_EnvironmentRequestedButNoneDefined(t *testing.T) {
	raw := mustLoad(t, `{ "source": "dist", "destination": "/srv/apps" }`)

	_, err := config.Resolve(raw, "staging")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidEnvironment))
	assert.Contains(t, err.Error(), "none")
}

func TestResolve_EmptyEnvironmentsObjectIsLegacy(t *testing.T) {
	raw := mustLoad(t, `{
		"default": { "source": "dist", "destination": "/srv/apps" },
		"environments": {}
	}`)

	cfg, err := config.Resolve(raw, "")
	require.NoError(t, err)
	assert.Equal(t, "dist", cfg.Source)
}

func TestResolve_DefaultOnly(t *testing.T) {
	raw := mustLoad(t, `{
		"default": { "source": "dist", "destination": "/srv/apps" }
	}`)

	cfg, err := config.Resolve(raw, "")
	require.NoError(t, err)
	assert.Equal(t, "/srv/apps", cfg.Destination)
	assert.Empty(t, cfg.PreDeploy)
	assert.Empty(t, cfg.PostDeploy)
	assert.Empty(t, cfg.KeepList)
}

func TestResolve_MissingRequiredFields(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{
			name: "missing_source",
			json: `{ "destination": "/srv/apps" }`,
		},
		{
			name: "missing_destination",
			json: `{ "source": "dist" }`,
		},
		{
			name: "missing_after_merge",
			json: `{
				"default": { "source": "dist" },
				"environments": { "staging": { "keepList": ["log"] } }
			}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := mustLoad(t, tt.json)

			env := ""
			if raw.HasEnvironments() {
				env = "staging"
			}

			_, err := config.Resolve(raw, env)
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, errors.ErrMissingRequiredField))
		})
	}
}

func TestResolve_SameSourceDestination(t *testing.T) {
	raw := mustLoad(t, `{ "source": "build", "destination": "build" }`)

	_, err := config.Resolve(raw, "")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSameSourceDest))
}

func TestResolve_SameSourceDestinationViaOverride(t *testing.T) {
	// The collision only exists after the merge; validation must see the
	// merged values.
	raw := mustLoad(t, `{
		"default": { "source": "build", "destination": "/srv/apps" },
		"environments": { "local": { "destination": "build" } }
	}`)

	_, err := config.Resolve(raw, "local")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSameSourceDest))
}

func TestResolve_KeepListEntryWithSeparator(t *testing.T) {
	raw := mustLoad(t, `{
		"source": "dist",
		"destination": "/srv/apps",
		"keepList": ["log/archive"]
	}`)

	_, err := config.Resolve(raw, "")

	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigInvalid))
}

func TestDeployment_KeepSet(t *testing.T) {
	cfg := &config.Deployment{KeepList: []string{"log", "Web.Config", "TMP"}}

	assert.Equal(t, map[string]bool{
		"LOG":        true,
		"WEB.CONFIG": true,
		"TMP":        true,
	}, cfg.KeepSet())
}

func TestDeployment_Validate(t *testing.T) {
	cfg := &config.Deployment{Source: "dist", Destination: "/srv/apps"}
	assert.NoError(t, cfg.Validate())

	cfg = &config.Deployment{Source: "dist", Destination: "dist"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSameSourceDest))
}
