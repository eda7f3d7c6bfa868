package config

import (
	"strings"

	"github.com/klaus-strele/shipshape/pkg/errors"
)

// Deployment is the effective configuration for a single deployment run,
// produced by Resolve and consumed read-only by the pipeline.
type Deployment struct {
	// Source is the directory to deploy, relative to the invocation
	// directory unless absolute.
	Source string `koanf:"source" json:"source" yaml:"source"`

	// Destination is the directory to deploy into, absolute or
	// network-style (UNC).
	Destination string `koanf:"destination" json:"destination" yaml:"destination"`

	// PreDeploy commands run in the invocation directory before any
	// filesystem mutation.
	PreDeploy []string `koanf:"preDeploy" json:"preDeploy,omitempty" yaml:"preDeploy,omitempty"`

	// PostDeploy commands run after the copy, in the destination unless
	// it is network-style.
	PostDeploy []string `koanf:"postDeploy" json:"postDeploy,omitempty" yaml:"postDeploy,omitempty"`

	// KeepList names top-level destination entries that reconciliation
	// must not delete. Matching is case-insensitive.
	KeepList []string `koanf:"keepList" json:"keepList,omitempty" yaml:"keepList,omitempty"`
}

// KeepSet returns the keep list as a set of canonical (uppercased) name
// tokens, the form the reconciler compares directory entries against.
func (d *Deployment) KeepSet() map[string]bool {
	set := make(map[string]bool, len(d.KeepList))
	for _, name := range d.KeepList {
		set[strings.ToUpper(name)] = true
	}
	return set
}

// Validate checks the invariants that must hold before any filesystem
// mutation. It is called by Resolve and again by the pipeline, so
// hand-built configurations get the same protection as loaded ones.
func (d *Deployment) Validate() error {
	if d.Source == "" {
		return errors.New(errors.ErrMissingRequiredField, "source is required").
			WithDetail("field", "source")
	}
	if d.Destination == "" {
		return errors.New(errors.ErrMissingRequiredField, "destination is required").
			WithDetail("field", "destination")
	}

	// Exact string comparison on the configured values, before any
	// resolution, so the check cannot be defeated by path aliasing.
	if d.Source == d.Destination {
		return errors.Newf(errors.ErrSameSourceDest,
			"source and destination are the same path: %q", d.Source).
			WithDetail("path", d.Source)
	}

	for _, name := range d.KeepList {
		if strings.ContainsAny(name, `/\`) {
			return errors.Newf(errors.ErrConfigInvalid,
				"keepList entry %q contains a path separator; entries are basenames only", name).
				WithDetail("entry", name)
		}
	}

	return nil
}
