package config

import (
	"sort"
	"strings"
)

// Raw is a parsed configuration file before environment resolution. It
// holds the decoded JSON object and answers shape questions: whether the
// file is the structured default/environments form or the legacy flat
// form, and which environments it defines.
type Raw struct {
	tree map[string]interface{}
}

// HasEnvironments reports whether the file defines at least one
// environment. An empty environments object counts as none.
func (r *Raw) HasEnvironments() bool {
	envs, ok := r.tree["environments"].(map[string]interface{})
	return ok && len(envs) > 0
}

// EnvironmentNames returns the defined environment names as written in
// the file, sorted.
func (r *Raw) EnvironmentNames() []string {
	envs, ok := r.tree["environments"].(map[string]interface{})
	if !ok {
		return nil
	}
	names := make([]string, 0, len(envs))
	for name := range envs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// validNames returns the case-normalized environment name set, the form
// lookups and error reports use.
func (r *Raw) validNames() []string {
	names := r.EnvironmentNames()
	for i, name := range names {
		names[i] = strings.ToLower(name)
	}
	sort.Strings(names)
	return names
}

// environment looks up an environment by case-normalized name. When two
// keys normalize to the same name the first in sorted order wins, so the
// result is deterministic.
func (r *Raw) environment(name string) (map[string]interface{}, bool) {
	envs, ok := r.tree["environments"].(map[string]interface{})
	if !ok {
		return nil, false
	}

	want := strings.ToLower(name)
	for _, key := range r.EnvironmentNames() {
		if strings.ToLower(key) != want {
			continue
		}
		override, ok := envs[key].(map[string]interface{})
		if !ok {
			return nil, false
		}
		return override, true
	}
	return nil, false
}

// base returns the map the environment override is layered onto: the
// "default" object when present, an empty map when environments are
// defined without one, and the whole tree for the legacy flat shape.
func (r *Raw) base() map[string]interface{} {
	if def, ok := r.tree["default"].(map[string]interface{}); ok {
		return def
	}
	if r.HasEnvironments() {
		return map[string]interface{}{}
	}
	return r.tree
}
