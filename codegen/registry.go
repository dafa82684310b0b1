package codegen

import (
	"sort"
	"strings"
	"sync"
)

// Registry maps language names to generators. Lookups are
// case-insensitive and alias-aware.
type Registry struct {
	mu         sync.RWMutex
	generators map[string]Generator // canonical name → generator
	aliases    map[string]string    // alias → canonical name
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		generators: make(map[string]Generator),
		aliases:    make(map[string]string),
	}
}

// Register adds a generator under its Language name plus any aliases.
// Every name is checked before anything is stored, so a rejected
// registration leaves the table untouched.
func (r *Registry) Register(gen Generator, aliases ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strings.ToLower(gen.Language())
	if r.taken(name) {
		return &RegistryError{Language: name, Duplicate: true}
	}
	lowered := make([]string, len(aliases))
	for i, alias := range aliases {
		lowered[i] = strings.ToLower(alias)
		if r.taken(lowered[i]) {
			return &RegistryError{Language: lowered[i], Duplicate: true}
		}
	}

	r.generators[name] = gen
	for _, alias := range lowered {
		r.aliases[alias] = name
	}
	return nil
}

func (r *Registry) taken(name string) bool {
	if _, exists := r.generators[name]; exists {
		return true
	}
	_, exists := r.aliases[name]
	return exists
}

// Lookup resolves a language name or alias to its generator.
func (r *Registry) Lookup(language string) (Generator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(language))
	if canonical, ok := r.aliases[key]; ok {
		key = canonical
	}
	if gen, ok := r.generators[key]; ok {
		return gen, nil
	}
	return nil, &RegistryError{Language: language, Known: r.namesLocked()}
}

// Languages returns the canonical registered names in sorted order.
func (r *Registry) Languages() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.generators))
	for name := range r.generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LanguageInfo describes a registered generator for listings.
type LanguageInfo struct {
	Name      string   `json:"name"`
	Aliases   []string `json:"aliases,omitempty"`
	Extension string   `json:"extension"`
}

// Describe resolves a language name or alias and reports its canonical
// name, aliases and output file extension.
func (r *Registry) Describe(language string) (LanguageInfo, error) {
	gen, err := r.Lookup(language)
	if err != nil {
		return LanguageInfo{}, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	name := strings.ToLower(gen.Language())
	info := LanguageInfo{Name: name, Extension: gen.FileExtension()}
	for alias, canonical := range r.aliases {
		if canonical == name {
			info.Aliases = append(info.Aliases, alias)
		}
	}
	sort.Strings(info.Aliases)
	return info, nil
}

// Default registry shared by the builtin backends. Each backend
// registers itself from init, so importing a backend package is what
// makes its language available.
var defaultRegistry = NewRegistry()

// Default returns the process-wide registry.
func Default() *Registry {
	return defaultRegistry
}

// MustRegister registers into the default registry and panics on
// conflict. Intended for backend init functions, where a duplicate
// name is a programming error.
func MustRegister(gen Generator, aliases ...string) {
	if err := defaultRegistry.Register(gen, aliases...); err != nil {
		panic(err)
	}
}

// Lookup resolves a language in the default registry.
func Lookup(language string) (Generator, error) {
	return defaultRegistry.Lookup(language)
}

// Languages lists the default registry's canonical names, sorted.
func Languages() []string {
	return defaultRegistry.Languages()
}

// Describe reports on a language in the default registry.
func Describe(language string) (LanguageInfo, error) {
	return defaultRegistry.Describe(language)
}
