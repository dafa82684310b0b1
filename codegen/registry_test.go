package codegen

import (
	"fmt"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/jsongen/schema"
)

type fakeGenerator struct {
	language  string
	extension string
	generate  func(set *schema.Set, cfg *Config) *Result
}

func newFakeGenerator(language string) *fakeGenerator {
	return &fakeGenerator{
		language:  language,
		extension: "txt",
		generate: func(set *schema.Set, cfg *Config) *Result {
			return &Result{Success: true, Code: "// " + language, Language: language}
		},
	}
}

func (f *fakeGenerator) Language() string      { return f.language }
func (f *fakeGenerator) FileExtension() string { return f.extension }
func (f *fakeGenerator) Generate(set *schema.Set, cfg *Config) *Result {
	return f.generate(set, cfg)
}

var _ Generator = (*fakeGenerator)(nil)

func emptySet() *schema.Set {
	return &schema.Set{Root: "Root"}
}

func TestRegistry_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		reg := NewRegistry()
		gen := newFakeGenerator("mock")

		err := reg.Register(gen, "mk")
		require.NoError(t, err)

		got, err := reg.Lookup("mock")
		require.NoError(t, err)
		assert.Equal(t, gen, got)
	})

	t.Run("duplicate name rejected", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(newFakeGenerator("mock")))

		err := reg.Register(newFakeGenerator("mock"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "already registered")

		var regErr *RegistryError
		require.ErrorAs(t, err, &regErr)
		assert.True(t, regErr.Duplicate)
	})

	t.Run("duplicate alias rejected", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(newFakeGenerator("first"), "shared"))

		err := reg.Register(newFakeGenerator("second"), "shared")
		require.Error(t, err)
	})

	t.Run("rejected registration leaves table untouched", func(t *testing.T) {
		reg := NewRegistry()
		require.NoError(t, reg.Register(newFakeGenerator("first"), "taken"))

		// Second generator has a fresh name but a conflicting alias,
		// so nothing about it may be stored.
		err := reg.Register(newFakeGenerator("second"), "fresh", "taken")
		require.Error(t, err)

		_, err = reg.Lookup("second")
		assert.Error(t, err)
		_, err = reg.Lookup("fresh")
		assert.Error(t, err)
		assert.Equal(t, []string{"first"}, reg.Languages())
	})
}

func TestRegistry_Lookup(t *testing.T) {
	reg := NewRegistry()
	gen := newFakeGenerator("mock")
	require.NoError(t, reg.Register(gen, "mk", "mockery"))

	t.Run("canonical name", func(t *testing.T) {
		got, err := reg.Lookup("mock")
		require.NoError(t, err)
		assert.Equal(t, gen, got)
	})

	t.Run("alias", func(t *testing.T) {
		got, err := reg.Lookup("mockery")
		require.NoError(t, err)
		assert.Equal(t, gen, got)
	})

	t.Run("case insensitive", func(t *testing.T) {
		got, err := reg.Lookup("MOCK")
		require.NoError(t, err)
		assert.Equal(t, gen, got)

		got, err = reg.Lookup("Mk")
		require.NoError(t, err)
		assert.Equal(t, gen, got)
	})

	t.Run("surrounding whitespace ignored", func(t *testing.T) {
		got, err := reg.Lookup("  mock ")
		require.NoError(t, err)
		assert.Equal(t, gen, got)
	})

	t.Run("unknown language", func(t *testing.T) {
		_, err := reg.Lookup("cobol")
		require.Error(t, err)
		assert.Equal(t, "no generator registered for language: cobol", err.Error())

		var regErr *RegistryError
		require.ErrorAs(t, err, &regErr)
		assert.Equal(t, []string{"mock"}, regErr.Known)
	})
}

func TestRegistry_Languages(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register(newFakeGenerator("zebra")))
	require.NoError(t, reg.Register(newFakeGenerator("alpha"), "a"))
	require.NoError(t, reg.Register(newFakeGenerator("beta")))

	list := reg.Languages()
	assert.Equal(t, []string{"alpha", "beta", "zebra"}, list)
	assert.True(t, sort.StringsAreSorted(list))
}

func TestRegistry_Describe(t *testing.T) {
	reg := NewRegistry()
	gen := newFakeGenerator("mock")
	gen.extension = "mk"
	require.NoError(t, reg.Register(gen, "zz", "aa"))

	info, err := reg.Describe("zz")
	require.NoError(t, err)
	assert.Equal(t, "mock", info.Name)
	assert.Equal(t, "mk", info.Extension)
	assert.Equal(t, []string{"aa", "zz"}, info.Aliases)

	_, err = reg.Describe("unknown")
	assert.Error(t, err)
}

func TestRun_PanicBecomesFailure(t *testing.T) {
	gen := newFakeGenerator("mock")
	gen.generate = func(set *schema.Set, cfg *Config) *Result {
		panic("boom")
	}

	res := Run(gen, emptySet(), nil)
	require.NotNil(t, res)
	assert.False(t, res.Success)
	assert.Empty(t, res.Code)
	require.Error(t, res.Err)

	var genErr *GeneratorError
	require.ErrorAs(t, res.Err, &genErr)
	assert.Equal(t, "mock", genErr.Language)
	assert.Contains(t, res.Err.Error(), "boom")
}

func TestRun_NilResultBecomesFailure(t *testing.T) {
	gen := newFakeGenerator("mock")
	gen.generate = func(set *schema.Set, cfg *Config) *Result { return nil }

	res := Run(gen, emptySet(), nil)
	require.NotNil(t, res)
	assert.False(t, res.Success)
	require.Error(t, res.Err)
}

func TestRun_InvalidCaseRejected(t *testing.T) {
	gen := newFakeGenerator("mock")

	res := Run(gen, emptySet(), &Config{StructCase: "screaming"})
	require.Error(t, res.Err)

	var cfgErr *ConfigError
	require.ErrorAs(t, res.Err, &cfgErr)
	assert.Equal(t, "struct_case", cfgErr.Key)
}

func TestRun_NilSetRejected(t *testing.T) {
	res := Run(newFakeGenerator("mock"), nil, nil)
	require.Error(t, res.Err)
	assert.False(t, res.Success)
}

func TestGenerate_UnknownLanguage(t *testing.T) {
	res := Generate("definitely-not-registered", emptySet(), nil)
	require.NotNil(t, res)
	assert.False(t, res.Success)

	var regErr *RegistryError
	require.ErrorAs(t, res.Err, &regErr)
}

func TestRegistry_Concurrency(t *testing.T) {
	reg := NewRegistry()
	var wg sync.WaitGroup
	const workers = 10

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			_ = reg.Register(newFakeGenerator(fmt.Sprintf("lang%d", id)))
			for j := 0; j < 50; j++ {
				reg.Lookup("lang0")
				reg.Languages()
			}
		}(i)
	}

	wg.Wait()
	assert.Len(t, reg.Languages(), workers)
}
