package gen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFileNaming(t *testing.T) {
	n, err := ParseFileNaming("PathToUnderscores")
	require.NoError(t, err)
	assert.Equal(t, NamingPathToUnderscores, n)

	_, err = ParseFileNaming("Underscores")
	require.Error(t, err)
	assert.True(t, IsConfigError(err))
}

func TestParseVisibility(t *testing.T) {
	v, err := ParseVisibility("Public")
	require.NoError(t, err)
	assert.Equal(t, VisibilityPublic, v)

	v, err = ParseVisibility("Internal")
	require.NoError(t, err)
	assert.Equal(t, VisibilityFileLocal, v)

	_, err = ParseVisibility("open")
	assert.True(t, IsConfigError(err))
}

func TestParseMode(t *testing.T) {
	m, err := ParseMode("Lite")
	require.NoError(t, err)
	assert.Equal(t, ModeLite, m)

	_, err = ParseMode("lite")
	assert.True(t, IsConfigError(err))
}

func TestParseImportDirective(t *testing.T) {
	d, err := ParseImportDirective("AccessLevel")
	require.NoError(t, err)
	assert.Equal(t, ImportAccessLevel, d)

	_, err = ParseImportDirective("Exported")
	assert.True(t, IsConfigError(err))
}

func TestNewConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := MustNewConfig()
		assert.Equal(t, NamingFullPath, cfg.FileNaming)
		assert.Equal(t, VisibilityFileLocal, cfg.Visibility)
		assert.Equal(t, ModeFull, cfg.Mode)
		assert.Equal(t, ImportPlain, cfg.ImportDirective)
	})

	t.Run("options applied in order", func(t *testing.T) {
		cfg, err := NewConfig(
			WithMode("Lite"),
			WithVisibility("Public"),
			WithFileNaming("DropPath"),
			WithImportDirective("ImplementationOnly"),
			WithModuleMapping("google/api", "GoogleAPI"),
			WithShortenPatterns("models/"),
		)
		require.NoError(t, err)
		assert.Equal(t, ModeLite, cfg.Mode)
		assert.Equal(t, VisibilityPublic, cfg.Visibility)
		assert.Equal(t, NamingDropPath, cfg.FileNaming)
		assert.Equal(t, ImportImplementationOnly, cfg.ImportDirective)
		assert.Len(t, cfg.ModuleMappings, 1)
		assert.True(t, cfg.ShouldShorten("app/models/user.proto"))
	})

	t.Run("invalid option fails", func(t *testing.T) {
		_, err := NewConfig(WithMode("turbo"))
		require.Error(t, err)
		assert.True(t, IsConfigError(err))
	})
}

func TestConfigShouldShorten(t *testing.T) {
	cfg := MustNewConfig(WithShortenPatterns("internal/", "legacy"))
	assert.True(t, cfg.ShouldShorten("svc/internal/a.proto"))
	assert.True(t, cfg.ShouldShorten("legacy.proto"))
	assert.False(t, cfg.ShouldShorten("svc/public/a.proto"))
	assert.False(t, MustNewConfig().ShouldShorten("anything.proto"))
}

func TestConfigModuleFor(t *testing.T) {
	cfg := MustNewConfig(
		WithModuleMapping("google", "GoogleAll"),
		WithModuleMapping("google/api", "GoogleAPI"),
	)

	m, ok := cfg.ModuleFor("google/api/http.proto")
	require.True(t, ok)
	assert.Equal(t, "GoogleAPI", m, "longest prefix wins")

	m, ok = cfg.ModuleFor("google/rpc/status.proto")
	require.True(t, ok)
	assert.Equal(t, "GoogleAll", m)

	_, ok = cfg.ModuleFor("googleish/x.proto")
	assert.False(t, ok, "prefix matches whole path segments only")

	_, ok = cfg.ModuleFor("local/x.proto")
	assert.False(t, ok)
}
