package profile

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope-mcp/pkg/types"
)

func TestDefaultRegistryTypes(t *testing.T) {
	r := Default()
	assert.Equal(t, []string{"android", "ios", "java", "javascript", "python", "web"}, r.TypeIDs())
}

func TestRegistryGet(t *testing.T) {
	r := Default()

	p, err := r.Get("android")
	require.NoError(t, err)
	assert.Equal(t, "android", p.Type)
	assert.NotEmpty(t, p.ChunkRules)
	assert.NotEmpty(t, p.EntityRules)

	_, err = r.Get("cobol")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestNewRejectsDuplicateType(t *testing.T) {
	_, err := New(
		Definition{Type: "dup"},
		Definition{Type: "dup"},
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")
}

func TestNewRejectsEmptyType(t *testing.T) {
	_, err := New(Definition{})
	require.Error(t, err)
}

func TestDetectType(t *testing.T) {
	r := Default()

	t.Run("android manifest", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "AndroidManifest.xml", "<manifest/>")
		assert.Equal(t, "android", r.DetectType(dir))
	})

	t.Run("nested indicator path", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app/build.gradle.kts", "plugins {}")
		assert.Equal(t, "android", r.DetectType(dir))
	})

	t.Run("python project", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "pyproject.toml", "[project]")
		assert.Equal(t, "python", r.DetectType(dir))
	})

	t.Run("directory indicator", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "src", "main", "java"), 0o755))
		assert.Equal(t, "java", r.DetectType(dir))
	})

	t.Run("registration order breaks ties", func(t *testing.T) {
		// package.json satisfies both javascript and web; javascript is
		// registered first.
		dir := t.TempDir()
		writeFile(t, dir, "package.json", "{}")
		assert.Equal(t, "javascript", r.DetectType(dir))
	})

	t.Run("no indicators", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "README", "nothing to see")
		assert.Equal(t, TypeUnknown, r.DetectType(dir))
	})
}

func TestBuiltinAndroidClassification(t *testing.T) {
	r := Default()
	p, err := r.Get("android")
	require.NoError(t, err)

	classGroup := findChunkGroup(t, p, types.ChunkClass)
	assert.True(t, matchesAny(classGroup.Patterns, "class MainActivity : AppCompatActivity() {"))
	assert.True(t, matchesAny(classGroup.Patterns, "data class User(val id: Int)"))

	fnGroup := findChunkGroup(t, p, types.ChunkFunction)
	assert.True(t, matchesAny(fnGroup.Patterns, "    override fun onCreate(savedInstanceState: Bundle?) {"))
	assert.True(t, matchesAny(fnGroup.Patterns, "    public static void main(String[] args) {"))
	assert.False(t, matchesAny(fnGroup.Patterns, "        val x = compute()"))
}

func findChunkGroup(t *testing.T, p *Profile, kind types.ChunkKind) ChunkRuleGroup {
	t.Helper()
	for _, g := range p.ChunkRules {
		if g.Kind == kind {
			return g
		}
	}
	t.Fatalf("no chunk group for kind %s", kind)
	return ChunkRuleGroup{}
}

func matchesAny(patterns []*regexp.Regexp, line string) bool {
	for _, re := range patterns {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
