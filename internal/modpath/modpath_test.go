package modpath_test

import (
	"testing"

	"github.com/modbound/modbound/internal/modpath"
	"github.com/stretchr/testify/assert"
)

func TestToModulePath(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"simple file", "a/b/c.py", "a.b.c"},
		{"package init", "a/b/__init__.py", "a.b"},
		{"root init", "__init__.py", modpath.Root},
		{"empty", "", modpath.Root},
		{"dot", ".", modpath.Root},
		{"top-level file", "foo.py", "foo"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, modpath.ToModulePath(tc.in))
		})
	}
}

func TestStripTrailingSegments(t *testing.T) {
	assert.Equal(t, "a.b", modpath.StripTrailingSegments("a.b.c", 1))
	assert.Equal(t, modpath.Root, modpath.StripTrailingSegments("a.b.c", 3))
	assert.Equal(t, modpath.Root, modpath.StripTrailingSegments("a.b.c", 10))
	assert.Equal(t, "a.b.c", modpath.StripTrailingSegments("a.b.c", 0))
}

func TestSegmentsAndJoin(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, modpath.Segments("a.b"))
	assert.Nil(t, modpath.Segments(modpath.Root))
	assert.Equal(t, "a.b", modpath.Join([]string{"a", "b"}))
	assert.Equal(t, modpath.Root, modpath.Join(nil))
}

func TestIsPackageInitializerAndSourceFile(t *testing.T) {
	assert.True(t, modpath.IsPackageInitializer("a/b/__init__.py"))
	assert.False(t, modpath.IsPackageInitializer("a/b/c.py"))
	assert.True(t, modpath.IsSourceFile("a.py"))
	assert.False(t, modpath.IsSourceFile("a.txt"))
}

func TestIsRoot(t *testing.T) {
	assert.True(t, modpath.IsRoot(modpath.Root))
	assert.True(t, modpath.IsRoot(""))
	assert.True(t, modpath.IsRoot("."))
	assert.False(t, modpath.IsRoot("a"))
}
