package moduletree_test

import (
	"testing"

	"github.com/modbound/modbound/internal/config"
	"github.com/modbound/modbound/internal/modpath"
	"github.com/modbound/modbound/internal/moduletree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree(t *testing.T, paths ...string) *moduletree.Tree {
	t.Helper()
	tr := moduletree.New()
	for _, p := range paths {
		require.NoError(t, tr.Insert(p, &config.ModuleConfig{Path: p}, nil))
	}
	return tr
}

func TestInsertAndGet(t *testing.T) {
	tr := buildTree(t, "a", "a.b")
	assert.NotNil(t, tr.Get("a"))
	assert.NotNil(t, tr.Get("a.b"))
	assert.Nil(t, tr.Get("a.c"))
}

func TestInsertDuplicateFails(t *testing.T) {
	tr := moduletree.New()
	require.NoError(t, tr.Insert("a", &config.ModuleConfig{Path: "a"}, nil))
	err := tr.Insert("a", &config.ModuleConfig{Path: "a"}, nil)
	require.Error(t, err)
	var cfgErr *config.ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestFindNearest(t *testing.T) {
	tr := buildTree(t, "a", "a.b")

	nearest := tr.FindNearest("a.b.c.d")
	require.NotNil(t, nearest)
	assert.Equal(t, "a.b", nearest.FullPath)

	nearest = tr.FindNearest("a.other")
	require.NotNil(t, nearest)
	assert.Equal(t, "a", nearest.FullPath)

	// no deeper module and root is not terminal -> nil
	assert.Nil(t, tr.FindNearest("unconfigured.path"))
}

func TestFindNearestWithTerminalRoot(t *testing.T) {
	tr := moduletree.New()
	require.NoError(t, tr.Insert(modpath.Root, &config.ModuleConfig{Path: modpath.Root}, nil))
	require.NoError(t, tr.Insert("a", &config.ModuleConfig{Path: "a"}, nil))

	nearest := tr.FindNearest("totally.unrelated")
	require.NotNil(t, nearest)
	assert.Equal(t, modpath.Root, nearest.FullPath)

	nearest = tr.FindNearest("a.b")
	require.NotNil(t, nearest)
	assert.Equal(t, "a", nearest.FullPath)
}

func TestWalkIsLexicallyOrdered(t *testing.T) {
	tr := buildTree(t, "b", "a", "a.z", "a.a")
	var order []string
	tr.Walk(func(n *moduletree.Node) bool {
		order = append(order, n.FullPath)
		return true
	})
	assert.Equal(t, []string{"a", "a.a", "a.z", "b"}, order)
}

func TestWalkStopsEarly(t *testing.T) {
	tr := buildTree(t, "a", "b", "c")
	var visited []string
	tr.Walk(func(n *moduletree.Node) bool {
		visited = append(visited, n.FullPath)
		return n.FullPath != "b"
	})
	assert.Equal(t, []string{"a", "b"}, visited)
}
