package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchedFiles(t *testing.T) {
	files, err := watchedFiles("model.stl")
	require.NoError(t, err)
	assert.Equal(t, []string{"model.stl"}, files)

	dir := t.TempDir()
	main := filepath.Join(dir, "part.scad")
	require.NoError(t, os.WriteFile(main, []byte("include <params.scad>\ncube(size);\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "params.scad"), []byte("size = 2;\n"), 0o644))

	files, err = watchedFiles(main)
	require.NoError(t, err)
	assert.Equal(t, []string{main, filepath.Join(dir, "params.scad")}, files)
}
