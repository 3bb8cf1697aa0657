package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dcoretech/dcore/gen"
	"github.com/dcoretech/dcore/generated/demo"
)

func TestRunGenerateWritesPackageAndManifest(t *testing.T) {
	archivePath := filepath.Join(t.TempDir(), "fixture.dcore")
	require.NoError(t, os.WriteFile(archivePath, demo.BuildFixture(), 0o644))

	outDir := t.TempDir()
	err := runGenerate(archivePath, outDir, gen.Options{PackageName: "demogen", EmitManifest: true})
	require.NoError(t, err)

	src, err := os.ReadFile(filepath.Join(outDir, "demogen.go"))
	require.NoError(t, err)
	require.Contains(t, string(src), "package demogen")

	manifest, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	require.Contains(t, string(manifest), `"package": "demogen"`)
}

func TestRunGenerateRejectsUnreadableArchive(t *testing.T) {
	err := runGenerate(filepath.Join(t.TempDir(), "missing.dcore"), t.TempDir(), gen.Options{PackageName: "x"})
	require.Error(t, err)
}
