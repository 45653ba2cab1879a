package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pystub/internal/config"
	"pystub/internal/descriptor"
)

const crateSource = `use pyo3::prelude::*;

#[pyclass(get_all)]
pub struct Point {
    pub x: f64,
    pub y: f64,
}

#[pymethods]
impl Point {
    #[new]
    pub fn new(x: f64, y: f64) -> Self {
        Point { x, y }
    }
}

#[pyclass]
pub enum Broken {
    Plain,
    Payload(u8),
}

#[pyfunction]
pub fn distance(a: &Point, b: &Point) -> f64 {
    0.0
}
`

func newTestApp(t *testing.T) (*App, string) {
	t.Helper()

	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "lib.rs"), []byte(crateSource), 0o644))

	cfg := config.Default()
	cfg.ScanPaths = []string{src}
	cfg.DefaultModule = "testmod"
	cfg.Output.Catalog = filepath.Join(dir, "catalog.json")
	cfg.Output.Fragments = filepath.Join(dir, "fragments.txt")
	cfg.History.Path = filepath.Join(dir, "history.db")

	a, err := NewApp(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return a, src
}

func TestInitialScan(t *testing.T) {
	a, _ := newTestApp(t)

	require.NoError(t, a.InitialScan(context.Background()))

	counts := a.Registry.CountByKind()
	assert.Equal(t, 1, counts[descriptor.DescClass])
	assert.Equal(t, 1, counts[descriptor.DescMethodsBlock])
	assert.Equal(t, 1, counts[descriptor.DescFunction])
	assert.Equal(t, 0, counts[descriptor.DescEnum], "payload enum must not register")

	diags := a.Diagnostics()
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Err.Error(), "ENUM_PAYLOAD_VARIANT")
}

func TestDefaultModuleApplied(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.InitialScan(context.Background()))

	for _, e := range a.Registry.Snapshot() {
		switch d := e.Descriptor.(type) {
		case descriptor.Class:
			assert.Equal(t, "testmod", d.Module)
		case descriptor.Function:
			assert.Equal(t, "testmod", d.Module)
		}
	}
}

func TestGenerateOutputs(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.InitialScan(context.Background()))
	require.NoError(t, a.GenerateOutputs())

	catalog, err := os.ReadFile(a.Config.Output.Catalog)
	require.NoError(t, err)
	assert.Contains(t, string(catalog), `"class:Point"`)

	fragments, err := os.ReadFile(a.Config.Output.Fragments)
	require.NoError(t, err)
	assert.Contains(t, string(fragments), "submit! {")
}

func TestRescanReplacesFileEntries(t *testing.T) {
	a, src := newTestApp(t)
	require.NoError(t, a.InitialScan(context.Background()))
	before := a.Registry.Len()

	// Shrink the file to a single declaration; the stale entries must go.
	path := filepath.Join(src, "lib.rs")
	require.NoError(t, os.WriteFile(path, []byte("#[pyfunction]\npub fn only(n: u32) -> u32 { n }\n"), 0o644))
	require.NoError(t, a.ProcessFile(path))

	assert.Less(t, a.Registry.Len(), before)
	assert.Equal(t, 1, a.Registry.Len())
}

func TestScanDirectoriesExcludes(t *testing.T) {
	a, src := newTestApp(t)

	target := filepath.Join(src, "target")
	require.NoError(t, os.MkdirAll(target, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(target, "gen.rs"), []byte("// generated"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "notes.txt"), []byte("not rust"), 0o644))

	files, err := a.ScanDirectories(a.Config.ScanPaths)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "lib.rs", filepath.Base(files[0]))
}

func TestHealth(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.InitialScan(context.Background()))

	h := a.Health()
	assert.Equal(t, "up", h.Status)
	assert.Equal(t, a.Registry.Len(), h.Catalog)
}

func TestHistorySnapshotSaved(t *testing.T) {
	a, _ := newTestApp(t)
	require.NoError(t, a.InitialScan(context.Background()))

	snapshots, err := a.History.LoadSnapshots(time.Time{})
	require.NoError(t, err)
	require.Len(t, snapshots, 1)
	assert.Equal(t, 1, snapshots[0].ClassCount)
	assert.Equal(t, 1, snapshots[0].DiagnosticCount)
}
