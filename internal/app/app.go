// # internal/app/app.go
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gobwas/glob"

	"pystub/internal/config"
	"pystub/internal/descriptor"
	"pystub/internal/emit"
	"pystub/internal/history"
	"pystub/internal/parser"
	"pystub/internal/registry"
	"pystub/internal/shared/observability"
	"pystub/internal/shared/util"
	"pystub/internal/watcher"
)

// Diagnostic pairs a compile error with the file it came from. The error
// value is the compiler's own structured diagnostic, untranslated.
type Diagnostic struct {
	Path string
	Err  error
}

type App struct {
	Config   *config.Config
	Parser   *parser.Parser
	Registry *registry.Registry
	History  *history.Store

	watcher *watcher.Watcher
	limiter *util.Limiter

	mu          sync.Mutex
	diagnostics []Diagnostic
	fileCount   int
}

func NewApp(cfg *config.Config) (*App, error) {
	a := &App{
		Config:   cfg,
		Parser:   parser.NewParser(parser.NewGrammarLoader()),
		Registry: registry.New(),
		limiter:  util.NewLimiter(cfg.Watch.RescansPerSec, cfg.Watch.RescanBurst),
	}

	if cfg.History.Path != "" {
		store, err := history.Open(cfg.History.Path)
		if err != nil {
			return nil, fmt.Errorf("open history store: %w", err)
		}
		a.History = store
	}

	return a, nil
}

func (a *App) Close() error {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	if a.History != nil {
		return a.History.Close()
	}
	return nil
}

// InitialScan walks every configured path, compiles all tagged declarations,
// and records a history snapshot.
func (a *App) InitialScan(ctx context.Context) error {
	ctx, span := observability.Tracer.Start(ctx, "app.InitialScan")
	defer span.End()

	start := time.Now()

	files, err := a.ScanDirectories(a.Config.ScanPaths)
	if err != nil {
		return err
	}

	a.mu.Lock()
	a.diagnostics = nil
	a.fileCount = len(files)
	a.mu.Unlock()

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := a.ProcessFile(path); err != nil {
			slog.Warn("failed to process file", "path", path, "error", err)
		}
	}

	elapsed := time.Since(start)
	observability.ScanDuration.Observe(elapsed.Seconds())
	observability.CatalogSize.Set(float64(a.Registry.Len()))

	a.saveSnapshot(len(files), elapsed)

	return nil
}

// ScanDirectories collects .rs files under the given roots, honoring the
// exclude globs.
func (a *App) ScanDirectories(roots []string) ([]string, error) {
	excludeDirs := make([]glob.Glob, 0, len(a.Config.Exclude.Dirs))
	for _, pattern := range a.Config.Exclude.Dirs {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude dir pattern %q: %w", pattern, err)
		}
		excludeDirs = append(excludeDirs, g)
	}
	excludeFiles := make([]glob.Glob, 0, len(a.Config.Exclude.Files))
	for _, pattern := range a.Config.Exclude.Files {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("compile exclude file pattern %q: %w", pattern, err)
		}
		excludeFiles = append(excludeFiles, g)
	}

	var files []string
	for _, root := range roots {
		err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			base := filepath.Base(path)
			if info.IsDir() {
				for _, g := range excludeDirs {
					if g.Match(base) {
						return filepath.SkipDir
					}
				}
				return nil
			}
			if !strings.HasSuffix(base, ".rs") {
				return nil
			}
			for _, g := range excludeFiles {
				if g.Match(base) {
					return nil
				}
			}
			files = append(files, path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// ProcessFile parses one source file and dispatches every tagged
// declaration to its compiler. Parse failures are returned; compile
// failures become diagnostics and suppress registration for that
// declaration only.
func (a *App) ProcessFile(path string) error {
	start := time.Now()

	content, err := os.ReadFile(path)
	if err != nil {
		observability.ParsingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}

	file, err := a.Parser.ParseFile(path, content)
	if err != nil {
		observability.ParsingDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		return err
	}
	observability.ParsingDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	a.Registry.DropFile(path)
	a.dispatch(file)

	return nil
}

func (a *App) register(d descriptor.Descriptor, path string) {
	a.Registry.Register(d, path)
	observability.DescriptorsRegistered.WithLabelValues(d.DescriptorKind().String()).Inc()
}

func (a *App) recordDiagnostic(path string, err error) {
	a.mu.Lock()
	a.diagnostics = append(a.diagnostics, Diagnostic{Path: path, Err: err})
	a.mu.Unlock()
	observability.DiagnosticsTotal.WithLabelValues(diagKind(err)).Inc()
}

// Diagnostics returns the compile diagnostics gathered since the last full
// scan began.
func (a *App) Diagnostics() []Diagnostic {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]Diagnostic, len(a.diagnostics))
	copy(out, a.diagnostics)
	return out
}

// GenerateOutputs writes the catalog and, when configured, the registration
// fragments.
func (a *App) GenerateOutputs() error {
	entries := a.Registry.Snapshot()

	if err := emit.WriteCatalog(entries, a.Config.Output.Catalog); err != nil {
		return fmt.Errorf("write catalog: %w", err)
	}
	if a.Config.Output.Fragments != "" {
		if err := emit.WriteFragments(entries, a.Config.Output.Fragments); err != nil {
			return fmt.Errorf("write fragments: %w", err)
		}
	}
	return nil
}

// StartWatcher begins watch mode: changed files are recompiled and outputs
// regenerated, paced by the rescan limiter.
func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Exclude.Dirs,
		a.Config.Exclude.Files,
		a.onFilesChanged,
	)
	if err != nil {
		return err
	}
	a.watcher = w
	return w.Watch(a.Config.ScanPaths)
}

func (a *App) onFilesChanged(paths []string) {
	if !a.limiter.Allow(1) {
		slog.Debug("rescan suppressed by limiter", "files", len(paths))
		return
	}

	start := time.Now()
	for _, path := range paths {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			a.Registry.DropFile(path)
			continue
		}
		if err := a.ProcessFile(path); err != nil {
			slog.Warn("failed to process changed file", "path", path, "error", err)
		}
	}

	observability.CatalogSize.Set(float64(a.Registry.Len()))

	if err := a.GenerateOutputs(); err != nil {
		slog.Error("failed to generate outputs", "error", err)
	}

	a.saveSnapshot(len(paths), time.Since(start))
}

func (a *App) saveSnapshot(fileCount int, elapsed time.Duration) {
	if a.History == nil {
		return
	}

	counts := a.Registry.CountByKind()
	a.mu.Lock()
	diagCount := len(a.diagnostics)
	a.mu.Unlock()

	snapshot := history.Snapshot{
		Timestamp:       time.Now().UTC(),
		FileCount:       fileCount,
		ClassCount:      counts[descriptor.DescClass],
		EnumCount:       counts[descriptor.DescEnum],
		MethodsCount:    counts[descriptor.DescMethodsBlock],
		FunctionCount:   counts[descriptor.DescFunction],
		DiagnosticCount: diagCount,
		Duration:        elapsed,
	}
	if err := a.History.SaveSnapshot(snapshot); err != nil {
		slog.Warn("failed to save history snapshot", "error", err)
	}
}

// Health reports liveness for the observability server.
func (a *App) Health() observability.HealthStatus {
	return observability.HealthStatus{
		Status:  "up",
		Catalog: a.Registry.Len(),
	}
}
