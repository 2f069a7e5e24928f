package gen

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// Artifact is the generated source of one concern of one type.
type Artifact struct {
	// Type is the import-path-qualified Go name of the type.
	Type    string
	Concern string
	// Dir is the directory of the declaration file of the type. Empty for
	// declarations without a file.
	Dir      string
	Filename string
	Source   []byte
	// Diagnostics of the emission. An artifact with error diagnostics has
	// no source.
	Diagnostics Diagnostics
}

// Path returns the path of the artifact next to its declaration file.
func (a *Artifact) Path() string {
	return filepath.Join(a.Dir, a.Filename)
}

// Result is the outcome of a generation run.
type Result struct {
	// Artifacts in type then concern order.
	Artifacts []*Artifact
	// Diagnostics of all phases, sorted.
	Diagnostics Diagnostics
}

// Lookup returns the artifact of a concern of the type with the given ID.
func (r *Result) Lookup(id, concern string) (*Artifact, bool) {
	for _, a := range r.Artifacts {
		if a.Type == id && a.Concern == concern {
			return a, true
		}
	}
	return nil, false
}

// WriterMetrics tracks writing performance.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// Write formats the artifacts and writes them to dir. An empty dir writes
// every artifact next to its declaration file. Artifacts that fail
// to format are written unformatted with an ".error" suffix for debugging.
func (r *Result) Write(ctx context.Context, dir string, workers int) (*WriterMetrics, error) {
	var (
		mu      sync.Mutex
		errs    *multierror.Error
		metrics = &WriterMetrics{}
	)
	eg, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		eg.SetLimit(workers)
	}
	for _, a := range r.Artifacts {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			path := a.Path()
			if dir != "" {
				path = filepath.Join(dir, a.Filename)
			}
			n, err := writeArtifact(path, a.Source)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierror.Append(errs, err)
				return nil
			}
			metrics.FilesWritten++
			metrics.TotalBytes += int64(n)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return metrics, err
	}
	return metrics, errs.ErrorOrNil()
}

func writeArtifact(path string, src []byte) (int, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, errors.Wrapf(err, "create directory for %s", path)
	}
	// Format using goimports (removes unused imports and adds missing ones)
	formatted, err := imports.Process(path, src, nil)
	if err != nil {
		// Write unformatted file for debugging (errors intentionally ignored as we're already in error state)
		debugPath := path + ".error"
		_ = os.WriteFile(debugPath, src, 0o644)
		return 0, errors.Wrapf(err, "format %s (unformatted written to %s)", path, debugPath)
	}
	if err := os.WriteFile(path, formatted, 0o644); err != nil {
		return 0, errors.Wrapf(err, "write %s", path)
	}
	return len(formatted), nil
}
