// Package compiler runs the vogen pipeline: it loads declaration files,
// builds and validates their models, emits the artifacts of every concern
// and writes them out.
//
// A Session keeps its cache between runs, so a hosting toolchain that
// re-runs on every edit only rebuilds the types whose structure changed and
// the types depending on them:
//
//	s, err := compiler.NewSession(gen.WithLogger(log))
//	res, err := s.Run(ctx, decls...)
//
// Generate is the one-shot form used by the command line:
//
//	res, err := compiler.Generate(ctx, []string{"./types"}, gen.WithTarget("./types"))
package compiler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/syssam/vogen/compiler/gen"
	"github.com/syssam/vogen/compiler/gen/golang"
	"github.com/syssam/vogen/compiler/load"
)

// Session is a long-lived incremental pipeline. Re-running a session on
// unchanged declarations reuses every model and artifact and yields the
// same result. A Session is safe for concurrent use.
type Session struct {
	id      uuid.UUID
	cfg     *gen.Config
	dialect gen.Dialect
	log     *zap.Logger
	runs    atomic.Int64
}

// NewSession returns a session generating Go code with the given options.
func NewSession(opts ...gen.Option) (*Session, error) {
	cfg, err := gen.NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	id := uuid.New()
	return &Session{
		id:      id,
		cfg:     cfg,
		dialect: golang.NewDialect(),
		log:     log.Named("session").With(zap.Stringer("session", id)),
	}, nil
}

// WithDialect replaces the Go dialect of the session.
func (s *Session) WithDialect(d gen.Dialect) *Session {
	if d != nil {
		s.dialect = d
	}
	return s
}

// ID returns the identifier of the session, as found in its logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Config returns the configuration of the session.
func (s *Session) Config() *gen.Config { return s.cfg }

// Stats returns the counters of the session cache.
func (s *Session) Stats() gen.CacheStats { return s.cfg.Cache().Stats() }

// Reset drops the models and artifacts cached in memory. The persistent
// store, if any, is left untouched.
func (s *Session) Reset() { s.cfg.Cache().Reset() }

// Run builds the models of decls and emits their artifacts. Problems with
// declarations are reported in the result diagnostics; the returned error
// is reserved for cancellation and internal failures.
func (s *Session) Run(ctx context.Context, decls ...*load.Declaration) (*gen.Result, error) {
	var (
		start  = time.Now()
		run    = s.runs.Add(1)
		before = s.Stats()
	)
	graph, err := gen.NewGraph(ctx, s.cfg, decls...)
	if err != nil {
		return nil, err
	}
	res, err := gen.NewJenniferGenerator(s.cfg).WithDialect(s.dialect).Generate(ctx, graph)
	if err != nil {
		return nil, err
	}
	after := s.Stats()
	s.log.Info("run",
		zap.Int64("run", run),
		zap.Int("types", len(graph.Nodes)),
		zap.Int("artifacts", len(res.Artifacts)),
		zap.Int("errors", len(res.Diagnostics.Errors())),
		zap.Int64("built", after.Builds-before.Builds),
		zap.Int64("emitted", after.Emits-before.Emits),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// Generate loads the declaration files of paths, runs the session on them
// and writes the artifacts below the configured target, or next to their
// declaration files if no target is set. Artifacts of valid types are
// written even if other types have errors; those errors are returned.
func (s *Session) Generate(ctx context.Context, paths ...string) (*gen.Result, error) {
	var errs *multierror.Error
	decls, err := load.Load(paths...)
	if err != nil {
		s.log.Warn("load declarations", zap.Error(err))
		errs = multierror.Append(errs, err)
	}
	res, err := s.Run(ctx, decls...)
	if err != nil {
		return nil, err
	}
	for _, d := range res.Diagnostics {
		if d.Severity >= gen.SevWarning {
			s.log.Debug("diagnostic", zap.Stringer("diagnostic", d))
		}
	}
	m, err := res.Write(ctx, s.cfg.Target, s.cfg.Workers)
	if err != nil {
		errs = multierror.Append(errs, errors.Wrap(err, "vogen: write artifacts"))
	}
	if m != nil {
		s.log.Debug("written", zap.Int("files", m.FilesWritten), zap.Int64("bytes", m.TotalBytes))
	}
	if err := res.Diagnostics.Err(); err != nil {
		errs = multierror.Append(errs, err)
	}
	return res, errs.ErrorOrNil()
}

// Generate runs a new session once over the declaration files of paths.
func Generate(ctx context.Context, paths []string, opts ...gen.Option) (*gen.Result, error) {
	s, err := NewSession(opts...)
	if err != nil {
		return nil, err
	}
	return s.Generate(ctx, paths...)
}
