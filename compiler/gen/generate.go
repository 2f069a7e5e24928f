package gen

import (
	"bytes"
	"context"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dave/jennifer/jen"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/vogen"
	"github.com/syssam/vogen/schema/directive"
	"github.com/syssam/vogen/schema/member"
)

// JenniferGenerator runs the concerns of a dialect over the valid models of
// a graph. Concerns of all types run in parallel; each artifact is computed
// at most once per fingerprint through the session cache.
type JenniferGenerator struct {
	cfg     *Config
	workers int
	dialect Dialect
}

// NewJenniferGenerator creates a new Jennifer-based generator.
// You must call WithDialect() to set a dialect before calling Generate().
//
// Example:
//
//	import "github.com/syssam/vogen/compiler/gen/golang"
//
//	gen := gen.NewJenniferGenerator(cfg).WithDialect(golang.NewDialect())
//	res, err := gen.Generate(ctx, graph)
func NewJenniferGenerator(c *Config) *JenniferGenerator {
	return &JenniferGenerator{cfg: c, workers: c.workers()}
}

// WithWorkers sets the number of parallel workers.
func (g *JenniferGenerator) WithWorkers(n int) *JenniferGenerator {
	if n > 0 {
		g.workers = n
	}
	return g
}

// WithDialect sets the dialect providing the concern emitters.
func (g *JenniferGenerator) WithDialect(d Dialect) *JenniferGenerator {
	if d != nil {
		g.dialect = d
	}
	return g
}

// task is one concern of one type.
type task struct {
	t       *Type
	concern string
	emit    EmitFunc
}

// Generate emits the artifacts of every applicable concern of every valid
// model of the graph. A failing concern is reported as a diagnostic of its
// artifact; other concerns of the same type still emit. The returned error
// is reserved for configuration errors and cancellation.
func (g *JenniferGenerator) Generate(ctx context.Context, graph *Graph) (*Result, error) {
	if g.dialect == nil {
		return nil, NewConfigError("Dialect", nil, "no dialect set: call WithDialect() before Generate()")
	}
	if graph == nil {
		return nil, NewConfigError("Graph", nil, "no graph to generate")
	}
	log := g.cfg.logger().Named("generate")
	var tasks []task
	for _, t := range graph.Emittable() {
		for _, f := range g.cfg.features() {
			if !f.Applies(t) {
				continue
			}
			emit := g.dialect.Emitter(f.Name)
			if emit == nil {
				log.Debug("concern not implemented", zap.String("dialect", g.dialect.Name()), zap.String("concern", f.Name))
				continue
			}
			tasks = append(tasks, task{t: t, concern: f.Name, emit: emit})
		}
	}
	var (
		start     = time.Now()
		before    = g.cfg.Cache().Stats()
		artifacts = make([]*Artifact, len(tasks))
		salt      = digest([]byte(g.dialect.Name() + "\x00" + g.cfg.header()))
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.workers)
	for i, tk := range tasks {
		eg.Go(func() error {
			a, err := g.run(ctx, tk, salt)
			artifacts[i] = a
			return err
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errors.Wrap(err, "vogen: generation canceled")
	}
	res := &Result{Diagnostics: slices.Clone(graph.Diagnostics)}
	for _, a := range artifacts {
		res.Diagnostics = append(res.Diagnostics, a.Diagnostics...)
		if a.Source != nil {
			res.Artifacts = append(res.Artifacts, a)
		}
	}
	res.Diagnostics.Sort()
	after := g.cfg.Cache().Stats()
	log.Debug("generated",
		zap.Int("artifacts", len(res.Artifacts)),
		zap.Int64("emitted", after.Emits-before.Emits),
		zap.Int64("hits", after.Hits-before.Hits),
		zap.Duration("took", time.Since(start)),
	)
	return res, nil
}

// run emits and renders one artifact through the cache.
func (g *JenniferGenerator) run(ctx context.Context, tk task, salt Fingerprint) (*Artifact, error) {
	t := tk.t
	a := &Artifact{
		Type:     t.ID(),
		Concern:  tk.concern,
		Dir:      t.Pos.Dir(),
		Filename: snake(t.GoName) + "_" + tk.concern + ".go",
	}
	key := vogen.CacheKey{Type: t.ID(), Concern: tk.concern, Fingerprint: Combine(t.Fingerprint, salt).String()}
	src, err := g.cfg.Cache().Artifact(ctx, key, func() ([]byte, error) {
		f, err := tk.emit(g, t)
		if err != nil {
			return nil, NewGenerationError(tk.concern, t.QualifiedName(), "emit", err)
		}
		if f == nil {
			return []byte{}, nil
		}
		var buf bytes.Buffer
		if err := f.Render(&buf); err != nil {
			return nil, &GenerationError{Concern: tk.concern, Type: t.QualifiedName(), File: a.Filename, Message: "render", Cause: err}
		}
		return buf.Bytes(), nil
	})
	if cerr := ctx.Err(); cerr != nil {
		return a, cerr
	}
	var ge *GenerationError
	switch {
	case errors.As(err, &ge):
		// Render failures carry the file they failed to render.
		code := CodeConcernFailed
		if ge.File != "" {
			code = CodeRenderFailed
		}
		d := Errorf(code, t.Pos, t.QualifiedName(), "%v", ge.Cause)
		d.Concern = tk.concern
		a.Diagnostics = append(a.Diagnostics, d)
	case err != nil:
		return a, err
	case len(src) > 0:
		a.Source = src
	}
	return a, nil
}

// Verify JenniferGenerator implements GeneratorHelper at compile time.
var _ GeneratorHelper = (*JenniferGenerator)(nil)

// NewFile creates a new Jennifer file with the standard header comment.
func (g *JenniferGenerator) NewFile(t *Type) *jen.File {
	f := jen.NewFilePathName(t.PkgPath, t.Package)
	f.HeaderComment(g.cfg.header())
	f.ImportName(runtimePkg, "vogen")
	f.ImportName(member.DecimalPkg, "decimal")
	f.ImportName(member.UUIDPkg, "uuid")
	return f
}

// RuntimePkg returns the import path of the runtime library.
func (g *JenniferGenerator) RuntimePkg() string {
	return runtimePkg
}

// Config returns the codegen configuration.
func (g *JenniferGenerator) Config() *Config {
	return g.cfg
}

// FeatureEnabled reports if the given concern is enabled.
func (g *JenniferGenerator) FeatureEnabled(name string) bool {
	enabled, _ := g.cfg.FeatureEnabled(name)
	return enabled
}

// GoType returns the Jennifer code for a member's Go type.
func (g *JenniferGenerator) GoType(m *Member) jen.Code {
	switch {
	case m.Ref != nil:
		if m.Nullable && !m.Ref.Pointer() && m.Ref.Kind != vogen.KindUnion {
			return jen.Op("*").Add(g.TypeRef(m.Ref))
		}
		return g.SelfType(m.Ref)
	case m.Nullable && m.Type.Type != member.TypeBytes:
		return jen.Op("*").Add(g.BaseType(m))
	default:
		return g.BaseType(m)
	}
}

// BaseType returns the Jennifer code for a member's base type (without pointer).
func (g *JenniferGenerator) BaseType(m *Member) jen.Code {
	if m.Ref != nil {
		return g.SelfType(m.Ref)
	}
	info := m.Type
	switch info.Type {
	case member.TypeBytes:
		return jen.Index().Byte()
	case member.TypeDecimal, member.TypeTime, member.TypeUUID:
		return jen.Qual(info.PkgPath, info.Ident)
	case member.TypeOther:
		if info.PkgPath != "" {
			return jen.Qual(info.PkgPath, info.Ident)
		}
		return jen.Id(info.Ident)
	default:
		return jen.Id(info.Type.String())
	}
}

// KeyType returns the Jennifer code for the key type of a keyed type.
func (g *JenniferGenerator) KeyType(t *Type) jen.Code {
	if t.Key == nil {
		return jen.Any()
	}
	return g.BaseType(t.Key)
}

// TypeRef returns the Jennifer code naming the generated type.
func (g *JenniferGenerator) TypeRef(t *Type) jen.Code {
	return jen.Qual(t.PkgPath, t.GoName)
}

// SelfType returns the Jennifer code for values of the generated type.
func (g *JenniferGenerator) SelfType(t *Type) jen.Code {
	if t.Pointer() {
		return jen.Op("*").Qual(t.PkgPath, t.GoName)
	}
	return jen.Qual(t.PkgPath, t.GoName)
}

// ComparerExpr returns an expression of type vogen.Comparer[K] for the
// base type K of the member.
func (g *JenniferGenerator) ComparerExpr(m *Member, c *Comparer) jen.Code {
	if m.Ref != nil {
		return nil
	}
	switch {
	case c.Custom():
		if c.PkgPath == "" {
			return jen.Id(c.Ident)
		}
		return jen.Qual(c.PkgPath, c.Ident)
	case c.Name == directive.ComparerOrdinal:
		return jen.Qual(runtimePkg, "Ordinal")
	case c.Name == directive.ComparerOrdinalIgnoreCase:
		return jen.Qual(runtimePkg, "OrdinalIgnoreCase")
	}
	typ := m.Type.Type
	switch {
	case typ == member.TypeString:
		return jen.Qual(runtimePkg, "Ordinal")
	case typ == member.TypeDecimal:
		return jen.Qual(runtimePkg, "CmpComparer").Types(g.BaseType(m)).Call()
	case typ.Integer(), typ.Float():
		return jen.Qual(runtimePkg, "DefaultComparer").Types(g.BaseType(m)).Call()
	case typ == member.TypeTime:
		return jen.Qual(runtimePkg, "TimeComparer")
	case typ == member.TypeUUID:
		return jen.Qual(runtimePkg, "UUIDComparer")
	case typ == member.TypeBytes:
		return jen.Qual(runtimePkg, "BytesComparer")
	default:
		return jen.Qual(runtimePkg, "EqualityComparer").Types(g.BaseType(m)).Call()
	}
}

// ValidationErrorType returns the validation error type of a factory.
func (g *JenniferGenerator) ValidationErrorType(t *Type) jen.Code {
	e := t.ValidationError
	if e.PkgPath == "" {
		return jen.Id(e.Name)
	}
	return jen.Qual(e.PkgPath, e.Name)
}

// Literal returns the Jennifer code of a normalized literal of a member.
// Integer and float literals are untyped constants.
func (g *JenniferGenerator) Literal(m *Member, v any) jen.Code {
	if v == nil {
		return jen.Nil()
	}
	var lit jen.Code
	switch x := v.(type) {
	case bool:
		lit = jen.Lit(x)
	case int64:
		lit = jen.Id(strconv.FormatInt(x, 10))
	case uint64:
		lit = jen.Id(strconv.FormatUint(x, 10))
	case float64:
		lit = jen.Id(strconv.FormatFloat(x, 'g', -1, 64))
	case string:
		switch m.Type.Type {
		case member.TypeBytes:
			return jen.Index().Byte().Parens(jen.Lit(x))
		case member.TypeDecimal:
			lit = jen.Qual(member.DecimalPkg, "RequireFromString").Call(jen.Lit(x))
		case member.TypeUUID:
			lit = jen.Qual(member.UUIDPkg, "MustParse").Call(jen.Lit(x))
		case member.TypeTime:
			ts, _ := time.Parse(time.RFC3339Nano, x)
			lit = jen.Qual("time", "Date").Call(
				jen.Lit(ts.Year()), jen.Qual("time", ts.Month().String()), jen.Lit(ts.Day()),
				jen.Lit(ts.Hour()), jen.Lit(ts.Minute()), jen.Lit(ts.Second()), jen.Lit(ts.Nanosecond()),
				jen.Qual("time", "UTC"),
			)
		default:
			lit = jen.Lit(x)
		}
	default:
		lit = jen.Lit(x)
	}
	if m.Nullable {
		return jen.Qual(runtimePkg, "Ptr").Types(g.BaseType(m)).Call(lit)
	}
	return lit
}

// CheckDispatch reports whether a set of handlers covers every case of an
// enumeration or union: either every case is handled, or a catch-all is
// given. Handlers naming unknown cases are an error too.
func CheckDispatch(t *Type, handled []string, catchAll bool) error {
	names := t.CaseNames()
	var errs []string
	for _, h := range handled {
		if !slices.Contains(names, h) {
			errs = append(errs, "unknown case "+strconv.Quote(h))
		}
	}
	if !catchAll {
		for _, n := range names {
			if !slices.Contains(handled, n) {
				errs = append(errs, "unhandled case "+strconv.Quote(n))
			}
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errors.Newf("%s: dispatch is not exhaustive: %s", t.GoName, strings.Join(errs, ", "))
}
