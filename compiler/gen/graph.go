package gen

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/vogen/compiler/load"
	"github.com/syssam/vogen/schema/directive"
	"github.com/syssam/vogen/schema/member"
)

// Graph holds the models of all candidates of a run.
type Graph struct {
	*Config
	// Nodes are the built models in candidate order, including models
	// with validation errors.
	Nodes []*Type
	// Diagnostics of collection, build and validation, sorted.
	Diagnostics Diagnostics

	cache   *Cache
	invalid map[*Type]bool
}

// node is the scheduling state of one candidate.
type node struct {
	idx    int
	cand   *load.Candidate
	id     string
	deps   []*node
	fp     Fingerprint
	t      *Type
	diags  Diagnostics
	failed bool
}

// NewGraph collects the candidates of decls and builds their models in
// dependency order. Candidates without dependencies between them are built
// in parallel. A candidate that fails to build or validate only affects the
// candidates depending on it. The returned error is reserved for
// cancellation and internal failures; problems with declarations are
// reported as diagnostics.
func NewGraph(ctx context.Context, c *Config, decls ...*load.Declaration) (*Graph, error) {
	g := &Graph{Config: c, cache: c.Cache(), invalid: make(map[*Type]bool)}
	log := c.logger().Named("graph")
	cands, issues := load.Collect(decls, c.directive())
	for _, i := range issues {
		g.Diagnostics = append(g.Diagnostics, Errorf(Code(i.Code), i.Pos, i.Type, "%s", i.Message))
	}
	nodes, idx := g.index(cands)
	for _, n := range nodes {
		g.link(n, idx)
	}
	batches, cyclic := schedule(nodes)
	for _, n := range cyclic {
		n.fail(Errorf(CodeCycle, n.cand.Pos, n.cand.QualifiedName(), "type is part of a dependency cycle"))
	}
	for i, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "vogen: build canceled")
		}
		log.Debug("build batch", zap.Int("batch", i), zap.Int("size", len(batch)))
		eg, ctx := errgroup.WithContext(ctx)
		eg.SetLimit(c.workers())
		for _, n := range batch {
			if dep := n.failedDep(); dep != nil {
				n.fail(Errorf(CodeDependencyFailed, n.cand.Pos, n.cand.QualifiedName(), "depends on %s, which has errors", dep.cand.QualifiedName()))
				continue
			}
			eg.Go(func() error { return g.build(ctx, n, idx) })
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}
	g.checkSiblings(nodes)
	for _, n := range nodes {
		g.Diagnostics = append(g.Diagnostics, n.diags...)
		if n.t == nil {
			continue
		}
		g.Nodes = append(g.Nodes, n.t)
		if n.failed {
			g.invalid[n.t] = true
		}
	}
	g.Diagnostics.Sort()
	g.Diagnostics = g.Diagnostics.Dedup()
	return g, nil
}

// index assigns graph identities to candidates. Candidates are found by
// import-path-qualified Go name, qualified name and Go name.
func (g *Graph) index(cands []*load.Candidate) ([]*node, map[string][]*node) {
	var (
		nodes []*node
		ids   = make(map[string]*node)
		idx   = make(map[string][]*node)
	)
	for _, cand := range cands {
		pkg := cand.PkgPath
		if pkg == "" {
			pkg = g.Package
		}
		goName := strings.Join(cand.Enclosing, "") + cand.Name
		id := pkg + "." + goName
		if prev, ok := ids[id]; ok {
			g.Diagnostics = append(g.Diagnostics, Errorf(CodeDuplicateType, cand.Pos, cand.QualifiedName(), "type %s is already declared at %s", goName, prev.cand.Pos))
			continue
		}
		n := &node{idx: len(nodes), cand: cand, id: id}
		ids[id] = n
		nodes = append(nodes, n)
		for _, k := range []string{id, pkg + "." + cand.QualifiedName(), cand.QualifiedName(), goName} {
			if !slices.Contains(idx[k], n) {
				idx[k] = append(idx[k], n)
			}
		}
	}
	return nodes, idx
}

// lookup resolves a type reference made by n. References within the
// package of n win over references to other packages.
func (n *node) lookup(idx map[string][]*node, name string) *node {
	pkg := n.id[:strings.LastIndexByte(n.id, '.')]
	if ns := idx[pkg+"."+name]; len(ns) == 1 {
		return ns[0]
	}
	if ns := idx[name]; len(ns) == 1 {
		return ns[0]
	}
	return nil
}

// link derives the dependencies of n: its base type and the member types
// naming other candidates.
func (g *Graph) link(n *node, idx map[string][]*node) {
	var refs []string
	if base, ok := n.cand.Options[directive.KeyBaseType].(string); ok && base != "" {
		refs = append(refs, base)
	}
	members := slices.Clone(n.cand.Members)
	for _, nested := range n.cand.Nested {
		if nested.LookupDirective(g.directive()) == nil {
			members = append(members, nested.Members...)
		}
	}
	for _, m := range members {
		info, err := member.ParseType(m.Type)
		if err != nil || info.Type != member.TypeOther {
			continue
		}
		ref := info.Ident
		if info.PkgPath != "" {
			ref = info.PkgPath + "." + info.Ident
		}
		refs = append(refs, ref)
	}
	for _, ref := range refs {
		dep := n.lookup(idx, ref)
		switch {
		case dep == nil, slices.Contains(n.deps, dep):
		case dep == n:
			n.fail(Errorf(CodeCycle, n.cand.Pos, n.cand.QualifiedName(), "type refers to itself"))
		default:
			n.deps = append(n.deps, dep)
		}
	}
	slices.SortFunc(n.deps, func(a, b *node) int { return strings.Compare(a.id, b.id) })
}

// schedule orders nodes into batches with Kahn's algorithm. Each batch only
// depends on earlier batches, and lists its nodes in candidate order. Nodes
// left on cycles are returned separately.
func schedule(nodes []*node) (batches [][]*node, cyclic []*node) {
	var (
		indeg = make(map[*node]int, len(nodes))
		out   = make(map[*node][]*node, len(nodes))
	)
	for _, n := range nodes {
		indeg[n] = len(n.deps)
		for _, d := range n.deps {
			out[d] = append(out[d], n)
		}
	}
	var current []*node
	for _, n := range nodes {
		if indeg[n] == 0 {
			current = append(current, n)
		}
	}
	visited := 0
	for len(current) > 0 {
		batches = append(batches, current)
		var next []*node
		for _, n := range current {
			visited++
			for _, to := range out[n] {
				if indeg[to]--; indeg[to] == 0 {
					next = append(next, to)
				}
			}
		}
		slices.SortFunc(next, func(a, b *node) int { return a.idx - b.idx })
		current = next
	}
	if visited != len(nodes) {
		for _, n := range nodes {
			if indeg[n] > 0 {
				cyclic = append(cyclic, n)
			}
		}
	}
	return batches, cyclic
}

// build builds and validates the model of n through the cache.
func (g *Graph) build(ctx context.Context, n *node, idx map[string][]*node) error {
	if n.failed {
		return nil
	}
	content, err := DeclarationFingerprint(g.Config, n.cand.Declaration)
	if err != nil {
		return errors.Wrapf(err, "fingerprint %s", n.cand.QualifiedName())
	}
	deps := make([]Fingerprint, len(n.deps))
	for i, d := range n.deps {
		deps[i] = d.fp
	}
	n.fp = Combine(content, deps...)
	resolve := func(name string) (*Type, bool) {
		dep := n.lookup(idx, name)
		if dep == nil || dep.t == nil || !slices.Contains(n.deps, dep) {
			return nil, false
		}
		return dep.t, true
	}
	t, err := g.cache.Model(ctx, n.fp, func() (*Type, error) {
		t, err := NewType(g.Config, n.cand, resolve)
		if t != nil {
			t.Fingerprint = n.fp
		}
		return t, err
	})
	if cerr := ctx.Err(); cerr != nil {
		return cerr
	}
	var be *BuildError
	switch {
	case errors.As(err, &be):
		msg := be.Message
		if be.Member != "" {
			msg = fmt.Sprintf("%s: %s", be.Member, msg)
		}
		if be.Cause != nil {
			msg = fmt.Sprintf("%s: %v", msg, be.Cause)
		}
		n.fail(Errorf(be.Code, n.cand.Pos, n.cand.QualifiedName(), "%s", msg))
		return nil
	case err != nil:
		return errors.Wrapf(err, "build %s", n.cand.QualifiedName())
	}
	if t.Pos != n.cand.Pos {
		cp := *t
		cp.Pos = n.cand.Pos
		t = &cp
	}
	n.t = t
	ds := Validate(t)
	n.diags = append(n.diags, ds...)
	n.failed = ds.HasErrors()
	return nil
}

// checkSiblings reports items of enumerations derived from one base whose
// keys collide with each other. Collisions with the base chain itself are
// reported by the validator.
func (g *Graph) checkSiblings(nodes []*node) {
	seen := make(map[string]map[any]*node)
	for _, n := range nodes {
		t := n.t
		if t == nil || t.Base == nil || n.failed {
			continue
		}
		root := t.Root().ID()
		if seen[root] == nil {
			seen[root] = make(map[any]*node)
		}
		for _, it := range t.Items {
			k := canonical(t, it.Key)
			if prev, ok := seen[root][k]; ok && prev != n {
				n.fail(Errorf(CodeItemCollision, n.cand.Pos, n.cand.QualifiedName(), "item %s: key %v collides with an item of %s", it.Name, it.Key, prev.t.GoName))
				continue
			}
			seen[root][k] = n
		}
	}
}

func (n *node) fail(d Diagnostic) {
	n.failed = true
	n.diags = append(n.diags, d)
}

func (n *node) failedDep() *node {
	for _, d := range n.deps {
		if d.failed {
			return d
		}
	}
	return nil
}

// Valid reports whether t was built without error diagnostics.
func (g *Graph) Valid(t *Type) bool {
	return t != nil && !g.invalid[t]
}

// Emittable returns the models without error diagnostics, in candidate order.
func (g *Graph) Emittable() []*Type {
	var ts []*Type
	for _, t := range g.Nodes {
		if g.Valid(t) {
			ts = append(ts, t)
		}
	}
	return ts
}

// Lookup returns the model with the given qualified name, Go name or
// import-path-qualified Go name.
func (g *Graph) Lookup(name string) (*Type, bool) {
	for _, t := range g.Nodes {
		if t.QualifiedName() == name || t.GoName == name || t.ID() == name {
			return t, true
		}
	}
	return nil, false
}
