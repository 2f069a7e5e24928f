// Package gen builds the models of vogen declarations and orchestrates the
// emission of their code.
//
// # Architecture
//
// A run follows this flow:
//
//	Declaration files (*.yaml, *.json)
//	        ↓
//	   load.Collect (candidates carrying the directive)
//	        ↓
//	   Graph (dependency batches, parallel NewType, Validate)
//	        ↓
//	   JenniferGenerator (one task per type and concern, through the Cache)
//	        ↓
//	   Result (artifacts and diagnostics)
//
// # Key Types
//
//   - Type: the immutable model of one candidate: kind, members, key,
//     comparers, operators, dispatch, items or variants, base
//   - Graph: the models of a run, in candidate order, with their diagnostics
//   - Diagnostic: a positioned, coded message; codes are stable (VG1xxx
//     collection, VG2xxx build, VG3xxx validation, VG4xxx emission)
//   - Cache: fingerprint-keyed models and artifacts, shared across runs
//   - Config: the options shared by all types
//
// # Incremental Builds
//
// Every model is keyed by the fingerprint of its declaration combined with
// the fingerprints of the types it depends on. A Cache handed to successive
// graphs with WithCache only rebuilds and re-emits types whose fingerprint
// changed. A persistent store (WithStore, MemoryStore, OpenDiskStore) keeps
// artifacts across processes.
//
// # Error Handling
//
// Problems with declarations never abort a run. They are reported as
// diagnostics, and only the affected types and their dependents are left
// out. Returned errors are structured:
//
//   - BuildError: a model could not be built (carries a diagnostic code)
//   - ConfigError: an invalid option
//   - GenerationError: a concern failed to emit or render
//   - ValidationError: an error diagnostic, as returned by Diagnostics.Err
//
// # Usage
//
//	import "github.com/syssam/vogen/compiler/gen/golang"
//
//	cfg, err := gen.NewConfig(gen.WithWorkers(4))
//	graph, err := gen.NewGraph(ctx, cfg, decls...)
//	res, err := gen.NewJenniferGenerator(cfg).
//	    WithDialect(golang.NewDialect()).
//	    Generate(ctx, graph)
//	_, err = res.Write(ctx, "", 4)
//
// # Generated Output
//
// Each concern of each type is one file next to the declaration file:
//
//	{type}_definition.go  // struct, accessors, items and item store
//	{type}_equality.go    // Equal and HashCode
//	{type}_ordering.go    // Compare, Less, ...
//	{type}_arithmetic.go  // Add, Sub, Mul, Div and checked forms
//	{type}_factory.go     // TryCreate, MustCreate, Get, TryGet, items
//	{type}_dispatch.go    // Switch and Map
//	{type}_string.go      // String
//	{type}_derived.go     // As and Is for derived enumerations
//	{type}_metadata.go    // runtime metadata registration
package gen
