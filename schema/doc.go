// Package schema holds the vocabulary of vogen declarations.
//
//   - [member]: the member type system (strings, integers, decimals, UUIDs,
//     times and references to other types)
//   - [directive]: the typed record of the options of the vogen directive
//
// # Quick Start
//
// Declare types in a YAML (or JSON) file and mark them with the directive:
//
//	package: shop
//	path: example.com/shop
//	types:
//	  - name: Category
//	    members:
//	      - {name: key, type: string}
//	      - {name: title, type: string}
//	    items:
//	      - {name: Books, values: {title: Books}}
//	      - {name: Music, values: {title: Music}}
//	    directives:
//	      - name: vogen
//	        options: {kind: enum, equalityComparer: ordinal-ignore-case}
//
//	  - name: Quantity
//	    members:
//	      - {name: value, type: int32}
//	    directives:
//	      - name: vogen
//	        options: {kind: value-object, operators: all}
//
// # Kinds
//
//   - enum: a keyed enumeration, optionally extensible (isExtensible) or
//     derived from an extensible one (baseType)
//   - value-object: a single-member type keyed by its member
//   - complex-value-object: a multi-member type compared member-wise
//   - union: a closed set of cases declared as nested types
//
// # Options
//
// Options are parsed leniently: unknown keys and unrecognized values are
// reported as diagnostics of the type, never as load errors. See
// [directive.Parse] for the recognized keys and their defaults.
package schema
