// Package gen generates graphql-ruby source files from a GraphQL
// introspection schema.
//
// For every generated schema type it produces a machine-owned schema
// class and, for object and interface types, a hand-editable
// implementation module and an RSpec test stub.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Introspection JSON (load.Schema)
//	        ↓
//	   Classify (pass 1: output names, base categories)
//	        ↓
//	   Assemble (pass 2: signatures, examples, documents)
//	        ↓
//	   Outputs + Writer
//
// Classification must complete for all types before assembly resolves any
// reference, since resolution looks up the names assigned to other types.
//
// # Key Types
//
//   - Graph: the explicit generation context (name table, dependency
//     edges, documents, the set of types being expanded)
//   - Node: one classified type with its three documents
//   - TypeName: the output name of a type, made of a Category and a bare name
//   - Signature: a resolved field or argument type reference
//   - Example: a synthesized example value used in test queries
//   - Document: a file built from fixed, ordered sections
//   - Config: global configuration for code generation
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: references or constructs the generator cannot map
//   - NameCollisionError: two schema types mapped to one output name
//   - ConfigError: configuration errors
//   - GenerationError: assembly ordering and I/O errors
//
// Example error handling:
//
//	if err := graph.Build(); err != nil {
//	    var collision *gen.NameCollisionError
//	    if errors.As(err, &collision) {
//	        log.Printf("rename %s or %s", collision.Existing, collision.Type)
//	    }
//	}
//
// Unsupported custom directives do not fail generation; they are collected
// in Graph.Problems.
package gen
