// Package gen builds the model of a zerobuf schema and drives the code
// generation backends.
//
// # Architecture
//
// The code generation pipeline follows this flow:
//
//	Schema file (*.fbs)
//	        ↓
//	   load.File (token tree)
//	        ↓
//	   Registry + LayoutTable (one Table per declaration, in order)
//	        ↓
//	   Graph (immutable model of the file)
//	        ↓
//	   Backend (renders files in memory)
//	        ↓
//	   Generator (writes files in parallel)
//
// # Layout
//
// Every table starts with a 4-byte version header. Fields are laid out in
// declaration order: a fixed field occupies its element size times its
// count, a dynamic field (string, vector or dynamically sized table)
// occupies a 16-byte slot holding the offset and size of its data in the
// dynamic region. A table without fields has no payload and a static size
// of 0.
//
// A table is registered with its static size if all its members are fixed,
// and with size 0 otherwise. Tables of size 0 can only be embedded through
// a dynamic slot, and only one level deep.
//
// # Error Handling
//
// The package uses structured error types:
//
//   - SchemaError: unresolved or redeclared names
//   - ValidationError: layouts and values the format cannot represent
//   - ConfigError: configuration errors
//   - GenerationError: rendering and writing errors
//
// Example error handling:
//
//	g, err := gen.NewGraph(cfg, f)
//	if errors.Is(err, gen.ErrUnresolvedType) {
//	    // a field refers to a type declared later, or not at all
//	}
//	if gen.IsValidationError(err) {
//	    // structural violation
//	}
package gen
