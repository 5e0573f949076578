// Package domain defines the core business entities for Attest.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Document: A reference corpus document with attribution metadata
//   - RetrievedDoc: A per-query retrieval projection with a relevance score
//   - Answer: A generated response with source attribution
//   - Settings: AI provider and retrieval configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
