// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - CorpusStore: Loads the static reference corpus
//   - EmbeddingService: Maps text to fixed-length vectors
//   - VectorIndex: Persists vectors and answers nearest-neighbour queries
//   - GenerationService: Produces grounded text responses
//   - ConfigStore: Application configuration
//   - PromptStore: User-customisable prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
