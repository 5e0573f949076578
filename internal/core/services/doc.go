// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The pipeline composes leaf-first: Indexer populates the vector index from
// the corpus, Retriever answers nearest-neighbour queries, Assembler builds
// the grounding context and issues the generation request, and
// AnswerService ties them together behind the Answerer port.
package services
