// Package gen derives Go source from a manifest by running a token
// program through the term evaluator.
//
// ARCHITECTURE
//
// Each declaration in the manifest is encoded as a tagged choice
// (sum, record, enum, func). A per-kind handler family expands every
// choice into a flat sequence of Go tokens, using the chaining
// operations (braced, semicoloned, parenthesized) for structure. The
// evaluator reduces the whole program to tokens, which are joined and
// run through go/format to produce the final file.
//
// Explicit ";" tokens stand in for newlines so the token stream stays
// one-dimensional; gofmt restores the layout.
package gen
