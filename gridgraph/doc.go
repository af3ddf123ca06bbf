// Package gridgraph treats a 2D grid of non-negative cell weights as an
// implicit graph, the input model for the crucible solver.
//
// What:
//
//   - GridGraph wraps a rectangular [][]int grid, deep-copied on construction.
//   - Point addresses cells by (Row, Col), zero-based, row-major.
//   - Parse/ParseString ingest line-oriented digit maps ("2413432311323").
//   - Digest gives a stable content hash used to cache solver results.
//
// Why:
//
//   - Heat-loss maps, terrain costs and any per-cell entry cost problem.
//   - Keeps ingestion and validation of raw text out of the search engine.
//
// Complexity:
//
//   - NewGridGraph, Parse, Digest, Min/MaxWeight: O(W×H) time.
//   - InBounds, Weight, Index, Coordinate:        O(1).
//
// Errors:
//
//   - ErrEmptyGrid: input grid has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
//   - ErrInvalidDigit: textual input contains a non-digit cell.
package gridgraph
