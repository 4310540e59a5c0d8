// Package build provides the canonical build execution pipeline.
//
// A build reads metadata.json, then processes every language folder in
// tree-read order: read → index → order → merge → paginate → write. Languages
// are processed sequentially because a language merges against the reference
// language's already-ordered content, which is threaded through the loop as
// an accumulator. File I/O within one language fans out concurrently.
//
// All execution paths (CLI build, watcher, dev server) route through
// BuildService.
package build
