// Package param holds the data model of the expansion engine: parameter
// records, deferred resource specs, and the Seq normalizer that turns
// heterogeneous parameter sources (slices, keyed maps, sets, callables,
// nested sequences) into a flat, reproducible list of records.
//
// Records are immutable. Every With* method and Merge returns a new record;
// the receiver is never changed. This keeps a record safe to share between
// the generated units that are produced from it.
package param
