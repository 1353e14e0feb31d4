package constants

// DocStatus is the canonical per-document stage in the assembly pipeline.
type DocStatus string

// Stable values (these exact strings appear in logs and run summaries).
const (
	DocStatusGrouped    DocStatus = "GROUPED"    // pages clustered and ordered
	DocStatusNormalized DocStatus = "NORMALIZED" // text cleaned and annotated
	DocStatusEnriched   DocStatus = "ENRICHED"   // entities attached
	DocStatusBound      DocStatus = "BOUND"      // provenance URL attached
	DocStatusPersisted  DocStatus = "PERSISTED"  // record published
	DocStatusFailed     DocStatus = "FAILED"     // terminal failure, excluded from output
)
