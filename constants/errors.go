package constants

// ErrorKind is the stable taxonomy for pipeline failures. Values appear in
// logs, run summaries, and degraded-document issue records.
type ErrorKind string

const (
	KindMalformedFilename     ErrorKind = "MALFORMED_FILENAME"
	KindDuplicatePage         ErrorKind = "DUPLICATE_PAGE"
	KindMissingField          ErrorKind = "MISSING_FIELD"
	KindEnrichmentUnavailable ErrorKind = "ENRICHMENT_UNAVAILABLE"
	KindMismatchedCorpus      ErrorKind = "MISMATCHED_CORPUS"
	KindEmptyCorpus           ErrorKind = "EMPTY_CORPUS"
	KindPersistenceConflict   ErrorKind = "PERSISTENCE_CONFLICT"
)
