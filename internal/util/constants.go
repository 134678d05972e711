package util

const (
	StorageSimulated = "simulated"
	StorageMinio     = "minio"
)

// SimulatedProofURL is the opaque reference recorded for a proof when no
// object storage is configured.
const SimulatedProofURL = "Simulated_URL_PDF"

const (
	MimePDF  = "application/pdf"
	MimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// context keys
const (
	ContextUserKey    = "user"
	ContextClaimsKey  = "claims"
	ContextSessionKey = "session"
)
