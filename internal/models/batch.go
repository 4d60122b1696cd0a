package models

// BatchOpKind discriminates operations inside an atomic batch write.
type BatchOpKind string

const (
	BatchOpCreate BatchOpKind = "create"
	BatchOpUpdate BatchOpKind = "update"
	BatchOpDelete BatchOpKind = "delete"
	BatchOpStatus BatchOpKind = "status"
)

// BatchOperation is one element of a heterogeneous atomic batch.
// Create and Update carry the full record; Delete needs only the ID;
// Status carries ID plus the new validation state and note.
type BatchOperation struct {
	Kind    BatchOpKind
	ID      string
	Record  *StudentRecord
	Status  ValidationStatus
	Catatan *string
}

// ImportSummary reports the outcome of a reconciled batch import.
type ImportSummary struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}

// ImportRow holds the canonical-keyed values parsed from one row of an
// uploaded sheet. Only fields present in the source appear here.
type ImportRow map[string]string
