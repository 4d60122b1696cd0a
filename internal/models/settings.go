package models

import "time"

// PrintSettingsID is the single row carrying the portal's print settings.
const PrintSettingsID = "default"

// PrintSettings holds the letterhead and sign-off block rendered on
// printed student profiles. All fields are optional; the profile falls
// back to a plain header when nothing is configured.
type PrintSettings struct {
	ID                  string    `db:"id" json:"id"`
	SchoolLetterheadURL *string   `db:"school_letterhead_url" json:"schoolLetterheadUrl"`
	AcademicYear        *string   `db:"academic_year" json:"academicYear"`
	SignaturePlace      *string   `db:"signature_place" json:"signaturePlace"`
	CommitteeHeadTitle  *string   `db:"committee_head_title" json:"committeeHeadTitle"`
	CommitteeHeadName   *string   `db:"committee_head_name" json:"committeeHeadName"`
	CommitteeHeadNUPTK  *string   `db:"committee_head_nuptk" json:"committeeHeadNuptk"`
	CommitteeHeadNIP    *string   `db:"committee_head_nip" json:"committeeHeadNip"`
	CommitteeHeadNPA    *string   `db:"committee_head_npa" json:"committeeHeadNpa"`
	UpdatedBy           *string   `db:"updated_by" json:"-"`
	UpdatedAt           time.Time `db:"updated_at" json:"updatedAt"`
}
