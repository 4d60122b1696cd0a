package dto

// SavePrintSettingsRequest partially updates the print settings. Absent
// fields keep their stored value; an explicit empty string clears one.
type SavePrintSettingsRequest struct {
	SchoolLetterheadURL *string `json:"schoolLetterheadUrl" validate:"omitempty,url"`
	AcademicYear        *string `json:"academicYear"`
	SignaturePlace      *string `json:"signaturePlace"`
	CommitteeHeadTitle  *string `json:"committeeHeadTitle"`
	CommitteeHeadName   *string `json:"committeeHeadName"`
	CommitteeHeadNUPTK  *string `json:"committeeHeadNuptk"`
	CommitteeHeadNIP    *string `json:"committeeHeadNip"`
	CommitteeHeadNPA    *string `json:"committeeHeadNpa"`
}
