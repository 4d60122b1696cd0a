package models

// StatusBucket selects records by validation state in list filters.
type StatusBucket string

const (
	BucketSemuaStatus StatusBucket = "semua"
	BucketBelum       StatusBucket = "belum"
	BucketValid       StatusBucket = "valid"
	BucketResidu      StatusBucket = "residu"
)

// Valid reports whether the bucket is one of the known selectors.
func (b StatusBucket) Valid() bool {
	switch b {
	case BucketSemuaStatus, BucketBelum, BucketValid, BucketResidu:
		return true
	}
	return false
}

// CompletenessBucket groups records by how much of the form is filled.
type CompletenessBucket string

const (
	KelengkapanSemua   CompletenessBucket = "Semua"
	KelengkapanLengkap CompletenessBucket = "Lengkap"
	KelengkapanCukup   CompletenessBucket = "Cukup"
	KelengkapanKurang  CompletenessBucket = "Kurang"
)

// Valid reports whether the bucket is one of the known groupings.
func (b CompletenessBucket) Valid() bool {
	switch b {
	case KelengkapanSemua, KelengkapanLengkap, KelengkapanCukup, KelengkapanKurang:
		return true
	}
	return false
}

// StudentFilter captures the list view criteria. All predicates are
// conjunctive; zero values match everything. Dates are yyyy-MM-dd.
type StudentFilter struct {
	Search      string
	Status      StatusBucket
	DateFrom    string
	DateTo      string
	Kelengkapan CompletenessBucket
}

// Pagination describes list paging metadata in API responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}
