package dto

// NameTotal is one labelled slice of a chart payload.
type NameTotal struct {
	Name  string `json:"name"`
	Total int    `json:"total"`
}

// StatsResponse feeds the overview dashboard.
type StatsResponse struct {
	Total             int         `json:"total"`
	Valid             int         `json:"valid"`
	Residu            int         `json:"residu"`
	BelumDiverifikasi int         `json:"belumDiverifikasi"`
	PendaftarBulanIni int         `json:"pendaftarBulanIni"`
	JenisKelamin      []NameTotal `json:"jenisKelamin"`
	StatusValidasi    []NameTotal `json:"statusValidasi"`
}

// ReportsResponse feeds the reports dashboard aggregations.
type ReportsResponse struct {
	Kecamatan         []NameTotal `json:"kecamatan"`
	KelurahanDesa     []NameTotal `json:"kelurahanDesa"`
	PekerjaanOrangTua []NameTotal `json:"pekerjaanOrangTua"`
	TrenRegistrasi    []NameTotal `json:"trenRegistrasi"`
	KepemilikanKIP    []NameTotal `json:"kepemilikanKip"`
	StatusYatimPiatu  []NameTotal `json:"statusYatimPiatu"`
	KurangMampu       []NameTotal `json:"kurangMampu"`
	PenghasilanAyah   []NameTotal `json:"penghasilanAyah"`
	Kelengkapan       []NameTotal `json:"kelengkapan"`
}
