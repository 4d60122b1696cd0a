package models

import (
	"time"

	"github.com/lib/pq"
)

// ValidationStatus captures the review state of a student record.
type ValidationStatus string

const (
	StatusBelumDiverifikasi ValidationStatus = "Belum Diverifikasi"
	StatusValid             ValidationStatus = "Valid"
	StatusResidu            ValidationStatus = "Residu"
)

// Valid reports whether the status is one of the known states.
func (s ValidationStatus) Valid() bool {
	switch s {
	case StatusBelumDiverifikasi, StatusValid, StatusResidu:
		return true
	}
	return false
}

// StudentRecord mirrors the registration form of the portal. Dates are
// stored as yyyy-MM-dd strings, matching the form's date handling.
type StudentRecord struct {
	ID                string `db:"id" json:"id"`
	TanggalRegistrasi string `db:"tanggal_registrasi" json:"tanggalRegistrasi"`

	// Data pribadi
	NamaLengkap           string         `db:"nama_lengkap" json:"namaLengkap"`
	JenisKelamin          string         `db:"jenis_kelamin" json:"jenisKelamin"`
	NISN                  string         `db:"nisn" json:"nisn"`
	NIS                   string         `db:"nis" json:"nis"`
	NIK                   string         `db:"nik" json:"nik"`
	NoKK                  string         `db:"no_kk" json:"noKk"`
	TempatLahir           string         `db:"tempat_lahir" json:"tempatLahir"`
	TanggalLahir          string         `db:"tanggal_lahir" json:"tanggalLahir"`
	NoRegistrasiAktaLahir string         `db:"no_registrasi_akta_lahir" json:"noRegistrasiAktaLahir"`
	Agama                 string         `db:"agama" json:"agama"`
	Kewarganegaraan       string         `db:"kewarganegaraan" json:"kewarganegaraan"`
	NamaNegara            string         `db:"nama_negara" json:"namaNegara"`
	BerkebutuhanKhusus    pq.StringArray `db:"berkebutuhan_khusus" json:"berkebutuhanKhusus"`
	AlamatJalan           string         `db:"alamat_jalan" json:"alamatJalan"`
	RT                    string         `db:"rt" json:"rt"`
	RW                    string         `db:"rw" json:"rw"`
	NamaDusun             string         `db:"nama_dusun" json:"namaDusun"`
	NamaKelurahanDesa     string         `db:"nama_kelurahan_desa" json:"namaKelurahanDesa"`
	Kecamatan             string         `db:"kecamatan" json:"kecamatan"`
	KodePos               string         `db:"kode_pos" json:"kodePos"`
	TempatTinggal         string         `db:"tempat_tinggal" json:"tempatTinggal"`
	ModaTransportasi      string         `db:"moda_transportasi" json:"modaTransportasi"`
	AnakKeberapa          string         `db:"anak_keberapa" json:"anakKeberapa"`
	StatusAnak            string         `db:"status_anak" json:"statusAnak"`
	PunyaKIP              string         `db:"punya_kip" json:"punyaKip"`
	UangMasuk             string         `db:"uang_masuk" json:"uangMasuk"`
	SekolahAsal           string         `db:"sekolah_asal" json:"sekolahAsal"`
	TinggiBadan           string         `db:"tinggi_badan" json:"tinggiBadan"`
	BeratBadan            string         `db:"berat_badan" json:"beratBadan"`
	LingkarKepala         string         `db:"lingkar_kepala" json:"lingkarKepala"`
	JumlahSaudaraKandung  string         `db:"jumlah_saudara_kandung" json:"jumlahSaudaraKandung"`
	JumlahSaudaraTiri     string         `db:"jumlah_saudara_tiri" json:"jumlahSaudaraTiri"`
	Hobi                  string         `db:"hobi" json:"hobi"`
	CitaCita              string         `db:"cita_cita" json:"citaCita"`

	// Data ayah kandung
	NamaAyah               string         `db:"nama_ayah" json:"namaAyah"`
	StatusAyah             string         `db:"status_ayah" json:"statusAyah"`
	NIKAyah                string         `db:"nik_ayah" json:"nikAyah"`
	TahunLahirAyah         string         `db:"tahun_lahir_ayah" json:"tahunLahirAyah"`
	PendidikanAyah         string         `db:"pendidikan_ayah" json:"pendidikanAyah"`
	PekerjaanAyah          string         `db:"pekerjaan_ayah" json:"pekerjaanAyah"`
	PenghasilanAyah        string         `db:"penghasilan_ayah" json:"penghasilanAyah"`
	BerkebutuhanKhususAyah pq.StringArray `db:"berkebutuhan_khusus_ayah" json:"berkebutuhanKhususAyah"`

	// Data ibu kandung
	NamaIbu               string         `db:"nama_ibu" json:"namaIbu"`
	StatusIbu             string         `db:"status_ibu" json:"statusIbu"`
	NIKIbu                string         `db:"nik_ibu" json:"nikIbu"`
	TahunLahirIbu         string         `db:"tahun_lahir_ibu" json:"tahunLahirIbu"`
	PendidikanIbu         string         `db:"pendidikan_ibu" json:"pendidikanIbu"`
	PekerjaanIbu          string         `db:"pekerjaan_ibu" json:"pekerjaanIbu"`
	PenghasilanIbu        string         `db:"penghasilan_ibu" json:"penghasilanIbu"`
	BerkebutuhanKhususIbu pq.StringArray `db:"berkebutuhan_khusus_ibu" json:"berkebutuhanKhususIbu"`

	// Data wali
	NamaWali        string `db:"nama_wali" json:"namaWali"`
	NIKWali         string `db:"nik_wali" json:"nikWali"`
	TahunLahirWali  string `db:"tahun_lahir_wali" json:"tahunLahirWali"`
	PendidikanWali  string `db:"pendidikan_wali" json:"pendidikanWali"`
	PekerjaanWali   string `db:"pekerjaan_wali" json:"pekerjaanWali"`
	PenghasilanWali string `db:"penghasilan_wali" json:"penghasilanWali"`

	// Kontak
	NomorTeleponRumah string `db:"nomor_telepon_rumah" json:"nomorTeleponRumah"`
	NomorHP           string `db:"nomor_hp" json:"nomorHp"`
	Email             string `db:"email" json:"email"`

	StatusValidasi  ValidationStatus `db:"status_validasi" json:"statusValidasi"`
	CatatanValidasi *string          `db:"catatan_validasi" json:"catatanValidasi"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Normalize fills canonical defaults once at the storage boundary so
// consuming logic never has to guard against missing values.
func (r *StudentRecord) Normalize() {
	if r.BerkebutuhanKhusus == nil {
		r.BerkebutuhanKhusus = pq.StringArray{}
	}
	if r.BerkebutuhanKhususAyah == nil {
		r.BerkebutuhanKhususAyah = pq.StringArray{}
	}
	if r.BerkebutuhanKhususIbu == nil {
		r.BerkebutuhanKhususIbu = pq.StringArray{}
	}
	if !r.StatusValidasi.Valid() {
		r.StatusValidasi = StatusBelumDiverifikasi
	}
	if r.StatusValidasi != StatusResidu {
		r.CatatanValidasi = nil
	}
}

// TrackedFields lists the canonical form schema, in form order. The
// completeness scorer and the import header mapping are both driven by
// this list; tanggalRegistrasi and the validation fields are system
// managed and therefore not tracked.
var TrackedFields = []string{
	"namaLengkap", "jenisKelamin", "nisn", "nis", "nik", "noKk",
	"tempatLahir", "tanggalLahir", "noRegistrasiAktaLahir", "agama",
	"kewarganegaraan", "namaNegara", "berkebutuhanKhusus", "alamatJalan",
	"rt", "rw", "namaDusun", "namaKelurahanDesa", "kecamatan", "kodePos",
	"tempatTinggal", "modaTransportasi", "anakKeberapa", "statusAnak",
	"punyaKip", "uangMasuk", "sekolahAsal", "tinggiBadan", "beratBadan",
	"lingkarKepala", "jumlahSaudaraKandung", "jumlahSaudaraTiri", "hobi",
	"citaCita",
	"namaAyah", "statusAyah", "nikAyah", "tahunLahirAyah",
	"pendidikanAyah", "pekerjaanAyah", "penghasilanAyah", "berkebutuhanKhususAyah",
	"namaIbu", "statusIbu", "nikIbu", "tahunLahirIbu",
	"pendidikanIbu", "pekerjaanIbu", "penghasilanIbu", "berkebutuhanKhususIbu",
	"namaWali", "nikWali", "tahunLahirWali", "pendidikanWali",
	"pekerjaanWali", "penghasilanWali",
	"nomorTeleponRumah", "nomorHp", "email",
}

var scalarFields = map[string]func(*StudentRecord) *string{
	"namaLengkap":           func(r *StudentRecord) *string { return &r.NamaLengkap },
	"jenisKelamin":          func(r *StudentRecord) *string { return &r.JenisKelamin },
	"nisn":                  func(r *StudentRecord) *string { return &r.NISN },
	"nis":                   func(r *StudentRecord) *string { return &r.NIS },
	"nik":                   func(r *StudentRecord) *string { return &r.NIK },
	"noKk":                  func(r *StudentRecord) *string { return &r.NoKK },
	"tempatLahir":           func(r *StudentRecord) *string { return &r.TempatLahir },
	"tanggalLahir":          func(r *StudentRecord) *string { return &r.TanggalLahir },
	"noRegistrasiAktaLahir": func(r *StudentRecord) *string { return &r.NoRegistrasiAktaLahir },
	"agama":                 func(r *StudentRecord) *string { return &r.Agama },
	"kewarganegaraan":       func(r *StudentRecord) *string { return &r.Kewarganegaraan },
	"namaNegara":            func(r *StudentRecord) *string { return &r.NamaNegara },
	"alamatJalan":           func(r *StudentRecord) *string { return &r.AlamatJalan },
	"rt":                    func(r *StudentRecord) *string { return &r.RT },
	"rw":                    func(r *StudentRecord) *string { return &r.RW },
	"namaDusun":             func(r *StudentRecord) *string { return &r.NamaDusun },
	"namaKelurahanDesa":     func(r *StudentRecord) *string { return &r.NamaKelurahanDesa },
	"kecamatan":             func(r *StudentRecord) *string { return &r.Kecamatan },
	"kodePos":               func(r *StudentRecord) *string { return &r.KodePos },
	"tempatTinggal":         func(r *StudentRecord) *string { return &r.TempatTinggal },
	"modaTransportasi":      func(r *StudentRecord) *string { return &r.ModaTransportasi },
	"anakKeberapa":          func(r *StudentRecord) *string { return &r.AnakKeberapa },
	"statusAnak":            func(r *StudentRecord) *string { return &r.StatusAnak },
	"punyaKip":              func(r *StudentRecord) *string { return &r.PunyaKIP },
	"uangMasuk":             func(r *StudentRecord) *string { return &r.UangMasuk },
	"sekolahAsal":           func(r *StudentRecord) *string { return &r.SekolahAsal },
	"tinggiBadan":           func(r *StudentRecord) *string { return &r.TinggiBadan },
	"beratBadan":            func(r *StudentRecord) *string { return &r.BeratBadan },
	"lingkarKepala":         func(r *StudentRecord) *string { return &r.LingkarKepala },
	"jumlahSaudaraKandung":  func(r *StudentRecord) *string { return &r.JumlahSaudaraKandung },
	"jumlahSaudaraTiri":     func(r *StudentRecord) *string { return &r.JumlahSaudaraTiri },
	"hobi":                  func(r *StudentRecord) *string { return &r.Hobi },
	"citaCita":              func(r *StudentRecord) *string { return &r.CitaCita },
	"namaAyah":              func(r *StudentRecord) *string { return &r.NamaAyah },
	"statusAyah":            func(r *StudentRecord) *string { return &r.StatusAyah },
	"nikAyah":               func(r *StudentRecord) *string { return &r.NIKAyah },
	"tahunLahirAyah":        func(r *StudentRecord) *string { return &r.TahunLahirAyah },
	"pendidikanAyah":        func(r *StudentRecord) *string { return &r.PendidikanAyah },
	"pekerjaanAyah":         func(r *StudentRecord) *string { return &r.PekerjaanAyah },
	"penghasilanAyah":       func(r *StudentRecord) *string { return &r.PenghasilanAyah },
	"namaIbu":               func(r *StudentRecord) *string { return &r.NamaIbu },
	"statusIbu":             func(r *StudentRecord) *string { return &r.StatusIbu },
	"nikIbu":                func(r *StudentRecord) *string { return &r.NIKIbu },
	"tahunLahirIbu":         func(r *StudentRecord) *string { return &r.TahunLahirIbu },
	"pendidikanIbu":         func(r *StudentRecord) *string { return &r.PendidikanIbu },
	"pekerjaanIbu":          func(r *StudentRecord) *string { return &r.PekerjaanIbu },
	"penghasilanIbu":        func(r *StudentRecord) *string { return &r.PenghasilanIbu },
	"namaWali":              func(r *StudentRecord) *string { return &r.NamaWali },
	"nikWali":               func(r *StudentRecord) *string { return &r.NIKWali },
	"tahunLahirWali":        func(r *StudentRecord) *string { return &r.TahunLahirWali },
	"pendidikanWali":        func(r *StudentRecord) *string { return &r.PendidikanWali },
	"pekerjaanWali":         func(r *StudentRecord) *string { return &r.PekerjaanWali },
	"penghasilanWali":       func(r *StudentRecord) *string { return &r.PenghasilanWali },
	"nomorTeleponRumah":     func(r *StudentRecord) *string { return &r.NomorTeleponRumah },
	"nomorHp":               func(r *StudentRecord) *string { return &r.NomorHP },
	"email":                 func(r *StudentRecord) *string { return &r.Email },
}

var setFields = map[string]func(*StudentRecord) *pq.StringArray{
	"berkebutuhanKhusus":     func(r *StudentRecord) *pq.StringArray { return &r.BerkebutuhanKhusus },
	"berkebutuhanKhususAyah": func(r *StudentRecord) *pq.StringArray { return &r.BerkebutuhanKhususAyah },
	"berkebutuhanKhususIbu":  func(r *StudentRecord) *pq.StringArray { return &r.BerkebutuhanKhususIbu },
}

// ScalarField returns a pointer to the named scalar form field.
func (r *StudentRecord) ScalarField(name string) (*string, bool) {
	accessor, ok := scalarFields[name]
	if !ok {
		return nil, false
	}
	return accessor(r), true
}

// SetField returns a pointer to the named set-valued form field.
func (r *StudentRecord) SetField(name string) (*pq.StringArray, bool) {
	accessor, ok := setFields[name]
	if !ok {
		return nil, false
	}
	return accessor(r), true
}

// FieldFilled reports whether the named tracked field carries a value.
// Set-valued fields count only when non-empty; unknown names are empty.
func (r *StudentRecord) FieldFilled(name string) bool {
	if ptr, ok := r.ScalarField(name); ok {
		return *ptr != ""
	}
	if ptr, ok := r.SetField(name); ok {
		return len(*ptr) > 0
	}
	return false
}
