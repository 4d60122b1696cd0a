package models

// FieldTitle pairs a canonical field key with the display title used on
// the form, exported sheets and the import template.
type FieldTitle struct {
	Key   string
	Title string
}

// FieldTitles lists every tracked field with its display title, in form
// order. Spreadsheet exports and the import header mapping are both
// driven by this list.
var FieldTitles = []FieldTitle{
	{"namaLengkap", "Nama Lengkap"},
	{"jenisKelamin", "Jenis Kelamin"},
	{"nisn", "NISN"},
	{"nis", "NIS"},
	{"nik", "NIK"},
	{"noKk", "No. Kartu Keluarga"},
	{"tempatLahir", "Tempat Lahir"},
	{"tanggalLahir", "Tanggal Lahir"},
	{"noRegistrasiAktaLahir", "No. Registasi Akta Lahir"},
	{"agama", "Agama & Kepercayaan"},
	{"kewarganegaraan", "Kewarganegaraan"},
	{"namaNegara", "Nama Negara"},
	{"berkebutuhanKhusus", "Berkebutuhan Khusus Siswa"},
	{"alamatJalan", "Alamat Jalan"},
	{"rt", "RT"},
	{"rw", "RW"},
	{"namaDusun", "Nama Dusun"},
	{"namaKelurahanDesa", "Nama Kelurahan/Desa"},
	{"kecamatan", "Kecamatan"},
	{"kodePos", "Kode Pos"},
	{"tempatTinggal", "Tempat Tinggal"},
	{"modaTransportasi", "Moda Transportasi"},
	{"anakKeberapa", "Anak Ke-berapa"},
	{"statusAnak", "Status Yatim/Piatu"},
	{"punyaKip", "Punya KIP"},
	{"uangMasuk", "Uang Masuk"},
	{"sekolahAsal", "Asal Sekolah SMP/MTs"},
	{"tinggiBadan", "Tinggi Badan (cm)"},
	{"beratBadan", "Berat Badan (kg)"},
	{"lingkarKepala", "Lingkar Kepala (cm)"},
	{"jumlahSaudaraKandung", "Jumlah Saudara Kandung"},
	{"jumlahSaudaraTiri", "Jumlah Saudara Tiri"},
	{"hobi", "Hobi"},
	{"citaCita", "Cita-cita"},
	{"namaAyah", "Nama Ayah Kandung"},
	{"statusAyah", "Status Ayah"},
	{"nikAyah", "NIK Ayah"},
	{"tahunLahirAyah", "Tahun Lahir Ayah"},
	{"pendidikanAyah", "Pendidikan Terakhir Ayah"},
	{"pekerjaanAyah", "Pekerjaan Ayah"},
	{"penghasilanAyah", "Penghasilan Bulanan Ayah"},
	{"berkebutuhanKhususAyah", "Berkebutuhan Khusus Ayah"},
	{"namaIbu", "Nama Ibu Kandung"},
	{"statusIbu", "Status Ibu"},
	{"nikIbu", "NIK Ibu"},
	{"tahunLahirIbu", "Tahun Lahir Ibu"},
	{"pendidikanIbu", "Pendidikan Terakhir Ibu"},
	{"pekerjaanIbu", "Pekerjaan Ibu"},
	{"penghasilanIbu", "Penghasilan Bulanan Ibu"},
	{"berkebutuhanKhususIbu", "Berkebutuhan Khusus Ibu"},
	{"namaWali", "Nama Wali"},
	{"nikWali", "NIK Wali"},
	{"tahunLahirWali", "Tahun Lahir Wali"},
	{"pendidikanWali", "Pendidikan Terakhir Wali"},
	{"pekerjaanWali", "Pekerjaan Wali"},
	{"penghasilanWali", "Penghasilan Bulanan Wali"},
	{"nomorTeleponRumah", "Nomor Telepon Rumah"},
	{"nomorHp", "Nomor HP"},
	{"email", "Email"},
}
