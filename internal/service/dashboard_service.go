package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sekolahku/siswa-admin-api/internal/dto"
	"github.com/sekolahku/siswa-admin-api/internal/models"
	appErrors "github.com/sekolahku/siswa-admin-api/pkg/errors"
)

type studentLister interface {
	ListAll(ctx context.Context) ([]models.StudentRecord, error)
}

const (
	statsCacheKey   = "dash:stats"
	reportsCacheKey = "dash:reports"
)

// incomeOrder fixes the display order of the penghasilan brackets the
// registration form offers.
var incomeOrder = []string{
	"< Rp. 500.000",
	"Rp. 500.000-Rp.999.999",
	"Rp. 1.000.000-Rp.1.999.999",
	"Rp.2.000.000-Rp.4.999.999",
	"Rp.5.000.000-Rp.20.000.000",
	"> Rp.20.000.000",
}

// lowIncomeBrackets marks a student as kurang mampu, judged on the
// father's income only.
var lowIncomeBrackets = map[string]bool{
	"< Rp. 500.000":          true,
	"Rp. 500.000-Rp.999.999": true,
}

var orphanOrder = []string{"Yatim Piatu", "Yatim", "Piatu", "Tidak"}

// DashboardService aggregates the collection into the stats and reports
// dashboards. Payloads are Redis-cached and rebuilt after any mutation.
type DashboardService struct {
	repo     studentLister
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewDashboardService constructs the dashboard service. Cache is
// optional.
func NewDashboardService(repo studentLister, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *DashboardService {
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{repo: repo, cache: cache, cacheTTL: cacheTTL, logger: logger, now: time.Now}
}

// Stats returns the overview dashboard and reports cache utilisation.
func (s *DashboardService) Stats(ctx context.Context) (*dto.StatsResponse, bool, error) {
	if s.cache.Enabled() {
		var cached dto.StatsResponse
		if hit, err := s.cache.Get(ctx, statsCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	stats := composeStats(records, s.now())
	s.persist(ctx, statsCacheKey, stats)
	return stats, false, nil
}

// Reports returns the reports dashboard aggregations.
func (s *DashboardService) Reports(ctx context.Context) (*dto.ReportsResponse, bool, error) {
	if s.cache.Enabled() {
		var cached dto.ReportsResponse
		if hit, err := s.cache.Get(ctx, reportsCacheKey, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}

	records, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load students")
	}
	reports := composeReports(records)
	s.persist(ctx, reportsCacheKey, reports)
	return reports, false, nil
}

func (s *DashboardService) persist(ctx context.Context, key string, value interface{}) {
	if !s.cache.Enabled() {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cacheTTL); err != nil {
		s.logger.Warn("dashboard cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func composeStats(records []models.StudentRecord, now time.Time) *dto.StatsResponse {
	startOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format("2006-01-02")

	stats := &dto.StatsResponse{Total: len(records)}
	var male, female int
	for i := range records {
		r := &records[i]
		switch r.StatusValidasi {
		case models.StatusValid:
			stats.Valid++
		case models.StatusResidu:
			stats.Residu++
		default:
			stats.BelumDiverifikasi++
		}
		switch r.JenisKelamin {
		case "Laki-laki":
			male++
		case "Perempuan":
			female++
		}
		if r.TanggalRegistrasi != "" && r.TanggalRegistrasi >= startOfMonth {
			stats.PendaftarBulanIni++
		}
	}
	stats.JenisKelamin = []dto.NameTotal{
		{Name: "Laki-laki", Total: male},
		{Name: "Perempuan", Total: female},
	}
	stats.StatusValidasi = []dto.NameTotal{
		{Name: string(models.StatusValid), Total: stats.Valid},
		{Name: string(models.StatusResidu), Total: stats.Residu},
		{Name: string(models.StatusBelumDiverifikasi), Total: stats.BelumDiverifikasi},
	}
	return stats
}

func composeReports(records []models.StudentRecord) *dto.ReportsResponse {
	districts := map[string]int{}
	villages := map[string]int{}
	occupations := map[string]int{}
	years := map[string]int{}
	incomes := map[string]int{}
	orphans := map[string]int{}
	buckets := map[models.CompletenessBucket]int{}
	var withKIP, underprivileged int

	for i := range records {
		r := &records[i]

		district := r.Kecamatan
		if district == "" {
			district = "Tidak Diketahui"
		}
		districts[district]++

		village := r.NamaKelurahanDesa
		if village == "" {
			village = "Tidak Diketahui"
		}
		villages[village]++

		if r.PekerjaanAyah != "" && r.PekerjaanAyah != "Tidak Bekerja" {
			occupations[r.PekerjaanAyah]++
		}
		if r.PekerjaanIbu != "" && r.PekerjaanIbu != "Tidak Bekerja" {
			occupations[r.PekerjaanIbu]++
		}

		if len(r.TanggalRegistrasi) >= 4 {
			years[r.TanggalRegistrasi[:4]]++
		}

		if r.PunyaKIP == "Ya" {
			withKIP++
		}

		status := r.StatusAnak
		if status == "" {
			status = "Tidak"
		}
		orphans[status]++

		if lowIncomeBrackets[r.PenghasilanAyah] {
			underprivileged++
		}
		if r.PenghasilanAyah != "" && r.PenghasilanAyah != "Tidak Berpenghasilan" {
			incomes[r.PenghasilanAyah]++
		}

		buckets[CompletenessBucketFor(Completeness(r))]++
	}

	return &dto.ReportsResponse{
		Kecamatan:         sortedByTotal(districts, 0),
		KelurahanDesa:     sortedByTotal(villages, 0),
		PekerjaanOrangTua: sortedByTotal(occupations, 7),
		TrenRegistrasi:    sortedByName(years),
		KepemilikanKIP: []dto.NameTotal{
			{Name: "Punya KIP", Total: withKIP},
			{Name: "Tidak Punya KIP", Total: len(records) - withKIP},
		},
		StatusYatimPiatu: orderedCounts(orphans, orphanOrder),
		KurangMampu: []dto.NameTotal{
			{Name: "Kurang Mampu", Total: underprivileged},
			{Name: "Mampu", Total: len(records) - underprivileged},
		},
		PenghasilanAyah: orderedCounts(incomes, incomeOrder),
		Kelengkapan: []dto.NameTotal{
			{Name: string(models.KelengkapanLengkap), Total: buckets[models.KelengkapanLengkap]},
			{Name: string(models.KelengkapanCukup), Total: buckets[models.KelengkapanCukup]},
			{Name: string(models.KelengkapanKurang), Total: buckets[models.KelengkapanKurang]},
		},
	}
}

func sortedByTotal(counts map[string]int, limit int) []dto.NameTotal {
	out := make([]dto.NameTotal, 0, len(counts))
	for name, total := range counts {
		out = append(out, dto.NameTotal{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Name < out[j].Name
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func sortedByName(counts map[string]int) []dto.NameTotal {
	out := make([]dto.NameTotal, 0, len(counts))
	for name, total := range counts {
		out = append(out, dto.NameTotal{Name: name, Total: total})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// orderedCounts keeps only known labels, in their fixed display order.
func orderedCounts(counts map[string]int, order []string) []dto.NameTotal {
	out := make([]dto.NameTotal, 0, len(order))
	for _, name := range order {
		if total, ok := counts[name]; ok {
			out = append(out, dto.NameTotal{Name: name, Total: total})
		}
	}
	return out
}
