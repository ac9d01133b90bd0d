package reporting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/internal/usecases/aggregating"
)

func setupService(t *testing.T) (*Service, *snapshot.Store) {
	t.Helper()

	gold := snapshot.NewStore(t.TempDir())

	volumetrics := []domain.VolumetricsRow{
		{ManagerID: "m1", ClientID: "c1", TotalInteractions: 10},
		{ManagerID: "m1", ClientID: "c2", TotalInteractions: 4},
		{ManagerID: "m2", ClientID: "c3", TotalInteractions: 7},
	}
	require.NoError(t, snapshot.WriteTable(gold, aggregating.TableVolumetrics, "20251126", volumetrics))
	require.NoError(t, snapshot.WriteTable(gold, aggregating.TableFriction, "20251126", []domain.FrictionRow{}))
	require.NoError(t, snapshot.WriteTable(gold, aggregating.TableTemporalHeat, "20251126", make([]domain.TemporalHeatRow, domain.TemporalHeatCells)))

	return NewService(gold), gold
}

func TestService_Volumetrics(t *testing.T) {
	service, _ := setupService(t)

	view, err := service.Volumetrics(0)
	require.NoError(t, err)
	assert.Equal(t, aggregating.TableVolumetrics, view.Table)
	assert.Equal(t, "20251126", view.RunDate)
	require.Len(t, view.Rows, 3)
	assert.Equal(t, "m1", view.Rows[0]["manager_id"])

	// limit corta o resultado; valor maior que a tabela não corta nada.
	limited, err := service.Volumetrics(2)
	require.NoError(t, err)
	assert.Len(t, limited.Rows, 2)

	wide, err := service.Volumetrics(50)
	require.NoError(t, err)
	assert.Len(t, wide.Rows, 3)
}

func TestService_Volumetrics_SempreServeOSnapshotMaisRecente(t *testing.T) {
	service, gold := setupService(t)

	require.NoError(t, snapshot.WriteTable(gold, aggregating.TableVolumetrics, "20251127", []domain.VolumetricsRow{
		{ManagerID: "m9", ClientID: "c9", TotalInteractions: 1},
	}))

	view, err := service.Volumetrics(0)
	require.NoError(t, err)
	assert.Equal(t, "20251127", view.RunDate)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "m9", view.Rows[0]["manager_id"])
}

func TestService_Summarize(t *testing.T) {
	service, gold := setupService(t)

	require.NoError(t, gold.WriteManifest(&domain.RunManifest{
		Layer:       domain.LayerGold,
		RunDate:     "20251126",
		GeneratedAt: time.Now(),
		Counts:      domain.RunCounts{RecordsRead: 195234, MalformedSkipped: 0, NoiseTotal: 68889, Kept: 126345},
	}))

	summary, err := service.Summarize()
	require.NoError(t, err)
	require.Len(t, summary.Tables, 3)
	assert.Equal(t, 3, summary.Tables[0].Rows)
	assert.NotZero(t, summary.Tables[0].Columns)
	assert.Equal(t, domain.TemporalHeatCells, summary.Tables[2].Rows)
	require.NotNil(t, summary.Counts)
	assert.Equal(t, 126345, summary.Counts.Kept)
	assert.Equal(t, "20251126", summary.Manifest)
}

func TestService_Summarize_SemManifestoOmiteContadores(t *testing.T) {
	service, _ := setupService(t)

	summary, err := service.Summarize()
	require.NoError(t, err)
	assert.Nil(t, summary.Counts)
}

func TestService_Linkage(t *testing.T) {
	service, gold := setupService(t)

	require.NoError(t, gold.WriteLinkageReport(&domain.LinkageReport{
		RunDate:           "20251126",
		TotalInteractions: 100,
		CompanyLinked:     80,
		CompanyLinkedPct:  80.0,
	}))

	report, err := service.Linkage()
	require.NoError(t, err)
	assert.Equal(t, 80, report.CompanyLinked)
}

func TestService_SemSnapshotRetornaErro(t *testing.T) {
	service := NewService(snapshot.NewStore(t.TempDir()))

	_, err := service.Volumetrics(0)
	assert.Error(t, err)
}
