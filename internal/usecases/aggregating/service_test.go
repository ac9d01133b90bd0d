package aggregating

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/almahq/crm-analytics-api/infrastructure/bronze"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/internal/usecases/refining"
)

func setupService(t *testing.T, interactions []domain.Interaction, contacts []domain.Contact, users string) (*Service, *snapshot.Store) {
	t.Helper()

	silver := snapshot.NewStore(t.TempDir())
	require.NoError(t, snapshot.WriteTable(silver, refining.TableInteractions, "20251126", interactions))
	require.NoError(t, snapshot.WriteTable(silver, refining.TableContacts, "20251126", contacts))
	require.NoError(t, silver.WriteManifest(&domain.RunManifest{
		Layer:   domain.LayerSilver,
		RunDate: "20251126",
		Counts: domain.RunCounts{
			RecordsRead:      len(interactions),
			MalformedSkipped: 0,
			Kept:             len(interactions),
		},
		Tables: []string{refining.TableInteractions, refining.TableContacts, refining.TableDeals},
	}))

	bronzeDir := t.TempDir()
	if users != "" {
		require.NoError(t, os.WriteFile(filepath.Join(bronzeDir, bronze.UsersFile), []byte(users), 0o644))
	}

	gold := snapshot.NewStore(t.TempDir())
	return NewService(silver, gold, bronze.NewSource(bronzeDir)), gold
}

func TestService_Run(t *testing.T) {
	interactions := []domain.Interaction{
		{ID: "i1", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z"), EmailSubject: "Proposta comercial"},
		{ID: "i2", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-10T10:00:00Z"), EmailSubject: "Re: Proposta comercial", Content: "problema urgente no faturamento"},
		{ID: "i3", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-17T10:00:00Z"), EmailSubject: "Lida: Proposta comercial"},
		{ID: "i4", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-17T11:00:00Z"), EmailSubject: "Entregue: Proposta comercial"},
		{ID: "i5", ManagerID: "m2", ClientID: "c2", Timestamp: mustTime(t, "2025-11-18T10:00:00Z"), EmailSubject: "Novidades", EmailRecipients: "a@x.com;b@x.com;c@x.com;d@x.com"},
	}
	contacts := []domain.Contact{
		{ID: "c1", Type: string(domain.ContactTypeCompany), Name: "Acme"},
		{ID: "c2", Type: string(domain.ContactTypeCompany), Name: "Globex"},
	}

	service, gold := setupService(t, interactions, contacts, `{"id":"m1","name":"Ana"}
`)

	manifest, err := service.Run("20251126")
	require.NoError(t, err)

	assert.Equal(t, domain.LayerGold, manifest.Layer)
	assert.Equal(t, 5, manifest.Counts.RecordsRead)
	assert.Equal(t, 3, manifest.Counts.NoiseTotal)
	assert.Equal(t, 1, manifest.Counts.ReadReceipts)
	assert.Equal(t, 1, manifest.Counts.DeliveryReceipts)
	assert.Equal(t, 1, manifest.Counts.MassEmails)
	assert.Equal(t, 2, manifest.Counts.Kept)

	// A soma da reconciliação precisa fechar exatamente.
	assert.Equal(t,
		manifest.Counts.RecordsRead-manifest.Counts.MalformedSkipped,
		manifest.Counts.NoiseTotal+manifest.Counts.Kept,
	)

	volumetrics, runDate, err := snapshot.ReadLatest[domain.VolumetricsRow](gold, TableVolumetrics)
	require.NoError(t, err)
	assert.Equal(t, "20251126", runDate)
	require.Len(t, volumetrics, 1)
	assert.Equal(t, "m1", volumetrics[0].ManagerID)
	assert.Equal(t, "Ana", volumetrics[0].ManagerName)
	assert.Equal(t, "Acme", volumetrics[0].ClientName)
	assert.Equal(t, 2, volumetrics[0].TotalInteractions)

	friction, _, err := snapshot.ReadLatest[domain.FrictionRow](gold, TableFriction)
	require.NoError(t, err)
	require.Len(t, friction, 1)
	assert.Equal(t, "i2", friction[0].InteractionID)
	assert.Equal(t, 1, friction[0].UrgencyScore)
	assert.Equal(t, 1, friction[0].FailureScore)
	assert.Equal(t, 0, friction[0].EscalationScore)

	heat, _, err := snapshot.ReadLatest[domain.TemporalHeatRow](gold, TableTemporalHeat)
	require.NoError(t, err)
	assert.Len(t, heat, domain.TemporalHeatCells)
}

func TestService_Run_SemUsuariosResolveNomeVazio(t *testing.T) {
	interactions := []domain.Interaction{
		{ID: "i1", ManagerID: "m9", ClientID: "c9", Timestamp: mustTime(t, "2025-11-03T10:00:00Z"), EmailSubject: "Kickoff"},
	}

	service, gold := setupService(t, interactions, nil, "")

	_, err := service.Run("20251126")
	require.NoError(t, err)

	volumetrics, _, err := snapshot.ReadLatest[domain.VolumetricsRow](gold, TableVolumetrics)
	require.NoError(t, err)
	require.Len(t, volumetrics, 1)
	assert.Equal(t, "", volumetrics[0].ManagerName)
	assert.Equal(t, "", volumetrics[0].ClientName)
}

func TestService_Run_EntradaVaziaMantemGradeDensa(t *testing.T) {
	service, gold := setupService(t, nil, nil, "")

	manifest, err := service.Run("20251126")
	require.NoError(t, err)
	assert.Equal(t, 0, manifest.Counts.Kept)

	// A grade de calor temporal tem sempre 168 células, zeradas na ausência
	// de interações.
	heat, _, err := snapshot.ReadLatest[domain.TemporalHeatRow](gold, TableTemporalHeat)
	require.NoError(t, err)
	require.Len(t, heat, domain.TemporalHeatCells)
	assert.Equal(t, 0, heat[0].DayOfWeek)
	assert.Equal(t, 0, heat[0].Hour)
	assert.Equal(t, 6, heat[domain.TemporalHeatCells-1].DayOfWeek)
	assert.Equal(t, 23, heat[domain.TemporalHeatCells-1].Hour)
}

func TestService_Run_SemSnapshotSilverFalha(t *testing.T) {
	silver := snapshot.NewStore(t.TempDir())
	gold := snapshot.NewStore(t.TempDir())
	service := NewService(silver, gold, bronze.NewSource(t.TempDir()))

	_, err := service.Run("20251126")
	assert.Error(t, err)
}
