package diagnosing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/internal/usecases/refining"
)

func company(id, name string) domain.Contact {
	return domain.Contact{ID: id, Type: string(domain.ContactTypeCompany), Name: name}
}

func person(id, name, parentCompanyID string) domain.Contact {
	return domain.Contact{ID: id, Type: string(domain.ContactTypePerson), Name: name, ParentCompanyID: parentCompanyID}
}

func TestResolve(t *testing.T) {
	registry := map[string]domain.Contact{
		"c1": company("c1", "Acme"),
		"p1": person("p1", "Maria", "c1"),
		"p2": person("p2", "João", ""),
		"p3": person("p3", "Bruna", "c404"),
		"p4": person("p4", "Rui", "p1"),
	}

	cases := []struct {
		name     string
		clientID string
		want     domain.ClientResolution
	}{
		{name: "referência direta a empresa", clientID: "c1", want: domain.ResolutionCompany},
		{name: "pessoa com empresa-mãe cadastrada", clientID: "p1", want: domain.ResolutionPerson},
		{name: "pessoa sem empresa-mãe", clientID: "p2", want: domain.ResolutionPersonMissingCompany},
		{name: "empresa-mãe inexistente no cadastro", clientID: "p3", want: domain.ResolutionPersonMissingCompany},
		{name: "empresa-mãe que não é empresa", clientID: "p4", want: domain.ResolutionPersonMissingCompany},
		{name: "referência fora do cadastro", clientID: "x9", want: domain.ResolutionUnknown},
		{name: "referência vazia", clientID: "", want: domain.ResolutionUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Resolve(tc.clientID, registry))
		})
	}
}

func setupService(t *testing.T, interactions []domain.Interaction, contacts []domain.Contact) (*Service, *snapshot.Store) {
	t.Helper()

	silver := snapshot.NewStore(t.TempDir())
	require.NoError(t, snapshot.WriteTable(silver, refining.TableInteractions, "20251126", interactions))
	require.NoError(t, snapshot.WriteTable(silver, refining.TableContacts, "20251126", contacts))

	gold := snapshot.NewStore(t.TempDir())
	return NewService(silver, gold), gold
}

func TestService_Run(t *testing.T) {
	now := time.Date(2025, 11, 3, 10, 0, 0, 0, time.UTC)
	interactions := []domain.Interaction{
		{ID: "i1", ClientID: "c1", Timestamp: now},
		{ID: "i2", ClientID: "c1", Timestamp: now},
		{ID: "i3", ClientID: "p1", Timestamp: now},
		{ID: "i4", ClientID: "p2", Timestamp: now},
		{ID: "i5", ClientID: "x9", Timestamp: now},
	}
	contacts := []domain.Contact{
		company("c1", "Acme"),
		person("p1", "Maria", "c1"),
		person("p2", "João", ""),
	}

	service, gold := setupService(t, interactions, contacts)

	report, err := service.Run("20251126")
	require.NoError(t, err)

	assert.Equal(t, 5, report.TotalInteractions)
	assert.Equal(t, 2, report.CompanyLinked)
	assert.Equal(t, 1, report.PersonLinked)
	assert.Equal(t, 1, report.PersonMissingCompany)
	assert.Equal(t, 1, report.UnknownReference)
	assert.Equal(t, 2, report.Unresolved())
	assert.Equal(t, 40.0, report.CompanyLinkedPct)
	assert.Equal(t, 40.0, report.UnresolvedPct)

	// O relatório gravado precisa bater com o retornado.
	stored, err := gold.LatestLinkageReport()
	require.NoError(t, err)
	assert.Equal(t, report, stored)

	manifest, err := gold.LatestManifest(domain.LayerDiagnostic)
	require.NoError(t, err)
	assert.Equal(t, "20251126", manifest.RunDate)
}

func TestService_Run_SemInteracoesNaoDividePorZero(t *testing.T) {
	service, gold := setupService(t, nil, nil)

	report, err := service.Run("20251126")
	require.NoError(t, err)

	assert.Equal(t, 0, report.TotalInteractions)
	assert.Equal(t, 0.0, report.CompanyLinkedPct)
	assert.Equal(t, 0.0, report.UnresolvedPct)

	_, err = gold.LatestLinkageReport()
	assert.NoError(t, err)
}
