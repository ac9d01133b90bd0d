package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/almahq/crm-analytics-api/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestBuildVolumetrics_VelocidadeComPisoDeUmaSemana(t *testing.T) {
	// Uma única interação: janela zero, piso de 1 semana, velocidade = 1.
	rows := buildVolumetrics([]domain.Interaction{
		{ID: "i1", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z")},
	}, nil, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, 1.0, rows[0].InteractionVelocity)
}

func TestBuildVolumetrics_VelocidadeSobreJanelaObservada(t *testing.T) {
	// 4 interações em 2 semanas exatas: velocidade 2.0.
	rows := buildVolumetrics([]domain.Interaction{
		{ID: "i1", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z")},
		{ID: "i2", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-08T10:00:00Z")},
		{ID: "i3", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-12T10:00:00Z")},
		{ID: "i4", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-17T10:00:00Z")},
	}, nil, nil)

	require.Len(t, rows, 1)
	assert.Equal(t, 2.0, rows[0].InteractionVelocity)
}

func TestBuildVolumetrics_ManagerLoadAtravessaClientes(t *testing.T) {
	// m1 tem 3 interações em 2 clientes: carga 1.5 nas duas linhas.
	rows := buildVolumetrics([]domain.Interaction{
		{ID: "i1", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z")},
		{ID: "i2", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-04T10:00:00Z")},
		{ID: "i3", ManagerID: "m1", ClientID: "c2", Timestamp: mustTime(t, "2025-11-05T10:00:00Z")},
	}, nil, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, 1.5, rows[0].ManagerLoad)
	assert.Equal(t, 1.5, rows[1].ManagerLoad)
}

func TestBuildVolumetrics_NeedinessProtegida(t *testing.T) {
	withValue := buildVolumetrics([]domain.Interaction{
		{ID: "i1", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z"), DealValue: 1000},
		{ID: "i2", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-04T10:00:00Z")},
	}, nil, nil)

	require.Len(t, withValue, 1)
	require.NotNil(t, withValue[0].NeedinessRatio)
	assert.Equal(t, 0.002, *withValue[0].NeedinessRatio)

	// Sem valor de negócio o índice fica nulo, nunca divisão por zero.
	withoutValue := buildVolumetrics([]domain.Interaction{
		{ID: "i1", ManagerID: "m2", ClientID: "c2", Timestamp: mustTime(t, "2025-11-03T10:00:00Z")},
	}, nil, nil)

	require.Len(t, withoutValue, 1)
	assert.Nil(t, withoutValue[0].NeedinessRatio)
}

func TestBuildVolumetrics_ThreadsLongos(t *testing.T) {
	rows := buildVolumetrics([]domain.Interaction{
		{ID: "i1", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z"), EmailSubject: "Proposta comercial"},
		{ID: "i2", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-04T10:00:00Z"), EmailSubject: "Re: Proposta comercial"},
		{ID: "i3", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-05T10:00:00Z"), EmailSubject: "RE: Re: proposta COMERCIAL"},
		{ID: "i4", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-06T10:00:00Z"), EmailSubject: "Fwd: Contrato"},
		{ID: "i5", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-07T10:00:00Z"), EmailSubject: ""},
		{ID: "i6", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-08T10:00:00Z"), EmailSubject: ""},
		{ID: "i7", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-09T10:00:00Z"), EmailSubject: "Re:"},
	}, nil, nil)

	require.Len(t, rows, 1)
	// Só "proposta comercial" atinge 3 interações; assuntos vazios (mesmo
	// após remover os prefixos) não formam thread.
	assert.Equal(t, 1, rows[0].LongThreadCount)
}

func TestThreadKey(t *testing.T) {
	cases := []struct {
		name    string
		subject string
		want    string
	}{
		{name: "assunto simples em minúsculas", subject: "Proposta Comercial", want: "proposta comercial"},
		{name: "prefixo de resposta removido", subject: "Re: Proposta", want: "proposta"},
		{name: "prefixos empilhados removidos", subject: "FW: RES: Enc: Proposta", want: "proposta"},
		{name: "prefixo sem espaço", subject: "re:proposta", want: "proposta"},
		{name: "só prefixo vira vazio", subject: "Re:", want: ""},
		{name: "vazio permanece vazio", subject: "", want: ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, threadKey(tc.subject))
		})
	}
}

func TestBuildVolumetrics_OrdenacaoEstavel(t *testing.T) {
	rows := buildVolumetrics([]domain.Interaction{
		{ID: "i1", ManagerID: "m2", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z")},
		{ID: "i2", ManagerID: "m1", ClientID: "c2", Timestamp: mustTime(t, "2025-11-03T10:00:00Z")},
		{ID: "i3", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z")},
	}, nil, nil)

	require.Len(t, rows, 3)
	assert.Equal(t, "m1", rows[0].ManagerID)
	assert.Equal(t, "c1", rows[0].ClientID)
	assert.Equal(t, "m1", rows[1].ManagerID)
	assert.Equal(t, "c2", rows[1].ClientID)
	assert.Equal(t, "m2", rows[2].ManagerID)
}
