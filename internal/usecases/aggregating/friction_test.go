package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/almahq/crm-analytics-api/internal/domain"
)

func TestFrictionFlags(t *testing.T) {
	cases := []struct {
		name           string
		subject        string
		content        string
		wantUrgency    int
		wantFailure    int
		wantEscalation int
	}{
		{
			name:        "urgência no assunto",
			subject:     "URGENTE: renovação do contrato",
			wantUrgency: 1,
		},
		{
			name:        "falha no conteúdo",
			content:     "o sistema não funciona desde ontem",
			wantFailure: 1,
		},
		{
			name:           "escalonamento sem distinção de caixa",
			content:        "quero falar com o GERENTE",
			wantEscalation: 1,
		},
		{
			name:           "sinais independentes acendem juntos",
			subject:        "Problema grave",
			content:        "vou acionar o advogado",
			wantUrgency:    1,
			wantFailure:    1,
			wantEscalation: 1,
		},
		{
			name:        "palavra dividida entre assunto e conteúdo não casa",
			subject:     "urgen",
			content:     "te",
			wantUrgency: 0,
		},
		{name: "texto neutro não acende nada", content: "obrigado pelo retorno"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			urgency, failure, escalation := frictionFlags(domain.Interaction{
				EmailSubject: tc.subject,
				Content:      tc.content,
			})

			assert.Equal(t, tc.wantUrgency, urgency)
			assert.Equal(t, tc.wantFailure, failure)
			assert.Equal(t, tc.wantEscalation, escalation)
		})
	}
}

func TestBuildFriction_ExcluiLinhasSemSinal(t *testing.T) {
	rows := buildFriction([]domain.Interaction{
		{ID: "i1", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-03T10:00:00Z"), Content: "reunião de alinhamento"},
		{ID: "i2", ManagerID: "m1", ClientID: "c1", Timestamp: mustTime(t, "2025-11-04T10:00:00Z"), EmailSubject: "Reclamação do faturamento"},
	})

	require.Len(t, rows, 1)
	assert.Equal(t, "i2", rows[0].InteractionID)
	assert.True(t, rows[0].HasSignal())
	assert.Equal(t, 1, rows[0].FailureScore)
}
