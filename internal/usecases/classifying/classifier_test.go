package classifying

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/almahq/crm-analytics-api/internal/domain"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		interaction domain.Interaction
		wantNoise   bool
		wantReason  domain.NoiseReason
	}{
		{
			name:        "Confirmação de leitura em português",
			interaction: domain.Interaction{EmailSubject: "Lida: Proposta enviada", EmailRecipients: "a@x.com"},
			wantNoise:   true,
			wantReason:  domain.NoiseReasonReadReceipt,
		},
		{
			name:        "Confirmação de leitura em inglês",
			interaction: domain.Interaction{EmailSubject: "Read: Quarterly review"},
			wantNoise:   true,
			wantReason:  domain.NoiseReasonReadReceipt,
		},
		{
			name:        "Prefixo é sensível a maiúsculas",
			interaction: domain.Interaction{EmailSubject: "lida: proposta"},
			wantNoise:   false,
			wantReason:  domain.NoiseReasonNone,
		},
		{
			name:        "Prefixo no meio do assunto não casa",
			interaction: domain.Interaction{EmailSubject: "RES: Lida: Proposta"},
			wantNoise:   false,
			wantReason:  domain.NoiseReasonNone,
		},
		{
			name:        "Confirmação de entrega pelo assunto",
			interaction: domain.Interaction{EmailSubject: "Entregue: Orçamento"},
			wantNoise:   true,
			wantReason:  domain.NoiseReasonDeliveryReceipt,
		},
		{
			name:        "Confirmação de entrega em inglês",
			interaction: domain.Interaction{EmailSubject: "Delivered: Budget"},
			wantNoise:   true,
			wantReason:  domain.NoiseReasonDeliveryReceipt,
		},
		{
			name: "Confirmação de entrega por título e conteúdo",
			interaction: domain.Interaction{
				Title:   "E-mail recebido.",
				Content: "Para: cliente@x.com — sua mensagem foi entregue ao destinatário.",
			},
			wantNoise:  true,
			wantReason: domain.NoiseReasonDeliveryReceipt,
		},
		{
			name:        "Título certo sem o conteúdo de entrega não casa",
			interaction: domain.Interaction{Title: "E-mail recebido.", Content: "obrigado pelo contato"},
			wantNoise:   false,
			wantReason:  domain.NoiseReasonNone,
		},
		{
			name:        "Exatamente 3 delimitadores não é disparo em massa",
			interaction: domain.Interaction{EmailRecipients: "a@x.com;b@x.com;c@x.com;"},
			wantNoise:   false,
			wantReason:  domain.NoiseReasonNone,
		},
		{
			name:        "4 delimitadores é disparo em massa",
			interaction: domain.Interaction{EmailRecipients: "a@x.com;b@x.com;c@x.com;d@x.com;"},
			wantNoise:   true,
			wantReason:  domain.NoiseReasonMassEmail,
		},
		{
			name: "Disparo em massa vence mesmo com palavras de urgência no conteúdo",
			interaction: domain.Interaction{
				EmailSubject:    "Orçamento urgente",
				EmailRecipients: "a@x.com;b@x.com;c@x.com;d@x.com",
				Content:         "problema grave",
			},
			wantNoise:  true,
			wantReason: domain.NoiseReasonMassEmail,
		},
		{
			name: "Leitura tem precedência sobre entrega e massa",
			interaction: domain.Interaction{
				EmailSubject:    "Lida: Entregue: tudo junto",
				EmailRecipients: strings.Repeat("x@x.com;", 10),
				Title:           "E-mail recebido.",
				Content:         "sua mensagem foi entregue",
			},
			wantNoise:  true,
			wantReason: domain.NoiseReasonReadReceipt,
		},
		{
			name:        "Campos vazios não casam com nenhuma regra",
			interaction: domain.Interaction{},
			wantNoise:   false,
			wantReason:  domain.NoiseReasonNone,
		},
		{
			name:        "Interação comum não é ruído",
			interaction: domain.Interaction{EmailSubject: "Proposta comercial", Content: "segue em anexo"},
			wantNoise:   false,
			wantReason:  domain.NoiseReasonNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.interaction)
			assert.Equal(t, tt.wantNoise, got.IsNoise)
			assert.Equal(t, tt.wantReason, got.Reason)
		})
	}
}

// A classificação atribui exatamente uma razão: a primeira regra que casa.
func TestClassify_UmaUnicaRazao(t *testing.T) {
	interaction := domain.Interaction{
		EmailSubject:    "Entregue: disparo",
		EmailRecipients: "a;b;c;d;e;f",
	}

	got := Classify(interaction)
	assert.True(t, got.IsNoise)
	assert.Equal(t, domain.NoiseReasonDeliveryReceipt, got.Reason)
}
