package aggregating

import (
	"strings"

	"github.com/almahq/crm-analytics-api/internal/domain"
)

// Vocabulário das heurísticas de atrito, avaliado por substring sem
// distinção de maiúsculas sobre assunto+conteúdo concatenados.
var (
	urgencyKeywords    = []string{"urgente", "prioridade", "asap", "pra ontem", "grave", "emergência"}
	failureKeywords    = []string{"erro", "problema", "falha", "não funciona", "reclamação", "defeito"}
	escalationKeywords = []string{"gerente", "diretor", "supervisor", "advogado", "presidente", "ceo"}
)

// frictionFlags avalia os três sinais de atrito de forma independente.
func frictionFlags(interaction domain.Interaction) (urgency, failure, escalation int) {
	text := strings.ToLower(interaction.EmailSubject + " " + interaction.Content)

	urgency = matchAny(text, urgencyKeywords)
	failure = matchAny(text, failureKeywords)
	escalation = matchAny(text, escalationKeywords)
	return urgency, failure, escalation
}

func matchAny(text string, keywords []string) int {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return 1
		}
	}
	return 0
}

// buildFriction monta a visão de heurísticas de atrito: uma linha por
// interação (já sem ruído) que acendeu pelo menos um sinal. Linhas com os
// três scores zerados ficam de fora da tabela.
func buildFriction(interactions []domain.Interaction) []domain.FrictionRow {
	rows := make([]domain.FrictionRow, 0)
	for _, interaction := range interactions {
		urgency, failure, escalation := frictionFlags(interaction)
		if urgency+failure+escalation == 0 {
			continue
		}

		rows = append(rows, domain.FrictionRow{
			InteractionID:   interaction.ID,
			ManagerID:       interaction.ManagerID,
			ClientID:        interaction.ClientID,
			Timestamp:       interaction.Timestamp,
			UrgencyScore:    urgency,
			FailureScore:    failure,
			EscalationScore: escalation,
		})
	}

	return rows
}
