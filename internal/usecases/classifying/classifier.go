// Package classifying separa ruído operacional (confirmações de leitura e
// entrega, disparos em massa) das interações reais do CRM.
package classifying

import (
	"strings"

	"github.com/almahq/crm-analytics-api/internal/domain"
)

// Prefixos de assunto gerados pelos clientes de e-mail em português e
// inglês. A comparação é sensível a maiúsculas: é assim que os clientes
// de e-mail escrevem.
var (
	readReceiptPrefixes     = []string{"Lida:", "Read:"}
	deliveryReceiptPrefixes = []string{"Entregue:", "Delivered:"}
)

const (
	deliveryReceiptTitle   = "E-mail recebido."
	deliveryReceiptContent = "sua mensagem foi entregue"

	// Mais de 3 delimitadores ";" na lista de destinatários significa 4 ou
	// mais destinatários: tratamos como disparo em massa.
	massEmailDelimiterMax = 3
	recipientDelimiter    = ";"
)

// Classify avalia as regras de ruído em ordem de precedência e para na
// primeira que casar. Função pura: sem efeitos colaterais, sem cache —
// o resultado é recalculado em toda execução da agregação. Campos
// ausentes viram string vazia na projeção silver e simplesmente não casam
// com nenhuma regra.
func Classify(interaction domain.Interaction) domain.NoiseClassification {
	if hasAnyPrefix(interaction.EmailSubject, readReceiptPrefixes) {
		return noise(domain.NoiseReasonReadReceipt)
	}

	if isDeliveryReceipt(interaction) {
		return noise(domain.NoiseReasonDeliveryReceipt)
	}

	if strings.Count(interaction.EmailRecipients, recipientDelimiter) > massEmailDelimiterMax {
		return noise(domain.NoiseReasonMassEmail)
	}

	return domain.NoiseClassification{IsNoise: false, Reason: domain.NoiseReasonNone}
}

func isDeliveryReceipt(interaction domain.Interaction) bool {
	if hasAnyPrefix(interaction.EmailSubject, deliveryReceiptPrefixes) {
		return true
	}

	return interaction.Title == deliveryReceiptTitle &&
		strings.Contains(interaction.Content, deliveryReceiptContent)
}

func hasAnyPrefix(subject string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(subject, prefix) {
			return true
		}
	}
	return false
}

func noise(reason domain.NoiseReason) domain.NoiseClassification {
	return domain.NoiseClassification{IsNoise: true, Reason: reason}
}
