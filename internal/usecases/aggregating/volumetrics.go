package aggregating

import (
	"sort"
	"strings"
	"time"

	"github.com/almahq/crm-analytics-api/internal/domain"
	"github.com/almahq/crm-analytics-api/pkg/utils"
)

const (
	hoursPerWeek = 168.0

	// Um thread de e-mail com 3 ou mais interações conta como longo.
	longThreadMin = 3
)

// Prefixos de resposta/encaminhamento removidos ao normalizar a chave de
// thread, em português e inglês.
var replyPrefixes = []string{"re:", "res:", "fw:", "fwd:", "enc:"}

type groupKey struct {
	managerID string
	clientID  string
}

// buildVolumetrics monta a visão de volumetria de CX no grão
// (manager_id, client_id) sobre o conjunto filtrado, com as identidades
// resolvidas pelos cadastros auxiliares.
func buildVolumetrics(
	interactions []domain.Interaction,
	contactNames map[string]string,
	managerNames map[string]string,
) []domain.VolumetricsRow {
	groups := make(map[groupKey][]domain.Interaction)
	managerTotals := make(map[string]int)
	managerClients := make(map[string]map[string]bool)

	for _, interaction := range interactions {
		key := groupKey{managerID: interaction.ManagerID, clientID: interaction.ClientID}
		groups[key] = append(groups[key], interaction)

		managerTotals[interaction.ManagerID]++
		if managerClients[interaction.ManagerID] == nil {
			managerClients[interaction.ManagerID] = make(map[string]bool)
		}
		managerClients[interaction.ManagerID][interaction.ClientID] = true
	}

	rows := make([]domain.VolumetricsRow, 0, len(groups))
	for key, group := range groups {
		total := len(group)

		rows = append(rows, domain.VolumetricsRow{
			ManagerID:           key.managerID,
			ManagerName:         managerNames[key.managerID],
			ClientID:            key.clientID,
			ClientName:          contactNames[key.clientID],
			TotalInteractions:   total,
			InteractionVelocity: interactionVelocity(group),
			ManagerLoad:         managerLoad(managerTotals[key.managerID], len(managerClients[key.managerID])),
			NeedinessRatio:      needinessRatio(group),
			LongThreadCount:     longThreadCount(group),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ManagerID != rows[j].ManagerID {
			return rows[i].ManagerID < rows[j].ManagerID
		}
		return rows[i].ClientID < rows[j].ClientID
	})

	return rows
}

// interactionVelocity divide o total pela janela observada em semanas,
// com piso de 1 semana: grupo de uma interação (janela zero) tem
// velocidade igual à contagem, nunca divisão por zero.
func interactionVelocity(group []domain.Interaction) float64 {
	var first, last time.Time
	for i, interaction := range group {
		if i == 0 || interaction.Timestamp.Before(first) {
			first = interaction.Timestamp
		}
		if i == 0 || interaction.Timestamp.After(last) {
			last = interaction.Timestamp
		}
	}

	weeks := last.Sub(first).Hours() / hoursPerWeek
	if weeks < 1 {
		weeks = 1
	}

	return utils.RoundWithTwoDecimalPlace(float64(len(group)) / weeks)
}

func managerLoad(managerTotal, distinctClients int) float64 {
	if distinctClients == 0 {
		return 0
	}
	return utils.RoundWithTwoDecimalPlace(float64(managerTotal) / float64(distinctClients))
}

// needinessRatio divide o total pelo valor de negócio somado do grupo.
// Valor zerado ou ausente devolve nil — divisão protegida, nunca crash.
func needinessRatio(group []domain.Interaction) *float64 {
	var dealValue float64
	for _, interaction := range group {
		dealValue += interaction.DealValue
	}

	if dealValue <= 0 {
		return nil
	}

	ratio := float64(len(group)) / dealValue
	return &ratio
}

// longThreadCount agrupa as interações pela chave de thread (assunto
// normalizado) e conta os threads com 3 ou mais interações. Assuntos
// vazios não formam thread.
func longThreadCount(group []domain.Interaction) int {
	threads := make(map[string]int)
	for _, interaction := range group {
		key := threadKey(interaction.EmailSubject)
		if key == "" {
			continue
		}
		threads[key]++
	}

	count := 0
	for _, size := range threads {
		if size >= longThreadMin {
			count++
		}
	}

	return count
}

// threadKey normaliza o assunto: minúsculas e remoção iterativa dos
// prefixos de resposta/encaminhamento.
func threadKey(subject string) string {
	key := strings.TrimSpace(strings.ToLower(subject))

	for {
		stripped := key
		for _, prefix := range replyPrefixes {
			if strings.HasPrefix(stripped, prefix) {
				stripped = strings.TrimSpace(strings.TrimPrefix(stripped, prefix))
			}
		}
		if stripped == key {
			return key
		}
		key = stripped
	}
}
