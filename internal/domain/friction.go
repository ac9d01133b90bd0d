package domain

import "time"

// FrictionRow é uma linha da visão exploratória de heurísticas de atrito.
// Grão: uma linha por interação sem ruído que acendeu pelo menos um dos
// três sinais; linhas com os três scores zerados não entram na tabela.
type FrictionRow struct {
	InteractionID   string    `json:"interaction_id" parquet:"interaction_id"`
	ManagerID       string    `json:"manager_id" parquet:"manager_id"`
	ClientID        string    `json:"client_id" parquet:"client_id"`
	Timestamp       time.Time `json:"timestamp" parquet:"timestamp"`
	UrgencyScore    int       `json:"urgency_score" parquet:"urgency_score"`
	FailureScore    int       `json:"failure_score" parquet:"failure_score"`
	EscalationScore int       `json:"escalation_score" parquet:"escalation_score"`
}

// HasSignal indica se a interação acendeu algum dos três sinais.
func (f FrictionRow) HasSignal() bool {
	return f.UrgencyScore+f.FailureScore+f.EscalationScore > 0
}
