package domain

import "time"

// Camadas do pipeline, para manifesto e registro de execuções.
const (
	LayerSilver     = "silver"
	LayerGold       = "gold"
	LayerDiagnostic = "diagnostic"
)

// RunCounts concentra os contadores de reconciliação de uma execução.
// Invariante: RecordsRead - MalformedSkipped = NoiseTotal + Kept na camada
// gold; a soma precisa fechar exatamente.
type RunCounts struct {
	RecordsRead      int `json:"records_read"`
	MalformedSkipped int `json:"malformed_skipped"`
	NoiseTotal       int `json:"noise_total"`
	ReadReceipts     int `json:"read_receipts"`
	DeliveryReceipts int `json:"delivery_receipts"`
	MassEmails       int `json:"mass_emails"`
	Kept             int `json:"kept"`
}

// RunManifest descreve um snapshot completo de uma camada, gravado ao lado
// dos arquivos de dados. Consumidores sempre leem o snapshot completo mais
// recente; snapshots nunca são alterados depois de gravados.
type RunManifest struct {
	Layer       string    `json:"layer"`
	RunDate     string    `json:"run_date"`
	GeneratedAt time.Time `json:"generated_at"`
	Counts      RunCounts `json:"counts"`
	Tables      []string  `json:"tables"`
}

// Situações possíveis de uma execução registrada no banco.
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// PipelineRun registra uma execução do pipeline disparada pelo servidor
// (cron ou gatilho manual). Execuções via CLI ficam só nos manifestos.
type PipelineRun struct {
	ID         string     `json:"id"`
	RunDate    string     `json:"run_date"`
	Trigger    string     `json:"trigger"`
	Status     string     `json:"status"`
	Counts     *RunCounts `json:"counts"`
	Error      *string    `json:"error"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}
