package domain

import "time"

// RawInteraction é o registro bruto exportado do CRM (uma linha do JSONL).
// Campos opcionais são ponteiros para distinguir ausência de valor vazio.
type RawInteraction struct {
	ID              string   `json:"id"`
	ManagerID       string   `json:"manager_id"`
	ClientID        string   `json:"client_id"`
	Timestamp       string   `json:"timestamp"`
	EmailSubject    *string  `json:"email_subject"`
	EmailRecipients *string  `json:"email_recipients"`
	Content         *string  `json:"content"`
	Title           *string  `json:"title"`
	DealValue       *float64 `json:"deal_value"`
	TypeCode        *string  `json:"type_code"`
}

// Interaction é a forma tipada (camada silver) de um registro de interação.
// Todo campo opcional do registro bruto tem um fallback definido aqui:
// strings vazias para textos ausentes e zero para deal_value.
type Interaction struct {
	ID              string    `json:"id" parquet:"id"`
	ManagerID       string    `json:"manager_id" parquet:"manager_id"`
	ClientID        string    `json:"client_id" parquet:"client_id"`
	Timestamp       time.Time `json:"timestamp" parquet:"timestamp"`
	EmailSubject    string    `json:"email_subject" parquet:"email_subject"`
	EmailRecipients string    `json:"email_recipients" parquet:"email_recipients"`
	Content         string    `json:"content" parquet:"content"`
	Title           string    `json:"title" parquet:"title"`
	DealValue       float64   `json:"deal_value" parquet:"deal_value"`
	TypeCode        string    `json:"type_code" parquet:"type_code"`
}
