package domain

import "time"

// RawDeal é o registro bruto de negócio exportado do CRM.
type RawDeal struct {
	ID        string   `json:"id"`
	ClientID  string   `json:"client_id"`
	ManagerID string   `json:"manager_id"`
	Stage     *string  `json:"stage"`
	Value     *float64 `json:"value"`
	CreatedAt string   `json:"created_at"`
}

// Deal é a forma tipada (camada silver) de um negócio.
type Deal struct {
	ID        string    `json:"id" parquet:"id"`
	ClientID  string    `json:"client_id" parquet:"client_id"`
	ManagerID string    `json:"manager_id" parquet:"manager_id"`
	Stage     string    `json:"stage" parquet:"stage"`
	Value     float64   `json:"value" parquet:"value"`
	CreatedAt time.Time `json:"created_at" parquet:"created_at"`
}

// CRMUser é uma linha do arquivo auxiliar de usuários (gestores) do CRM.
type CRMUser struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
