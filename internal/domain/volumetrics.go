package domain

// VolumetricsRow é uma linha da visão exploratória de volumetria de CX.
// Grão: par (manager_id, client_id), calculada sobre o conjunto filtrado
// (sem ruído) em full refresh a cada execução.
type VolumetricsRow struct {
	ManagerID           string   `json:"manager_id" parquet:"manager_id"`
	ManagerName         string   `json:"manager_name" parquet:"manager_name"`
	ClientID            string   `json:"client_id" parquet:"client_id"`
	ClientName          string   `json:"client_name" parquet:"client_name"`
	TotalInteractions   int      `json:"total_interactions" parquet:"total_interactions"`
	InteractionVelocity float64  `json:"interaction_velocity" parquet:"interaction_velocity"`
	ManagerLoad         float64  `json:"manager_load" parquet:"manager_load"`
	NeedinessRatio      *float64 `json:"neediness_ratio" parquet:"neediness_ratio,optional"`
	LongThreadCount     int      `json:"long_thread_count" parquet:"long_thread_count"`
}
