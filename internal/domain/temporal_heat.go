package domain

// TemporalHeatRow é uma célula da visão exploratória de calor temporal.
// A tabela é sempre densa: 168 linhas (7 dias x 24 horas), inclusive
// células sem observações. Dia da semana segue a convenção do pipeline
// original: 0=segunda ... 6=domingo (sexta-feira é 4).
type TemporalHeatRow struct {
	DayOfWeek                    int `json:"day_of_week" parquet:"day_of_week"`
	Hour                         int `json:"hour" parquet:"hour"`
	InteractionCount             int `json:"interaction_count" parquet:"interaction_count"`
	FrictionCount                int `json:"friction_count" parquet:"friction_count"`
	FridayAfternoonFrictionCount int `json:"friday_afternoon_friction_count" parquet:"friday_afternoon_friction_count"`
}

const (
	// TemporalHeatCells é a cardinalidade fixa da tabela de calor temporal.
	TemporalHeatCells = 168

	// FridayDayOfWeek é sexta-feira na convenção 0=segunda.
	FridayDayOfWeek = 4

	// FridayAfternoonStartHour marca o início da tarde de sexta-feira.
	FridayAfternoonStartHour = 14
)
