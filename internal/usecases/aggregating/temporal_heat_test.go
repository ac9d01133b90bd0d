package aggregating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/almahq/crm-analytics-api/internal/domain"
)

func cellAt(t *testing.T, rows []domain.TemporalHeatRow, day, hour int) domain.TemporalHeatRow {
	t.Helper()
	for _, row := range rows {
		if row.DayOfWeek == day && row.Hour == hour {
			return row
		}
	}
	t.Fatalf("célula (%d, %d) não encontrada", day, hour)
	return domain.TemporalHeatRow{}
}

func TestBuildTemporalHeat_GradeDensaSemEntrada(t *testing.T) {
	rows := buildTemporalHeat(nil)

	require.Len(t, rows, domain.TemporalHeatCells)
	for _, row := range rows {
		assert.Zero(t, row.InteractionCount)
		assert.Zero(t, row.FrictionCount)
		assert.Zero(t, row.FridayAfternoonFrictionCount)
	}
}

func TestBuildTemporalHeat_ConvencaoSegundaZero(t *testing.T) {
	// 2025-11-03 é segunda-feira; 2025-11-09 é domingo.
	rows := buildTemporalHeat([]domain.Interaction{
		{ID: "i1", Timestamp: mustTime(t, "2025-11-03T09:00:00Z")},
		{ID: "i2", Timestamp: mustTime(t, "2025-11-09T22:00:00Z")},
	})

	assert.Equal(t, 1, cellAt(t, rows, 0, 9).InteractionCount)
	assert.Equal(t, 1, cellAt(t, rows, 6, 22).InteractionCount)
}

func TestBuildTemporalHeat_AtritoDeSextaATarde(t *testing.T) {
	// 2025-11-07 é sexta-feira.
	rows := buildTemporalHeat([]domain.Interaction{
		{ID: "i1", Timestamp: mustTime(t, "2025-11-07T15:00:00Z"), Content: "problema urgente"},
		{ID: "i2", Timestamp: mustTime(t, "2025-11-07T10:00:00Z"), Content: "problema urgente"},
		{ID: "i3", Timestamp: mustTime(t, "2025-11-07T15:00:00Z"), Content: "tudo certo"},
	})

	afternoon := cellAt(t, rows, domain.FridayDayOfWeek, 15)
	assert.Equal(t, 2, afternoon.InteractionCount)
	assert.Equal(t, 1, afternoon.FrictionCount)
	assert.Equal(t, 1, afternoon.FridayAfternoonFrictionCount)

	// Atrito de sexta pela manhã não conta como tarde de sexta.
	morning := cellAt(t, rows, domain.FridayDayOfWeek, 10)
	assert.Equal(t, 1, morning.FrictionCount)
	assert.Equal(t, 0, morning.FridayAfternoonFrictionCount)
}
