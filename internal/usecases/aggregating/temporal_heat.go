package aggregating

import "github.com/almahq/crm-analytics-api/internal/domain"

// buildTemporalHeat monta a grade densa de 168 células (dia, hora), com
// dia 0 = segunda-feira, mesmo quando não há interação alguma.
func buildTemporalHeat(interactions []domain.Interaction) []domain.TemporalHeatRow {
	rows := make([]domain.TemporalHeatRow, 0, domain.TemporalHeatCells)
	index := make(map[[2]int]*domain.TemporalHeatRow, domain.TemporalHeatCells)

	for day := 0; day < 7; day++ {
		for hour := 0; hour < 24; hour++ {
			rows = append(rows, domain.TemporalHeatRow{DayOfWeek: day, Hour: hour})
			index[[2]int{day, hour}] = &rows[len(rows)-1]
		}
	}

	for _, interaction := range interactions {
		// time.Weekday tem domingo = 0; a grade tem segunda = 0.
		day := (int(interaction.Timestamp.Weekday()) + 6) % 7
		hour := interaction.Timestamp.Hour()

		cell := index[[2]int{day, hour}]
		cell.InteractionCount++

		urgency, failure, escalation := frictionFlags(interaction)
		if urgency+failure+escalation == 0 {
			continue
		}

		cell.FrictionCount++
		if day == domain.FridayDayOfWeek && hour >= domain.FridayAfternoonStartHour {
			cell.FridayAfternoonFrictionCount++
		}
	}

	return rows
}
