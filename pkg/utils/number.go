package utils

import "math"

// RoundWithTwoDecimalPlace arredonda para duas casas decimais. As métricas
// das tabelas gold são publicadas com essa precisão; razões que precisam da
// precisão completa não passam por aqui.
func RoundWithTwoDecimalPlace(f float64) float64 {
	if f == 0 {
		return 0
	}

	return math.Round(f*100) / 100
}
