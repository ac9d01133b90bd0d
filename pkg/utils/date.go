package utils

import (
	"fmt"
	"time"
)

// RunDateLayout é o formato compacto (AAAAMMDD) usado nos nomes de arquivo
// e manifestos dos snapshots.
const RunDateLayout = "20060102"

// ParseRunDate valida uma data de snapshot no formato AAAAMMDD.
func ParseRunDate(s string) (time.Time, error) {
	date, err := time.Parse(RunDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("data de snapshot inválida %q: esperado AAAAMMDD", s)
	}

	return date, nil
}

// CurrentRunDate retorna a data atual no formato de snapshot.
func CurrentRunDate() string {
	return time.Now().Format(RunDateLayout)
}
