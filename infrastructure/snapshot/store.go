// Package snapshot grava e lê os snapshots colunar datados das camadas
// silver e gold. Cada snapshot é imutável: a escrita vai para um arquivo
// temporário e só depois é renomeada, então leitores nunca observam saída
// parcial. Além do parquet, cada tabela ganha um espelho JSON consumido
// pela camada web (mesmo arranjo do pacote de handoff original).
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/parquet-go/parquet-go"
	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var datedName = regexp.MustCompile(`^(.+)_(\d{8})\.parquet$`)

type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) Dir() string {
	return s.dir
}

// WriteTable grava uma tabela do snapshot em parquet e o espelho JSON.
func WriteTable[T any](s *Store, table, runDate string, rows []T) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório de snapshots: %w", err)
	}

	parquetPath := filepath.Join(s.dir, fmt.Sprintf("%s_%s.parquet", table, runDate))
	if err := writeParquet(parquetPath, rows); err != nil {
		return err
	}

	jsonPath := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", table, runDate))
	if err := writeJSON(jsonPath, rows); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"table":    table,
		"run_date": runDate,
		"rows":     len(rows),
	}).Info("Snapshot gravado")

	return nil
}

// ReadLatest lê a tabela do snapshot completo mais recente e retorna
// também a data encontrada.
func ReadLatest[T any](s *Store, table string) ([]T, string, error) {
	runDate, err := s.LatestDate(table)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.parquet", table, runDate))
	rows, err := parquet.ReadFile[T](path)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao ler snapshot %s: %w", filepath.Base(path), err)
	}

	return rows, runDate, nil
}

// ReadLatestJSON lê o espelho JSON da tabela mais recente, sem esquema
// fixo. É o caminho usado pela API para servir as visões ao BI.
func (s *Store) ReadLatestJSON(table string) ([]map[string]any, string, error) {
	runDate, err := s.LatestDate(table)
	if err != nil {
		return nil, "", err
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s_%s.json", table, runDate))
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("erro ao ler espelho JSON %s: %w", filepath.Base(path), err)
	}

	rows := make([]map[string]any, 0)
	if err := json.Unmarshal(content, &rows); err != nil {
		return nil, "", fmt.Errorf("erro ao decodificar espelho JSON %s: %w", filepath.Base(path), err)
	}

	return rows, runDate, nil
}

// LatestDate encontra a data do snapshot mais recente de uma tabela.
func (s *Store) LatestDate(table string) (string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("erro ao listar snapshots: %w", err)
	}

	dates := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := datedName.FindStringSubmatch(entry.Name())
		if match == nil || match[1] != table {
			continue
		}
		dates = append(dates, match[2])
	}

	if len(dates) == 0 {
		return "", fmt.Errorf("nenhum snapshot encontrado para a tabela %s", table)
	}

	// Datas em AAAAMMDD ordenam lexicograficamente.
	sort.Strings(dates)
	return dates[len(dates)-1], nil
}

// WriteManifest grava o manifesto de reconciliação da execução.
func (s *Store) WriteManifest(m *domain.RunManifest) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório de snapshots: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("manifest_%s_%s.json", m.Layer, m.RunDate))
	return writeJSON(path, m)
}

// LatestManifest lê o manifesto mais recente de uma camada.
func (s *Store) LatestManifest(layer string) (*domain.RunManifest, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar snapshots: %w", err)
	}

	prefix := fmt.Sprintf("manifest_%s_", layer)
	names := make([]string, 0)
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), prefix) && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("nenhum manifesto encontrado para a camada %s", layer)
	}

	sort.Strings(names)

	content, err := os.ReadFile(filepath.Join(s.dir, names[len(names)-1]))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler manifesto: %w", err)
	}

	manifest := &domain.RunManifest{}
	if err := json.Unmarshal(content, manifest); err != nil {
		return nil, fmt.Errorf("erro ao decodificar manifesto: %w", err)
	}

	return manifest, nil
}

// writeParquet escreve o parquet em arquivo temporário e renomeia.
func writeParquet[T any](path string, rows []T) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}
	tmpPath := tmp.Name()

	writer := parquet.NewGenericWriter[T](tmp)
	if _, err := writer.Write(rows); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("erro ao escrever parquet %s: %w", filepath.Base(path), err)
	}
	if err := writer.Close(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("erro ao finalizar parquet %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("erro ao fechar arquivo temporário: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("erro ao renomear snapshot %s: %w", filepath.Base(path), err)
	}

	return nil
}

// writeJSON escreve o JSON em arquivo temporário e renomeia.
func writeJSON(path string, payload any) error {
	content, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("erro ao serializar %s: %w", filepath.Base(path), err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("erro ao criar arquivo temporário: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("erro ao escrever %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("erro ao fechar arquivo temporário: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("erro ao renomear %s: %w", filepath.Base(path), err)
	}

	return nil
}
