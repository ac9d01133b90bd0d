package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/almahq/crm-analytics-api/internal/domain"
)

const linkageReportPrefix = "linkage_report_"

// WriteLinkageReport grava o relatório de vínculo da execução, datado como
// as tabelas do snapshot. O relatório é só JSON: ninguém consome essa saída
// em colunar.
func (s *Store) WriteLinkageReport(report *domain.LinkageReport) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("erro ao criar diretório de snapshots: %w", err)
	}

	path := filepath.Join(s.dir, fmt.Sprintf("%s%s.json", linkageReportPrefix, report.RunDate))
	return writeJSON(path, report)
}

// LatestLinkageReport lê o relatório de vínculo mais recente.
func (s *Store) LatestLinkageReport() (*domain.LinkageReport, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar snapshots: %w", err)
	}

	names := make([]string, 0)
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasPrefix(entry.Name(), linkageReportPrefix) && strings.HasSuffix(entry.Name(), ".json") {
			names = append(names, entry.Name())
		}
	}

	if len(names) == 0 {
		return nil, fmt.Errorf("nenhum relatório de vínculo encontrado")
	}

	sort.Strings(names)

	content, err := os.ReadFile(filepath.Join(s.dir, names[len(names)-1]))
	if err != nil {
		return nil, fmt.Errorf("erro ao ler relatório de vínculo: %w", err)
	}

	report := &domain.LinkageReport{}
	if err := json.Unmarshal(content, report); err != nil {
		return nil, fmt.Errorf("erro ao decodificar relatório de vínculo: %w", err)
	}

	return report, nil
}
