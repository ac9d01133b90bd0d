// Package migration aplica as migrações de esquema pendentes antes do
// servidor subir. Uma migração já aplicada é no-op; qualquer falha aborta a
// inicialização — o servidor nunca atende com esquema parcialmente migrado.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/almahq/crm-analytics-api/infrastructure/database/postgres"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const ledgerTable = `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP NOT NULL DEFAULT NOW()
	)
`

type Migration struct {
	Version string
	SQL     string
}

type Migrator struct {
	conn postgres.Conn
}

func NewMigrator(conn postgres.Conn) *Migrator {
	return &Migrator{conn: conn}
}

// Run aplica todas as migrações pendentes, em ordem de versão, cada uma na
// própria transação. Retorna erro na primeira falha.
func (m *Migrator) Run(ctx context.Context) error {
	startTime := time.Now()

	if _, err := m.conn.Exec(ledgerTable); err != nil {
		return fmt.Errorf("erro ao criar tabela schema_migrations: %w", err)
	}

	migrations, err := loadMigrations()
	if err != nil {
		return err
	}

	applied, err := m.appliedVersions()
	if err != nil {
		return err
	}

	pending := 0
	for _, mig := range migrations {
		if applied[mig.Version] {
			logrus.WithField("version", mig.Version).Debug("Migração já aplicada, ignorando")
			continue
		}

		logrus.WithField("version", mig.Version).Info("Aplicando migração")

		err := m.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
			if _, err := tx.Exec(mig.SQL); err != nil {
				return err
			}

			_, err := tx.Exec("INSERT INTO schema_migrations (version) VALUES ($1)", mig.Version)
			return err
		})
		if err != nil {
			return fmt.Errorf("erro ao aplicar migração %s: %w", mig.Version, err)
		}

		pending++
	}

	logrus.WithFields(logrus.Fields{
		"applied":  pending,
		"total":    len(migrations),
		"duration": time.Since(startTime).String(),
	}).Info("Migrações concluídas")

	return nil
}

func (m *Migrator) appliedVersions() (map[string]bool, error) {
	rows, err := m.conn.Query("SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("erro ao escanear versão de migração: %w", err)
		}
		applied[version] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro durante a iteração de versões: %w", err)
	}

	return applied, nil
}

// loadMigrations lê os arquivos embarcados e ordena pela versão, que é o
// prefixo numérico do nome do arquivo (0001_create_users.sql → 0001).
func loadMigrations() ([]Migration, error) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("erro ao listar migrações embarcadas: %w", err)
	}

	migrations := make([]Migration, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}

		content, err := migrationFiles.ReadFile("migrations/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("erro ao ler migração %s: %w", entry.Name(), err)
		}

		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(entry.Name(), ".sql"),
			SQL:     string(content),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})

	return migrations, nil
}
