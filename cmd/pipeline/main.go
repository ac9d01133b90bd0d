package main

import (
	"fmt"
	"os"
	"time"

	"github.com/almahq/crm-analytics-api/infrastructure/bronze"
	"github.com/almahq/crm-analytics-api/infrastructure/snapshot"
	"github.com/almahq/crm-analytics-api/internal/config"
	"github.com/almahq/crm-analytics-api/internal/usecases/aggregating"
	"github.com/almahq/crm-analytics-api/internal/usecases/diagnosing"
	"github.com/almahq/crm-analytics-api/internal/usecases/refining"
	"github.com/almahq/crm-analytics-api/pkg/utils"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// pipelineEnv agrupa os serviços das camadas para uso pelos subcomandos
type pipelineEnv struct {
	refining    *refining.Service
	aggregating *aggregating.Service
	diagnosing  *diagnosing.Service
	runDate     string
}

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})

	var runDate string

	rootCmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Executa as camadas do pipeline de análise do CRM sem subir o servidor",
	}
	rootCmd.PersistentFlags().StringVar(&runDate, "run-date", "", "Data do snapshot no formato AAAAMMDD (padrão: data atual)")

	rootCmd.AddCommand(
		silverCmd(&runDate),
		goldCmd(&runDate),
		diagnosticCmd(&runDate),
		allCmd(&runDate),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newEnv(runDate string) (*pipelineEnv, error) {
	cfg, err := config.NewConfig()
	if err != nil {
		return nil, fmt.Errorf("erro ao carregar configuração: %w", err)
	}

	if runDate == "" {
		runDate = cfg.Pipeline.RunDate
	}
	if runDate == "" {
		runDate = utils.CurrentRunDate()
	} else if _, err := utils.ParseRunDate(runDate); err != nil {
		return nil, err
	}

	source := bronze.NewSource(cfg.Pipeline.BronzeDir)
	silver := snapshot.NewStore(cfg.Pipeline.SilverDir)
	gold := snapshot.NewStore(cfg.Pipeline.GoldDir)

	return &pipelineEnv{
		refining:    refining.NewService(source, silver),
		aggregating: aggregating.NewService(silver, gold, source),
		diagnosing:  diagnosing.NewService(silver, gold),
		runDate:     runDate,
	}, nil
}

func silverCmd(runDate *string) *cobra.Command {
	return &cobra.Command{
		Use:   "silver",
		Short: "Refina os registros bronze em um snapshot silver tipado",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*runDate)
			if err != nil {
				return err
			}

			manifest, err := env.refining.Run(env.runDate)
			if err != nil {
				return fmt.Errorf("camada silver: %w", err)
			}

			logrus.WithFields(logrus.Fields{
				"run_date":          env.runDate,
				"records_read":      manifest.Counts.RecordsRead,
				"noise_total":       manifest.Counts.NoiseTotal,
				"kept":              manifest.Counts.Kept,
				"malformed_skipped": manifest.Counts.MalformedSkipped,
			}).Info("Camada silver concluída")
			return nil
		},
	}
}

func goldCmd(runDate *string) *cobra.Command {
	return &cobra.Command{
		Use:   "gold",
		Short: "Agrega o snapshot silver nas tabelas exploratórias gold",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*runDate)
			if err != nil {
				return err
			}

			manifest, err := env.aggregating.Run(env.runDate)
			if err != nil {
				return fmt.Errorf("camada gold: %w", err)
			}

			logrus.WithFields(logrus.Fields{
				"run_date": env.runDate,
				"tables":   manifest.Tables,
			}).Info("Camada gold concluída")
			return nil
		},
	}
}

func diagnosticCmd(runDate *string) *cobra.Command {
	return &cobra.Command{
		Use:   "diagnostic",
		Short: "Gera o relatório de vínculo pessoa-empresa a partir do snapshot silver",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*runDate)
			if err != nil {
				return err
			}

			report, err := env.diagnosing.Run(env.runDate)
			if err != nil {
				return fmt.Errorf("diagnóstico de vínculo: %w", err)
			}

			logrus.WithFields(logrus.Fields{
				"run_date":           env.runDate,
				"total_interactions": report.TotalInteractions,
				"company_linked_pct": report.CompanyLinkedPct,
				"unresolved":         report.Unresolved(),
				"unresolved_pct":     report.UnresolvedPct,
			}).Info("Diagnóstico de vínculo concluído")
			return nil
		},
	}
}

func allCmd(runDate *string) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Executa as camadas silver, gold e o diagnóstico em sequência",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := newEnv(*runDate)
			if err != nil {
				return err
			}

			if _, err := env.refining.Run(env.runDate); err != nil {
				return fmt.Errorf("camada silver: %w", err)
			}

			if _, err := env.aggregating.Run(env.runDate); err != nil {
				return fmt.Errorf("camada gold: %w", err)
			}

			if _, err := env.diagnosing.Run(env.runDate); err != nil {
				return fmt.Errorf("diagnóstico de vínculo: %w", err)
			}

			logrus.WithField("run_date", env.runDate).Info("Pipeline completo concluído")
			return nil
		},
	}
}
