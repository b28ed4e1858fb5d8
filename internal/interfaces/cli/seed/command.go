package seed

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	approvalservices "github.com/assetdesk/assetdesk/internal/application/approval/services"
	approvalUsecases "github.com/assetdesk/assetdesk/internal/application/approval/usecases"
	"github.com/assetdesk/assetdesk/internal/application/asset/services"
	assetUsecases "github.com/assetdesk/assetdesk/internal/application/asset/usecases"
	"github.com/assetdesk/assetdesk/internal/infrastructure/database"
	"github.com/assetdesk/assetdesk/internal/infrastructure/repository"
	"github.com/assetdesk/assetdesk/internal/interfaces/cli/bootstrap"
	shareddb "github.com/assetdesk/assetdesk/internal/shared/db"
	"github.com/assetdesk/assetdesk/internal/shared/logger"
)

var (
	flags    bootstrap.Flags
	seedFile string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load number rules and approval flows from a YAML file",
		Long:  `Create number rules, class bindings, approval flows and retire-flow bindings described in a YAML seed file. Existing entries are left untouched.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&flags.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&flags.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "configs/seeds.yaml", "Seed file")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	_, log, err := bootstrap.LoadWithDatabase(flags)
	if err != nil {
		return err
	}
	defer database.Close()

	fh, err := os.Open(seedFile)
	if err != nil {
		return fmt.Errorf("failed to open seed file: %w", err)
	}
	defer fh.Close()

	doc, err := Parse(fh)
	if err != nil {
		return err
	}

	summary, err := newSeeder(database.Get(), log).Run(cmd.Context(), doc)
	if err != nil {
		log.Errorw("seeding failed", "file", seedFile, "error", err)
		return err
	}

	log.Infow("seeding completed",
		"file", seedFile,
		"rules_created", summary.RulesCreated,
		"rules_skipped", summary.RulesSkipped,
		"rules_bound", summary.RulesBound,
		"flows_created", summary.FlowsCreated,
		"flows_skipped", summary.FlowsSkipped,
		"retire_flows_set", summary.RetireFlowsSet)
	return nil
}

func newSeeder(db *gorm.DB, log logger.Interface) *Seeder {
	tm := shareddb.NewTransactionManager(db)
	assets := repository.NewAssetRepository(db, log)
	rules := repository.NewNumberRuleRepository(db, log)
	flows := repository.NewFlowRepository(db, log)
	forms := repository.NewFormRepository(db, log)
	settings := repository.NewSystemSettingRepository(db, log)

	allocator := services.NewNumberAllocator(tm, rules, repository.NewNumberTrackRepository(db), assets, log)
	gateway := approvalservices.NewGateway(settings, flows, forms, log)

	return NewSeeder(
		assetUsecases.NewCreateNumberRuleUseCase(rules, allocator, log),
		assetUsecases.NewListNumberRulesUseCase(rules, allocator),
		assetUsecases.NewBindNumberRuleUseCase(allocator),
		approvalUsecases.NewCreateFlowUseCase(flows, log),
		approvalUsecases.NewListFlowsUseCase(flows),
		approvalUsecases.NewGetRetireFlowUseCase(gateway, flows),
		approvalUsecases.NewSetRetireFlowUseCase(settings, flows, log),
		log,
	)
}
