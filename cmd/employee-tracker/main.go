package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/employee-tracker/internal/config"
	"github.com/employee-tracker/internal/database"
	"github.com/employee-tracker/internal/handler"
	"github.com/employee-tracker/internal/presenter"
	"github.com/employee-tracker/internal/prompt"
	"github.com/employee-tracker/internal/repository"
	"github.com/employee-tracker/internal/resolver"
	"github.com/employee-tracker/internal/service"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "employee-tracker",
		Short:         "Manage departments, roles and employees from the terminal",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTracker(cmd.Context())
		},
	}

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, logger, db, err := bootstrap()
			if err != nil {
				return err
			}
			sqlDB, err := db.DB()
			if err != nil {
				logger.Error("failed to get sql.DB", slog.Any("error", err))
				return err
			}
			defer sqlDB.Close()

			logger.Info("migrations applied")
			fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
			return nil
		},
	})

	return root
}

// bootstrap загружает конфигурацию, подключается к БД и применяет миграции
func bootstrap() (*config.Config, *slog.Logger, *gorm.DB, error) {
	// Логи уходят в stderr, чтобы не мешать меню
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", slog.Any("error", err))
		return nil, nil, nil, err
	}

	logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))
	slog.SetDefault(logger)

	db, err := database.Open(cfg.Database)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		return nil, nil, nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		logger.Error("failed to get sql.DB", slog.Any("error", err))
		return nil, nil, nil, err
	}

	if err := database.Migrate(sqlDB, cfg.Database.Driver, logger); err != nil {
		logger.Error("failed to run migrations", slog.Any("error", err))
		sqlDB.Close()
		return nil, nil, nil, err
	}

	return cfg, logger, db, nil
}

func runTracker(ctx context.Context) error {
	cfg, logger, db, err := bootstrap()
	if err != nil {
		return err
	}

	// Инициализация хранилища
	store := repository.NewStore(db)
	logger.Info("connected to database", slog.String("database", cfg.Database.DBName))

	// Инициализация сервисов
	res := resolver.New(logger)
	deptService := service.NewDepartmentService(store, res)
	roleService := service.NewRoleService(store, res)
	empService := service.NewEmployeeService(store, res)

	// Инициализация обработчиков
	prompter := prompt.NewTerminal(os.Stdin, os.Stdout)
	actions := handler.NewActionHandler(deptService, roleService, empService, prompter, presenter.New(os.Stdout), os.Stdout, logger)

	// Главное меню; соединение закрывается при выборе Exit
	router := handler.NewRouter(actions, prompter, store, logger).Setup()
	if err := router.Run(ctx); err != nil {
		logger.Error("menu loop stopped", slog.Any("error", err))
		return err
	}

	return nil
}
