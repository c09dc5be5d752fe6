package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"pressroom/cmd/client/cmd/types"
	"pressroom/internal/app/client"
	"pressroom/internal/app/client/config"
	envcfg "pressroom/internal/config"
	"pressroom/internal/utils/logger"
)

var (
	cfgFile    string
	cfg        *config.Config
	log        *slog.Logger
	app        *client.App
	debug      bool
	jsonOutput bool
	serverURL  string
)

var rootCmd = &cobra.Command{
	Use:   "pressroom",
	Short: "Pressroom - консольный клиент платформы новостей",
	Long: `Pressroom — клиент API платформы: новости, каналы, уведомления и сборы.

Сессия и настройки хранятся локально и переживают перезапуск.
Адрес сервера задается API_BASE_URL, файлом конфигурации или флагом --server.`,
	PersistentPreRunE:  setupApp,
	PersistentPostRunE: closeApp,
	SilenceUsage:       true,
	SilenceErrors:      true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// PersistentPostRunE не вызывается после ошибки команды
		if app != nil {
			_ = app.Close()
		}
		if !types.Notified(err) {
			fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Ошибка:"), err)
		}
		os.Exit(1)
	}
}

func setupApp(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Переопределяем настройки из флагов командной строки
	if serverURL != "" {
		cfg.APIBaseURL = serverURL
	}

	if debug {
		log = logger.New(envcfg.EnvLocal)
	} else {
		log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}

	app, err = client.New(cfg, log, client.WithNotifier(types.Notifier{}))
	if err != nil {
		return fmt.Errorf("ошибка инициализации приложения: %w", err)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.RequestTimeout)
	defer cancel()
	if err := app.EnsureFresh(ctx); err != nil && !isAnonymous(err) {
		log.Warn("Не удалось обновить токен", "error", err)
	}
	if err := app.Restore(ctx); err != nil {
		log.Debug("Профиль не загружен", "error", err)
	}

	cmd.SetContext(types.WithEnv(cmd.Context(), &types.Env{
		App:  app,
		JSON: jsonOutput,
		Out:  os.Stdout,
	}))
	return nil
}

func isAnonymous(err error) bool {
	return errors.Is(err, client.ErrNotAuthenticated) || errors.Is(err, client.ErrNoRefreshToken)
}

func closeApp(_ *cobra.Command, _ []string) error {
	if app == nil {
		return nil
	}
	return app.Close()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "конфигурационный файл")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "включить отладочный режим")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "вывод в формате JSON")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "URL API сервера")

	// Команды добавляются в init.go
}
