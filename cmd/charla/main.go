package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/pcanos/charla/internal/config"
	"github.com/pcanos/charla/internal/httpapi"
	"github.com/pcanos/charla/internal/logx"
	"github.com/pcanos/charla/internal/session"
	"github.com/pcanos/charla/internal/ui"
)

var rootCmd = &cobra.Command{
	Use:   "charla",
	Short: "Terminal client for the sala chat backend",
	RunE:  runClient,
}

var (
	flagServerURL string
	flagEnv       string
	flagLogFile   string
	flagStateFile string
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagServerURL, "server-url", "", "backend origin (default from CHARLA_SERVER_URL)")
	flags.StringVar(&flagEnv, "env", "", "dev or prod logging (default from CHARLA_ENV)")
	flags.StringVar(&flagLogFile, "log-file", "", "log destination (default from CHARLA_LOG_FILE)")
	flags.StringVar(&flagStateFile, "state-file", "", "persisted client state path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("execute charla command")
	}
}

func runClient(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	if flagServerURL != "" {
		cfg.ServerURL = flagServerURL
	}
	if flagEnv != "" {
		cfg.Env = flagEnv
	}
	if flagLogFile != "" {
		cfg.LogFile = flagLogFile
	}
	if flagStateFile != "" {
		cfg.StateFile = flagStateFile
	}

	logFile, err := logx.Init(cfg.Env, cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	store, err := session.Open(cfg.StateFile)
	if err != nil {
		return err
	}
	api := httpapi.New(cfg.ServerURL)

	log.Info().Str("server", cfg.ServerURL).Msg("starting")

	p := tea.NewProgram(ui.New(cfg, store, api), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
