package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/acsaprep/preptool/internal/config"
	"github.com/acsaprep/preptool/internal/server"
)

var (
	servePort       int
	serveConfigPath string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the interview, resume, chat, and proxy endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveConfigPath, "config", "", "Path to optional JSON config file")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := config.FromEnv()

	if serveConfigPath != "" {
		fileCfg, err := config.LoadFile(serveConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config file: %w", err)
		}
		cfg = fileCfg.MergeWithDefaults(cfg)
	}

	if servePort != 0 {
		cfg.Port = servePort
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL environment variable is required")
	}
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	if cfg.OpenAIAPIKey == "" {
		// TTS degrades to 500s without a key; the rest of the API still works.
		fmt.Fprintln(os.Stderr, "Warning: OPENAI_API_KEY not set, /api/tts will be unavailable")
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
