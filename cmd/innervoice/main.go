// Command innervoice is the terminal client for the Inner Voice
// companion service: sign in, chat with a persona, browse the emotion
// journal, and manage on-device settings. An offline mode answers from
// the local fallback responder instead of the backend.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/internal/config"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/store"
)

var (
	serviceURL string
	dataDir    string
	debug      bool
	offline    bool
)

func main() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "innervoice",
		Short: "Inner Voice companion client",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.InitLogger()
			if debug {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
				_ = os.Setenv("INNERVOICE_DEBUG", "true")
				log.Debug().Msg("debug logging enabled")
			} else {
				zerolog.SetGlobalLevel(zerolog.InfoLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&serviceURL, "service-url", "", "Base URL of the Inner Voice backend (overrides INNERVOICE_SERVICE_URL)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "On-device data directory (overrides INNERVOICE_DATA_DIR)")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Answer from the local fallback responder instead of the backend")

	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newPersonasCmd())
	rootCmd.AddCommand(newChatCmd())
	rootCmd.AddCommand(newJournalCmd())
	rootCmd.AddCommand(newSettingsCmd())
	rootCmd.AddCommand(newConsentCmd())
	rootCmd.AddCommand(newDevServerCmd())

	return rootCmd
}

// loadConfig merges environment configuration with the global flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if serviceURL != "" {
		cfg.ServiceURL = serviceURL
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	if offline {
		cfg.Offline = true
	}
	return cfg, nil
}

func openStore(cfg *config.Config) (*store.Store, error) {
	st, err := store.Open(cfg.StorePath())
	if err != nil {
		return nil, fmt.Errorf("open on-device store: %w", err)
	}
	return st, nil
}

func newClient(cfg *config.Config, st *store.Store) (*client.Client, error) {
	return client.New(cfg.ServiceURL,
		client.WithTokenStore(st),
		client.WithHTTPTimeout(cfg.HTTPTimeout),
	)
}

// setup is the common preamble for commands that talk to the backend.
// The caller must Close the returned store.
func setup() (*config.Config, *store.Store, *client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := openStore(cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	c, err := newClient(cfg, st)
	if err != nil {
		_ = st.Close()
		return nil, nil, nil, err
	}
	return cfg, st, c, nil
}
