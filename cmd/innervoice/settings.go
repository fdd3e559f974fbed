package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/store"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change on-device display settings",
	}
	cmd.AddCommand(newSettingsShowCmd())
	cmd.AddCommand(newSettingsSetCmd())
	return cmd
}

func newSettingsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			s := st.Settings()
			fmt.Printf("theme: %s\nfont size: %s\ntimestamps: %v\n", s.Theme, s.FontSize, s.ShowTimestamps)
			return nil
		},
	}
}

func newSettingsSetCmd() *cobra.Command {
	var (
		theme      string
		fontSize   string
		timestamps string
	)

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change one or more settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			s := st.Settings()
			if theme != "" {
				s.Theme = theme
			}
			if fontSize != "" {
				s.FontSize = fontSize
			}
			switch timestamps {
			case "":
			case "on", "true":
				s.ShowTimestamps = true
			case "off", "false":
				s.ShowTimestamps = false
			default:
				return fmt.Errorf("timestamps must be on or off, got %q", timestamps)
			}

			if err := st.SaveSettings(s); err != nil {
				return err
			}
			fmt.Println("Saved.")
			return nil
		},
	}

	cmd.Flags().StringVar(&theme, "theme", "", "Visual theme: cream, forest, ocean or midnight")
	cmd.Flags().StringVar(&fontSize, "font-size", "", "Font size: small, medium or large")
	cmd.Flags().StringVar(&timestamps, "timestamps", "", "Show message timestamps: on or off")
	return cmd
}

func newConsentCmd() *cobra.Command {
	var analytics bool

	cmd := &cobra.Command{
		Use:   "consent",
		Short: "Show or record the cookie-consent acknowledgment",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if c, ok := st.Consent(); ok {
				fmt.Printf("accepted: %v (analytics: %v) on %s\n",
					c.Accepted, c.Analytics, c.AcceptedAt.Local().Format("2006-01-02"))
				return nil
			}
			fmt.Println("No consent recorded.")
			return nil
		},
	}

	accept := &cobra.Command{
		Use:   "accept",
		Short: "Record acceptance",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			st, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if err := st.SaveConsent(store.Consent{Accepted: true, Analytics: analytics}); err != nil {
				return err
			}
			fmt.Println("Consent recorded.")
			return nil
		},
	}
	accept.Flags().BoolVar(&analytics, "analytics", false, "Also allow analytics cookies")
	cmd.AddCommand(accept)
	return cmd
}
