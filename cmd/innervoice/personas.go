package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
)

func newPersonasCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "personas",
		Short: "List the available personas",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !remote {
				for _, p := range persona.List() {
					printPersona(p)
				}
				return nil
			}

			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			chars, err := c.ListCharacters(ctx)
			if err != nil {
				return err
			}
			for _, ch := range chars {
				fmt.Printf("%s %s / %s (%s)\n", ch.Emoji, ch.Name, ch.LocalName, ch.ID)
				if ch.Description != "" {
					fmt.Printf("   %s\n", ch.Description)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Ask the backend instead of the built-in registry")
	return cmd
}

func printPersona(p persona.Persona) {
	fmt.Printf("%s %s / %s (%s)\n", p.Emoji, p.Name, p.LocalName, p.ID)
	fmt.Printf("   %s; %s\n", p.Personality.Role, strings.Join(p.Personality.Traits, ", "))
	if len(p.Features) > 0 {
		fmt.Printf("   features: %s\n", strings.Join(p.Features, ", "))
	}
}
