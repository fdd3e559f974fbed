package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
)

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.LoginRequest{Email: email, Password: password}
			if problems := client.ValidateLogin(req); problems != nil {
				printFieldErrors(problems)
				return errors.New("invalid login form")
			}

			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			res, err := c.Login(ctx, req)
			if err != nil {
				fmt.Println(client.UserMessage(err))
				return err
			}
			if err := st.SaveProfile(&res.User); err != nil {
				log.Debug().Err(err).Msg("caching profile failed")
			}
			fmt.Printf("Signed in as %s (%s)\n", res.User.Username, res.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newRegisterCmd() *cobra.Command {
	var email, username, password, preferred string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := client.RegisterRequest{
				Email:              email,
				Username:           username,
				Password:           password,
				PreferredCharacter: preferred,
			}
			if problems := client.ValidateRegister(req); problems != nil {
				printFieldErrors(problems)
				return errors.New("invalid registration form")
			}

			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			res, err := c.Register(ctx, req)
			if err != nil {
				fmt.Println(client.UserMessage(err))
				return err
			}
			if err := st.SaveProfile(&res.User); err != nil {
				log.Debug().Err(err).Msg("caching profile failed")
			}
			fmt.Printf("Welcome, %s. You're signed in.\n", res.User.Username)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&username, "username", "", "Display name (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password, 8+ characters (required)")
	cmd.Flags().StringVar(&preferred, "persona", "", "Preferred persona id (sheep, rabbit, fox)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Sign out and clear the on-device session",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if err := c.Logout(ctx); err != nil {
				log.Debug().Err(err).Msg("server logout failed; local session cleared")
			}
			fmt.Println("Signed out.")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			if !c.Authenticated() {
				fmt.Println("Not signed in.")
				return nil
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			u, err := c.CurrentUser(ctx)
			if err != nil {
				// Offline or expired: fall back to the cached profile.
				if cached, cacheErr := st.Profile(); cacheErr == nil {
					printUser(cached, true)
					return nil
				}
				fmt.Println(client.UserMessage(err))
				return err
			}
			if err := st.SaveProfile(u); err != nil {
				log.Debug().Err(err).Msg("caching profile failed")
			}
			printUser(u, false)
			return nil
		},
	}
}

func printUser(u *client.User, cached bool) {
	suffix := ""
	if cached {
		suffix = " (cached)"
	}
	fmt.Printf("%s <%s>%s\n", u.Username, u.Email, suffix)
	fmt.Printf("  preferred persona: %s\n", u.PreferredCharacter)
	if u.Premium {
		fmt.Println("  premium: yes")
	}
}

func printFieldErrors(problems map[string]string) {
	for field, msg := range problems {
		fmt.Printf("  %s: %s\n", field, msg)
	}
}
