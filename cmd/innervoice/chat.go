package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/fallback"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/persona"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/session"
)

func newChatCmd() *cobra.Command {
	var personaFlag string

	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation",
		Long: `Start an interactive conversation with a persona.

In-chat commands:
  /switch <id>   switch persona (asks for confirmation, clears the chat)
  /personas      list available personas
  /card          turn the current conversation into an emotion card
  /quit          leave the chat`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			id := persona.ID(personaFlag)
			if personaFlag == "" {
				if cached, err := st.Profile(); err == nil && cached.PreferredCharacter != "" {
					id = persona.ID(cached.PreferredCharacter)
				}
			}

			local := session.LocalResponder{Responder: fallback.New()}
			var responder session.Responder = local
			opts := []session.ConvOption{session.WithRecovery(local)}
			if !cfg.Offline {
				responder = session.BackendResponder{Client: c}
				opts = append(opts, session.WithSessionEnder(c.EndSession))
			}
			conv := session.New(id, responder, opts...)

			settings := st.Settings()
			if err := conv.Start(cmd.Context()); err != nil {
				return err
			}
			printLatest(conv, settings.ShowTimestamps)

			return chatLoop(cmd.Context(), conv, c, cfg.Offline, settings.ShowTimestamps)
		},
	}

	cmd.Flags().StringVar(&personaFlag, "persona", "", "Persona to talk to (sheep, rabbit, fox); defaults to your preferred persona")
	return cmd
}

func chatLoop(ctx context.Context, conv *session.Conversation, c *client.Client, offlineMode, showTimestamps bool) error {
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			endConversation(ctx, conv, c, offlineMode)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "/") {
			quit, err := handleChatCommand(ctx, conv, c, offlineMode, line)
			if err != nil {
				fmt.Println(client.UserMessage(err))
			}
			if quit {
				endConversation(ctx, conv, c, offlineMode)
				return nil
			}
			continue
		}

		p := conv.Persona()
		fmt.Printf("%s %s is thinking...\n", p.Emoji, p.Name)
		if _, err := conv.Send(ctx, line); err != nil {
			switch {
			case errors.Is(err, session.ErrEmptyInput):
				continue
			case errors.Is(err, session.ErrBusy):
				fmt.Println("Still waiting for a reply...")
				continue
			default:
				log.Debug().Err(err).Msg("send failed, fallback message shown")
			}
		}
		printLatest(conv, showTimestamps)
	}
}

// handleChatCommand processes a /-prefixed line; quit=true ends the loop.
func handleChatCommand(ctx context.Context, conv *session.Conversation, c *client.Client, offlineMode bool, line string) (quit bool, err error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil

	case "/personas":
		for _, p := range persona.List() {
			marker := " "
			if p.ID == conv.Persona().ID {
				marker = "*"
			}
			fmt.Printf(" %s %s %s (%s) - %s\n", marker, p.Emoji, p.Name, p.ID, p.Personality.Role)
		}
		return false, nil

	case "/switch":
		if len(fields) < 2 {
			fmt.Println("Usage: /switch <sheep|rabbit|fox>")
			return false, nil
		}
		return false, switchPersona(ctx, conv, persona.ID(fields[1]))

	case "/card":
		if offlineMode {
			fmt.Println("Emotion cards need the backend; start without --offline.")
			return false, nil
		}
		return false, makeCard(ctx, conv, c)

	default:
		fmt.Println("Unknown command. Try /switch, /personas, /card or /quit.")
		return false, nil
	}
}

func switchPersona(ctx context.Context, conv *session.Conversation, target persona.ID) error {
	opened, err := conv.RequestSwitch(target)
	if err != nil {
		return err
	}
	if !opened {
		fmt.Println("You're already talking to them.")
		return nil
	}
	pending, _ := conv.PendingSwitch()
	fmt.Printf("Switch to %s %s? This clears the current conversation. [y/N] ", pending.Emoji, pending.Name)
	if !confirm() {
		conv.CancelSwitch()
		fmt.Println("Staying put.")
		return nil
	}
	if err := conv.ConfirmSwitch(ctx); err != nil {
		return err
	}
	printLatest(conv, false)
	return nil
}

func makeCard(ctx context.Context, conv *session.Conversation, c *client.Client) error {
	sid := conv.SessionID()
	if sid == "" {
		fmt.Println("Say something first; there's no conversation to analyze yet.")
		return nil
	}
	res, err := c.AnalyzeConversation(ctx, sid, conv.Persona().ID)
	if err != nil {
		return err
	}
	card := res.Card
	fmt.Printf("\n  ── %s ──\n", card.Title)
	fmt.Printf("  feeling: %s (%d/10), %s\n", card.PrimaryEmotion, card.Intensity, card.TonePhrase)
	fmt.Printf("  %s\n", card.Summary)
	fmt.Printf("  note: %s\n\n", card.SupportiveNote)
	if res.ConversationDeleted {
		// The server discarded the conversation; start a fresh one.
		if err := conv.Reset(ctx); err != nil {
			return err
		}
		printLatest(conv, false)
	}
	return nil
}

func endConversation(ctx context.Context, conv *session.Conversation, c *client.Client, offlineMode bool) {
	if offlineMode {
		return
	}
	if sid := conv.SessionID(); sid != "" {
		c.EndSession(ctx, sid)
	}
}

// printLatest shows the newest message in the conversation.
func printLatest(conv *session.Conversation, showTimestamps bool) {
	msgs := conv.Messages()
	if len(msgs) == 0 {
		return
	}
	m := msgs[len(msgs)-1]
	if m.FromUser {
		return
	}
	p := persona.Get(m.PersonaID)
	if showTimestamps {
		fmt.Printf("%s %s [%s]: %s\n", p.Emoji, p.Name, m.SentAt.Format("15:04"), m.Text)
	} else {
		fmt.Printf("%s %s: %s\n", p.Emoji, p.Name, m.Text)
	}
}

func confirm() bool {
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
