package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gcinnervoice-hash/Inner-voice-sub000/client"
	"github.com/gcinnervoice-hash/Inner-voice-sub000/journal"
)

func newJournalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Browse and manage your emotion cards",
	}
	cmd.AddCommand(newJournalListCmd())
	cmd.AddCommand(newJournalStatsCmd())
	cmd.AddCommand(newJournalDeleteCmd())
	cmd.AddCommand(newJournalClearCmd())
	return cmd
}

func newJournalListCmd() *cobra.Command {
	var (
		view    string
		emotion string
		group   string
		tag     string
		from    string
		to      string
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List emotion cards, grouped by day or as a flat grid",
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := journal.Filter{
				Emotion: emotion,
				Group:   client.EmotionGroup(group),
				Tag:     tag,
				Limit:   limit,
			}
			var err error
			if filter.From, err = parseDay(from); err != nil {
				return err
			}
			if filter.To, err = parseDay(to); err != nil {
				return err
			}

			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			j := journal.New(c)
			j.SetFilter(filter)
			j.SetView(journal.ViewMode(view))
			j.Load(ctx)

			if err := j.CardsError(); err != nil {
				fmt.Println(client.UserMessage(err))
				fmt.Println("Retrying...")
				if err := j.RetryCards(ctx); err != nil {
					return err
				}
			}

			if j.Total() == 0 {
				fmt.Println("No emotion cards yet. Finish a conversation with /card to make one.")
				return nil
			}

			switch j.View() {
			case journal.ViewGrid:
				for _, card := range j.Cards() {
					printCard(card)
				}
			default:
				for _, day := range j.CalendarDays() {
					fmt.Printf("%s (%d)\n", day.Date, day.Total)
					for _, card := range day.Visible {
						fmt.Printf("  %s  %s (%d/10)  %s\n", card.ID, card.PrimaryEmotion, card.Intensity, card.Title)
					}
					if day.Overflow > 0 {
						fmt.Printf("  +%d more\n", day.Overflow)
					}
				}
			}
			fmt.Printf("%d cards total\n", j.Total())
			return nil
		},
	}

	cmd.Flags().StringVar(&view, "view", "calendar", "Presentation: calendar or grid")
	cmd.Flags().StringVar(&emotion, "emotion", "", "Only cards with this primary emotion")
	cmd.Flags().StringVar(&group, "group", "", "Only cards in this emotion group (positive, negative, mixed)")
	cmd.Flags().StringVar(&tag, "tag", "", "Only cards carrying this life-area tag")
	cmd.Flags().StringVar(&from, "from", "", "Earliest day to include (YYYY-MM-DD)")
	cmd.Flags().StringVar(&to, "to", "", "Latest day to include (YYYY-MM-DD)")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum cards to fetch (0 = server default)")
	return cmd
}

func newJournalStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show journal statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			j := journal.New(c)
			j.LoadStats(ctx)
			if err := j.StatsError(); err != nil {
				fmt.Println(client.UserMessage(err))
				fmt.Println("Retrying...")
				if err := j.RetryStats(ctx); err != nil {
					return err
				}
			}

			stats := j.Stats()
			if stats == nil || stats.TotalCards == 0 {
				fmt.Println("No data yet.")
				return nil
			}
			fmt.Printf("cards: %d  streak: %d days  average intensity: %.1f\n",
				stats.TotalCards, stats.StreakDays, stats.AverageIntensity)
			if stats.MostUsedPersona != "" {
				fmt.Printf("most talked to: %s\n", stats.MostUsedPersona)
			}
			for group, n := range stats.ByGroup {
				fmt.Printf("  %s: %d\n", group, n)
			}
			return nil
		},
	}
}

func newJournalDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete one emotion card",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
			defer cancel()

			if err := journal.New(c).DeleteCard(ctx, args[0]); err != nil {
				if errors.Is(err, client.ErrNotFound) {
					fmt.Println("No such card.")
					return nil
				}
				fmt.Println(client.UserMessage(err))
				return err
			}
			fmt.Println("Deleted.")
			return nil
		},
	}
}

func newJournalClearCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every emotion card",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, c, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			j := journal.New(c)
			j.RequestClearAll()
			if !yes {
				fmt.Print("Delete ALL emotion cards? This cannot be undone. [y/N] ")
				if !confirm() {
					j.CancelClearAll()
					fmt.Println("Nothing deleted.")
					return nil
				}
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
			defer cancel()

			n, err := j.ConfirmClearAll(ctx)
			if err != nil {
				fmt.Println(client.UserMessage(err))
				return err
			}
			fmt.Printf("Deleted %d cards.\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func printCard(card client.EmotionCard) {
	fmt.Printf("%s  %s\n", card.Timestamp.Local().Format("2006-01-02 15:04"), card.Title)
	fmt.Printf("  id: %s\n", card.ID)
	fmt.Printf("  feeling: %s (%d/10), %s\n", card.PrimaryEmotion, card.Intensity, card.TonePhrase)
	fmt.Printf("  %s\n", card.Summary)
	if len(card.Tags) > 0 {
		fmt.Printf("  tags: %v\n", card.Tags)
	}
}

func parseDay(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected YYYY-MM-DD, got %q", s)
	}
	return t, nil
}
