package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/bootstrap"
	"github.com/dearbones/dearbones/internal/cli"
	"github.com/dearbones/dearbones/internal/flashcard"
	"github.com/dearbones/dearbones/internal/learning"
	"github.com/dearbones/dearbones/internal/statistics"
)

func newStudyCommand() *cobra.Command {
	studyCmd := &cobra.Command{
		Use:   "study",
		Short: "Study decks and review progress",
	}
	studyCmd.AddCommand(
		newStudyStartCommand(),
		newStudyNextCommand(),
		newStudyRecordCommand(),
		newStudyStatsCommand(),
	)
	return studyCmd
}

type queueOptions struct {
	mode  learning.Mode
	limit int
}

func (o *queueOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().Var(&o.mode, "mode", "study mode: standard, spaced-repetition or shuffle (default from settings)")
	cmd.Flags().IntVar(&o.limit, "limit", 0, "number of cards (default from settings, 0 keeps the setting)")
}

// studyQueue orders the deck's cards using the flags, falling back to the stored settings.
func studyQueue(ctx context.Context, app *bootstrap.App, deckID string, opts queueOptions) (*flashcard.Deck, []flashcard.Card, bool, error) {
	deck, err := app.Decks.FindByID(ctx, deckID)
	if err != nil {
		return nil, nil, false, err
	}
	settingsService, err := app.SettingsService()
	if err != nil {
		return nil, nil, false, err
	}
	current, err := settingsService.Load(ctx)
	if err != nil {
		return nil, nil, false, err
	}

	mode := opts.mode
	if mode == "" {
		if mode, err = learning.ParseMode(current.StudyMode); err != nil {
			return nil, nil, false, err
		}
	}
	limit := opts.limit
	if limit <= 0 {
		limit = current.CardsPerSession
	}

	cards, err := app.Cards.FindByDeck(ctx, deckID)
	if err != nil {
		return nil, nil, false, err
	}
	sessions, err := app.Sessions.FindByDeck(ctx, deckID)
	if err != nil {
		return nil, nil, false, err
	}
	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	return deck, learning.BuildQueue(cards, sessions, mode, limit, rng), current.ShowTimer, nil
}

func newStudyStartCommand() *cobra.Command {
	var opts queueOptions
	cmd := &cobra.Command{
		Use:   "start <deck-id>",
		Short: "Study a deck interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				deck, queue, showTimer, err := studyQueue(cmd.Context(), app, args[0], opts)
				if err != nil {
					return err
				}
				recorder, err := app.Recorder()
				if err != nil {
					return err
				}
				study := cli.NewStudyCLI(*deck, queue, recorder, showTimer, cmd.InOrStdin(), cmd.OutOrStdout())
				return cli.Run(cmd.Context(), cmd.OutOrStdout(), study)
			})
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newStudyNextCommand() *cobra.Command {
	var opts queueOptions
	cmd := &cobra.Command{
		Use:   "next <deck-id>",
		Short: "Show the cards the next study session would ask",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				_, queue, _, err := studyQueue(cmd.Context(), app, args[0], opts)
				if err != nil {
					return err
				}
				cli.PrintCards(cmd.OutOrStdout(), queue)
				return nil
			})
		},
	}
	opts.addFlags(cmd)
	return cmd
}

func newStudyRecordCommand() *cobra.Command {
	var (
		cardID     string
		confidence int
		responseMs int
	)
	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record one review of a card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				card, err := app.Cards.FindByID(cmd.Context(), cardID)
				if err != nil {
					return err
				}
				recorder, err := app.Recorder()
				if err != nil {
					return err
				}
				session, err := recorder.Record(cmd.Context(), learning.StudySession{
					DeckID:         card.DeckID,
					CardID:         card.ID,
					Confidence:     confidence,
					ResponseTimeMs: responseMs,
				})
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), session.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&cardID, "card", "", "card id")
	cmd.Flags().IntVar(&confidence, "confidence", 0, "confidence from 1 to 5")
	cmd.Flags().IntVar(&responseMs, "response-ms", 0, "response time in milliseconds")
	_ = cmd.MarkFlagRequired("card")
	_ = cmd.MarkFlagRequired("confidence")
	return cmd
}

func newStudyStatsCommand() *cobra.Command {
	var (
		deckID string
		daily  bool
	)
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show study statistics for a deck or every deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				ctx := cmd.Context()
				label := "All decks"
				var (
					cards    []flashcard.Card
					sessions []learning.StudySession
					err      error
				)
				if deckID != "" {
					deck, err := app.Decks.FindByID(ctx, deckID)
					if err != nil {
						return err
					}
					label = fmt.Sprintf("%s %s", deck.Emoji, deck.Name)
					if cards, err = app.Cards.FindByDeck(ctx, deckID); err != nil {
						return err
					}
					if sessions, err = app.Sessions.FindByDeck(ctx, deckID); err != nil {
						return err
					}
				} else {
					if cards, err = app.Cards.FindAll(ctx); err != nil {
						return err
					}
					if sessions, err = app.Sessions.FindAll(ctx); err != nil {
						return err
					}
				}

				now := time.Now()
				var perDay []statistics.DailyStatistics
				if daily {
					perDay = statistics.ByDay(sessions, now.Location())
				}
				cli.PrintStats(cmd.OutOrStdout(), label, statistics.Calculate(len(cards), sessions, now), perDay)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "deck id; every deck when empty")
	cmd.Flags().BoolVar(&daily, "daily", false, "add a per-day breakdown")
	return cmd
}
