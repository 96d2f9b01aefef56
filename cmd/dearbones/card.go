package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/bootstrap"
	"github.com/dearbones/dearbones/internal/cli"
	"github.com/dearbones/dearbones/internal/flashcard"
)

func newCardCommand() *cobra.Command {
	cardCmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}
	cardCmd.AddCommand(
		newCardListCommand(),
		newCardAddCommand(),
		newCardDeleteCommand(),
	)
	return cardCmd
}

func newCardListCommand() *cobra.Command {
	var deckID string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the cards of a deck, or every card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				var (
					cards []flashcard.Card
					err   error
				)
				if deckID != "" {
					cards, err = app.Cards.FindByDeck(cmd.Context(), deckID)
				} else {
					cards, err = app.Cards.FindAll(cmd.Context())
				}
				if err != nil {
					return err
				}
				cli.PrintCards(cmd.OutOrStdout(), cards)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&deckID, "deck", "", "deck id")
	return cmd
}

type cardAddOptions struct {
	deckID    string
	cardType  string
	front     string
	audioFile string
	audioName string
	back      string
	tags      []string
}

func newCardAddCommand() *cobra.Command {
	var opts cardAddOptions
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a card to a deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				card, err := addCard(cmd.Context(), app, opts)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), card.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&opts.deckID, "deck", "", "deck id")
	cmd.Flags().StringVar(&opts.cardType, "type", string(flashcard.CardTypeText), "card type: text, audio or mixed")
	cmd.Flags().StringVar(&opts.front, "front", "", "front text")
	cmd.Flags().StringVar(&opts.audioFile, "audio", "", "audio file for the front")
	cmd.Flags().StringVar(&opts.audioName, "audio-name", "", "label for the audio file")
	cmd.Flags().StringVar(&opts.back, "back", "", "back text")
	cmd.Flags().StringSliceVar(&opts.tags, "tags", nil, "comma separated tags")
	_ = cmd.MarkFlagRequired("deck")
	_ = cmd.MarkFlagRequired("back")
	return cmd
}

// addCard copies the audio file, if any, and creates the card. The copied
// asset is removed again when the card cannot be created.
func addCard(ctx context.Context, app *bootstrap.App, opts cardAddOptions) (*flashcard.Card, error) {
	cardType, err := flashcard.ParseCardType(opts.cardType)
	if err != nil {
		return nil, err
	}

	var ref flashcard.AudioRef
	if cardType.NeedsAudio() {
		if opts.audioFile == "" {
			return nil, fmt.Errorf("--audio is required for %s cards", cardType)
		}
		asset, err := app.Audio.CopyAudioFile(ctx, opts.audioFile)
		if err != nil {
			return nil, fmt.Errorf("copy audio file: %w", err)
		}
		name := opts.audioName
		if name == "" {
			name = filepath.Base(opts.audioFile)
		}
		ref = flashcard.AudioRef{Path: asset.InternalPath, Name: name}
	}

	front, err := flashcard.NewFront(cardType, opts.front, ref)
	if err != nil {
		return nil, err
	}
	card := &flashcard.Card{
		DeckID:     opts.deckID,
		Front:      front,
		Back:       opts.back,
		Tags:       flashcard.Tags(opts.tags),
		Scheduling: flashcard.DefaultScheduling(),
	}
	if err := app.Cards.Create(ctx, card); err != nil {
		if ref.Path != "" {
			if delErr := app.Audio.DeleteAudioFile(ctx, ref.Path); delErr != nil {
				slog.Default().Warn("could not remove copied audio file", "file", ref.Path, "error", delErr)
			}
		}
		return nil, fmt.Errorf("create card: %w", err)
	}
	return card, nil
}

func newCardDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <card-id>",
		Short: "Delete a card and its audio file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				return app.FlashcardService().DeleteCard(cmd.Context(), args[0])
			})
		},
	}
}
