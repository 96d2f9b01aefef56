package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dearbones/dearbones/internal/bootstrap"
	"github.com/dearbones/dearbones/internal/cli"
	"github.com/dearbones/dearbones/internal/flashcard"
)

func newDeckCommand() *cobra.Command {
	deckCmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage decks",
	}
	deckCmd.AddCommand(
		newDeckListCommand(),
		newDeckCreateCommand(),
		newDeckUpdateCommand(),
		newDeckDeleteCommand(),
	)
	return deckCmd
}

func newDeckListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				decks, err := app.Decks.FindAll(cmd.Context())
				if err != nil {
					return err
				}
				cli.PrintDecks(cmd.OutOrStdout(), decks)
				return nil
			})
		},
	}
}

func newDeckCreateCommand() *cobra.Command {
	var (
		description string
		emoji       string
		tags        []string
	)
	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				deck := &flashcard.Deck{
					Name:        args[0],
					Description: description,
					Emoji:       emoji,
					Tags:        flashcard.Tags(tags),
				}
				if err := app.Decks.Create(cmd.Context(), deck); err != nil {
					return fmt.Errorf("create deck: %w", err)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), deck.ID)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "deck description")
	cmd.Flags().StringVar(&emoji, "emoji", flashcard.DefaultDeckEmoji, "deck emoji")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "comma separated tags")
	return cmd
}

func newDeckUpdateCommand() *cobra.Command {
	var (
		name        string
		description string
		emoji       string
		tags        []string
	)
	cmd := &cobra.Command{
		Use:   "update <deck-id>",
		Short: "Change a deck's name, description, emoji or tags",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch flashcard.DeckPatch
			if cmd.Flags().Changed("name") {
				patch.Name = &name
			}
			if cmd.Flags().Changed("description") {
				patch.Description = &description
			}
			if cmd.Flags().Changed("emoji") {
				patch.Emoji = &emoji
			}
			if cmd.Flags().Changed("tags") {
				t := flashcard.Tags(tags)
				patch.Tags = &t
			}
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				if err := app.Decks.Update(cmd.Context(), args[0], patch); err != nil {
					return fmt.Errorf("update deck: %w", err)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&description, "description", "", "new description")
	cmd.Flags().StringVar(&emoji, "emoji", "", "new emoji")
	cmd.Flags().StringSliceVar(&tags, "tags", nil, "new comma separated tags")
	return cmd
}

func newDeckDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <deck-id>",
		Short: "Delete a deck with its cards, study sessions and audio files",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				return app.FlashcardService().DeleteDeck(cmd.Context(), args[0])
			})
		},
	}
}
