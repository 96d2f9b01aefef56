package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/dearbones/dearbones/internal/datasync"
	"github.com/dearbones/dearbones/internal/flashcard"
	"github.com/dearbones/dearbones/internal/statistics"
)

// PrintImportResult writes the summary of an import run.
func PrintImportResult(w io.Writer, result *datasync.ImportResult) {
	if result.Cancelled {
		_, _ = fmt.Fprintln(w, "Import cancelled.")
		return
	}
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)

	_, _ = fmt.Fprintln(w)
	_, _ = green.Fprintf(w, "Imported %d cards\n", result.Imported)
	if len(result.DecksCreated) > 0 {
		_, _ = fmt.Fprintf(w, "Created decks: %s\n", strings.Join(result.DecksCreated, ", "))
	}
	if len(result.Errors) > 0 {
		_, _ = red.Fprintf(w, "Skipped %d rows:\n", len(result.Errors))
		for _, e := range result.Errors {
			_, _ = fmt.Fprintf(w, "  %s\n", e)
		}
	}
}

// PrintExportResult writes where an export went.
func PrintExportResult(w io.Writer, result *datasync.ExportResult) {
	if result.Cancelled {
		_, _ = fmt.Fprintln(w, "Export cancelled.")
		return
	}
	_, _ = color.New(color.FgGreen).Fprintf(w, "Exported to %s\n", result.Path)
}

// PrintDecks lists decks as a table.
func PrintDecks(w io.Writer, decks []flashcard.Deck) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tDECK\tCARDS\tTAGS\tUPDATED")
	for _, d := range decks {
		_, _ = fmt.Fprintf(tw, "%s\t%s %s\t%d\t%s\t%s\n",
			d.ID, d.Emoji, d.Name, d.CardCount, strings.Join(d.Tags, ","), d.UpdatedAt.Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

// PrintCards lists cards as a table.
func PrintCards(w io.Writer, cards []flashcard.Card) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTYPE\tFRONT\tBACK\tTAGS\tSTUDIED")
	for _, c := range cards {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%d\n",
			c.ID, c.Type(), oneLine(FormatFront(c)), oneLine(c.Back), strings.Join(c.Tags, ","), c.StudyCount)
	}
	_ = tw.Flush()
}

// PrintStats writes the summary for label followed by the per-day breakdown.
func PrintStats(w io.Writer, label string, stats statistics.StudyStatistics, daily []statistics.DailyStatistics) {
	bold := color.New(color.Bold)
	_, _ = bold.Fprintf(w, "%s\n", label)
	_, _ = fmt.Fprintf(w, "  Total cards:     %d\n", stats.TotalCards)
	_, _ = fmt.Fprintf(w, "  Studied today:   %d\n", stats.CardsStudiedToday)
	_, _ = fmt.Fprintf(w, "  Accuracy:        %d%%\n", int(math.Round(stats.Accuracy)))
	_, _ = fmt.Fprintf(w, "  Time spent:      %dm\n", int(math.Round(stats.TimeSpentMinutes)))
	_, _ = fmt.Fprintf(w, "  Streak:          %d days\n", stats.Streak)
	if len(daily) == 0 {
		return
	}

	_, _ = fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "DAY\tSESSIONS\tCARDS\tACCURACY")
	for _, d := range daily {
		_, _ = fmt.Fprintf(tw, "%s\t%d\t%d\t%d%%\n", d.Day, d.Sessions, d.UniqueCards, int(math.Round(d.Accuracy)))
	}
	_ = tw.Flush()
}

func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if r := []rune(s); len(r) > 40 {
		s = string(r[:40]) + "..."
	}
	return s
}
