package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/iudanet/usersync/internal/models"
)

const (
	// minNameWidth меньше не обрезаем, даже на узком терминале
	minNameWidth = 8
	// idWidth + ageWidth + отступы tabwriter
	fixedColumnsWidth = 20 + 3 + 2*2
)

func (c *Cli) renderTable(records []models.Record) {
	if len(records) == 0 {
		c.io.Println("No users.")
		return
	}

	maxName := nameLimit(c.io.Width())

	tw := tabwriter.NewWriter(c.io, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tAGE")
	for _, r := range records {
		id := strconv.FormatInt(r.ID, 10)
		if r.IsTemporary() {
			id += "*"
		}
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d\n", id, truncate(r.Name, maxName), r.Age)
	}
	_ = tw.Flush()

	temp := 0
	for _, r := range records {
		if r.IsTemporary() {
			temp++
		}
	}
	c.io.Printf("%d user(s)", len(records))
	if temp > 0 {
		c.io.Printf(", %d not yet on the server (*)", temp)
	}
	c.io.Println()
}

// nameLimit ширина колонки имени; 0 - без ограничения
func nameLimit(termWidth int) int {
	if termWidth <= 0 {
		return 0
	}
	return max(termWidth-fixedColumnsWidth, minNameWidth)
}

func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-1]) + "…"
}

// NewListCommand creates the list command. It reads the local mirror only.
func NewListCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show users from the local mirror",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				s.cli.List()
				return nil
			})
		},
	}
}

// NewPendingCommand creates the pending command.
func NewPendingCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pending",
		Short: "Show operations waiting for the server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withSession(cmd, func(ctx context.Context, s *session) error {
				return s.cli.Pending(ctx)
			})
		},
	}
}
