// Package cli implements contactctl, the operator tool for the contact store.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/portfolio/contact-api/internal/config"
	"github.com/portfolio/contact-api/internal/model"
	"github.com/portfolio/contact-api/internal/repository"
)

const previewLength = 40

// Options configures the root command. Zero values fall back to the process
// environment and stdout.
type Options struct {
	Getenv func(string) string
	Out    io.Writer
}

// NewRootCommand builds the contactctl command tree.
func NewRootCommand(opts Options) *cobra.Command {
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}

	root := &cobra.Command{
		Use:           "contactctl",
		Short:         "Inspect the contact form submission store",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	if opts.Out != nil {
		root.SetOut(opts.Out)
	}

	root.AddCommand(newInitCommand(opts), newListCommand(opts))
	return root
}

func newInitCommand(opts Options) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the contacts table if it does not exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, closeStore, err := repository.OpenContactRepository(cmd.Context(), config.LoadStore(opts.Getenv))
			if err != nil {
				return err
			}
			closeStore()
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "contacts table ready")
			return nil
		},
	}
}

func newListCommand(opts Options) *cobra.Command {
	var (
		limit        int
		offset       int
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored submissions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if outputFormat != "table" && outputFormat != "json" {
				return fmt.Errorf("unsupported output format %q (want table or json)", outputFormat)
			}
			subs, err := listSubmissions(cmd.Context(), config.LoadStore(opts.Getenv), model.ListOptions{Limit: limit, Offset: offset})
			if err != nil {
				return err
			}
			if subs == nil {
				subs = []*model.ContactSubmission{}
			}

			w := cmd.OutOrStdout()
			if outputFormat == "json" {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(subs)
			}
			writeTable(w, subs)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of submissions to show")
	cmd.Flags().IntVar(&offset, "offset", 0, "Number of newest submissions to skip")
	cmd.Flags().StringVarP(&outputFormat, "output", "o", "table", "Output format: table or json")
	return cmd
}

func listSubmissions(ctx context.Context, store config.StoreConfig, opts model.ListOptions) ([]*model.ContactSubmission, error) {
	repo, closeStore, err := repository.OpenContactRepository(ctx, store)
	if err != nil {
		return nil, err
	}
	defer closeStore()
	return repo.List(ctx, opts)
}

func writeTable(w io.Writer, subs []*model.ContactSubmission) {
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tTIMESTAMP\tNAME\tEMAIL\tSUBJECT\tMESSAGE")
	for _, s := range subs {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			s.ID, s.Timestamp, oneLine(s.Name), oneLine(s.Email), oneLine(s.Subject), preview(s.Message))
	}
	_ = tw.Flush()
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func preview(s string) string {
	s = oneLine(s)
	r := []rune(s)
	if len(r) <= previewLength {
		return s
	}
	return string(r[:previewLength-1]) + "…"
}
