package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gpucloudstore/gpucloud-site/internal/catalog"
	"github.com/gpucloudstore/gpucloud-site/internal/inquiry"
	"github.com/gpucloudstore/gpucloud-site/pkg/logging"
	"github.com/spf13/cobra"
)

const defaultEndpoint = "http://localhost:8080" + inquiry.DefaultEndpoint

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "leadctl",
		Short:         "GPUcloud.store lead capture from the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCatalogCmd(), newSubmitCmd())
	return root
}

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog [query]",
		Short: "Search the GPU configurations",
		Long: `Search the GPU configurations by title and specs. Every word of the
query must match.

Example:
  leadctl catalog            # list everything
  leadctl catalog h100 nvme`,
		RunE: func(cmd *cobra.Command, args []string) error {
			matches := catalog.Search(strings.Join(args, " "))
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No configurations match.")
				return nil
			}
			for _, o := range matches {
				fmt.Fprintf(out, "%s\n  %s\n  %s\n", o.Title, o.Specs, o.Price)
			}
			return nil
		},
	}
}

type submitOptions struct {
	endpoint string
	locale   string
	timeout  time.Duration
	name     string
	company  string
	email    string
	role     string
	message  string
	selected []string
}

func newSubmitCmd() *cobra.Command {
	opts := &submitOptions{}
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send an inquiry to the contact gateway",
		Long: `Send an inquiry to the contact gateway. Either --message or at least one
--select is required.

Example:
  leadctl submit --name "Jane Doe" --email jane@example.com --select "H100 x4"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSubmit(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.endpoint, "endpoint", envOr("LEADCTL_ENDPOINT", defaultEndpoint), "contact gateway URL")
	f.StringVar(&opts.locale, "locale", envOr("LANG", ""), "preferred locale for status messages")
	f.DurationVar(&opts.timeout, "timeout", 15*time.Second, "request timeout")
	f.StringVar(&opts.name, "name", "", "your name")
	f.StringVar(&opts.company, "company", "", "company")
	f.StringVar(&opts.email, "email", "", "work email")
	f.StringVar(&opts.role, "role", "", "role")
	f.StringVar(&opts.message, "message", "", "project details")
	f.StringArrayVar(&opts.selected, "select", nil, "configuration title to attach (repeatable)")
	return cmd
}

func runSubmit(ctx context.Context, out io.Writer, opts *submitOptions) error {
	if ctx == nil {
		ctx = context.Background()
	}
	session := inquiry.NewSession(opts.endpoint, posixLocale(opts.locale),
		&http.Client{Timeout: opts.timeout}, logging.NewWithFormat("error", "text", os.Stderr))

	for _, title := range opts.selected {
		o, ok := catalog.Lookup(title)
		if !ok {
			return fmt.Errorf("unknown or ambiguous configuration %q", title)
		}
		session.Cart().Add(o)
	}

	session.Form().Set(inquiry.FieldName, opts.name)
	session.Form().Set(inquiry.FieldCompany, opts.company)
	session.Form().Set(inquiry.FieldEmail, opts.email)
	session.Form().Set(inquiry.FieldRole, opts.role)
	session.Form().Set(inquiry.FieldMessage, opts.message)

	_, err := session.Submit(ctx)
	var verr *inquiry.ValidationError
	if errors.As(err, &verr) {
		for _, fe := range verr.Fields {
			fmt.Fprintf(out, "--%s: %s\n", fe.Field, fe.Message)
		}
		return errors.New("inquiry not sent")
	}

	view := session.View()
	if view.ShowMessage {
		fmt.Fprintln(out, view.Message)
	}
	return err
}

// posixLocale turns values like "de_DE.UTF-8" into BCP 47 tags.
func posixLocale(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, ".@"); i >= 0 {
		raw = raw[:i]
	}
	if raw == "C" || raw == "POSIX" {
		return ""
	}
	return strings.ReplaceAll(raw, "_", "-")
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
