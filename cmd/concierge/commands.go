package main

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/five82/concierge/internal/app"
	"github.com/five82/concierge/internal/building"
)

func newRootCmd() *cobra.Command {
	var opts app.Options

	root := &cobra.Command{
		Use:           "concierge",
		Short:         "Terminal dashboard for the building administration API",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Run(cmd.Context(), opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "config file (default ~/.config/concierge/config.toml)")
	root.PersistentFlags().StringVar(&opts.PrefsPath, "prefs", "", "preferences file (default ~/.config/concierge/prefs.toml)")
	root.PersistentFlags().StringVar(&opts.BaseURL, "api", "", "override api_base_url")
	root.PersistentFlags().StringVar(&opts.Route, "route", "", "initial screen, e.g. /residents?page=2")
	root.PersistentFlags().IntVar(&opts.PollEvery, "poll", 0, "overview refresh interval in seconds")

	root.AddCommand(listCmd(&opts), demoCmd(&opts))
	return root
}

func listCmd(base *app.Options) *cobra.Command {
	var opts app.ListOptions

	cmd := &cobra.Command{
		Use:       "list <resource>",
		Short:     "Print one page of a resource",
		Long:      "Print one page of " + strings.Join(building.Names(), ", ") + ".",
		Args:      cobra.ExactArgs(1),
		ValidArgs: building.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Options = *base
			opts.Resource = args[0]
			if opts.Output == app.OutputTable && term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					opts.Width = w
				}
			}
			return app.RunList(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Keyword, "keyword", "k", "", "search the default field of the resource")
	cmd.Flags().StringArrayVarP(&opts.Where, "where", "w", nil, "filter field=value (repeatable)")
	cmd.Flags().StringVarP(&opts.Filter, "filter", "f", "", "raw filter expression, e.g. \"status:'Absent'\"")
	cmd.Flags().IntVarP(&opts.Page, "page", "p", 1, "page number")
	cmd.Flags().IntVar(&opts.Size, "size", 0, "page size (default from config)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", app.OutputTable, "output format: table|json|yaml")
	return cmd
}

func demoCmd(base *app.Options) *cobra.Command {
	var opts app.DemoOptions

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the dashboard against an in-memory demo backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Options = *base
			return app.RunDemo(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", "127.0.0.1:8080", "listen address of the demo backend")
	cmd.Flags().StringVar(&opts.Token, "token", "", "bearer token the demo backend requires")
	cmd.Flags().BoolVar(&opts.Headless, "headless", false, "serve the backend only")
	return cmd
}
