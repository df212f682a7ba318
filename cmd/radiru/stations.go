package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"radiru/internal/radiru"
)

func newStationsCmd(root *rootOptions) *cobra.Command {
	var withURLs bool

	cmd := &cobra.Command{
		Use:   "stations",
		Short: "List every location and channel",
		Long: `List every location and channel pair.

With --urls each pair is resolved against the cached config document; pairs
that have no stream are listed with a dash.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

			if !withURLs {
				for _, st := range radiru.Stations() {
					fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", st.Location, st.Channel, st.Location.DisplayName(), st.Channel.Title())
				}
				return tw.Flush()
			}

			a, err := root.newApp(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			for _, st := range radiru.Stations() {
				url, err := a.svc.Resolve(cmd.Context(), st.Location, st.Channel)
				switch {
				case errors.Is(err, radiru.ErrDocumentExhausted), errors.Is(err, radiru.ErrEmptyEndpoint):
					url = "-"
				case err != nil:
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", st.Location, st.Channel, st.Location.DisplayName(), st.Channel.Title(), url)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&withURLs, "urls", false, "resolve and print each stream URL")
	return cmd
}
