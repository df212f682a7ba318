package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"radiru/internal/platform/config"
	"radiru/internal/radiru"
	"radiru/internal/recorder"
)

const (
	flagLocation = "location"
	flagChannel  = "channel"
)

type aircheckOptions struct {
	location string
	channel  string
	refresh  bool
	output   string
	duration time.Duration
	ffmpeg   string
	grace    time.Duration
}

func newAircheckCmd(root *rootOptions) *cobra.Command {
	opts := &aircheckOptions{}

	cmd := &cobra.Command{
		Use:   "aircheck",
		Short: "Print the stream URL of a channel, or record it",
		Long: `Print the HLS stream URL of a channel in a region.

With --output and --duration the stream is recorded with ffmpeg instead and
the written file's path is printed. ffmpeg is killed if it runs longer than
the duration plus --grace.`,
		Example: `  radiru aircheck --location tokyo --channel fm
  radiru aircheck -l osaka -c r1 --output news --duration 15m`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAircheck(cmd, root, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.location, flagLocation, "l", "", "broadcast region (sapporo, sendai, tokyo, nagoya, osaka, hiroshima, matsuyama, fukuoka)")
	f.StringVarP(&opts.channel, flagChannel, "c", "", "channel (r1, r2, fm)")
	f.BoolVar(&opts.refresh, "refresh", false, "refetch the config document even if the cache is fresh")
	f.StringVarP(&opts.output, "output", "o", "", "record to this file instead of printing the URL")
	f.DurationVarP(&opts.duration, "duration", "d", 0, "recording length, e.g. 30m")
	f.StringVar(&opts.ffmpeg, "ffmpeg", config.GetEnv("RADIRU_FFMPEG", recorder.DefaultBinary), "recording program")
	f.DurationVar(&opts.grace, "grace", recorder.DefaultGrace, "extra time the recording may take before it is killed")

	_ = cmd.RegisterFlagCompletionFunc(flagLocation, completeLocations)
	_ = cmd.RegisterFlagCompletionFunc(flagChannel, completeChannels)

	return cmd
}

func runAircheck(cmd *cobra.Command, root *rootOptions, opts *aircheckOptions) error {
	if opts.location == "" || opts.channel == "" {
		return usageError{errors.New("--location and --channel are required")}
	}
	loc, err := radiru.ParseLocation(opts.location)
	if err != nil {
		return err
	}
	ch, err := radiru.ParseChannel(opts.channel)
	if err != nil {
		return err
	}
	recording := opts.output != "" || opts.duration != 0
	if recording && (opts.output == "" || opts.duration <= 0) {
		return usageError{errors.New("--output and a positive --duration must be given together")}
	}

	a, err := root.newApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if opts.refresh {
		if err := a.svc.Refresh(ctx); err != nil {
			return err
		}
	}

	url, err := a.svc.Resolve(ctx, loc, ch)
	if err != nil {
		return err
	}

	if !recording {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), url)
		return err
	}

	rec := recorder.New(opts.ffmpeg, opts.grace, a.log)
	path, err := rec.Record(ctx, url, opts.output, opts.duration)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
	return err
}
