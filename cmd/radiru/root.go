package main

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"radiru/internal/platform/config"
	"radiru/internal/platform/logger"
	"radiru/internal/platform/metrics"
	"radiru/internal/radiru"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	configURL    string
	cacheFile    string
	fetchTimeout time.Duration
	logLevel     string
	logFormat    string

	// ephemeralCache keeps the document in memory instead of the cache file.
	ephemeralCache bool
}

// app is the wired resolver stack for one invocation.
type app struct {
	log     *slog.Logger
	metrics *metrics.Metrics
	cache   *radiru.Cache
	svc     *radiru.Service
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "radiru",
		Short: "Resolve NHK radio (らじる★らじる) live stream URLs",
		Long: `Resolve the HLS stream URL of an NHK radio channel in a given region.

The station list is read from NHK's published config document, cached under
the user cache directory and refetched once a month.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return usageError{errors.New("a subcommand is required")}
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	f := cmd.PersistentFlags()
	f.StringVar(&opts.configURL, "config-url", config.GetEnv("RADIRU_CONFIG_URL", radiru.DefaultConfigURL), "address of the NHK config document")
	f.StringVar(&opts.cacheFile, "cache-file", config.GetEnv("RADIRU_CACHE_FILE", ""), "cache file path (default <user cache dir>/radiru/config.xml)")
	f.DurationVar(&opts.fetchTimeout, "fetch-timeout", config.GetEnvDuration("RADIRU_FETCH_TIMEOUT", radiru.DefaultFetchTimeout), "timeout for fetching the config document")
	f.StringVar(&opts.logLevel, "log-level", config.GetEnv("LOG_LEVEL", "warn"), "log level: debug, info, warn, error")
	f.StringVar(&opts.logFormat, "log-format", config.GetEnv("LOG_FORMAT", "text"), "log format: text or json")

	cmd.AddCommand(
		newAircheckCmd(opts),
		newStationsCmd(opts),
		newServeCmd(opts),
		newCompletionCmd(),
	)
	return cmd
}

// newApp wires logger, metrics, cache and service. Logs go to w.
func (o *rootOptions) newApp(w io.Writer) (*app, error) {
	log := logger.New(o.logLevel, o.logFormat, w)
	met := metrics.New()

	var (
		store radiru.Store
		path  = o.cacheFile
	)
	if o.ephemeralCache {
		store, path = radiru.NewInMemoryStore(nil), "memory"
	} else {
		if path == "" {
			var err error
			if path, err = radiru.DefaultCachePath(); err != nil {
				return nil, err
			}
		}
		store = radiru.NewFileStore(path)
	}

	fetcher := radiru.NewHTTPFetcher(o.configURL, &http.Client{Timeout: o.fetchTimeout})
	cache := radiru.NewCache(store, fetcher,
		radiru.WithLogger(log.With(slog.String("cache", path))),
		radiru.WithRefreshHook(met.IncCacheRefresh),
	)

	return &app{
		log:     log,
		metrics: met,
		cache:   cache,
		svc:     radiru.NewService(cache, log, met),
	}, nil
}

// completeLocations and completeChannels feed shell completion for the
// --location and --channel flags.
func completeLocations(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, l := range radiru.Locations() {
		out = append(out, l.String()+"\t"+l.DisplayName())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func completeChannels(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	var out []string
	for _, c := range radiru.Channels() {
		out = append(out, c.String())
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
