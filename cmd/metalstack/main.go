package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"MetalStack/internal/cache"
	"MetalStack/internal/collector"
	"MetalStack/internal/config"
	"MetalStack/internal/dashboard"
	"MetalStack/internal/model"
	"MetalStack/internal/portfolio"
	"MetalStack/internal/render"
	"MetalStack/internal/settings"
	"MetalStack/internal/terminal"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

var log = logrus.WithField("module", "main")

const defaultReportWidth = 100

func main() {
	if err := newRootCmd(viper.New()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	root := &cobra.Command{
		Use:           "metalstack",
		Short:         "Live precious metals prices and a physical holdings tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			v.SetEnvPrefix("METALSTACK")
			v.AutomaticEnv()
			if err := v.BindPFlags(cmd.Root().PersistentFlags()); err != nil {
				return err
			}
			return v.BindPFlags(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(v)
			if err != nil {
				return fail(cmd, err)
			}
			defer a.close()
			if v.GetBool("once") {
				return fail(cmd, a.runOnce(cmd, v))
			}
			return fail(cmd, a.runDashboard(cmd.Context(), v))
		},
	}

	root.PersistentFlags().String("config", "", "config file (default "+config.DefaultPath()+")")
	root.Flags().String("metal", "", "metal to select: gold, silver, platinum or palladium")
	root.Flags().String("period", "", "chart period: 1w, 1m, ytd, 1y or 5y")
	root.Flags().Bool("chart", false, "include a price chart with --once")
	root.Flags().Bool("once", false, "print prices and holdings once and exit")

	root.AddCommand(
		newAddCmd(v),
		newRemoveCmd(v),
		newEditCmd(v),
		newListCmd(v),
		newChartCmd(v),
		newCacheCmd(v),
	)
	return root
}

// fail prints err to stderr; cobra turns the returned error into exit code 1.
func fail(cmd *cobra.Command, err error) error {
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// app holds the stores and the price source shared by every command.
type app struct {
	cfg       *config.Config
	cache     cache.Cache
	portfolio *portfolio.Manager
	settings  *settings.Store
	collector *collector.Collector
}

func loadApp(v *viper.Viper) (*app, error) {
	path := v.GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	setupLogging(cfg, false)

	return &app{
		cfg:       cfg,
		portfolio: portfolio.NewManager(cfg.CollectionPath()),
		settings:  settings.NewStore(cfg.SettingsPath()),
	}, nil
}

// prices validates the source settings and builds the collector on first
// use, so holdings edits work without an API key.
func (a *app) prices() (*collector.Collector, error) {
	if a.collector != nil {
		return a.collector, nil
	}
	if err := a.cfg.Validate(); err != nil {
		return nil, err
	}
	a.cache = a.openCache()

	client := collector.NewHTTPClient(a.cfg.Proxy, a.cfg.Timeout())
	var fetcher collector.Fetcher
	switch a.cfg.Source.Provider {
	case config.ProviderYahoo:
		fetcher = collector.NewYahooFetcher(client, a.cache, a.cfg.CacheTTL())
	case config.ProviderMock:
		fetcher = collector.NewMockFetcher()
	default:
		fetcher = collector.NewMetalsDevFetcher(a.cfg.Source.BaseURL, a.cfg.Source.APIKey, client, a.cache, a.cfg.CacheTTL())
	}
	log.WithField("source", fetcher.Name()).Info("price source ready")

	a.collector = collector.NewCollector(fetcher, a.cfg.CacheTTL())
	return a.collector, nil
}

// openCache opens the response cache and drops expired rows. A cache that
// cannot be opened degrades to no caching.
func (a *app) openCache() cache.Cache {
	c, err := cache.NewSQLiteCache(a.cfg.Cache.SQLitePath)
	if err != nil {
		log.WithError(err).Warn("init sqlite cache failed, caching disabled")
		return cache.NewNoopCache()
	}
	if _, err := c.Prune(a.cfg.CacheTTL()); err != nil {
		log.WithError(err).Warn("prune cache failed")
	}
	return c
}

func (a *app) close() {
	if a.cache == nil {
		return
	}
	if err := a.cache.Close(); err != nil {
		log.WithError(err).Warn("close cache failed")
	}
}

// applySelection stores --metal and --period so the dashboard starts on them.
func (a *app) applySelection(v *viper.Viper) error {
	if s := v.GetString("metal"); s != "" {
		m, err := model.ParseMetal(s)
		if err != nil {
			return err
		}
		if err := a.settings.SetSelectedMetal(m); err != nil {
			return err
		}
	}
	if s := v.GetString("period"); s != "" {
		p, err := model.ParsePeriod(s)
		if err != nil {
			return err
		}
		for i, dp := range model.DashboardPeriods {
			if dp == p {
				return a.settings.SetChartPeriodIndex(i)
			}
		}
		return fmt.Errorf("period %s is not available in the dashboard", p)
	}
	return nil
}

func (a *app) runDashboard(ctx context.Context, v *viper.Viper) error {
	if err := a.applySelection(v); err != nil {
		return err
	}
	src, err := a.prices()
	if err != nil {
		return err
	}
	closeLog := setupLogging(a.cfg, true)
	defer closeLog()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	t := terminal.Open()
	d := dashboard.New(dashboard.Options{
		Source:    src,
		Portfolio: a.portfolio,
		Settings:  a.settings,
		Terminal:  t,
		Painter:   render.NewScreenPainter(t),
	})

	stopResize := notifyResize(d.MarkDirty)
	defer stopResize()

	log.Info("dashboard starting")
	return d.Run(ctx)
}

func (a *app) runOnce(cmd *cobra.Command, v *viper.Viper) error {
	src, err := a.prices()
	if err != nil {
		return err
	}
	selected := a.settings.SelectedMetal()
	if s := v.GetString("metal"); s != "" {
		if selected, err = model.ParseMetal(s); err != nil {
			return err
		}
	}

	ctx := cmd.Context()
	prices, err := src.FetchAll(ctx)
	if err != nil {
		return err
	}
	holdings, err := a.portfolio.List()
	if err != nil {
		return err
	}

	var chart *render.ChartData
	if v.GetBool("chart") {
		period := model.DashboardPeriod(a.settings.ChartPeriodIndex())
		if s := v.GetString("period"); s != "" {
			if period, err = model.ParsePeriod(s); err != nil {
				return err
			}
		}
		series, err := src.FetchHistory(ctx, selected, period)
		if err != nil {
			return err
		}
		chart = &render.ChartData{Period: period, Series: series}
	}

	fmt.Fprintln(cmd.OutOrStdout(), render.Report(prices, selected, holdings, chart, outputWidth()))
	return nil
}

// outputWidth is the stdout terminal width, or a fixed width when piped.
func outputWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return defaultReportWidth
}

// setupLogging sends logs to stderr at warning level for CLI commands, or to
// the log file while the dashboard owns the terminal. The returned func closes
// the log file.
func setupLogging(cfg *config.Config, toFile bool) (closeLog func()) {
	closeLog = func() {}
	if !toFile {
		logrus.SetOutput(os.Stderr)
		logrus.SetLevel(logrus.WarnLevel)
		return closeLog
	}

	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Log.File), 0o755); err != nil {
		logrus.SetLevel(logrus.PanicLevel)
		return closeLog
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		// stderr would corrupt the screen
		logrus.SetLevel(logrus.PanicLevel)
		return closeLog
	}
	logrus.SetOutput(f)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	logrus.SetLevel(level)
	return func() {
		logrus.SetOutput(os.Stderr)
		f.Close()
	}
}
