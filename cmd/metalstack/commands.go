package main

import (
	"fmt"
	"strconv"

	"MetalStack/internal/cache"
	"MetalStack/internal/model"
	"MetalStack/internal/portfolio"
	"MetalStack/internal/render"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// holdingFlags are the holding fields shared by add and edit.
type holdingFlags struct {
	name     string
	metal    string
	weight   string
	quantity int
	year     int
}

func (f *holdingFlags) register(cmd *cobra.Command, quantityDefault int) {
	cmd.Flags().StringVar(&f.name, "name", "", "item name, e.g. \"American Gold Eagle\"")
	cmd.Flags().StringVar(&f.metal, "metal", "", "gold, silver, platinum or palladium")
	cmd.Flags().StringVar(&f.weight, "weight", "", "weight per piece in troy ounces")
	cmd.Flags().IntVar(&f.quantity, "quantity", quantityDefault, "number of pieces")
	cmd.Flags().IntVar(&f.year, "year", 0, "mint year")
}

func newAddCmd(v *viper.Viper) *cobra.Command {
	var f holdingFlags
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a holding to the collection",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := f.holding()
			if err != nil {
				return fail(cmd, err)
			}
			a, err := loadApp(v)
			if err != nil {
				return fail(cmd, err)
			}
			if err := a.portfolio.Add(h); err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%d x %s %s)\n", h.Name, h.Quantity, render.FormatWeight(h.WeightOz), h.Metal.Title())
			return nil
		},
	}
	f.register(cmd, 1)
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("metal")
	_ = cmd.MarkFlagRequired("weight")
	return cmd
}

func (f *holdingFlags) holding() (model.Holding, error) {
	metal, err := model.ParseMetal(f.metal)
	if err != nil {
		return model.Holding{}, err
	}
	weight, err := decimal.NewFromString(f.weight)
	if err != nil {
		return model.Holding{}, fmt.Errorf("invalid weight %q: %w", f.weight, err)
	}
	h := model.Holding{Name: f.name, Metal: metal, WeightOz: weight, Quantity: f.quantity}
	if f.year != 0 {
		year := f.year
		h.Year = &year
	}
	return h, nil
}

// patch collects only the flags the user set.
func (f *holdingFlags) patch(cmd *cobra.Command) (portfolio.Patch, error) {
	var p portfolio.Patch
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = &f.name
	}
	if flags.Changed("metal") {
		m, err := model.ParseMetal(f.metal)
		if err != nil {
			return p, err
		}
		p.Metal = &m
	}
	if flags.Changed("weight") {
		w, err := decimal.NewFromString(f.weight)
		if err != nil {
			return p, fmt.Errorf("invalid weight %q: %w", f.weight, err)
		}
		p.WeightOz = &w
	}
	if flags.Changed("quantity") {
		p.Quantity = &f.quantity
	}
	if flags.Changed("year") {
		p.Year = &f.year
	}
	return p, nil
}

// itemIndex converts the 1-based item number argument.
func itemIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("item number must be a positive integer, got %q", arg)
	}
	return n - 1, nil
}

func newRemoveCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "remove N",
		Short: "Remove the N-th holding (see list)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := itemIndex(args[0])
			if err != nil {
				return fail(cmd, err)
			}
			a, err := loadApp(v)
			if err != nil {
				return fail(cmd, err)
			}
			h, err := a.portfolio.Remove(idx)
			if err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", h.Name)
			return nil
		},
	}
}

func newEditCmd(v *viper.Viper) *cobra.Command {
	var f holdingFlags
	cmd := &cobra.Command{
		Use:   "edit N",
		Short: "Change fields of the N-th holding",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := itemIndex(args[0])
			if err != nil {
				return fail(cmd, err)
			}
			p, err := f.patch(cmd)
			if err != nil {
				return fail(cmd, err)
			}
			a, err := loadApp(v)
			if err != nil {
				return fail(cmd, err)
			}
			h, err := a.portfolio.Update(idx, p)
			if err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated #%d %s\n", idx+1, h.Name)
			return nil
		},
	}
	f.register(cmd, 1)
	return cmd
}

func newListCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show holdings with their current spot value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(v)
			if err != nil {
				return fail(cmd, err)
			}
			defer a.close()

			items, err := a.portfolio.List()
			if err != nil {
				return fail(cmd, err)
			}

			var prices model.Prices
			if src, err := a.prices(); err != nil {
				log.WithError(err).Warn("prices unavailable")
			} else if prices, err = src.FetchAll(cmd.Context()); err != nil {
				log.WithError(err).Warn("fetch prices failed, values omitted")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, render.HoldingsTable(items, prices, false))
			if len(items) > 0 && prices != nil {
				s := portfolio.Summarize(items, prices)
				fmt.Fprintf(out, "Total value: %s  24h: %s\n", render.FormatPrice(s.TotalValue), render.FormatChange(s.Change, s.ChangePct))
			}
			return nil
		},
	}
}

func newChartCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Print a price chart for one metal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			metal, err := model.ParseMetal(v.GetString("metal"))
			if err != nil {
				return fail(cmd, err)
			}
			period, err := model.ParsePeriod(v.GetString("period"))
			if err != nil {
				return fail(cmd, err)
			}

			a, err := loadApp(v)
			if err != nil {
				return fail(cmd, err)
			}
			defer a.close()
			src, err := a.prices()
			if err != nil {
				return fail(cmd, err)
			}
			series, err := src.FetchHistory(cmd.Context(), metal, period)
			if err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), render.ChartReport(metal, period, series, outputWidth()))
			return nil
		},
	}
	cmd.Flags().String("metal", string(model.Gold), "gold, silver, platinum or palladium")
	cmd.Flags().String("period", model.PeriodMonth.String(), "1w, 1m, ytd, 1y, 5y or all")
	return cmd
}

func newCacheCmd(v *viper.Viper) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the response cache",
	}
	cacheCmd.AddCommand(&cobra.Command{
		Use:   "prune",
		Short: "Delete expired cached responses",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(v)
			if err != nil {
				return fail(cmd, err)
			}
			c, err := cache.NewSQLiteCache(a.cfg.Cache.SQLitePath)
			if err != nil {
				return fail(cmd, err)
			}
			defer c.Close()
			n, err := c.Prune(a.cfg.CacheTTL())
			if err != nil {
				return fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pruned %d expired responses\n", n)
			return nil
		},
	})
	return cacheCmd
}
