package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gt "nickandperla.net/genetic_tsp"
)

var (
	dbPath string
	limit  int
)

func main() {
	root := &cobra.Command{
		Use:          "runs",
		Short:        "Inspect the solver run journal",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "runs.db", "sqlite run journal")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}
	list.Flags().IntVar(&limit, "limit", 20, "How many runs to show, 0 for all")

	show := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its checkpoints",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	root.AddCommand(list, show)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openJournal() (*gt.Persistence, error) {
	if _, err := os.Stat(dbPath); err != nil {
		log.Errorf("No journal at %s: %v", dbPath, err)
		return nil, err
	}
	p, err := gt.NewPersistence(&gt.PersistenceConfig{DSN: dbPath})
	if err != nil {
		log.Errorf("Failed to create or initialize Persistence: %v", err)
		return nil, err
	}
	return p, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	p, err := openJournal()
	if err != nil {
		return err
	}
	defer p.Shutdown()

	runs, err := p.ListRuns(limit)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTARTED\tCITIES\tSTRATEGY\tGENERATIONS\tOUTCOME\tBEST")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s/%s\t%s\t%.3f\n",
			r.ID, humanize.Time(r.CreatedAt), humanize.Comma(int64(r.Cities)), r.Strategy,
			humanize.Comma(int64(r.GenerationsRun)), humanize.Comma(int64(r.Generations)),
			outcome(r.Outcome), r.BestDistance)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	p, err := openJournal()
	if err != nil {
		return err
	}
	defer p.Shutdown()

	r, err := p.LoadRun(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s)\n", r.ID, humanize.Time(r.CreatedAt))
	fmt.Fprintf(out, "  seed %d, %s cities, %s seeding, population %s, pool %s\n",
		r.Seed, humanize.Comma(int64(r.Cities)), r.Strategy,
		humanize.Comma(int64(r.PopulationSize)), humanize.Comma(int64(r.PoolSize)))
	fmt.Fprintf(out, "  %s after %s of %s generations, best distance %.3f\n",
		outcome(r.Outcome), humanize.Comma(int64(r.GenerationsRun)),
		humanize.Comma(int64(r.Generations)), r.BestDistance)
	if len(r.BestTour) > 0 {
		fmt.Fprintf(out, "  tour: %s\n", r.BestTour)
	}

	if len(r.Checkpoints) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GEN\tPOOL\tBEST\tMEAN\tMEDIAN\tP90\tSTDDEV\tDIVERSITY")
	for _, c := range r.Checkpoints {
		fmt.Fprintf(w, "%d\t%d\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\t%.3f\n",
			c.Generation, c.PoolSize, c.Best, c.Mean, c.Median, c.P90, c.StdDev, c.Diversity)
	}
	return w.Flush()
}

func outcome(s string) string {
	if len(s) == 0 {
		return "unfinished"
	}
	return s
}
