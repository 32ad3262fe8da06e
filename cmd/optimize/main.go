package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	gt "nickandperla.net/genetic_tsp"
)

var (
	configPath  string
	inputPath   string
	outputPath  string
	dbPath      string
	population  int
	generations int
	capacity    int
	strategy    string
	seed        int64
	verbose     bool
)

func main() {
	cmd := &cobra.Command{
		Use:          "optimize",
		Short:        "Evolve a short closed tour over the cities in the input file",
		SilenceUsage: true,
		RunE:         run,
	}

	flags := cmd.Flags()
	flags.StringVar(&configPath, "config", "", "Run config path (.toml or .yaml)")
	flags.StringVar(&inputPath, "input", "input.txt", "City list: a count, then one \"x y z\" per line")
	flags.StringVar(&outputPath, "output", "output.txt", "Where to write the best tour")
	flags.StringVar(&dbPath, "db", "", "sqlite run journal (disabled when empty)")
	flags.IntVar(&population, "population", 0, "Population size (overrides config)")
	flags.IntVar(&generations, "generations", 0, "Generation count (overrides config)")
	flags.IntVar(&capacity, "capacity", 0, "Mating pool carrying capacity (overrides config)")
	flags.StringVar(&strategy, "strategy", "", "Seeding strategy: random or greedy (overrides config)")
	flags.Int64Var(&seed, "seed", 0, "RNG seed, 0 picks one from the clock (overrides config)")
	flags.BoolVar(&verbose, "verbose", false, "Log every checkpoint")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	log.SetOutput(os.Stderr)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05"})
	if !verbose {
		log.SetLevel(log.WarnLevel)
	}

	config, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	in, err := os.Open(inputPath)
	if err != nil {
		log.Errorf("Unable to open input: %v", err)
		return err
	}
	cities, err := gt.ReadCities(in)
	in.Close()
	if err != nil {
		log.Errorf("Unable to read cities from %s: %v", inputPath, err)
		return err
	}

	var persist *gt.Persistence
	if config.Persistence != nil {
		if persist, err = gt.NewPersistence(config.Persistence); err != nil {
			log.Errorf("Failed to create or initialize Persistence: %v", err)
			return err
		}
		defer persist.Shutdown()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, cs, err := gt.NewSolver(config, persist).Solve(ctx, cities)
	if err != nil {
		log.Errorf("Solve failed: %v", err)
		return err
	}

	out, err := os.Create(outputPath)
	if err != nil {
		log.Errorf("Unable to create output: %v", err)
		return err
	}
	defer out.Close()
	if err := gt.WriteTour(out, cs, result.Tour); err != nil {
		log.Errorf("Unable to write tour: %v", err)
		return err
	}

	cmd.Printf("%s cities, %s generations (%s), seed %d: distance %.3f\n",
		humanize.Comma(int64(cs.Len())), humanize.Comma(int64(result.GenerationsRun)),
		result.Outcome, result.Seed, result.Distance)
	if result.RunID != "" {
		cmd.Printf("run %s journaled to %s\n", result.RunID, dbPath)
	}
	return nil
}

func loadConfig(cmd *cobra.Command) (*gt.RunConfig, error) {
	config := gt.DefaultRunConfig()
	if configPath != "" {
		var err error
		if config, err = gt.LoadConfig(configPath); err != nil {
			log.Errorf("Unable to load run config: %v", err)
			return nil, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("population") {
		config.PopulationSize = population
	}
	if flags.Changed("generations") {
		config.Engine.Generations = generations
	}
	if flags.Changed("capacity") {
		config.Engine.CarryingCapacity = capacity
	}
	if flags.Changed("strategy") {
		s, err := gt.ParseStrategy(strategy)
		if err != nil {
			return nil, err
		}
		config.Strategy = s
	}
	if flags.Changed("seed") {
		config.Seed = seed
	}
	if len(dbPath) > 0 {
		config.Persistence = &gt.PersistenceConfig{DSN: dbPath}
	} else if config.Persistence != nil {
		dbPath = config.Persistence.DSN
		if len(dbPath) == 0 {
			dbPath = filepath.Join(config.Persistence.Path, config.Persistence.Name)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}
