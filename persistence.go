package genetic_tsp

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	gorm "gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PersistenceConfig locates the run journal. DSN, when set, is handed to the
// sqlite driver verbatim and Path/Name/pragmas are ignored.
type PersistenceConfig struct {
	DSN           string   `toml:"dsn" yaml:"dsn"`
	Name          string   `toml:"name" yaml:"name"`
	Path          string   `toml:"path" yaml:"path"`
	SQLitePragmas []string `toml:"sqlite_pragmas" yaml:"sqlite_pragmas"`
	SQLiteOptions []string `toml:"sqlite_options" yaml:"sqlite_options"`
	BatchSize     int      `toml:"batch_size" yaml:"batch_size"`
}

func (c *PersistenceConfig) dsn() (string, error) {
	if len(c.DSN) > 0 {
		return c.DSN, nil
	}
	if len(c.Path) == 0 {
		return "", fmt.Errorf("%w: path to database must be defined", ErrInvalidConfig)
	}
	if len(c.Name) == 0 {
		return "", fmt.Errorf("%w: name of database must be defined", ErrInvalidConfig)
	}

	var params []string
	for _, prag := range c.SQLitePragmas {
		params = append(params, fmt.Sprintf("_pragma=%s", prag))
	}
	params = append(params, c.SQLiteOptions...)

	var path strings.Builder
	path.WriteString(filepath.Join(c.Path, c.Name))
	if len(params) > 0 {
		path.WriteRune('?')
		path.WriteString(strings.Join(params, "&"))
	}
	return path.String(), nil
}

// RunRecord is one solver run. Checkpoints hold the GenerationMetrics taken
// every check interval.
type RunRecord struct {
	ID             string `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Seed           int64
	Cities         int
	Strategy       string
	PopulationSize int
	PoolSize       int
	Generations    int
	GenerationsRun int
	Outcome        string
	BestDistance   float64
	BestTour       string
	Checkpoints    []GenerationRecord `gorm:"foreignKey:RunID"`
}

type GenerationRecord struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"index"`
	Generation int
	PoolSize   int
	Best       float64
	Mean       float64
	Median     float64
	P90        float64
	StdDev     float64
	Diversity  float64
}

func newGenerationRecord(runID string, m *GenerationMetrics) GenerationRecord {
	return GenerationRecord{
		RunID:      runID,
		Generation: m.Generation,
		PoolSize:   m.PoolSize,
		Best:       m.Best,
		Mean:       m.Mean,
		Median:     m.Median,
		P90:        m.P90,
		StdDev:     m.StdDev,
		Diversity:  m.Diversity,
	}
}

// Persistence is the sqlite run journal. Generation records are buffered and
// written in batches of Config.BatchSize.
type Persistence struct {
	Config  *PersistenceConfig
	DB      *gorm.DB
	pending []GenerationRecord
}

func NewPersistence(config *PersistenceConfig) (*Persistence, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: persistence config cannot be nil", ErrInvalidConfig)
	}
	dsn, err := config.dsn()
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("Failed to open journal %s: %w", dsn, err)
	}

	batch := config.BatchSize
	if batch <= 0 {
		batch = DefaultPersistBatch
	}
	db = db.Session(&gorm.Session{PrepareStmt: true, CreateBatchSize: batch})

	p := &Persistence{Config: config, DB: db}
	if err = p.initialize(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Persistence) initialize() error {
	return p.DB.AutoMigrate(
		&RunRecord{},
		&GenerationRecord{},
	)
}

func (p *Persistence) batchSize() int {
	if p.Config.BatchSize > 0 {
		return p.Config.BatchSize
	}
	return DefaultPersistBatch
}

func (p *Persistence) Shutdown() {
	if err := p.Flush(); err != nil {
		log.Printf("Failed to flush journal on shutdown: %v", err)
	}
	if sqldb, err := p.DB.DB(); err != nil {
		log.Printf("Failed to retrieve raw DB: %v", err)
	} else {
		sqldb.Close()
	}
}

// StartRun assigns an ID when the record has none and stores it.
func (p *Persistence) StartRun(run *RunRecord) error {
	if run == nil {
		return fmt.Errorf("%w: run cannot be nil", ErrInvalidConfig)
	}
	if len(run.ID) == 0 {
		run.ID = uuid.NewString()
	}
	if result := p.DB.Create(run); result.Error != nil {
		return fmt.Errorf("Failed to create run %s: %w", run.ID, result.Error)
	}
	return nil
}

// RecordGeneration buffers a checkpoint, flushing once a batch is full.
func (p *Persistence) RecordGeneration(runID string, m *GenerationMetrics) error {
	p.pending = append(p.pending, newGenerationRecord(runID, m))
	if len(p.pending) >= p.batchSize() {
		return p.Flush()
	}
	return nil
}

func (p *Persistence) Flush() error {
	if len(p.pending) == 0 {
		return nil
	}
	if result := p.DB.CreateInBatches(p.pending, p.batchSize()); result.Error != nil {
		return fmt.Errorf("Failed to save %d generation records: %w", len(p.pending), result.Error)
	}
	p.pending = p.pending[:0]
	return nil
}

// FinishRun flushes pending checkpoints and stores the run outcome.
func (p *Persistence) FinishRun(runID string, result *Result) error {
	if err := p.Flush(); err != nil {
		return err
	}
	updates := map[string]interface{}{
		"generations_run": result.GenerationsRun,
		"outcome":         result.Outcome,
		"best_distance":   result.Distance,
		"best_tour":       result.Tour.String(),
	}
	if res := p.DB.Model(&RunRecord{}).Where("id = ?", runID).Updates(updates); res.Error != nil {
		return fmt.Errorf("Failed to finish run %s: %w", runID, res.Error)
	}
	return nil
}

// ListRuns returns the most recent runs first, without checkpoints.
func (p *Persistence) ListRuns(limit int) ([]RunRecord, error) {
	var runs []RunRecord
	q := p.DB.Order("created_at desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if result := q.Find(&runs); result.Error != nil {
		return nil, fmt.Errorf("Failed to list runs: %w", result.Error)
	}
	return runs, nil
}

// LoadRun fetches a run with its checkpoints in generation order.
func (p *Persistence) LoadRun(id string) (*RunRecord, error) {
	var run RunRecord
	result := p.DB.Preload("Checkpoints", func(db *gorm.DB) *gorm.DB {
		return db.Order("generation asc")
	}).First(&run, "id = ?", id)
	if result.Error != nil {
		return nil, fmt.Errorf("Failed to load run %s: %w", id, result.Error)
	}
	return &run, nil
}
