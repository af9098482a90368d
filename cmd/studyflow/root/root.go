package root

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyflow/internal/config"
	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/schedule"
	"github.com/sandeepkv93/studyflow/internal/storage"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "studyflow",
	Short:         "studyflow — personal study session scheduler",
	Long:          "Studyflow plans study sessions around fixed commitments, checks time conflicts, and redistributes missed work.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newTuiCmd(),
		newPlanCmd(),
		newRedistributeCmd(),
		newTaskCmd(),
		newCommitmentCmd(),
		newEditsCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "studyflow: %v\n", err)
		os.Exit(1)
	}
}

// openRepo loads configuration and opens the migrated database behind it.
func openRepo() (*storage.SQLiteRepository, model.Settings, error) {
	cfg := config.Load()
	settings, err := cfg.Settings()
	if err != nil {
		return nil, model.Settings{}, err
	}
	if dir := filepath.Dir(cfg.DatabasePath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, model.Settings{}, fmt.Errorf("create data dir: %w", err)
		}
	}
	repo, err := storage.OpenSQLite(cfg.DatabasePath)
	if err != nil {
		return nil, model.Settings{}, err
	}
	if err := storage.MigrateUp(repo.DB()); err != nil {
		_ = repo.Close()
		return nil, model.Settings{}, err
	}
	return repo, settings, nil
}

// clearTemporaryEdits drops persisted temporary edits after a plan
// regeneration, which invalidates the slots they pointed at.
func clearTemporaryEdits(repo *storage.SQLiteRepository, plans []*model.StudyPlan, commitments []model.FixedCommitment, settings model.Settings) error {
	return schedule.NewEditor(storage.NewEditLog(repo), plans, commitments, settings).ClearTemporaryEdits()
}
