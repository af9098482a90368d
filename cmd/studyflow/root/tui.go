package root

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/schedule"
	"github.com/sandeepkv93/studyflow/internal/storage"
	"github.com/sandeepkv93/studyflow/internal/update"
	"github.com/sandeepkv93/studyflow/internal/watch"
)

func newTuiCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive plan browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, settings, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			ctx := context.Background()
			tasks, err := repo.ListTasks(ctx, storage.TaskListFilter{})
			if err != nil {
				return err
			}
			commitments, err := repo.ListCommitments(ctx, storage.CommitmentListFilter{})
			if err != nil {
				return err
			}

			today := model.DateOf(time.Now())
			plans := schedule.GeneratePlans(tasks, commitments, settings, today, days)
			editor := schedule.NewEditor(storage.NewEditLog(repo), plans, commitments, settings)
			// The regenerated plans invalidate slots temporary edits pointed at.
			if err := editor.ClearTemporaryEdits(); err != nil {
				return err
			}

			watcher := watch.NewEngine(64)
			watcher.Start()
			defer watcher.Stop()

			m := update.NewModelWithWatcher(tasks, commitments, settings, plans, editor, watcher)
			m.ScheduleDayAlarms(time.Local)

			program := tea.NewProgram(m)
			_, err = program.Run()
			return err
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 14, "Days of plan to generate")
	return cmd
}
