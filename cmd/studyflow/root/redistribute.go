package root

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/schedule"
	"github.com/sandeepkv93/studyflow/internal/storage"
)

func newRedistributeCmd() *cobra.Command {
	var days int
	var from string
	var weekendOverflow bool

	cmd := &cobra.Command{
		Use:   "redistribute",
		Short: "Move missed sessions onto upcoming free slots",
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

			start := model.DateOf(time.Now())
			if from != "" {
				if start, err = model.ParseDate(from); err != nil {
					return err
				}
			}

			plans := schedule.GeneratePlans(tasks, commitments, settings, start, days)
			if err := clearTemporaryEdits(repo, plans, commitments, settings); err != nil {
				return err
			}
			plans, result := schedule.Redistribute(plans, tasks, commitments, settings, start, schedule.Options{
				PrioritizeMissed:     true,
				RespectDailyLimits:   true,
				AllowWeekendOverflow: weekendOverflow,
				MaxDays:              days,
			})

			cmd.Printf("moved %d session(s), %d conflict(s) avoided\n", result.Moved, result.ConflictsAvoided)
			for _, failed := range result.Failed {
				cmd.Printf("could not place %s from %s: %s\n", failed.Session.Key(), failed.Date, failed.Reason)
			}
			printPlans(cmd, plans, commitments)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", schedule.DefaultRedistributionDays, "Redistribution window in days")
	cmd.Flags().StringVarP(&from, "from", "f", "", "Anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&weekendOverflow, "weekend-overflow", false, "Allow placement on non-work days")
	return cmd
}
