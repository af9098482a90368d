package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/schedule"
	"github.com/sandeepkv93/studyflow/internal/storage"
)

func newPlanCmd() *cobra.Command {
	var days int
	var from string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate and print study plans",
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
			printPlans(cmd, plans, commitments)
			return nil
		},
	}

	cmd.Flags().IntVarP(&days, "days", "n", 7, "Days to plan")
	cmd.Flags().StringVarP(&from, "from", "f", "", "Start date (YYYY-MM-DD, default today)")
	return cmd
}

func printPlans(cmd *cobra.Command, plans []*model.StudyPlan, commitments []model.FixedCommitment) {
	for _, plan := range plans {
		marker := ""
		if plan.Overloaded {
			marker = " [overloaded]"
		}
		cmd.Printf("%s (%s) %.1f/%.1fh%s\n", plan.Date, plan.Date.Weekday(), plan.TotalHours, plan.AvailableHours, marker)
		for _, c := range schedule.CommitmentsOn(plan.Date, commitments) {
			cmd.Printf("  %s-%s  %s (%s)\n", c.StartTime, c.EndTime, c.Title, c.Type)
		}
		for _, s := range plan.Sessions {
			cmd.Printf("  %s-%s  %-20s %s\n", s.StartTime, s.EndTime, s.Key(), s.Status)
		}
		if len(plan.Sessions) == 0 {
			cmd.Println("  (no sessions)")
		}
	}
	if len(plans) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "nothing to plan")
	}
}
