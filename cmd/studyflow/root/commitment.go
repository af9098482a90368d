package root

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/storage"
)

func newCommitmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "commitment",
		Aliases: []string{"commit"},
		Short:   "Manage fixed commitments",
	}
	cmd.AddCommand(newCommitmentAddCmd(), newCommitmentListCmd())
	return cmd
}

func newCommitmentAddCmd() *cobra.Command {
	var kind string
	var start string
	var end string
	var days []string
	var dates []string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a fixed commitment",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			commitment := model.FixedCommitment{
				ID:        uuid.NewString(),
				Title:     args[0],
				Type:      model.CommitmentType(kind),
				StartTime: start,
				EndTime:   end,
				Recurring: len(days) > 0,
			}
			if commitment.Recurring {
				weekdays, err := parseWeekdayFlags(days)
				if err != nil {
					return err
				}
				commitment.DaysOfWeek = weekdays
			}
			for _, raw := range dates {
				d, err := model.ParseDate(raw)
				if err != nil {
					return err
				}
				commitment.SpecificDates = append(commitment.SpecificDates, d)
			}
			if err := commitment.Validate(); err != nil {
				return err
			}
			if err := repo.CreateCommitment(context.Background(), commitment); err != nil {
				return err
			}
			cmd.Printf("added commitment %s (%s)\n", commitment.Title, commitment.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "other", "Commitment type (class|work|appointment|other)")
	cmd.Flags().StringVarP(&start, "start", "s", "", "Start time (HH:MM)")
	cmd.Flags().StringVarP(&end, "end", "e", "", "End time (HH:MM)")
	cmd.Flags().StringSliceVarP(&days, "days", "w", nil, "Recurring weekdays (monday,wednesday,...)")
	cmd.Flags().StringSliceVar(&dates, "dates", nil, "Specific dates (YYYY-MM-DD,...)")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")
	return cmd
}

func newCommitmentListCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List commitments",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			commitments, err := repo.ListCommitments(context.Background(), storage.CommitmentListFilter{Type: model.CommitmentType(kind)})
			if err != nil {
				return err
			}
			for _, c := range commitments {
				when := "dates: " + joinDates(c.SpecificDates)
				if c.Recurring {
					when = "weekly: " + joinWeekdays(c.DaysOfWeek)
				}
				cmd.Printf("%-36s %-20s %s-%s  %s\n", c.ID, c.Title, c.StartTime, c.EndTime, when)
			}
			if len(commitments) == 0 {
				cmd.Println("no commitments")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "Filter by type")
	return cmd
}

var weekdayFlags = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdayFlags(names []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, ok := weekdayFlags[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return nil, errors.New("unknown weekday: " + name)
		}
		out = append(out, day)
	}
	return out, nil
}

func joinWeekdays(days []time.Weekday) string {
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = strings.ToLower(d.String())
	}
	return strings.Join(names, ",")
}

func joinDates(dates []model.Date) string {
	if len(dates) == 0 {
		return "(none)"
	}
	names := make([]string, len(dates))
	for i, d := range dates {
		names[i] = string(d)
	}
	return strings.Join(names, ",")
}
