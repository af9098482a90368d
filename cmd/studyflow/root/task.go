package root

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/studyflow/internal/model"
	"github.com/sandeepkv93/studyflow/internal/storage"
)

func newTaskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Manage study tasks",
	}
	cmd.AddCommand(newTaskAddCmd(), newTaskListCmd())
	return cmd
}

func newTaskAddCmd() *cobra.Command {
	var hours float64
	var deadline string
	var important bool
	var oneSitting bool
	var frequency string
	var preferred string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a task",
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

			task := model.Task{
				ID:             uuid.NewString(),
				Title:          args[0],
				EstimatedHours: hours,
				Important:      important,
				Prefs: model.SchedulingPrefs{
					Frequency:         model.Frequency(frequency),
					PreferredTime:     model.PreferredTime(preferred),
					OneSittingPerTask: oneSitting,
				},
			}
			if deadline != "" {
				d, err := model.ParseDate(deadline)
				if err != nil {
					return err
				}
				task.Deadline = &d
			}
			if err := task.Validate(); err != nil {
				return err
			}
			if err := repo.CreateTask(context.Background(), task); err != nil {
				return err
			}
			cmd.Printf("added task %s (%s)\n", task.Title, task.ID)
			return nil
		},
	}

	cmd.Flags().Float64VarP(&hours, "hours", "H", 1, "Estimated hours of work")
	cmd.Flags().StringVarP(&deadline, "deadline", "d", "", "Deadline (YYYY-MM-DD)")
	cmd.Flags().BoolVarP(&important, "important", "i", false, "Mark as important")
	cmd.Flags().BoolVar(&oneSitting, "one-sitting", false, "Schedule in a single session")
	cmd.Flags().StringVar(&frequency, "frequency", "", "Scheduling frequency (daily|3x-week|flexible)")
	cmd.Flags().StringVar(&preferred, "preferred", "", "Preferred time of day (morning|afternoon|evening)")
	return cmd
}

func newTaskListCmd() *cobra.Command {
	var importantOnly bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			filter := storage.TaskListFilter{}
			if importantOnly {
				v := true
				filter.Important = &v
			}
			tasks, err := repo.ListTasks(context.Background(), filter)
			if err != nil {
				return err
			}
			for _, t := range tasks {
				deadline := "-"
				if t.Deadline != nil {
					deadline = string(*t.Deadline)
				}
				marker := " "
				if t.Important {
					marker = "!"
				}
				cmd.Printf("%s %-36s %-30s %5.1fh  due %s\n", marker, t.ID, t.Title, t.EstimatedHours, deadline)
			}
			if len(tasks) == 0 {
				cmd.Println("no tasks")
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&importantOnly, "important", "i", false, "Only important tasks")
	return cmd
}
