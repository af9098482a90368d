package root

import (
	"context"

	"github.com/spf13/cobra"
)

func newEditsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edits",
		Short: "List recorded session time edits",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, _, err := openRepo()
			if err != nil {
				return err
			}
			defer repo.Close()

			edits, err := repo.ListEdits(context.Background())
			if err != nil {
				return err
			}
			for _, e := range edits {
				flag := ""
				if e.Temporary {
					flag = " [temporary]"
				}
				cmd.Printf("%s %-20s %s -> %s (edited %s)%s\n",
					e.PlanDate, e.Key(), e.OriginalStart, e.NewStart, e.EditedAt.Format("2006-01-02 15:04"), flag)
			}
			if len(edits) == 0 {
				cmd.Println("no session time edits")
			}
			return nil
		},
	}
	return cmd
}
