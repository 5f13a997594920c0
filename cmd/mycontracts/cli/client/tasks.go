package client

import (
	"fmt"
	"io"
	"time"

	"github.com/mwantia/mycontracts/internal/app"
	"github.com/mwantia/mycontracts/pkg/derive"
	"github.com/spf13/cobra"
)

func NewTasksCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List documents with a due date",
		Long:  "List the documents that carry a due date, labelled relative to today.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				tasks, err := a.Client().ListTasks(cmd.Context())
				if err != nil {
					return err
				}

				now := time.Now()
				return render(cmd, tasks, func(w io.Writer) {
					fmt.Fprintln(w, "ID\tDUE\tDATE\tFILENAME")
					for _, f := range tasks {
						fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", f.ID, derive.DueLabel(f.DueDate, now), derive.FormatDate(f.DueDate), f.Filename)
					}
				})
			})
		},
	}

	addOutputFlag(cmd)
	return cmd
}

func NewDashboardCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show document statistics",
		Long:  "Aggregate the document list into overdue, attention, OCR and categorization counts with recommendations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				files, err := a.Client().ListFiles(cmd.Context())
				if err != nil {
					return err
				}

				d := derive.Aggregate(files, time.Now())
				result := struct {
					derive.Dashboard `yaml:",inline"`
					Recommendations  []string `json:"recommendations" yaml:"recommendations"`
				}{d, d.Recommendations()}

				return render(cmd, result, func(w io.Writer) {
					fmt.Fprintf(w, "Total files\t%d\n", d.Total)
					fmt.Fprintf(w, "Overdue\t%d\n", d.Overdue)
					fmt.Fprintf(w, "Needs attention\t%d\n", d.NeedsAttention)
					fmt.Fprintf(w, "Due in 30 days\t%d\n", d.UpcomingDue)
					fmt.Fprintf(w, "OCR issues\t%d\n", d.OcrIssues)
					fmt.Fprintf(w, "Missing info\t%d\n", d.MissingInfo)
					fmt.Fprintf(w, "Uncategorized\t%d\n", d.Uncategorized)
					fmt.Fprintf(w, "Urgent\t%d\n", d.Urgent)
					fmt.Fprintln(w)
					for _, r := range result.Recommendations {
						fmt.Fprintf(w, "- %s\n", r)
					}
				})
			})
		},
	}

	addOutputFlag(cmd)
	return cmd
}
