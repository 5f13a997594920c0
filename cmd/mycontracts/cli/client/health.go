package client

import (
	"fmt"
	"io"

	"github.com/mwantia/mycontracts/internal/app"
	"github.com/mwantia/mycontracts/pkg/api"
	"github.com/mwantia/mycontracts/pkg/derive"
	"github.com/spf13/cobra"
)

func NewHealthCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "health",
		Short: "Check the backend health",
		Long:  "Queries the backend health endpoint and fails unless the backend reports UP.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				health, err := a.Client().Health(cmd.Context())
				if err != nil {
					state := "unhealthy"
					if api.IsKind(err, api.KindTransport) {
						state = "offline"
					}
					fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", state, a.Client().BaseURL())
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", health.Status, a.Client().BaseURL())
				if !health.IsUp() {
					return fmt.Errorf("backend reports status '%s'", health.Status)
				}
				return nil
			})
		},
	}

	return cmd
}

func NewWidgetCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "widget",
		Short: "Show the backend status snapshot",
		Long:  "Shows the compact status snapshot the backend prepares for home screen widgets.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(func(a *app.App) error {
				status, err := a.Client().WidgetStatus(cmd.Context())
				if err != nil {
					return err
				}

				return render(cmd, status, func(w io.Writer) {
					fmt.Fprintf(w, "Files\t%d\n", status.TotalFiles)
					fmt.Fprintf(w, "Needs attention\t%d\n", status.NeedsAttention)
					fmt.Fprintf(w, "Overdue\t%d\n", status.OverdueCount)
					fmt.Fprintf(w, "Urgent\t%d\n", status.UrgentCount)
					fmt.Fprintf(w, "Due in 30 days\t%d\n", status.UpcomingDueDates30)
					fmt.Fprintf(w, "OCR pending/failed\t%d/%d\n", status.OcrPending, status.OcrFailed)
					for _, f := range status.RecentFiles {
						fmt.Fprintf(w, "Recent\t%s\t%s\n", f.Filename, derive.FormatDate(f.CreatedAt))
					}
				})
			})
		},
	}

	addOutputFlag(cmd)
	return cmd
}
