package client

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/mycontracts/internal/app"
	"github.com/mwantia/mycontracts/pkg/models"
	"github.com/mwantia/mycontracts/pkg/view"
	"github.com/spf13/cobra"
)

func NewChatCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "chat <question>...",
		Short: "Ask the assistant",
		Long:  "Ask the assistant a question, optionally about a single document.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			question := strings.TrimSpace(strings.Join(args, " "))
			if question == "" {
				return fmt.Errorf("empty question")
			}

			var fileID *int64
			if file != "" {
				id, err := parseID(file)
				if err != nil {
					return err
				}
				fileID = &id
			}

			return withApp(func(a *app.App) error {
				cc := view.NewChatController(a.Client(), a.Logger())
				cc.SetContext(fileID, file)
				cc.Send(cmd.Context(), question)

				state := cc.State()
				reply := state.Messages[len(state.Messages)-1]
				fmt.Fprintln(cmd.OutOrStdout(), reply.Content)

				if usage, ok := state.RateLimit.UsagePercentage(); ok {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s quota: %d%% used\n", state.RateLimit.APIName, usage)
				}
				if reply.Role == models.RoleError {
					return fmt.Errorf("assistant request failed")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "document id the question is about")
	return cmd
}

func NewOptimizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize <id>",
		Short: "Analyze a contract for improvements",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return withApp(func(a *app.App) error {
				result, err := a.Client().Optimize(cmd.Context(), id)
				if err != nil {
					return err
				}

				return render(cmd, result, func(w io.Writer) {
					fmt.Fprintf(w, "%s\n", result.Summary)
					section(w, "Suggestions", result.Suggestions)
					section(w, "Risks", result.Risks)
					section(w, "Improvements", result.Improvements)
				})
			})
		},
	}

	addOutputFlag(cmd)
	return cmd
}

func section(w io.Writer, title string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", title)
	for _, item := range items {
		fmt.Fprintf(w, "- %s\n", item)
	}
}
