package main

import (
	"fmt"
	"os"

	"github.com/mwantia/mycontracts/cmd/mycontracts/cli"
	"github.com/mwantia/mycontracts/cmd/mycontracts/cli/app"
	"github.com/mwantia/mycontracts/cmd/mycontracts/cli/client"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	info := cli.VersionInfo{
		Version: version,
		Commit:  commit,
	}
	root := cli.NewRootCommand(info)

	root.AddCommand(cli.NewVersionCommand(info))

	root.AddCommand(app.NewUICommand())
	root.AddCommand(app.NewConfigCommand())

	root.AddCommand(client.NewHealthCommand())
	root.AddCommand(client.NewWidgetCommand())
	root.AddCommand(client.NewFilesCommand())
	root.AddCommand(client.NewTasksCommand())
	root.AddCommand(client.NewDashboardCommand())
	root.AddCommand(client.NewChatCommand())
	root.AddCommand(client.NewOptimizeCommand())
	root.AddCommand(client.NewAccountsCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
