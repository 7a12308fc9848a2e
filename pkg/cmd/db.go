package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakuray/campusvault/pkg/configs"
	"github.com/sakuray/campusvault/pkg/internal/storage/db"
)

var (
	dbCmd = &cobra.Command{
		Use:   "db",
		Short: "Database related commands",
	}

	dbListCmd = &cobra.Command{
		Use:   "ls",
		Short: "list registered database dialects and the configured one",
		Run: func(cmd *cobra.Command, args []string) {
			initConfigIfNeeded()

			configured := configs.GetConfig().DB.Type

			fmt.Fprintln(cmd.OutOrStdout(), "Registered database types:")
			for _, dbType := range db.GetRegisteredDBTypes() {
				marker := ""
				if dbType == configured {
					marker = " (configured)"
				}

				fmt.Fprintln(cmd.OutOrStdout(), " - "+string(dbType)+marker)
			}
		},
	}
)

// registerDBCommands 注册数据库相关命令.
func registerDBCommands() {
	rootCmd.AddCommand(dbCmd)

	dbCmd.AddCommand(dbListCmd)
}
