package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakuray/campusvault/pkg/configs"
	mq "github.com/sakuray/campusvault/pkg/internal/storage/mq"
)

var (
	mqCmd = &cobra.Command{
		Use:     "mq",
		Short:   "Message queue related commands",
		Aliases: []string{"messagequeue"},
	}

	mqListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list registered mq backends and the configured one",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			initConfigIfNeeded()

			configured := configs.GetConfig().MQ.Type

			fmt.Fprintln(cmd.OutOrStdout(), "Registered mq types:")
			for _, t := range mq.GetRegisteredMQTypes() {
				marker := ""
				if t == configured {
					marker = " (configured)"
				}

				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t)+marker)
			}
		},
	}
)

// registerMQCommands 注册 MQ 相关命令.
func registerMQCommands() {
	rootCmd.AddCommand(mqCmd)
	mqCmd.AddCommand(mqListCmd)
}
