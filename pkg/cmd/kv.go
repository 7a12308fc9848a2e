package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakuray/campusvault/pkg/configs"
	kv "github.com/sakuray/campusvault/pkg/internal/storage/kv"
)

var (
	kvCmd = &cobra.Command{
		Use:     "kv",
		Short:   "Key-Value store related commands",
		Aliases: []string{"keyvalue"},
	}

	kvListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list registered kv backends and the configured one",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			initConfigIfNeeded()

			configured := configs.GetConfig().KV.Type

			fmt.Fprintln(cmd.OutOrStdout(), "Registered kv types:")
			for _, t := range kv.GetRegisteredKVTypes() {
				marker := ""
				if string(t) == configured {
					marker = " (configured)"
				}

				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t)+marker)
			}
		},
	}
)

// registerKVCommands 注册 KV 相关命令.
func registerKVCommands() {
	rootCmd.AddCommand(kvCmd)
	kvCmd.AddCommand(kvListCmd)
}
