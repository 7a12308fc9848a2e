package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakuray/campusvault/pkg/configs"
	"github.com/sakuray/campusvault/pkg/internal/storage/blob"
)

var (
	blobCmd = &cobra.Command{
		Use:   "blob",
		Short: "Blob store related commands",
	}

	blobListCmd = &cobra.Command{
		Use:     "list",
		Short:   "list registered blob backends and the configured one",
		Aliases: []string{"ls", "l"},
		Run: func(cmd *cobra.Command, args []string) {
			initConfigIfNeeded()

			configured := configs.GetConfig().Blob.Type

			fmt.Fprintln(cmd.OutOrStdout(), "Registered blob store types:")
			for _, t := range blob.GetRegisteredBlobTypes() {
				marker := ""
				if t == configured {
					marker = " (configured)"
				}

				fmt.Fprintln(cmd.OutOrStdout(), "   - "+string(t)+marker)
			}
		},
	}
)

// registerBlobCommands 注册 Blob 相关命令.
func registerBlobCommands() {
	rootCmd.AddCommand(blobCmd)
	blobCmd.AddCommand(blobListCmd)
}
