package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/project-install/internal/messages"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	dir        string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.Flags().BoolP("version", "v", false, messages.RootVersionFlag)
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", messages.RootFlagConfig)
	cmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", messages.RootFlagDir)

	cmd.AddCommand(
		newManifestCmd(opts),
		newDownloadCmd(opts),
		newInstallCmd(opts),
		newCleanCmd(opts),
	)
	return cmd
}
