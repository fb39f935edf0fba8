package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/project-install/internal/messages"
)

func newCleanCmd(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   messages.CleanUse,
		Short: messages.CleanShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, root, nil)
			if err != nil {
				return err
			}
			staging := sess.manager.Layout().DownloadDirPath(sess.dir)
			proceed, err := confirmRemoval(yes, messages.CleanPromptFmt, staging)
			if err != nil || !proceed {
				sess.close()
				if err == nil {
					_, _ = fmt.Fprintln(sess.out, messages.CleanCancelled)
				}
				return err
			}
			return sess.run(func() error {
				if err := sess.manager.RemoveDownloadDir(sess.dir); err != nil {
					return err
				}
				_, _ = successColor.Fprintf(sess.out, messages.CleanDoneFmt, staging)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	return cmd
}
