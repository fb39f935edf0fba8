package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/project-install/internal/messages"
)

func newDownloadCmd(root *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   messages.DownloadUse,
		Short: messages.DownloadShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url := args[0]
			sess, err := openSession(cmd, root, nil)
			if err != nil {
				return err
			}
			staging := sess.manager.Layout().DownloadDirPath(sess.dir)
			proceed, err := confirmRemoval(yes, messages.DownloadReplaceFmt, staging)
			if err != nil || !proceed {
				sess.close()
				if err == nil {
					_, _ = fmt.Fprintln(sess.out, messages.DownloadCancelled)
				}
				return err
			}
			return sess.run(func() error {
				if err := sess.manager.DownloadPackage(cmd.Context(), url, sess.dir); err != nil {
					return err
				}
				_, _ = successColor.Fprintf(sess.out, messages.DownloadDoneFmt, url, staging)
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, messages.FlagYes)
	return cmd
}
