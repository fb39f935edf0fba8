package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/project-install/internal/messages"
	"github.com/conn-castle/project-install/internal/projectinstall"
)

func newManifestCmd(root *rootOptions) *cobra.Command {
	var fragmentPath string
	var dryRun bool
	var strict bool
	var diffLines int

	cmd := &cobra.Command{
		Use:   messages.ManifestUse,
		Short: messages.ManifestShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fragment, err := readFragment(cmd, fragmentPath)
			if err != nil {
				return err
			}
			sess, err := openSession(cmd, root, func(opts *projectinstall.Options) {
				opts.StrictManifest = strict
				opts.DiffMaxLines = diffLines
			})
			if err != nil {
				return err
			}
			return sess.run(func() error {
				if dryRun {
					preview, err := sess.manager.PreviewManifest(fragment, sess.dir)
					if err != nil {
						return err
					}
					if !preview.Changed() {
						_, err = fmt.Fprintf(sess.out, messages.ManifestUnchangedFmt, preview.Path)
						return err
					}
					_, err = fmt.Fprint(sess.out, preview.UnifiedDiff)
					return err
				}
				if err := sess.manager.WriteNewPackageFile(fragment, sess.dir); err != nil {
					return err
				}
				_, _ = successColor.Fprintf(sess.out, messages.ManifestWrittenFmt, sess.manager.Layout().ManifestPath(sess.dir))
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&fragmentPath, "fragment", "", messages.ManifestFlagFragment)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, messages.ManifestFlagDryRun)
	cmd.Flags().BoolVar(&strict, "strict", false, messages.ManifestFlagStrict)
	cmd.Flags().IntVar(&diffLines, "diff-lines", projectinstall.DefaultDiffMaxLines, messages.ManifestFlagDiffLines)
	_ = cmd.MarkFlagRequired("fragment")

	return cmd
}
