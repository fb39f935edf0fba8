package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conn-castle/project-install/internal/messages"
	"github.com/conn-castle/project-install/internal/projectinstall"
)

func newInstallCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
	}
	cmd.AddCommand(newInstallProjectCmd(root), newInstallPackageCmd(root))
	return cmd
}

func newInstallProjectCmd(root *rootOptions) *cobra.Command {
	var filesPath string

	cmd := &cobra.Command{
		Use:   messages.InstallProjectUse,
		Short: messages.InstallProjectShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readFileItems(cmd, filesPath)
			if err != nil {
				return err
			}
			sess, err := openSession(cmd, root, nil)
			if err != nil {
				return err
			}
			return sess.run(func() error {
				if err := sess.manager.InstallProject(cmd.Context(), items, sess.dir); err != nil {
					return err
				}
				_, _ = successColor.Fprintf(sess.out, messages.InstallProjectDoneFmt, len(items), sess.dir)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filesPath, "files", "", messages.InstallFlagFiles)
	return cmd
}

func newInstallPackageCmd(root *rootOptions) *cobra.Command {
	var filesPath string
	var subdir string
	var manifestPath string
	var deps []string
	var devDeps []string

	cmd := &cobra.Command{
		Use:   messages.InstallPackageUse,
		Short: messages.InstallPackageShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := readFileItems(cmd, filesPath)
			if err != nil {
				return err
			}
			prod, dev, err := packageDependencies(cmd, manifestPath, deps, devDeps)
			if err != nil {
				return err
			}
			sess, err := openSession(cmd, root, nil)
			if err != nil {
				return err
			}
			return sess.run(func() error {
				result, err := sess.manager.InstallAsPackage(cmd.Context(), projectinstall.PackageRequest{
					FileItems:       items,
					Dependencies:    prod,
					DevDependencies: dev,
					DirPath:         sess.dir,
					PackageSubdir:   subdir,
				})
				if err != nil {
					return err
				}
				_, _ = successColor.Fprintf(sess.out, messages.InstallPackageDoneFmt, result.Copied, sess.dir, result.Skipped())
				for _, planned := range result.Plan {
					if planned.Placement == projectinstall.PlacementSkip {
						_, _ = fmt.Fprintf(sess.out, messages.InstallSkippedEntryFmt, planned.Item.RelativeFilePath)
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&filesPath, "files", "", messages.InstallFlagFiles)
	cmd.Flags().StringVar(&subdir, "subdir", "", messages.InstallFlagSubdir)
	cmd.Flags().StringVar(&manifestPath, "manifest", "", messages.InstallFlagManifest)
	cmd.Flags().StringArrayVar(&deps, "deps", nil, messages.InstallFlagDeps)
	cmd.Flags().StringArrayVar(&devDeps, "dev-deps", nil, messages.InstallFlagDevDeps)
	_ = cmd.MarkFlagRequired("subdir")
	return cmd
}
