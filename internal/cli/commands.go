package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmgilman/go/docstore"
	"github.com/jmgilman/go/docstore/errors"
)

// withStore adapts a store-backed handler into a cobra RunE.
func (a *app) withStore(fn func(cmd *cobra.Command, store *docstore.Store, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		store, err := a.loadStore(cmd)
		if err != nil {
			return err
		}
		return fn(cmd, store, args)
	}
}

func (a *app) newRootPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the resolved documents root",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, _ []string) error {
			root, err := store.Root()
			if err != nil {
				return err
			}
			if a.output != formatText {
				return writeValue(cmd.OutOrStdout(), a.output, map[string]string{"root": root})
			}
			fmt.Fprintln(cmd.OutOrStdout(), root)
			return nil
		}),
	}
}

func (a *app) newExistsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "exists PATH",
		Short: "Report whether a path exists",
		Long: `Report whether PATH exists. Relative paths are resolved against the
documents root; absolute paths are checked as given.`,
		Args: cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, args []string) error {
			exists := store.PathExists(args[0])
			if a.output != formatText {
				return writeValue(cmd.OutOrStdout(), a.output, map[string]any{"path": args[0], "exists": exists})
			}
			fmt.Fprintln(cmd.OutOrStdout(), exists)
			return nil
		}),
	}
}

func (a *app) newMkdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mkdir NAME",
		Short: "Create a folder under the documents root",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, args []string) error {
			if err := store.CreateFolder(args[0]); err != nil {
				return err
			}
			return a.done(cmd, "created", args[0])
		}),
	}
}

func (a *app) newRmdirCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rmdir NAME",
		Short: "Remove a folder and everything in it",
		Args:  cobra.ExactArgs(1),
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, args []string) error {
			if err := store.RemoveFolder(args[0]); err != nil {
				return err
			}
			return a.done(cmd, "removed", args[0])
		}),
	}
}

func (a *app) newMvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mv OLD NEW",
		Short: "Rename a folder",
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, args []string) error {
			if err := store.RenameFolder(args[0], args[1]); err != nil {
				return err
			}
			return a.done(cmd, "renamed", args[1])
		}),
	}
}

func (a *app) newWriteCommand() *cobra.Command {
	var from string
	cmd := &cobra.Command{
		Use:   "write FOLDER FILE",
		Short: "Write a file, creating its folder if needed",
		Long: `Write FILE inside FOLDER, replacing any existing content. The data is read
from --from when given and from standard input otherwise.`,
		Args: cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, args []string) error {
			data, err := readInput(cmd.InOrStdin(), from)
			if err != nil {
				return err
			}
			if err := store.WriteFile(args[0], args[1], data); err != nil {
				return err
			}
			return a.done(cmd, "written", args[0]+"/"+args[1])
		}),
	}
	cmd.Flags().StringVarP(&from, "from", "f", "", "read content from this local file instead of stdin")
	return cmd
}

func readInput(stdin io.Reader, from string) ([]byte, error) {
	if from == "" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeIO, "failed to read standard input")
		}
		return data, nil
	}
	data, err := os.ReadFile(from)
	if err != nil {
		return nil, errors.WithContext(errors.FromFS(err, "failed to read input file"), "path", from)
	}
	return data, nil
}

func (a *app) newRmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rm FOLDER FILE",
		Short: "Remove a file from a folder",
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, args []string) error {
			if err := store.RemoveFile(args[0], args[1]); err != nil {
				return err
			}
			return a.done(cmd, "removed", args[0]+"/"+args[1])
		}),
	}
}

func (a *app) newCatCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cat FOLDER FILE",
		Short: "Print the contents of a file",
		Args:  cobra.ExactArgs(2),
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, args []string) error {
			select {
			case res := <-store.ReadFile(args[0], args[1]):
				if res.Err != nil {
					return res.Err
				}
				_, err := cmd.OutOrStdout().Write(res.Data)
				return err
			case <-cmd.Context().Done():
				return errors.Wrap(cmd.Context().Err(), errors.CodeUnavailable, "read cancelled")
			}
		}),
	}
}

func (a *app) newLsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List folders under the documents root",
		Long:  `List the absolute paths of all non-hidden folders under the documents root.`,
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, _ []string) error {
			folders, err := store.ListFolders()
			if err != nil {
				return err
			}
			if a.output != formatText {
				return writeValue(cmd.OutOrStdout(), a.output, folders)
			}
			for _, f := range folders {
				fmt.Fprintln(cmd.OutOrStdout(), f)
			}
			return nil
		}),
	}
}

func (a *app) newPurgeCommand() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "purge",
		Short: "Remove every folder under the documents root",
		Args:  cobra.NoArgs,
		RunE: a.withStore(func(cmd *cobra.Command, store *docstore.Store, _ []string) error {
			if !yes {
				return errors.New(errors.CodeInvalidInput, "refusing to purge without --yes")
			}
			if err := store.PurgeAll(); err != nil {
				return err
			}
			root, _ := store.Root()
			return a.done(cmd, "purged", root)
		}),
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm removal of all folders")
	return cmd
}

func (a *app) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(a.output); err != nil {
				return err
			}
			if a.output != formatText {
				return writeValue(cmd.OutOrStdout(), a.output, map[string]string{
					"version":  a.version.Version,
					"commit":   a.version.Commit,
					"date":     a.version.Date,
					"built_by": a.version.BuiltBy,
				})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "docstore version %s\n", a.version.Version)
			fmt.Fprintf(out, "  commit: %s\n", a.version.Commit)
			fmt.Fprintf(out, "  built: %s\n", a.version.Date)
			fmt.Fprintf(out, "  built by: %s\n", a.version.BuiltBy)
			return nil
		},
	}
}

// done reports a successful mutation.
func (a *app) done(cmd *cobra.Command, action, target string) error {
	if a.output != formatText {
		return writeValue(cmd.OutOrStdout(), a.output, map[string]string{"status": action, "target": target})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", action, target)
	return nil
}
