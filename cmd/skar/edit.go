package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
)

// editArchive loads the archive, applies fn and saves it back.
func editArchive(fn func(a *archive.Archive) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}
	a, err := e.loadArchive()
	if err != nil {
		return err
	}
	if err := fn(a); err != nil {
		return err
	}
	if err := archive.Save(e.cfg.OutputPath, a); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	return nil
}

func renameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rename <chatKey> <name>",
		Short: "Set the display name of a chat",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editArchive(func(a *archive.Archive) error {
				if err := a.Rename(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Renamed %s to %q\n", args[0], a.ChatName(args[0]))
				return nil
			})
		},
	}
}

func mergeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "merge <sourceKey> <targetKey>",
		Short: "Move every message of one chat into another",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editArchive(func(a *archive.Archive) error {
				if err := a.MergeChats(args[0], args[1]); err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "Merged %s into %s (%d messages)\n",
					args[0], args[1], len(a.Chats[args[1]]))
				return nil
			})
		},
	}
}
