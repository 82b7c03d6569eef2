package main

import (
	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/skype-archive/internal/open"
)

func openCmd() *cobra.Command {
	var hitSeq int

	cmd := &cobra.Command{
		Use:   "open <chatKey>",
		Short: "Open the archive in $EDITOR at the chat (or hit message)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			return open.OpenChat(e.cfg.OutputPath, args[0], hitSeq)
		},
	}

	cmd.Flags().IntVar(&hitSeq, "hit", -1, "Message position to jump to")

	return cmd
}
