package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/skype-archive/internal/render"
)

func previewCmd() *cobra.Command {
	var opts render.Options

	cmd := &cobra.Command{
		Use:   "preview <chatKey>",
		Short: "Preview a chat with context around a hit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			a, err := e.loadArchive()
			if err != nil {
				return err
			}

			out, _, err := render.RenderChat(a, args[0], opts)
			if err != nil {
				return err
			}

			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&opts.HitSeq, "hit", -1, "Message position to highlight")
	cmd.Flags().IntVar(&opts.Context, "context", 10, "Messages before/after hit to show (-1 = all)")
	cmd.Flags().IntVar(&opts.Width, "width", 0, "Wrap width (0 = no wrap)")
	cmd.Flags().StringVar(&opts.Query, "query", "", "Search query for keyword highlighting")

	return cmd
}
