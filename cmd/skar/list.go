package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Zuo-Peng/skype-archive/internal/search"
	"github.com/Zuo-Peng/skype-archive/internal/tui"
)

func listCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list [filter]",
		Short: "Browse chats by name",
		Long: `Lists every chat with messages: Latin names first, then Cyrillic, then the
rest, each alphabetically. On a terminal this opens the TUI, where typing filters
chats by name. Otherwise prints TSV: chatKey, name, messages, first, last.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filter := ""
			if len(args) == 1 {
				filter = args[0]
			}

			e, err := loadEnv()
			if err != nil {
				return err
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				a, db, err := e.loadIndex()
				if err != nil {
					return err
				}
				defer db.Close()
				return tui.RunList(db, a, filter, search.Options{Limit: limit})
			}

			a, err := e.loadArchive()
			if err != nil {
				return err
			}
			chats := a.ListChats(filter)
			if limit > 0 && len(chats) > limit {
				chats = chats[:limit]
			}
			for _, c := range chats {
				name := strings.ReplaceAll(c.Name, "\t", " ")
				fmt.Printf("%s\t%s\t%d\t%s\t%s\n", c.Key, name, c.Messages, c.First, c.Last)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Max chats (0 = no limit)")

	return cmd
}
