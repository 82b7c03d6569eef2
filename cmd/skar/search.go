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

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorBlue    = "\033[1;34m"
	sColorDim     = "\033[2m"
)

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func flatten(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.ReplaceAll(s, "\n", " ")
}

func searchCmd() *cobra.Command {
	var opts search.Options

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Full-text search across all chats",
		Long: `Search message text using FTS5 (substring match for CJK queries or invalid
FTS expressions). Output is TSV for fzf integration:
  chatKey, seq, timestamp, chat, sender, snippet

Recommended shell function (add to .zshrc):
  skf() {
    skar search "$*" | fzf \
      --ansi \
      --delimiter='\t' --with-nth=3.. \
      --preview 'skar preview {1} --hit {2} --context 5 --query {q}' \
      --preview-window=right:60%:wrap \
      --bind 'enter:execute(skar open {1} --hit {2})'
  }`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}

			a, db, err := e.loadIndex()
			if err != nil {
				return err
			}
			defer db.Close()

			// Interactive TUI when stdout is a terminal; TSV output for pipes
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.Run(db, a, args[0], opts)
			}

			opts.Query = args[0]
			results, err := search.Search(db, opts)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				sender := a.Contacts.Lookup(r.Sender)
				if r.Sender == a.OwnerID {
					sender = "You"
				}
				// first two fields (chatKey, seq) stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s%s%s\t%s\t%s\n",
					r.ChatKey,
					r.Seq,
					sColorDim, r.Ts, sColorReset,
					sColorBlue, flatten(r.ChatName), sColorReset,
					flatten(sender),
					colorizeSnippet(flatten(r.Snippet)),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Chat, "chat", "", "Only search this chat key")
	cmd.Flags().StringVar(&opts.Sender, "sender", "", "Only messages from this sender id")
	cmd.Flags().StringVar(&opts.Since, "since", "", "Only messages since date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "Max results")
	cmd.Flags().BoolVar(&opts.AllHits, "all", false, "Show every hit instead of the best one per chat")

	return cmd
}
