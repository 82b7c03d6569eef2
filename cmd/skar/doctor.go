package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/skype-archive/internal/config"
	"github.com/Zuo-Peng/skype-archive/internal/index"
	"github.com/Zuo-Peng/skype-archive/internal/scan"
)

func doctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, export inputs, archive, and FTS5 index",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			cfg := e.cfg

			fmt.Println("=== Config ===")
			home, _ := os.UserHomeDir()
			checkFile("Config", config.Path(home))
			fmt.Printf("  Log: level=%s format=%s\n", cfg.LogLevel, cfg.LogFormat)
			fmt.Printf("  Media prefix: %s\n", cfg.MediaPrefix)

			fmt.Println("\n=== Export ===")
			checkDir("Export dir", cfg.ExportDir)
			checkFile("Text export", cfg.TextExport)
			checkFile("Messages", cfg.MessagesJSON)
			checkFile("Endpoints", cfg.EndpointsJSON)

			exp, err := scan.ScanExport(cfg.ExportDir)
			if err != nil {
				fmt.Printf("  scan error: %v\n", err)
			} else {
				fmt.Printf("  Text exports found:     %d\n", exp.Count(scan.SourceText))
				fmt.Printf("  Messages exports found: %d\n", exp.Count(scan.SourceMessages))
				fmt.Printf("  Endpoints found:        %d\n", exp.Count(scan.SourceEndpoints))
				if f := exp.Format(); f != "" {
					fmt.Printf("  Detected format: %s\n", f)
				} else {
					fmt.Println("  Detected format: none")
				}
			}

			fmt.Println("\n=== Archive ===")
			fmt.Printf("  Path: %s\n", cfg.OutputPath)
			info, err := os.Stat(cfg.OutputPath)
			if os.IsNotExist(err) {
				fmt.Println("  Status: NOT FOUND (run 'skar import' first)")
				return nil
			}
			if err == nil {
				fmt.Printf("  Size: %.1f MB\n", float64(info.Size())/1024/1024)
			}

			a, err := e.loadArchive()
			if err != nil {
				return err
			}
			total := 0
			empty := 0
			for _, msgs := range a.Chats {
				total += len(msgs)
				if len(msgs) == 0 {
					empty++
				}
			}
			fmt.Printf("  Owner:    %s\n", a.OwnerID)
			fmt.Printf("  Chats:    %d (%d empty)\n", len(a.Chats), empty)
			fmt.Printf("  Messages: %d\n", total)
			fmt.Printf("  Contacts: %d\n", len(a.Contacts))

			fmt.Println("\n=== FTS5 ===")
			db, stats, err := index.Build(a)
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
				return nil
			}
			defer db.Close()

			ftsCount, err := db.FTSCount()
			if err != nil {
				fmt.Printf("  FTS5 error: %v\n", err)
				return nil
			}
			fmt.Printf("  Indexed: %s\n", stats)
			if ftsCount == stats.Messages {
				fmt.Println("  Status: OK (synced)")
			} else {
				fmt.Printf("  Status: MISMATCH (messages=%d, fts=%d)\n", stats.Messages, ftsCount)
			}
			return nil
		},
	}
}

func checkDir(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if !info.IsDir() {
		fmt.Printf("  %s: %s (NOT A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
