package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Zuo-Peng/skype-archive/internal/archive"
	"github.com/Zuo-Peng/skype-archive/internal/config"
	"github.com/Zuo-Peng/skype-archive/internal/logutil"
	"github.com/Zuo-Peng/skype-archive/internal/parse"
	"github.com/Zuo-Peng/skype-archive/internal/scan"
)

const (
	formatText = "text"
	formatJSON = "json"
)

type importOptions struct {
	format      string
	in          string
	endpoints   string
	out         string
	mediaPrefix string
}

// importPlan is the resolved set of inputs for one import run.
type importPlan struct {
	format    string
	in        string
	endpoints string // "" = none
}

func importCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Normalize a Skype export into the chat archive",
		Long: `Reads a Skype export (the delimited text export or messages.json with an
optional endpoints.json) and writes the normalized archive to output_path.
Without --format the export directory is scanned and messages.json is preferred.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			if opts.out != "" {
				e.cfg.OutputPath = opts.out
			}
			if opts.mediaPrefix != "" {
				e.cfg.MediaPrefix = opts.mediaPrefix
			}

			plan, err := planImport(e.cfg, opts)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Importing %s export...\n", plan.format)
			fmt.Fprintf(os.Stderr, "  Input: %s\n", plan.in)
			if plan.endpoints != "" {
				fmt.Fprintf(os.Stderr, "  Endpoints: %s\n", plan.endpoints)
			}

			a, stats, err := runImport(plan, e.cfg.MediaPrefix, e.logger)
			if err != nil {
				return err
			}
			if err := archive.Save(e.cfg.OutputPath, a); err != nil {
				return fmt.Errorf("save archive: %w", err)
			}

			fmt.Fprintf(os.Stderr, "Done. %s\n", stats)
			fmt.Fprintf(os.Stderr, "Wrote %s (owner %s)\n", e.cfg.OutputPath, a.OwnerID)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.format, "format", "", "Export format (text/json, default autodetect)")
	cmd.Flags().StringVar(&opts.in, "in", "", "Input export file")
	cmd.Flags().StringVar(&opts.endpoints, "endpoints", "", "Endpoints export for contact names (json format)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output archive path (overrides output_path)")
	cmd.Flags().StringVar(&opts.mediaPrefix, "media-prefix", "", "Prefix for detected media paths")

	return cmd
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// planImport picks the format and input files. Explicit flags win, then the
// configured file names, then whatever a scan of the export directory finds.
func planImport(cfg *config.Config, opts importOptions) (importPlan, error) {
	plan := importPlan{
		format:    strings.ToLower(strings.TrimSpace(opts.format)),
		in:        opts.in,
		endpoints: opts.endpoints,
	}

	switch plan.format {
	case "", formatText, formatJSON:
	default:
		return plan, fmt.Errorf("unknown format: %s", opts.format)
	}

	if plan.format == "" && plan.in != "" {
		plan.format = formatText
		if strings.EqualFold(filepath.Ext(plan.in), ".json") {
			plan.format = formatJSON
		}
	}

	if plan.format == "" {
		switch {
		case exists(cfg.MessagesJSON):
			plan.format = formatJSON
		case exists(cfg.TextExport):
			plan.format = formatText
		}
	}

	var exp scan.Export
	if plan.format == "" || plan.in == "" || (plan.format == formatJSON && plan.endpoints == "") {
		var err error
		exp, err = scan.ScanExport(cfg.ExportDir)
		if err != nil {
			return plan, fmt.Errorf("scan %s: %w", cfg.ExportDir, err)
		}
	}
	if plan.format == "" {
		plan.format = exp.Format()
	}
	if plan.format == "" {
		return plan, fmt.Errorf("no export found in %s", cfg.ExportDir)
	}

	if plan.in == "" {
		configured, source := cfg.TextExport, scan.SourceText
		if plan.format == formatJSON {
			configured, source = cfg.MessagesJSON, scan.SourceMessages
		}
		plan.in = configured
		if !exists(configured) {
			if f, ok := exp.First(source); ok {
				plan.in = f.Path
			}
		}
	}

	if plan.format == formatJSON && plan.endpoints == "" {
		if exists(cfg.EndpointsJSON) {
			plan.endpoints = cfg.EndpointsJSON
		} else if f, ok := exp.First(scan.SourceEndpoints); ok {
			plan.endpoints = f.Path
		}
	}
	return plan, nil
}

// runImport reads the planned inputs and builds the archive.
func runImport(plan importPlan, mediaPrefix string, logger *slog.Logger) (*archive.Archive, archive.Stats, error) {
	logger = logutil.OrDiscard(logger)
	data, err := os.ReadFile(plan.in)
	if err != nil {
		return nil, archive.Stats{}, fmt.Errorf("read export: %w", err)
	}

	if plan.format == formatText {
		content := strings.TrimPrefix(string(data), "\ufeff")
		return archive.FromText(parse.ParseText(content, logger), logger)
	}

	var endpoints []byte
	if plan.endpoints != "" {
		endpoints, err = os.ReadFile(plan.endpoints)
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("endpoints export not found, contacts come from conversations only", "path", plan.endpoints)
			endpoints = nil
		} else if err != nil {
			return nil, archive.Stats{}, fmt.Errorf("read endpoints: %w", err)
		}
	}

	corpus, err := parse.ParseSkypeJSON(data, endpoints, parse.JSONOptions{
		MediaPrefix: mediaPrefix,
		Logger:      logger,
	})
	if err != nil {
		return nil, archive.Stats{}, fmt.Errorf("parse %s: %w", plan.in, err)
	}
	return archive.FromJSON(corpus, logger)
}
