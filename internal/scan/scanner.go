package scan

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Export input kinds.
const (
	SourceText      = "text"
	SourceMessages  = "messages"
	SourceEndpoints = "endpoints"
)

type FileInfo struct {
	Path   string
	Source string
	Mtime  int64
	Size   int64
}

// Export lists the inputs found in one export directory.
type Export struct {
	Dir   string
	Files []FileInfo
}

// First returns the first file of the given source.
func (e Export) First(source string) (FileInfo, bool) {
	for _, f := range e.Files {
		if f.Source == source {
			return f, true
		}
	}
	return FileInfo{}, false
}

func (e Export) Count(source string) int {
	n := 0
	for _, f := range e.Files {
		if f.Source == source {
			n++
		}
	}
	return n
}

// Format picks the pipeline for the export: "json" when a messages export is
// present, "text" when only delimited text exports are, "" otherwise.
func (e Export) Format() string {
	if _, ok := e.First(SourceMessages); ok {
		return "json"
	}
	if _, ok := e.First(SourceText); ok {
		return "text"
	}
	return ""
}

// ScanExport walks dir for export inputs. The media directory is not descended.
func ScanExport(dir string) (Export, error) {
	exp := Export{Dir: dir}
	if dir == "" {
		return exp, nil
	}

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // skip unreadable dirs
		}
		if info.IsDir() {
			if path != dir && filepath.Base(path) == "media" {
				return filepath.SkipDir
			}
			return nil
		}
		source := classify(filepath.Base(path))
		if source == "" {
			return nil
		}
		exp.Files = append(exp.Files, FileInfo{
			Path:   path,
			Source: source,
			Mtime:  info.ModTime().Unix(),
			Size:   info.Size(),
		})
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return exp, err
	}

	sort.Slice(exp.Files, func(i, j int) bool {
		return exp.Files[i].Path < exp.Files[j].Path
	})
	return exp, nil
}

func classify(name string) string {
	lower := strings.ToLower(name)
	switch {
	case lower == "messages.json":
		return SourceMessages
	case lower == "endpoints.json":
		return SourceEndpoints
	case filepath.Ext(lower) == ".txt":
		return SourceText
	default:
		return ""
	}
}
