package output

import (
	"fmt"
	"path/filepath"
	"slices"

	"yt-harvester/internal/model"
	"yt-harvester/internal/runstore"
)

const (
	FormatTXT  = "txt"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

var formats = []string{FormatTXT, FormatJSON, FormatCSV}

func ValidFormat(f string) bool {
	return slices.Contains(formats, f)
}

// ItemPath is where a single result lands: <dir>/<videoID>.<format> by
// default. An explicit path replaces the name and keeps only its base name
// when a per-item directory is set.
func ItemPath(outputDir, videoID, format, explicit string) string {
	name := videoID + "." + format
	if explicit != "" {
		if outputDir == "" {
			return explicit
		}
		name = filepath.Base(explicit)
	}
	if outputDir == "" {
		return name
	}
	return filepath.Join(outputDir, name)
}

// FileSink writes one file per result.
type FileSink struct {
	Format       string
	ExplicitPath string
}

func (s FileSink) Save(r model.HarvestResult) (string, error) {
	path := ItemPath(r.OutputDir, r.VideoID, s.Format, s.ExplicitPath)
	var err error
	switch s.Format {
	case FormatTXT:
		err = runstore.WriteBytes(path, RenderText(r))
	case FormatJSON:
		err = runstore.WriteJSON(path, Document(r))
	case FormatCSV:
		var data []byte
		data, err = renderCSV(r)
		if err == nil {
			err = runstore.WriteBytes(path, data)
		}
	default:
		return "", fmt.Errorf("unsupported output format %q", s.Format)
	}
	if err != nil {
		return "", err
	}
	return path, nil
}
