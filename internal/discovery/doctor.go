package discovery

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"yt-harvester/internal/config"
	"yt-harvester/internal/runstore"
	"yt-harvester/internal/ytdlp"
)

type DoctorOptions struct {
	YTDLPPath  string
	OutputDir  string
	ConfigPath string
}

type DoctorResult struct {
	OK     bool          `json:"ok"`
	Checks []DoctorCheck `json:"checks"`
}

type DoctorCheck struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

type InitWorkspaceOptions struct {
	OutputDir  string
	ConfigPath string
}

type InitWorkspaceResult struct {
	OutputDir     string       `json:"output_dir"`
	ConfigPath    string       `json:"config_path"`
	CreatedConfig bool         `json:"created_config"`
	DoctorResult  DoctorResult `json:"doctor"`
}

func Doctor(opts DoctorOptions) DoctorResult {
	checks := make([]DoctorCheck, 0, 3)
	dep := ytdlp.DependencyStatus(opts.YTDLPPath)
	checks = append(checks, DoctorCheck{
		Name:    "dependency:yt-dlp",
		OK:      dep.YTDLPFound,
		Message: dependencyMessage(dep.YTDLPFound, dep.YTDLPPath, "yt-dlp"),
	})

	outputDir := strings.TrimSpace(opts.OutputDir)
	if outputDir == "" {
		outputDir = "."
	}
	outOK, outMessage := ensureWritableDir(outputDir)
	checks = append(checks, DoctorCheck{
		Name:    "directory:output",
		OK:      outOK,
		Message: outMessage,
	})

	cfgOK, cfgMessage := checkConfig(opts.ConfigPath)
	checks = append(checks, DoctorCheck{
		Name:    "config",
		OK:      cfgOK,
		Message: cfgMessage,
	})

	ok := true
	for _, c := range checks {
		if !c.OK {
			ok = false
			break
		}
	}
	return DoctorResult{OK: ok, Checks: checks}
}

// InitWorkspace writes a default config file when none exists and then runs
// the doctor checks against it.
func InitWorkspace(opts InitWorkspaceOptions) (InitWorkspaceResult, error) {
	configPath := strings.TrimSpace(opts.ConfigPath)
	if configPath == "" {
		configPath = config.DefaultPath
	}
	created, err := config.WriteDefault(configPath)
	if err != nil {
		return InitWorkspaceResult{}, err
	}
	if dir := strings.TrimSpace(opts.OutputDir); dir != "" {
		if err := runstore.Mkdir(dir); err != nil {
			return InitWorkspaceResult{}, err
		}
	}
	cfg, _ := config.Load(configPath)
	doc := Doctor(DoctorOptions{
		YTDLPPath:  cfg.Extraction.YTDLPPath,
		OutputDir:  opts.OutputDir,
		ConfigPath: configPath,
	})
	return InitWorkspaceResult{
		OutputDir:     opts.OutputDir,
		ConfigPath:    configPath,
		CreatedConfig: created,
		DoctorResult:  doc,
	}, nil
}

func dependencyMessage(ok bool, path, name string) string {
	if ok {
		return name + " found at " + path
	}
	return name + " not found on PATH"
}

func checkConfig(path string) (bool, string) {
	path = strings.TrimSpace(path)
	if path == "" {
		path = config.DefaultPath
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return true, path + " not found, defaults in use"
	}
	cfg, err := config.Load(path)
	if err != nil {
		return false, err.Error()
	}
	if err := cfg.Validate(); err != nil {
		return false, err.Error()
	}
	return true, path + " is valid"
}

func ensureWritableDir(path string) (bool, string) {
	if err := runstore.Mkdir(path); err != nil {
		return false, err.Error()
	}
	f, err := os.CreateTemp(path, "yt-harvester-check-*.tmp")
	if err != nil {
		return false, err.Error()
	}
	_ = f.Close()
	_ = os.Remove(f.Name())
	return true, "writable"
}
