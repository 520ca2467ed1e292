package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"yt-harvester/internal/config"
	"yt-harvester/internal/discovery"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
)

func newDoctorCommand(root *rootFlags, stdout io.Writer) *cobra.Command {
	var jsonOut bool
	var outputDir string
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check yt-dlp, the output directory and the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.ResolvePath(root.configPath)
			cfg, _ := config.Load(path)
			if outputDir == "" {
				outputDir = cfg.Output.Dir
			}
			res := discovery.Doctor(discovery.DoctorOptions{
				YTDLPPath:  cfg.Extraction.YTDLPPath,
				OutputDir:  outputDir,
				ConfigPath: path,
			})
			if jsonOut {
				if err := printJSON(stdout, res); err != nil {
					return err
				}
			} else {
				printChecks(stdout, res)
			}
			if !res.OK {
				return errors.New("doctor checks failed")
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory to check (default from config)")
	return cmd
}

func newInitCommand(root *rootFlags, stdout io.Writer) *cobra.Command {
	var jsonOut bool
	var outputDir string
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default config file and run the doctor checks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res, err := discovery.InitWorkspace(discovery.InitWorkspaceOptions{
				OutputDir:  outputDir,
				ConfigPath: config.ResolvePath(root.configPath),
			})
			if err != nil {
				return err
			}
			if jsonOut {
				return printJSON(stdout, res)
			}
			if res.CreatedConfig {
				fmt.Fprintf(stdout, "wrote %s\n", res.ConfigPath)
			} else {
				fmt.Fprintf(stdout, "kept existing %s\n", res.ConfigPath)
			}
			printChecks(stdout, res.DoctorResult)
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "print JSON output")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "output directory to create")
	return cmd
}

func printChecks(w io.Writer, res discovery.DoctorResult) {
	for _, c := range res.Checks {
		status := okStyle.Render("ok")
		if !c.OK {
			status = failStyle.Render("fail")
		}
		fmt.Fprintf(w, "%s: %s (%s)\n", c.Name, status, c.Message)
	}
	if res.OK {
		fmt.Fprintln(w, "doctor: all checks passed")
	}
}
