package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"ferrite/internal/diagfmt"
	"ferrite/internal/driver"
	"ferrite/internal/project"
	"ferrite/internal/source"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.fx|directory>",
	Short: "Run check scripts and report their diagnostics",
	Long:  `Run every check directive in a script file, or in all *.fx files within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse cached verdicts for unchanged files")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	colorFlag, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}

	st, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	startDir := path
	if !st.IsDir() {
		startDir = filepath.Dir(path)
	}

	// The manifest supplies defaults; explicit flags win.
	if manifest, ok, err := project.Load(startDir); err != nil {
		return err
	} else if ok {
		cfg := manifest.Config.Check
		if !cmd.Flags().Changed("jobs") && cfg.Jobs > 0 {
			jobs = cfg.Jobs
		}
		if !cmd.Flags().Changed("cache") && cfg.Cache {
			useCache = true
		}
		if !cmd.Root().PersistentFlags().Changed("max-diagnostics") && cfg.MaxDiagnostics > 0 {
			maxDiagnostics = cfg.MaxDiagnostics
		}
		if !cmd.Root().PersistentFlags().Changed("color") && cfg.Color != "" {
			colorFlag = cfg.Color
		}
	}

	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
	useColor := colorFlag == "on" || (colorFlag == "auto" && isTerminal(os.Stdout))

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		Jobs:           jobs,
	}
	if useCache {
		cache, err := driver.OpenCache("ferrite")
		if err != nil {
			return fmt.Errorf("failed to open cache: %w", err)
		}
		opts.Cache = cache
	}

	var (
		fset    *source.FileSet
		results []driver.FileResult
	)
	if st.IsDir() {
		fset, results, err = driver.CheckDir(cmd.Context(), path, opts)
		if err != nil {
			return fmt.Errorf("check failed: %w", err)
		}
	} else {
		fset = source.NewFileSet()
		results = []driver.FileResult{driver.CheckFile(fset, path, opts)}
	}

	exit := 0
	for _, r := range results {
		if r.Bag.HasErrors() {
			exit = 1
			break
		}
	}

	switch format {
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{Color: useColor, ShowNotes: withNotes}
		for idx, r := range results {
			if r.Bag.Len() == 0 {
				continue
			}
			if idx > 0 {
				fmt.Fprintln(os.Stdout)
			}
			fmt.Fprintf(os.Stdout, "== %s ==\n", r.Path)
			diagfmt.Pretty(os.Stdout, r.Bag, fset, prettyOpts)
		}
	case "json":
		output := make(map[string][]diagfmt.JSONDiagnostic, len(results))
		for _, r := range results {
			output[r.Path] = diagfmt.BuildJSON(r.Bag, fset)
		}
		if err := diagfmt.JSON(os.Stdout, output); err != nil {
			return fmt.Errorf("failed to encode diagnostics: %w", err)
		}
	}

	if exit != 0 {
		// Suppress cobra usage output on diagnostic errors.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("") // diagnostics already printed
	}
	return nil
}
