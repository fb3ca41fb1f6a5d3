package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	hurltemplate "github.com/AlexanderGrooff/hurl-template-go"
	"github.com/AlexanderGrooff/hurl-template-go/pkg/parser"
)

type profileOptions struct {
	cpuprofile     string
	memprofile     string
	blockprofile   string
	file           string
	templateString string
	variablesFile  string
	iterations     int
	workers        int
	outputDir      string
	noCache        bool
}

func newProfileCmd(a *app) *cobra.Command {
	opts := &profileOptions{}
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Render a value repeatedly and write pprof profiles",
		Long: `Render a value many times and report the time taken.

Profiles are written to --output-dir. With --no-cache every iteration parses
the value again instead of reusing the cached template.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfile(cmd, a, opts)
		},
	}
	cmd.Flags().StringVar(&opts.cpuprofile, "cpuprofile", "", "write cpu profile to file")
	cmd.Flags().StringVar(&opts.memprofile, "memprofile", "", "write memory profile to file")
	cmd.Flags().StringVar(&opts.blockprofile, "blockprofile", "", "write goroutine blocking profile to file")
	cmd.Flags().StringVar(&opts.file, "file", "", "file holding the value to render")
	cmd.Flags().StringVar(&opts.templateString, "template-string", "", "value to render (alternative to --file)")
	cmd.Flags().StringVar(&opts.variablesFile, "variables-file", "", "YAML or JSON file of variables")
	cmd.Flags().IntVar(&opts.iterations, "iterations", 1000, "number of iterations to run")
	cmd.Flags().IntVar(&opts.workers, "workers", 1, "number of goroutines sharing the iterations")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "profile", "directory to store profile output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "parse the value on every iteration")
	return cmd
}

func runProfile(cmd *cobra.Command, a *app, opts *profileOptions) error {
	out := cmd.OutOrStdout()
	if opts.iterations < 1 {
		return errors.New("--iterations must be positive")
	}
	if opts.workers < 1 {
		return errors.New("--workers must be positive")
	}

	var args []string
	if opts.templateString != "" {
		args = []string{opts.templateString}
	}
	source, err := readInput(opts.file, args)
	if err != nil {
		return fmt.Errorf("either --file or --template-string must be provided: %w", err)
	}
	vars, err := loadVariables(opts.variablesFile, nil)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(opts.outputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if opts.cpuprofile != "" {
		cpuFile := filepath.Join(opts.outputDir, opts.cpuprofile)
		f, err := os.Create(cpuFile)
		if err != nil {
			return fmt.Errorf("failed to create CPU profile file: %w", err)
		}
		defer f.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
		defer pprof.StopCPUProfile()
		fmt.Fprintf(out, "CPU profiling enabled, writing to %s\n", cpuFile)
	}

	render := hurltemplate.TemplateString
	if opts.noCache {
		render = renderUncached
	}

	if opts.blockprofile != "" {
		runtime.SetBlockProfileRate(1)
		defer runtime.SetBlockProfileRate(0)
	}

	fmt.Fprintf(out, "Rendering value %d times\n", opts.iterations)
	a.logger.Debug("profiling", "iterations", opts.iterations, "workers", opts.workers, "cache", !opts.noCache)
	start := time.Now()

	results := make([]string, opts.workers)
	eg, ctx := errgroup.WithContext(cmd.Context())
	for w := 0; w < opts.workers; w++ {
		w := w
		n := opts.iterations / opts.workers
		if w < opts.iterations%opts.workers {
			n++
		}
		eg.Go(func() error {
			for i := 0; i < n; i++ {
				if ctx.Err() != nil {
					return nil
				}
				result, err := render(source, vars)
				if err != nil {
					return err
				}
				results[w] = result
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return a.report(cmd, source, err)
	}
	fmt.Fprintf(out, "Result length: %d\n", len(results[0]))

	duration := time.Since(start)
	fmt.Fprintf(out, "Time taken: %v\n", duration)
	fmt.Fprintf(out, "Average time per iteration: %v\n", duration/time.Duration(opts.iterations))

	if opts.memprofile != "" {
		memFile := filepath.Join(opts.outputDir, opts.memprofile)
		if err := writeProfile(memFile, func(f *os.File) error { return pprof.WriteHeapProfile(f) }); err != nil {
			return fmt.Errorf("failed to write memory profile: %w", err)
		}
		fmt.Fprintf(out, "Memory profile written to %s\n", memFile)
	}

	if opts.blockprofile != "" {
		blockFile := filepath.Join(opts.outputDir, opts.blockprofile)
		if err := writeProfile(blockFile, func(f *os.File) error { return pprof.Lookup("block").WriteTo(f, 0) }); err != nil {
			return fmt.Errorf("failed to write block profile: %w", err)
		}
		fmt.Fprintf(out, "Block profile written to %s\n", blockFile)
	}
	return nil
}

func renderUncached(source string, vars hurltemplate.Variables) (string, error) {
	t, err := parser.ParseTemplate(source)
	if err != nil {
		return "", err
	}
	return hurltemplate.Render(t, vars)
}

func writeProfile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
