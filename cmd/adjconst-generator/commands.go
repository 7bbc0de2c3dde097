package main

import (
	"fmt"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"adjconst-generator/internal/cli"
	"adjconst-generator/internal/config"
	"adjconst-generator/internal/plan"
)

var (
	outDir   string
	toStdout bool
	initPath string
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [paths|globs...]",
	Short: "Rewrite C# files in place or into an output directory",
	Long: `Rewrite every selected file. Arguments may be files, directories (all *.cs
below them) or doublestar globs such as "Assets/**/*Const.cs". Files without a
class declaration are left untouched; a failing file does not stop the others.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}

		inputs, err := cli.ExpandPatterns(args)
		if err != nil {
			return err
		}

		if len(inputs) == 0 {
			logger.Warn("no input files matched", zap.Strings("patterns", args))
			return nil
		}

		opts := cli.BatchOptions{
			OutDir:      outDir,
			Parallelism: appConfig.IO.Parallelism,
		}
		if toStdout {
			opts.Stdout = cmd.OutOrStdout()
		}

		summary, err := runner.RunBatch(cmd.Context(), inputs, opts)

		logger.Info("rewrite finished",
			zap.Int("files", len(inputs)),
			zap.Any("outcomes", summary.Counts))

		if err != nil {
			return fmt.Errorf("%d of %d files failed: %w", summary.Failed(), len(inputs), err)
		}

		return nil
	},
}

var printCmd = &cobra.Command{
	Use:   "print FILE",
	Short: "Show a file and its rewrite without writing anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}

		return runner.Print(cmd.Context(), args[0], cmd.OutOrStdout())
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect FILE",
	Short: "Dump the syntax tree and the classified members of a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}

		src, err := runner.ReadFile(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		rw := runner.Rewriter()

		if err := rw.Loader().DumpTree(cmd.Context(), src, out); err != nil {
			return err
		}

		file, err := rw.Loader().Parse(cmd.Context(), src)
		if err != nil {
			return err
		}

		p, diags, err := rw.Extract(file, rw.Model(file))
		if err != nil {
			return err
		}

		for _, d := range diags.All() {
			fmt.Fprintln(out, d.String())
		}

		if p == nil {
			return nil
		}

		fmt.Fprintln(out, "--- records ----")
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true, MaxDepth: 4}
		dumper.Fdump(out, p.Records)

		fmt.Fprintln(out, "--- plan ----")
		data, err := plan.ExportYAML(p)
		if err != nil {
			return err
		}

		_, err = out.Write(data)

		return err
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the interactive command loop on stdin",
	Long: `Read a command line followed by one input line, repeatedly:
  :filename:      print the file named by the input line and its rewrite
  :rewrite-file:  rewrite the file named by the input line in place
  :logsyntax:     dump the syntax tree of the input line`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}

		return cli.NewServer(runner, cmd.InOrStdin(), cmd.OutOrStdout(), logger).Serve(cmd.Context())
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch [paths|globs...]",
	Short: "Rewrite matching files whenever they change",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		runner, err := newRunner()
		if err != nil {
			return err
		}

		w, err := cli.NewWatcher(runner, cli.WatcherConfig{
			Patterns:      args,
			DebounceDelay: appConfig.IO.Debounce,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		go func() {
			for ev := range w.Events() {
				if ev.Error == nil && ev.Result != nil {
					logger.Debug("watch event", zap.String("file", ev.Path), zap.String("outcome", ev.Result.Outcome))
				}
			}
		}()

		return w.Run(cmd.Context())
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(initPath); err == nil {
			return fmt.Errorf("%s already exists", initPath)
		}

		if err := config.WriteFile(config.Default(), initPath); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", initPath)

		return nil
	},
}

func init() {
	rewriteCmd.Flags().StringVarP(&outDir, "out", "o", "", "Write rewritten files below this directory instead of in place")
	rewriteCmd.Flags().BoolVar(&toStdout, "stdout", false, "Print inputs and rewrites instead of writing files")
	initCmd.Flags().StringVar(&initPath, "path", "adjconst.yaml", "Where to write the configuration")
}
