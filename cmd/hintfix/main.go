// Command hintfix applies hint-file rewrite rules to source trees.
package main

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/termfx/hintfix/apply"
	"github.com/termfx/hintfix/core"
	"github.com/termfx/hintfix/db"
	"github.com/termfx/hintfix/guards"
	"github.com/termfx/hintfix/hint"
	"github.com/termfx/hintfix/models"
	"github.com/termfx/hintfix/processor"
	"github.com/termfx/hintfix/providers"
	"github.com/termfx/hintfix/providers/java"
)

var (
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
)

var cfg = DefaultConfig()

func main() {
	// .env is optional
	_ = godotenv.Load()
	cfg.applyEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cobra.Command{
		Use:           "hintfix",
		Short:         "Pattern-based source rewriting driven by hint files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&cfg.RulesPath, "rules", "r", cfg.RulesPath, "hint file with transformation rules")
	root.PersistentFlags().StringVar(&cfg.SourceVersion, "source-version", cfg.SourceVersion, "language level of the sources")
	root.PersistentFlags().StringVar(&cfg.DatabaseURL, "db", cfg.DatabaseURL, "history database (file path or libsql URL)")
	root.PersistentFlags().StringSliceVar(&cfg.Include, "include", cfg.Include, "glob patterns for target files")
	root.PersistentFlags().StringSliceVar(&cfg.Exclude, "exclude", cfg.Exclude, "glob patterns to skip")
	root.PersistentFlags().BoolVar(&cfg.Debug, "debug", cfg.Debug, "verbose output")

	root.AddCommand(newCheckCmd(ctx), newApplyCmd(ctx), newRulesCmd(), newHistoryCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("error:"), err)
		os.Exit(1)
	}
}

func newCheckCmd(ctx context.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "check [paths...]",
		Short: "Report rule occurrences without touching any file",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}
			files, registry, err := targets(ctx, args)
			if err != nil {
				return err
			}

			total := 0
			for _, path := range files {
				results, _, err := processFile(ctx, registry, path, rules)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s %s: %v\n", yellow("skip"), path, err)
					continue
				}
				for _, res := range results {
					total++
					printResult(path, res)
				}
			}
			fmt.Printf("%s %d occurrence(s) in %d file(s)\n", cyan("found"), total, len(files))
			return nil
		},
	}
}

func newApplyCmd(ctx context.Context) *cobra.Command {
	var dryRun bool
	var showDiff bool
	cmd := &cobra.Command{
		Use:   "apply [paths...]",
		Short: "Rewrite matching code in place",
		RunE: func(cmd *cobra.Command, args []string) error {
			rules, err := loadRules()
			if err != nil {
				return err
			}
			files, registry, err := targets(ctx, args)
			if err != nil {
				return err
			}

			store := openStore()
			run := beginRun(store, dryRun)

			writer := apply.NewAtomicWriter(apply.DefaultWriteConfig())
			changed, matches := 0, 0
			for _, path := range files {
				results, source, err := processFile(ctx, registry, path, rules)
				if err != nil {
					fmt.Fprintf(os.Stderr, "%s %s: %v\n", yellow("skip"), path, err)
					continue
				}

				rewritten, applied, imports := apply.Apply(source, results)
				if len(applied) == 0 {
					continue
				}
				rewritten = apply.RewriteImports(rewritten, imports)
				matches += len(applied)

				if dryRun || showDiff {
					diff, err := apply.Unified(path, source, rewritten)
					if err == nil && diff != "" {
						fmt.Print(diff)
					}
				}
				if dryRun {
					changed++
					continue
				}

				if err := writer.WriteFile(path, rewritten); err != nil {
					return fmt.Errorf("write %s: %w", path, err)
				}
				changed++
				fmt.Printf("%s %s (%d change(s))\n", green("rewrote"), path, len(applied))

				if store != nil && run != nil {
					base, after := digest(source), digest(rewritten)
					for _, res := range applied {
						if err := store.RecordChange(run.ID, path, res, base, after); err != nil && cfg.Debug {
							fmt.Fprintf(os.Stderr, "%s history: %v\n", yellow("warn"), err)
						}
					}
				}
			}

			if store != nil && run != nil {
				if err := store.FinishRun(run, len(files), changed, matches); err != nil && cfg.Debug {
					fmt.Fprintf(os.Stderr, "%s history: %v\n", yellow("warn"), err)
				}
			}
			fmt.Printf("%s %d file(s) changed, %d rewrite(s)\n", cyan("done"), changed, matches)
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "print diffs instead of writing files")
	cmd.Flags().BoolVar(&showDiff, "diff", false, "print diffs while writing files")
	return cmd
}

func newRulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List the rules a hint file provides",
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, id, err := hintRegistry()
			if err != nil {
				return err
			}
			hf, err := registry.File(id)
			if err != nil {
				return err
			}
			if hf.Description != "" {
				fmt.Printf("%s %s\n", cyan(hf.ID), hf.Description)
			}
			rules, err := registry.Rules(id)
			if err != nil {
				return err
			}
			for i, r := range rules {
				kind := r.SourcePattern.Kind.String()
				mode := fmt.Sprintf("%d alternative(s)", len(r.Alternatives))
				if r.IsHintOnly() {
					mode = "hint only"
				}
				fmt.Printf("%3d. [%s] %s (%s)\n", i+1, kind, r.SourcePattern.Text, mode)
			}
			for _, err := range registry.Errors() {
				fmt.Fprintf(os.Stderr, "%s %v\n", yellow("warn"), err)
			}
			return nil
		},
	}
}

func newHistoryCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent apply runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			conn, err := db.Connect(cfg.DatabaseURL, cfg.Debug)
			if err != nil {
				return err
			}
			runs, err := db.NewStore(conn).RecentRuns(limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				mode := ""
				if run.DryRun {
					mode = yellow(" (dry run)")
				}
				fmt.Printf("%s %s rules=%s files=%d changed=%d rewrites=%d%s\n",
					cyan(run.ID), run.StartedAt.Format("2006-01-02 15:04:05"),
					run.RuleSet, run.FilesScanned, run.FilesChanged, run.MatchCount, mode)
				for _, ch := range run.Changes {
					fmt.Printf("      %s:%d %s\n", ch.Path, ch.Line, ch.PatternText)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of runs to show")
	return cmd
}

// hintRegistry builds an include-resolving registry rooted at the rules
// file's directory.
func hintRegistry() (*hint.Registry, string, error) {
	if cfg.RulesPath == "" {
		return nil, "", fmt.Errorf("--rules is required")
	}
	dir := filepath.Dir(cfg.RulesPath)
	id := strings.TrimSuffix(filepath.Base(cfg.RulesPath), ".hint")
	return hint.NewRegistry(hint.DirLoader{Dir: dir}), id, nil
}

func loadRules() ([]core.TransformationRule, error) {
	registry, id, err := hintRegistry()
	if err != nil {
		return nil, err
	}
	rules, err := registry.Rules(id)
	if err != nil {
		return nil, err
	}
	for _, err := range registry.Errors() {
		fmt.Fprintf(os.Stderr, "%s %v\n", yellow("warn"), err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("%s defines no rules", cfg.RulesPath)
	}
	return rules, nil
}

func targets(ctx context.Context, args []string) ([]string, *providers.Registry, error) {
	registry := providers.NewRegistry()
	registry.Register(java.New())

	if len(args) == 0 {
		args = []string{"."}
	}
	walker := apply.NewWalker()
	var files []string
	for _, root := range args {
		found, err := walker.Files(ctx, apply.Scope{
			Path:    root,
			Include: cfg.Include,
			Exclude: cfg.Exclude,
		})
		if err != nil {
			return nil, nil, err
		}
		files = append(files, found...)
	}
	return files, registry, nil
}

func processFile(ctx context.Context, registry *providers.Registry, path string, rules []core.TransformationRule) ([]core.TransformationResult, []byte, error) {
	provider, ok := registry.ByExtension(filepath.Ext(path))
	if !ok {
		return nil, nil, fmt.Errorf("no provider for %s", filepath.Ext(path))
	}
	source, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	proc := processor.New(provider, guards.Builtins(), cfg.SourceVersion)
	results, err := proc.Process(ctx, source, rules)
	if err != nil {
		return nil, nil, err
	}
	return results, source, nil
}

func printResult(path string, res core.TransformationResult) {
	desc := res.Description
	if desc == "" {
		desc = res.Rule.SourcePattern.Text
	}
	if res.HasReplacement() {
		fmt.Printf("%s:%d: %s %s\n", path, res.Line, green("fixable"), desc)
	} else {
		fmt.Printf("%s:%d: %s %s\n", path, res.Line, yellow("hint"), desc)
	}
}

// openStore connects the history database; history is best effort and a
// connection failure only disables it.
func openStore() *db.Store {
	conn, err := db.Connect(cfg.DatabaseURL, cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s history disabled: %v\n", yellow("warn"), err)
		return nil
	}
	return db.NewStore(conn)
}

func beginRun(store *db.Store, dryRun bool) *models.Run {
	if store == nil {
		return nil
	}
	run, err := store.BeginRun(cfg.RulesPath, cfg.SourceVersion, dryRun)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s history disabled: %v\n", yellow("warn"), err)
		return nil
	}
	return run
}

func digest(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
