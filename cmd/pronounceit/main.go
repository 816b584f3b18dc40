package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/pronounceit/internal/archive"
	"codeberg.org/snonux/pronounceit/internal/batch"
	"codeberg.org/snonux/pronounceit/internal/cli"
	"codeberg.org/snonux/pronounceit/internal/dictionary"
	"codeberg.org/snonux/pronounceit/internal/models"
	"codeberg.org/snonux/pronounceit/internal/processor"
	"codeberg.org/snonux/pronounceit/internal/report"
	"codeberg.org/snonux/pronounceit/internal/watcher"
)

func main() {
	flags := cli.NewFlags()

	rootCmd := cli.CreateRootCommand(flags)

	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	ctx := cmd.Context()

	cli.ApplyConfig(flags)
	logger := cli.NewLogger(flags.LogLevel, flags.LogFormat, os.Stderr)

	if flags.Archive {
		path, err := archive.ArchiveReports(flags.OutputDir)
		if err != nil {
			return fmt.Errorf("failed to archive reports: %w", err)
		}
		fmt.Printf("Reports directory archived to: %s\n", path)
		return nil
	}

	if flags.ListModels {
		lister := models.NewLister(cli.GetOpenAIKey())
		return lister.ListAvailableModels(ctx, os.Stdout)
	}

	if flags.ImportDict {
		return importDictionary(ctx, flags)
	}

	words := batch.ParseWordList(strings.Join(args, ","))
	if flags.BatchFile == "" && len(words) == 0 {
		return errors.New("no words given: pass words as arguments or use --batch FILE")
	}
	if flags.Watch && flags.BatchFile == "" {
		return errors.New("--watch requires --batch")
	}

	dict, err := openDictionary(ctx, flags)
	if err != nil {
		return err
	}
	defer dictionary.Close(dict)

	mode := report.ModeRespelling
	if flags.Raw {
		mode = report.ModeRaw
	}

	proc := processor.NewProcessor(dict, processor.Options{
		Mode:    mode,
		Workers: flags.Workers,
		Logger:  logger,
	})
	runner := processor.NewRunner(flags, proc, os.Stdout)

	if flags.BatchFile == "" {
		_, err := runner.Run(ctx, words)
		return err
	}

	if len(words) > 0 {
		logger.Warn("ignoring word arguments in batch mode", slog.Int("words", len(words)))
	}

	if _, err := runner.RunBatch(ctx); err != nil {
		if !flags.Watch {
			return err
		}
		logger.Error("batch run failed", slog.String("error", err.Error()))
	}

	if flags.Watch {
		return watchBatch(ctx, flags, runner, logger)
	}

	return nil
}

func openDictionary(ctx context.Context, flags *cli.Flags) (dictionary.Dictionary, error) {
	dict, err := dictionary.New(ctx, cli.DictionaryConfig(flags))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w\nDownload cmudict.dict from https://github.com/cmusphinx/cmudict and pass it with --cmudict", err)
		}
		return nil, fmt.Errorf("failed to open dictionary: %w", err)
	}

	if err := dict.IsAvailable(); err != nil {
		_ = dictionary.Close(dict)
		return nil, fmt.Errorf("dictionary %s is not available: %w", dict.Name(), err)
	}

	return dict, nil
}

func watchBatch(ctx context.Context, flags *cli.Flags, runner *processor.Runner, logger *slog.Logger) error {
	w, err := watcher.New(flags.BatchFile, func(ctx context.Context, path string) error {
		fmt.Printf("\n%s changed, processing again...\n", path)
		_, err := runner.RunBatch(ctx)
		return err
	}, 0, logger)
	if err != nil {
		return fmt.Errorf("failed to watch batch file: %w", err)
	}
	defer w.Close()

	fmt.Printf("\nWatching %s for changes (Ctrl+C to stop)\n", w.Path())

	if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func importDictionary(ctx context.Context, flags *cli.Flags) error {
	fmt.Printf("Reading %s...\n", flags.CMUDictPath)
	dict, err := dictionary.Load(flags.CMUDictPath)
	if err != nil {
		return err
	}

	store, err := dictionary.OpenStore(ctx, flags.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	n, err := store.Import(ctx, dict)
	if err != nil {
		return err
	}

	stats := dict.Stats()
	fmt.Printf("Imported %d pronunciations of %d words into %s\n", n, stats.UniqueWords, flags.DBPath)
	fmt.Printf("(%d lines read, %d comment lines skipped)\n", stats.TotalLines, stats.CommentLines)
	return nil
}
