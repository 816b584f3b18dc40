package processor

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"codeberg.org/snonux/pronounceit/internal/dictionary"
	"codeberg.org/snonux/pronounceit/internal/phonetic"
	"codeberg.org/snonux/pronounceit/internal/report"
)

// Placeholder values for words without a result
const (
	NotFoundRespelling = "Phonetic spelling not found"
	NotFoundRaw        = "No pronunciation found"
	LookupFailed       = "Lookup failed"
)

// DefaultWorkers is the number of concurrent lookups when none is configured
const DefaultWorkers = 4

// Options configures a Processor
type Options struct {
	Mode        report.Mode
	Workers     int
	Transcriber *phonetic.Transcriber
	Logger      *slog.Logger
}

// Processor turns words into a result table
type Processor struct {
	dict        dictionary.Dictionary
	transcriber *phonetic.Transcriber
	mode        report.Mode
	workers     int
	logger      *slog.Logger
}

// NewProcessor creates a processor that looks words up in dict
func NewProcessor(dict dictionary.Dictionary, opts Options) *Processor {
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.Transcriber == nil {
		opts.Transcriber = phonetic.NewTranscriber()
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Processor{
		dict:        dict,
		transcriber: opts.Transcriber,
		mode:        opts.Mode,
		workers:     opts.Workers,
		logger:      opts.Logger,
	}
}

// Mode returns the table mode the processor produces
func (p *Processor) Mode() report.Mode {
	return p.mode
}

// Transcriber returns the transcriber used for respellings
func (p *Processor) Transcriber() *phonetic.Transcriber {
	return p.transcriber
}

// Process looks up all words and returns one row per word in input order.
// A failing lookup marks its row and does not stop the other words; only
// cancellation of ctx aborts the run.
func (p *Processor) Process(ctx context.Context, words []string) (*report.Table, error) {
	table := report.NewTable(p.mode, len(words))
	table.Rows = table.Rows[:len(words)]

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, word := range words {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			table.Rows[i] = p.processWord(gctx, word)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return table, nil
}

func (p *Processor) processWord(ctx context.Context, word string) report.Row {
	prons, err := p.dict.Lookup(ctx, word)
	if err != nil {
		if ctx.Err() != nil {
			return report.Row{Word: word, Value: LookupFailed, Status: report.StatusFailed}
		}
		p.logger.ErrorContext(ctx, "dictionary lookup failed",
			slog.String("word", word),
			slog.String("dictionary", p.dict.Name()),
			slog.String("error", err.Error()))
		return report.Row{Word: word, Value: LookupFailed, Status: report.StatusFailed}
	}

	if len(prons) == 0 {
		p.logger.DebugContext(ctx, "word not in dictionary", slog.String("word", word))
		return report.Row{Word: word, Value: p.notFound(), Status: report.StatusNotFound}
	}

	// Only the first pronunciation is used
	first := prons[0]
	raw := phonetic.FormatRaw(first)

	value := raw
	if p.mode == report.ModeRespelling {
		value = p.transcriber.Transcribe(first)
	}

	return report.Row{
		Word:          word,
		Value:         value,
		Status:        report.StatusFound,
		Pronunciation: raw,
	}
}

func (p *Processor) notFound() string {
	if p.mode == report.ModeRaw {
		return NotFoundRaw
	}
	return NotFoundRespelling
}
