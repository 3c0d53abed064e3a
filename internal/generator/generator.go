// Package generator turns a dataset request into rows, preferring the
// language model and falling back to local synthesis on any failure.
package generator

import (
	"context"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog/log"

	"github.com/tensorplex-labs/datasynth/internal/config"
	"github.com/tensorplex-labs/datasynth/internal/dataset"
	"github.com/tensorplex-labs/datasynth/internal/llm"
	"github.com/tensorplex-labs/datasynth/internal/metrics"
	"github.com/tensorplex-labs/datasynth/internal/utils/redact"
)

// Source tells which path produced a result. It is only logged and counted.
type Source string

const (
	SourcePrimary  Source = "primary"
	SourceFallback Source = "fallback"
)

type Generator struct {
	client    llm.Client
	fillEmpty bool
	seed      uint64
}

type Option func(*Generator)

// WithSeed makes every call's random source deterministic. Zero means a
// fresh random seed per call.
func WithSeed(seed uint64) Option {
	return func(g *Generator) { g.seed = seed }
}

func New(client llm.Client, cfg config.GeneratorEnvConfig, opts ...Option) *Generator {
	g := &Generator{
		client:    client,
		fillEmpty: cfg.FillEmpty,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate never fails: model errors are logged and answered by Fallback.
func (g *Generator) Generate(ctx context.Context, req dataset.Request) (dataset.Result, Source) {
	start := time.Now()
	faker := gofakeit.New(g.seed)

	rows, err := g.primary(ctx, req)
	source := SourcePrimary
	if err != nil {
		log.Warn().
			Str("model", g.modelName()).
			Str("reason", redact.Err(err)).
			Int("row_count", req.RowCount).
			Msg("model generation failed, using fallback data")
		metrics.IncLLMFailure()
		rows = Fallback(req, faker)
		source = SourceFallback
	} else if g.fillEmpty {
		if n := FillEmpty(rows, req.Columns, faker); n > 0 {
			log.Debug().Int("filled", n).Msg("filled empty model values")
		}
	}

	metrics.ObserveGeneration(string(source), len(rows), time.Since(start))
	log.Info().
		Str("source", string(source)).
		Int("rows", len(rows)).
		Dur("elapsed", time.Since(start)).
		Msg("dataset generated")
	return rows, source
}

func (g *Generator) modelName() string {
	if g.client == nil {
		return "unconfigured"
	}
	return g.client.Name()
}

func (g *Generator) primary(ctx context.Context, req dataset.Request) (dataset.Result, error) {
	if g.client == nil {
		return nil, llm.ErrNotConfigured
	}
	prompt := BuildPrompt(req.Columns, req.RowCount)
	log.Trace().Str("prompt", prompt).Msg("sending prompt")

	text, err := g.client.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}
	rows, err := ParseRows(text, req.ColumnNames())
	if err != nil {
		return nil, err
	}
	// The batch is accepted even when its size differs from the request.
	if len(rows) != req.RowCount {
		log.Warn().
			Int("requested", req.RowCount).
			Int("returned", len(rows)).
			Msg("model returned a different number of rows than requested")
	}
	return rows, nil
}
