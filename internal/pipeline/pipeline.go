// Package pipeline runs the full analysis flow for one uploaded image:
// classification, damage detection, OCR, field parsing, and health scoring.
// The flow is strictly sequential within a single request; each image gets
// exactly one pass with no retries and no background work.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nitin85058/VEYA/internal/analysis"
	"github.com/nitin85058/VEYA/internal/health"
	"github.com/nitin85058/VEYA/internal/imaging"
	"github.com/nitin85058/VEYA/internal/logging"
	"github.com/nitin85058/VEYA/internal/types"
	"github.com/nitin85058/VEYA/internal/vlm"
)

// TextExtractor is the OCR surface the pipeline needs.
type TextExtractor interface {
	ExtractText(ctx context.Context, img []byte) (string, error)
}

// Runner executes the analysis steps against the configured backends.
type Runner struct {
	ocr   TextExtractor
	vlm   vlm.Client
	rules *health.ActiveRules
}

// NewRunner wires the OCR client, the vision-language client, and the
// active scoring rules into a runner.
func NewRunner(ocr TextExtractor, vlmClient vlm.Client, rules *health.ActiveRules) *Runner {
	return &Runner{ocr: ocr, vlm: vlmClient, rules: rules}
}

// Run analyzes one image end to end and returns the completed analysis.
//
// Step order is fixed: classify, detect damage, extract text, parse
// fields, score. Classification, damage detection, and OCR abort the run
// on transport failure; field parsing always degrades to regex extraction
// rather than failing. The context is checked between steps so a dropped
// request stops paying for remote calls.
func (r *Runner) Run(ctx context.Context, filename string, data []byte) (*types.Analysis, error) {
	total := logging.StartTimer(logging.CategoryPipeline, "full analysis")
	defer total.Stop()

	meta, err := imaging.Metadata(data)
	if err != nil {
		return nil, fmt.Errorf("image metadata: %w", err)
	}

	a := &types.Analysis{
		ID:         uuid.NewString(),
		Filename:   filename,
		CapturedAt: time.Now().UTC(),
		Image:      meta,
	}
	img := vlm.Image{Data: data, MIME: imaging.MIME(filename, data)}

	logging.Pipeline("analysis %s: %s (%dx%d %s, %d bytes)",
		a.ID, filename, meta.Width, meta.Height, meta.Format, meta.Bytes)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	step := logging.StartTimer(logging.CategoryPipeline, "classify")
	a.Category, err = analysis.Classify(ctx, r.vlm, img)
	step.Stop()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	step = logging.StartTimer(logging.CategoryPipeline, "detect damage")
	a.Damages, err = analysis.DetectDamage(ctx, r.vlm, img, a.Category)
	step.Stop()
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	step = logging.StartTimer(logging.CategoryPipeline, "extract text")
	a.OCRText, err = r.ocr.ExtractText(ctx, data)
	step.Stop()
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	step = logging.StartTimer(logging.CategoryPipeline, "parse fields")
	a.Record = analysis.ParseFields(ctx, r.vlm, img, a.Category, a.Damages, a.OCRText)
	step.Stop()

	a.Health = health.Evaluate(a.ID, a.Record, a.Damages, r.rules.Current())

	logging.Pipeline("analysis %s: complete, category=%q score=%d damages=%d",
		a.ID, a.Category, a.Health.Score, len(a.Damages))
	return a, nil
}
