package service

import (
	"context"
	"log/slog"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"expenseanalyzer/internal/config"
	"expenseanalyzer/internal/llm"
	"expenseanalyzer/internal/model"
)

var tracer = otel.Tracer("expenseanalyzer/internal/service")

// AnalysisService defines the expense analysis use case.
type AnalysisService interface {
	// Analyze validates the inputs, builds the prompt, and calls the analyzer once.
	// A non-nil error is always a *ValidationError and means no external call was made.
	// Otherwise the returned Result carries either the analysis text or the call failure.
	Analyze(ctx context.Context, doc *model.UploadedDocument, userText string) (model.Result, error)

	// Model returns the configured completion model name.
	Model() string
}

// analysisService is a concrete implementation of AnalysisService.
type analysisService struct {
	analyzer llm.Analyzer
	cfg      config.OpenAIConfig
	metrics  *Metrics
}

// NewAnalysisService constructs a new AnalysisService. metrics may be nil.
func NewAnalysisService(analyzer llm.Analyzer, cfg config.OpenAIConfig, metrics *Metrics) AnalysisService {
	return &analysisService{analyzer: analyzer, cfg: cfg, metrics: metrics}
}

func (s *analysisService) Model() string {
	return s.cfg.Model
}

func (s *analysisService) Analyze(ctx context.Context, doc *model.UploadedDocument, userText string) (model.Result, error) {
	ctx, span := tracer.Start(ctx, "AnalysisService.Analyze", trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()

	if err := Validate(s.analyzer != nil && s.cfg.HasCredential(), doc, userText); err != nil {
		span.SetAttributes(attribute.String("analysis.outcome", outcomeInvalid))
		s.metrics.observe(outcomeInvalid, 0)
		slog.InfoContext(ctx, "analysis rejected", "reason", err.(*ValidationError).Code())
		return model.Result{}, err
	}

	req := BuildRequest(s.cfg.Model, *doc, userText)
	span.SetAttributes(
		attribute.String("analysis.model", req.Model),
		attribute.Int("analysis.file_bytes", doc.Size()),
		attribute.Int("analysis.text_chars", utf8.RuneCountInString(userText)),
	)

	start := time.Now()
	text, err := s.analyzer.Analyze(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "completion failed")
		span.SetAttributes(attribute.String("analysis.outcome", outcomeFailure))
		s.metrics.observe(outcomeFailure, elapsed)
		slog.ErrorContext(ctx, "analysis failed",
			"model", req.Model,
			"file_bytes", doc.Size(),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return model.Result{Err: err}, nil
	}

	span.SetAttributes(attribute.String("analysis.outcome", outcomeSuccess))
	s.metrics.observe(outcomeSuccess, elapsed)
	slog.InfoContext(ctx, "analysis completed",
		"model", req.Model,
		"file_bytes", doc.Size(),
		"response_chars", len(text),
		"duration_ms", elapsed.Milliseconds(),
	)
	return model.Result{Text: text}, nil
}
