package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/missive/internal/log"
	"github.com/zjrosen/missive/internal/pubsub"
	"github.com/zjrosen/missive/internal/rules"
	"github.com/zjrosen/missive/internal/tracing"
)

// Applier executes colour commands against a rule engine.
type Applier struct {
	engine *rules.Engine
	tracer trace.Tracer
	events pubsub.Publisher[string]
}

// Config wires an Applier. Engine is required; Tracer and Events may be
// nil.
type Config struct {
	Engine *rules.Engine
	Tracer trace.Tracer
	Events pubsub.Publisher[string]
}

// NewApplier builds an Applier over the given engine.
func NewApplier(cfg Config) *Applier {
	tracer := cfg.Tracer
	if tracer == nil {
		tracer = noop.NewTracerProvider().Tracer("noop")
	}
	return &Applier{
		engine: cfg.Engine,
		tracer: tracer,
		events: cfg.Events,
	}
}

// LineError is a command error tagged with its 1-based line number.
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// Result reports what an rc file application did.
type Result struct {
	Path    string
	Applied int
	Errors  []*LineError
}

// Ok reports whether every line applied cleanly.
func (r *Result) Ok() bool {
	return len(r.Errors) == 0
}

// Err folds the line diagnostics into one error, nil when clean.
func (r *Result) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// ApplyFile runs every command in the rc file at path. Bad lines are
// collected rather than aborting the load, matching how mail clients
// treat their rc files. The returned error covers file access only;
// line diagnostics live in the Result.
func (a *Applier) ApplyFile(ctx context.Context, path string) (*Result, error) {
	ctx, span := a.tracer.Start(ctx, tracing.SpanApplyFile,
		trace.WithAttributes(attribute.String(tracing.AttrRcPath, path)))
	defer span.End()

	data, err := os.ReadFile(path) // #nosec G304 -- the rc path is user configuration
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("read rc file: %w", err)
	}

	result := &Result{Path: path}
	for i, line := range strings.Split(string(data), "\n") {
		lineno := i + 1
		applied, err := a.applyLine(ctx, line)
		if err != nil {
			le := &LineError{Line: lineno, Err: err}
			result.Errors = append(result.Errors, le)
			log.Error(log.CatRC, "rc line rejected", "path", path, "line", lineno, "err", err)
			continue
		}
		if applied {
			result.Applied++
		}
	}

	if result.Ok() {
		span.SetStatus(codes.Ok, "")
	} else {
		span.SetStatus(codes.Error, fmt.Sprintf("%d invalid lines", len(result.Errors)))
	}

	log.Info(log.CatRC, "rc file applied",
		"path", path,
		"applied", result.Applied,
		"rejected", len(result.Errors),
	)

	if result.Applied > 0 && a.events != nil {
		a.events.Publish(pubsub.RcAppliedEvent, path)
	}
	return result, nil
}

// ApplyLine runs a single colour command. Blank lines and comments are
// no-ops.
func (a *Applier) ApplyLine(ctx context.Context, line string) error {
	_, err := a.applyLine(ctx, line)
	return err
}

// applyLine reports whether the line held a command, so file loads can
// count real work instead of blanks.
func (a *Applier) applyLine(ctx context.Context, line string) (bool, error) {
	words, err := splitWords(line)
	if err != nil {
		return false, err
	}
	if len(words) == 0 {
		return false, nil
	}

	verb := words[0]
	_, span := a.tracer.Start(ctx, tracing.SpanApplyLine,
		trace.WithAttributes(attribute.String(tracing.AttrRcVerb, verb)))
	defer span.End()

	switch verb {
	case "color":
		err = a.applyColor(span, words[1:])
	case "uncolor":
		err = a.applyUncolor(span, words[1:])
	default:
		err = fmt.Errorf("unknown command %q", verb)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	span.SetStatus(codes.Ok, "")
	return true, nil
}

func (a *Applier) applyColor(span trace.Span, args []string) error {
	parsed, err := parseColorArgs(args)
	if err != nil {
		return err
	}

	span.SetAttributes(
		attribute.String(tracing.AttrRuleSet, parsed.region.String()),
		attribute.String(tracing.AttrPattern, parsed.pattern),
		attribute.String(tracing.AttrFg, parsed.fg.String()),
		attribute.String(tracing.AttrBg, parsed.bg.String()),
	)

	if parsed.region == rules.RegionStatus {
		span.SetAttributes(attribute.Int(tracing.AttrSubmatch, parsed.submatch))
		_, err = a.engine.AddStatusRule(parsed.region, parsed.pattern, parsed.fg, parsed.bg, parsed.attrs, parsed.submatch)
	} else {
		if parsed.submatch != 0 {
			return fmt.Errorf("match numbers apply to the status region only")
		}
		err = a.engine.AddColorRule(parsed.region, parsed.pattern, parsed.fg, parsed.bg, parsed.attrs)
	}
	if err != nil {
		return err
	}

	span.AddEvent(tracing.EventRuleUpserted)
	return nil
}

func (a *Applier) applyUncolor(span trace.Span, args []string) error {
	region, err := parseUncolorArgs(args)
	if err != nil {
		return err
	}

	span.SetAttributes(attribute.String(tracing.AttrRuleSet, region.String()))
	if err := a.engine.Clear(region); err != nil {
		return err
	}

	span.AddEvent(tracing.EventRegionCleared)
	return nil
}
