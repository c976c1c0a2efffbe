package tracing

// Span attribute keys used across the colour pipeline.
const (
	AttrRcPath   = "rc.path"
	AttrRcLine   = "rc.line"
	AttrRcVerb   = "rc.verb"
	AttrRuleSet  = "rule.region"
	AttrPattern  = "rule.pattern"
	AttrSubmatch = "rule.submatch"
	AttrFg       = "colour.fg"
	AttrBg       = "colour.bg"
	AttrAttrs    = "colour.attrs"

	AttrErrorMessage = "error.message"
)

// Span names for rc processing.
const (
	SpanApplyFile = "rc.apply_file"
	SpanApplyLine = "rc.apply_line"
)

// Span events.
const (
	EventRuleUpserted  = "rule.upserted"
	EventRegionCleared = "region.cleared"
)
