// Package rules implements the regex-to-style association engine: per
// display region it keeps an ordered list of pattern rules, deduplicates
// and mutates them in place, and resolves which style applies to a piece
// of content.
package rules

// Region identifies a display area of the mail reader.
type Region int

const (
	RegionUnknown Region = iota

	// Pattern-bearing regions, each carrying an ordered rule list.
	RegionAttachHeaders
	RegionBody
	RegionHeader
	RegionIndex
	RegionIndexAuthor
	RegionIndexFlags
	RegionIndexSubject
	RegionIndexTag
	RegionStatus

	// Simple regions carry a single style and no rule list.
	RegionNormal
	RegionTree
	RegionSignature
	RegionTilde
	RegionMarkers
	RegionPrompt
)

var regionNames = map[Region]string{
	RegionAttachHeaders: "attach_headers",
	RegionBody:          "body",
	RegionHeader:        "header",
	RegionIndex:         "index",
	RegionIndexAuthor:   "index_author",
	RegionIndexFlags:    "index_flags",
	RegionIndexSubject:  "index_subject",
	RegionIndexTag:      "index_tag",
	RegionStatus:        "status",
	RegionNormal:        "normal",
	RegionTree:          "tree",
	RegionSignature:     "signature",
	RegionTilde:         "tilde",
	RegionMarkers:       "markers",
	RegionPrompt:        "prompt",
}

var regionsByName = func() map[string]Region {
	m := make(map[string]Region, len(regionNames))
	for r, name := range regionNames {
		m[name] = r
	}
	return m
}()

// patternRegions is the closed set of regions carrying rule lists, in
// display order.
var patternRegions = []Region{
	RegionAttachHeaders,
	RegionBody,
	RegionHeader,
	RegionIndex,
	RegionIndexAuthor,
	RegionIndexFlags,
	RegionIndexSubject,
	RegionIndexTag,
	RegionStatus,
}

// ParseRegion resolves a colour command's region word.
func ParseRegion(name string) (Region, bool) {
	r, ok := regionsByName[name]
	return r, ok
}

// String returns the region's command name.
func (r Region) String() string {
	if name, ok := regionNames[r]; ok {
		return name
	}
	return "unknown"
}

// HasPatterns reports whether the region carries a rule list.
func (r Region) HasPatterns() bool {
	switch r {
	case RegionAttachHeaders, RegionBody, RegionHeader,
		RegionIndex, RegionIndexAuthor, RegionIndexFlags,
		RegionIndexSubject, RegionIndexTag, RegionStatus:
		return true
	}
	return false
}

// IsIndexKind reports whether the region's rules compile as search
// expressions over message summaries rather than plain regexes.
func (r Region) IsIndexKind() bool {
	switch r {
	case RegionIndex, RegionIndexAuthor, RegionIndexFlags,
		RegionIndexSubject, RegionIndexTag:
		return true
	}
	return false
}

// PatternRegions returns the pattern-bearing regions in display order.
func PatternRegions() []Region {
	out := make([]Region, len(patternRegions))
	copy(out, patternRegions)
	return out
}
