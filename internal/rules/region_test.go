package rules

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseRegion(t *testing.T) {
	tests := []struct {
		name string
		want Region
	}{
		{"attach_headers", RegionAttachHeaders},
		{"body", RegionBody},
		{"header", RegionHeader},
		{"index", RegionIndex},
		{"index_author", RegionIndexAuthor},
		{"index_flags", RegionIndexFlags},
		{"index_subject", RegionIndexSubject},
		{"index_tag", RegionIndexTag},
		{"status", RegionStatus},
		{"normal", RegionNormal},
		{"signature", RegionSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseRegion(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.want, got)
		})
	}

	_, ok := ParseRegion("bogus")
	require.False(t, ok)
}

func TestRegion_String(t *testing.T) {
	require.Equal(t, "index_author", RegionIndexAuthor.String())
	require.Equal(t, "status", RegionStatus.String())
	require.Equal(t, "unknown", RegionUnknown.String())
	require.Equal(t, "unknown", Region(99).String())
}

func TestRegion_HasPatterns(t *testing.T) {
	for _, r := range PatternRegions() {
		require.True(t, r.HasPatterns(), "%s should carry rules", r)
	}

	for _, r := range []Region{RegionNormal, RegionTree, RegionSignature, RegionTilde, RegionMarkers, RegionPrompt, RegionUnknown} {
		require.False(t, r.HasPatterns(), "%s should not carry rules", r)
	}
}

func TestRegion_IsIndexKind(t *testing.T) {
	indexKind := []Region{RegionIndex, RegionIndexAuthor, RegionIndexFlags, RegionIndexSubject, RegionIndexTag}
	for _, r := range indexKind {
		require.True(t, r.IsIndexKind(), "%s should be index kind", r)
	}

	for _, r := range []Region{RegionAttachHeaders, RegionBody, RegionHeader, RegionStatus, RegionNormal} {
		require.False(t, r.IsIndexKind(), "%s should not be index kind", r)
	}
}

func TestPatternRegions_CopyIsIndependent(t *testing.T) {
	regions := PatternRegions()
	require.Len(t, regions, 9)

	regions[0] = RegionUnknown
	require.Equal(t, RegionAttachHeaders, PatternRegions()[0])
}
