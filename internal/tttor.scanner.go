package internal

import (
	"regexp"

	"go.uber.org/zap"
)

// markerRegex finds begin and end marker tokens
var markerRegex = regexp.MustCompile(MarkerPattern)

// Marker is a single begin or end marker token located in a text
type Marker struct {
	Begin bool   // true for macro-begin, false for macro-end
	Name  string // macro name
	Text  string // full marker text, e.g. "<!-- macro-begin X -->"
	Start int    // offset of the first byte of the marker
	End   int    // offset just past the marker
}

// Region is one invocation: a begin marker, its content and the matching end marker.
type Region struct {
	Name         string
	Begin        int // start of the begin marker
	End          int // end of the end marker
	ContentBegin int // just after the begin marker
	ContentEnd   int // just before the end marker
	BeginMarker  string
	EndMarker    string
}

// Scanner locates invocation regions in a single text
type Scanner struct {
	source string
	logger *zap.Logger
}

// NewScanner creates a scanner over source
func NewScanner(source string, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{
		source: source,
		logger: logger,
	}
}

// Markers returns every marker token in source order
func (s *Scanner) Markers() []Marker {
	matches := markerRegex.FindAllStringSubmatchIndex(s.source, -1)
	markers := make([]Marker, 0, len(matches))
	for _, m := range matches {
		markers = append(markers, Marker{
			Begin: s.group(m, markerGroupTag) == MarkerTagBegin,
			Name:  s.group(m, markerGroupName),
			Text:  s.group(m, markerGroupWhole),
			Start: m[2*markerGroupWhole],
			End:   m[2*markerGroupWhole+1],
		})
	}
	return markers
}

// Scan pairs the markers into regions. At most one begin marker may be open
// at a time, so regions never nest within the same text. stack is used only
// to locate errors.
func (s *Scanner) Scan(stack Stack) ([]Region, error) {
	s.logger.Debug(LogMsgScanStart, zap.Int(LogFieldSource, len(s.source)))

	var (
		regions []Region
		pending *Marker
	)

	for _, marker := range s.Markers() {
		marker := marker // per-iteration copy; pending keeps its address (go < 1.22 loop semantics)
		if marker.Begin {
			if pending != nil {
				return nil, s.fail(NewUnmatchedBeginError(*pending, stack))
			}
			pending = &marker
			continue
		}

		if pending == nil {
			return nil, s.fail(NewUnmatchedEndError(marker, stack))
		}
		if pending.Name != marker.Name {
			return nil, s.fail(NewNameMismatchError(*pending, marker, stack))
		}

		regions = append(regions, Region{
			Name:         pending.Name,
			Begin:        pending.Start,
			End:          marker.End,
			ContentBegin: pending.End,
			ContentEnd:   marker.Start,
			BeginMarker:  pending.Text,
			EndMarker:    marker.Text,
		})
		pending = nil
	}

	if pending != nil {
		return nil, s.fail(NewUnmatchedBeginError(*pending, stack))
	}

	s.logger.Debug(LogMsgScanEnd, zap.Int(LogFieldRegions, len(regions)))
	return regions, nil
}

// Scan is a convenience wrapper for a one-off scan with no logging
func Scan(source string, stack Stack) ([]Region, error) {
	return NewScanner(source, nil).Scan(stack)
}

func (s *Scanner) group(match []int, group int) string {
	start, end := match[2*group], match[2*group+1]
	if start < 0 {
		return ""
	}
	return s.source[start:end]
}

func (s *Scanner) fail(err *MacroError) error {
	s.logger.Debug(LogMsgScanFailed, zap.String(LogFieldError, err.Error()))
	return err
}
