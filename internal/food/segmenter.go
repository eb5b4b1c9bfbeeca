package food

import (
	"regexp"
	"sort"
	"strconv"
)

// itemPatterns pairs each vocabulary phrase with its match pattern:
// optional quantity, optional size modifier, then the phrase with an
// optional plural suffix. Built once; the vocabulary is immutable.
var itemPatterns = func() []*regexp.Regexp {
	mods := modifierAlternation()
	patterns := make([]*regexp.Regexp, len(vocabulary))
	for i, phrase := range vocabulary {
		patterns[i] = regexp.MustCompile(
			`(?i)\b(?:(\d+(?:\.\d+)?)\s+)?(?:(` + mods + `)\s+)?` +
				regexp.QuoteMeta(phrase) + `(?:e?s)?\b`)
	}
	return patterns
}()

type segmentMatch struct {
	start    int
	end      int
	phrase   string
	quantity float64
	modifier SizeModifier
}

// Segment scans a full message for known food phrases, longest phrase
// first, accepting only matches whose spans do not overlap a previously
// accepted one. Each substring of the message therefore feeds at most one
// item. With zero matches the whole message becomes a single item.
//
// A message-level measurement and lean mention, when present, attach to the
// first item in text order only; attributing them per food span is a known
// gap carried over deliberately.
func Segment(message string) []Estimate {
	var accepted []segmentMatch
	for i, phrase := range vocabulary {
		loc := itemPatterns[i].FindStringSubmatchIndex(message)
		if loc == nil {
			continue
		}
		match := segmentMatch{start: loc[0], end: loc[1], phrase: phrase, quantity: 1, modifier: SizeModifier{Multiplier: 1}}
		if loc[2] >= 0 {
			if qty, err := strconv.ParseFloat(message[loc[2]:loc[3]], 64); err == nil && qty > 0 {
				match.quantity = qty
			}
		}
		if loc[4] >= 0 {
			match.modifier = modifierByToken(message[loc[4]:loc[5]])
		}
		if overlapsAny(match, accepted) {
			continue
		}
		accepted = append(accepted, match)
	}

	if len(accepted) == 0 {
		return []Estimate{EstimateMessage(message)}
	}

	sort.Slice(accepted, func(i, j int) bool { return accepted[i].start < accepted[j].start })

	var meas *Measurement
	var lean *LeanInfo
	if m, ok := ExtractMeasurement(message); ok {
		meas = &m
	}
	if l, ok := ResolveLean(message); ok {
		lean = &l
	}

	estimates := make([]Estimate, 0, len(accepted))
	for i, m := range accepted {
		if i == 0 {
			estimates = append(estimates, EstimateItem(m.phrase, m.quantity, m.modifier, meas, lean))
			continue
		}
		estimates = append(estimates, EstimateItem(m.phrase, m.quantity, m.modifier, nil, nil))
	}
	return estimates
}

// Two spans overlap when either endpoint of one lies within the other or
// one fully contains the other.
func overlapsAny(candidate segmentMatch, accepted []segmentMatch) bool {
	for _, a := range accepted {
		if candidate.start < a.end && a.start < candidate.end {
			return true
		}
	}
	return false
}
