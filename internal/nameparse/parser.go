package nameparse

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// CargoFlow is a parsed rate+direction annotation embedded in a station's
// display name, e.g. "[in 45 Limestone]" or "[~120-150 Iron Ore]".
type CargoFlow struct {
	// Type is the cargo identifier, fuzzy-resolved against the station's
	// cargo types or the global catalog.
	Type string `json:"type"`

	// IsUnload is true when the station hands cargo over to consumers, false
	// when it loads cargo into the transporter.
	IsUnload bool `json:"isUnload"`

	// FlowPerMinute is the annotated rate, nil when unparseable.
	FlowPerMinute *int `json:"flowPerMinute"`

	// IsExact is false when the annotation used the "~" approximation marker.
	IsExact bool `json:"isExact"`
}

// minMatchScore is the fuzzy-match acceptance threshold on the matcher's
// 0-100 scale. Below it the raw hint text is kept verbatim.
const minMatchScore = 20

var groupPattern = regexp.MustCompile(`\[([^\]]*)\]`)

// Parser extracts the short display name and structured flow hints from raw,
// user-editable station labels. Malformed annotations are skipped, never an
// error: players type these by hand.
type Parser struct {
	matcher Matcher
	catalog []string
}

// NewParser creates a parser. The catalog is the fallback list of known cargo
// type names used when a station has no resolved cargo of its own; pass
// DefaultCatalog() unless a run supplies its own.
func NewParser(matcher Matcher, catalog []string) *Parser {
	return &Parser{matcher: matcher, catalog: catalog}
}

// Parse splits a raw label into its short name and ordered flow annotations.
// cargoTypes are the station's already-resolved cargo identifiers and take
// precedence over the catalog as fuzzy-match candidates.
func (p *Parser) Parse(name string, cargoTypes []string) (shortName string, flows []CargoFlow) {
	shortName = p.shortName(name)

	for _, group := range groupPattern.FindAllStringSubmatch(name, -1) {
		flow, ok := p.parseGroup(group[1], cargoTypes)
		if !ok {
			continue
		}
		flows = append(flows, flow)
	}
	return shortName, flows
}

// shortName is the bracketed sub-label when the name starts with "[",
// otherwise the text before the first "[", trimmed.
func (p *Parser) shortName(name string) string {
	if strings.HasPrefix(name, "[") {
		if m := groupPattern.FindStringSubmatch(name); m != nil {
			return strings.TrimSpace(m[1])
		}
		return strings.TrimSpace(name)
	}
	if i := strings.Index(name, "["); i >= 0 {
		return strings.TrimSpace(name[:i])
	}
	return strings.TrimSpace(name)
}

// parseGroup interprets one bracketed group. A group is a flow annotation only
// when it has exactly three space-separated tokens. When the first token is
// direction-like ("in"/"out" prefixed) the layout is {direction} {rate}
// {cargo}; otherwise the direction is absent (treated as unload) and the
// layout is {rate} {cargo cargo}.
func (p *Parser) parseGroup(group string, cargoTypes []string) (CargoFlow, bool) {
	tokens := strings.Split(group, " ")
	if len(tokens) != 3 {
		return CargoFlow{}, false
	}

	isUnload := true
	var rateToken, hint string
	switch first := strings.ToLower(tokens[0]); {
	case strings.HasPrefix(first, "in"):
		isUnload = false
		rateToken, hint = tokens[1], tokens[2]
	case strings.HasPrefix(first, "out"):
		rateToken, hint = tokens[1], tokens[2]
	default:
		rateToken, hint = tokens[0], tokens[1]+" "+tokens[2]
	}

	rate, isExact := parseRate(rateToken)

	return CargoFlow{
		Type:          p.resolveCargo(hint, cargoTypes),
		IsUnload:      isUnload,
		FlowPerMinute: rate,
		IsExact:       isExact,
	}, true
}

// parseRate reads a rate token. A leading "~" marks an approximation; a "-"
// starts a range and only the left value counts; fractional values round up.
// Unparseable rates yield nil.
func parseRate(token string) (*int, bool) {
	isExact := true
	if strings.HasPrefix(token, "~") {
		isExact = false
		token = token[1:]
	}
	if i := strings.Index(token, "-"); i >= 0 {
		token = token[:i]
	}

	f, err := strconv.ParseFloat(token, 64)
	if err != nil || f < 0 {
		return nil, isExact
	}
	rate := int(math.Ceil(f))
	return &rate, isExact
}

// resolveCargo fuzzy-matches the hint against the station's own cargo types
// when it has any, else the global catalog. Weak matches keep the raw hint.
func (p *Parser) resolveCargo(hint string, cargoTypes []string) string {
	candidates := cargoTypes
	if len(candidates) == 0 {
		candidates = p.catalog
	}

	value, score := p.matcher.BestMatch(hint, candidates)
	if score >= minMatchScore {
		return value
	}
	return hint
}
