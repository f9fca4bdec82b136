package directive

import (
	"slices"
	"strconv"
	"strings"
)

// Directive prefixes as they appear in auxiliary files.
const (
	NewLabelPrefix = `\newlabel{`
	FirstRefPrefix = `\floataudit@firstref{`
	InputPrefix    = `\@input{`
)

// Caption is a label definition: the float's display number and the page its
// caption was typeset on. Label and Ordinal are stored with surrounding
// whitespace trimmed, so "\newlabel{ fig:a }" and "\newlabel{fig:a}" name the
// same float.
type Caption struct {
	Label   string `json:"label" yaml:"label"`
	Ordinal string `json:"num" yaml:"num"`
	Page    int    `json:"page" yaml:"page"`
}

// FirstRef is a first-reference event for a label. Label is stored with
// surrounding whitespace trimmed, matching Caption.Label.
type FirstRef struct {
	Label string `json:"label" yaml:"label"`
	Page  int    `json:"page" yaml:"page"`
}

// Records holds everything extracted from a single file, in text order.
type Records struct {
	Captions  []Caption
	FirstRefs []FirstRef
}

// Len returns the total number of records.
func (r Records) Len() int {
	return len(r.Captions) + len(r.FirstRefs)
}

// CaptionMatcher matches \newlabel{LABEL}{{ORDINAL}{PAGE}. Matches whose page
// token is not a plain decimal integer are consumed but dropped.
var CaptionMatcher = Matcher[Caption]{
	Prefix: NewLabelPrefix,
	Parse:  parseCaption,
}

// FirstRefMatcher matches \floataudit@firstref{LABEL}{DIGITS}.
var FirstRefMatcher = Matcher[FirstRef]{
	Prefix: FirstRefPrefix,
	Parse:  parseFirstRef,
}

// InputMatcher matches \@input{PATH}.
var InputMatcher = Matcher[string]{
	Prefix: InputPrefix,
	Parse:  parseInput,
}

// Extract returns all caption and first-reference records found in text.
func Extract(text string) Records {
	return Records{
		Captions:  slices.Collect(CaptionMatcher.All(text)),
		FirstRefs: slices.Collect(FirstRefMatcher.All(text)),
	}
}

// Inputs returns the paths named by inclusion directives, in text order.
func Inputs(text string) []string {
	return slices.Collect(InputMatcher.All(text))
}

func parseCaption(rest string) (Caption, int, bool) {
	c := cursor{s: rest}
	label, ok := c.group(true)
	if !ok || !c.lit("}{{") {
		return Caption{}, 0, false
	}
	ordinal, ok := c.group(false)
	if !ok || !c.lit("}{") {
		return Caption{}, 0, false
	}
	pageTok, ok := c.group(false)
	if !ok || !c.lit("}") {
		return Caption{}, 0, false
	}

	page, ok := parsePage(strings.TrimSpace(pageTok))
	if !ok {
		return Caption{}, c.pos, false
	}
	return Caption{
		Label:   strings.TrimSpace(label),
		Ordinal: strings.TrimSpace(ordinal),
		Page:    page,
	}, c.pos, true
}

func parseFirstRef(rest string) (FirstRef, int, bool) {
	c := cursor{s: rest}
	label, ok := c.group(true)
	if !ok || !c.lit("}{") {
		return FirstRef{}, 0, false
	}
	pageTok, ok := c.digits()
	if !ok || !c.lit("}") {
		return FirstRef{}, 0, false
	}

	page, err := strconv.Atoi(pageTok)
	if err != nil {
		// only reachable on overflow
		return FirstRef{}, c.pos, false
	}
	return FirstRef{Label: strings.TrimSpace(label), Page: page}, c.pos, true
}

func parseInput(rest string) (string, int, bool) {
	c := cursor{s: rest}
	path, ok := c.group(true)
	if !ok || !c.lit("}") {
		return "", 0, false
	}
	return path, c.pos, true
}

// parsePage accepts only non-empty ASCII digit strings that fit an int.
func parsePage(tok string) (int, bool) {
	if tok == "" {
		return 0, false
	}
	for i := 0; i < len(tok); i++ {
		if !isDigit(tok[i]) {
			return 0, false
		}
	}
	page, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return page, true
}
