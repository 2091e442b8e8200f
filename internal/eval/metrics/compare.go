package metrics

import (
	"strings"

	"github.com/agext/levenshtein"
	"github.com/lehigh-university-libraries/idcapture/internal/models"
	"golang.org/x/text/unicode/norm"
)

// Match methods
const (
	MethodExact           = "exact"
	MethodFuzzy           = "fuzzy"
	MethodActualMissing   = "actual_missing"
	MethodExpectedMissing = "expected_missing"
	MethodBothMissing     = "both_missing"
)

// FieldMatch is the comparison of one extracted field against the reference
type FieldMatch struct {
	Expected string  `json:"expected" yaml:"expected"`
	Actual   string  `json:"actual" yaml:"actual"`
	Score    float64 `json:"score" yaml:"score"`
	Method   string  `json:"method" yaml:"method"`
	Distance int     `json:"distance" yaml:"distance"`
}

// Comparison holds per-field matches keyed by the field's JSON name
type Comparison struct {
	Fields       map[string]FieldMatch `json:"fields" yaml:"fields"`
	OverallScore float64               `json:"overallScore" yaml:"overallScore"`
}

// FieldNames lists the compared fields in report order
var FieldNames = []string{"fullName", "idNumber", "issueDate", "address"}

// Normalize composes to NFC, lowercases and collapses whitespace so that
// visually identical Vietnamese text compares equal
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

// CompareField scores one field in [0, 1]
func CompareField(expected, actual string) FieldMatch {
	m := FieldMatch{Expected: expected, Actual: actual}
	e, a := Normalize(expected), Normalize(actual)

	switch {
	case e == "" && a == "":
		m.Score, m.Method = 1.0, MethodBothMissing
	case a == "":
		m.Method = MethodActualMissing
		m.Distance = len([]rune(e))
	case e == "":
		m.Method = MethodExpectedMissing
		m.Distance = len([]rune(a))
	case e == a:
		m.Score, m.Method = 1.0, MethodExact
	default:
		m.Method = MethodFuzzy
		m.Distance = levenshtein.Distance(e, a, nil)
		m.Score = levenshtein.Similarity(e, a, nil)
	}
	return m
}

// Compare scores every field of an extraction against the reference
func Compare(expected, actual models.ExtractedData) *Comparison {
	exp := fieldValues(expected)
	act := fieldValues(actual)

	c := &Comparison{Fields: make(map[string]FieldMatch, len(FieldNames))}
	total := 0.0
	for _, name := range FieldNames {
		m := CompareField(exp[name], act[name])
		c.Fields[name] = m
		total += m.Score
	}
	c.OverallScore = total / float64(len(FieldNames))
	return c
}

func fieldValues(d models.ExtractedData) map[string]string {
	return map[string]string{
		"fullName":  d.FullName,
		"idNumber":  d.IDNumber,
		"issueDate": d.IssueDate,
		"address":   d.Address,
	}
}
