package ast

import "strconv"

// Source is one input file handed to the analyzer.
type Source struct {
	Path     string
	Contents string
	ID       int
}

type Location struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (l Location) String() string {
	return strconv.Itoa(l.Line) + ":" + strconv.Itoa(l.Column)
}

type Span struct {
	Start    Location `json:"start"`
	End      Location `json:"end"`
	SourceID int
}

func (s Span) String() string {
	return s.Start.String() + "-" + s.End.String()
}

func NewSpan(start, end Location, sourceID int) Span {
	return Span{Start: start, End: end, SourceID: sourceID}
}

// MergeSpans returns the smallest span covering both a and b.
func MergeSpans(a, b Span) Span {
	start, end := a.Start, a.End
	if b.Start.Line < start.Line || (b.Start.Line == start.Line && b.Start.Column < start.Column) {
		start = b.Start
	}
	if b.End.Line > end.Line || (b.End.Line == end.Line && b.End.Column > end.Column) {
		end = b.End
	}
	return Span{Start: start, End: end, SourceID: a.SourceID}
}
