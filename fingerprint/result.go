package fingerprint

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/grailbio/base/tsv"
	"github.com/pkg/errors"
)

// Format selects the output line syntax.
type Format int

const (
	// FormatTSV produces tab-delimited lines with a header row.
	FormatTSV Format = iota
	// FormatCSV produces comma-delimited lines with a header row;
	// text fields are quoted.
	FormatCSV
	// FormatGFF produces GFF3-style feature lines.
	FormatGFF
)

// Field names one output column. For GFF the non-positional fields
// are rendered as feature attributes in the requested order.
type Field int

const (
	FieldReference Field = iota
	FieldStart
	FieldStop
	FieldCategory
	FieldSupport
	FieldAnnotation
	FieldMaxCountProportion
)

func (f Field) String() string {
	switch f {
	case FieldReference:
		return "reference"
	case FieldStart:
		return "start"
	case FieldStop:
		return "stop"
	case FieldCategory:
		return "category"
	case FieldSupport:
		return "support"
	case FieldAnnotation:
		return "annotation"
	case FieldMaxCountProportion:
		return "max_count_proportion"
	}
	return "unknown"
}

// DefaultFields is the default output column ordering.
var DefaultFields = []Field{FieldReference, FieldStart, FieldStop, FieldCategory}

// Result is the ordered aggregate of final locus records for one run.
// Line production is lazy and restartable: each call to Lines starts a
// fresh sequence, while a single iterator is consumed exactly once.
// An external writer owns destination selection, compression and the
// actual stream writing.
type Result struct {
	Loci     []JoinedLocus
	NoColour bool
}

// Lines returns an iterator over the formatted output lines of the
// requested mode. A nil fields slice selects DefaultFields.
func (r *Result) Lines(format Format, fields []Field) *LineIter {
	if fields == nil {
		fields = DefaultFields
	}
	return &LineIter{r: r, format: format, fields: fields, idx: -1}
}

// LineIter iterates over formatted output lines in the manner of
// bufio.Scanner: Scan advances, Text returns the current line.
type LineIter struct {
	r      *Result
	format Format
	fields []Field
	idx    int
	line   string
}

// Scan advances to the next line, returning false when the sequence is
// exhausted.
func (it *LineIter) Scan() bool {
	if it.idx < 0 {
		it.idx = 0
		// GFF carries its column meaning implicitly; the tabular modes
		// lead with a header row.
		if it.format != FormatGFF {
			it.line = it.header()
			return true
		}
	}
	if it.idx >= len(it.r.Loci) {
		return false
	}
	l := &it.r.Loci[it.idx]
	it.idx++
	switch it.format {
	case FormatTSV:
		it.line = tsvLine(l, it.fields)
	case FormatCSV:
		it.line = csvLine(l, it.fields)
	default:
		it.line = it.r.gffLine(l, it.fields)
	}
	return true
}

// Text returns the line produced by the last successful Scan.
func (it *LineIter) Text() string { return it.line }

func (it *LineIter) header() string {
	names := make([]string, len(it.fields))
	for i, f := range it.fields {
		names[i] = f.String()
	}
	if it.format == FormatCSV {
		for i := range names {
			names[i] = quoteCSV(names[i])
		}
		return strings.Join(names, ",")
	}
	return strings.Join(names, "\t")
}

// fieldIsNumeric reports whether the field renders as a bare number.
func fieldIsNumeric(f Field) bool {
	switch f {
	case FieldStart, FieldStop, FieldSupport, FieldMaxCountProportion:
		return true
	}
	return false
}

func fieldString(l *JoinedLocus, f Field) string {
	switch f {
	case FieldReference:
		return l.Locus.Reference
	case FieldStart:
		return strconv.Itoa(l.Locus.Start)
	case FieldStop:
		return strconv.Itoa(l.Locus.Stop)
	case FieldCategory:
		return l.Category
	case FieldSupport:
		return strconv.Itoa(l.Support)
	case FieldAnnotation:
		return l.AnnotationID
	case FieldMaxCountProportion:
		return strconv.FormatFloat(l.MaxCountProportion, 'f', 3, 64)
	}
	return ""
}

func tsvLine(l *JoinedLocus, fields []Field) string {
	var buf bytes.Buffer
	w := tsv.NewWriter(&buf)
	for _, f := range fields {
		switch f {
		case FieldStart:
			w.WriteInt64(int64(l.Locus.Start))
		case FieldStop:
			w.WriteInt64(int64(l.Locus.Stop))
		case FieldSupport:
			w.WriteInt64(int64(l.Support))
		default:
			w.WriteString(fieldString(l, f))
		}
	}
	_ = w.EndLine()
	_ = w.Flush()
	return strings.TrimSuffix(buf.String(), "\n")
}

// quoteCSV wraps a text value in double quotes, doubling any embedded
// quote characters.
func quoteCSV(s string) string {
	return `"` + strings.Replace(s, `"`, `""`, -1) + `"`
}

func csvLine(l *JoinedLocus, fields []Field) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		v := fieldString(l, f)
		if !fieldIsNumeric(f) {
			v = quoteCSV(v)
		}
		parts[i] = v
	}
	return strings.Join(parts, ",")
}

// gffLine renders one locus as a GFF3 feature. Positional fields map
// to the seqid/start/end columns; the remaining requested fields and
// the comparative statistics become attributes.
func (r *Result) gffLine(l *JoinedLocus, fields []Field) string {
	ftype := "flank"
	if l.Paired {
		ftype = "insertion"
	}
	var attrs []string
	attrs = append(attrs,
		fmt.Sprintf("ID=bin_%s_%s_%d", l.Category, l.Locus.Reference, l.Locus.Start),
		"Name="+l.Category)
	for _, f := range fields {
		switch f {
		case FieldReference, FieldStart, FieldStop, FieldCategory:
			// Already carried by the fixed columns.
		case FieldAnnotation:
			if l.AnnotationID != "" {
				attrs = append(attrs, "match="+l.AnnotationID)
			}
		default:
			attrs = append(attrs, f.String()+"="+fieldString(l, f))
		}
	}
	for _, s := range l.Samples {
		common := make([]string, len(s.Common))
		for i, c := range s.Common {
			common[i] = c.Category + ":" + strconv.Itoa(c.Count)
		}
		attrs = append(attrs, fmt.Sprintf("sample_%s=%s", s.Sample, strings.Join(common, ",")))
	}
	attrs = append(attrs,
		"read_count_min="+strconv.Itoa(l.ReadCountMin),
		"read_count_max="+strconv.Itoa(l.ReadCountMax),
		"sample_presence="+strconv.Itoa(l.SamplePresence),
		"sample_absence="+strconv.Itoa(l.SampleAbsence))
	if !r.NoColour {
		attrs = append(attrs, "color="+colourFor(l.MaxCountProportion))
	}
	return fmt.Sprintf("%s\ttefingerprint\t%s\t%d\t%d\t%d\t.\t.\t%s",
		l.Locus.Reference, ftype, l.Locus.Start, l.Locus.Stop, l.Support,
		strings.Join(attrs, ";"))
}

// colourFor maps the max count proportion onto the five-class heat
// palette used for downstream browser colour coding.
func colourFor(p float64) string {
	switch {
	case p >= 0.9:
		return "#d7191c"
	case p >= 0.7:
		return "#fdae61"
	case p >= 0.5:
		return "#ffffbf"
	case p >= 0.3:
		return "#abd9e9"
	}
	return "#2c7bb6"
}

// Write renders the full line sequence of the requested mode to w,
// appending a newline after each line.
func (r *Result) Write(w io.Writer, format Format, fields []Field) error {
	it := r.Lines(format, fields)
	for it.Scan() {
		if _, err := io.WriteString(w, it.Text()+"\n"); err != nil {
			return errors.Wrap(err, "writing fingerprint lines")
		}
	}
	return nil
}
