// Package source owns the buffers the scanner mutates and the untouched
// originals used for error excerpts, and maps byte offsets back to
// (line, column) spans. It plays the role pkg/vfs/vfs.go plays for the
// teacher: a small registry that owns byte content for the lifetime of a
// run, handing out read views rather than copies.
package source

import (
	"bytes"
	"fmt"
)

// File holds one input file's working copy (the scanner mutates this one
// in place, including writing the NUL terminators described in spec
// §4.1) and its untouched original, used only to print source excerpts in
// diagnostics. Line starts are computed once at construction time.
//
// Invariant: Lines is strictly increasing, starts at 0, and holds one
// entry per line start (the offset just past each '\n'); no entry for
// len(Original) is added after a final line that lacks a newline.
// Lines[i] is the offset of the first byte of line i (0-based) and
// Lines[i+1]-1 is the offset of that line's trailing newline; the final
// line runs to len(Original).
type File struct {
	Name     string
	Working  []byte // mutated in place by the scanner; one byte longer than Original to always have room for a terminator
	Original []byte // read-only, for error excerpts
	Lines    []int
}

// New builds a File from raw file content. The content is copied twice:
// once into an untouched Original, and once into a Working buffer the
// scanner is free to mutate. Working carries one extra trailing byte so a
// lexeme ending exactly at end-of-input still has room for its NUL
// terminator.
func New(name string, content []byte) *File {
	f := &File{
		Name:     name,
		Original: append([]byte(nil), content...),
		Working:  make([]byte, len(content)+1),
	}
	copy(f.Working, content)
	f.indexLines()
	return f
}

func (f *File) indexLines() {
	f.Lines = append(f.Lines, 0)
	for i, b := range f.Original {
		if b == '\n' {
			f.Lines = append(f.Lines, i+1)
		}
	}
	if len(f.Original) == 0 || f.Original[len(f.Original)-1] != '\n' {
		// no sentinel is added: LineSpan ends the final line at len(Original)
	}
}

// lineIndex returns the 0-based line containing offset via binary search
// over Lines.
func (f *File) lineIndex(offset int) int {
	lo, hi := 0, len(f.Lines)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if f.Lines[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo
}

// LineSpan returns the [start,end) byte range of line i (0-based) within
// Original, and the corresponding range within Working.
func (f *File) LineSpan(i int) (origStart, origEnd, workStart, workEnd int) {
	start := f.Lines[i]
	end := len(f.Original)
	if i+1 < len(f.Lines) {
		end = f.Lines[i+1] - 1 // exclude the '\n'
		if end > 0 && end <= len(f.Original) && f.Original[end-1] == '\r' {
			// keep \r\n lines excerpt-clean: trailing \r stays, callers trim
		}
	}
	return start, end, start, end
}

// Describe implements diag.Locatable: it maps a byte offset to
// (file, line, col, source-line snippet), 1-based line and column.
func (f *File) Describe(offset int) (file string, line, col int, snippet string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(f.Original) {
		offset = len(f.Original)
	}
	idx := f.lineIndex(offset)
	start, end, _, _ := f.LineSpan(idx)
	col = offset - start + 1
	snippet = string(bytes.TrimRight(f.Original[start:end], "\r"))
	return f.Name, idx + 1, col, snippet
}

// String is a debug-only representation, mirroring Token.String() in the
// teacher's lexer: enough to eyeball in a -dump-syn trace.
func (f *File) String() string {
	return fmt.Sprintf("source.File{%s, %d bytes, %d lines}", f.Name, len(f.Original), len(f.Lines))
}
