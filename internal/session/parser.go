// Package session parses muxup session files: an indentation-structured
// list of window definitions plus an optional @prelude block of raw tmux
// commands.
package session

import (
	"fmt"
	"io"
	"strings"
)

// PreludeKeyword is the only recognized @-section name.
const PreludeKeyword = "@prelude"

// Window is a single tmux window definition from a session file.
type Window struct {
	// Line is the 1-based line number of the title line, kept for
	// diagnostics (lint reports, parse errors).
	Line int
	// Title is the window's display name. Double quotes and backslashes
	// are rejected at parse time because the title is later embedded in a
	// quoted control-script directive.
	Title string
	// Script is the shell text typed into the window. May be empty.
	Script string
}

// Document is the parse result: windows in file order plus the optional
// prelude. Window order matters; it becomes the left-to-right window
// order of the generated tmux session.
type Document struct {
	Windows []Window
	Prelude string
}

// ParseError is a fatal session file error with its 1-based line number.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
}

func parseErrorf(line int, format string, args ...any) *ParseError {
	return &ParseError{Line: line, Msg: fmt.Sprintf(format, args...)}
}

// parseState tracks where the line loop is relative to the current section.
type parseState int

const (
	// stateTitle: between sections; blanks and # comments are skipped,
	// any other unindented line opens a section.
	stateTitle parseState = iota
	// stateIndent: the line right after a title; the body's indentation
	// is not established yet.
	stateIndent
	// stateBody: inside a body whose indentation prefix is known.
	stateBody
)

// block is the section currently being collected: a window in progress or
// the prelude. A nil *block means no section is open.
type block struct {
	prelude bool
	line    int
	title   string
	body    []string
}

// Parse reads a whole session file and parses it. Any failure discards the
// in-progress document entirely.
func Parse(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	return ParseLines(splitLines(string(data)))
}

// ParseString parses session file text held in memory.
func ParseString(text string) (*Document, error) {
	return ParseLines(splitLines(text))
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	return lines
}

// ParseLines runs the three-state line machine over materialized lines.
// State transitions that close a section re-process the current line
// without consuming it, so the loop index only advances when a line has
// been fully handled.
func ParseLines(lines []string) (*Document, error) {
	doc := &Document{}
	var (
		state       parseState
		cur         *block
		indent      string
		preludeLine int
	)

	closeSection := func() {
		if cur == nil {
			return
		}
		script := strings.Join(cur.body, "\n")
		if cur.prelude {
			doc.Prelude = script
		} else {
			doc.Windows = append(doc.Windows, Window{
				Line:   cur.line,
				Title:  cur.title,
				Script: script,
			})
		}
		cur = nil
		indent = ""
	}

	i := 0
	for i < len(lines) {
		line := lines[i]
		lineno := i + 1
		head := leadingWhitespace(line)

		switch state {
		case stateTitle:
			if strings.TrimSpace(line) == "" {
				i++
				continue
			}
			if head != "" {
				return nil, parseErrorf(lineno, "unexpected indentation")
			}
			if strings.HasPrefix(line, "#") {
				i++
				continue
			}
			title := strings.TrimRight(line, " \t")
			if strings.HasPrefix(title, "@") {
				if title != PreludeKeyword {
					return nil, parseErrorf(lineno, "unsupported section %q", title)
				}
				if preludeLine > 0 {
					return nil, parseErrorf(lineno, "duplicate %s section (first declared on line %d)", PreludeKeyword, preludeLine)
				}
				preludeLine = lineno
				cur = &block{prelude: true, line: lineno}
			} else {
				if strings.ContainsAny(title, "\"\\") {
					return nil, parseErrorf(lineno, "window title %q must not contain double quotes or backslashes", title)
				}
				cur = &block{line: lineno, title: title}
			}
			state = stateIndent
			i++

		case stateIndent:
			if head == "" {
				// Unindented (or empty) line: the section has no body.
				// Close it and re-process the line as a potential title.
				closeSection()
				state = stateTitle
				continue
			}
			if strings.ContainsRune(head, '\t') {
				return nil, parseErrorf(lineno, "tab character in indentation")
			}
			indent = head
			cur.body = append(cur.body, line[len(indent):])
			state = stateBody
			i++

		case stateBody:
			if line == "" {
				// Zero-length lines belong to the body; they must not
				// terminate the block.
				cur.body = append(cur.body, "")
				i++
				continue
			}
			if head == "" {
				closeSection()
				state = stateTitle
				continue
			}
			if !strings.HasPrefix(line, indent) {
				return nil, parseErrorf(lineno,
					"inconsistent indentation: block established %q (%d chars), line starts with %q (%d chars)",
					indent, len(indent), head, len(head))
			}
			cur.body = append(cur.body, line[len(indent):])
			i++
		}
	}

	closeSection()
	return doc, nil
}

// leadingWhitespace returns the run of spaces and tabs at the start of line.
func leadingWhitespace(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}
