package parser

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"tlaunch/internal/domain"
)

const (
	logStart = "<TestLog>"
	logEnd   = "</TestLog>"
)

// BoostParser parses Boost.Test XML logs (--log_format=XML)
type BoostParser struct{}

// NewBoostParser creates a new BoostParser
func NewBoostParser() *BoostParser {
	return &BoostParser{}
}

type xmlLog struct {
	XMLName xml.Name   `xml:"TestLog"`
	Suites  []xmlSuite `xml:"TestSuite"`
}

type xmlSuite struct {
	Name    string     `xml:"name,attr"`
	Skipped string     `xml:"skipped,attr"`
	Reason  string     `xml:"reason,attr"`
	Suites  []xmlSuite `xml:"TestSuite"`
	Cases   []xmlCase  `xml:"TestCase"`
}

type xmlCase struct {
	Name        string     `xml:"name,attr"`
	Skipped     string     `xml:"skipped,attr"`
	Reason      string     `xml:"reason,attr"`
	Errors      []xmlEntry `xml:"Error"`
	FatalErrors []xmlEntry `xml:"FatalError"`
	Exceptions  []xmlEntry `xml:"Exception"`
	TestingTime int64      `xml:"TestingTime"`
}

type xmlEntry struct {
	File    string `xml:"file,attr"`
	Line    int    `xml:"line,attr"`
	Message string `xml:",chardata"`
}

// Parse decodes an XML log. An empty log yields no results and no error.
func (p *BoostParser) Parse(binary string, log []byte) ([]domain.SuiteResult, []domain.TestFailure, error) {
	if len(bytes.TrimSpace(log)) == 0 {
		return nil, nil, nil
	}

	var doc xmlLog
	if err := xml.Unmarshal(log, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse test log of %s: %w", binary, err)
	}

	var suites []domain.SuiteResult
	var failures []domain.TestFailure
	for _, s := range doc.Suites {
		p.walkSuite(binary, "", false, s, &suites, &failures)
	}
	return suites, failures, nil
}

func (p *BoostParser) walkSuite(binary, parent string, parentSkipped bool, s xmlSuite, suites *[]domain.SuiteResult, failures *[]domain.TestFailure) {
	name := s.Name
	if parent != "" {
		name = parent + "/" + s.Name
	}
	skipped := parentSkipped || isYes(s.Skipped)

	if len(s.Cases) > 0 {
		result := domain.SuiteResult{Name: name}
		for _, c := range s.Cases {
			result.Cases = append(result.Cases, p.caseResult(binary, name, skipped, s.Reason, c, failures))
		}
		*suites = append(*suites, result)
	}

	for _, child := range s.Suites {
		p.walkSuite(binary, name, skipped, child, suites, failures)
	}
}

func (p *BoostParser) caseResult(binary, suite string, suiteSkipped bool, suiteReason string, c xmlCase, failures *[]domain.TestFailure) domain.CaseResult {
	result := domain.CaseResult{
		Name:       c.Name,
		Status:     domain.StatusPassed,
		TimeMicros: c.TestingTime,
	}

	if suiteSkipped || isYes(c.Skipped) {
		result.Status = domain.StatusSkipped
		result.Reason = c.Reason
		if result.Reason == "" {
			result.Reason = suiteReason
		}
		return result
	}

	add := func(level string, entries []xmlEntry) {
		for _, e := range entries {
			*failures = append(*failures, domain.TestFailure{
				Binary:   binary,
				Suite:    suite,
				TestName: c.Name,
				Level:    level,
				File:     e.File,
				Line:     e.Line,
				Message:  strings.TrimSpace(e.Message),
			})
			result.Status = domain.StatusFailed
		}
	}
	add(domain.LevelError, c.Errors)
	add(domain.LevelFatalError, c.FatalErrors)
	add(domain.LevelException, c.Exceptions)

	return result
}

func isYes(v string) bool {
	return v == "yes" || v == "true"
}

// ExtractLog copies r to w line by line, holding back the <TestLog> block,
// which is returned. Text sharing a line with the block's tags is split off
// and written to w.
func ExtractLog(r io.Reader, w io.Writer) ([]byte, error) {
	var log bytes.Buffer
	inLog := false

	scanner := bufio.NewScanner(r)
	// Boost writes the whole log on one line for small suites
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" && !inLog {
			fmt.Fprintln(w)
			continue
		}

		for line != "" {
			if !inLog {
				i := strings.Index(line, logStart)
				if i < 0 {
					fmt.Fprintln(w, line)
					break
				}
				if i > 0 {
					fmt.Fprintln(w, line[:i])
				}
				inLog = true
				line = line[i:]
			}

			j := strings.Index(line, logEnd)
			if j < 0 {
				log.WriteString(line)
				log.WriteByte('\n')
				break
			}
			end := j + len(logEnd)
			log.WriteString(line[:end])
			log.WriteByte('\n')
			inLog = false
			line = line[end:]
		}
	}
	if err := scanner.Err(); err != nil {
		return log.Bytes(), fmt.Errorf("read test output: %w", err)
	}
	return log.Bytes(), nil
}
