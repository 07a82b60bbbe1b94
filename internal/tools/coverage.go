package tools

import (
	"encoding/csv"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// CoverageTool reads the coverage artifact produced by a prior test run.
type CoverageTool struct {
	guard *PathGuard
	// ReportPath is the artifact location relative to a project dir,
	// conventionally target/site/jacoco/jacoco.xml.
	ReportPath string
}

// NewCoverageTool builds a coverage reader rooted at the project guard.
func NewCoverageTool(guard *PathGuard, reportPath string) *CoverageTool {
	if reportPath == "" {
		reportPath = "target/site/jacoco/jacoco.xml"
	}
	return &CoverageTool{guard: guard, ReportPath: reportPath}
}

// Summary is the extracted line/branch coverage of a report.
type Summary struct {
	Report          string  `json:"report"`
	LinePct         float64 `json:"line_pct"`
	BranchPct       float64 `json:"branch_pct"`
	LinesCovered    int     `json:"lines_covered"`
	LinesMissed     int     `json:"lines_missed"`
	BranchesCovered int     `json:"branches_covered"`
	BranchesMissed  int     `json:"branches_missed"`
}

// String renders the summary as a single log-friendly line.
func (s Summary) String() string {
	return fmt.Sprintf("line: %.1f%% (%d/%d), branch: %.1f%% (%d/%d)",
		s.LinePct, s.LinesCovered, s.LinesCovered+s.LinesMissed,
		s.BranchPct, s.BranchesCovered, s.BranchesCovered+s.BranchesMissed)
}

// Summarize reads the coverage artifact under dir. It fails with a not-found
// error when no report exists yet, i.e. tests have not been run.
func (c *CoverageTool) Summarize(dir string) (Summary, error) {
	projDir, err := c.guard.ResolveDir(dir)
	if err != nil {
		return Summary{}, err
	}

	path := filepath.Join(projDir, filepath.FromSlash(c.ReportPath))

	// the configured path's extension picks the parser; a csv report may be
	// configured directly instead of relying on the fallback
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		if _, err := os.Stat(path); err == nil {
			return c.summarizeCSV(path)
		}
	} else {
		if _, err := os.Stat(path); err == nil {
			return c.summarizeXML(path)
		}
		csvPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".csv"
		if _, err := os.Stat(csvPath); err == nil {
			return c.summarizeCSV(csvPath)
		}
	}

	return Summary{}, NotFound("coverage_summary",
		"no coverage report at %s; run mvn_test first", c.ReportPath)
}

type jacocoReport struct {
	XMLName  xml.Name        `xml:"report"`
	Counters []jacocoCounter `xml:"counter"`
}

type jacocoCounter struct {
	Type    string `xml:"type,attr"`
	Missed  int    `xml:"missed,attr"`
	Covered int    `xml:"covered,attr"`
}

func (c *CoverageTool) summarizeXML(path string) (Summary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Summary{}, err
	}

	var report jacocoReport
	if err := xml.Unmarshal(data, &report); err != nil {
		return Summary{}, fmt.Errorf("parse coverage report %s: %w", path, err)
	}

	s := Summary{Report: path}
	for _, counter := range report.Counters {
		switch counter.Type {
		case "LINE":
			s.LinesCovered = counter.Covered
			s.LinesMissed = counter.Missed
		case "BRANCH":
			s.BranchesCovered = counter.Covered
			s.BranchesMissed = counter.Missed
		}
	}
	s.LinePct = percentage(s.LinesCovered, s.LinesMissed)
	s.BranchPct = percentage(s.BranchesCovered, s.BranchesMissed)
	return s, nil
}

// csv column layout written by the jacoco maven plugin
const (
	csvColBranchMissed  = 5
	csvColBranchCovered = 6
	csvColLineMissed    = 7
	csvColLineCovered   = 8
)

func (c *CoverageTool) summarizeCSV(path string) (Summary, error) {
	f, err := os.Open(path)
	if err != nil {
		return Summary{}, err
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return Summary{}, fmt.Errorf("parse coverage report %s: %w", path, err)
	}

	s := Summary{Report: path}
	for i, row := range rows {
		if i == 0 || len(row) <= csvColLineCovered {
			continue // header or short row
		}
		s.BranchesMissed += atoi(row[csvColBranchMissed])
		s.BranchesCovered += atoi(row[csvColBranchCovered])
		s.LinesMissed += atoi(row[csvColLineMissed])
		s.LinesCovered += atoi(row[csvColLineCovered])
	}
	s.LinePct = percentage(s.LinesCovered, s.LinesMissed)
	s.BranchPct = percentage(s.BranchesCovered, s.BranchesMissed)
	return s, nil
}

func percentage(covered, missed int) float64 {
	total := covered + missed
	if total == 0 {
		return 0
	}
	return float64(covered) / float64(total) * 100
}

func atoi(s string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(s))
	return n
}
