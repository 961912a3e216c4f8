package config

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Run is the per-batch operating context read from the two-line config
// input: the month being processed and the request/output language codes.
type Run struct {
	Year         int
	Month        time.Month
	InputLocale  string
	OutputLocale string
}

// ParseRun reads the two-line run configuration:
//
//	<year> <month>
//	<inputLanguageCode> <outputLanguageCode>
//
// A missing language line falls back to defaultLocale for both codes; a
// single code serves as both input and output locale. Unlike request lines,
// any other malformed run config aborts the batch: without a month and locale
// there is nothing meaningful to process.
func ParseRun(r io.Reader, defaultLocale string) (Run, error) {
	scanner := bufio.NewScanner(r)

	monthLine, err := nextLine(scanner)
	if err != nil {
		return Run{}, fmt.Errorf("config: missing year/month line: %w", err)
	}
	fields := strings.Fields(monthLine)
	if len(fields) != 2 {
		return Run{}, fmt.Errorf("config: year/month line must have 2 fields, got %d", len(fields))
	}
	year, err := strconv.Atoi(fields[0])
	if err != nil || year < 1 {
		return Run{}, fmt.Errorf("config: invalid year %q", fields[0])
	}
	month, err := strconv.Atoi(fields[1])
	if err != nil || month < 1 || month > 12 {
		return Run{}, fmt.Errorf("config: invalid month %q", fields[1])
	}

	run := Run{Year: year, Month: time.Month(month)}

	localeLine, err := nextLine(scanner)
	switch {
	case err != nil && defaultLocale != "":
		run.InputLocale = strings.ToUpper(defaultLocale)
		run.OutputLocale = run.InputLocale
	case err != nil:
		return Run{}, fmt.Errorf("config: missing language line: %w", err)
	default:
		fields = strings.Fields(localeLine)
		switch len(fields) {
		case 1:
			run.InputLocale = strings.ToUpper(fields[0])
			run.OutputLocale = run.InputLocale
		case 2:
			run.InputLocale = strings.ToUpper(fields[0])
			run.OutputLocale = strings.ToUpper(fields[1])
		default:
			return Run{}, fmt.Errorf("config: language line must have 1 or 2 fields, got %d", len(fields))
		}
	}

	return run, nil
}

func nextLine(scanner *bufio.Scanner) (string, error) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			return line, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", io.ErrUnexpectedEOF
}
