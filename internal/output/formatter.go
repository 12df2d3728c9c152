package output

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Formatter renders a report into a document
type Formatter interface {
	Name() string
	Format(report *Report) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface
type FormatterFunc struct {
	ID string
	F  func(report *Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{
	"console":  ConsoleFormatter{},
	"json":     JSONFormatter{Pretty: true},
	"yaml":     YAMLFormatter{},
	"csv":      CSVFormatter{},
	"markdown": MarkdownFormatter{},
	"html":     HTMLFormatter{},
}

var formatAliases = map[string]string{
	"text": "console",
	"md":   "markdown",
	"yml":  "yaml",
}

var extensions = map[string]string{
	"console":  "txt",
	"json":     "json",
	"yaml":     "yaml",
	"csv":      "csv",
	"markdown": "md",
	"html":     "html",
}

// GetFormatterByName returns the formatter registered under name or alias, or nil
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if canonical, ok := formatAliases[name]; ok {
		name = canonical
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names, sorted
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists accepted aliases, sorted
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// ExtensionFor returns the file extension for a formatter
func ExtensionFor(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return "txt"
}

// ReportFilename returns the artifact name for a report: timestamp plus the
// first block of the report ID
func ReportFilename(report *Report, ext string) string {
	stem := "health_cost_prediction_" + report.GeneratedAt.Format("20060102_150405")
	if id, _, _ := strings.Cut(report.ID, "-"); id != "" {
		stem += "_" + id
	}
	return stem + "." + ext
}

// maxFilenameAttempts bounds the numbered suffixes tried when a name is taken
const maxFilenameAttempts = 100

// WriteFormatted renders report with f and writes it into dir, returning the file path.
// An existing file is never overwritten; a numbered suffix is added instead.
func WriteFormatted(f Formatter, report *Report, dir, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("failed to format report as %s: %w", f.Name(), err)
	}
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create reports directory %s: %w", dir, err)
	}

	name := ReportFilename(report, ext)
	stem := strings.TrimSuffix(name, "."+ext)
	for attempt := 1; attempt <= maxFilenameAttempts; attempt++ {
		if attempt > 1 {
			name = fmt.Sprintf("%s_%d.%s", stem, attempt, ext)
		}
		path := filepath.Join(dir, name)
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, fs.ErrExist) {
			continue
		}
		if err != nil {
			return "", fmt.Errorf("failed to create report %s: %w", path, err)
		}
		if _, err := file.Write(data); err != nil {
			file.Close()
			return "", fmt.Errorf("failed to write report %s: %w", path, err)
		}
		if err := file.Close(); err != nil {
			return "", fmt.Errorf("failed to write report %s: %w", path, err)
		}
		return path, nil
	}
	return "", fmt.Errorf("failed to find a free report name for %s in %s", stem, dir)
}
