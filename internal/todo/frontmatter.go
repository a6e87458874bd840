package todo

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// frontMatterDelimiter opens and closes the optional metadata block at the
// top of a todo file.
const frontMatterDelimiter = "---"

// ParseFrontMatter extracts the leading delimited metadata block from a todo
// file and returns it as an open string-keyed map. Unknown keys are carried
// through untouched; the consuming layer decides which ones matter.
//
// The parser is deliberately tolerant: a missing block, an unterminated
// block, or a block yaml refuses to parse all yield a usable (possibly
// empty) map rather than an error. Files are written by external tools and
// a single malformed one must never hide a real task from the board.
func ParseFrontMatter(content []byte) map[string]any {
	block, ok := frontMatterBlock(string(content))
	if !ok {
		return map[string]any{}
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &meta); err == nil && meta != nil {
		return meta
	}

	// yaml rejected the block outright. Salvage plain "key: value" scalars
	// line by line so partially broken metadata still surfaces a title.
	return salvageScalars(block)
}

// frontMatterBlock returns the text between the opening delimiter on the
// first line and the next delimiter line.
func frontMatterBlock(content string) (string, bool) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return "", false
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			return strings.Join(lines[1:i], "\n"), true
		}
	}

	return "", false
}

func salvageScalars(block string) map[string]any {
	meta := map[string]any{}
	for _, line := range strings.Split(block, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found || strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t") {
			continue
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if key == "" || value == "" {
			continue
		}
		meta[key] = value
	}
	return meta
}

// Body returns the content of a todo file with any front matter block
// stripped, for rendering the task description on its own.
func Body(content []byte) string {
	text := string(content)
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontMatterDelimiter {
		return text
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == frontMatterDelimiter {
			return strings.TrimPrefix(strings.Join(lines[i+1:], "\n"), "\n")
		}
	}

	return text
}

func metaString(meta map[string]any, key string) string {
	value, ok := meta[key]
	if !ok || value == nil {
		return ""
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		// yaml resolves bare ISO dates to timestamps; the board only ever
		// displays them.
		return v.Format("2006-01-02")
	case []any, map[string]any:
		// A list or mapping where a scalar was expected is ignored rather
		// than stringified into noise.
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", v))
	}
}

func metaStrings(meta map[string]any, key string) []string {
	value, ok := meta[key]
	if !ok || value == nil {
		return nil
	}

	list, ok := value.([]any)
	if !ok {
		return nil
	}

	out := make([]string, 0, len(list))
	for _, item := range list {
		if s, ok := item.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
