// Package envfile reads dotenv-style files into environment entries.
package envfile

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/conn-castle/project-install/internal/messages"
)

// Entry is one KEY=VALUE assignment.
type Entry struct {
	Key   string
	Value string
}

// String renders the entry in the form used by os/exec.
func (e Entry) String() string {
	return e.Key + "=" + e.Value
}

// Parse reads dotenv content into entries in file order.
// Blank lines and # comments are ignored; an "export " prefix is accepted.
// A key assigned twice keeps its last value at the position of its first assignment.
func Parse(content string) ([]Entry, error) {
	var entries []Entry
	index := make(map[string]int)

	scanner := bufio.NewScanner(strings.NewReader(content))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		entry, ok, err := parseLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf(messages.EnvfileLineErrorFmt, lineNo, err)
		}
		if !ok {
			continue
		}
		if i, seen := index[entry.Key]; seen {
			entries[i].Value = entry.Value
			continue
		}
		index[entry.Key] = len(entries)
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf(messages.EnvfileReadFailedFmt, err)
	}
	return entries, nil
}

// Environ parses content and returns KEY=VALUE strings suitable for exec.Cmd.Env.
func Environ(content string) ([]string, error) {
	entries, err := Parse(content)
	if err != nil {
		return nil, err
	}
	env := make([]string, 0, len(entries))
	for _, entry := range entries {
		env = append(env, entry.String())
	}
	return env, nil
}

func parseLine(line string) (Entry, bool, error) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{}, false, nil
	}
	trimmed = strings.TrimSpace(strings.TrimPrefix(trimmed, "export "))

	key, raw, found := strings.Cut(trimmed, "=")
	key = strings.TrimSpace(key)
	if !found || key == "" || strings.ContainsAny(key, " \t") {
		return Entry{}, false, fmt.Errorf(messages.EnvfileExpectedKeyValue)
	}
	value, err := parseValue(strings.TrimSpace(raw))
	if err != nil {
		return Entry{}, false, err
	}
	return Entry{Key: key, Value: value}, true, nil
}

// parseValue decodes a raw value. Quoted values may be followed by a comment;
// unquoted values are taken literally.
func parseValue(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	quote := raw[0]
	if quote != '"' && quote != '\'' {
		return raw, nil
	}

	var b strings.Builder
	for i := 1; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c == quote:
			rest := strings.TrimSpace(raw[i+1:])
			if rest != "" && !strings.HasPrefix(rest, "#") {
				return "", fmt.Errorf(messages.EnvfileInvalidQuotedSuffix)
			}
			return b.String(), nil
		case quote == '"' && c == '\\' && i+1 < len(raw):
			i++
			switch raw[i] {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case '"', '\\':
				b.WriteByte(raw[i])
			default:
				b.WriteByte('\\')
				b.WriteByte(raw[i])
			}
		default:
			b.WriteByte(c)
		}
	}
	return "", fmt.Errorf(messages.EnvfileUnterminatedQuotedValue)
}
