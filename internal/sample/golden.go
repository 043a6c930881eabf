package sample

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"
)

// Case is the YAML front matter of a golden file: the text, the synthetic
// charset and the render settings that produce the dump in its text block.
type Case struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description,omitempty"`
	Text        []string       `yaml:"text"`
	Charset     Spec           `yaml:"charset"`
	Tile        []int          `yaml:"tile,omitempty"`       // [w, h]; detected when empty
	Resolution  []int          `yaml:"resolution,omitempty"` // [w, h]; measured when empty
	Frame       bool           `yaml:"frame,omitempty"`
	LineSpacing int            `yaml:"line_spacing,omitempty"`
	Scale       int            `yaml:"scale,omitempty"`
	Mapping     string         `yaml:"mapping,omitempty"`
	Widths      map[string]int `yaml:"widths,omitempty"`
	SkipUnknown bool           `yaml:"skip_unknown,omitempty"`
	Strategy    string         `yaml:"strategy,omitempty"`
	Warnings    int            `yaml:"warnings"`
	Generator   string         `yaml:"generator,omitempty"`
}

// ParseGolden reads a golden file: YAML front matter between "---" lines,
// followed by markdown with a ```text block holding the expected dump.
func ParseGolden(r io.Reader) (*Case, string, error) {
	scanner := bufio.NewScanner(r)

	var front []string
	inFrontMatter := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			if inFrontMatter {
				break
			}
			inFrontMatter = true
			continue
		}
		if inFrontMatter {
			front = append(front, line)
		}
	}

	c := &Case{}
	if err := yaml.Unmarshal([]byte(strings.Join(front, "\n")), c); err != nil {
		return nil, "", fmt.Errorf("failed to parse front matter: %w", err)
	}

	var art []string
	inCodeBlock := false
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "```text") {
			inCodeBlock = true
			continue
		}
		if strings.HasPrefix(line, "```") && inCodeBlock {
			break
		}
		if inCodeBlock {
			art = append(art, strings.TrimRight(line, "\r"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, "", fmt.Errorf("error reading golden file: %w", err)
	}

	return c, strings.Join(art, "\n"), nil
}

// FormatGolden writes c and art in the layout ParseGolden reads.
func FormatGolden(c *Case, art string) ([]byte, error) {
	front, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(front)
	buf.WriteString("---\n\n")
	if c.Description != "" {
		buf.WriteString(c.Description)
		buf.WriteString("\n\n")
	}
	buf.WriteString("```text\n")
	buf.WriteString(art)
	buf.WriteString("\n```\n")
	return buf.Bytes(), nil
}
