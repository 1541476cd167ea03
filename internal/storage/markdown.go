package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dpshade/prompt-vault/internal/models"
)

// SerializeMarkdown renders a record as YAML frontmatter followed by the
// prompt content, the interchange form used when a single record is saved
// as a standalone .md file.
func SerializeMarkdown(rec *models.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n")
	if rec.Content != "" {
		buf.WriteString("\n")
		buf.WriteString(rec.Content)
		if !strings.HasSuffix(rec.Content, "\n") {
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// ParseMarkdown parses the frontmatter+content form produced by
// SerializeMarkdown back into a record.
func ParseMarkdown(data []byte) (*models.Record, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))

	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	closed := false
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			closed = true
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}
	if !closed {
		return nil, fmt.Errorf("unterminated frontmatter")
	}

	var rec models.Record
	frontmatter := strings.Join(frontmatterLines, "\n")
	if err := yaml.Unmarshal([]byte(frontmatter), &rec); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}
	rec.Content = strings.TrimLeft(strings.Join(contentLines, "\n"), " \t\n")

	return &rec, nil
}
