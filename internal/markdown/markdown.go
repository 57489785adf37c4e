// Package markdown reads and writes the board document format: optional
// YAML front matter, `## ` headings as columns, `- [ ]` list items as
// tasks, and indented continuation lines as task descriptions.
//
// Column titles carry the gather and sort directives as plain inline text;
// this package round-trips them untouched. Ids are assigned at parse time
// and live only as long as the in-memory board.
package markdown

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/mdkanban/kb/internal/board"
)

// Meta is the document front matter.
type Meta struct {
	Title    string            `yaml:"title,omitempty"`
	Settings map[string]string `yaml:"settings,omitempty"`
}

// Document pairs front matter with the parsed board.
type Document struct {
	Meta  Meta
	Board *board.Board
}

const frontMatterFence = "---"

// Parse reads a board document. Text before the first column heading
// (other than front matter) is ignored; unrecognized lines inside a column
// but outside a task are ignored too, which keeps hand-edited files from
// being hard errors.
func Parse(data []byte) (*Document, error) {
	doc := &Document{Board: &board.Board{Columns: []*board.Column{}}}

	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	i := 0

	if len(lines) > 0 && strings.TrimSpace(lines[0]) == frontMatterFence {
		end := -1
		for j := 1; j < len(lines); j++ {
			if strings.TrimSpace(lines[j]) == frontMatterFence {
				end = j
				break
			}
		}
		if end < 0 {
			return nil, fmt.Errorf("unterminated front matter")
		}
		raw := strings.Join(lines[1:end], "\n")
		if err := yaml.Unmarshal([]byte(raw), &doc.Meta); err != nil {
			return nil, fmt.Errorf("parsing front matter: %w", err)
		}
		i = end + 1
	}
	doc.Board.Title = doc.Meta.Title

	var col *board.Column
	var task *board.Task
	var desc []string

	flushTask := func() {
		if task != nil {
			task.Description = strings.Join(desc, "\n")
			task = nil
			desc = nil
		}
	}

	for ; i < len(lines); i++ {
		line := lines[i]

		if title, ok := strings.CutPrefix(line, "## "); ok {
			flushTask()
			col = &board.Column{ID: uuid.NewString(), Title: strings.TrimSpace(title)}
			doc.Board.Columns = append(doc.Board.Columns, col)
			continue
		}

		if col == nil {
			continue
		}

		if title, done, ok := cutTaskItem(line); ok {
			flushTask()
			task = &board.Task{ID: uuid.NewString(), Title: title, Done: done}
			col.Tasks = append(col.Tasks, task)
			continue
		}

		if task != nil && strings.HasPrefix(line, "  ") && strings.TrimSpace(line) != "" {
			desc = append(desc, strings.TrimSpace(line))
			continue
		}

		if strings.TrimSpace(line) == "" {
			flushTask()
		}
	}
	flushTask()

	return doc, nil
}

// cutTaskItem recognizes `- [ ] title` and `- [x] title` list items.
func cutTaskItem(line string) (title string, done bool, ok bool) {
	if rest, found := strings.CutPrefix(line, "- [ ] "); found {
		return strings.TrimSpace(rest), false, true
	}
	if rest, found := strings.CutPrefix(line, "- [x] "); found {
		return strings.TrimSpace(rest), true, true
	}
	if rest, found := strings.CutPrefix(line, "- [X] "); found {
		return strings.TrimSpace(rest), true, true
	}
	return "", false, false
}

// Marshal serializes the document back to markdown. Output is normalized:
// one blank line between sections, descriptions indented two spaces.
func (d *Document) Marshal() ([]byte, error) {
	var sb strings.Builder

	if d.Meta.Title != "" || len(d.Meta.Settings) > 0 {
		fm, err := yaml.Marshal(d.Meta)
		if err != nil {
			return nil, fmt.Errorf("marshaling front matter: %w", err)
		}
		sb.WriteString(frontMatterFence + "\n")
		sb.Write(fm)
		sb.WriteString(frontMatterFence + "\n\n")
	}

	for ci, col := range d.Board.Columns {
		if ci > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("## " + col.Title + "\n")
		if len(col.Tasks) > 0 {
			sb.WriteString("\n")
		}
		for _, task := range col.Tasks {
			box := "[ ]"
			if task.Done {
				box = "[x]"
			}
			sb.WriteString("- " + box + " " + task.Title + "\n")
			if task.Description != "" {
				for _, line := range strings.Split(task.Description, "\n") {
					sb.WriteString("  " + line + "\n")
				}
			}
		}
	}

	return []byte(sb.String()), nil
}
