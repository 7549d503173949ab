package docs

import (
	"bufio"
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/wts"
	"github.com/etnz/wts/census"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	extractBlock = "csv extract"
	mergedBlock  = "csv merged"
)

func TestTopics(t *testing.T) {
	// Every topic listed in readme.md can be loaded, and every .md file is listed.
	file, err := os.Open("readme.md")
	if err != nil {
		t.Fatalf("failed to open readme.md: %v", err)
	}
	defer file.Close()

	var topicsInReadme []string
	scanner := bufio.NewScanner(file)
	topicRegex := regexp.MustCompile(`^\*\s+([^:]+):.*$`)
	for scanner.Scan() {
		if matches := topicRegex.FindStringSubmatch(scanner.Text()); len(matches) > 1 {
			topicsInReadme = append(topicsInReadme, strings.TrimSpace(matches[1]))
		}
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("error scanning readme.md: %v", err)
	}

	for _, topic := range topicsInReadme {
		t.Run("load_"+topic, func(t *testing.T) {
			if _, err := GetTopic(topic); err != nil {
				t.Errorf("failed to get topic %q: %v", topic, err)
			}
		})
	}

	all, err := GetAllTopics()
	if err != nil {
		t.Fatalf("GetAllTopics() failed: %v", err)
	}
	for _, topic := range all {
		if !slices.Contains(topicsInReadme, topic) {
			t.Errorf("topic %q is not listed in docs/readme.md", topic)
		}
	}
	if slices.Contains(all, Index) {
		t.Errorf("GetAllTopics() = %q, must not contain the index", all)
	}
}

func TestGetTopics(t *testing.T) {
	all, err := GetTopics("*")
	if err != nil {
		t.Fatalf("GetTopics(*) failed: %v", err)
	}
	for _, title := range []string{"# Census Extracts", "# Merged Dataset", "# Configuration"} {
		if !strings.Contains(all, title) {
			t.Errorf("GetTopics(*) does not contain %q", title)
		}
	}
	if _, err := GetTopics("readme", "nope"); err == nil || !strings.Contains(err.Error(), `"nope"`) {
		t.Errorf("GetTopics(readme, nope) error = %v, want a topic not found error", err)
	}
}

// TestExamples checks that the csv examples of the documentation are read the way the text says.
func TestExamples(t *testing.T) {
	files, err := filepath.Glob("*.md")
	if err != nil {
		t.Fatal(err)
	}
	var extracts, merged int
	for _, file := range files {
		for _, block := range parseMarkdown(t, file) {
			switch block.Type {
			case extractBlock:
				extracts++
				checkExtract(t, block)
			case mergedBlock:
				merged++
				checkMerged(t, block)
			}
		}
	}
	if extracts == 0 || merged == 0 {
		t.Errorf("found %d extract and %d merged examples, want at least one of each", extracts, merged)
	}
}

func checkExtract(t *testing.T, b *Block) {
	t.Helper()
	series, stats, err := census.Load(strings.NewReader(b.Content), census.Source{Name: wts.DefaultSalesName})
	if err != nil {
		t.Fatalf("%s:%d: census.Load() failed: %v", b.File, b.Line, err)
	}
	if series.Len() != 3 || stats.Dropped() != 2 {
		t.Errorf("%s:%d: example keeps %d months and drops %d rows, the text says 3 and 2", b.File, b.Line, series.Len(), stats.Dropped())
	}
}

// checkMerged recomputes the metrics of the example from its levels.
func checkMerged(t *testing.T, b *Block) {
	t.Helper()
	cols, metrics, err := wts.DecodeMetrics(strings.NewReader(b.Content))
	if err != nil {
		t.Fatalf("%s:%d: DecodeMetrics() failed: %v", b.File, b.Line, err)
	}
	aligned := make([]wts.Aligned, len(metrics))
	for i, m := range metrics {
		aligned[i] = m.Aligned
	}
	computed, err := wts.ComputeMetrics(aligned)
	if err != nil {
		t.Fatalf("%s:%d: ComputeMetrics() failed: %v", b.File, b.Line, err)
	}
	var buf bytes.Buffer
	if err := wts.EncodeMetrics(&buf, cols, computed); err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(buf.String()), strings.TrimSpace(b.Content); got != want {
		t.Errorf("%s:%d: example is not consistent:\ngot:\n%s\nwant:\n%s", b.File, b.Line, got, want)
	}
}

// Block represents a fenced code block in the markdown file.
type Block struct {
	Type    string
	Content string
	File    string
	Line    int
}

// parseMarkdown parses a markdown file and returns its fenced code blocks.
func parseMarkdown(t *testing.T, file string) []*Block {
	t.Helper()

	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read %s: %v", file, err)
	}
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var blocks []*Block
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok || fcb.Info == nil {
			return ast.WalkContinue, nil
		}
		var blockContent strings.Builder
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			blockContent.WriteString(string(line.Value(content)))
		}
		blocks = append(blocks, &Block{
			Type:    string(fcb.Info.Segment.Value(content)),
			Content: blockContent.String(),
			File:    file,
			Line:    lineNumber(content, fcb.Info.Segment.Start),
		})
		return ast.WalkContinue, nil
	})
	return blocks
}

// lineNumber computes the line number of an offset, the markdown parser does not track lines.
func lineNumber(source []byte, offset int) int {
	return bytes.Count(source[:offset], []byte{'\n'}) + 1
}
