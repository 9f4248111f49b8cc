package repodoc

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

// SummaryMaxLen is the maximum length of a summary in runes, including the
// truncation marker.
const SummaryMaxLen = 200

// summaryEllipsis marks a truncated summary.
const summaryEllipsis = "..."

// Metadata is the title and summary derived from a text document.
type Metadata struct {
	Title   string
	Summary string
}

var (
	atxHeadingRe  = regexp.MustCompile(`^(#{1,6})[ \t]+(.+)$`)
	atxClosingRe  = regexp.MustCompile(`[ \t]+#+$`)
	adocHeadingRe = regexp.MustCompile(`^(={1,6})[ \t]+(.+)$`)
	fenceRe       = regexp.MustCompile("^(`{3,}|~{3,})")
)

type blockKind int

const (
	blockHeading blockKind = iota
	blockParagraph
)

type block struct {
	kind  blockKind
	level int
	text  string
}

type frontMatter struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// ParseMarkdown derives a title and a summary from Markdown, reStructuredText,
// AsciiDoc or plain text. The title is the first level-one heading, falling
// back to a front matter title. The summary is the first paragraph after the
// title, falling back to a front matter description, and is cut to
// SummaryMaxLen runes. Either field is empty when nothing qualifies.
func ParseMarkdown(content string) Metadata {
	lines := splitLines(content)
	fm, lines := splitFrontMatter(lines)
	blocks := parseBlocks(lines)

	var meta Metadata
	start := 0
	for i, b := range blocks {
		if b.kind == blockHeading && b.level == 1 {
			meta.Title = b.text
			start = i + 1
			break
		}
	}
	for _, b := range blocks[start:] {
		if b.kind == blockParagraph {
			meta.Summary = b.text
			break
		}
	}

	if meta.Title == "" {
		meta.Title = strings.TrimSpace(fm.Title)
	}
	if meta.Summary == "" {
		meta.Summary = strings.Join(strings.Fields(fm.Description), " ")
	}
	meta.Summary = TruncateSummary(meta.Summary)
	return meta
}

// TruncateSummary cuts s to SummaryMaxLen runes, replacing the tail with an
// ellipsis when it is cut.
func TruncateSummary(s string) string {
	if utf8.RuneCountInString(s) <= SummaryMaxLen {
		return s
	}
	runes := []rune(s)
	cut := strings.TrimRight(string(runes[:SummaryMaxLen-len(summaryEllipsis)]), " ")
	return cut + summaryEllipsis
}

// splitFrontMatter removes a leading YAML front matter block. A block that
// does not parse is still removed.
func splitFrontMatter(lines []string) (frontMatter, []string) {
	var fm frontMatter
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return fm, lines
	}
	for i := 1; i < len(lines); i++ {
		switch strings.TrimSpace(lines[i]) {
		case "---", "...":
			_ = yaml.Unmarshal([]byte(strings.Join(lines[1:i], "\n")), &fm)
			return fm, lines[i+1:]
		}
	}
	return fm, lines
}

func parseBlocks(lines []string) []block {
	var (
		blocks []block
		para   []string
		fence  string
	)

	flush := func() {
		if len(para) > 0 {
			blocks = append(blocks, block{kind: blockParagraph, text: joinWords(para)})
			para = nil
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if fence != "" {
			if strings.HasPrefix(trimmed, fence) {
				fence = ""
			}
			continue
		}
		if m := fenceRe.FindString(trimmed); m != "" {
			flush()
			fence = m
			continue
		}

		if trimmed == "" {
			flush()
			continue
		}
		if isIndented(line) && len(para) == 0 {
			continue
		}
		if strings.HasPrefix(trimmed, "<!--") && strings.HasSuffix(trimmed, "-->") {
			continue
		}

		if level, text, ok := parseHeading(trimmed); ok {
			flush()
			blocks = append(blocks, block{kind: blockHeading, level: level, text: text})
			continue
		}

		if underline, ok := underlineLevel(trimmed); ok {
			if len(para) > 0 {
				blocks = append(blocks, block{kind: blockHeading, level: underline, text: joinWords(para)})
				para = nil
			}
			continue
		}

		para = append(para, trimmed)
	}
	flush()
	return blocks
}

func parseHeading(line string) (int, string, bool) {
	if m := atxHeadingRe.FindStringSubmatch(line); m != nil {
		text := strings.TrimSpace(atxClosingRe.ReplaceAllString(m[2], ""))
		if text == "" {
			return 0, "", false
		}
		return len(m[1]), text, true
	}
	if m := adocHeadingRe.FindStringSubmatch(line); m != nil {
		return len(m[1]), strings.TrimSpace(m[2]), true
	}
	return 0, "", false
}

// underlineLevel recognizes setext and reStructuredText underlines: a run of
// at least three identical punctuation characters. '=' marks level one.
func underlineLevel(line string) (int, bool) {
	if len(line) < 3 || !strings.ContainsRune("=-~^*+#", rune(line[0])) {
		return 0, false
	}
	if strings.Trim(line, line[:1]) != "" {
		return 0, false
	}
	if line[0] == '=' {
		return 1, true
	}
	return 2, true
}

func splitLines(content string) []string {
	content = strings.TrimPrefix(content, "\ufeff")
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

func isIndented(line string) bool {
	return strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "\t")
}

func joinWords(lines []string) string {
	return strings.Join(strings.Fields(strings.Join(lines, " ")), " ")
}
