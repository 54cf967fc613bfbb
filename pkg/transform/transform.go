// Package transform rewrites file text at export time. Compression drops
// lines; line limits cut the text down to a window. Both work on lines split
// at "\n" and are pure functions of their inputs.
package transform

import (
	"fmt"
	"math"
	"strings"

	"github.com/arthur-debert/dirx/pkg/types"
)

// NoLinesPlaceholder replaces the whole text under the NoLines policy.
const NoLinesPlaceholder = "[content omitted by line limit]"

// CommentPrefixes mark a line as a comment once leading whitespace is
// trimmed. This is a per-line heuristic, not a parser.
var CommentPrefixes = []string{"//", "#", ";", "--", "'", "%"}

// Compress applies flags to text. Minify is accepted and has no effect.
func Compress(text string, flags types.CompressionFlags) string {
	if flags.IsZero() {
		return text
	}
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if flags.RemoveEmptyLines && trimmed == "" {
			continue
		}
		if flags.RemoveComments && isComment(trimmed) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func isComment(trimmed string) bool {
	for _, p := range CommentPrefixes {
		if strings.HasPrefix(trimmed, p) {
			return true
		}
	}
	return false
}

// LimitLines applies limit to text.
func LimitLines(text string, limit types.LineLimit) string {
	if limit.Mode == types.NoLines {
		return NoLinesPlaceholder
	}

	lines := strings.Split(text, "\n")
	total := len(lines)
	p := limit.Params

	var out []string
	switch limit.Mode {
	case types.HeadN:
		out = lines[:clamp(p.N, 0, total)]
	case types.TailN:
		out = lines[total-clamp(p.N, 0, total):]
	case types.HeadMTailN:
		m, n := max(p.M, 0), max(p.N, 0)
		if total <= m+n {
			return text
		}
		out = append(out, lines[:m]...)
		out = append(out, marker("%d lines omitted", total-m-n))
		out = append(out, lines[total-n:]...)
	case types.CustomRange:
		start, end := p.Start, p.End
		if start <= 0 {
			start = 1
		}
		if end <= 0 || end > total {
			end = total
		}
		if start > end {
			return ""
		}
		out = lines[start-1 : end]
	case types.RandomPercent:
		percent := math.Max(0, math.Min(100, p.Percent))
		target := int(math.Round(float64(total) * percent / 100))
		if target >= total {
			return text
		}
		out = append(out, lines[:target]...)
		out = append(out, marker("kept %g%%, %d/%d lines", percent, target, total))
	case types.RandomN:
		switch {
		case p.N <= 0:
			return ""
		case p.N >= total:
			return text
		}
		out = append(out, lines[:p.N]...)
		out = append(out, marker("kept %d/%d lines", p.N, total))
	default:
		return text
	}
	return strings.Join(out, "\n")
}

// marker is a synthetic line set off from the kept text by blank lines.
func marker(format string, args ...interface{}) string {
	return "\n... (" + fmt.Sprintf(format, args...) + ") ...\n"
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
