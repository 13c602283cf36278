package diff

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// DefaultContext is the number of unchanged lines shown around each change.
const DefaultContext = 3

// Op classifies a diff line.
type Op int

const (
	// Equal marks a line present in both texts.
	Equal Op = iota
	// Delete marks a line only present in the old text.
	Delete
	// Insert marks a line only present in the new text.
	Insert
)

// Line is one line of a line-level diff, without its newline.
type Line struct {
	Op   Op
	Text string
}

// Lines computes the line-level diff between oldText and newText.
func Lines(oldText, newText string) []Line {
	dmp := diffmatchpatch.New()

	oldChars, newChars, lineArray := dmp.DiffLinesToChars(oldText, newText)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(oldChars, newChars, false), lineArray)

	var lines []Line

	for _, d := range diffs {
		op := Equal

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			op = Delete
		case diffmatchpatch.DiffInsert:
			op = Insert
		case diffmatchpatch.DiffEqual:
		}

		for _, text := range strings.SplitAfter(d.Text, "\n") {
			if text == "" {
				continue
			}

			lines = append(lines, Line{Op: op, Text: strings.TrimSuffix(text, "\n")})
		}
	}

	return lines
}

// Unified renders the diff between oldText and newText in unified format with
// contextLines of context. It returns "" when the texts have the same lines.
func Unified(oldName, newName, oldText, newText string, contextLines int) string {
	lines := Lines(oldText, newText)

	hunks := hunkRanges(lines, max(0, contextLines))
	if len(hunks) == 0 {
		return ""
	}

	oldBefore := make([]int, len(lines)+1)
	newBefore := make([]int, len(lines)+1)

	for index, line := range lines {
		oldBefore[index+1] = oldBefore[index]
		newBefore[index+1] = newBefore[index]

		if line.Op != Insert {
			oldBefore[index+1]++
		}

		if line.Op != Delete {
			newBefore[index+1]++
		}
	}

	var out strings.Builder

	fmt.Fprintf(&out, "--- %s\n+++ %s\n", oldName, newName)

	for _, hunk := range hunks {
		start, end := hunk[0], hunk[1]

		fmt.Fprintf(&out, "@@ -%s +%s @@\n",
			hunkRange(oldBefore[start], oldBefore[end]-oldBefore[start]),
			hunkRange(newBefore[start], newBefore[end]-newBefore[start]),
		)

		for _, line := range lines[start:end] {
			out.WriteString(prefix(line.Op) + line.Text + "\n")
		}
	}

	return out.String()
}

// hunkRanges groups changed lines, with their context, into [start, end) ranges.
func hunkRanges(lines []Line, contextLines int) [][2]int {
	var hunks [][2]int

	for index, line := range lines {
		if line.Op == Equal {
			continue
		}

		start := max(0, index-contextLines)
		end := min(len(lines), index+contextLines+1)

		if last := len(hunks) - 1; last >= 0 && start <= hunks[last][1] {
			hunks[last][1] = max(hunks[last][1], end)

			continue
		}

		hunks = append(hunks, [2]int{start, end})
	}

	return hunks
}

// hunkRange formats the 1-based start and length of one side of a hunk.
func hunkRange(before, count int) string {
	switch count {
	case 0:
		return fmt.Sprintf("%d,0", before)
	case 1:
		return fmt.Sprintf("%d", before+1)
	default:
		return fmt.Sprintf("%d,%d", before+1, count)
	}
}

func prefix(op Op) string {
	switch op {
	case Delete:
		return "-"
	case Insert:
		return "+"
	case Equal:
		return " "
	}

	return " "
}
