package patcher

import (
	"fmt"
	"strings"
)

const diffContext = 3

type diffOp struct {
	kind byte // ' ', '-', '+'
	text string
}

// GenerateDiff produces a unified diff between two versions of a file's
// content. It performs no mutation; identical inputs yield "".
func GenerateDiff(original, modified string) string {
	if original == modified {
		return ""
	}

	a := strings.Split(original, "\n")
	b := strings.Split(modified, "\n")
	ops := diffOps(a, b)

	var sb strings.Builder
	sb.WriteString("--- original\n")
	sb.WriteString("+++ modified\n")

	// Walk ops, grouping changed runs plus surrounding context into hunks.
	i := 0
	aLine, bLine := 1, 1
	for i < len(ops) {
		if ops[i].kind == ' ' {
			aLine++
			bLine++
			i++
			continue
		}

		// Back up for leading context.
		start := i
		ctx := 0
		for start > 0 && ops[start-1].kind == ' ' && ctx < diffContext {
			start--
			ctx++
		}

		// Extend through changes, allowing up to 2*context equal lines
		// between changed runs before closing the hunk.
		end := i
		for j := i; j < len(ops); {
			if ops[j].kind != ' ' {
				end = j + 1
				j++
				continue
			}
			run := 0
			for j+run < len(ops) && ops[j+run].kind == ' ' {
				run++
			}
			if j+run == len(ops) || run > 2*diffContext {
				break
			}
			j += run
		}
		tail := 0
		for end < len(ops) && ops[end].kind == ' ' && tail < diffContext {
			end++
			tail++
		}

		hunkAStart := aLine - ctx
		hunkBStart := bLine - ctx
		aCount, bCount := 0, 0
		var body strings.Builder
		for _, op := range ops[start:end] {
			body.WriteByte(op.kind)
			body.WriteString(op.text)
			body.WriteByte('\n')
			switch op.kind {
			case ' ':
				aCount++
				bCount++
			case '-':
				aCount++
			case '+':
				bCount++
			}
		}

		sb.WriteString(fmt.Sprintf("@@ -%d,%d +%d,%d @@\n", hunkAStart, aCount, hunkBStart, bCount))
		sb.WriteString(body.String())

		// Advance line counters over everything consumed.
		for _, op := range ops[i:end] {
			switch op.kind {
			case ' ':
				aLine++
				bLine++
			case '-':
				aLine++
			case '+':
				bLine++
			}
		}
		i = end
	}

	return sb.String()
}

// ApplyDiff replays a diff produced by GenerateDiff onto the original
// content and returns the modified content: the round-trip law
// ApplyDiff(original, GenerateDiff(original, modified)) == modified.
func ApplyDiff(original, diff string) (string, error) {
	if diff == "" {
		return original, nil
	}

	a := strings.Split(original, "\n")
	var out []string
	aPos := 0 // next unconsumed index into a

	lines := strings.Split(diff, "\n")
	i := 0
	for i < len(lines) {
		line := lines[i]
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
			i++
		case strings.HasPrefix(line, "@@"):
			var aStart, aCount, bStart, bCount int
			if _, err := fmt.Sscanf(line, "@@ -%d,%d +%d,%d @@", &aStart, &aCount, &bStart, &bCount); err != nil {
				return "", fmt.Errorf("malformed hunk header %q: %w", line, err)
			}
			if aStart-1 < aPos || aStart-1 > len(a) {
				return "", fmt.Errorf("hunk start %d out of sequence", aStart)
			}
			out = append(out, a[aPos:aStart-1]...)
			aPos = aStart - 1
			i++
			for i < len(lines) {
				body := lines[i]
				if len(body) == 0 || strings.HasPrefix(body, "@@") ||
					strings.HasPrefix(body, "---") || strings.HasPrefix(body, "+++") {
					break
				}
				text := body[1:]
				switch body[0] {
				case ' ':
					if aPos >= len(a) || a[aPos] != text {
						return "", fmt.Errorf("context mismatch at line %d", aPos+1)
					}
					out = append(out, text)
					aPos++
				case '-':
					if aPos >= len(a) || a[aPos] != text {
						return "", fmt.Errorf("deletion mismatch at line %d", aPos+1)
					}
					aPos++
				case '+':
					out = append(out, text)
				default:
					return "", fmt.Errorf("unexpected diff line %q", body)
				}
				i++
			}
		case line == "":
			i++
		default:
			return "", fmt.Errorf("unexpected diff content %q", line)
		}
	}

	out = append(out, a[aPos:]...)
	return strings.Join(out, "\n"), nil
}

// diffOps computes a line-level edit script via longest common
// subsequence. Very large inputs fall back to full rewrite.
func diffOps(a, b []string) []diffOp {
	if len(a)*len(b) > 4_000_000 {
		ops := make([]diffOp, 0, len(a)+len(b))
		for _, line := range a {
			ops = append(ops, diffOp{'-', line})
		}
		for _, line := range b {
			ops = append(ops, diffOp{'+', line})
		}
		return ops
	}

	// lcs[i][j] = length of LCS of a[i:], b[j:].
	lcs := make([][]int, len(a)+1)
	for i := range lcs {
		lcs[i] = make([]int, len(b)+1)
	}
	for i := len(a) - 1; i >= 0; i-- {
		for j := len(b) - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	var ops []diffOp
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			ops = append(ops, diffOp{' ', a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, diffOp{'-', a[i]})
			i++
		default:
			ops = append(ops, diffOp{'+', b[j]})
			j++
		}
	}
	for ; i < len(a); i++ {
		ops = append(ops, diffOp{'-', a[i]})
	}
	for ; j < len(b); j++ {
		ops = append(ops, diffOp{'+', b[j]})
	}
	return ops
}
