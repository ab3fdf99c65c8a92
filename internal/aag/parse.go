package aag

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Parse reads an AAG file per §6: a header line, then I input-literal
// lines, L latch lines, O output lines, A AND-gate lines, zero or more
// symbol lines, then a comment block starting at the first line
// beginning "c" (or EOF if there is none).
func Parse(r io.Reader) (*Record, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("aag: read: %w", err)
	}

	headerIdx := -1
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			headerIdx = i
			break
		}
	}
	if headerIdx < 0 {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedHeader)
	}

	fields := strings.Fields(lines[headerIdx])
	if len(fields) < 6 || fields[0] != "aag" {
		return nil, fmt.Errorf("%w: %q", ErrMalformedHeader, lines[headerIdx])
	}

	nums := make([]int, 5)
	for i, f := range fields[1:6] {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("%w: field %q: %v", ErrMalformedHeader, f, err)
		}
		nums[i] = v
	}
	rec := &Record{M: nums[0], I: nums[1], L: nums[2], O: nums[3], A: nums[4]}

	idx := headerIdx + 1
	take := func(n int, name string) ([]string, error) {
		if idx+n > len(lines) {
			return nil, fmt.Errorf("%w: expected %d %s lines, found %d", ErrTruncatedBlock, n, name, len(lines)-idx)
		}
		out := lines[idx : idx+n]
		idx += n
		return out, nil
	}

	var err error
	if rec.InLits, err = take(rec.I, "input"); err != nil {
		return nil, err
	}
	if rec.Latches, err = take(rec.L, "latch"); err != nil {
		return nil, err
	}
	if rec.Outputs, err = take(rec.O, "output"); err != nil {
		return nil, err
	}
	if rec.AndGates, err = take(rec.A, "and-gate"); err != nil {
		return nil, err
	}

	for idx < len(lines) && !strings.HasPrefix(lines[idx], "c") {
		rec.Symbols = append(rec.Symbols, lines[idx])
		idx++
	}
	if idx < len(lines) {
		rec.Comments = append(rec.Comments, lines[idx:]...)
	}

	return rec, nil
}
