// Package layoutio encodes finished layouts as run-length rows and YAML
// documents.
package layoutio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dungeonforge/pkg/engine/world"
)

// ErrMalformed is wrapped by every decoding failure.
var ErrMalformed = errors.New("malformed layout")

var kindGlyphs = map[world.CellKind]byte{
	world.Floor:       '.',
	world.Wall:        '#',
	world.Door:        '+',
	world.PlayerSpawn: '@',
	world.EnemySpawn:  'e',
}

var glyphKinds = func() map[byte]world.CellKind {
	m := make(map[byte]world.CellKind, len(kindGlyphs))
	for k, g := range kindGlyphs {
		m[g] = k
	}
	return m
}()

// GlyphOf returns the single-character glyph of a finished cell kind.
func GlyphOf(kind world.CellKind) (byte, bool) {
	g, ok := kindGlyphs[kind]
	return g, ok
}

// EncodeRows run-length encodes every grid row. Transient markers are
// rejected since they never belong in a finished layout.
func EncodeRows(grid *world.Grid) ([]string, error) {
	size := grid.Size()
	rows := make([]string, 0, size)
	for y := 0; y < size; y++ {
		var sb strings.Builder
		run := 0
		var cur byte
		for x := 0; x < size; x++ {
			kind := grid.Get(x, y)
			g, ok := kindGlyphs[kind]
			if !ok {
				return nil, fmt.Errorf("cell (%d,%d) holds %v, which has no glyph", x, y, kind)
			}
			if run > 0 && g != cur {
				writeRun(&sb, run, cur)
				run = 0
			}
			cur = g
			run++
		}
		writeRun(&sb, run, cur)
		rows = append(rows, sb.String())
	}
	return rows, nil
}

func writeRun(sb *strings.Builder, n int, g byte) {
	sb.WriteString(strconv.Itoa(n))
	sb.WriteByte(g)
}

// DecodeRows rebuilds a grid from run-length rows. Every row must expand to
// exactly len(rows) cells.
func DecodeRows(rows []string) (*world.Grid, error) {
	size := len(rows)
	if size < world.MinGridSize || size > world.MaxGridSize {
		return nil, fmt.Errorf("%w: %d rows", ErrMalformed, size)
	}
	grid := world.NewGrid(size)
	spawns := 0
	for y, row := range rows {
		x := 0
		for i := 0; i < len(row); {
			j := i
			for j < len(row) && row[j] >= '0' && row[j] <= '9' {
				j++
			}
			if j == i || j == len(row) {
				return nil, fmt.Errorf("%w: row %d: bad run at offset %d", ErrMalformed, y, i)
			}
			n, err := strconv.Atoi(row[i:j])
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("%w: row %d: bad run length %q", ErrMalformed, y, row[i:j])
			}
			kind, ok := glyphKinds[row[j]]
			if !ok {
				return nil, fmt.Errorf("%w: row %d: unknown glyph %q", ErrMalformed, y, row[j])
			}
			if kind == world.PlayerSpawn {
				spawns += n
			}
			if x+n > size {
				return nil, fmt.Errorf("%w: row %d is longer than %d cells", ErrMalformed, y, size)
			}
			for k := 0; k < n; k++ {
				grid.Set(x, y, kind)
				x++
			}
			i = j + 1
		}
		if x != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrMalformed, y, x, size)
		}
	}
	if spawns > 1 {
		return nil, fmt.Errorf("%w: more than one player spawn", ErrMalformed)
	}
	return grid, nil
}

// EncodeRLE writes a "size N" header followed by one encoded row per line.
func EncodeRLE(grid *world.Grid) ([]byte, error) {
	rows, err := EncodeRows(grid)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "size %d\n", grid.Size())
	for _, row := range rows {
		buf.WriteString(row)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// DecodeRLE parses the output of EncodeRLE.
func DecodeRLE(data []byte) (*world.Grid, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 4096), 1<<20)
	if !sc.Scan() {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	var size int
	if _, err := fmt.Sscanf(sc.Text(), "size %d", &size); err != nil {
		return nil, fmt.Errorf("%w: bad header %q", ErrMalformed, sc.Text())
	}
	var rows []string
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			rows = append(rows, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) != size {
		return nil, fmt.Errorf("%w: header says %d rows, found %d", ErrMalformed, size, len(rows))
	}
	return DecodeRows(rows)
}
