package layoutio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"dungeonforge/pkg/engine/world"
	"dungeonforge/pkg/game/generator"
)

// Document is the YAML form of a generated layout.
type Document struct {
	Seed        int64           `yaml:"seed"`
	Size        int             `yaml:"size"`
	PlayerSpawn world.Coord     `yaml:"player_spawn"`
	Rooms       []world.Rect    `yaml:"rooms"`
	Corridors   []world.Rect    `yaml:"corridors,omitempty"`
	Doors       []world.Coord   `yaml:"doors,omitempty"`
	RepairDoors []world.Coord   `yaml:"repair_doors,omitempty"`
	Enemies     []world.Coord   `yaml:"enemies,omitempty"`
	Stats       generator.Stats `yaml:"stats"`
	Rows        []string        `yaml:"rows"`
}

// FromLayout builds a document from a generated layout
func FromLayout(l *generator.Layout) (*Document, error) {
	rows, err := EncodeRows(l.Grid)
	if err != nil {
		return nil, fmt.Errorf("encode rows: %w", err)
	}
	return &Document{
		Seed:        l.Seed,
		Size:        l.Grid.Size(),
		PlayerSpawn: l.PlayerSpawn,
		Rooms:       l.Rooms,
		Corridors:   l.Corridors,
		Doors:       l.Doors,
		RepairDoors: l.RepairDoors,
		Enemies:     l.Enemies,
		Stats:       l.Stats,
		Rows:        rows,
	}, nil
}

// Grid rebuilds the cell matrix and checks it against the recorded size and
// player spawn.
func (d *Document) Grid() (*world.Grid, error) {
	grid, err := DecodeRows(d.Rows)
	if err != nil {
		return nil, err
	}
	if grid.Size() != d.Size {
		return nil, fmt.Errorf("%w: size %d but %d rows", ErrMalformed, d.Size, grid.Size())
	}
	if spawn, ok := grid.PlayerSpawn(); !ok || spawn != d.PlayerSpawn {
		return nil, fmt.Errorf("%w: player spawn %v does not match the rows", ErrMalformed, d.PlayerSpawn)
	}
	return grid, nil
}

// MarshalDocument encodes a layout as a YAML document.
func MarshalDocument(l *generator.Layout) ([]byte, error) {
	doc, err := FromLayout(l)
	if err != nil {
		return nil, err
	}
	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return data, nil
}

// UnmarshalDocument decodes a YAML layout document.
func UnmarshalDocument(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(doc.Rows) == 0 {
		return nil, fmt.Errorf("%w: document has no rows", ErrMalformed)
	}
	return &doc, nil
}
