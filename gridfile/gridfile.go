// Package gridfile loads grid definitions from JSON or TOML files.
//
// Both formats carry the same fields:
//
//	{"dimension": 10, "start": {"x": 0, "y": 0}, "end": {"x": 3, "y": 2},
//	 "obstacles": [{"x": 2, "y": 3}]}
//
// Missing dimension, start or end is reported as ErrMalformed. Obstacles may be
// omitted.
package gridfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	astar "github.com/pdrpinto/gridastar"
)

const maxFileSize = 1 << 20 // 1 MB

// Format identifies a grid file encoding.
type Format string

// Supported formats, named after their file extensions.
const (
	JSON Format = "json"
	TOML Format = "toml"
)

var (
	// ErrMalformed wraps every decoding and missing-field error.
	ErrMalformed = errors.New("malformed grid")

	// ErrUnknownFormat is returned for file extensions other than .json and .toml.
	ErrUnknownFormat = errors.New("unknown grid format")
)

type position struct {
	X *int `json:"x" toml:"x"`
	Y *int `json:"y" toml:"y"`
}

type document struct {
	Dimension *int       `json:"dimension" toml:"dimension"`
	Start     *position  `json:"start" toml:"start"`
	End       *position  `json:"end" toml:"end"`
	Obstacles []position `json:"obstacles" toml:"obstacles"`
}

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".toml":
		return TOML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads and decodes the grid file at path.
func Load(path string) (astar.Grid, error) {
	format, err := FormatOf(path)
	if err != nil {
		return astar.Grid{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return astar.Grid{}, fmt.Errorf("gridfile: open: %w", err)
	}
	defer f.Close()

	grid, err := Decode(f, format)
	if err != nil {
		return astar.Grid{}, fmt.Errorf("gridfile: %s: %w", path, err)
	}
	return grid, nil
}

// Decode reads one grid document in the given format from r.
func Decode(r io.Reader, format Format) (astar.Grid, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize+1))
	if err != nil {
		return astar.Grid{}, fmt.Errorf("read: %w", err)
	}
	if len(data) > maxFileSize {
		return astar.Grid{}, fmt.Errorf("%w: larger than %d bytes", ErrMalformed, maxFileSize)
	}

	var doc document
	switch format {
	case JSON:
		err = decodeJSON(data, &doc)
	case TOML:
		err = decodeTOML(data, &doc)
	default:
		return astar.Grid{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return astar.Grid{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return doc.grid()
}

func decodeJSON(data []byte, doc *document) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(doc); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	// json.Decoder stops after the first value; anything after it is rejected.
	var trailing struct{}
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return errors.New("decode: file must contain a single JSON value")
		}
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func decodeTOML(data []byte, doc *document) error {
	md, err := toml.Decode(string(data), doc)
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("decode: unknown key %q", undecoded[0].String())
	}
	return nil
}

func (d document) grid() (astar.Grid, error) {
	if d.Dimension == nil {
		return astar.Grid{}, fmt.Errorf("%w: missing dimension", ErrMalformed)
	}
	start, err := d.Start.resolve("start")
	if err != nil {
		return astar.Grid{}, err
	}
	end, err := d.End.resolve("end")
	if err != nil {
		return astar.Grid{}, err
	}

	obstacles := make([]astar.Position, 0, len(d.Obstacles))
	for i, o := range d.Obstacles {
		p, err := o.resolve(fmt.Sprintf("obstacles[%d]", i))
		if err != nil {
			return astar.Grid{}, err
		}
		obstacles = append(obstacles, p)
	}

	return astar.NewGrid(*d.Dimension, start, end, obstacles...), nil
}

func (p *position) resolve(field string) (astar.Position, error) {
	if p == nil {
		return astar.Position{}, fmt.Errorf("%w: missing %s", ErrMalformed, field)
	}
	if p.X == nil || p.Y == nil {
		return astar.Position{}, fmt.Errorf("%w: %s needs both x and y", ErrMalformed, field)
	}
	return astar.Position{X: *p.X, Y: *p.Y}, nil
}
