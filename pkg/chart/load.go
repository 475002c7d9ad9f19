package chart

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/stackchart/pkg/errors"
)

// Encoding is a chart file encoding.
type Encoding string

const (
	EncodingJSON Encoding = "json"
	EncodingTOML Encoding = "toml"
)

// EncodingFor returns the encoding implied by a file extension. Unknown
// extensions are treated as JSON.
func EncodingFor(path string) Encoding {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return EncodingTOML
	}
	return EncodingJSON
}

// file is the multi-chart form of a chart file.
type file struct {
	Charts []*Chart `json:"charts" toml:"charts"`
}

// Decode parses chart definitions. The document is either a single chart
// or an object whose "charts" member lists several. Every chart has its
// defaults applied and is validated.
func Decode(data []byte, enc Encoding) ([]*Chart, error) {
	var multi file
	if err := unmarshal(data, enc, &multi); err != nil {
		return nil, err
	}
	charts := multi.Charts
	if len(charts) == 0 {
		var single Chart
		if err := unmarshal(data, enc, &single); err != nil {
			return nil, err
		}
		charts = []*Chart{&single}
	}

	for i, c := range charts {
		if c == nil {
			return nil, errors.New(errors.ErrCodeInvalidInput, "chart %d is empty", i)
		}
		if c.Name == "" && len(charts) > 1 {
			c.Name = string(c.Type) + "-" + strconv.Itoa(i+1)
		}
		c.SetDefaults()
		if err := c.Validate(); err != nil {
			return nil, err
		}
	}
	return charts, nil
}

func unmarshal(data []byte, enc Encoding, v any) error {
	switch enc {
	case EncodingTOML:
		if err := toml.Unmarshal(data, v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode chart toml")
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(v); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode chart json")
		}
	}
	return nil
}

// Load reads and decodes a chart file, picking the encoding from its
// extension.
func Load(path string) ([]*Chart, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "chart file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return Decode(data, EncodingFor(path))
}

// Find returns the chart with the given name.
func Find(charts []*Chart, name string) (*Chart, error) {
	for _, c := range charts {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "no chart named %q", name)
}

// Canonical returns the JSON encoding of c used for content hashing.
func (c *Chart) Canonical() ([]byte, error) {
	return json.Marshal(c)
}
