// Package catalog holds the read-only hydroponics reference stores: crop
// profiles, troubleshooting entries and parameter explanations.
package catalog

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
)

//go:embed data/*.json
var embedded embed.FS

// Store file names, used both for the embedded data and for a data directory override.
const (
	CropsFile           = "crops.json"
	TroubleshootingFile = "troubleshooting.json"
	ParametersFile      = "parameters.json"
)

// Range is a min/max interval with a preferred value.
type Range struct {
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
	Ideal float64 `json:"ideal"`
}

// Temperature holds the water and air temperature ranges in °C.
type Temperature struct {
	Water Range `json:"water"`
	Air   Range `json:"air"`
}

// CropProfile is a curated crop record from the local store.
type CropProfile struct {
	Name            string      `json:"name"`
	ScientificName  string      `json:"scientific_name"`
	PHRange         Range       `json:"ph_range"`
	ECRange         Range       `json:"ec_range"`
	Temperature     Temperature `json:"temperature"`
	LightHours      int         `json:"light_hours"`
	GerminationDays int         `json:"germination_days"`
	HarvestDays     int         `json:"harvest_days"`
	GrowthStages    []string    `json:"growth_stages"`
	CommonIssues    []string    `json:"common_issues"`
	Tips            []string    `json:"tips"`
}

// PartialCropProfile is a crop record sourced from an external system. It
// never carries the hydroponic ranges the curated store provides.
type PartialCropProfile struct {
	Name           string          `json:"name"`
	ScientificName string          `json:"scientific_name"`
	GrowthStages   []string        `json:"growth_stages"`
	CommonIssues   []string        `json:"common_issues"`
	Tips           []string        `json:"tips"`
	Source         string          `json:"_source"`
	Raw            json.RawMessage `json:"_raw,omitempty"`
}

// TroubleshootingEntry describes one diagnosable problem.
type TroubleshootingEntry struct {
	Symptoms       []string `json:"symptoms"`
	PossibleCauses []string `json:"possible_causes"`
	Solutions      []string `json:"solutions"`
	Prevention     []string `json:"prevention"`
}

// ParameterInfo explains one measurable parameter.
type ParameterInfo struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	IdealRange   string `json:"ideal_range"`
	HowToMeasure string `json:"how_to_measure"`
	HowToAdjust  string `json:"how_to_adjust"`
}

// Diagnosis pairs a troubleshooting entry with its diagnosis code.
type Diagnosis struct {
	Code  string
	Entry TroubleshootingEntry
}

// Catalog is the immutable set of reference stores. Key order of the source
// files is kept so listings and tie-breaks are deterministic.
type Catalog struct {
	crops     map[string]CropProfile
	cropKeys  []string
	issues    map[string]TroubleshootingEntry
	issueKeys []string
	params    map[string]ParameterInfo
	paramKeys []string
}

// Default loads the stores compiled into the binary.
func Default() (*Catalog, error) {
	return load(func(name string) ([]byte, error) {
		return embedded.ReadFile("data/" + name)
	})
}

// Load reads the stores from dir. Files may be JSONC (comments and trailing
// commas allowed). Any file missing from dir falls back to the embedded copy.
// An empty dir is the same as Default.
func Load(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	return load(func(name string) ([]byte, error) {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if os.IsNotExist(err) {
			return embedded.ReadFile("data/" + name)
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", name, err)
		}
		return jsonc.ToJSON(data), nil
	})
}

func load(read func(name string) ([]byte, error)) (*Catalog, error) {
	c := &Catalog{}

	data, err := read(CropsFile)
	if err != nil {
		return nil, err
	}
	if c.crops, c.cropKeys, err = decodeOrdered[CropProfile](data); err != nil {
		return nil, fmt.Errorf("%s: %w", CropsFile, err)
	}

	if data, err = read(TroubleshootingFile); err != nil {
		return nil, err
	}
	if c.issues, c.issueKeys, err = decodeOrdered[TroubleshootingEntry](data); err != nil {
		return nil, fmt.Errorf("%s: %w", TroubleshootingFile, err)
	}

	if data, err = read(ParametersFile); err != nil {
		return nil, err
	}
	if c.params, c.paramKeys, err = decodeOrdered[ParameterInfo](data); err != nil {
		return nil, fmt.Errorf("%s: %w", ParametersFile, err)
	}

	return c, nil
}

// NormalizeName folds a crop name into its store key.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Crop looks up a crop by name, ignoring case and surrounding whitespace.
func (c *Catalog) Crop(name string) (CropProfile, bool) {
	crop, ok := c.crops[NormalizeName(name)]
	return crop, ok
}

// CropNames returns the crop keys in store order.
func (c *Catalog) CropNames() []string {
	return append([]string(nil), c.cropKeys...)
}

// Diagnoses returns every troubleshooting entry in store order.
func (c *Catalog) Diagnoses() []Diagnosis {
	out := make([]Diagnosis, 0, len(c.issueKeys))
	for _, k := range c.issueKeys {
		out = append(out, Diagnosis{Code: k, Entry: c.issues[k]})
	}
	return out
}

// Parameter looks up a parameter by its exact symbol.
func (c *Catalog) Parameter(key string) (ParameterInfo, bool) {
	p, ok := c.params[key]
	return p, ok
}

// ParameterKeys returns the parameter symbols in store order.
func (c *Catalog) ParameterKeys() []string {
	return append([]string(nil), c.paramKeys...)
}

// CropsJSON renders the crop store as indented JSON.
func (c *Catalog) CropsJSON() ([]byte, error) {
	return encodeOrdered(c.cropKeys, c.crops)
}

// TroubleshootingJSON renders the troubleshooting store as indented JSON.
func (c *Catalog) TroubleshootingJSON() ([]byte, error) {
	return encodeOrdered(c.issueKeys, c.issues)
}

// ParametersJSON renders the parameter store as indented JSON.
func (c *Catalog) ParametersJSON() ([]byte, error) {
	return encodeOrdered(c.paramKeys, c.params)
}

// decodeOrdered decodes a JSON object into a map and records its key order.
func decodeOrdered[T any](data []byte) (map[string]T, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, nil, fmt.Errorf("expected a JSON object")
	}

	values := make(map[string]T)
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v", tok)
		}

		var v T
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("entry %q: %w", key, err)
		}
		if _, dup := values[key]; !dup {
			keys = append(keys, key)
		}
		values[key] = v
	}

	if _, err := dec.Token(); err != nil {
		return nil, nil, err
	}
	return values, keys, nil
}

func encodeOrdered[T any](keys []string, values map[string]T) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(values[k])
		if err != nil {
			return nil, fmt.Errorf("entry %q: %w", k, err)
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}
