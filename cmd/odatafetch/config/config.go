package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-viper/mapstructure/v2"
	"github.com/kovnat/sapodataoperator/internal/common"
	"github.com/kovnat/sapodataoperator/internal/connection"
	"github.com/kovnat/sapodataoperator/internal/fetch"
	"github.com/kovnat/sapodataoperator/internal/sink"
	"gopkg.in/yaml.v3"
)

type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // error, warn, info, debug
	Format string `mapstructure:"format" yaml:"format"` // text, json
}

type OutputConfig struct {
	// Format of the emitted result: "table" (preview), "json" or "csv".
	Format string `mapstructure:"format" yaml:"format"`
	// Path writes the emitted result to a file instead of stdout.
	Path string `mapstructure:"path" yaml:"path"`
	// Sink optionally materializes the result into a database.
	Sink sink.Config `mapstructure:"sink" yaml:"sink"`
}

// Doc is the full configuration document for one fetch run.
type Doc struct {
	Logging     LoggingConfig                `mapstructure:"logging" yaml:"logging"`
	Connections map[string]connection.Config `mapstructure:"connections" yaml:"connections"`
	Fetch       fetch.Spec                   `mapstructure:"fetch" yaml:"fetch"`
	Output      OutputConfig                 `mapstructure:"output" yaml:"output"`
}

// Load reads and decodes a YAML config file. The document is decoded into a
// generic map first and then through mapstructure, so wrong-typed fields
// (e.g. parameters given as a list) fail with a decode error instead of being
// silently dropped.
func Load(path string) (*Doc, error) {
	clean := filepath.Clean(path)
	// #nosec G304 -- path comes from the --config flag
	data, err := os.ReadFile(clean)
	if err != nil {
		return nil, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", clean, err)
	}

	var doc Doc
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: false,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", clean, err)
	}
	return &doc, nil
}

// NewLogger builds the logger selected by the logging section.
func (d *Doc) NewLogger() *common.Logger {
	level := common.ParseLogLevel(d.Logging.Level)
	if d.Logging.Format == "json" {
		return common.NewJSONLogger(level)
	}
	return common.NewLogger(level)
}

// Registry builds the connection registry from the connections section.
func (d *Doc) Registry() *connection.Registry {
	reg := connection.NewRegistry()
	for id, cfg := range d.Connections {
		reg.Register(id, cfg)
	}
	return reg
}
