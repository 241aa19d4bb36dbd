// Package sqliteopts provides options for the sqlite product database.
package sqliteopts

import (
	"fmt"

	"github.com/spf13/pflag"

	"github.com/kart-io/shopbot/pkg/options"
)

var _ options.IOptions = (*Options)(nil)

// Options contains sqlite client configuration.
type Options struct {
	// Path is the sqlite database file path. ":memory:" opens an
	// in-process database.
	Path string `json:"path" mapstructure:"path"`

	// LogLevel controls GORM statement logging (1=silent, 2=error, 3=warn, 4=info).
	LogLevel int `json:"log-level" mapstructure:"log-level"`

	// MaxOpenConns limits open connections to the database.
	MaxOpenConns int `json:"max-open-conns" mapstructure:"max-open-conns"`
}

// NewOptions creates new Options with defaults.
func NewOptions() *Options {
	return &Options{
		Path:         "db.sqlite",
		LogLevel:     1,
		MaxOpenConns: 10,
	}
}

// AddFlags adds flags to the flagset.
func (o *Options) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Path, options.Join(prefixes...)+"sqlite.path", o.Path, "Path to the sqlite database file.")
	fs.IntVar(&o.LogLevel, options.Join(prefixes...)+"sqlite.log-level", o.LogLevel, "GORM log level (1=silent, 2=error, 3=warn, 4=info).")
	fs.IntVar(&o.MaxOpenConns, options.Join(prefixes...)+"sqlite.max-open-conns", o.MaxOpenConns, "Maximum number of open connections.")
}

// Validate validates the options.
func (o *Options) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error
	if o.Path == "" {
		errs = append(errs, fmt.Errorf("sqlite path is required"))
	}
	if o.LogLevel < 1 || o.LogLevel > 4 {
		errs = append(errs, fmt.Errorf("sqlite log-level must be between 1 and 4"))
	}
	return errs
}
