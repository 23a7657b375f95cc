// Package settings keeps the editor preferences: a flat configuration with
// hard-coded defaults, partial updates persisted to a blob, and reset.
package settings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Default values
const (
	DefaultFontFamily       = "Arial, sans-serif"
	DefaultFontSize         = 11
	DefaultLineHeight       = 1.5
	DefaultAutoSave         = true
	DefaultAutoSaveInterval = 30000
)

// MaxAutoSaveInterval is the largest interval, in milliseconds, that fits a
// time.Duration
const MaxAutoSaveInterval int64 = math.MaxInt64 / int64(time.Millisecond)

// ErrInvalidSetting is matched by every ValidationError
var ErrInvalidSetting = errors.New("invalid setting")

// Config is a snapshot of the editor preferences
type Config struct {
	FontFamily       string  `json:"fontFamily" yaml:"fontFamily"`
	FontSize         float64 `json:"fontSize" yaml:"fontSize"`                 // points
	LineHeight       float64 `json:"lineHeight" yaml:"lineHeight"`             // multiplier
	AutoSave         bool    `json:"autoSave" yaml:"autoSave"`
	AutoSaveInterval int     `json:"autoSaveInterval" yaml:"autoSaveInterval"` // milliseconds
}

// Defaults returns the hard-coded configuration
func Defaults() Config {
	return Config{
		FontFamily:       DefaultFontFamily,
		FontSize:         DefaultFontSize,
		LineHeight:       DefaultLineHeight,
		AutoSave:         DefaultAutoSave,
		AutoSaveInterval: DefaultAutoSaveInterval,
	}
}

// AutoSaveEvery returns the autosave cadence
func (c Config) AutoSaveEvery() time.Duration {
	if int64(c.AutoSaveInterval) > MaxAutoSaveInterval {
		return time.Duration(MaxAutoSaveInterval) * time.Millisecond
	}
	return time.Duration(c.AutoSaveInterval) * time.Millisecond
}

// Style renders the inline style applied to the editing surface
func (c Config) Style() string {
	return fmt.Sprintf("font-family: %s; font-size: %spt; line-height: %s;",
		c.FontFamily,
		strconv.FormatFloat(c.FontSize, 'f', -1, 64),
		strconv.FormatFloat(c.LineHeight, 'f', -1, 64))
}

// Apply returns c with every field set in p overwritten
func (c Config) Apply(p Patch) Config {
	if p.FontFamily != nil {
		c.FontFamily = *p.FontFamily
	}
	if p.FontSize != nil {
		c.FontSize = *p.FontSize
	}
	if p.LineHeight != nil {
		c.LineHeight = *p.LineHeight
	}
	if p.AutoSave != nil {
		c.AutoSave = *p.AutoSave
	}
	if p.AutoSaveInterval != nil {
		c.AutoSaveInterval = *p.AutoSaveInterval
	}
	return c
}

// Patch is a partial update. Nil fields are left unchanged.
type Patch struct {
	FontFamily       *string  `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	FontSize         *float64 `json:"fontSize,omitempty" yaml:"fontSize,omitempty"`
	LineHeight       *float64 `json:"lineHeight,omitempty" yaml:"lineHeight,omitempty"`
	AutoSave         *bool    `json:"autoSave,omitempty" yaml:"autoSave,omitempty"`
	AutoSaveInterval *int     `json:"autoSaveInterval,omitempty" yaml:"autoSaveInterval,omitempty"`
}

// ValidationError describes a rejected setting value
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Is reports ErrInvalidSetting as a match
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSetting
}

// Validate checks every set field
func (p Patch) Validate() error {
	return errors.Join(p.fieldErrors()...)
}

// fieldErrors returns one ValidationError per invalid field
func (p Patch) fieldErrors() []error {
	var errs []error
	if p.FontFamily != nil && strings.TrimSpace(*p.FontFamily) == "" {
		errs = append(errs, &ValidationError{Field: "fontFamily", Message: "must not be empty"})
	}
	if p.FontSize != nil && !(*p.FontSize > 0) {
		errs = append(errs, &ValidationError{Field: "fontSize", Message: "must be a positive number"})
	}
	if p.LineHeight != nil && !(*p.LineHeight > 0) {
		errs = append(errs, &ValidationError{Field: "lineHeight", Message: "must be a positive number"})
	}
	if p.AutoSaveInterval != nil {
		switch n := int64(*p.AutoSaveInterval); {
		case n <= 0:
			errs = append(errs, &ValidationError{Field: "autoSaveInterval", Message: "must be a positive number of milliseconds"})
		case n > MaxAutoSaveInterval:
			errs = append(errs, &ValidationError{Field: "autoSaveInterval", Message: fmt.Sprintf("must not exceed %d milliseconds", MaxAutoSaveInterval)})
		}
	}
	return errs
}

// withoutInvalid returns p with invalid fields cleared
func (p Patch) withoutInvalid() (Patch, []error) {
	errs := p.fieldErrors()
	for _, err := range errs {
		var verr *ValidationError
		if !errors.As(err, &verr) {
			continue
		}
		switch verr.Field {
		case "fontFamily":
			p.FontFamily = nil
		case "fontSize":
			p.FontSize = nil
		case "lineHeight":
			p.LineHeight = nil
		case "autoSaveInterval":
			p.AutoSaveInterval = nil
		}
	}
	return p, errs
}

// Keys lists the recognized option names
var Keys = []string{"fontFamily", "fontSize", "lineHeight", "autoSave", "autoSaveInterval"}

// ParsePatch builds a single-field patch from a key and its textual value.
// Keys may be camelCase or kebab-case.
func ParsePatch(key, value string) (Patch, error) {
	var p Patch
	switch normalizeKey(key) {
	case "fontfamily":
		p.FontFamily = &value
	case "fontsize":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return p, &ValidationError{Field: "fontSize", Message: fmt.Sprintf("%q is not a number", value)}
		}
		p.FontSize = &f
	case "lineheight":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return p, &ValidationError{Field: "lineHeight", Message: fmt.Sprintf("%q is not a number", value)}
		}
		p.LineHeight = &f
	case "autosave":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return p, &ValidationError{Field: "autoSave", Message: fmt.Sprintf("%q is not a boolean", value)}
		}
		p.AutoSave = &b
	case "autosaveinterval":
		n, err := strconv.Atoi(value)
		if err != nil {
			return p, &ValidationError{Field: "autoSaveInterval", Message: fmt.Sprintf("%q is not an integer", value)}
		}
		p.AutoSaveInterval = &n
	default:
		return p, &ValidationError{Field: key, Message: "unknown setting, expected one of " + strings.Join(Keys, ", ")}
	}
	return p, p.Validate()
}

// Value returns the option named key. Keys are matched like ParsePatch.
func (c Config) Value(key string) (any, error) {
	switch normalizeKey(key) {
	case "fontfamily":
		return c.FontFamily, nil
	case "fontsize":
		return c.FontSize, nil
	case "lineheight":
		return c.LineHeight, nil
	case "autosave":
		return c.AutoSave, nil
	case "autosaveinterval":
		return c.AutoSaveInterval, nil
	default:
		return nil, &ValidationError{Field: key, Message: "unknown setting, expected one of " + strings.Join(Keys, ", ")}
	}
}

func normalizeKey(key string) string {
	return strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(key))
}
