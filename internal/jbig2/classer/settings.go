package classer

import (
	"fmt"
	"strings"

	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// Method is the classification method enum.
type Method int

const (
	// RankHaus is the rank hausdorff classification method.
	RankHaus Method = iota
	// Correlation is the thresholded correlation classification method.
	Correlation
)

// String implements fmt.Stringer interface.
func (m Method) String() string {
	switch m {
	case RankHaus:
		return "RankHaus"
	case Correlation:
		return "Correlation"
	}
	return fmt.Sprintf("Method(%d)", int(m))
}

// MarshalText implements encoding.TextMarshaler interface.
func (m Method) MarshalText() ([]byte, error) {
	switch m {
	case RankHaus:
		return []byte("rankhaus"), nil
	case Correlation:
		return []byte("correlation"), nil
	}
	return nil, errors.Wrapf(ErrInvalidInput, "Method.MarshalText", "unknown method: %d", int(m))
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (m *Method) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "rankhaus", "rank", "haus":
		*m = RankHaus
	case "correlation", "corr":
		*m = Correlation
	default:
		return errors.Wrapf(ErrInvalidInput, "Method.UnmarshalText", "unknown method: '%s'", text)
	}
	return nil
}

// Components defines the unit extracted from the page for the classification.
type Components int

const (
	// ConnComps are the 8-connected components of the page.
	ConnComps Components = iota
	// Characters are the components after the vertical closing joining the
	// character parts, like the dot of the 'i' with its stem.
	Characters
	// Words are the components after the closing joining the characters of a word.
	Words
)

// String implements fmt.Stringer interface.
func (c Components) String() string {
	switch c {
	case ConnComps:
		return "ConnComps"
	case Characters:
		return "Characters"
	case Words:
		return "Words"
	}
	return fmt.Sprintf("Components(%d)", int(c))
}

// MarshalText implements encoding.TextMarshaler interface.
func (c Components) MarshalText() ([]byte, error) {
	switch c {
	case ConnComps:
		return []byte("conncomps"), nil
	case Characters:
		return []byte("characters"), nil
	case Words:
		return []byte("words"), nil
	}
	return nil, errors.Wrapf(ErrInvalidInput, "Components.MarshalText", "unknown components: %d", int(c))
}

// UnmarshalText implements encoding.TextUnmarshaler interface.
func (c *Components) UnmarshalText(text []byte) error {
	switch strings.ToLower(strings.TrimSpace(string(text))) {
	case "conncomps", "conn":
		*c = ConnComps
	case "characters", "char", "chars":
		*c = Characters
	case "words", "word":
		*c = Words
	default:
		return errors.Wrapf(ErrInvalidInput, "Components.UnmarshalText", "unknown components: '%s'", text)
	}
	return nil
}

// Settings are the classifier settings.
type Settings struct {
	// Method is the classification method.
	Method Method `yaml:"method"`
	// Components is the unit extracted from the pages by AddPage.
	Components Components `yaml:"components"`
	// MaxWidth and MaxHeight are the maximal component dimensions. Bigger
	// components are skipped.
	MaxWidth  int `yaml:"max_width"`
	MaxHeight int `yaml:"max_height"`

	// SizeHaus is the size of the square structuring element used by the
	// rank hausdorff method. In range [1, 10].
	SizeHaus int `yaml:"size_haus"`
	// RankHaus is the rank value of the rank hausdorff method. In range [0.5, 1.0].
	RankHaus float64 `yaml:"rank_haus"`

	// Thresh is the correlation score threshold. In range [0.4, 0.98].
	Thresh float64 `yaml:"thresh"`
	// WeightFactor raises the correlation threshold for the dense templates.
	// In range [0.0, 1.0].
	WeightFactor float64 `yaml:"weight_factor"`

	// WordGap is the horizontal gap, in pixels, joining the characters into
	// words when the Components are Words.
	WordGap int `yaml:"word_gap"`
	// KeepClassInstances retains the bitmaps of all class members, required by
	// the composite templates.
	KeepClassInstances bool `yaml:"keep_class_instances"`
}

// Default settings values.
const (
	DefaultMaxWidth     = 150
	DefaultMaxHeight    = 150
	DefaultSizeHaus     = 2
	DefaultRankHaus     = 0.97
	DefaultThresh       = 0.85
	DefaultWeightFactor = 0.0
	DefaultWordGap      = 4
)

// DefaultSettings returns the default settings for the 'method'.
func DefaultSettings(method Method) Settings {
	return Settings{
		Method:       method,
		Components:   ConnComps,
		MaxWidth:     DefaultMaxWidth,
		MaxHeight:    DefaultMaxHeight,
		SizeHaus:     DefaultSizeHaus,
		RankHaus:     DefaultRankHaus,
		Thresh:       DefaultThresh,
		WeightFactor: DefaultWeightFactor,
		WordGap:      DefaultWordGap,
	}
}

// Validate checks if the settings values are in their valid ranges.
// Only the parameters of the selected method are checked.
func (s Settings) Validate() error {
	const processName = "Settings.Validate"
	if s.MaxWidth <= 0 || s.MaxHeight <= 0 {
		return errors.Wrapf(ErrInvalidInput, processName, "max size: %dx%d", s.MaxWidth, s.MaxHeight)
	}
	switch s.Components {
	case ConnComps, Characters:
	case Words:
		if s.WordGap < 1 {
			return errors.Wrapf(ErrInvalidInput, processName, "word gap: %d", s.WordGap)
		}
	default:
		return errors.Wrapf(ErrInvalidInput, processName, "components: %d", int(s.Components))
	}

	switch s.Method {
	case RankHaus:
		if s.SizeHaus < 1 || s.SizeHaus > 10 {
			return errors.Wrapf(ErrInvalidInput, processName, "size haus: %d not in range [1, 10]", s.SizeHaus)
		}
		if s.RankHaus < 0.5 || s.RankHaus > 1.0 {
			return errors.Wrapf(ErrInvalidInput, processName, "rank haus: %.3f not in range [0.5, 1.0]", s.RankHaus)
		}
	case Correlation:
		if s.Thresh < 0.4 || s.Thresh > 0.98 {
			return errors.Wrapf(ErrInvalidInput, processName, "thresh: %.3f not in range [0.4, 0.98]", s.Thresh)
		}
		if s.WeightFactor < 0.0 || s.WeightFactor > 1.0 {
			return errors.Wrapf(ErrInvalidInput, processName, "weight factor: %.3f not in range [0.0, 1.0]", s.WeightFactor)
		}
	default:
		return errors.Wrapf(ErrInvalidInput, processName, "method: %d", int(s.Method))
	}
	return nil
}
