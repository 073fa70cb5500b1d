// File: pkg/pdf/config.go
package pdf

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Mode selects how strictly pdfcpu validates input files.
type Mode string

const (
	ModeRelaxed Mode = "relaxed"
	ModeStrict  Mode = "strict"
)

// ParseMode converts a user-supplied validation mode. The empty string maps to ModeRelaxed.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeRelaxed:
		return ModeRelaxed, nil
	case ModeStrict:
		return ModeStrict, nil
	default:
		return "", fmt.Errorf("unknown validation mode %q (want %q or %q)", s, ModeRelaxed, ModeStrict)
	}
}

var disableUserConfig sync.Once

// NewConfiguration returns a pdfcpu configuration for mode. The pdfcpu user
// config directory is never read or created.
func NewConfiguration(mode Mode) *model.Configuration {
	disableUserConfig.Do(func() {
		model.ConfigPath = "disable"
	})

	conf := model.NewDefaultConfiguration()
	if mode == ModeStrict {
		conf.ValidationMode = model.ValidationStrict
	} else {
		conf.ValidationMode = model.ValidationRelaxed
	}
	return conf
}
