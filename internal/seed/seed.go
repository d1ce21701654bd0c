// Package seed loads the embedded default portfolio content for each locale.
package seed

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/localnerve/visionfolio/data"
	"github.com/localnerve/visionfolio/internal/models"
	"gopkg.in/yaml.v3"
)

// DefaultLocale is used when no locale is configured
const DefaultLocale = "en"

// ErrUnknownLocale is returned for a locale with no seed file
var ErrUnknownLocale = errors.New("unknown locale")

// Source produces default content for a locale
type Source interface {
	Defaults(locale string) (models.Content, error)
	Locales() []string
}

// Embedded reads seeds from an fs.FS laid out as seed/<locale>.yaml
type Embedded struct {
	FS fs.FS
}

// NewEmbedded returns a Source backed by the seeds compiled into the binary
func NewEmbedded() *Embedded {
	return &Embedded{FS: data.Seeds}
}

// Defaults parses the seed file for locale. Only names listed by Locales
// are accepted, so path aliases like "../seed/en" never reach the store.
func (e *Embedded) Defaults(locale string) (models.Content, error) {
	if !slices.Contains(e.Locales(), locale) {
		return models.Content{}, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}

	raw, err := fs.ReadFile(e.FS, path.Join("seed", locale+".yaml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return models.Content{}, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
		}
		return models.Content{}, fmt.Errorf("failed to read seed for %q: %w", locale, err)
	}

	var content models.Content
	if err := yaml.Unmarshal(raw, &content); err != nil {
		return models.Content{}, fmt.Errorf("failed to parse seed for %q: %w", locale, err)
	}
	return content, nil
}

// Locales lists every locale with a seed file, sorted
func (e *Embedded) Locales() []string {
	entries, err := fs.ReadDir(e.FS, "seed")
	if err != nil {
		return nil
	}
	locales := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name, ok := strings.CutSuffix(entry.Name(), ".yaml"); ok && !entry.IsDir() {
			locales = append(locales, name)
		}
	}
	sort.Strings(locales)
	return locales
}
