package data

import (
	"embed"
)

// Seeds holds the default portfolio content, one YAML file per locale
//
//go:embed seed/*.yaml
var Seeds embed.FS
