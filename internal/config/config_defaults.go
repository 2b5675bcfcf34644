package config

import (
	_ "embed"
)

//go:embed config.defaults.yaml
var defaultsYAML []byte
