package main

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/moolekkari/jbclass/internal/jbig2/classer"
	"github.com/moolekkari/jbclass/internal/jbig2/errors"
)

// loadSettings builds the classifier settings. The defaults of the 'method' are
// overridden by the yaml 'configPath' file, if given, and then by the 'components'
// flag value, if not empty.
func loadSettings(method, configPath, components string) (classer.Settings, error) {
	const processName = "loadSettings"
	var m classer.Method
	if err := m.UnmarshalText([]byte(method)); err != nil {
		return classer.Settings{}, errors.Wrap(err, processName, "method")
	}
	settings := classer.DefaultSettings(m)

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return classer.Settings{}, errors.Wrap(err, processName, "config")
		}
		if err = yaml.Unmarshal(data, &settings); err != nil {
			return classer.Settings{}, errors.Wrapf(err, processName, "config: '%s'", configPath)
		}
	}

	if components != "" {
		if err := settings.Components.UnmarshalText([]byte(components)); err != nil {
			return classer.Settings{}, errors.Wrap(err, processName, "components")
		}
	}
	if err := settings.Validate(); err != nil {
		return classer.Settings{}, errors.Wrap(err, processName, "")
	}
	return settings, nil
}
