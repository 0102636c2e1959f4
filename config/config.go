package config

import (
	"synthpool/core"

	"github.com/asaskevich/govalidator"
	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, env SYNTHPOOL_* overrides the yaml
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("SYNTHPOOL")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	withDefaults(config)

	if _, err := govalidator.ValidateStruct(config); err != nil {
		return err
	}

	return nil
}
