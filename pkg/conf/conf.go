package conf

import (
	"os"

	"github.com/go-ini/ini"
	"github.com/go-playground/validator/v10"
	"github.com/mediashelf/mediashelf/pkg/util"
)

var cfg *ini.File

// Init loads the configuration from the given path, writing a default
// file on first boot.
func Init(path string) {
	var err error

	if path == "" {
		path = "conf.ini"
	}

	if !util.Exists(path) {
		// Generate initial config file
		confContent := util.Replace(map[string]string{
			"{SessionSecret}": util.RandStringRunes(64),
			"{HashIDSalt}":    util.RandStringRunes(64),
		}, defaultConf)
		f, err := os.Create(path)
		if err != nil {
			util.Log().Panic("Failed to create config file: %s", err)
		}
		if _, err := f.WriteString(confContent); err != nil {
			util.Log().Panic("Failed to write config file: %s", err)
		}
		f.Close()
	}

	cfg, err = ini.Load(path)
	if err != nil {
		util.Log().Panic("Failed to parse config file %q: %s", path, err)
	}

	sections := map[string]interface{}{
		"Database": DatabaseConfig,
		"System":   SystemConfig,
		"Redis":    RedisConfig,
		"CORS":     CORSConfig,
		"Cron":     CronConfig,
	}
	for sectionName, sectionStruct := range sections {
		err = mapSection(sectionName, sectionStruct)
		if err != nil {
			util.Log().Panic("Failed to parse config section %q: %s", sectionName, err)
		}
	}
}

// mapSection maps an ini section onto the given struct and validates it
func mapSection(section string, confStruct interface{}) error {
	err := cfg.Section(section).MapTo(confStruct)
	if err != nil {
		return err
	}

	validate := validator.New()
	return validate.Struct(confStruct)
}
