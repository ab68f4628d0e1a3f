package config

import (
	"os"
	"path/filepath"
)

const (
	defaultConfigRelPath = "configs/conf.yml"
	// EnvConfigPath overrides the config file location.
	EnvConfigPath = "SHAMTOOL_CONFIG"
	// EnvPrefix is the prefix of environment overrides, e.g. SHAMTOOL_MYSQL_HOST.
	EnvPrefix = "SHAMTOOL"
)

// Load resolves the config file and unmarshals it into out.
//
// Resolution order:
//  1. cfgName when given (relative to the working directory unless absolute);
//  2. $SHAMTOOL_CONFIG;
//  3. configs/conf.yml searched upward from the working directory.
//
// Any failure panics: a process without configuration cannot start.
func Load(cfgName string, out any) {
	curDir, err := os.Getwd()
	if err != nil {
		panic(err)
	}

	if cfgName == "" {
		cfgName = os.Getenv(EnvConfigPath)
	}
	if cfgName != "" {
		if filepath.IsAbs(cfgName) {
			load(cfgName, out)
			return
		}
		load(filepath.Join(curDir, cfgName), out)
		return
	}

	load(findConfigUpward(curDir), out)
}

func findConfigUpward(startDir string) string {
	dir := startDir
	for {
		candidate := filepath.Join(dir, defaultConfigRelPath)
		if fileExist(candidate) {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			panic("config file not exist, searched " + defaultConfigRelPath + " from: " + startDir)
		}
		dir = parent
	}
}
