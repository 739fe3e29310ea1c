package solver

import (
	"encoding/json"
	"log"
	"os"

	"github.com/mitchellh/mapstructure"
)

// ConfigPath points to an optional config.json mapping engine names to
// executable paths. Engines missing from the config resolve through $PATH.
var ConfigPath = "config.json"

func getExecutablePath(solver string, fallback string) string {
	bytes, err := os.ReadFile(ConfigPath)
	if err != nil {
		return fallback
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		log.Printf("cannot read config.json file: %v", err)
		return fallback
	}

	var config map[string]string
	mapstructure.Decode(inputJson, &config)

	path, ok := config[solver]
	if !ok {
		return fallback
	}
	return path
}
