package config

import (
	"encoding/json"
	"os"

	"github.com/water4699/donationlog/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. After parsing,
// non-empty values are copied into the runtime Config.
type JsonConfig struct {
	RPCEndpointURL string `json:"rpc_endpoint_url"`
	RelayerURL     string `json:"relayer_url"`
	KeyFile        string `json:"key_file"`
	ValidityDays   int    `json:"validity_days"`
	ExportDir      string `json:"export_dir"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Intended usage is: defaults -> parseJson -> parseFlags, where later stages
// override earlier ones. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.RPCEndpointURL != "" {
		cfg.RPCEndpointURL = jc.RPCEndpointURL
	}
	if jc.RelayerURL != "" {
		cfg.RelayerURL = jc.RelayerURL
	}
	if jc.KeyFile != "" {
		cfg.KeyFile = jc.KeyFile
	}
	if jc.ValidityDays > 0 {
		cfg.ValidityDays = jc.ValidityDays
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
}
