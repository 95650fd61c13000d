package config

// Config holds runtime settings for the donation log CLI.
//
// Fields:
//   - RPCEndpointURL: HTTP(S) URL of the Ethereum JSON-RPC node.
//   - RelayerURL: base URL of the relayer/decryption service.
//   - KeyFile: path to a file with the hex-encoded wallet private key.
//     When empty, the key is requested interactively at startup.
//   - ValidityDays: authorization window for decryption grants, whole days.
//   - ExportDir: subdirectory (under the working directory) for exports.
type Config struct {
	RPCEndpointURL string
	RelayerURL     string
	KeyFile        string
	ValidityDays   int
	ExportDir      string
}

const defaultValidityDays = 10

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.RPCEndpointURL = "http://127.0.0.1:8545"
	c.RelayerURL = "https://relayer.testnet.zama.cloud"
	c.KeyFile = ""
	c.ValidityDays = defaultValidityDays
	c.ExportDir = "exports"
}

// normalize guards against out-of-range overrides. The validity window is
// converted to an unsigned day count downstream, so a non-positive value
// must never leave this package.
func (c *Config) normalize() {
	if c.ValidityDays < 1 {
		c.ValidityDays = defaultValidityDays
	}
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	cfg.normalize()
	return cfg
}
