package config

import (
	"flag"
	"os"

	"github.com/water4699/donationlog/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-r string   URL of the Ethereum JSON-RPC endpoint
//	-y string   base URL of the relayer service
//	-k string   path to the wallet key file
//	-d int      decryption authorization validity, in whole days
//	-e string   export subdirectory
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-r", "-y", "-k", "-d", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.RPCEndpointURL, "r", cfg.RPCEndpointURL, "Ethereum JSON-RPC endpoint URL")
	fs.StringVar(&cfg.RelayerURL, "y", cfg.RelayerURL, "relayer service base URL")
	fs.StringVar(&cfg.KeyFile, "k", cfg.KeyFile, "path to wallet key file")
	fs.IntVar(&cfg.ValidityDays, "d", cfg.ValidityDays, "decryption authorization validity (whole days)")
	fs.StringVar(&cfg.ExportDir, "e", cfg.ExportDir, "export subdirectory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
