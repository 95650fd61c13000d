package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/water4699/donationlog/internal/client/config"
	"github.com/water4699/donationlog/internal/client/deployments"
	"github.com/water4699/donationlog/internal/client/ledger"
	"github.com/water4699/donationlog/internal/client/relayer"
	"github.com/water4699/donationlog/internal/client/services"
	"github.com/water4699/donationlog/internal/client/wallet"
	commonerrs "github.com/water4699/donationlog/internal/common"
	"github.com/water4699/donationlog/internal/logging"
)

// App wires the chain connection, the relayer adapter and the record
// services behind an interactive command loop.
type App struct {
	config  *config.Config
	session services.Session

	catalog    *services.Catalog
	submission *services.SubmissionService
	decryption *services.DecryptionService
	export     *services.ExportService
	adapter    relayer.Adapter

	log    logging.Logger
	reader *bufio.Reader
}

// NewApp connects to the configured node, verifies the chain carries a
// deployment, performs the relayer handshake and assembles the services.
// A failed handshake does not abort startup: the adapter stays degraded and
// encryption-dependent commands fail fast until it recovers.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	reader := bufio.NewReader(os.Stdin)

	client, err := ethclient.Dial(cfg.RPCEndpointURL)
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.RPCEndpointURL, err)
	}

	chainID, err := client.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading chain id: %w", err)
	}

	deployment := deployments.Resolve(chainID.Uint64())
	if !deployment.IsDeployed {
		return nil, &commonerrs.ChainMismatchError{
			Detected: chainID.Uint64(),
			Expected: deployments.ExpectedChainIDs(),
		}
	}

	adapter := relayer.NewClient(cfg.RelayerURL, chainID.Uint64(), log)
	if err := adapter.Connect(ctx); err != nil {
		log.Warn(ctx, "relayer handshake failed, encryption unavailable", "err", err)
	}

	signer, err := loadSigner(cfg, reader)
	if err != nil {
		return nil, err
	}

	contract, err := ledger.NewEthContract(client, deployment.ContractAddress)
	if err != nil {
		return nil, err
	}

	catalog := services.NewCatalog(contract, log)
	validityDays := uint32(cfg.ValidityDays)

	return &App{
		config: cfg,
		session: services.Session{
			UserAddress: signer.Address(),
			ChainID:     chainID.Uint64(),
			Deployment:  deployment,
		},
		catalog:    catalog,
		submission: services.NewSubmissionService(contract, adapter, signer, catalog, log),
		decryption: services.NewDecryptionService(contract, adapter, signer, catalog, validityDays, log),
		export:     services.NewExportService(cfg.ExportDir),
		adapter:    adapter,
		log:        log,
		reader:     reader,
	}, nil
}

// loadSigner reads the wallet private key from the configured key file, or
// prompts for it without echo when no file is configured.
func loadSigner(cfg *config.Config, reader *bufio.Reader) (wallet.Signer, error) {
	var hexKey string

	if cfg.KeyFile != "" {
		data, err := os.ReadFile(cfg.KeyFile)
		if err != nil {
			return nil, fmt.Errorf("reading key file: %w", err)
		}
		hexKey = strings.TrimSpace(string(data))
	} else {
		secret, err := GetSecret("Enter wallet private key", os.Stdout)
		if err != nil {
			return nil, err
		}
		hexKey = strings.TrimSpace(string(secret))
	}

	return wallet.NewKeySigner(hexKey)
}

func (a *App) Run(ctx context.Context) {
	a.Root(ctx)
}
