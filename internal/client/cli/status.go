package cli

import (
	"context"
	"fmt"

	"github.com/water4699/donationlog/internal/client/deployments"
)

func (a *App) status(ctx context.Context) {
	fmt.Printf("Network:  %s (chain id %d)\n", a.session.Deployment.ChainName, a.session.ChainID)
	fmt.Printf("Contract: %s\n", a.session.Deployment.ContractAddress.Hex())
	fmt.Printf("Wallet:   %s\n", a.session.UserAddress.Hex())

	if stats, err := a.submission.Stats(ctx, a.session); err == nil {
		fmt.Printf("Records:  %d total on this network, %d yours\n", stats.TotalRecords, stats.UserRecords)
	} else {
		fmt.Println("Records:  unavailable:", err)
	}

	if a.adapter.Ready() {
		fmt.Println("Relayer:  connected")
		return
	}

	fmt.Println("Relayer:  unavailable, encryption and decryption are disabled")
	if err := a.adapter.LastError(); err != nil {
		fmt.Println("          last error:", err)
	}
	if deployments.CapabilitiesFor(a.session.ChainID).RequiresRelayer {
		fmt.Println("          a local hardhat node supports mock encryption without a relayer")
	}
}

func (a *App) networks(ctx context.Context) {
	for _, id := range deployments.ExpectedChainIDs() {
		info := deployments.Resolve(id)
		caps := deployments.CapabilitiesFor(id)
		note := "production"
		if !caps.IsProductionSafe {
			note = "local dev"
		}
		fmt.Printf("%-10s chain id %-10d %s (%s)\n", info.ChainName, info.ChainID, info.ContractAddress.Hex(), note)
	}
}
