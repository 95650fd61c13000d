// Package services contains the orchestration logic of the client: record
// catalog, donation submission, decryption and export.
package services

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/water4699/donationlog/internal/client/deployments"
	commonerrs "github.com/water4699/donationlog/internal/common"
)

// Session is the wallet/chain state threaded explicitly into every
// operation. Nothing reads ambient globals; this keeps the orchestrators
// testable in isolation.
type Session struct {
	UserAddress common.Address
	ChainID     uint64
	Deployment  deployments.DeploymentInfo
}

// check validates the session preconditions shared by all orchestrators.
func (s Session) check() error {
	if s.UserAddress == (common.Address{}) {
		return fmt.Errorf("wallet not connected: %w", commonerrs.ErrPrecondition)
	}
	if !s.Deployment.IsDeployed {
		return &commonerrs.ChainMismatchError{
			Detected: s.ChainID,
			Expected: deployments.ExpectedChainIDs(),
		}
	}
	return nil
}
