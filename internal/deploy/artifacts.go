package deploy

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common"
)

// Artifact describes a deployed contract for clients of the service.
type Artifact struct {
	ContractName string         `json:"contractName"`
	Address      common.Address `json:"address"`
	Methods      []string       `json:"methods"`
}

type addressFile struct {
	Address common.Address `json:"address"`
}

var contractMethods = map[string][]string{
	CollectionContractName: {
		"mint", "whitelistMint", "airdrop", "startPresale", "startPublicSale", "stopSale",
		"setMerkleRoot", "ownerOf", "balanceOf", "totalSupply", "maxSupply",
		"approve", "getApproved", "setApprovalForAll", "isApprovedForAll", "transferFrom",
	},
	TokenContractName: {
		"name", "symbol", "decimals", "totalSupply", "balanceOf",
		"transfer", "approve", "allowance", "transferFrom",
	},
	StakerContractName: {
		"startMission", "stake", "unstake", "claimReward",
		"getRewardToClaim", "getStakedTokens", "setOwnerAndTokenAddress",
	},
}

// Artifacts lists the three deployed contracts in deployment order.
func (c *Contracts) Artifacts() []Artifact {
	return []Artifact{
		newArtifact(CollectionContractName, c.Collection.Address()),
		newArtifact(TokenContractName, c.Token.Address()),
		newArtifact(StakerContractName, c.Staker.Address()),
	}
}

func newArtifact(name string, address common.Address) Artifact {
	return Artifact{
		ContractName: name,
		Address:      address,
		Methods:      contractMethods[name],
	}
}

// SaveArtifacts writes <Name>-address.json and <Name>.json for every artifact
// into dir, creating it if missing.
func SaveArtifacts(dir string, artifacts []Artifact) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create artifacts dir: %w", err)
	}

	for _, artifact := range artifacts {
		name := artifact.ContractName
		err := writeJSON(filepath.Join(dir, name+"-address.json"), addressFile{Address: artifact.Address})
		if err != nil {
			return err
		}
		if err := writeJSON(filepath.Join(dir, name+".json"), artifact); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
