// Package chain is the typed adapter for the Hedera EVM contracts: a
// read-only jobs accessor, the reputation score write-back, and
// transaction log inspection for event confirmation.
package chain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

const jobsModuleABI = `[{"inputs":[{"name":"jobId","type":"bytes32"}],"name":"getJob","outputs":[{"components":[{"name":"creator","type":"address"},{"name":"agentId","type":"uint256"},{"name":"budget","type":"uint256"},{"name":"description","type":"string"},{"name":"state","type":"uint8"},{"name":"createdAt","type":"uint64"},{"name":"acceptDeadline","type":"uint64"},{"name":"completeDeadline","type":"uint64"},{"name":"multihopId","type":"bytes32"},{"name":"step","type":"uint64"}],"name":"","type":"tuple"}],"stateMutability":"view","type":"function"}]`

const registryModuleABI = `[{"inputs":[{"name":"agentId","type":"uint256"},{"name":"verifierAgentId","type":"uint256"},{"name":"score","type":"uint256"}],"name":"recordCrossValidationReputationScore","outputs":[],"stateMutability":"nonpayable","type":"function"}]`

var ErrJobNotFound = errors.New("chain: job not found")

type Config struct {
	RPCURL         string
	ChainID        int64
	PrivateKey     string // hex, 0x prefix optional
	JobsModule     string
	RegistryModule string
	GasLimit       uint64
}

type Client struct {
	eth            *ethclient.Client
	chainID        *big.Int
	key            *ecdsa.PrivateKey
	from           common.Address
	jobsModule     common.Address
	registryModule common.Address
	gasLimit       uint64
	jobsABI        abi.ABI
	registryABI    abi.ABI
}

func Dial(cfg Config) (*Client, error) {
	keyHex := strings.TrimPrefix(cfg.PrivateKey, "0x")
	key, err := crypto.HexToECDSA(keyHex)
	if err != nil {
		return nil, fmt.Errorf("chain: parse private key: %w", err)
	}

	if !common.IsHexAddress(cfg.JobsModule) {
		return nil, fmt.Errorf("chain: invalid jobs module address %q", cfg.JobsModule)
	}
	if !common.IsHexAddress(cfg.RegistryModule) {
		return nil, fmt.Errorf("chain: invalid registry module address %q", cfg.RegistryModule)
	}

	jobsABI, err := abi.JSON(strings.NewReader(jobsModuleABI))
	if err != nil {
		return nil, fmt.Errorf("chain: parse jobs ABI: %w", err)
	}
	registryABI, err := abi.JSON(strings.NewReader(registryModuleABI))
	if err != nil {
		return nil, fmt.Errorf("chain: parse registry ABI: %w", err)
	}

	eth, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("chain: dial %s: %w", cfg.RPCURL, err)
	}

	gasLimit := cfg.GasLimit
	if gasLimit == 0 {
		gasLimit = 500000
	}

	return &Client{
		eth:            eth,
		chainID:        big.NewInt(cfg.ChainID),
		key:            key,
		from:           crypto.PubkeyToAddress(key.PublicKey),
		jobsModule:     common.HexToAddress(cfg.JobsModule),
		registryModule: common.HexToAddress(cfg.RegistryModule),
		gasLimit:       gasLimit,
		jobsABI:        jobsABI,
		registryABI:    registryABI,
	}, nil
}

func (c *Client) Close() {
	c.eth.Close()
}

// From is the transaction sender address derived from the configured key.
func (c *Client) From() common.Address {
	return c.from
}

// ReadJob calls the JobsModule getJob accessor for a job reference.
// A reverted call or an empty return is reported as ErrJobNotFound.
func (c *Client) ReadJob(ctx context.Context, ref common.Hash) (*JobDetails, error) {
	data, err := c.jobsABI.Pack("getJob", [32]byte(ref))
	if err != nil {
		return nil, fmt.Errorf("chain: pack getJob: %w", err)
	}

	out, err := c.eth.CallContract(ctx, ethereum.CallMsg{To: &c.jobsModule, Data: data}, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJobNotFound, err)
	}
	if len(out) == 0 {
		return nil, ErrJobNotFound
	}

	values, err := c.jobsABI.Unpack("getJob", out)
	if err != nil {
		return nil, fmt.Errorf("chain: decode getJob return: %w", err)
	}
	tuple := abi.ConvertType(values[0], new(rawJob)).(*rawJob)

	return &JobDetails{
		Creator:          tuple.Creator,
		AgentID:          tuple.AgentId,
		Budget:           tuple.Budget,
		Description:      tuple.Description,
		State:            tuple.State,
		CreatedAt:        tuple.CreatedAt,
		AcceptDeadline:   tuple.AcceptDeadline,
		CompleteDeadline: tuple.CompleteDeadline,
		MultihopID:       common.Hash(tuple.MultihopId),
		Step:             tuple.Step,
	}, nil
}

// rawJob mirrors the getJob tuple for ABI decoding.
type rawJob struct {
	Creator          common.Address
	AgentId          *big.Int
	Budget           *big.Int
	Description      string
	State            uint8
	CreatedAt        uint64
	AcceptDeadline   uint64
	CompleteDeadline uint64
	MultihopId       [32]byte
	Step             uint64
}

// WriteScore submits recordCrossValidationReputationScore and blocks
// until the transaction is mined, returning its hash. The range check is
// a guard against a programming error upstream; the scoring step already
// clamps into [0, 100].
func (c *Client) WriteScore(ctx context.Context, agentID, verifierID *big.Int, score uint8) (string, error) {
	if score > 100 {
		return "", fmt.Errorf("chain: score %d out of range [0, 100]", score)
	}
	if agentID == nil {
		return "", errors.New("chain: nil agent id")
	}
	if verifierID == nil {
		verifierID = big.NewInt(0)
	}

	data, err := c.registryABI.Pack("recordCrossValidationReputationScore",
		agentID, verifierID, new(big.Int).SetUint64(uint64(score)))
	if err != nil {
		return "", fmt.Errorf("chain: pack recordCrossValidationReputationScore: %w", err)
	}

	nonce, err := c.eth.PendingNonceAt(ctx, c.from)
	if err != nil {
		return "", fmt.Errorf("chain: nonce: %w", err)
	}
	gasPrice, err := c.eth.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("chain: gas price: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		To:       &c.registryModule,
		Gas:      c.gasLimit,
		GasPrice: gasPrice,
		Data:     data,
	})
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(c.chainID), c.key)
	if err != nil {
		return "", fmt.Errorf("chain: sign transaction: %w", err)
	}

	if err := c.eth.SendTransaction(ctx, signed); err != nil {
		return "", fmt.Errorf("chain: send transaction: %w", err)
	}

	receipt, err := bind.WaitMined(ctx, c.eth, signed)
	if err != nil {
		return "", fmt.Errorf("chain: wait for receipt: %w", err)
	}
	if receipt.Status != types.ReceiptStatusSuccessful {
		return "", fmt.Errorf("chain: transaction %s reverted", signed.Hash().Hex())
	}
	return signed.Hash().Hex(), nil
}

// ConfirmValidationRequest fetches a transaction's logs and reports
// whether they contain a CrossValidationRequested event matching jobRef
// (and verifierID, when supplied).
func (c *Client) ConfirmValidationRequest(ctx context.Context, txRef string, jobRef common.Hash, verifierID *big.Int) (bool, error) {
	receipt, err := c.eth.TransactionReceipt(ctx, common.HexToHash(txRef))
	if err != nil {
		return false, fmt.Errorf("chain: receipt for %s: %w", txRef, err)
	}
	return MatchValidationRequest(receipt.Logs, jobRef, verifierID), nil
}
