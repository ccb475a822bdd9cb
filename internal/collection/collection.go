package collection

import (
	"maps"
	"slices"

	"github.com/ethereum/go-ethereum/common"

	"github.com/gelato-nft/gelato-staker/internal/merkle"
	"github.com/gelato-nft/gelato-staker/internal/types"
)

type Config struct {
	Name         string
	Symbol       string
	MaxSupply    uint64
	TeamReserve  uint64
	MaxPerWallet uint64
}

// Collection is the NFT ownership registry. Token ids are assigned
// sequentially from 1 and never burned, so totalSupply is also the highest
// id minted so far.
//
// Collection is not safe for concurrent use.
type Collection struct {
	address    common.Address
	owner      common.Address
	teamWallet common.Address
	cfg        Config

	saleState  types.SaleState
	merkleRoot common.Hash
	whitelist  map[common.Address]struct{}

	owners         map[uint64]common.Address
	balances       map[common.Address]uint64
	tokenApprovals map[uint64]common.Address
	operators      map[common.Address]map[common.Address]bool
	minted         map[common.Address]uint64
	totalSupply    uint64
}

// New deploys the collection and mints the team reserve to teamWallet.
func New(
	address common.Address, cfg Config, owner, teamWallet common.Address, whitelist []common.Address,
) (*Collection, error) {
	if teamWallet == (common.Address{}) {
		return nil, types.ErrZeroAddress
	}
	if cfg.TeamReserve > cfg.MaxSupply {
		return nil, types.ErrNotEnoughTokensLeft
	}

	c := newEmpty(address, cfg, owner, teamWallet)
	for _, addr := range whitelist {
		c.whitelist[addr] = struct{}{}
	}
	c.mintTo(teamWallet, cfg.TeamReserve)

	return c, nil
}

func newEmpty(address common.Address, cfg Config, owner, teamWallet common.Address) *Collection {
	return &Collection{
		address:        address,
		owner:          owner,
		teamWallet:     teamWallet,
		cfg:            cfg,
		whitelist:      make(map[common.Address]struct{}),
		owners:         make(map[uint64]common.Address),
		balances:       make(map[common.Address]uint64),
		tokenApprovals: make(map[uint64]common.Address),
		operators:      make(map[common.Address]map[common.Address]bool),
		minted:         make(map[common.Address]uint64),
	}
}

func (c *Collection) Address() common.Address    { return c.address }
func (c *Collection) Owner() common.Address      { return c.owner }
func (c *Collection) TeamWallet() common.Address { return c.teamWallet }
func (c *Collection) Name() string               { return c.cfg.Name }
func (c *Collection) Symbol() string             { return c.cfg.Symbol }
func (c *Collection) MaxSupply() uint64          { return c.cfg.MaxSupply }
func (c *Collection) TotalSupply() uint64        { return c.totalSupply }
func (c *Collection) SaleState() types.SaleState { return c.saleState }
func (c *Collection) MerkleRoot() common.Hash    { return c.merkleRoot }

func (c *Collection) IsWhitelisted(addr common.Address) bool {
	_, ok := c.whitelist[addr]
	return ok
}

// MintedBy is the number of tokens addr minted itself, airdrops excluded.
func (c *Collection) MintedBy(addr common.Address) uint64 {
	return c.minted[addr]
}

// Mint mints quantity tokens to caller. Whitelisted addresses may mint
// before the public sale opens.
func (c *Collection) Mint(caller common.Address, quantity uint64) ([]uint64, error) {
	if quantity == 0 {
		return nil, types.Errorf(types.BadRequest, "quantity must be positive")
	}
	if c.saleState != types.SalePublicState && !c.IsWhitelisted(caller) {
		return nil, types.ErrSaleNotActive
	}
	if caller != c.teamWallet && !fits(c.minted[caller], quantity, c.cfg.MaxPerWallet) {
		return nil, types.ErrTooManyPerWallet
	}
	if err := c.checkSupply(quantity); err != nil {
		return nil, err
	}

	c.minted[caller] += quantity
	return c.mintTo(caller, quantity), nil
}

// WhitelistMint mints during the presale for callers proving membership of
// the merkle root with their allowance.
func (c *Collection) WhitelistMint(
	caller common.Address, quantity, allowance uint64, proof []common.Hash,
) ([]uint64, error) {
	if quantity == 0 {
		return nil, types.Errorf(types.BadRequest, "quantity must be positive")
	}
	if c.saleState != types.SalePresaleState {
		return nil, types.ErrPresaleNotActive
	}
	if !merkle.Verify(proof, c.merkleRoot, merkle.Leaf(caller, allowance)) {
		return nil, types.ErrInvalidProof
	}
	if !fits(c.minted[caller], quantity, allowance) {
		return nil, types.ErrTooManyPerWallet
	}
	if err := c.checkSupply(quantity); err != nil {
		return nil, err
	}

	c.minted[caller] += quantity
	return c.mintTo(caller, quantity), nil
}

func (c *Collection) Airdrop(caller common.Address, quantity uint64, to common.Address) ([]uint64, error) {
	if caller != c.owner {
		return nil, types.ErrUnauthorized
	}
	if to == (common.Address{}) {
		return nil, types.ErrZeroAddress
	}
	if quantity == 0 {
		return nil, types.Errorf(types.BadRequest, "quantity must be positive")
	}
	if err := c.checkSupply(quantity); err != nil {
		return nil, err
	}

	return c.mintTo(to, quantity), nil
}

// fits reports whether quantity more can be added to used without passing
// limit. Written as a subtraction so huge quantities cannot wrap around.
func fits(used, quantity, limit uint64) bool {
	return used <= limit && quantity <= limit-used
}

func (c *Collection) checkSupply(quantity uint64) error {
	if !fits(c.totalSupply, quantity, c.cfg.MaxSupply) {
		return types.Errorf(types.NotEnoughTokensLeft,
			"Not enough tokens left: %d requested, %d left", quantity, c.cfg.MaxSupply-c.totalSupply)
	}
	return nil
}

func (c *Collection) mintTo(to common.Address, quantity uint64) []uint64 {
	ids := make([]uint64, 0, quantity)
	for range quantity {
		c.totalSupply++
		c.owners[c.totalSupply] = to
		ids = append(ids, c.totalSupply)
	}
	c.balances[to] += quantity
	return ids
}

func (c *Collection) setSaleState(caller common.Address, state types.SaleState) error {
	if caller != c.owner {
		return types.ErrUnauthorized
	}
	c.saleState = state
	return nil
}

func (c *Collection) StartPresale(caller common.Address) error {
	return c.setSaleState(caller, types.SalePresaleState)
}

func (c *Collection) StartPublicSale(caller common.Address) error {
	return c.setSaleState(caller, types.SalePublicState)
}

func (c *Collection) StopSale(caller common.Address) error {
	return c.setSaleState(caller, types.SaleNotActiveState)
}

func (c *Collection) SetMerkleRoot(caller common.Address, root common.Hash) error {
	if caller != c.owner {
		return types.ErrUnauthorized
	}
	c.merkleRoot = root
	return nil
}

func (c *Collection) OwnerOf(id uint64) (common.Address, error) {
	owner, ok := c.owners[id]
	if !ok {
		return common.Address{}, types.Errorf(types.TokenNotFound, "token %d does not exist", id)
	}
	return owner, nil
}

func (c *Collection) BalanceOf(owner common.Address) uint64 {
	return c.balances[owner]
}

// TokensOf returns the ids held by owner in ascending order.
func (c *Collection) TokensOf(owner common.Address) []uint64 {
	var ids []uint64
	for id, o := range c.owners {
		if o == owner {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (c *Collection) Approve(caller, to common.Address, id uint64) error {
	owner, err := c.OwnerOf(id)
	if err != nil {
		return err
	}
	if caller != owner && !c.IsApprovedForAll(owner, caller) {
		return types.ErrNotOwnerNorApproved
	}
	c.tokenApprovals[id] = to
	return nil
}

func (c *Collection) GetApproved(id uint64) (common.Address, error) {
	if _, err := c.OwnerOf(id); err != nil {
		return common.Address{}, err
	}
	return c.tokenApprovals[id], nil
}

func (c *Collection) SetApprovalForAll(owner, operator common.Address, approved bool) error {
	if owner == operator {
		return types.Errorf(types.BadRequest, "approve to caller")
	}
	if c.operators[owner] == nil {
		c.operators[owner] = make(map[common.Address]bool)
	}
	c.operators[owner][operator] = approved
	return nil
}

func (c *Collection) IsApprovedForAll(owner, operator common.Address) bool {
	return c.operators[owner][operator]
}

// TransferFrom moves id from from to to on behalf of operator, who must be
// the owner, the token's approved address or an approved operator.
func (c *Collection) TransferFrom(operator, from, to common.Address, id uint64) error {
	owner, err := c.OwnerOf(id)
	if err != nil {
		return err
	}
	if owner != from {
		return types.ErrTransferFromIncorrectOwner
	}
	if operator != owner && c.tokenApprovals[id] != operator && !c.IsApprovedForAll(owner, operator) {
		return types.Errorf(types.NotOwnerNorApproved,
			"%s is not owner nor approved for token %d", operator.Hex(), id)
	}
	if to == (common.Address{}) {
		return types.ErrZeroAddress
	}

	delete(c.tokenApprovals, id)
	c.balances[from]--
	c.balances[to]++
	c.owners[id] = to
	return nil
}

// State is a copy of everything the collection holds, used for persistence.
type State struct {
	Address        common.Address
	Owner          common.Address
	TeamWallet     common.Address
	Config         Config
	SaleState      types.SaleState
	MerkleRoot     common.Hash
	Whitelist      []common.Address
	Owners         map[uint64]common.Address
	TokenApprovals map[uint64]common.Address
	Operators      map[common.Address]map[common.Address]bool
	Minted         map[common.Address]uint64
}

func (c *Collection) Snapshot() State {
	operators := make(map[common.Address]map[common.Address]bool, len(c.operators))
	for owner, ops := range c.operators {
		operators[owner] = maps.Clone(ops)
	}
	whitelist := slices.SortedFunc(maps.Keys(c.whitelist), func(a, b common.Address) int {
		return a.Cmp(b)
	})

	return State{
		Address:        c.address,
		Owner:          c.owner,
		TeamWallet:     c.teamWallet,
		Config:         c.cfg,
		SaleState:      c.saleState,
		MerkleRoot:     c.merkleRoot,
		Whitelist:      whitelist,
		Owners:         maps.Clone(c.owners),
		TokenApprovals: maps.Clone(c.tokenApprovals),
		Operators:      operators,
		Minted:         maps.Clone(c.minted),
	}
}

// Restore rebuilds a collection from a snapshot. Balances and total supply
// are derived from the owners map.
func Restore(state State) *Collection {
	c := newEmpty(state.Address, state.Config, state.Owner, state.TeamWallet)
	c.saleState = state.SaleState
	c.merkleRoot = state.MerkleRoot
	for _, addr := range state.Whitelist {
		c.whitelist[addr] = struct{}{}
	}
	for id, owner := range state.Owners {
		c.owners[id] = owner
		c.balances[owner]++
		c.totalSupply = max(c.totalSupply, id)
	}
	maps.Copy(c.tokenApprovals, state.TokenApprovals)
	for owner, ops := range state.Operators {
		c.operators[owner] = maps.Clone(ops)
	}
	maps.Copy(c.minted, state.Minted)
	return c
}
