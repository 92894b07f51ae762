package miner

import (
	"encoding/hex"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/DATxChain-Protocol/DATx/core/types"
	flags "github.com/jessevdk/go-flags"
	"github.com/pkg/errors"
)

// BlockAssemblerConfig is the one piece of node configuration this core
// consumes directly (§6): the lock script the cellbase output pays to.
type BlockAssemblerConfig struct {
	CodeHash types.Hash
	Args     [][]byte
}

// fileBlockAssemblerConfig is the on-disk TOML shape: CodeHash and Args
// are hex strings, the way the teacher's sibling chain-spec configs
// encode H256 and byte-string fields.
type fileBlockAssemblerConfig struct {
	CodeHash string   `toml:"code_hash"`
	Args     []string `toml:"args"`
}

// LoadBlockAssemblerConfig reads a BlockAssemblerConfig from a TOML file
// at path.
func LoadBlockAssemblerConfig(path string) (BlockAssemblerConfig, error) {
	var fc fileBlockAssemblerConfig
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return BlockAssemblerConfig{}, errors.Wrap(err, "decode block assembler config")
	}
	return fc.toConfig()
}

func (fc fileBlockAssemblerConfig) toConfig() (BlockAssemblerConfig, error) {
	codeHash, err := types.HashFromHex(fc.CodeHash)
	if err != nil {
		return BlockAssemblerConfig{}, errors.Wrap(err, "parse code_hash")
	}
	args := make([][]byte, 0, len(fc.Args))
	for _, a := range fc.Args {
		b, err := hex.DecodeString(strings.TrimPrefix(a, "0x"))
		if err != nil {
			return BlockAssemblerConfig{}, errors.Wrap(err, "parse arg")
		}
		args = append(args, b)
	}
	return BlockAssemblerConfig{CodeHash: codeHash, Args: args}, nil
}

// CLIOverrides are the handful of per-template tunables an operator may
// override from the command line, parsed the way the CLI-facing repos in
// the retrieval pack parse their flags (struct tags, not the standard
// library's flag package).
type CLIOverrides struct {
	BytesLimit     *uint64 `long:"bytes-limit" description:"override the per-template byte budget"`
	ProposalsLimit *uint64 `long:"proposals-limit" description:"override the per-template proposal budget"`
}

// ParseCLIOverrides parses args (typically os.Args[1:]) into CLIOverrides.
func ParseCLIOverrides(args []string) (CLIOverrides, error) {
	var o CLIOverrides
	if _, err := flags.ParseArgs(&o, args); err != nil {
		return CLIOverrides{}, errors.Wrap(err, "parse cli overrides")
	}
	return o, nil
}
