package types

// Script is a lock or type script attached to a cell output: a code hash
// naming the verification program, plus an ordered list of byte-string
// arguments passed to it. An output's lock script must always be present;
// its type script is optional.
type Script struct {
	CodeHash Hash
	Args     [][]byte
}

// NewScript builds a Script from a code hash and argument list, copying
// args the way the teacher copies BlockAssemblerConfig.Args before handing
// it to a cellbase lock.
func NewScript(codeHash Hash, args [][]byte) *Script {
	cp := make([][]byte, len(args))
	for i, a := range args {
		b := make([]byte, len(a))
		copy(b, a)
		cp[i] = b
	}
	return &Script{CodeHash: codeHash, Args: cp}
}

// SerializedSize approximates the on-wire size of the script: the code
// hash plus each argument prefixed by a 4-byte length.
func (s *Script) SerializedSize() int {
	if s == nil {
		return 0
	}
	size := HashLength
	for _, a := range s.Args {
		size += 4 + len(a)
	}
	return size
}
