package consts

// File operation limits
const (
	// MaxReadLines is the largest value accepted for the read operation's
	// max_lines parameter.
	MaxReadLines = 10000

	// MaxGrepResults is the hard ceiling for grep's max_results parameter.
	MaxGrepResults = 500
)

// Binary detection
const (
	// BinarySniffLen is how many leading bytes are examined when deciding
	// whether a file is binary.
	BinarySniffLen = 512
)

// Filesystem permissions for files and directories created by the gateway.
const (
	DefaultFilePerm = 0644
	DefaultDirPerm  = 0755
)
