package ops

import (
	"path/filepath"
	"strings"

	"github.com/codefionn/fsgate/internal/consts"
)

// Known binary extensions where scanning line-by-line is never useful.
var binaryExtensions = map[string]struct{}{
	".exe":    {},
	".dll":    {},
	".so":     {},
	".dylib":  {},
	".a":      {},
	".lib":    {},
	".o":      {},
	".obj":    {},
	".wasm":   {},
	".png":    {},
	".jpg":    {},
	".jpeg":   {},
	".gif":    {},
	".zip":    {},
	".gz":     {},
	".tar":    {},
	".pdf":    {},
	".sqlite": {},
	".db":     {},
}

func isBinaryExtension(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	_, ok := binaryExtensions[ext]
	return ok
}

// hasBinaryContent uses a simple heuristic (presence of NUL bytes in the
// leading bytes) to determine if the data is likely binary.
func hasBinaryContent(data []byte) bool {
	checkLen := len(data)
	if checkLen > consts.BinarySniffLen {
		checkLen = consts.BinarySniffLen
	}
	for i := 0; i < checkLen; i++ {
		if data[i] == 0 {
			return true
		}
	}
	return false
}

func isLikelyBinary(path string, data []byte) bool {
	return isBinaryExtension(path) || hasBinaryContent(data)
}
