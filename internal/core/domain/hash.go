package domain

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// HashContent computes the content hash of a token's narrative text.
func HashContent(content string) string {
	hasher := xxhash.New()
	_, _ = hasher.WriteString(content)
	return fmt.Sprintf("%016x", hasher.Sum64())
}

// ComputeInputHash derives the compilation input hash for a token: its own
// content hash combined with the code hashes of its direct dependencies in
// dependency order. Any change in the token or in what its dependencies
// produced yields a different input hash.
func ComputeInputHash(contentHash string, depCodeHashes []string) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(contentHash)
	_, _ = hasher.Write([]byte{0})

	for _, dep := range depCodeHashes {
		_, _ = hasher.WriteString(dep)
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})

	return fmt.Sprintf("%016x", hasher.Sum64())
}

// GeneratedFunctionName derives the deterministic name for an unnamed
// function token from its parent name, document order index and content.
// The same input always yields the same name.
func GeneratedFunctionName(parentName string, order int, content string) string {
	hasher := xxhash.New()

	_, _ = hasher.WriteString(parentName)
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(strconv.Itoa(order))
	_, _ = hasher.Write([]byte{0})
	_, _ = hasher.WriteString(content)

	digest := fmt.Sprintf("%016x", hasher.Sum64())
	return GeneratedNamePrefix + digest[:8]
}
