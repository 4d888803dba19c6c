// Package simrand builds deterministic random streams for generation work.
//
// Every consumer derives its own stream from the global seed plus a label
// path (e.g. seed, "visits", "2024-12-20"), so the values drawn for one
// concern never depend on how many draws another concern made. That property
// is what makes per-date regeneration reproducible.
package simrand

import (
	"fmt"
	"hash/fnv"
	"math/rand/v2"
	"strings"
	"time"
)

// Stream returns a PRNG whose sequence is a pure function of seed and parts.
func Stream(seed int64, parts ...string) *rand.Rand {
	return rand.New(rand.NewPCG(seedWord(seed, "a", parts), seedWord(seed, "b", parts)))
}

// DateStream is Stream with the date formatted the single canonical way.
func DateStream(seed int64, date time.Time, parts ...string) *rand.Rand {
	return Stream(seed, append([]string{date.UTC().Format("2006-01-02")}, parts...)...)
}

func seedWord(seed int64, salt string, parts []string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fmt.Sprintf("%d:%s:%s", seed, salt, strings.Join(parts, "/"))))
	return h.Sum64()
}
