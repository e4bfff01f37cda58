package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

var randomAdjectives = []string{
	"amber",
	"bold",
	"breezy",
	"cosmic",
	"crisp",
	"dusty",
	"fleet",
	"golden",
	"hollow",
	"lunar",
	"mellow",
	"misty",
	"quiet",
	"rapid",
	"rustic",
	"silent",
	"solar",
	"stormy",
	"velvet",
	"wild",
}

var randomNouns = []string{
	"anchor",
	"badger",
	"canyon",
	"cinder",
	"comet",
	"delta",
	"ember",
	"fjord",
	"glacier",
	"heron",
	"jasper",
	"lagoon",
	"maple",
	"nebula",
	"onyx",
	"pine",
	"ridge",
	"sparrow",
	"summit",
	"wren",
}

// RandomSessionName returns a Docker-style adjective-noun name for sessions
// started without an explicit name.
func RandomSessionName() string {
	return fmt.Sprintf("%s-%s", randomWord(randomAdjectives), randomWord(randomNouns))
}

func randomWord(list []string) string {
	if len(list) == 0 {
		return ""
	}
	limit := big.NewInt(int64(len(list)))
	idx, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return list[0]
	}
	return list[int(idx.Int64())]
}
