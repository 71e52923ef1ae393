package uai

import (
	"fmt"
	"strconv"
	"strings"
)

// Options holds the registered option values (§6's options table):
// debug (check), hash (spin, MB), nnue-path (string), search (combo).
type Options struct {
	Debug    bool
	HashMB   int
	NNUEPath string
	Search   string
}

// SearchVariants lists the combo's legal values, tryhard first as the
// default, in the order the original engine registers them.
var SearchVariants = []string{
	"tryhard",
	"mcts",
	"minimax",
	"mostcaptures",
	"random",
	"leastcaptures",
	"alphabeta",
}

const (
	hashMin = 1
	hashMax = 2048
)

// DefaultOptions returns the options table's documented defaults.
func DefaultOptions() *Options {
	return &Options{
		Debug:    false,
		HashMB:   128,
		NNUEPath: "./save.bin",
		Search:   "tryhard",
	}
}

// PrintIdentity writes the `uai` response: id lines, the option
// registrations, and the trailing `uaiok`.
func (o *Options) PrintIdentity(println func(string)) {
	println("id name AutaxxNNUE")
	println("id author kz04px connormcmonigle")
	println(fmt.Sprintf("option name debug type check default %v", false))
	println(fmt.Sprintf("option name hash type spin default %d min %d max %d", 128, hashMin, hashMax))
	println("option name nnue-path type string default ./save.bin")
	println("option name search type combo default tryhard var " + strings.Join(SearchVariants, " var "))
	println("uaiok")
}

// Set applies a `setoption name <k> value <v>` pair, returning an
// error for an unrecognized name, a non-numeric hash value or an
// unknown search variant. An out-of-range hash value is clamped to
// [hashMin, hashMax] rather than rejected.
// Unrecognized option names are not an error at the protocol level
// (§7 treats a bad token as silently ignorable); Set returning an
// error here is used only to drive the debug-gated info string.
func (o *Options) Set(name, value string) error {
	switch strings.ToLower(name) {
	case "debug":
		o.Debug = strings.EqualFold(value, "true")
	case "hash":
		mb, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("uai: bad hash value %q: %w", value, err)
		}
		if mb < hashMin {
			mb = hashMin
		}
		if mb > hashMax {
			mb = hashMax
		}
		o.HashMB = mb
	case "nnue-path":
		o.NNUEPath = value
	case "search":
		if !isValidVariant(value) {
			return fmt.Errorf("uai: unknown search variant %q", value)
		}
		o.Search = value
	default:
		return fmt.Errorf("uai: unknown option %q", name)
	}
	return nil
}

func isValidVariant(v string) bool {
	for _, s := range SearchVariants {
		if s == v {
			return true
		}
	}
	return false
}
