// Package uai implements the line-delimited UAI protocol (§6), the
// Ataxx analogue of UCI this engine speaks on stdin/stdout. It owns
// nothing about search or evaluation itself; it parses commands,
// drives board.Position and engine.Engine, and formats their results
// back onto the output stream.
package uai

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/kz04px/autaxxnnue/internal/board"
	"github.com/kz04px/autaxxnnue/internal/engine"
	"github.com/kz04px/autaxxnnue/internal/nnue"
)

// UAI is the protocol dispatcher: one long-lived struct reading
// stdin, owning the current position, and handing (position, limits)
// to the engine on `go` (§2's data-flow paragraph).
type UAI struct {
	opts *Options
	eng  *engine.Engine
	pos  *board.Position

	searching  atomic.Bool
	searchDone chan struct{}
}

// New returns an unstarted protocol handler with default options. The
// engine itself isn't constructed until isready triggers weight load
// (§6: "isready — Print readyok once engine is initialized").
func New() *UAI {
	return &UAI{
		opts: DefaultOptions(),
	}
}

// Run reads commands from stdin until `quit` or EOF. This is the
// protocol thread of §5's two-thread cooperative model; the engine's
// Go runs on a separate goroutine per search and is joined before the
// next one starts.
func (u *UAI) Run() {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 1<<20)

	if !u.awaitReady(scanner) {
		return
	}

	if err := u.initialize(); err != nil {
		fmt.Printf("info string fatal: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("readyok")

	u.mainLoop(scanner)
}

// awaitReady handles uai/setoption/quit before the engine is
// constructed, so nnue-path and hash can be configured before weights
// load. It returns once isready is seen, or false if stdin closed
// first.
func (u *UAI) awaitReady(scanner *bufio.Scanner) bool {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "uai":
			u.printIdentity()
		case "isready":
			return true
		case "setoption":
			u.handleSetOption(fields[1:])
		case "quit":
			os.Exit(0)
		}
	}
	return false
}

// printIdentity emits the `uai` response: id lines, option
// registrations, and the trailing uaiok (§6).
func (u *UAI) printIdentity() {
	u.opts.PrintIdentity(func(s string) { fmt.Println(s) })
}

// initialize loads the configured NNUE weights and constructs the
// engine. Weights missing or truncated is fatal (§7): the engine must
// refuse to enter the ready state.
func (u *UAI) initialize() error {
	net, _, err := nnue.LoadWeights(u.opts.NNUEPath)
	if err != nil {
		return fmt.Errorf("loading nnue weights from %q: %w", u.opts.NNUEPath, err)
	}
	u.eng = engine.New(u.opts.HashMB, net)
	if err := u.eng.SetVariant(engine.VariantName(u.opts.Search)); err != nil {
		return err
	}
	u.pos = board.StartPosition()
	return nil
}

func (u *UAI) mainLoop(scanner *bufio.Scanner) {
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "uai":
			u.printIdentity()
		case "isready":
			fmt.Println("readyok")
		case "uainewgame":
			u.handleNewGame()
		case "setoption":
			u.handleSetOption(args)
		case "position":
			u.handlePosition(args)
		case "moves":
			u.handleMoves(args)
		case "go":
			u.handleGo(args)
		case "stop":
			u.handleStop()
		case "eval":
			u.handleEval()
		case "perft":
			u.handlePerft(args)
		case "split":
			u.handleSplit(args)
		case "print", "display":
			fmt.Print(u.pos.Render())
		case "quit":
			u.handleQuit()
			return
		default:
			if u.opts.Debug {
				fmt.Printf("info unknown UAI command %q\n", cmd)
			}
		}
	}
}

func (u *UAI) handleNewGame() {
	u.joinSearch()
	u.eng.Clear()
	u.pos = board.StartPosition()
}

// handleSetOption applies `setoption name <k> value <v>`, gathering
// multi-word names/values token by token until the next name/value
// keyword.
func (u *UAI) handleSetOption(args []string) {
	var name, value strings.Builder
	reading := ""
	for _, a := range args {
		switch a {
		case "name":
			reading = "name"
		case "value":
			reading = "value"
		default:
			switch reading {
			case "name":
				if name.Len() > 0 {
					name.WriteByte(' ')
				}
				name.WriteString(a)
			case "value":
				if value.Len() > 0 {
					value.WriteByte(' ')
				}
				value.WriteString(a)
			}
		}
	}

	oldHash, oldPath := u.opts.HashMB, u.opts.NNUEPath
	if err := u.opts.Set(name.String(), value.String()); err != nil {
		if u.opts.Debug {
			fmt.Printf("info string %v\n", err)
		}
		return
	}
	if u.eng == nil {
		return
	}
	if u.opts.HashMB != oldHash {
		u.eng.Resize(u.opts.HashMB)
	}
	if u.opts.NNUEPath != oldPath {
		u.reloadNNUE()
	}
	if strings.EqualFold(name.String(), "search") {
		_ = u.eng.SetVariant(engine.VariantName(u.opts.Search))
	}
}

func (u *UAI) reloadNNUE() {
	net, _, err := nnue.LoadWeights(u.opts.NNUEPath)
	if err != nil {
		fmt.Printf("info string failed to reload nnue-path %q: %v\n", u.opts.NNUEPath, err)
		return
	}
	u.eng = engine.New(u.opts.HashMB, net)
	_ = u.eng.SetVariant(engine.VariantName(u.opts.Search))
}

// handlePosition parses `position {startpos | fen <F>} [moves ...]`.
func (u *UAI) handlePosition(args []string) {
	if len(args) == 0 {
		return
	}

	var pos *board.Position
	var rest []string

	switch args[0] {
	case "startpos":
		pos = board.StartPosition()
		rest = args[1:]
	case "fen":
		end := len(args)
		for i := 1; i < len(args); i++ {
			if args[i] == "moves" {
				end = i
				break
			}
		}
		p, err := board.FromFEN(strings.Join(args[1:end], " "))
		if err != nil {
			fmt.Printf("info string invalid fen: %v\n", err)
			return
		}
		pos = p
		rest = args[end:]
	default:
		return
	}

	u.pos = pos

	if len(rest) > 0 && rest[0] == "moves" {
		u.applyMoves(rest[1:])
	}
}

// handleMoves applies further moves to the current position (§6's
// standalone `moves` command, distinct from `position ... moves`).
func (u *UAI) handleMoves(args []string) {
	u.applyMoves(args)
}

// applyMoves plays each move in order. An illegal move in the list is
// skipped and the rest are still attempted (§7: "the offending move is
// skipped; subsequent moves are attempted; no abort").
func (u *UAI) applyMoves(tokens []string) {
	for _, tok := range tokens {
		m, err := board.ParseMove(tok)
		if err != nil || !u.isLegal(m) {
			fmt.Printf("info string illegal move %q skipped\n", tok)
			continue
		}
		u.pos.MakeMove(m)
	}
}

func (u *UAI) isLegal(m board.Move) bool {
	legal := u.pos.LegalMoves()
	for i := 0; i < legal.Len(); i++ {
		if legal.Get(i) == m {
			return true
		}
	}
	return false
}

// GoOptions holds the parsed `go` arguments (§6).
type GoOptions struct {
	Depth    int
	HasDepth bool
	Nodes    uint64
	HasNodes bool
	MoveTime time.Duration
	WTime    time.Duration
	BTime    time.Duration
	WInc     time.Duration
	BInc     time.Duration
	HasTime  bool
	Infinite bool
}

func parseGoOptions(args []string) GoOptions {
	var o GoOptions
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "depth":
			if i+1 < len(args) {
				o.Depth, _ = strconv.Atoi(args[i+1])
				o.HasDepth = true
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				o.Nodes, _ = strconv.ParseUint(args[i+1], 10, 64)
				o.HasNodes = true
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				o.MoveTime = time.Duration(ms) * time.Millisecond
				i++
			}
		case "wtime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				o.WTime = time.Duration(ms) * time.Millisecond
				o.HasTime = true
				i++
			}
		case "btime":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				o.BTime = time.Duration(ms) * time.Millisecond
				o.HasTime = true
				i++
			}
		case "winc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				o.WInc = time.Duration(ms) * time.Millisecond
				i++
			}
		case "binc":
			if i+1 < len(args) {
				ms, _ := strconv.Atoi(args[i+1])
				o.BInc = time.Duration(ms) * time.Millisecond
				i++
			}
		case "infinite":
			o.Infinite = true
		}
	}
	return o
}

func toLimits(o GoOptions) engine.Limits {
	return engine.Limits{
		Depth:    o.Depth,
		HasDepth: o.HasDepth,
		Nodes:    o.Nodes,
		HasNodes: o.HasNodes,
		MoveTime: o.MoveTime,
		WTime:    o.WTime,
		BTime:    o.BTime,
		WInc:     o.WInc,
		BInc:     o.BInc,
		HasTime:  o.HasTime,
		Infinite: o.Infinite,
	}
}

// handleGo starts a search. Per §5: the protocol thread first signals
// stop and joins any prior worker, then spawns a new one.
func (u *UAI) handleGo(args []string) {
	u.joinSearch()

	limits := toLimits(parseGoOptions(args))
	pos := u.pos.Copy()

	u.searching.Store(true)
	u.searchDone = make(chan struct{})
	done := u.searchDone

	go func() {
		defer close(done)
		defer u.searching.Store(false)
		best := u.eng.Go(pos, limits, u.sendInfo)
		fmt.Printf("bestmove %s\n", best.String())
	}()
}

// handleStop sets the cooperative stop latch; it does not block, so
// the worker's eventual `bestmove` prints asynchronously (§5's "stop
// liveness": bounded time, not synchronous completion).
func (u *UAI) handleStop() {
	if u.searching.Load() {
		u.eng.Stop()
	}
}

// joinSearch stops and waits for any in-flight search, called before
// starting a new one, on uainewgame, and on quit.
func (u *UAI) joinSearch() {
	if !u.searching.Load() {
		return
	}
	u.eng.Stop()
	<-u.searchDone
}

func (u *UAI) sendInfo(info engine.SearchInfo) {
	var b strings.Builder
	fmt.Fprintf(&b, "info depth %d seldepth %d score cp %d time %d nodes %d tthits %d hashfull %d nps %d",
		info.Depth, info.SelDepth, info.ScoreCP, info.TimeMs, info.Nodes, info.TTHits, info.HashFull, info.NPS)
	if len(info.PV) > 0 {
		b.WriteString(" pv")
		for _, m := range info.PV {
			b.WriteByte(' ')
			b.WriteString(m.String())
		}
	}
	fmt.Println(b.String())
}

func (u *UAI) handleEval() {
	score := u.eng.Evaluate(u.pos)
	fmt.Printf("info score cp %d\n", score)
}

func (u *UAI) handlePerft(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}
	start := time.Now()
	nodes := u.eng.Perft(u.pos, depth)
	elapsed := time.Since(start)
	fmt.Printf("Nodes: %d\n", nodes)
	fmt.Printf("Time: %v\n", elapsed)
	if elapsed > 0 {
		fmt.Printf("NPS: %.0f\n", float64(nodes)/elapsed.Seconds())
	}
}

func (u *UAI) handleSplit(args []string) {
	depth := 5
	if len(args) > 0 {
		depth, _ = strconv.Atoi(args[0])
	}
	entries := u.pos.Copy().Split(depth)
	var total uint64
	for _, e := range entries {
		fmt.Printf("%s: %d\n", e.Move.String(), e.Nodes)
		total += e.Nodes
	}
	fmt.Printf("Total: %d\n", total)
}

func (u *UAI) handleQuit() {
	u.joinSearch()
	os.Exit(0)
}
