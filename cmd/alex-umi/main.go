// Command alex-umi is a thin stdin/stdout loop over internal/umi: it
// tokenizes commands and prints results, keeping internal/umi itself free
// of any I/O.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/KEY271/alex/internal/umi"
)

var cpuProfile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Parse()

	if *cpuProfile != "" {
		fmt.Fprintf(os.Stderr, "info string cpu profiling is not supported in this build\n")
	}

	s := umi.NewSession()
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "umi":
			fmt.Println(s.Handshake())
		case "isready":
			fmt.Println(s.IsReady())
		case "uminewgame":
			s.NewGame()
		case "position":
			handlePosition(s, args)
		case "go":
			handleGo(s, args)
		case "perft":
			handlePerft(s, args)
		case "quit":
			return
		default:
			fmt.Printf("info string unrecognized command %q\n", cmd)
		}
	}
}

func handlePosition(s *umi.Session, args []string) {
	if len(args) == 0 {
		fmt.Println("info string position: missing argument")
		return
	}

	movesIdx := -1
	for i, a := range args {
		if a == "moves" {
			movesIdx = i
			break
		}
	}
	var moves []string
	if movesIdx >= 0 {
		moves = args[movesIdx+1:]
	}

	var err error
	if args[0] == "startpos" {
		err = s.SetPositionStart(moves)
	} else if args[0] == "mfen" {
		end := len(args)
		if movesIdx >= 0 {
			end = movesIdx
		}
		mfenFields := strings.Join(args[1:end], " ")
		err = s.SetPositionMfen(mfenFields, moves)
	} else {
		fmt.Println("info string position: expected 'startpos' or 'mfen'")
		return
	}
	if err != nil {
		fmt.Printf("info string %v\n", err)
	}
}

func handleGo(s *umi.Session, args []string) {
	seconds := 1.0
	if len(args) > 0 {
		if v, err := strconv.ParseFloat(args[0], 64); err == nil {
			seconds = v
		}
	}
	res := s.Go(seconds)
	for _, info := range res.Info {
		fmt.Printf("info depth %d score cp %d\n", info.Depth, info.Score)
	}
	fmt.Printf("bestmove %s\n", res.BestMfn)
}

func handlePerft(s *umi.Session, args []string) {
	if len(args) == 0 {
		fmt.Println("info string perft: missing depth")
		return
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil {
		fmt.Printf("info string perft: invalid depth %q\n", args[0])
		return
	}
	debug := len(args) > 1 && args[1] == "debug"

	total, entries := s.Perft(depth, debug)
	for _, e := range entries {
		fmt.Printf("%v: %d\n", e.Move, e.Nodes)
	}
	fmt.Printf("perft %d: %d\n", depth, total)
}
