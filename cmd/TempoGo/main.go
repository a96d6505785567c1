/*
 * TempoGo - chess engine core in GO
 *
 * MIT License
 *
 * Copyright (c) 2024-2026 Thomas Mertens
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// TempoGo command line entry. The engine core has no UCI surface -
// this binary exposes the perft harness over the move generation
// substrate and prints version and configuration information.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/tmertens/TempoGo/internal/config"
	"github.com/tmertens/TempoGo/internal/logging"
	"github.com/tmertens/TempoGo/internal/movegen"
	"github.com/tmertens/TempoGo/internal/position"
	"github.com/tmertens/TempoGo/internal/search"
)

const version = "1.0.0"

var out = message.NewPrinter(language.English)

func main() {
	versionInfo := flag.Bool("version", false, "prints version and exits")
	configFile := flag.String("config", "./config.toml", "path to configuration settings file")
	logLvl := flag.String("loglvl", "", "standard log level\n(critical|error|warning|notice|info|debug)")
	fen := flag.String("fen", position.StartFen, "fen for perft")
	perft := flag.Int("perft", 0, "runs perft with the given depth on the position given with -fen")
	parallel := flag.Bool("parallel", false, "runs perft with parallel root move workers")
	cpuProfile := flag.Bool("cpuprofile", false, "writes a cpu profile to the working directory")
	flag.Parse()

	if *versionInfo {
		printVersionInfo()
		return
	}

	// the config file needs to be set before config.Setup() is
	// called - otherwise the default path is used
	config.ConfFile = *configFile
	config.Setup()

	// overwrite the configured log level with the cmd line option
	if lvl, found := config.LogLevels[*logLvl]; found {
		config.LogLevel = lvl
	}

	// re-apply the log level to the package loggers which were
	// created before main() ran
	log := logging.GetLog()

	if *cpuProfile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	if *perft > 0 {
		p, err := position.NewPositionFen(*fen)
		if err != nil {
			log.Errorf("invalid fen: %s", *fen)
			os.Exit(1)
		}
		runPerft(p, *perft, *parallel)
		return
	}

	// without an action show version, configuration and the
	// configured worker pool
	printVersionInfo()
	fmt.Println(config.Settings.String())
	pool := &search.WorkUnitPool{}
	pool.Init()
	fmt.Println(pool.String())
	pool.Exit()
}

func runPerft(p *position.Position, depth int, parallel bool) {
	for d := 1; d <= depth; d++ {
		start := time.Now()
		var nodes int64
		if parallel {
			nodes = movegen.PerftParallel(p, d)
		} else {
			nodes = movegen.Perft(p, d)
		}
		elapsed := time.Since(start)
		nps := int64(0)
		if elapsed.Nanoseconds() > 0 {
			nps = nodes * int64(time.Second) / elapsed.Nanoseconds()
		}
		out.Printf("Perft %2d: %16d nodes  %9d ms  %12d nps\n",
			d, nodes, elapsed.Milliseconds(), nps)
	}
}

func printVersionInfo() {
	fmt.Printf("TempoGo %s\n", version)
	fmt.Printf("Environment:\n")
	fmt.Printf("  Using GO version %s\n", runtime.Version())
	fmt.Printf("  Running %s using %s as OS\n", runtime.GOARCH, runtime.GOOS)
	fmt.Printf("  Number of CPU: %d\n", runtime.NumCPU())
}
