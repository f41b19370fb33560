// Command credittunnel runs one simulation of the direct and tunneled
// packet-delivery topologies and prints a duty-cycle report. There is no
// command-line flag surface: the run uses a fixed default configuration,
// in keeping with this system's scope (no CLI argument parsing).
package main

import (
	"fmt"
	"log"

	"github.com/sarchlab/credittunnel/config"
	"github.com/sarchlab/credittunnel/engine"
	"github.com/sarchlab/credittunnel/simulation"
)

func main() {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	run := simulation.New(cfg)

	freq := engine.Freq(cfg.ClockFreqHz)
	totalCycles := int(freq.Cycle(engine.VTimeInSec(cfg.SimTimeUs * 1e-6)))

	run.Run(totalCycles)

	fmt.Printf("direct:   %d packets delivered\n", len(run.DirectPopped()))
	fmt.Printf("tunneled: %d packets delivered\n", len(run.TunneledPopped()))
	fmt.Print(run.Monitor.Report())
}
