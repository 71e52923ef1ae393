// Command autaxxnnue is the UAI entry point: it starts the protocol
// dispatcher on stdin/stdout, optionally profiling the process via
// -cpuprofile or the CPUPROFILE environment variable.
package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/kz04px/autaxxnnue/internal/uai"
)

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")

func main() {
	flag.Parse()

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	uai.New().Run()
}
