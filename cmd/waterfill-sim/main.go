// Command waterfill-sim runs the discrete-event weighted max-min fair
// bandwidth simulator over a topology and a flow trace, emitting
// completion records to out_file and protocol lines to stdout.
package main

import (
	"fmt"
	"os"
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lavanyaj/waterfilling/eventlog"
	"github.com/lavanyaj/waterfilling/metrics"
	"github.com/lavanyaj/waterfilling/scheduler"
	"github.com/lavanyaj/waterfilling/sink"
	"github.com/lavanyaj/waterfilling/topology"
	"github.com/lavanyaj/waterfilling/trace"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// run wires the six positional arguments (spec §6) into a Scheduler and
// drives it to completion. It returns the process exit code, isolating
// os.Exit from the resource-cleanup path below so every close happens
// before the process terminates.
func run(args []string) int {
	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "waterfill-sim: logger init: %v\n", err)

		return 1
	}
	defer log.Sync() //nolint:errcheck

	cfg, paths, err := parseArgs(args)
	if err != nil {
		log.Error("waterfill-sim: configuration error", zap.Error(err))

		return 1
	}

	linkFile, err := os.Open(paths.linkFile)
	if err != nil {
		log.Error("waterfill-sim: open link file", zap.Error(err))

		return 1
	}
	topo, err := topology.Load(linkFile, log)
	closeErr := linkFile.Close()
	if err != nil {
		log.Error("waterfill-sim: load topology", zap.Error(err))

		return 1
	}
	if closeErr != nil {
		log.Warn("waterfill-sim: close link file", zap.Error(closeErr))
	}
	topology.Describe(topo, log)

	flowFile, err := os.Open(paths.flowFile)
	if err != nil {
		log.Error("waterfill-sim: open flow file", zap.Error(err))

		return 1
	}
	defer flowFile.Close() //nolint:errcheck

	reader, err := trace.NewReader(flowFile)
	if err != nil {
		log.Error("waterfill-sim: parse trace", zap.Error(err))

		return 1
	}

	sk, err := sink.Open(paths.outFile)
	if err != nil {
		log.Error("waterfill-sim: open output sink", zap.Error(err))

		return 1
	}

	evlog := eventlog.New(os.Stdout, log)
	met := metrics.New(nil)

	sched := scheduler.New(topo, reader, sk, evlog, met, cfg, log)
	reason, runErr := sched.Run()

	closeErr = multierr.Append(sk.Close(), evlog.Flush())
	if closeErr != nil {
		log.Warn("waterfill-sim: resource cleanup", zap.Error(closeErr))
	}

	if runErr != nil {
		log.Error("waterfill-sim: simulation failed", zap.Error(runErr))

		return 1
	}

	log.Info("waterfill-sim: simulation complete", zap.String("stop_reason", reason.String()))

	return 0
}

type filePaths struct {
	flowFile string
	outFile  string
	linkFile string
}

// parseArgs validates the six positional arguments of spec §6 in order:
// flow_file, out_file, link_file, min_bytes_for_priority, priority_weight,
// max_sim_time.
func parseArgs(args []string) (scheduler.Config, filePaths, error) {
	const wantArgs = 6
	if len(args) != wantArgs {
		return scheduler.Config{}, filePaths{}, fmt.Errorf(
			"usage: waterfill-sim flow_file out_file link_file min_bytes_for_priority priority_weight max_sim_time (got %d args)",
			len(args))
	}

	minBytes, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return scheduler.Config{}, filePaths{}, fmt.Errorf("min_bytes_for_priority: %w", err)
	}
	priorityWeight, err := strconv.ParseFloat(args[4], 64)
	if err != nil {
		return scheduler.Config{}, filePaths{}, fmt.Errorf("priority_weight: %w", err)
	}
	maxSimTime, err := strconv.ParseFloat(args[5], 64)
	if err != nil {
		return scheduler.Config{}, filePaths{}, fmt.Errorf("max_sim_time: %w", err)
	}

	cfg, err := scheduler.NewConfig(minBytes, priorityWeight, maxSimTime)
	if err != nil {
		return scheduler.Config{}, filePaths{}, err
	}

	return cfg, filePaths{flowFile: args[0], outFile: args[1], linkFile: args[2]}, nil
}
