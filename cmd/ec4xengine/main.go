// Command ec4xengine is the engine's CLI harness (SPEC_FULL.md §2.5):
// it loads a Config, a GameState, and a batch of per-house
// CommandPackets from JSON files, calls engine.ResolveTurn once, and
// writes the resulting TurnResult back out as JSON.
//
// Grounded on the teacher's cmd/oglike_server/main.go, which parses
// flags, builds a logger and app metadata, and starts an HTTP listen
// loop; this harness keeps the flag/logger/metadata setup but replaces
// the listen loop with a single load-resolve-dump pass, since the
// engine has no transport of its own (spec §1).
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/ec4x/engine/internal/config"
	"github.com/ec4x/engine/internal/engine"
	"github.com/ec4x/engine/internal/state"
	"github.com/ec4x/engine/pkg/arguments"
	"github.com/ec4x/engine/pkg/logger"
)

func main() {
	configFile := flag.String("config", "engine", "name (without extension) of the engine configuration file")
	statePath := flag.String("state", "", "path to the input GameState JSON file")
	commandsPath := flag.String("commands", "", "path to the input []CommandPacket JSON file")
	outPath := flag.String("out", "", "path to write the resulting TurnResult JSON (stdout if empty)")
	seed := flag.Int64("seed", 1, "deterministic RNG seed for this resolve_turn call")
	flag.Parse()

	meta := arguments.Parse(*configFile)
	runID := uuid.New().String()

	log := logger.NewStdLogger(meta.InstanceID, meta.PublicIPv4)
	log.Trace(logger.Notice, "main", fmt.Sprintf("starting resolve_turn run %s", runID))

	if *statePath == "" || *commandsPath == "" {
		log.Trace(logger.Fatal, "main", "both -state and -commands are required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Trace(logger.Warning, "main", fmt.Sprintf("falling back to default config: %v", err))
		cfg = config.Default()
	}

	gs, err := loadGameState(*statePath, cfg)
	if err != nil {
		log.Trace(logger.Fatal, "main", fmt.Sprintf("could not load state: %v", err))
		os.Exit(1)
	}

	commands, err := loadCommands(*commandsPath)
	if err != nil {
		log.Trace(logger.Fatal, "main", fmt.Sprintf("could not load commands: %v", err))
		os.Exit(1)
	}

	result, err := engine.ResolveTurn(gs, commands, *seed)
	if err != nil {
		log.Trace(logger.Error, "main", fmt.Sprintf("resolve_turn failed: %v", err))
		os.Exit(1)
	}

	log.Trace(logger.Debug, "main", fmt.Sprintf("run %s advanced to turn %d (%d rejected commands)", runID, result.NextState.Turn, len(result.RejectedCommands)))

	if err := writeResult(*outPath, result); err != nil {
		log.Trace(logger.Fatal, "main", fmt.Sprintf("could not write result: %v", err))
		os.Exit(1)
	}
}

func loadGameState(path string, cfg config.Config) (*state.GameState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, err
	}
	gs.Config = cfg
	return &gs, nil
}

func loadCommands(path string) ([]engine.CommandPacket, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var packets []engine.CommandPacket
	if err := json.Unmarshal(data, &packets); err != nil {
		return nil, err
	}
	return packets, nil
}

func writeResult(path string, result *engine.TurnResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
