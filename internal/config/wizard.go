package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
)

// detectCheckpointDir looks for a directory next to the working directory
// that already holds checkpoint files.
func detectCheckpointDir() string {
	for _, candidate := range []string{"checkpoints", "data", "checkpoints_extraction"} {
		matches, _ := filepath.Glob(filepath.Join(candidate, "*.json"))
		if len(matches) > 0 {
			return candidate
		}
	}
	return "checkpoints"
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Welcome to annoview! Let's configure the viewer.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Viewer mode.
	modePrompt := promptui.Select{
		Label: "Select viewer mode",
		Items: []string{
			"compare: pick several checkpoint files and compare them side by side",
			"legacy:  show a single documents file",
		},
	}
	modeIdx, _, err := modePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("mode selection: %w", err)
	}
	cfg.Mode = []Mode{ModeCompare, ModeLegacy}[modeIdx]

	// 2. Document source.
	sourcePrompt := promptui.Select{
		Label: "Where do documents come from?",
		Items: []string{"local checkpoint directory", "remote annoview API"},
	}
	sourceIdx, _, err := sourcePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("source selection: %w", err)
	}

	if sourceIdx == 1 {
		urlPrompt := promptui.Prompt{
			Label:   "API base URL",
			Default: "http://localhost:5000",
			Validate: func(s string) error {
				if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
					return fmt.Errorf("must start with http:// or https://")
				}
				return nil
			},
		}
		cfg.APIURL, err = urlPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("api url: %w", err)
		}
	} else {
		dirPrompt := promptui.Prompt{
			Label:   "Checkpoint directory",
			Default: detectCheckpointDir(),
		}
		cfg.CheckpointDir, err = dirPrompt.Run()
		if err != nil {
			return nil, fmt.Errorf("checkpoint dir: %w", err)
		}
		if _, statErr := os.Stat(cfg.CheckpointDir); os.IsNotExist(statErr) {
			fmt.Printf("Note: %s does not exist yet.\n", cfg.CheckpointDir)
		}

		if cfg.Mode == ModeLegacy {
			legacyPrompt := promptui.Prompt{
				Label:   "Documents file (relative to the checkpoint directory)",
				Default: cfg.LegacyFile,
			}
			cfg.LegacyFile, err = legacyPrompt.Run()
			if err != nil {
				return nil, fmt.Errorf("legacy file: %w", err)
			}
		}
	}

	// 3. Port.
	portPrompt := promptui.Prompt{
		Label:   "Port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(path); err != nil {
		return nil, err
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	fmt.Println("Run `annoview server` to start the viewer.")

	return cfg, nil
}
