package tea

import (
	"fmt"
	"strings"
)

// EffectsMode selects how the effects actor runs effect handlers.
type EffectsMode string

const (
	// EffectsSequential runs one handler at a time on the effects actor.
	EffectsSequential EffectsMode = "sequential"
	// EffectsConcurrent runs every handler on its own goroutine.
	EffectsConcurrent EffectsMode = "concurrent"
	// EffectsPartitioned serialises effects that share a PartitionKey and
	// runs different keys concurrently.
	EffectsPartitioned EffectsMode = "partitioned"
)

func ParseEffectsMode(s string) (EffectsMode, error) {
	switch mode := EffectsMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case "":
		return EffectsSequential, nil
	case EffectsSequential, EffectsConcurrent, EffectsPartitioned:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown effects mode %q", s)
	}
}

func (m *EffectsMode) UnmarshalText(text []byte) error {
	mode, err := ParseEffectsMode(string(text))
	if err != nil {
		return err
	}
	*m = mode
	return nil
}

func (m EffectsMode) String() string {
	return string(m)
}

type EffectsConfig struct {
	Mode EffectsMode `yaml:"mode"`
	// Workers caps in-flight handlers in concurrent mode (0 = unbounded) and
	// sets the number of partitions in partitioned mode (default: 1).
	Workers int `yaml:"workers"`
	// BufferSize is the queue length of each partition (default: 1).
	BufferSize int `yaml:"buffer_size"`
}

// NewEffectsConfig returns a config with defaults filled in.
func NewEffectsConfig(mode EffectsMode, workers, bufferSize int) EffectsConfig {
	return EffectsConfig{
		Mode:       mode,
		Workers:    workers,
		BufferSize: bufferSize,
	}.normalized()
}

func (c EffectsConfig) normalized() EffectsConfig {
	if c.Mode == "" {
		c.Mode = EffectsSequential
	}
	if c.BufferSize <= 0 {
		c.BufferSize = 1
	}
	if c.Workers < 0 {
		c.Workers = 0
	}
	if c.Mode == EffectsPartitioned && c.Workers == 0 {
		c.Workers = 1
	}
	return c
}
