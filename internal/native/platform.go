package native

import (
	"runtime"
	"sync"

	"github.com/caarlos0/env/v11"
)

// platformConfig holds simulator topology knobs, read from the environment
// once on first use.
type platformConfig struct {
	Devices int   `env:"DEVRAND_DEVICES" envDefault:"1"`
	HeapMB  int64 `env:"DEVRAND_HEAP_MB" envDefault:"1024"`
	Workers int   `env:"DEVRAND_WORKERS" envDefault:"0"`
}

var (
	platOnce sync.Once
	plat     platformConfig
)

func loadPlatform() platformConfig {
	cfg := platformConfig{}
	if err := env.Parse(&cfg); err != nil {
		cfg = platformConfig{Devices: 1, HeapMB: 1024}
	}
	if cfg.Devices < 1 {
		cfg.Devices = 1
	}
	if cfg.HeapMB < 1 {
		cfg.HeapMB = 1
	}
	if cfg.Workers < 0 {
		cfg.Workers = 0
	}
	return cfg
}

func platform() platformConfig {
	platOnce.Do(func() { plat = loadPlatform() })
	return plat
}

// DeviceCount reports the simulated device count.
func DeviceCount() int32 {
	return int32(platform().Devices)
}

// HeapBytes reports the per-device heap capacity in bytes.
func HeapBytes() int64 {
	return platform().HeapMB << 20
}

// DefaultWorkers reports the default worker count for kernel launches:
// DEVRAND_WORKERS when set, otherwise the CPU count.
func DefaultWorkers() int {
	if w := platform().Workers; w > 0 {
		return w
	}
	return runtime.NumCPU()
}
