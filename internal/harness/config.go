// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package harness

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is wrapped by every error Config.Validate returns.
var ErrInvalidConfig = errors.New("harness: invalid config")

// Config describes one producer/consumer run.
type Config struct {
	// Messages is the total number of tokens pushed across all producers.
	// It must divide evenly by Producers.
	Messages int

	Producers int
	Consumers int

	// Timeout bounds the whole run. Zero means no bound beyond the parent
	// context.
	Timeout time.Duration

	// Jitter makes each operation yield the processor with probability
	// 1/Jitter, shaking up interleavings between runs. Zero disables it.
	Jitter uint32
}

// Validate reports whether c describes a runnable workload.
func (c Config) Validate() error {
	switch {
	case c.Producers < 1:
		return fmt.Errorf("%w: producers must be >= 1, got %d", ErrInvalidConfig, c.Producers)
	case c.Consumers < 1:
		return fmt.Errorf("%w: consumers must be >= 1, got %d", ErrInvalidConfig, c.Consumers)
	case c.Messages < c.Producers:
		return fmt.Errorf("%w: messages (%d) must be >= producers (%d)", ErrInvalidConfig, c.Messages, c.Producers)
	case c.Messages%c.Producers != 0:
		return fmt.Errorf("%w: messages (%d) must divide by producers (%d)", ErrInvalidConfig, c.Messages, c.Producers)
	case c.Timeout < 0:
		return fmt.Errorf("%w: negative timeout %v", ErrInvalidConfig, c.Timeout)
	}
	return nil
}
