// Copyright 2025 Launchpage Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultTimeoutSeconds bounds a full generation pass, including
	// every model retry.
	DefaultTimeoutSeconds = 120
)

// TimeoutFunc is a function that can be executed with a timeout
type TimeoutFunc func(ctx context.Context) error

// WithTimeout executes a function with a timeout
func WithTimeout(ctx context.Context, timeout time.Duration, logger *zap.Logger, fn TimeoutFunc) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- fn(timeoutCtx)
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Debug("Operation completed with error",
				zap.Error(err),
				zap.Duration("timeout", timeout))
		} else {
			logger.Debug("Operation completed successfully",
				zap.Duration("timeout", timeout))
		}
		return err
	case <-timeoutCtx.Done():
		logger.Warn("Operation timed out",
			zap.Duration("timeout", timeout),
			zap.Error(timeoutCtx.Err()))
		return NewTimeoutError("Operation timed out", timeoutCtx.Err())
	}
}

// WithDefaultTimeout executes a function with the default timeout
func WithDefaultTimeout(ctx context.Context, logger *zap.Logger, fn TimeoutFunc) error {
	return WithTimeout(ctx, DefaultTimeoutSeconds*time.Second, logger, fn)
}
