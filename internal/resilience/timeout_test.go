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
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestWithTimeoutCompletes(t *testing.T) {
	err := WithTimeout(context.Background(), time.Second, zap.NewNop(), func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}

func TestWithTimeoutPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := WithTimeout(context.Background(), time.Second, zap.NewNop(), func(ctx context.Context) error {
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped boom, got %v", err)
	}
}

func TestWithTimeoutExpires(t *testing.T) {
	err := WithTimeout(context.Background(), 20*time.Millisecond, zap.NewNop(), func(ctx context.Context) error {
		select {
		case <-time.After(time.Second):
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})

	var serviceErr *ServiceError
	if !AsServiceError(err, &serviceErr) {
		t.Fatalf("expected a ServiceError, got %v", err)
	}
	if serviceErr.Code != ErrorCodeTimeout {
		t.Errorf("expected timeout code, got %s", serviceErr.Code)
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected deadline exceeded in the chain")
	}
}

func TestWithTimeoutNilLogger(t *testing.T) {
	err := WithTimeout(context.Background(), time.Second, nil, func(ctx context.Context) error {
		return nil
	})
	if err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
}
