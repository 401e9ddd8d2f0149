package llm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"foligo-api/internal/config"
)

// flakyModel 先按脚本返回错误，随后成功
type flakyModel struct {
	errs  []error
	calls int
}

func (m *flakyModel) Generate(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	defer func() { m.calls++ }()
	if m.calls < len(m.errs) {
		return nil, m.errs[m.calls]
	}
	return schema.AssistantMessage("ok", nil), nil
}

func (m *flakyModel) Stream(_ context.Context, _ []*schema.Message, _ ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

func testRetrier(maxRetries int) *Retrier {
	return NewRetrier(&config.Config{
		LLM: config.LLMConfig{
			Retry: config.LLMRetryConfig{
				MaxRetries: maxRetries,
				Initial:    time.Millisecond,
				Max:        5 * time.Millisecond,
				Multiplier: 2.0,
			},
		},
	})
}

func TestIsTransientError(t *testing.T) {
	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{errors.New("connection reset by peer"), true},
		{errors.New("context deadline exceeded"), true},
		{errors.New("HTTP 429 Too Many Requests"), true},
		{errors.New("503 Service Unavailable"), true},
		{errors.New("502 Bad Gateway"), true},
		{errors.New("invalid api key"), false},
		{errors.New("model not found"), false},
	}
	for _, tt := range tests {
		name := "nil"
		if tt.err != nil {
			name = tt.err.Error()
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransientError(tt.err))
		})
	}
}

func TestRetrierGenerate(t *testing.T) {
	ctx := context.Background()
	messages := []*schema.Message{schema.UserMessage("hi")}

	t.Run("transient errors are retried until success", func(t *testing.T) {
		m := &flakyModel{errs: []error{
			errors.New("connection reset by peer"),
			errors.New("503 service unavailable"),
		}}
		out, err := testRetrier(3).Generate(ctx, m, messages)
		require.NoError(t, err)
		assert.Equal(t, "ok", out.Content)
		assert.Equal(t, 3, m.calls)
	})

	t.Run("non-transient error fails immediately", func(t *testing.T) {
		m := &flakyModel{errs: []error{errors.New("invalid api key")}}
		_, err := testRetrier(3).Generate(ctx, m, messages)
		require.Error(t, err)
		assert.Equal(t, 1, m.calls)
	})

	t.Run("retries exhausted returns last error", func(t *testing.T) {
		m := &flakyModel{errs: []error{
			errors.New("timeout"),
			errors.New("timeout"),
			errors.New("gateway timeout after retry"),
		}}
		_, err := testRetrier(2).Generate(ctx, m, messages)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gateway timeout")
		assert.Equal(t, 3, m.calls)
	})

	t.Run("cancelled context stops the retry loop", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()
		m := &flakyModel{errs: []error{errors.New("timeout")}}
		_, err := testRetrier(3).Generate(cancelled, m, messages)
		require.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, m.calls)
	})
}

func TestBackoffCappedAtMax(t *testing.T) {
	r := testRetrier(10)
	for attempt := 1; attempt <= 10; attempt++ {
		wait := r.backoff(attempt)
		assert.LessOrEqual(t, wait, 5*time.Millisecond, "attempt %d", attempt)
		assert.GreaterOrEqual(t, wait, time.Duration(0))
	}
}
