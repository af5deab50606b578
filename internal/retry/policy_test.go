package retry

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/sitebuilder/internal/errors"
)

func TestDelayModes(t *testing.T) {
	cases := []struct {
		name   string
		policy Policy
		retry  int
		want   time.Duration
	}{
		{"fixed stays flat", Policy{Mode: BackoffFixed, Initial: time.Second, Max: time.Minute}, 5, time.Second},
		{"linear grows", Policy{Mode: BackoffLinear, Initial: time.Second, Max: time.Minute}, 3, 3 * time.Second},
		{"linear caps", Policy{Mode: BackoffLinear, Initial: 20 * time.Second, Max: 30 * time.Second}, 4, 30 * time.Second},
		{"exponential doubles", Policy{Mode: BackoffExponential, Initial: time.Second, Max: time.Minute}, 4, 8 * time.Second},
		{"exponential caps", Policy{Mode: BackoffExponential, Initial: time.Second, Max: 5 * time.Second}, 10, 5 * time.Second},
		{"zero retry count", Policy{Mode: BackoffLinear, Initial: time.Second, Max: time.Minute}, 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.policy.Delay(tc.retry))
		})
	}
}

func TestNewPolicyFallbacks(t *testing.T) {
	p := NewPolicy("bogus", 0, 0, -1)
	assert.Equal(t, DefaultPolicy(), p)

	p = NewPolicy(BackoffExponential, 2*time.Second, time.Second, 5)
	assert.Equal(t, BackoffExponential, p.Mode)
	assert.Equal(t, time.Second, p.Initial, "initial is clamped to max")
	assert.Equal(t, 5, p.MaxRetries)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, DefaultPolicy().Validate())
	assert.Error(t, Policy{Initial: 0, Max: time.Second}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: 0}.Validate())
	assert.Error(t, Policy{Initial: time.Second, Max: time.Second, MaxRetries: -1}.Validate())
}

func TestDoRetriesRetryableErrors(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 3}

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.PersistenceWriteFailed(fmt.Errorf("transient"))
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDoStopsOnNonRetryable(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 3}

	calls := 0
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.SectionIndexOutOfRange(9, 2)
	})
	require.Error(t, err)
	assert.Equal(t, 1, calls, "index errors are not retried")
}

func TestDoExhaustsAttempts(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Millisecond, Max: time.Millisecond, MaxRetries: 2}

	calls := 0
	cause := fmt.Errorf("still down")
	err := p.Do(context.Background(), func(context.Context) error {
		calls++
		return errors.PersistenceWriteFailed(cause)
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 3, calls, "one initial attempt plus two retries")
}

func TestDoHonorsContext(t *testing.T) {
	p := Policy{Mode: BackoffFixed, Initial: time.Hour, Max: time.Hour, MaxRetries: 3}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Do(ctx, func(context.Context) error {
		return errors.PersistenceWriteFailed(fmt.Errorf("transient"))
	})
	assert.ErrorIs(t, err, context.Canceled)
}
