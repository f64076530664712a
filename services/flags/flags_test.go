package flags

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBucketIsDeterministic(t *testing.T) {
	for i := 0; i < 50; i++ {
		subject := fmt.Sprintf("wallet-%d", i)
		first := Bucket("newChart", subject)
		assert.Equal(t, first, Bucket("newChart", subject))
		assert.GreaterOrEqual(t, first, 0)
		assert.Less(t, first, 100)
	}
}

func TestBucketVariesByFlag(t *testing.T) {
	// Same subject can land in different buckets for different flags.
	varied := false
	for i := 0; i < 20 && !varied; i++ {
		subject := fmt.Sprintf("wallet-%d", i)
		varied = Bucket("flagA", subject) != Bucket("flagB", subject)
	}
	assert.True(t, varied)
}

func TestEnabledBounds(t *testing.T) {
	svc := &DefaultFlagService{Rollouts: map[string]int{
		"everyone": 100,
		"nobody":   0,
		"half":     50,
	}}

	assert.True(t, svc.Enabled("everyone", "any-subject"))
	assert.False(t, svc.Enabled("nobody", "any-subject"))
	assert.False(t, svc.Enabled("unknown", "any-subject"))

	// Same subject always resolves the same way.
	first := svc.Enabled("half", "wallet-abc")
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, svc.Enabled("half", "wallet-abc"))
	}
}

func TestEvaluateCoversAllFlags(t *testing.T) {
	svc := &DefaultFlagService{Rollouts: map[string]int{"a": 100, "b": 0}}
	out := svc.Evaluate("subject")
	assert.Len(t, out, 2)
	assert.True(t, out["a"])
	assert.False(t, out["b"])
}
