package osal_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kernelcore/actorrt/osal"
)

func Test_RealClock_After_Fires_When_Duration_Elapses(t *testing.T) {
	t.Parallel()

	clock := osal.RealClock{}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	select {
	case <-clock.After(ctx, time.Millisecond):
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
}

func Test_RealClock_After_Returns_When_Context_Cancelled(t *testing.T) {
	t.Parallel()

	clock := osal.RealClock{}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	select {
	case <-clock.After(ctx, time.Hour):
	case <-time.After(time.Second):
		t.Fatal("channel never closed after cancellation")
	}
}

func Test_RealClock_Now_Is_Close_To_Wall_Clock(t *testing.T) {
	t.Parallel()

	clock := osal.RealClock{}
	assert.WithinDuration(t, time.Now(), clock.Now(), time.Second)
}
