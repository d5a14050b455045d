package util

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_greaterFloat(t *testing.T) {
	assert.True(t, GreaterFloat(2.0, 1.0))
	assert.False(t, GreaterFloat(1.0, 2.0))
	assert.True(t, GreaterFloat(math.NaN(), math.Inf(1)))
	assert.False(t, GreaterFloat(math.Inf(1), math.NaN()))
	assert.False(t, GreaterFloat(math.NaN(), math.NaN()))
	assert.True(t, GreaterFloat(float32(math.NaN()), float32(3)))
}

func Test_loadStoreBytes(t *testing.T) {
	buf := make([]byte, 16)
	StoreAs(int64(-42), buf)
	StoreAs(3.5, buf[8:])
	assert.Equal(t, int64(-42), LoadAs[int64](buf))
	assert.Equal(t, 3.5, LoadAs[float64](buf[8:]))
}

func Test_faultInjection(t *testing.T) {
	boom := errors.New("boom")

	//silent while the scope is closed
	RegisterFault(FAULTS_SCOPE_PLAN, "f", func() error { return boom })
	assert.NoError(t, TriggerFault(FAULTS_SCOPE_PLAN, "f"))

	OpenFaults(FAULTS_SCOPE_PLAN)
	defer CloseFaults(FAULTS_SCOPE_PLAN)
	RegisterFault(FAULTS_SCOPE_PLAN, "f", func() error { return boom })
	assert.ErrorIs(t, TriggerFault(FAULTS_SCOPE_PLAN, "f"), boom)
	assert.NoError(t, TriggerFault(FAULTS_SCOPE_PLAN, "other"))

	CloseFaults(FAULTS_SCOPE_PLAN)
	assert.NoError(t, TriggerFault(FAULTS_SCOPE_PLAN, "f"))
}

func Test_reentryLock(t *testing.T) {
	lock := NewReentryLock()
	lock.Lock()
	lock.Lock()
	lock.Unlock()
	lock.Unlock()

	done := make(chan struct{})
	lock.Lock()
	go func() {
		lock.Lock()
		lock.Unlock()
		close(done)
	}()
	lock.Unlock()
	<-done
}
