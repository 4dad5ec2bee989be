package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestService_AcquireStacksBands(t *testing.T) {
	svc := NewService(DefaultBase, DefaultStep)

	first := svc.Acquire()
	second := svc.Acquire()

	assert.Equal(t, 1000, first.Overlay())
	assert.Equal(t, 1001, first.Content())
	assert.Equal(t, 1020, second.Overlay())
	assert.Equal(t, 2, svc.Active())
}

func TestService_ReleaseLowerKeepsTopOrdering(t *testing.T) {
	svc := NewService(DefaultBase, DefaultStep)

	first := svc.Acquire()
	second := svc.Acquire()
	first.Release()

	third := svc.Acquire()
	assert.Greater(t, third.Overlay(), second.Overlay())
}

func TestService_ReleaseIsIdempotent(t *testing.T) {
	svc := NewService(DefaultBase, DefaultStep)

	band := svc.Acquire()
	band.Release()
	band.Release()

	assert.Equal(t, 0, svc.Active())
	assert.Equal(t, 1000, svc.Acquire().Overlay())

	var nilBand *Band
	nilBand.Release()
}
