package hook

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type recordingHook struct {
	tryErr      error
	catchErr    error
	panicInTry  bool
	caught      error
	finallyRuns int
}

func (h *recordingHook) Try() error {
	if h.panicInTry {
		panic("try blew up")
	}
	return h.tryErr
}

func (h *recordingHook) Catch(err error) error {
	h.caught = err
	return h.catchErr
}

func (h *recordingHook) Finally() {
	h.finallyRuns++
}

func TestCallSuccess(t *testing.T) {
	h := &recordingHook{}
	assert.NoError(t, Call(h))
	assert.Equal(t, 1, h.finallyRuns)
	assert.Nil(t, h.caught)
}

func TestCallRoutesErrorThroughCatch(t *testing.T) {
	tryErr := errors.New("try failed")
	h := &recordingHook{tryErr: tryErr, catchErr: errors.New("wrapped")}

	err := Call(h)
	assert.EqualError(t, err, "wrapped")
	assert.Equal(t, tryErr, h.caught)
	assert.Equal(t, 1, h.finallyRuns)
}

func TestCallCatchCanSwallowError(t *testing.T) {
	h := &recordingHook{tryErr: errors.New("try failed")}
	assert.NoError(t, Call(h))
	assert.Equal(t, 1, h.finallyRuns)
}

func TestCallRecoversPanic(t *testing.T) {
	h := &recordingHook{panicInTry: true}
	err := Call(h)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "panic occurred")
	assert.Equal(t, 1, h.finallyRuns)
}

func TestCallNilHook(t *testing.T) {
	assert.Error(t, Call(nil))
}
