package driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWait_UntilSatisfied(t *testing.T) {
	handle := newFakeHandle()
	wait := NewWait(handle, time.Second).WithInterval(5 * time.Millisecond)

	calls := 0
	err := wait.Until(context.Background(), func(h Handle) (bool, error) {
		calls++
		return calls == 3, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestWait_UntilTimeout(t *testing.T) {
	wait := NewWait(newFakeHandle(), 30*time.Millisecond).WithInterval(5 * time.Millisecond)

	start := time.Now()
	err := wait.Until(context.Background(), func(h Handle) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, ErrWaitTimeout)
	assert.Less(t, time.Since(start), time.Second)
}

func TestWait_UntilConditionError(t *testing.T) {
	wait := NewWait(newFakeHandle(), time.Second).WithInterval(5 * time.Millisecond)
	boom := errors.New("boom")

	err := wait.Until(context.Background(), func(h Handle) (bool, error) {
		return false, boom
	})

	assert.ErrorIs(t, err, boom)
}

func TestWait_UntilContextCancelled(t *testing.T) {
	wait := NewWait(newFakeHandle(), time.Minute).WithInterval(5 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := wait.Until(ctx, func(h Handle) (bool, error) {
		return false, nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestWait_ForElement(t *testing.T) {
	handle := newFakeHandle()
	handle.elements["input#q"] = &fakeElement{text: "query"}
	handle.appearAfter["input#q"] = 2

	wait := NewWait(handle, time.Second).WithInterval(5 * time.Millisecond)
	el, err := wait.ForElement(context.Background(), "input#q")
	require.NoError(t, err)

	text, err := el.Text()
	require.NoError(t, err)
	assert.Equal(t, "query", text)
	assert.Equal(t, 3, handle.lookups["input#q"])
}

func TestWait_ForElementTimeout(t *testing.T) {
	wait := NewWait(newFakeHandle(), 20*time.Millisecond).WithInterval(5 * time.Millisecond)

	_, err := wait.ForElement(context.Background(), "#missing")
	assert.ErrorIs(t, err, ErrWaitTimeout)
}

func TestWait_ForElementOtherErrorStops(t *testing.T) {
	handle := newFakeHandle()
	invalid := errors.New("invalid selector")
	handle.failOn["find ::bad"] = invalid

	wait := NewWait(handle, time.Second).WithInterval(5 * time.Millisecond)
	_, err := wait.ForElement(context.Background(), "::bad")

	assert.ErrorIs(t, err, invalid)
	assert.Equal(t, 1, handle.lookups["::bad"])
}

func TestURLConditions(t *testing.T) {
	handle := newFakeHandle()
	handle.url = "https://accounts.example.com/v3/signin"

	ok, err := URLHasPrefix("https://accounts.example.com/")(handle)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = URLLacksPrefix("https://www.example.com/sorry/", "https://accounts.example.com/v")(handle)
	require.NoError(t, err)
	assert.False(t, ok)

	handle.url = "https://mail.example.com/"
	ok, err = URLLacksPrefix("https://www.example.com/sorry/", "https://accounts.example.com/v")(handle)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_Close(t *testing.T) {
	var nilSession *Session
	assert.NoError(t, nilSession.Close())

	handle := newFakeHandle()
	session := &Session{Handle: handle}
	require.NoError(t, session.Close())
	assert.True(t, handle.quit)
}
