package form_test

import (
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/nfrund/atelier/internal/domain"
	"github.com/nfrund/atelier/internal/form"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_SuccessfulSubmission(t *testing.T) {
	m := form.NewSignup("")
	assert.Equal(t, form.Editing, m.State())

	require.NoError(t, m.Submit())
	assert.Equal(t, form.Submitting, m.State())

	require.NoError(t, m.Resolve(nil))
	assert.Equal(t, form.ConfirmationShown, m.State())

	t.Run("confirmation is terminal", func(t *testing.T) {
		assert.ErrorIs(t, m.Submit(), form.ErrInvalidTransition)
		assert.ErrorIs(t, m.Change(), form.ErrInvalidTransition)
		assert.Equal(t, form.ConfirmationShown, m.State())
	})
}

func TestMachine_ProviderError(t *testing.T) {
	m := form.NewSignup("")
	require.NoError(t, m.Submit())
	require.NoError(t, m.Resolve(domain.NewProviderError("User already registered", http.StatusUnprocessableEntity, nil)))

	assert.Equal(t, form.ErrorShown, m.State())
	assert.Equal(t, "User already registered", m.SubmitError())

	require.NoError(t, m.Change())
	assert.Equal(t, form.Editing, m.State())
	assert.Empty(t, m.SubmitError())
}

func TestMachine_ResubmitFromError(t *testing.T) {
	m := form.NewSignup("")
	require.NoError(t, m.Submit())
	require.NoError(t, m.Resolve(errors.New("boom")))
	require.NoError(t, m.Submit())
	assert.Equal(t, form.Submitting, m.State())
	assert.Empty(t, m.SubmitError())
}

func TestMachine_NoDoubleSubmit(t *testing.T) {
	m := form.NewSignup("")
	require.NoError(t, m.Submit())
	assert.ErrorIs(t, m.Submit(), form.ErrInvalidTransition)
	assert.ErrorIs(t, m.Change(), form.ErrInvalidTransition)
}

func TestMachine_InvalidLinkTakesPrecedence(t *testing.T) {
	m := form.NewSignup("Expired link")
	assert.Equal(t, form.InvalidLinkShown, m.State())
	assert.Equal(t, "Expired link", m.LinkError())

	assert.ErrorIs(t, m.Submit(), form.ErrInvalidTransition)
	assert.ErrorIs(t, m.Change(), form.ErrInvalidTransition)
	assert.ErrorIs(t, m.Resolve(nil), form.ErrInvalidTransition)
	assert.Equal(t, form.InvalidLinkShown, m.State())
}

func TestMachine_ResolveWithoutSubmit(t *testing.T) {
	assert.ErrorIs(t, form.NewSignup("").Resolve(nil), form.ErrInvalidTransition)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "error_shown", form.ErrorShown.String())
	assert.Equal(t, "state(42)", form.State(42).String())
}

func TestInFlight(t *testing.T) {
	f := form.NewInFlight()

	require.True(t, f.Acquire("a"))
	assert.False(t, f.Acquire("a"))
	assert.True(t, f.Acquire("b"))
	assert.True(t, f.Acquire(""), "untracked ids always pass")

	f.Release("a")
	assert.True(t, f.Acquire("a"))

	t.Run("only one concurrent acquirer wins", func(t *testing.T) {
		f := form.NewInFlight()
		var wg sync.WaitGroup
		var mu sync.Mutex
		wins := 0
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if f.Acquire("same") {
					mu.Lock()
					wins++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, wins)
	})
}

func TestParseState(t *testing.T) {
	for s := form.Editing; s <= form.InvalidLinkShown; s++ {
		got, ok := form.ParseState(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, got)
	}
	_, ok := form.ParseState("bogus")
	assert.False(t, ok)
}

func TestResume(t *testing.T) {
	t.Run("error shown is cleared by a change", func(t *testing.T) {
		m := form.Resume(form.ErrorShown)
		require.NoError(t, m.Change())
		assert.Equal(t, form.Editing, m.State())
	})

	t.Run("confirmation stays terminal", func(t *testing.T) {
		m := form.Resume(form.ConfirmationShown)
		assert.ErrorIs(t, m.Submit(), form.ErrInvalidTransition)
	})

	t.Run("transient states restart editing", func(t *testing.T) {
		assert.Equal(t, form.Editing, form.Resume(form.Submitting).State())
		assert.Equal(t, form.Editing, form.Resume(form.InvalidLinkShown).State())
	})
}
