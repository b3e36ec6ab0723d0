package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/julianstephens/mixcheck/internal/lock"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "", Format(nil))
	assert.Equal(t, "Error: boom", Format(errors.New("boom")))
}

func TestFormatf(t *testing.T) {
	assert.Equal(t, "Error: entry abc not found", Formatf("entry %s not found", "abc"))
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"generic", errors.New("boom"), ExitFailure},
		{"invalid mix", ErrInvalidMix, ExitInvalidMix},
		{"wrapped invalid mix", fmt.Errorf("label: %w", ErrInvalidMix), ExitInvalidMix},
		{"locked", fmt.Errorf("acquire: %w", lock.ErrLocked), ExitLocked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestFatal(t *testing.T) {
	code := -1
	orig := exit
	exit = func(c int) { code = c }
	t.Cleanup(func() { exit = orig })

	Fatal(nil)
	assert.Equal(t, -1, code)

	Fatal(ErrInvalidMix)
	assert.Equal(t, ExitInvalidMix, code)

	Fatal(lock.ErrLocked)
	assert.Equal(t, ExitLocked, code)
}

func TestHint(t *testing.T) {
	assert.Contains(t, hint(lock.ErrLocked), "mixcheck doctor")
	assert.Empty(t, hint(errors.New("boom")))
}
