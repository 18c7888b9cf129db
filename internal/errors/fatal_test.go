package errors_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ugsgame/Pak7z/internal/errors"
)

func TestFatal(t *testing.T) {
	for _, v := range []struct {
		err      error
		expected bool
	}{
		{errors.Fatal("broken"), true},
		{errors.Fatalf("broken %d", 42), true},
		{errors.Wrap(errors.Fatal("wrapped"), "context"), true},
		{errors.New("error"), false},
	} {
		assert.Equal(t, v.expected, errors.IsFatal(v.err), "IsFatal for %q", v.err)
	}
}

func TestFatalMessage(t *testing.T) {
	err := errors.Fatalf("open list file %v failed", "list.txt")
	assert.Equal(t, "Fatal: open list file list.txt failed", err.Error())
}
