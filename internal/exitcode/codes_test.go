package exitcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestName(t *testing.T) {
	t.Run("maps every defined code to its name", func(t *testing.T) {
		cases := map[int]string{
			Success:            "Success",
			Error:              "Error",
			OperationFailed:    "OperationFailed",
			OperationCancelled: "OperationCancelled",
			OperationTimedOut:  "OperationTimedOut",
			Interrupted:        "Interrupted",
		}
		for code, want := range cases {
			assert.Equal(t, want, Name(code), "code %d", code)
		}
	})

	t.Run("returns unknown for unmapped codes", func(t *testing.T) {
		assert.Equal(t, "unknown", Name(99))
		assert.Equal(t, "unknown", Name(-1))
	})

	t.Run("interrupted follows the shell convention for SIGINT", func(t *testing.T) {
		assert.Equal(t, 130, Interrupted)
	})
}
