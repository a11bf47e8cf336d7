package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpretOpeningHours(t *testing.T) {
	t.Run("24/7は営業中", func(t *testing.T) {
		assert.True(t, InterpretOpeningHours("24/7"))
	})

	t.Run("closedを含むと閉店中", func(t *testing.T) {
		assert.False(t, InterpretOpeningHours("Mo-Su closed"))
	})

	t.Run("closedの判定は大文字小文字を無視する", func(t *testing.T) {
		assert.False(t, InterpretOpeningHours("CLOSED for renovation"))
	})

	t.Run("解釈できない文字列は営業中とみなす", func(t *testing.T) {
		assert.True(t, InterpretOpeningHours("Mo-Fr 09:00-18:00; Sa 10:00-14:00"))
	})

	t.Run("空文字列も営業中とみなす", func(t *testing.T) {
		assert.True(t, InterpretOpeningHours(""))
	})
}
