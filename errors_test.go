package samizdat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTryEval_recoversFatalIntoError(t *testing.T) {
	Bootstrap()
	undefinedVar := testVarRef(symbolFromString("tryEvalUndefined"))
	result, err := TryEval(nil, Translate(undefinedVar))
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestTryCall_recoversArityMismatchIntoError(t *testing.T) {
	Bootstrap()
	b := MakeBuiltin(1, 1, func(state Value, args []Value) Value { return args[0] }, nil, "identity")
	result, err := TryCall(b, nil)
	require.Error(t, err)
	assert.Nil(t, result)

	result, err = TryCall(b, []Value{IntFromZint(9)})
	require.NoError(t, err)
	assert.Equal(t, IntFromZint(9), result)
}
