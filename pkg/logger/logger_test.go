package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew(t *testing.T) {
	l, err := New("tasknotes", "debug", false)

	assert.NoError(t, err)
	assert.Equal(t, "tasknotes", l.ServiceName)

	_, err = New("tasknotes", "loud", false)
	assert.Error(t, err)
}

func TestLogger_WritesThroughContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := Wrap(zap.New(core), "tasknotes")

	l.InfoWithTrace(context.Background(), "hello", zap.String("k", "v"))
	l.ErrorWithTrace(context.Background(), "boom")

	assert.Equal(t, 2, logs.Len())
	assert.Equal(t, "hello", logs.All()[0].Message)
	assert.Equal(t, "v", logs.All()[0].ContextMap()["k"])
}
