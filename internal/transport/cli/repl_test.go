package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sandevgo/campusbot/internal/config"
	"github.com/sandevgo/campusbot/internal/service/answer"
	"github.com/sandevgo/campusbot/internal/service/history"
)

func testREPL(input string) (*REPL, *bytes.Buffer) {
	svcCfg := &config.ServiceConfig{Enabled: true, MaxTokens: 2000, Temperature: 0.7}
	gen := answer.NewGenerator(svcCfg, nil, nil, history.NewStore(), 5)

	r := NewREPL(gen)
	out := &bytes.Buffer{}
	r.in = strings.NewReader(input)
	r.out = out
	return r, out
}

func TestREPLAnswersAndQuits(t *testing.T) {
	r, out := testREPL("你好\n/quit\n")

	require.NoError(t, r.Start(context.Background()))

	printed := out.String()
	assert.Contains(t, printed, "[general")
	assert.Equal(t, 1, len(r.gen.Store().History()))
}

func TestREPLHistoryCommand(t *testing.T) {
	r, out := testREPL("你好\n/history\n/clear\n/quit\n")

	require.NoError(t, r.Start(context.Background()))

	printed := out.String()
	assert.Contains(t, printed, "Q: ")
	assert.Contains(t, printed, "对话历史已清空")
	assert.Empty(t, r.gen.Store().History())
}

func TestREPLEOF(t *testing.T) {
	r, _ := testREPL("")
	require.NoError(t, r.Start(context.Background()))
}
