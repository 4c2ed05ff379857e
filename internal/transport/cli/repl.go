package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sandevgo/campusbot/internal/core"
	"github.com/sandevgo/campusbot/internal/service/answer"
	"github.com/sandevgo/campusbot/pkg/conv"
	"github.com/sandevgo/campusbot/pkg/log"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	replyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	metaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// REPL is the terminal front end for local use. It reads a query per line
// and prints the rendered reply with topic and confidence.
type REPL struct {
	gen  *answer.Generator
	in   io.Reader
	out  io.Writer
	done chan struct{}
}

func NewREPL(gen *answer.Generator) *REPL {
	return &REPL{
		gen:  gen,
		in:   os.Stdin,
		out:  os.Stdout,
		done: make(chan struct{}),
	}
}

func (r *REPL) Start(ctx context.Context) error {
	fmt.Fprintln(r.out, promptStyle.Render(core.AppName+" "+core.AppVersion))
	fmt.Fprintln(r.out, metaStyle.Render("输入问题开始对话，/history 查看历史，/clear 清空，/quit 退出"))

	scanner := bufio.NewScanner(r.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for {
		fmt.Fprint(r.out, promptStyle.Render("> "))

		lineCh := make(chan string, 1)
		go func() {
			if scanner.Scan() {
				lineCh <- scanner.Text()
				return
			}
			close(lineCh)
		}()

		select {
		case <-ctx.Done():
			return nil
		case <-r.done:
			return nil
		case line, ok := <-lineCh:
			if !ok {
				return scanner.Err()
			}
			if r.dispatch(ctx, strings.TrimSpace(line)) {
				return nil
			}
		}
	}
}

func (r *REPL) Shutdown(ctx context.Context) error {
	close(r.done)
	return nil
}

// dispatch handles one input line. Returns true on /quit.
func (r *REPL) dispatch(ctx context.Context, line string) bool {
	switch line {
	case "/quit", "/exit":
		return true
	case "/history":
		r.printHistory()
		return false
	case "/clear":
		r.gen.Store().Clear()
		fmt.Fprintln(r.out, metaStyle.Render("对话历史已清空"))
		return false
	}

	ans, err := r.gen.ProcessQuery(ctx, line)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("repl query failed")
		fmt.Fprintln(r.out, errStyle.Render("服务不可用: "+err.Error()))
		return false
	}

	fmt.Fprintln(r.out, replyStyle.Render(conv.MarkdownToPlainText([]byte(ans.Reply))))
	fmt.Fprintln(r.out, metaStyle.Render(fmt.Sprintf("[%s · %.0f%% · %dms]", ans.Topic, ans.Confidence*100, ans.ProcessingTime)))
	return false
}

func (r *REPL) printHistory() {
	entries := r.gen.Store().History()
	if len(entries) == 0 {
		fmt.Fprintln(r.out, metaStyle.Render("暂无对话历史"))
		return
	}
	for _, e := range entries {
		fmt.Fprintln(r.out, promptStyle.Render("Q: ")+e.Query)
		fmt.Fprintln(r.out, replyStyle.Render("A: "+conv.MarkdownToPlainText([]byte(e.Reply))))
	}

	stats := r.gen.Store().Stats()
	fmt.Fprintln(r.out, metaStyle.Render(fmt.Sprintf("共 %d 条 · 平均置信度 %.2f", stats.ConversationCount, stats.AverageConfidence)))
}
