package notification

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRenderLetter_EscapesContent(t *testing.T) {
	html := RenderLetter("Jane Doe", "Please upload <b>OPT EAD</b>.", "Thanks")

	assert.Contains(t, html, "Hello Jane Doe,")
	assert.Contains(t, html, "Please upload &lt;b&gt;OPT EAD&lt;/b&gt;.")
	assert.Contains(t, html, "<p>Thanks</p>")
}

func TestBuildMIME(t *testing.T) {
	raw := string(buildMIME("hr@example.com", Message{To: "jdoe@example.com", ToName: "Jane", Subject: "Visa Status Update", HTMLBody: "<p>x</p>"}))

	assert.Contains(t, raw, "To: Jane <jdoe@example.com>\r\n")
	assert.Contains(t, raw, "Subject: Visa Status Update\r\n")
	assert.True(t, strings.HasSuffix(raw, "\r\n\r\n<p>x</p>"))
}

func TestLogNotifier(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	n := NewLogNotifier(zap.New(core))

	assert.NoError(t, n.Send(context.Background(), Message{To: "jdoe@example.com", Subject: "s"}))
	assert.Equal(t, 1, logs.Len())
	assert.Error(t, n.Send(context.Background(), Message{}))
}

func TestSMTPNotifier_DialFailure(t *testing.T) {
	n := NewSMTPNotifier(SMTPConfig{Host: "127.0.0.1", Port: 1}, zap.NewNop())

	err := n.Send(context.Background(), Message{To: "jdoe@example.com"})

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "connect smtp server")
}
