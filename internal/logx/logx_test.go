package logx

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
)

// captureStdout runs fn while capturing os.Stdout output and returns it as string.
func captureStdout(fn func()) string {
	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w
	defer func() { os.Stdout = old }()
	fn()
	_ = w.Close()
	var buf bytes.Buffer
	_, _ = io.Copy(&buf, r)
	_ = r.Close()
	return buf.String()
}

func TestPrettyZHLabels(t *testing.T) {
	out := captureStdout(func() {
		Init("debug", "pretty", "zh-CN", "never")
		Infof("hello %s", "world")
	})
	if !strings.Contains(out, "[信息]") || !strings.Contains(out, "hello world") {
		t.Fatalf("expect zh label and message, got: %q", out)
	}
}

func TestPrettyENLabels(t *testing.T) {
	out := captureStdout(func() {
		Init("debug", "pretty", "en", "never")
		Warnf("careful")
	})
	if !strings.Contains(out, "[WARN]") {
		t.Fatalf("expect en label, got: %q", out)
	}
}

func TestLevelFiltering(t *testing.T) {
	out := captureStdout(func() {
		Init("warn", "pretty", "zh-CN", "never")
		Infof("should not print")
		Warnf("warn on")
	})
	if strings.Contains(out, "should not print") {
		t.Fatalf("info should be filtered when level=warn")
	}
	if !strings.Contains(out, "[警告]") {
		t.Fatalf("expect warn label present")
	}
}

func TestJSONFormat(t *testing.T) {
	out := captureStdout(func() {
		Init("info", "json", "", "never")
		Infof("structured")
	})
	if !strings.Contains(out, `"msg":"structured"`) {
		t.Fatalf("expect json output, got: %q", out)
	}
}
