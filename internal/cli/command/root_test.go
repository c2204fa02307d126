package command

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/redislight-go/internal/telemetry/logger"
)

// runApp runs the CLI with an isolated HOME and captured writers.
func runApp(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	app := App()
	app.Reader = strings.NewReader(stdin)
	app.Writer = &out
	app.ErrWriter = &errOut
	app.ExitErrHandler = func(*cli.Context, error) {}

	err := app.Run(append([]string{"redislight"}, args...))
	return out.String(), errOut.String(), err
}

func exitCode(err error) int {
	var ec cli.ExitCoder
	if errors.As(err, &ec) {
		return ec.ExitCode()
	}
	if err != nil {
		return -1
	}
	return 0
}

func TestApp(t *testing.T) {
	app := App()

	if app.Name != "redislight" {
		t.Errorf("Name = %q, want %q", app.Name, "redislight")
	}
	if app.Usage == "" {
		t.Error("Usage should not be empty")
	}
	if app.Action == nil {
		t.Error("default action should start the REPL")
	}

	commandNames := make(map[string]bool)
	for _, cmd := range app.Commands {
		commandNames[cmd.Name] = true
	}
	for _, name := range []string{"exec", "config", "version"} {
		if !commandNames[name] {
			t.Errorf("missing required command: %s", name)
		}
	}
}

func TestApp_GlobalFlags(t *testing.T) {
	app := App()

	flagNames := make(map[string]bool)
	for _, flag := range app.Flags {
		flagNames[flag.Names()[0]] = true
	}

	required := []string{"config", "output", "log-level", "log-format", "prompt", "history-file", "metrics-file"}
	for _, name := range required {
		if !flagNames[name] {
			t.Errorf("missing required flag: %s", name)
		}
	}
	for name := range flagKeys {
		if !flagNames[name] {
			t.Errorf("flagKeys names unknown flag %q", name)
		}
	}
}

func TestREPLMode(t *testing.T) {
	history := filepath.Join(t.TempDir(), "history")

	out, errOut, err := runApp(t, "SET a hello\nGET a\nDEL a\nGET a\n",
		"--history-file", history, "--prompt", "")
	if err != nil {
		t.Fatalf("Run() error = %v (stderr %q)", err, errOut)
	}

	if want := "OK\nhello\n(integer) 1\n(nil)\n"; !strings.HasPrefix(out, want) {
		t.Errorf("output = %q, want prefix %q", out, want)
	}

	data, err := os.ReadFile(history)
	if err != nil {
		t.Fatalf("history not saved: %v", err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 4 {
		t.Errorf("history has %d lines, want 4", lines)
	}
}

func TestREPLMode_UnknownArgument(t *testing.T) {
	_, _, err := runApp(t, "", "bogus")
	if err == nil || !strings.Contains(err.Error(), "exec") {
		t.Errorf("Run() error = %v, want hint about exec", err)
	}
}

func TestExec(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"set with space", []string{"exec", "SET", "k", "hello world"}, "OK\n"},
		{"get missing", []string{"exec", "GET", "missing"}, "(nil)\n"},
		{"pipeline line", []string{"exec", "SET a 1 | GET a"}, "OK\n1\n"},
		{"lrange", []string{"exec", "LPUSH l a b c | LRANGE l 0 2"}, "(integer) 3\n1) c\n2) b\n3) a\n"},
		{"json output", []string{"-o", "json", "exec", "DEL", "x"}, "{\n  \"type\": \"integer\",\n  \"value\": 0\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, errOut, err := runApp(t, "", tt.args...)
			if err != nil {
				t.Fatalf("Run() error = %v (stderr %q)", err, errOut)
			}
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestExec_Failures(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStderr string
		wantCode   int
	}{
		{"invalid", []string{"exec", "BOGUS", "x"}, "(Invalid Command)", 1},
		{"wrong type", []string{"exec", "SET a 1 | LPUSH a x"}, "(error) WRONGTYPE", 1},
		{"unsupported", []string{"exec", "HSET", "h", "f", "v"}, "(Invalid Command)", 1},
		{"missing command", []string{"exec"}, "", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errOut, err := runApp(t, "", tt.args...)
			if code := exitCode(err); code != tt.wantCode {
				t.Errorf("exit code = %d (%v), want %d", code, err, tt.wantCode)
			}
			if !strings.Contains(errOut, tt.wantStderr) {
				t.Errorf("stderr = %q, want %q", errOut, tt.wantStderr)
			}
		})
	}
}

func TestMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redislight.prom")

	if _, errOut, err := runApp(t, "", "--metrics-file", path, "exec", "SET", "a", "1"); err != nil {
		t.Fatalf("Run() error = %v (stderr %q)", err, errOut)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("metrics file not written: %v", err)
	}
	for _, want := range []string{`redislight_commands_total{command="SET",status="ok"} 1`, "redislight_keys 1"} {
		if !strings.Contains(string(data), want) {
			t.Errorf("metrics missing %q:\n%s", want, data)
		}
	}
}

func TestMetricsFile_WrittenOnFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "redislight.prom")

	_, _, err := runApp(t, "", "--metrics-file", path, "exec", "SET k")
	if exitCode(err) != 1 {
		t.Fatalf("exit code = %d, want 1", exitCode(err))
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("metrics file not written after failure: %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := runApp(t, "", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "redislight ") {
		t.Errorf("version output = %q", out)
	}

	out, _, err = runApp(t, "", "-o", "json", "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"go_version"`) {
		t.Errorf("json version output = %q", out)
	}
}

func TestConfigShow(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("repl:\n  history_size: 42\n"), 0600); err != nil {
		t.Fatal(err)
	}

	out, _, err := runApp(t, "", "--config", path, "--log-level", "error", "config", "show")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"history_size: 42", "level: error"} {
		if !strings.Contains(out, want) {
			t.Errorf("config show missing %q:\n%s", want, out)
		}
	}

	out, _, err = runApp(t, "", "--config", path, "config", "validate")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "valid") {
		t.Errorf("config validate = %q", out)
	}
	if !strings.Contains(out, "repl.history_size") || !strings.Contains(out, "from file") {
		t.Errorf("config validate should list file overrides, got %q", out)
	}
}

func TestInvalidConfig(t *testing.T) {
	_, _, err := runApp(t, "", "--output", "table", "exec", "GET", "a")
	if err == nil || !strings.Contains(err.Error(), "invalid configuration") {
		t.Errorf("Run() error = %v, want invalid configuration", err)
	}
}

func TestReloadConfig(t *testing.T) {
	orig := logger.GetLevel()
	t.Cleanup(func() { logger.SetLevel(orig) })

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0600); err != nil {
		t.Fatal(err)
	}

	rt := &appState{log: logger.Nop()}
	logger.SetLevel("warn")
	rt.reloadConfig(path)
	if got := logger.GetLevel(); got != "debug" {
		t.Errorf("level after reload = %q, want debug", got)
	}

	// An invalid file keeps the current level.
	if err := os.WriteFile(path, []byte("log:\n  level: shouting\n"), 0600); err != nil {
		t.Fatal(err)
	}
	rt.reloadConfig(path)
	if got := logger.GetLevel(); got != "debug" {
		t.Errorf("level after bad reload = %q, want debug", got)
	}
}
