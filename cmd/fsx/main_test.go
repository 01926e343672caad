package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ideamans/go-l10n"
	"github.com/spf13/cobra"

	"fsx/internal/config"
)

// execute runs the root command in a fresh working directory with isolated
// config and data directories, and returns stdout.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	strict, verbose = false, false
	if f := writeCmd.Flags().Lookup("text"); f != nil {
		f.Value.Set("")
		f.Changed = false
	}

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return out.String(), err
}

func setupEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("FSX_HOME", filepath.Join(home, "data"))
	t.Setenv("FSX_CONFIG_PATH", filepath.Join(home, "fsx.toml"))

	work := t.TempDir()
	t.Chdir(work)
	return work
}

func TestCreateCommand(t *testing.T) {
	work := setupEnv(t)

	out, err := execute(t, "", "create")
	if err != nil {
		t.Fatalf("create error = %v", err)
	}
	want := l10n.F("File name: %s", config.DefaultCreatePath) + "\n" + l10n.F("Path: %s", config.DefaultCreatePath) + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
	if _, err := os.Stat(filepath.Join(work, config.DefaultCreatePath)); err != nil {
		t.Errorf("default file not created: %v", err)
	}

	out, err = execute(t, "", "create")
	if err != nil {
		t.Fatalf("second create error = %v", err)
	}
	if out != l10n.T("File already exists...")+"\n" {
		t.Errorf("second output = %q", out)
	}
}

func TestCreateCommand_FailureExitStatus(t *testing.T) {
	setupEnv(t)
	missing := filepath.Join("missing", "novo.txt")

	out, err := execute(t, "", "create", missing)
	if err != nil {
		t.Errorf("create without --strict error = %v, want nil", err)
	}
	if out != l10n.T("Error creating the file...")+"\n" {
		t.Errorf("output = %q", out)
	}

	_, err = execute(t, "", "--strict", "create", missing)
	if !errors.Is(err, errOperationFailed) {
		t.Errorf("create --strict error = %v, want errOperationFailed", err)
	}
}

func TestExistsCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "exists", "novo.txt")
	if err != nil {
		t.Fatalf("exists error = %v", err)
	}
	if !strings.HasSuffix(out, l10n.T("File already exists.")+"\n") {
		t.Errorf("output = %q", out)
	}
	if !strings.Contains(out, l10n.F("File name: %s", "novo.txt")) {
		t.Errorf("output = %q, want created file name", out)
	}
}

func TestWriteReadCommands(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "write")
	if err != nil {
		t.Fatalf("write error = %v", err)
	}
	if out != "" {
		t.Errorf("write output = %q, want empty", out)
	}

	out, err = execute(t, "", "read")
	if err != nil {
		t.Fatalf("read error = %v", err)
	}
	if out != config.DefaultLine+"\n" {
		t.Errorf("read output = %q, want %q", out, config.DefaultLine+"\n")
	}

	if _, err := execute(t, "", "write", "--text", "outra linha"); err != nil {
		t.Fatalf("write --text error = %v", err)
	}
	out, _ = execute(t, "", "read")
	if out != "outra linha\n" {
		t.Errorf("read after --text = %q", out)
	}
}

func TestReadCommand_Missing(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "read", "nope.txt")
	if err != nil {
		t.Fatalf("read error = %v", err)
	}
	if out != l10n.T("An error occurred...")+"\n" {
		t.Errorf("output = %q", out)
	}
}

func TestPermsCommand_Missing(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "perms", "nope.txt")
	if err != nil {
		t.Fatalf("perms error = %v", err)
	}
	want := l10n.T("The file cannot be read.") + "\n" + l10n.T("The file cannot be written.") + "\n"
	if out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestClassifyCommand(t *testing.T) {
	work := setupEnv(t)
	if err := os.Mkdir(filepath.Join(work, "docs"), 0755); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		stdin string
		want  string
	}{
		{name: "directory", stdin: "docs\n", want: l10n.T("You entered the name of a directory.")},
		{name: "empty input", stdin: "", want: l10n.T("No name was entered.")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := execute(t, tt.stdin, "classify")
			if err != nil {
				t.Fatalf("classify error = %v", err)
			}
			if !strings.HasPrefix(out, l10n.T("Enter a file/directory name: ")) {
				t.Errorf("output = %q, want prompt first", out)
			}
			if !strings.Contains(out, tt.want) {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
		})
	}
}

func TestHistoryCommand(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "history")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	if out != l10n.T("No runs recorded.")+"\n" {
		t.Errorf("empty history output = %q", out)
	}

	if _, err := execute(t, "", "create"); err != nil {
		t.Fatalf("create error = %v", err)
	}
	if _, err := execute(t, "", "read", "nope.txt"); err != nil {
		t.Fatalf("read error = %v", err)
	}

	out, err = execute(t, "", "history", "-n", "1")
	if err != nil {
		t.Fatalf("history error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], "ReadLines") || !strings.Contains(lines[0], "error") {
		t.Errorf("history -n 1 = %q", out)
	}
}

func TestConfigCommands(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "", "config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if !strings.Contains(out, os.Getenv("FSX_CONFIG_PATH")) {
		t.Errorf("config init output = %q", out)
	}

	if _, err := execute(t, "", "config", "init"); err == nil {
		t.Error("second config init expected error")
	}

	out, err = execute(t, "", "config", "list")
	if err != nil {
		t.Fatalf("config list error = %v", err)
	}
	if !strings.Contains(out, `create_path = "novo.txt"`) {
		t.Errorf("config list output = %q", out)
	}
}

func TestPathArg(t *testing.T) {
	if got := pathArg(nil, "novo.txt"); got != "novo.txt" {
		t.Errorf("pathArg(nil) = %q", got)
	}
	if got := pathArg([]string{"other.txt"}, "novo.txt"); got != "other.txt" {
		t.Errorf("pathArg(other) = %q", got)
	}
}

func TestExercisesRunWithUnusableHome(t *testing.T) {
	work := setupEnv(t)

	// FSX_HOME points at a regular file, so neither the history nor the log can be opened.
	home := filepath.Join(t.TempDir(), "home")
	if err := os.WriteFile(home, []byte("not a directory"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("FSX_HOME", home)

	out, err := execute(t, "", "create")
	if err != nil {
		t.Fatalf("create error = %v, want nil", err)
	}
	if !strings.Contains(out, l10n.F("File name: %s", config.DefaultCreatePath)) {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(filepath.Join(work, config.DefaultCreatePath)); err != nil {
		t.Errorf("default file not created: %v", err)
	}

	if _, err := execute(t, "", "history"); err == nil {
		t.Error("history expected error when the run history is unavailable")
	}
}

func TestBadConfigFails(t *testing.T) {
	work := setupEnv(t)
	if err := os.WriteFile(os.Getenv("FSX_CONFIG_PATH"), []byte("this is not toml ["), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := execute(t, "", "create"); err == nil {
		t.Error("create expected error for an invalid config file")
	}
	if _, err := os.Stat(filepath.Join(work, config.DefaultCreatePath)); !os.IsNotExist(err) {
		t.Errorf("file should not be created with a broken config, stat err = %v", err)
	}
}

func TestInteractive(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "stdin")
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	tests := []struct {
		name string
		r    io.Reader
	}{
		{name: "in-memory reader", r: strings.NewReader("docs\n")},
		{name: "regular file", r: f},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if interactive(tt.r) {
				t.Error("interactive() = true, want false")
			}
		})
	}
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

func TestCloseApp(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr string
	}{
		{name: "clean close", err: nil, wantErr: ""},
		{name: "recording failure", err: errors.New("finishing run: disk I/O error"), wantErr: "Warning: finishing run: disk I/O error\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errOut bytes.Buffer
			cmd := &cobra.Command{}
			cmd.SetErr(&errOut)

			closeApp(cmd, closerFunc(func() error { return tt.err }))
			if errOut.String() != tt.wantErr {
				t.Errorf("stderr = %q, want %q", errOut.String(), tt.wantErr)
			}
		})
	}
}
