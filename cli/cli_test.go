package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/kdlhtml/cli/cmd"
	"github.com/ardnew/kdlhtml/kdl"
	"github.com/ardnew/kdlhtml/render"
)

func TestMain(m *testing.M) {
	// Keep config and cache lookups away from the user's directories.
	home, err := os.MkdirTemp("", "kdlhtml-cli-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	os.Setenv("XDG_CACHE_HOME", filepath.Join(home, "cache"))
	os.Unsetenv(cmd.SearchPathEnv)

	code := m.Run()

	os.RemoveAll(home)
	os.Exit(code)
}

type exitCode int

// testRun runs the CLI with in-memory streams. A kong exit is reported as a
// non-nil code.
func testRun(t *testing.T, stdin string, args ...string) (out, errOut string, code *int, err error) {
	t.Helper()

	var stdout, stderr bytes.Buffer

	streams := &cmd.Streams{
		In:  strings.NewReader(stdin),
		Out: &stdout,
		Err: &stderr,
	}

	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}

			n := int(c)
			code = &n
			out, errOut = stdout.String(), stderr.String()
		}
	}()

	err = run(t.Context(), func(c int) { panic(exitCode(c)) }, streams, args...)

	return stdout.String(), stderr.String(), nil, err
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()

	for name, data := range files {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}

		if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRun_RenderFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.kdl": strings.Join([]string{
			`!doctype html`,
			`html {`,
			`	@include "parts/head.kdl" page="Home"`,
			`	body {`,
			`		h1 "${site}"`,
			`	}`,
			`}`,
		}, "\n"),
		"parts/head.kdl": "head {\n\ttitle \"${page} - ${site}\"\n}\n",
	})

	out, _, _, err := testRun(t, "", "-b", "site=Docs", filepath.Join(dir, "index.kdl"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := strings.Join([]string{
		"<!DOCTYPE html>",
		"<html>",
		"\t<head>",
		"\t\t<title>Home - Docs</title>",
		"\t</head>",
		"\t<body>",
		"\t\t<h1>Docs</h1>",
		"\t</body>",
		"</html>",
		"",
	}, "\n")

	if out != want {
		t.Errorf("output mismatch:\ngot:\n%s\nwant:\n%s", out, want)
	}
}

func TestRun_Stdin(t *testing.T) {
	out, _, _, err := testRun(t, `p "${x}"`, "render", "--bind", "x=1")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out != "<p>1</p>\n" {
		t.Errorf("output = %q", out)
	}

	out, _, _, err = testRun(t, `p "${x}"`, "-b", "x=2", "-")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out != "<p>2</p>\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_OutputAndDepfile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"index.kdl": "main {\n\t@include \"body.html\"\n}\n",
		"body.html": "<p>hi</p>\n",
	})

	index := filepath.Join(dir, "index.kdl")
	output := filepath.Join(dir, "out", "index.html")
	depfile := filepath.Join(dir, "index.d")

	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		t.Fatal(err)
	}

	out, _, _, err := testRun(t, "", "-o", output, "-d", depfile, index)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out != "" {
		t.Errorf("expected nothing on stdout, got %q", out)
	}

	html, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	if string(html) != "<main>\n\t<p>hi</p>\n</main>\n" {
		t.Errorf("output file = %q", html)
	}

	dep, err := os.ReadFile(depfile)
	if err != nil {
		t.Fatal(err)
	}

	want := output + ": \\\n " + index + " \\\n " + filepath.Join(dir, "body.html") + "\n"
	if string(dep) != want {
		t.Errorf("depfile = %q, want %q", dep, want)
	}
}

func TestRun_DepfileStdoutTarget(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.kdl": `p "x"`})

	index := filepath.Join(dir, "index.kdl")
	depfile := filepath.Join(dir, "index.d")

	if _, _, _, err := testRun(t, "", "--depfile", depfile, index); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	dep, err := os.ReadFile(depfile)
	if err != nil {
		t.Fatal(err)
	}

	if want := render.DefaultDepTarget + ": \\\n " + index + "\n"; string(dep) != want {
		t.Errorf("depfile = %q, want %q", dep, want)
	}
}

func TestRun_FailureWritesNothing(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"index.kdl": "p \"ok\"\np \"${missing}\"\n"})

	output := filepath.Join(dir, "index.html")
	depfile := filepath.Join(dir, "index.d")

	out, _, _, err := testRun(t, "", "-o", output, "-d", depfile, filepath.Join(dir, "index.kdl"))
	if !errors.Is(err, render.ErrUnboundVariable) {
		t.Fatalf("expected ErrUnboundVariable, got %v", err)
	}

	if out != "" {
		t.Errorf("expected no output, got %q", out)
	}

	for _, path := range []string{output, depfile} {
		if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
			t.Errorf("%s should not exist: %v", path, err)
		}
	}
}

func TestRun_MissingInput(t *testing.T) {
	_, _, _, err := testRun(t, "", filepath.Join(t.TempDir(), "nope.kdl"))
	if !errors.Is(err, render.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
}

func TestRun_InvalidBinding(t *testing.T) {
	_, _, code, err := testRun(t, `p "x"`, "-b", "novalue")
	if err == nil && code == nil {
		t.Fatal("expected a usage error")
	}
}

func TestRun_BindingPrecedence(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"vars.env":  "KDLHTML_TEST_A=file\nKDLHTML_TEST_B=file\n",
		"vars.yaml": "site:\n  name: Docs\n  tags: [a, b]\n",
	})

	t.Setenv("KDLHTML_TEST_A", "env")
	t.Setenv("KDLHTML_TEST_C", "env")

	src := `- "${KDLHTML_TEST_A} ${KDLHTML_TEST_B} ${KDLHTML_TEST_C} ${site.name} ${site.tags.1}"`

	out, _, _, err := testRun(t, src,
		"-e",
		"-E", filepath.Join(dir, "vars.env"),
		"-E", filepath.Join(dir, "vars.yaml"),
		"-b", "KDLHTML_TEST_B=bind",
	)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if want := "file bind env Docs b\n"; out != want {
		t.Errorf("output = %q, want %q", out, want)
	}
}

func TestRun_EnvironmentNotBoundByDefault(t *testing.T) {
	t.Setenv("KDLHTML_TEST_A", "env")

	_, _, _, err := testRun(t, `- "${KDLHTML_TEST_A}"`)
	if !errors.Is(err, render.ErrUnboundVariable) {
		t.Fatalf("expected ErrUnboundVariable, got %v", err)
	}
}

func TestRun_IncludeSearchPath(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"site/index.kdl":  "@include \"nav.html\"\n@include \"foot.html\"\n",
		"flag/nav.html":   "flag\n",
		"env/nav.html":    "env\n",
		"env/foot.html":   "foot\n",
		"other/foot.html": "other\n",
	})

	t.Setenv(cmd.SearchPathEnv, filepath.Join(dir, "env")+string(os.PathListSeparator)+filepath.Join(dir, "other"))

	out, _, _, err := testRun(t, "", "-I", filepath.Join(dir, "flag"), filepath.Join(dir, "site", "index.kdl"))
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out != "flag\nfoot\n" {
		t.Errorf("output = %q", out)
	}
}

func TestRun_Shell(t *testing.T) {
	if _, err := os.Stat(render.DefaultShell); err != nil {
		t.Skipf("%s not available", render.DefaultShell)
	}

	out, _, _, err := testRun(t, "pre {\n\t@sh \"echo ${x}\"\n}", "-b", "x=hello")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if out != "<pre>\n\thello\n</pre>\n" {
		t.Errorf("output = %q", out)
	}

	_, _, _, err = testRun(t, `@sh "exit 2"`, "--shell", render.DefaultShell)
	if !errors.Is(err, render.ErrSpawn) {
		t.Errorf("expected ErrSpawn, got %v", err)
	}
}

func TestRun_Version(t *testing.T) {
	out, _, code, _ := testRun(t, "", "--version")
	if code == nil || *code != 0 {
		t.Fatalf("expected exit 0, got %v", code)
	}

	if strings.TrimSpace(out) == "" {
		t.Error("expected version output")
	}
}

func TestRun_Init(t *testing.T) {
	confPath := configPath(baseConfig + ".kdl")
	t.Cleanup(func() { os.Remove(confPath) })

	if _, _, _, err := testRun(t, "", "--log-level", "error", "--no-log-pretty", "init"); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	data, err := os.ReadFile(confPath)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}

	doc, err := kdl.ParseString(string(data))
	if err != nil {
		t.Fatalf("config does not parse: %v\n%s", err, data)
	}

	got := map[string]any{}
	for _, node := range doc.Nodes {
		if v, ok := node.Argument(); ok {
			got[node.Name] = v.Native()
		}
	}

	for name, want := range map[string]any{
		"log-level":  "error",
		"log-format": "text",
		"log-pretty": false,
	} {
		if got[name] != want {
			t.Errorf("config %s = %v, want %v:\n%s", name, got[name], want, data)
		}
	}

	for _, name := range []string{"help", "version"} {
		if _, ok := got[name]; ok {
			t.Errorf("config should not contain %s:\n%s", name, data)
		}
	}

	_, _, _, err = testRun(t, "", "init")
	if !errors.Is(err, cmd.ErrFileExists) {
		t.Errorf("expected ErrFileExists, got %v", err)
	}

	if _, _, _, err = testRun(t, "", "init", "--force"); err != nil {
		t.Errorf("init --force failed: %v", err)
	}

	// The written config is read back as flag defaults.
	out, _, _, err := testRun(t, `p "ok"`)
	if err != nil || out != "<p>ok</p>\n" {
		t.Errorf("render with config = %q, %v", out, err)
	}
}
