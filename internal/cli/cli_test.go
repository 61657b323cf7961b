package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gotexty/internal/cli"
	"github.com/yaklabco/gotexty/internal/configloader"
	"github.com/yaklabco/gotexty/pkg/fsutil"
	"github.com/yaklabco/gotexty/pkg/nodepath"
	"github.com/yaklabco/gotexty/pkg/reporter"
	"github.com/yaklabco/gotexty/pkg/texty"
)

// testPage has a single editable region: <div id="ed"><b>hi</b> there</div>.
const testPage = `<html><head></head><body><div id="ed"><b>hi</b> there</div></body></html>`

func TestMain(m *testing.M) {
	// Keep user-level configuration out of the tests.
	dir, err := os.MkdirTemp("", "gotexty-cli-test")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	os.Setenv("XDG_CONFIG_HOME", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test", Commit: "abc123", Date: "today"})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(append(args, "--color=never"))

	err := cmd.Execute()
	return stdout.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func decodeJSON(t *testing.T, out string) reporter.Output {
	t.Helper()
	var output reporter.Output
	require.NoError(t, json.Unmarshal([]byte(out), &output), out)
	return output
}

func TestNewRootCommand(t *testing.T) {
	t.Parallel()

	cmd := cli.NewRootCommand(cli.BuildInfo{Version: "test"})
	assert.Equal(t, "gotexty", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	for _, name := range []string{"get", "set", "field", "select", "caps", "init", "version"} {
		sub, _, err := cmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, sub.Name())
	}

	for _, flag := range []string{"debug", "config", "color", "format", "marker-tag", "max-depth",
		"strict", "flavor", "selection-start", "window-selection", "document-selection", "proper-lines"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	out, err := run(t, "get", page, "--scope", "#ed", "--start", "0/0/0:2", "--end", "0/1:5", "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	assert.True(t, output.Selected)
	assert.Equal(t, page, output.Source)
	require.NotNil(t, output.Scope)
	assert.Equal(t, "0", output.Scope.Path)
	assert.Equal(t, "<div>", output.Scope.Node)

	require.NotNil(t, output.Selection)
	assert.Equal(t, 5, output.Selection.Start)
	assert.Equal(t, 14, output.Selection.End)
	assert.Equal(t, "</b> ther", output.Selection.Content)
	assert.Equal(t, "<b>hi</b> there", output.Selection.ContentAll)

	require.NotNil(t, output.Range)
	assert.Equal(t, reporter.Point{Path: "0/0/0", Offset: 2, Node: "#text"}, output.Range.Start)
	assert.Equal(t, reporter.Point{Path: "0/1", Offset: 5, Node: "#text"}, output.Range.End)
}

func TestGet_DefaultScope(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	out, err := run(t, "get", page, "--start", "0/0/0:1", "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	require.NotNil(t, output.Scope)
	assert.Equal(t, "0/0", output.Scope.Path, "closest element is <b>")
	assert.Equal(t, "<b>", output.Scope.Node)
	require.NotNil(t, output.Selection)
	assert.Equal(t, 1, output.Selection.Start)
	assert.True(t, output.Selection.Collapsed)
	assert.Equal(t, "hi", output.Selection.ContentAll)
}

func TestGet_Text(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	out, err := run(t, "get", page, "--scope", "0", "--start", "0/0/0:0", "--end", "0/0/0:2")
	require.NoError(t, err)

	assert.Contains(t, out, "start 3  end 5  length 2")
	assert.Contains(t, out, "<b>hi</b> there")
	assert.Contains(t, out, "start  0/0/0:0 #text")
}

func TestGet_Markdown(t *testing.T) {
	t.Parallel()

	notes := writeFile(t, "notes.md", "# Title\n\nsome *em* text\n")
	out, err := run(t, "get", notes, "--scope", "2", "--start", "2/0:0", "--end", "2/2:5", "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	require.NotNil(t, output.Selection)
	assert.Equal(t, "some <em>em</em> text", output.Selection.ContentAll)
	assert.Equal(t, 0, output.Selection.Start)
	assert.Equal(t, 21, output.Selection.End)
}

func TestGet_NoSelection(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	out, err := run(t, "get", page)
	require.ErrorIs(t, err, cli.ErrNoSelection)
	assert.Equal(t, cli.ExitNoSelection, cli.ExitCode(err))
	assert.Contains(t, out, "no selection")
}

func TestGet_UnresolvablePositions(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", `<html><head></head><body><p>a<br>😀</p></body></html>`)

	tests := []struct {
		name  string
		start string
	}{
		{"inside void element", "0/1:0"},
		{"inside surrogate pair", "0/2:1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, "get", page, "--scope", "0", "--start", tt.start)
			require.Error(t, err)
			assert.Equal(t, cli.ExitDataError, cli.ExitCode(err), err.Error())
		})
	}
}

func TestField_SurrogatePair(t *testing.T) {
	t.Parallel()

	_, err := run(t, "field", "--value", "a😀b", "--start", "2", "--end", "3")
	require.ErrorIs(t, err, texty.ErrInvalidSelection)
	assert.Equal(t, cli.ExitDataError, cli.ExitCode(err))
}

func TestGet_Errors(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"end without start", []string{"--end", "0:0"}, cli.ExitInvalidUsage},
		{"bad offset", []string{"--start", "0:x"}, cli.ExitInvalidUsage},
		{"bad path", []string{"--start", "a/b:0"}, cli.ExitInvalidUsage},
		{"unknown id", []string{"--start", "#missing:0"}, cli.ExitInvalidUsage},
		{"path out of range", []string{"--start", "9/9:0"}, cli.ExitDataError},
		{"offset past text", []string{"--start", "0/0/0:7"}, cli.ExitDataError},
		{"selection outside scope", []string{"--scope", "0/0", "--start", "0/1:1"}, cli.ExitDataError},
		{"unsupported", []string{"--start", "0:0", "--selection-start=false"}, cli.ExitUnsupported},
		{"no live selection service", []string{"--start", "0:0", "--window-selection=false"}, cli.ExitUnsupported},
		{"unknown format", []string{"--start", "0:0", "--format", "sarif"}, cli.ExitConfigError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, append([]string{"get", page}, tt.args...)...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err), err.Error())
		})
	}
}

func TestGet_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := run(t, "get", filepath.Join(t.TempDir(), "missing.html"), "--start", "0:0")
	require.ErrorIs(t, err, fsutil.ErrNotFound)
	assert.Equal(t, cli.ExitIOError, cli.ExitCode(err))
}

func TestSet(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	record := writeFile(t, "rec.json", `{"start": 3, "end": 6, "content_all": "<i>abc</i>def"}`)
	outPath := filepath.Join(t.TempDir(), "out.html")

	out, err := run(t, "set", page, "--record", record, "--scope", "#ed", "--write", outPath, "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	require.NotNil(t, output.Selection)
	assert.Equal(t, 3, output.Selection.Start)
	assert.Equal(t, 6, output.Selection.End)
	assert.Equal(t, "abc", output.Selection.Content)
	require.NotNil(t, output.Range)
	// Nothing precedes the start inside <i>, so it anchors to the element.
	assert.Equal(t, reporter.Point{Path: "0/0", Offset: 0, Node: "<i>"}, output.Range.Start)
	assert.Equal(t, reporter.Point{Path: "0/0/0", Offset: 3, Node: "#text"}, output.Range.End)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(written), `<div id="ed"><i>abc</i>def</div>`)

	original, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Equal(t, testPage, string(original), "source is untouched without --in-place")
}

func TestSet_RoundTripsGetOutput(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	got, err := run(t, "get", page, "--scope", "#ed", "--start", "0/0/0:1", "--end", "0/1:3", "--format", "yaml")
	require.NoError(t, err)
	record := writeFile(t, "rec.yaml", got)

	out, err := run(t, "set", page, "--record", record, "--scope", "#ed", "--format", "yaml")
	require.NoError(t, err)

	var before, after reporter.Output
	require.NoError(t, yaml.Unmarshal([]byte(got), &before))
	require.NoError(t, yaml.Unmarshal([]byte(out), &after))
	assert.Equal(t, before.Selection, after.Selection)
	assert.Equal(t, before.Range, after.Range)
}

func TestSet_InPlace(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	record := writeFile(t, "rec.yaml", "start: 0\nend: 2\ncontent_all: new text\n")

	_, err := run(t, "set", page, "--record", record, "--scope", "#ed", "--in-place", "--backup", "--yes")
	require.NoError(t, err)

	updated, err := os.ReadFile(page)
	require.NoError(t, err)
	assert.Contains(t, string(updated), `<div id="ed">new text</div>`)

	backup, err := os.ReadFile(fsutil.BackupPath(page))
	require.NoError(t, err)
	assert.Equal(t, testPage, string(backup))
}

func TestSet_Errors(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	notes := writeFile(t, "notes.md", "hello\n")
	valid := writeFile(t, "rec.json", `{"start": 0, "end": 1, "content_all": "x"}`)
	inverted := writeFile(t, "bad.json", `{"start": 2, "end": 1, "content_all": "xyz"}`)
	canonical := writeFile(t, "loose.json", `{"start": 0, "end": 0, "content_all": "<B>x"}`)

	tests := []struct {
		name     string
		args     []string
		wantCode int
	}{
		{"missing record flag", []string{"set", page}, cli.ExitInvalidUsage},
		{"inverted record", []string{"set", page, "--record", inverted}, cli.ExitDataError},
		{"both stdin", []string{"set", "-", "--record", "-"}, cli.ExitInvalidUsage},
		{"in-place markdown", []string{"set", notes, "--record", valid, "--in-place", "--yes"}, cli.ExitInvalidUsage},
		{"strict rejects", []string{"set", page, "--record", canonical, "--strict"}, cli.ExitDataError},
		{"scope is text", []string{"set", page, "--record", valid, "--scope", "0/1"}, cli.ExitDataError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, cli.ExitCode(err), err.Error())
		})
	}
}

func TestField(t *testing.T) {
	t.Parallel()

	out, err := run(t, "field", "--value", "hello world", "--start", "6", "--end", "11", "--format", "yaml")
	require.NoError(t, err)

	var output reporter.Output
	require.NoError(t, yaml.Unmarshal([]byte(out), &output))
	require.NotNil(t, output.Selection)
	assert.Equal(t, "world", output.Selection.Content)
	assert.Equal(t, "hello ", output.Selection.ContentBefore)
	assert.Nil(t, output.Range)
}

func TestField_ClampsAndCollapses(t *testing.T) {
	t.Parallel()

	out, err := run(t, "field", "--value", "abc", "--start", "10", "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	require.NotNil(t, output.Selection)
	assert.Equal(t, 3, output.Selection.Start)
	assert.Equal(t, 3, output.Selection.End)
}

func TestField_LegacyLines(t *testing.T) {
	t.Parallel()

	out, err := run(t, "field", "--value", "a\r\nb", "--start", "3", "--end", "4",
		"--proper-lines=false", "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	require.NotNil(t, output.Selection)
	assert.Equal(t, "a\nb", output.Selection.ContentAll)
	assert.Equal(t, 2, output.Selection.Start)
	assert.Equal(t, "b", output.Selection.Content)
}

func TestField_FromFileWithRecord(t *testing.T) {
	t.Parallel()

	input := writeFile(t, "in.txt", "old")
	record := writeFile(t, "rec.json", `{"start": 4, "end": 9, "content_all": "new content"}`)
	outPath := filepath.Join(t.TempDir(), "out.txt")

	out, err := run(t, "field", input, "--record", record, "--write", outPath, "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	assert.Equal(t, input, output.Source)
	require.NotNil(t, output.Selection)
	assert.Equal(t, "conte", output.Selection.Content)

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, "new content", string(written))
}

func TestField_ValueAndFileExclusive(t *testing.T) {
	t.Parallel()

	input := writeFile(t, "in.txt", "x")
	_, err := run(t, "field", input, "--value", "y")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestSelect(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)
	out, err := run(t, "select", page, "--node", "0/0", "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	require.NotNil(t, output.Scope)
	assert.Equal(t, "0", output.Scope.Path)
	require.NotNil(t, output.Selection)
	assert.Equal(t, 0, output.Selection.Start)
	assert.Equal(t, 9, output.Selection.End)
	assert.Equal(t, "<b>hi</b>", output.Selection.Content)
	require.NotNil(t, output.Range)
	assert.Equal(t, reporter.Point{Path: "0", Offset: 0, Node: "<div>"}, output.Range.Start)
	assert.Equal(t, reporter.Point{Path: "0", Offset: 1, Node: "<div>"}, output.Range.End)
}

func TestSelect_Errors(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "page.html", testPage)

	_, err := run(t, "select", page, "--node", ".")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))

	_, err = run(t, "select", page)
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestCaps(t *testing.T) {
	t.Parallel()

	out, err := run(t, "caps")
	require.NoError(t, err)
	assert.Contains(t, out, "selection supported")

	out, err = run(t, "caps", "--selection-start=false")
	require.ErrorIs(t, err, texty.ErrUnsupported)
	assert.Equal(t, cli.ExitUnsupported, cli.ExitCode(err))
	assert.Contains(t, out, "selection unsupported")
}

func TestCaps_LegacyDocument(t *testing.T) {
	t.Parallel()

	page := writeFile(t, "legacy.html",
		`<html><head><meta http-equiv="X-UA-Compatible" content="IE=8"></head><body></body></html>`)
	out, err := run(t, "caps", page, "--format", "json")
	require.NoError(t, err)

	output := decodeJSON(t, out)
	require.NotNil(t, output.Capabilities)
	assert.False(t, output.Capabilities.HasProperLines)
	assert.True(t, output.Capabilities.HasSelectionStart)

	modern := writeFile(t, "modern.html",
		`<html><head><meta http-equiv="X-UA-Compatible" content="IE=edge"></head><body></body></html>`)
	out, err = run(t, "caps", modern, "--format", "json")
	require.NoError(t, err)
	assert.True(t, decodeJSON(t, out).Capabilities.HasProperLines)
}

func TestConfigFile(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, "cfg.yml", "capabilities:\n  window_selection: false\n")
	page := writeFile(t, "page.html", testPage)

	_, err := run(t, "get", page, "--start", "0:0", "--config", cfg)
	require.ErrorIs(t, err, texty.ErrUnsupported)

	_, err = run(t, "get", page, "--start", "0:0", "--config", cfg, "--window-selection")
	require.NoError(t, err, "flags override the config file")

	bad := writeFile(t, "bad.yml", "marker:\n  tag: \"not a tag\"\n")
	_, err = run(t, "get", page, "--config", bad)
	var validationErr *configloader.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, cli.ExitConfigError, cli.ExitCode(err))
}

func TestInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yml")

	_, err := run(t, "init", "--output", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(content), "# gotexty configuration"))
	assert.Contains(t, string(content), "tag: texty-marker")

	_, err = run(t, "init", "--output", path)
	require.Error(t, err, "existing file without --force")

	_, err = run(t, "init", "--output", path, "--force", "--full", "--format", "json")
	require.NoError(t, err)
	content, err = os.ReadFile(path)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(content, &doc))
	assert.Contains(t, doc, "capabilities")

	_, err = run(t, "init", "--output", path, "--format", "toml")
	assert.Equal(t, cli.ExitInvalidUsage, cli.ExitCode(err))
}

func TestVersion(t *testing.T) {
	t.Parallel()

	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gotexty")
	assert.Contains(t, out, "abc123")
}

func TestHelp(t *testing.T) {
	t.Parallel()

	out, err := run(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "Usage:")
	assert.Contains(t, out, "Commands:")
	assert.Contains(t, out, "select")
	assert.Contains(t, out, "--debug")

	out, err = run(t, "get", "--help")
	require.NoError(t, err)
	assert.Contains(t, out, "--scope")
	assert.Contains(t, out, "Global Flags:")
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{nil, cli.ExitSuccess},
		{cli.ErrNoSelection, cli.ExitNoSelection},
		{fmt.Errorf("get: %w", texty.ErrUnsupported), cli.ExitUnsupported},
		{fmt.Errorf("%w: bad flag", cli.ErrUsage), cli.ExitInvalidUsage},
		{&configloader.ValidationError{Field: "format"}, cli.ExitConfigError},
		{fmt.Errorf("read: %w", fsutil.ErrNotFound), cli.ExitIOError},
		{fmt.Errorf("resolve: %w", nodepath.ErrPathOutOfRange), cli.ExitDataError},
		{fmt.Errorf("decode: %w", reporter.ErrNoRecord), cli.ExitDataError},
		{errors.New("boom"), cli.ExitInternalError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, cli.ExitCode(tt.err), fmt.Sprint(tt.err))
	}
}
