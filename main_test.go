package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/dtnitsch/wikilinks/internal/common"
	"github.com/dtnitsch/wikilinks/pkg/manifest"
)

const testDump = `<mediawiki xml:lang="de">
  <page>
    <title>Flugzeug</title>
    <revision>
      <text>Ein [[Luftfahrzeug]] nach [[Otto_Lilienthal|Lilienthal]], siehe [[Bild:A.jpg]] und [[1903]].</text>
    </revision>
  </page>
  <page>
    <title>Tom's Seite</title>
    <revision>
      <text>[[#Abschnitt]] [[Flugzeug#Geschichte]]</text>
    </revision>
  </page>
</mediawiki>
`

func writeDump(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dump.xml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	common.SetupLogger(&bytes.Buffer{})

	var stdout, stderr bytes.Buffer
	app := newApp(&stdout, &stderr)
	err := app.Run(append([]string{"wikilinks"}, args...))
	if err != nil {
		return stdout.String(), exitCode(err)
	}
	return stdout.String(), 0
}

func TestDump_NDJSON(t *testing.T) {
	input := writeDump(t, testDump)
	output := filepath.Join(t.TempDir(), "links.ndjson")

	if _, code := run(t, "--format", "ndjson", "-o", output, input); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	want := strings.Join([]string{
		`{"type":"page","id":1,"title":"Flugzeug"}`,
		`{"type":"link","page_id":1,"target":"Luftfahrzeug"}`,
		`{"type":"link","page_id":1,"target":"Otto Lilienthal"}`,
		`{"type":"page","id":2,"title":"Tom's Seite"}`,
		`{"type":"link","page_id":2,"target":"Flugzeug"}`,
	}, "\n") + "\n"
	if string(data) != want {
		t.Errorf("output =\n%s\nwant\n%s", data, want)
	}
}

func TestDump_SQL(t *testing.T) {
	input := writeDump(t, testDump)
	output := filepath.Join(t.TempDir(), "links.sql")

	if _, code := run(t, "-o", output, input); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"INSERT INTO wikipedia_pages VALUES (2, 'Tom''s Seite');",
		"INSERT INTO wikipedia_links (page_id, link) VALUES (2, 'Flugzeug');",
		"ALTER TABLE `wikipedia_links` ADD INDEX ( `page_id` );",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output is missing %q", want)
		}
	}
}

func TestDump_SQLiteThenQuery(t *testing.T) {
	input := writeDump(t, testDump)
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "links.db")
	summaryPath := filepath.Join(dir, "run.yaml")

	if _, code := run(t, "--format", "sqlite", "-o", dbPath, "--summary", summaryPath, input); code != 0 {
		t.Fatalf("dump exit code = %d, want 0", code)
	}

	out, code := run(t, "stats", "--db", dbPath)
	if code != 0 {
		t.Fatalf("stats exit code = %d, want 0", code)
	}
	for _, want := range []string{"Pages:    2", "Links:    3", input} {
		if !strings.Contains(out, want) {
			t.Errorf("stats output is missing %q:\n%s", want, out)
		}
	}

	out, code = run(t, "links", "--db", dbPath, "Flugzeug")
	if code != 0 {
		t.Fatalf("links exit code = %d, want 0", code)
	}
	if !strings.Contains(out, " 2. Otto Lilienthal") || !strings.Contains(out, "Total: 2 links") {
		t.Errorf("links output =\n%s", out)
	}

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatal(err)
	}
	var summary manifest.RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Status != manifest.StatusSuccess || summary.Pages != 2 || summary.Links != 3 || summary.RunID != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestDump_ConfigFile(t *testing.T) {
	input := writeDump(t, testDump)
	dir := t.TempDir()
	output := filepath.Join(dir, "links.ndjson")
	config := filepath.Join(dir, "dump.yaml")

	cfg := "input: " + input + "\nformat: ndjson\noutput: " + output + "\nmax_links: 1\n"
	if err := os.WriteFile(config, []byte(cfg), 0644); err != nil {
		t.Fatal(err)
	}

	if _, code := run(t, "--config", config); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), `"type":"link"`); got != 2 {
		t.Errorf("got %d links with max_links 1, want 2 (one per page)", got)
	}
}

func TestDump_MalformedExitsFatal(t *testing.T) {
	input := writeDump(t, "<mediawiki><page><title>Kaputt</title></mediawiki>")
	dir := t.TempDir()
	summaryPath := filepath.Join(dir, "run.yaml")

	_, code := run(t, "--format", "ndjson", "-o", filepath.Join(dir, "out.ndjson"), "--summary", summaryPath, input)
	if code != common.ExitFatal {
		t.Fatalf("exit code = %d, want %d", code, common.ExitFatal)
	}

	data, err := os.ReadFile(summaryPath)
	if err != nil {
		t.Fatalf("summary not written for failed run: %v", err)
	}
	var summary manifest.RunSummary
	if err := yaml.Unmarshal(data, &summary); err != nil {
		t.Fatal(err)
	}
	if summary.Status != manifest.StatusError || summary.Pages != 1 {
		t.Errorf("summary = %+v, want error after 1 page", summary)
	}
}

func TestUsageErrors(t *testing.T) {
	input := writeDump(t, testDump)
	missing := filepath.Join(t.TempDir(), "missing.xml")

	tests := []struct {
		name string
		args []string
	}{
		{"no input", nil},
		{"two inputs", []string{input, input}},
		{"missing input", []string{missing}},
		{"unknown format", []string{"--format", "csv", input}},
		{"sqlite without output", []string{"--format", "sqlite", input}},
		{"zero max links", []string{"--max-links", "0", input}},
		{"unknown flag", []string{"--bogus", input}},
		{"missing config", []string{"--config", missing, input}},
		{"stats on missing db", []string{"stats", "--db", missing}},
		{"links without title", []string{"links", "--db", missing}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, code := run(t, tt.args...); code != common.ExitUsage {
				t.Errorf("exit code = %d, want %d", code, common.ExitUsage)
			}
		})
	}
}

func TestQuickstart(t *testing.T) {
	out, code := run(t, "quickstart")
	if code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	if !strings.HasPrefix(out, "# wikilinks Quick Start") {
		t.Errorf("quickstart output starts with %q", out[:min(len(out), 40)])
	}
}

func TestDump_FileNamedLikeCommand(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stats"), []byte(testDump), 0644); err != nil {
		t.Fatal(err)
	}
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })

	output := filepath.Join(dir, "links.ndjson")
	if _, code := run(t, "--format", "ndjson", "-o", output, "./stats"); code != 0 {
		t.Fatalf("exit code = %d, want 0", code)
	}
	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.Count(string(data), `"type":"page"`); got != 2 {
		t.Errorf("got %d pages, want 2", got)
	}

	out, _ := run(t, "--help")
	if !strings.Contains(out, "./stats") {
		t.Errorf("help does not mention ./stats:\n%s", out)
	}
}
