package cli

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramonehamilton/beejlander/internal/cards/cardtext"
	"github.com/ramonehamilton/beejlander/internal/sampler"
)

// newCardServer serves a rare card for the rare query and numbered commons
// for everything else.
func newCardServer(t *testing.T) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := calls.Add(1)
		if strings.Contains(r.URL.RawQuery, "r>u") {
			io.WriteString(w, "Rare Dragon {4}{R}{R}\nCreature — Dragon\nFlying")
			return
		}
		if n%5 == 0 {
			io.WriteString(w, "Forest\nBasic Land — Forest\n")
			return
		}
		fmt.Fprintf(w, "Common %d {1}{G}\nInstant\n", n)
	}))
	t.Cleanup(server.Close)
	return server, &calls
}

func writeConfig(t *testing.T, dir, baseURL string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	contents := fmt.Sprintf(`
[scryfall]
base_url = %q
rate_limit_delay = "1ms"

[sample]
target_total = 20
`, baseURL)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func execute(t *testing.T, runGUI GUIRunner, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd(runGUI)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestSampleCmd(t *testing.T) {
	server, _ := newCardServer(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL)
	outPath := filepath.Join(dir, "cards.txt")
	chartPath := filepath.Join(dir, "curve.html")

	out, err := execute(t, nil, "sample", "--config", cfgPath, "--output", outPath, "--chart", chartPath, "--rare", "3")
	require.NoError(t, err)

	assert.Contains(t, out, "Rare price limit: 3")
	assert.Contains(t, out, "10/20\n20/20\n")
	assert.Contains(t, out, "Saving cards to '"+outPath+"'")

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	total := 0
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		var count int
		var name string
		_, err := fmt.Sscanf(line, "%dx %s", &count, &name)
		require.NoError(t, err, line)
		total += count
	}
	assert.Equal(t, 20, total)
	assert.Contains(t, string(data), "1x Rare Dragon\n")
	assert.Contains(t, string(data), "x Forest\n")

	_, err = os.Stat(chartPath)
	assert.NoError(t, err)
}

func TestSampleCmd_Title(t *testing.T) {
	server, _ := newCardServer(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL)
	outPath := filepath.Join(dir, "cards.txt")

	_, err := execute(t, nil, "sample", "--config", cfgPath, "--output", outPath, "--title", "Pauper Cube")
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// Pauper Cube\n\n"))
}

func TestSampleCmd_SuggestedFilename(t *testing.T) {
	server, _ := newCardServer(t)
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL)
	t.Chdir(dir)

	out, err := execute(t, nil, "sample", "--config", cfgPath, "--output", "", "--format", "arena", "--title", "Pauper Cube")
	require.NoError(t, err)
	assert.Contains(t, out, "Saving cards to 'Pauper Cube.txt'")

	data, err := os.ReadFile(filepath.Join(dir, "Pauper Cube.txt"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "1 Rare Dragon\n")
}

func TestSampleCmd_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, server.URL)
	outPath := filepath.Join(dir, "cards.txt")

	_, err := execute(t, nil, "sample", "--config", cfgPath, "--output", outPath)
	require.Error(t, err)
	assert.Equal(t, sampler.StageFetch, sampler.StageOf(err))
	assert.True(t, strings.HasPrefix(err.Error(), "fetch failed: "))

	_, statErr := os.Stat(outPath)
	assert.True(t, os.IsNotExist(statErr), "a failed run must not write a file")
}

func TestSampleCmd_InvalidPrice(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeConfig(t, dir, "http://127.0.0.1:1")

	_, err := execute(t, nil, "sample", "--config", cfgPath, "--common", "abc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "common price")
}

func TestQueryCmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")

	out, err := execute(t, nil, "query", "--config", cfgPath, "--silver")
	require.NoError(t, err)

	assert.Contains(t, out, "rare:  https://api.scryfall.com/cards/random?q=-t%3Aconspiracy+-t%3Acontraption+r>u+usd<%3D2&format=text\n")
	assert.Contains(t, out, "other: https://api.scryfall.com/cards/random?q=")
	assert.NotContains(t, out, "border")
}

func TestParseCmd(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.txt")
	require.NoError(t, os.WriteFile(path, []byte("Lightning Bolt {R}\nInstant\nLightning Bolt deals 3 damage to any target."), 0o644))

	out, err := execute(t, nil, "parse", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Name:       Lightning Bolt\n")
	assert.Contains(t, out, "Mana value: {R}\n")
	assert.Contains(t, out, "Land:       false\n")

	cmd := NewRootCmd(nil)
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetIn(strings.NewReader("Forest\nBasic Land — Forest"))
	cmd.SetArgs([]string{"parse"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "Name:       Forest\n")
	assert.Contains(t, buf.String(), "Land:       true\n")

	_, err = execute(t, nil, "parse", filepath.Join(t.TempDir(), "none.txt"))
	assert.Error(t, err)
}

func TestParseCmd_SingleLineStdin(t *testing.T) {
	cmd := NewRootCmd(nil)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SetIn(strings.NewReader("Shock {R}\n"))
	cmd.SetArgs([]string{"parse"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, cardtext.IsParseError(err))
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "beejlander "))
}

func TestGUICmd(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")

	var got GUIOptions
	runGUI := func(opts GUIOptions) error {
		got = opts
		return nil
	}

	_, err := execute(t, runGUI, "--config", cfgPath)
	require.NoError(t, err)
	assert.NotNil(t, got.Config)
	assert.NotNil(t, got.Fetcher)
	assert.Equal(t, cfgPath, got.ConfigPath)

	_, err = execute(t, nil, "gui", "--config", cfgPath)
	assert.Error(t, err)
}
