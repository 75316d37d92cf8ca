package cmd

import (
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkstorm/cooljigate/internal/cache"
	"github.com/darkstorm/cooljigate/internal/config"
)

const fixtureDir = "../../../internal/conjugator/testdata"

// env is an isolated config directory pointing at a fake conjugation site.
type env struct {
	configDir string
	outputDir string
	server    *httptest.Server
	requests  atomic.Int32
}

func newEnv(t *testing.T) *env {
	t.Helper()

	pages := map[string]string{
		"/говорить": "govorit.html",
		"/сказать":  "skazat.html",
	}
	e := &env{
		configDir: t.TempDir(),
		outputDir: t.TempDir(),
	}
	e.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		e.requests.Add(1)
		name, ok := pages[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		data, err := os.ReadFile(filepath.Join(fixtureDir, name))
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(data)
	}))
	t.Cleanup(e.server.Close)

	cfg := config.Default()
	cfg.BaseURL = e.server.URL
	cfg.CacheDir = t.TempDir()
	cfg.OutputDir = e.outputDir
	require.NoError(t, config.Save(config.Path(e.configDir), cfg))

	return e
}

// resetFlags restores every flag to its default so runs don't leak state.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			sv.Replace(nil)
		} else {
			f.Value.Set(f.DefValue)
		}
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func (e *env) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetArgs(append([]string{"--config", e.configDir}, args...))
	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

func outputLines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func TestRoot_DefaultOutput(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "говорить")
	require.NoError(t, err)

	lines := outputLines(out)
	require.Len(t, lines, 18)
	assert.Equal(t, "speak (нсв|pres), я говорю / скажу", lines[0])
	assert.Equal(t, "you speak (нсв|pres), ты говоришь / скажешь", lines[1])
	assert.Equal(t, "will speak (нсв|future), я буду говорить / скажу", lines[6])
	assert.Equal(t, "spoke (нсв|past), он говорил", lines[12])
	assert.Equal(t, "spoke (нсв|past), они говорили / сказали", lines[15])
	assert.Equal(t, "speak! (нсв|imp|informal), говори / скажи", lines[16])
	assert.Equal(t, "speak! (нсв|imp|formal), говорите / скажите", lines[17])
}

func TestRoot_PerfectiveInputPrintsImperfectiveFirst(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "сказать")
	require.NoError(t, err)
	assert.Equal(t, "speak (нсв|pres), я говорю / скажу", outputLines(out)[0])
}

func TestRoot_HeaderShortCloze(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "-r", "-t", "-a", "говорить")
	require.NoError(t, err)

	lines := outputLines(out)
	assert.Equal(t, "to speak (нсв, св)", lines[0])
	assert.Equal(t, "говорить / сказать", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "speak (нсв|pres), я [[oc0::говорю]]", lines[3])
	assert.Equal(t, "you speak (нсв|pres), ты [[oc1::говоришь]]", lines[4])
	assert.Equal(t, "he/she speaks (нсв|pres), он/она [[oc2::говорит]]", lines[5])
	assert.Equal(t, "they speak (нсв|pres), они [[oc3::говорят]]", lines[6])
	assert.Equal(t, "will speak (нсв|future), я [[oc4::буду говорить]]", lines[7])
	assert.NotContains(t, out, "мы")
}

func TestRoot_PostfixFlags(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "-p", "motion", "-u", "-v", "говорить")
	require.NoError(t, err)
	assert.Equal(t, "говорить (нсв), speak (нсв|pres|motion|uni), я говорю / скажу", outputLines(out)[0])

	out, _, err = e.run(t, "-s", "-c", "говорить")
	require.NoError(t, err)
	lines := outputLines(out)
	assert.Equal(t, "speak, я говорю / скажу", lines[0])
	assert.Len(t, lines, 22)
	assert.Contains(t, out, "would speak, они говорили бы / сказали бы")
}

func TestRoot_UnderscoreFlagSpellings(t *testing.T) {
	e := newEnv(t)

	out, _, err := e.run(t, "--suppress_postfix", "--anki_cloze", "--include_verb", "говорить")
	require.NoError(t, err)
	assert.Equal(t, "говорить (нсв), speak, я [[oc0::говорю]]", outputLines(out)[0])
}

func TestRoot_WriteFile(t *testing.T) {
	e := newEnv(t)

	out, stderr, err := e.run(t, "-r", "-w", "говорить")
	require.NoError(t, err)

	path := filepath.Join(e.outputDir, "to_speak_talk.txt")
	assert.Contains(t, stderr, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "to speak (нсв, св)")
	assert.True(t, strings.HasSuffix(out, string(data)))
	assert.Len(t, outputLines(string(data)), 18)
}

func TestRoot_ServesFromCache(t *testing.T) {
	e := newEnv(t)

	first, _, err := e.run(t, "говорить")
	require.NoError(t, err)
	assert.Equal(t, int32(2), e.requests.Load())

	second, _, err := e.run(t, "говорить")
	require.NoError(t, err)
	assert.Equal(t, int32(2), e.requests.Load())
	assert.Equal(t, first, second)
}

func TestRoot_UnknownVerb(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.run(t, "несуществовать")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cache.ErrFetch))
}

func TestRoot_EnvOverridesBaseURL(t *testing.T) {
	e := newEnv(t)
	other := newEnv(t)
	t.Setenv("COOLJIGATE_BASE_URL", other.server.URL)

	_, _, err := e.run(t, "говорить")
	require.NoError(t, err)
	assert.Equal(t, int32(0), e.requests.Load())
	assert.Equal(t, int32(2), other.requests.Load())
}

func TestCache_PathAndClear(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.run(t, "говорить")
	require.NoError(t, err)

	out, _, err := e.run(t, "cache", "path", "говорить")
	require.NoError(t, err)
	assert.FileExists(t, strings.TrimSpace(out))

	out, _, err = e.run(t, "cache", "clear", "сказать", "быть")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 cached page(s)")

	out, _, err = e.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Removed 1 cached page(s)")

	_, _, err = e.run(t, "говорить")
	require.NoError(t, err)
	assert.Equal(t, int32(4), e.requests.Load())
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cfg")
	resetFlags(rootCmd)

	var stdout bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&bytes.Buffer{})

	rootCmd.SetArgs([]string{"--config", dir, "init"})
	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, stdout.String(), config.Path(dir))

	cfg, err := config.Load(config.Path(dir))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config", dir, "init"})
	assert.Error(t, rootCmd.Execute())

	resetFlags(rootCmd)
	rootCmd.SetArgs([]string{"--config", dir, "init", "--force"})
	assert.NoError(t, rootCmd.Execute())
}

func TestAnki_MissingDeck(t *testing.T) {
	e := newEnv(t)

	_, _, err := e.run(t, "anki", "inspect", filepath.Join(t.TempDir(), "missing.apkg"))
	assert.Error(t, err)

	_, _, err = e.run(t, "anki", "add", filepath.Join(t.TempDir(), "missing.apkg"), "говорить")
	assert.Error(t, err)
	assert.Equal(t, int32(0), e.requests.Load())
}
