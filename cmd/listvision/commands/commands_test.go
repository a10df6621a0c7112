package commands

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// run executes the CLI with args in an isolated HOME and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("LISTVISION_CONFIG", "")

	var out, errOut bytes.Buffer
	root := newRootCmd(BuildInfo{Version: "1.2.3", BuildTime: "now", GitCommit: "abc"})
	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	err := root.Execute()
	return out.String(), err
}

func TestRowsCommand(t *testing.T) {
	out, err := run(t, "", "rows", "--seed", "a,b,c,d", "move:0:2", "move:3:0", "remove:1", "append:e", "move:1:1")
	require.NoError(t, err)
	require.Equal(t, strings.Join([]string{
		"  [a b c d]",
		"move:0:2 (moved row 0 to 2)",
		"  [b c a d]",
		"move:3:0 (moved row 3 to 0)",
		"  [d b c a]",
		"remove:1 (deleted row 1)",
		"  [d c a]",
		"append:e (inserted row 3)",
		"  [d c a e]",
		"move:1:1 (no change)",
		"  [d c a e]",
		"",
	}, "\n"), out)
}

func TestRowsCommandDefaultSeed(t *testing.T) {
	out, err := run(t, "", "rows")
	require.NoError(t, err)
	require.Equal(t, "  [a b c d e f g h]\n", out)
}

func TestRowsCommandErrors(t *testing.T) {
	_, err := run(t, "", "rows", "--seed", "a,b,c", "remove:3")
	require.ErrorContains(t, err, "out of range")

	_, err = run(t, "", "rows", "move:1")
	require.Error(t, err)

	_, err = run(t, "", "rows", "shuffle")
	require.ErrorContains(t, err, "unknown operation")

	_, err = run(t, "", "rows", "append:")
	require.Error(t, err)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	require.Contains(t, out, "listvision 1.2.3")
	require.Contains(t, out, "Git commit: abc")
}

func TestServeCommand(t *testing.T) {
	stdin := `{"jsonrpc":"2.0","id":1,"method":"tools/call","params":{"name":"rows_list","arguments":{}}}` + "\n"
	out, err := run(t, stdin, "serve")
	require.NoError(t, err)

	var resp struct {
		ID     float64 `json:"id"`
		Result struct {
			Content []struct {
				Text string `json:"text"`
			} `json:"content"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &resp))
	require.Len(t, resp.Result.Content, 1)
	require.Contains(t, resp.Result.Content[0].Text, `"count": 8`)
}

func TestDetectCommand(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			img.Set(x, y, color.White)
		}
	}
	path := filepath.Join(t.TempDir(), "white.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	out, err := run(t, "", "detect", "classify", path)
	require.NoError(t, err)
	require.Equal(t, "white(1.000)\n", out)

	out, err = run(t, "", "detect", "face", path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(out, "ERROR!\n"), out)

	out, err = run(t, "", "detect", "rectangle", path)
	require.NoError(t, err)
	require.Equal(t, "No observation\n", out)

	_, err = run(t, "", "detect", "barcode", path)
	require.Error(t, err)

	_, err = run(t, "", "detect", "classify", filepath.Join(t.TempDir(), "missing.png"))
	require.Error(t, err)
}

func TestDetectCommandAnnotate(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			if x >= 20 && x <= 80 && y >= 20 && y <= 80 {
				img.Set(x, y, color.Black)
			} else {
				img.Set(x, y, color.White)
			}
		}
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "square.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	annotated := filepath.Join(dir, "annotated.png")
	_, err = run(t, "", "detect", "rectangle", path, "--annotate", annotated, "--color", "#00FF00")
	require.NoError(t, err)

	f, err = os.Open(annotated)
	require.NoError(t, err)
	defer f.Close()
	out, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := out.At(19, 50).RGBA()
	require.Equal(t, []uint32{0, 0xffff, 0}, []uint32{r, g, b})
}

func TestBadLogLevel(t *testing.T) {
	_, err := run(t, "", "--log-level", "loud", "version")
	require.Error(t, err)
}
