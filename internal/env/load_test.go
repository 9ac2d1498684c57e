package env

import (
	"os"
	"path/filepath"
	"testing"

	"go.viam.com/test"
)

func TestLoadMissingFile(t *testing.T) {
	n, err := Load(filepath.Join(t.TempDir(), ".env"))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, 0)
}

func TestLoadSetsUnsetVariables(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	body := `# scene overrides
BINGO_TEST_BALLS=12
export BINGO_TEST_TEXTURE="assets/ball.png"
BINGO_TEST_QUOTED='a b'
not a pair
=novalue
BINGO_TEST_KEEP=file
`
	test.That(t, os.WriteFile(path, []byte(body), 0o644), test.ShouldBeNil)
	t.Setenv("BINGO_TEST_KEEP", "env")
	for _, k := range []string{"BINGO_TEST_BALLS", "BINGO_TEST_TEXTURE", "BINGO_TEST_QUOTED"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	n, err := Load(path)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, 3)
	test.That(t, os.Getenv("BINGO_TEST_BALLS"), test.ShouldEqual, "12")
	test.That(t, os.Getenv("BINGO_TEST_TEXTURE"), test.ShouldEqual, "assets/ball.png")
	test.That(t, os.Getenv("BINGO_TEST_QUOTED"), test.ShouldEqual, "a b")
	test.That(t, os.Getenv("BINGO_TEST_KEEP"), test.ShouldEqual, "env")
}

func TestParseLine(t *testing.T) {
	k, v, ok := parseLine("  KEY = value  ")
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, k, test.ShouldEqual, "KEY")
	test.That(t, v, test.ShouldEqual, "value")

	_, _, ok = parseLine("# KEY=value")
	test.That(t, ok, test.ShouldBeFalse)
}
