package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.viam.com/test"
	"gonum.org/v1/gonum/mat"
)

const twoObjectsBatch = `{
	"lines": [
		[0, 0, 0, 1, 0, 0],
		[10, 0, 0, 10, 1, 0],
		[0, 0, 0, 0, 0, 0],
		[1, 0, 0, 1, 1, 0],
		[10, 1, 0, 11, 1, 0]
	],
	"valid": [true, true, false, true, true]
}`

func writeFile(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	test.That(t, os.WriteFile(path, []byte(contents), 0o600), test.ShouldBeNil)
	return path
}

func runApp(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	app := NewApp(&out, &errOut)
	err := app.RunContext(context.Background(), append([]string{"lines"}, args...))
	return out.String(), errOut.String(), err
}

func TestGeometryCommand(t *testing.T) {
	cfg := writeFile(t, "cfg.json", `{"parametrization": "direction_and_centerpoint"}`)
	batch := writeFile(t, "batch.json", twoObjectsBatch)

	out, _, err := runApp(t, "--config", cfg, "geometry", batch)
	test.That(t, err, test.ShouldBeNil)
	rows := strings.Split(strings.TrimSpace(out), "\n")
	test.That(t, rows, test.ShouldHaveLength, 4)
	test.That(t, rows[0], test.ShouldEqual,
		"0\t0.500000\t0.000000\t0.000000\t1.000000\t0.000000\t0.000000")
	test.That(t, rows[2], test.ShouldStartWith, "3\t1.000000\t0.500000\t0.000000\t")

	orthoCfg := writeFile(t, "ortho.json", `{"parametrization": "orthonormal"}`)
	single := writeFile(t, "single.json", `{"lines": [[0, 1, 0, 2, 1, 0]]}`)
	out, _, err = runApp(t, "--config", orthoCfg, "geometry", "--degrees", single)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, strings.TrimSpace(out), test.ShouldEndWith, "\t45.000000")
}

func TestGeometryCommandErrors(t *testing.T) {
	cfg := writeFile(t, "cfg.json", `{"parametrization": "orthonormal"}`)
	// The first line passes through the origin.
	batch := writeFile(t, "batch.json", `{"lines": [[1, 1, 1, 2, 2, 2]]}`)

	_, _, err := runApp(t, "--config", cfg, "geometry", batch)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "degenerate line")

	_, _, err = runApp(t, "--config", cfg, "geometry")
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "exactly one line batch")

	bad := writeFile(t, "bad.json", `{"lines": [[1, 2, 3]]}`)
	_, _, err = runApp(t, "--config", cfg, "geometry", bad)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "at least 6")

	badCfg := writeFile(t, "badcfg.json", `{"parametrization": "pluecker"}`)
	_, _, err = runApp(t, "--config", badCfg, "geometry", batch)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid line parametrization")
}

func TestClusterCommand(t *testing.T) {
	cfg := writeFile(t, "cfg.json", `{"parametrization": "orthonormal", "num_clusters": 2, "max_clusters": 3}`)
	batch := writeFile(t, "batch.json", twoObjectsBatch)

	out, errOut, err := runApp(t, "--config", cfg, "--debug", "cluster", "--one-hot", batch)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldStartWith, "0\t0\n1\t1\n2\t-1\n3\t0\n4\t1\n")
	test.That(t, out, test.ShouldContainSubstring, "distances: min 0.000000 max ")
	test.That(t, out, test.ShouldContainSubstring, "0 3")
	test.That(t, out, test.ShouldContainSubstring, "1 4")
	test.That(t, errOut, test.ShouldContainSubstring, "clustered lines")

	out, _, err = runApp(t, "--config", cfg, "cluster", "--num-clusters", "1", batch)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldStartWith, "0\t0\n1\t0\n2\t-1\n3\t0\n4\t0\n")

	_, _, err = runApp(t, "--config", cfg, "cluster", "--num-clusters", "5", batch)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "invalid cluster count")
}

func TestClusterCommandNeedsClusterCount(t *testing.T) {
	cfg := writeFile(t, "cfg.json", `{"parametrization": "orthonormal"}`)
	batch := writeFile(t, "batch.json", twoObjectsBatch)

	_, _, err := runApp(t, "--config", cfg, "cluster", batch)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no cluster count")
	test.That(t, err.Error(), test.ShouldContainSubstring, "--num-clusters")

	out, _, err := runApp(t, "--config", cfg, "cluster", "--num-clusters", "2", batch)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, out, test.ShouldStartWith, "0\t0\n1\t1\n2\t-1\n3\t0\n4\t1\n")

	// An explicit zero is the same as not passing the flag.
	_, _, err = runApp(t, "--config", cfg, "cluster", "--num-clusters", "0", batch)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "no cluster count")
}

func TestSummarizeDistances(t *testing.T) {
	_, ok := summarizeDistances(nil)
	test.That(t, ok, test.ShouldBeFalse)
	_, ok = summarizeDistances(mat.NewDense(1, 1, nil))
	test.That(t, ok, test.ShouldBeFalse)

	summary, ok := summarizeDistances(mat.NewDense(3, 3, []float64{
		0, 1, 4,
		1, 0, 2,
		4, 2, 0,
	}))
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, summary.min, test.ShouldEqual, 1.)
	test.That(t, summary.max, test.ShouldEqual, 4.)
	test.That(t, summary.mean, test.ShouldAlmostEqual, 7./3)
	test.That(t, summary.median, test.ShouldEqual, 2.)
}
