package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hupe1980/netslab/blobstore"
	"github.com/hupe1980/netslab/netlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNetlist = `
module top (a, b, y);
input a, b;
output y;
wire n1;
NAND2_X1 u1 (.a(a), .b(b), .o(n1));
INV_X1 u2 (.a(n1), .o(y));
endmodule
`

const undeclaredNetlist = `
module top (a, y);
input a;
output y;
INV_X1 u1 (.a(a), .o(n1));
INV_X1 u2 (.a(n1), .o(y));
endmodule
`

func writeNetlist(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "top.v")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))
	return path
}

// resetFlags restores every global flag to its default.
func resetFlags() {
	verbose, quiet, jsonOut = false, false, false
	ioLimit, memoryLimit = 0, 0
	implicitWires = false
	storeURI, ddbTable = "mem://", ""
	saveName, saveCompression, saveCommit = "", "zstd", false
	loadOutput, loadStats = "", false
}

// captureOutput captures stdout while running a function
func captureOutput(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	origStdout := os.Stdout
	r, w, err := os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	fnErr := fn()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	_, err = buf.ReadFrom(r)
	require.NoError(t, err)
	return buf.String(), fnErr
}

func TestStatsCommand(t *testing.T) {
	resetFlags()
	path := writeNetlist(t, testNetlist)

	out, err := captureOutput(t, func() error { return runStats([]string{path}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Design: top")
	assert.Contains(t, out, "gates:       2")
	assert.Contains(t, out, "NAND2_X1")

	jsonOut = true
	out, err = captureOutput(t, func() error { return runStats([]string{path}) })
	require.NoError(t, err)

	var s netlist.DesignStats
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, 1, s.Modules)
	assert.Equal(t, 2, s.Gates)
	assert.Equal(t, 5, s.Connections)
	assert.Equal(t, map[string]int{"NAND2_X1": 1, "INV_X1": 1}, s.PerModule[0].Cells)
}

func TestStatsCommand_MissingFile(t *testing.T) {
	resetFlags()
	_, err := captureOutput(t, func() error {
		return runStats([]string{filepath.Join(t.TempDir(), "missing.v")})
	})
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestCheckCommand(t *testing.T) {
	resetFlags()

	out, err := captureOutput(t, func() error { return runCheck([]string{writeNetlist(t, testNetlist)}) })
	require.NoError(t, err)
	assert.Contains(t, out, ": ok")

	bad := writeNetlist(t, undeclaredNetlist)
	out, err = captureOutput(t, func() error { return runCheck([]string{bad}) })
	assert.ErrorIs(t, err, errCheckFailed)
	assert.Contains(t, out, "module top: undeclared net n1")

	jsonOut = true
	out, err = captureOutput(t, func() error { return runCheck([]string{bad}) })
	assert.ErrorIs(t, err, errCheckFailed)
	var result checkResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.False(t, result.Valid)
	assert.Equal(t, map[string][]string{"top": {"n1"}}, result.Undeclared)

	resetFlags()
	implicitWires = true
	_, err = captureOutput(t, func() error { return runCheck([]string{bad}) })
	assert.NoError(t, err)
}

func TestSaveLoadCommands(t *testing.T) {
	resetFlags()
	ctx := context.Background()
	storeURI = t.TempDir()
	path := writeNetlist(t, testNetlist)

	saveCommit = true
	out, err := captureOutput(t, func() error { return runSave(ctx, []string{path}) })
	require.NoError(t, err)
	name := strings.TrimSpace(out)
	assert.True(t, strings.HasPrefix(name, "design-"))

	saveCommit = false
	saveName = "second.nsnap"
	saveCompression = "lz4"
	_, err = captureOutput(t, func() error { return runSave(ctx, []string{path}) })
	require.NoError(t, err)

	out, err = captureOutput(t, func() error { return runSnapshots(ctx) })
	require.NoError(t, err)
	assert.Contains(t, out, "* "+name)
	assert.Contains(t, out, "  second.nsnap")

	out, err = captureOutput(t, func() error { return runLoad(ctx, []string{blobstore.CurrentName}) })
	require.NoError(t, err)
	assert.Contains(t, out, "module top (a, b, y);")
	assert.Contains(t, out, "NAND2_X1 u1 (.a(a), .b(b), .o(n1));")

	loadOutput = filepath.Join(t.TempDir(), "out.v")
	_, err = captureOutput(t, func() error { return runLoad(ctx, []string{"second.nsnap"}) })
	require.NoError(t, err)
	d := netlist.NewDesign()
	defer d.Close()
	require.NoError(t, netlist.ReadFile(loadOutput, d))
	assert.Equal(t, 1, d.NumModules())

	loadOutput = ""
	jsonOut = true
	out, err = captureOutput(t, func() error { return runLoad(ctx, []string{name}) })
	require.NoError(t, err)
	var s netlist.DesignStats
	require.NoError(t, json.Unmarshal([]byte(out), &s))
	assert.Equal(t, "top", s.Name)
}

func TestSaveCommand_Errors(t *testing.T) {
	resetFlags()
	ctx := context.Background()
	path := writeNetlist(t, testNetlist)

	saveCompression = "gzip"
	_, err := captureOutput(t, func() error { return runSave(ctx, []string{path}) })
	assert.Error(t, err)

	resetFlags()
	storeURI = "ftp://host/dir"
	_, err = captureOutput(t, func() error { return runSave(ctx, []string{path}) })
	assert.Error(t, err)
}

func TestLoadCommand_NoCurrent(t *testing.T) {
	resetFlags()
	storeURI = t.TempDir()
	_, err := captureOutput(t, func() error {
		return runLoad(context.Background(), []string{blobstore.CurrentName})
	})
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestOpenStore(t *testing.T) {
	resetFlags()
	ctx := context.Background()
	dir := t.TempDir()

	s, err := openStore(ctx, dir)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, s)

	s, err = openStore(ctx, "file://"+dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.(*blobstore.LocalStore).Root())

	s, err = openStore(ctx, "mem://")
	require.NoError(t, err)
	assert.Same(t, memStore, s)

	for _, uri := range []string{"s3://", "minio://localhost:9000", "minio:///bucket", "gs://bucket"} {
		_, err := openStore(ctx, uri)
		assert.Error(t, err, uri)
	}
}

func TestDesignName(t *testing.T) {
	assert.Equal(t, "top", designName("/tmp/nets/top.v"))
	assert.Equal(t, "alu.syn", designName("alu.syn.v"))
	assert.Equal(t, "core", designName("core"))
}
