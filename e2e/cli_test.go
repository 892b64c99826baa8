package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBinary compiles lobbyd once per test binary
func buildBinary(t *testing.T) string {
	t.Helper()

	projectRoot := findProjectRoot(t)
	binaryPath := filepath.Join(t.TempDir(), "lobbyd-test")

	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/lobbyd")
	cmd.Dir = projectRoot
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "failed to build lobbyd: %s", string(output))

	return binaryPath
}

func findProjectRoot(t *testing.T) string {
	t.Helper()

	dir, err := os.Getwd()
	require.NoError(t, err)
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		require.NotEqual(t, dir, parent, "no go.mod found above working directory")
		dir = parent
	}
}

func freePort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port
}

func TestDemoRunsFullLobby(t *testing.T) {
	binary := buildBinary(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, "demo", "--guests", "3")
	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "demo failed: %s", string(output))

	out := string(output)
	assert.Contains(t, out, "room open: ")
	assert.Contains(t, out, "game started: judge=ROASTER players=3")
	assert.Contains(t, out, "(3 in room)")
}

func TestServeRelaysLobbyOverHTTP(t *testing.T) {
	binary := buildBinary(t)
	port := freePort(t)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	cmd := exec.CommandContext(ctx, binary, "serve",
		"--bind", "127.0.0.1",
		"--port", fmt.Sprint(port))
	require.NoError(t, cmd.Start())
	defer func() { _ = cmd.Process.Kill() }()

	baseURL := fmt.Sprintf("http://127.0.0.1:%d/api/v1", port)

	// Wait for the server to come up
	require.Eventually(t, func() bool {
		resp, err := http.Get(baseURL + "/health")
		if err != nil {
			return false
		}
		defer resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 15*time.Second, 100*time.Millisecond)

	// Create a room
	resp, err := http.Post(baseURL+"/rooms", "application/json",
		strings.NewReader(`{"personality":"GEN_Z"}`))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var room struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&room))
	require.Len(t, room.Code, 5)

	// Join twice, then start with the roster we have
	for _, name := range []string{"Dana", "Morgan"} {
		body, _ := json.Marshal(map[string]string{"name": name})
		joinResp, err := http.Post(baseURL+"/rooms/"+room.Code+"/join",
			"application/json", bytes.NewReader(body))
		require.NoError(t, err)
		joinResp.Body.Close()
		require.Equal(t, http.StatusOK, joinResp.StatusCode)
	}

	startResp, err := http.Post(baseURL+"/rooms/"+room.Code+"/start",
		"application/json", strings.NewReader(`{"minPlayers":2}`))
	require.NoError(t, err)
	defer startResp.Body.Close()
	require.Equal(t, http.StatusOK, startResp.StatusCode)

	var started struct {
		State  string `json:"state"`
		Roster []struct {
			Name string `json:"name"`
		} `json:"roster"`
	}
	require.NoError(t, json.NewDecoder(startResp.Body).Decode(&started))
	assert.Equal(t, "started", started.State)
	assert.Len(t, started.Roster, 2)
}
