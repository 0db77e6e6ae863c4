package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danmuck/mcwire/internal/blocklist"
	"github.com/danmuck/mcwire/internal/protocol"
	"github.com/danmuck/mcwire/internal/testutil/testlog"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	testlog.Start(t)
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const handshakeHex = "1000fd05096c6f63616c686f737463dd02"

func TestHandshakeCommand(t *testing.T) {
	out, err := run(t, "handshake", "--address", "localhost", "--port", "25565", "--protocol", "765", "--next", "login")
	require.NoError(t, err)
	require.Equal(t, handshakeHex+"\n", out)
}

func TestHandshakeUsesConfiguredProtocol(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcwire.toml")
	require.NoError(t, os.WriteFile(path, []byte("protocol_version = 767\n"), 0o600))

	out, err := run(t, "--config", path, "handshake")
	require.NoError(t, err)
	// VarInt 767 is ff 05
	require.True(t, strings.HasPrefix(out, "1000ff05"), out)
}

func TestHandshakeRejectsUnknownIntent(t *testing.T) {
	_, err := run(t, "handshake", "--next", "play")
	require.Error(t, err)
}

func TestDecodeFrameCommand(t *testing.T) {
	out, err := run(t, "decode", "--state", "handshake", "--direction", "serverbound", handshakeHex)
	require.NoError(t, err)
	require.Contains(t, out, `"name": "Handshake"`)
	require.Contains(t, out, `"ServerAddress": "localhost"`)
	require.Contains(t, out, `"ProtocolVersion": 765`)
	require.Contains(t, out, `"ServerPort": 25565`)
}

func TestDecodeRawCommand(t *testing.T) {
	out, err := run(t, "decode", "-s", "status", "-d", "clientbound", "--raw", "--id", "1", "00 00 00 00 00 00 00 2a")
	require.NoError(t, err)
	require.Contains(t, out, `"name": "PongResponse"`)
	require.Contains(t, out, `"Timestamp": 42`)
}

func TestDecodeCommandErrors(t *testing.T) {
	_, err := run(t, "decode", "-s", "handshake", "-d", "serverbound", handshakeHex+"00")
	require.ErrorContains(t, err, "after the frame")

	_, err = run(t, "decode", "-s", "handshake", "-d", "serverbound", "zz")
	require.ErrorContains(t, err, "invalid hex")

	_, err = run(t, "decode", "-s", "login", "-d", "clientbound", "--raw", "--id", "0", "05")
	require.ErrorIs(t, err, protocol.ErrUnexpectedEOF)

	_, err = run(t, "decode", "-s", "play", "-d", "clientbound", "00")
	require.Error(t, err)
}

func TestLoginStartCommand(t *testing.T) {
	out, err := run(t, "login-start", "--name", "ab", "--uuid", "069a79f4-44e9-4726-a5be-fca90e38aaf5")
	require.NoError(t, err)
	require.Equal(t, "1400026162069a79f444e94726a5befca90e38aaf5\n", out)

	_, err = run(t, "login-start", "--name", "ab", "--uuid", "nope")
	require.ErrorContains(t, err, "invalid uuid")
}

func TestCatalogCommandFilters(t *testing.T) {
	out, err := run(t, "catalog", "--state", "login", "--direction", "clientbound")
	require.NoError(t, err)
	require.Contains(t, out, "LoginSuccess")
	require.Contains(t, out, "0x05")
	require.NotContains(t, out, "Handshake")
	require.NotContains(t, out, "LoginStart")

	out, err = run(t, "catalog")
	require.NoError(t, err)
	// header plus every catalogue entry
	require.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 17)
}

func TestBlockedCommandWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hashes.txt")
	body := blocklist.Hash("*.blocked.example") + "\n" + blocklist.Hash("10.0.0.*") + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	out, err := run(t, "blocked", "--file", path, "play.blocked.example", "10.0.0.8", "minecraft.net")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "blocked")
	require.Contains(t, lines[1], "blocked")
	require.Contains(t, lines[2], "allowed")
}

func TestBlockedCommandFetchesConfiguredURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, blocklist.Hash("bad.example"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "mcwire.toml")
	cfg := fmt.Sprintf("blocklist_url = %q\nblocklist_timeout = \"2s\"\n", srv.URL)
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0o600))

	out, err := run(t, "--config", path, "blocked", "bad.example")
	require.NoError(t, err)
	require.Contains(t, out, "blocked")
}

func TestConfigInitAndValidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcwire.toml")
	out, err := run(t, "config", "init", path)
	require.NoError(t, err)
	require.Contains(t, out, "wrote config template")

	_, err = run(t, "config", "init", path)
	require.ErrorContains(t, err, "already exists")

	out, err = run(t, "config", "validate", path)
	require.NoError(t, err)
	require.Contains(t, out, "protocol 766")
}

func TestInvalidConfigFailsEveryCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcwire.toml")
	require.NoError(t, os.WriteFile(path, []byte("max_frame_bytes = -1\n"), 0o600))

	_, err := run(t, "--config", path, "catalog")
	require.ErrorContains(t, err, "max_frame_bytes")
}

func TestVersionShort(t *testing.T) {
	out, err := run(t, "version", "--short")
	require.NoError(t, err)
	require.Equal(t, "dev\n", out)
}

func TestMetricsFlagDumpsCounters(t *testing.T) {
	testlog.Start(t)
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--metrics", "login-start", "--name", "Notch"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	require.Contains(t, errOut.String(), `op="encode",packet="LoginStart",state="login",success="true"`)
}
