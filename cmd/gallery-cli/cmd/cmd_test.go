package cmd

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/nfrund/gallery/internal/config"
	"github.com/nfrund/gallery/internal/remote/remotetest"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "cli-token"

func setupCLI(t *testing.T) (*remotetest.Server, func(args ...string) (string, error)) {
	t.Helper()

	stub := remotetest.New(testToken, remotetest.User{ID: "me", Name: "Jacques", About: "Explorer"})
	stub.AddUser(remotetest.User{ID: "other", Name: "Ada"})
	stub.AppendCard(remotetest.Card{ID: "lake", Name: "Lake", Link: "https://x/lake.jpg", Owner: "other", Likes: []string{"other"}})
	ts := httptest.NewServer(stub.Handler())
	t.Cleanup(ts.Close)

	cfg := &config.Config{APIURL: ts.URL, APIToken: testToken}
	run := func(args ...string) (string, error) {
		root := NewRootCmd(cfg)
		var out bytes.Buffer
		root.SetOut(&out)
		root.SetErr(&out)
		root.SetArgs(args)
		err := root.Execute()
		return out.String(), err
	}
	return stub, run
}

func TestProfileCommands(t *testing.T) {
	_, run := setupCLI(t)

	out, err := run("profile", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "name:   Jacques")

	out, err = run("profile", "edit", "--name", "Ada Lovelace", "--about", "Mathematician")
	require.NoError(t, err)
	assert.Contains(t, out, "name:   Ada Lovelace")

	_, err = run("profile", "edit", "--name", "A", "--about", "x")
	assert.Error(t, err, "invalid input is rejected before any request")

	out, err = run("avatar", "set", "https://x/me.jpg")
	require.NoError(t, err)
	assert.Contains(t, out, "avatar: https://x/me.jpg")
}

func TestCardCommands(t *testing.T) {
	stub, run := setupCLI(t)

	out, err := run("cards", "add", "--name", "Peaks", "--link", "https://x/peaks.jpg")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)

	out, err = run("cards", "list")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], id), "new card is listed first")
	assert.Contains(t, lines[2], "lake")

	out, err = run("cards", "like", "lake")
	require.NoError(t, err)
	assert.Equal(t, "lake likes: 2\n", out)

	out, err = run("cards", "unlike", "lake")
	require.NoError(t, err)
	assert.Equal(t, "lake likes: 1\n", out)

	_, err = run("cards", "delete", "lake")
	assert.Error(t, err, "the service refuses to delete a foreign card")

	_, err = run("cards", "delete", id)
	require.NoError(t, err)
	_, ok := stub.Card(id)
	assert.False(t, ok)
}

func TestBearerFlag(t *testing.T) {
	stub, run := setupCLI(t)
	stub.SetCredential("Bearer " + testToken)

	_, err := run("profile", "show")
	assert.Error(t, err)

	_, err = run("--bearer", "profile", "show")
	assert.NoError(t, err)
}

func TestMissingToken(t *testing.T) {
	root := NewRootCmd(&config.Config{APIURL: "http://127.0.0.1:1"})
	root.SetArgs([]string{"profile", "show"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	assert.ErrorContains(t, root.Execute(), "no token")
}

func TestVersion(t *testing.T) {
	_, run := setupCLI(t)
	out, err := run("version")
	require.NoError(t, err)
	assert.Equal(t, "gallery-cli v"+version+"\n", out)
}

func TestNewStubServer(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "seed.yaml", []byte("me:\n  id: u1\n  name: Ada\ncards:\n  - name: Peaks\n    link: https://x/p.jpg\n"), 0o644))

	srv, err := newStubServer(fs, "seed.yaml", "tok")
	require.NoError(t, err)
	assert.Equal(t, "u1", srv.Me().ID)

	srv, err = newStubServer(fs, "", "tok")
	require.NoError(t, err)
	assert.Equal(t, "me", srv.Me().ID)

	_, err = newStubServer(fs, "missing.yaml", "tok")
	assert.Error(t, err)
}
