package assets

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siddarth709/Portfolio/internal/mirror"
)

type memUpload struct {
	name string
	body []byte
}

func (u memUpload) Name() string { return u.name }
func (u memUpload) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(u.body)), nil
}

type recordingPusher struct {
	changes []mirror.Change
	err     error
}

func (p *recordingPusher) Push(_ context.Context, c mirror.Change) mirror.Result {
	p.changes = append(p.changes, c)
	return mirror.Result{Backend: "fake", Err: p.err}
}

type stubScanner struct{ err error }

func (s stubScanner) Scan(io.Reader) error { return s.err }

func fixedClock() time.Time { return time.Unix(1700000000, 0) }

func testFolders(t *testing.T) (image, document Folder) {
	root := t.TempDir()
	image = NewFolder(root, "certificates", "Cert", "static/uploads/certificates", ClassImage)
	document = NewFolder(root, "documents", "Doc", "uploads/private", ClassDocument)
	return image, document
}

func TestStoreWritesPrefixedFileAndPushes(t *testing.T) {
	image, _ := testFolders(t)
	pusher := &recordingPusher{}
	m := NewManager(pusher, nil, WithClock(fixedClock))

	name, res, err := m.Store(context.Background(), memUpload{name: "My Cert.PNG", body: []byte("png")}, image, "cert")
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "cert_1700000000_My_Cert.PNG", name)

	data, err := os.ReadFile(filepath.Join(image.Dir, name))
	require.NoError(t, err)
	assert.Equal(t, "png", string(data))

	require.Len(t, pusher.changes, 1)
	assert.Equal(t, "Upload Cert cert_1700000000_My_Cert.PNG", pusher.changes[0].Message)
	assert.Equal(t, []string{"static/uploads/certificates/cert_1700000000_My_Cert.PNG"}, pusher.changes[0].Paths)
}

func TestStoreRejectsEmptyName(t *testing.T) {
	image, _ := testFolders(t)
	pusher := &recordingPusher{}
	m := NewManager(pusher, nil)

	_, _, err := m.Store(context.Background(), memUpload{}, image, "cert")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, _, err = m.Store(context.Background(), nil, image, "cert")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Empty(t, pusher.changes)
}

func TestStoreExtensionPolicyDependsOnClass(t *testing.T) {
	image, document := testFolders(t)
	m := NewManager(&recordingPusher{}, nil, WithClock(fixedClock))
	exe := memUpload{name: "tool.exe", body: []byte("MZ")}

	_, _, err := m.Store(context.Background(), exe, image, "cert")
	assert.ErrorIs(t, err, ErrExtensionNotAllowed)

	name, _, err := m.Store(context.Background(), exe, document, "doc")
	require.NoError(t, err)
	assert.Equal(t, "doc_1700000000_tool.exe", name)
}

func TestStoreSanitizesTraversal(t *testing.T) {
	_, document := testFolders(t)
	m := NewManager(&recordingPusher{}, nil, WithClock(fixedClock))

	name, _, err := m.Store(context.Background(), memUpload{name: "../../etc/passwd"}, document, "doc")
	require.NoError(t, err)
	assert.Equal(t, "doc_1700000000_etc_passwd", name)
	_, err = os.Stat(filepath.Join(document.Dir, name))
	assert.NoError(t, err)
}

func TestStorePushFailureKeepsFile(t *testing.T) {
	image, _ := testFolders(t)
	m := NewManager(&recordingPusher{err: errors.New("network down")}, nil, WithClock(fixedClock))

	name, res, err := m.Store(context.Background(), memUpload{name: "a.jpg", body: []byte("x")}, image, "project")
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Contains(t, res.Warning(), "network down")
	_, err = os.Stat(filepath.Join(image.Dir, name))
	assert.NoError(t, err)
}

func TestStoreScannerRejects(t *testing.T) {
	image, _ := testFolders(t)
	pusher := &recordingPusher{}
	m := NewManager(pusher, nil, WithScanner(stubScanner{err: ErrInfected}))

	_, _, err := m.Store(context.Background(), memUpload{name: "a.png", body: []byte("x")}, image, "cert")
	assert.ErrorIs(t, err, ErrInfected)
	assert.Empty(t, pusher.changes)
	entries, _ := os.ReadDir(image.Dir)
	assert.Empty(t, entries)
}

func TestDeleteIsIdempotent(t *testing.T) {
	image, _ := testFolders(t)
	m := NewManager(&recordingPusher{}, nil)
	require.NoError(t, os.MkdirAll(image.Dir, 0o755))
	require.NoError(t, os.WriteFile(image.Path("x.png"), []byte("x"), 0o644))

	require.NoError(t, m.Delete(image, "x.png"))
	_, err := os.Stat(image.Path("x.png"))
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, m.Delete(image, "x.png"))
	assert.NoError(t, m.Delete(image, ""))
}

func TestDeleteRefusesPaths(t *testing.T) {
	image, _ := testFolders(t)
	m := NewManager(&recordingPusher{}, nil)
	assert.ErrorIs(t, m.Delete(image, "../secret.json"), ErrUnsafeName)
	assert.ErrorIs(t, m.Delete(image, ".."), ErrUnsafeName)
}

func TestSanitizeName(t *testing.T) {
	cases := map[string]string{
		"report.pdf":          "report.pdf",
		"my file (1).jpg":     "my_file_1.jpg",
		`..\..\windows\a.txt`: "windows_a.txt",
		"...":                 "file",
		".hidden":             "hidden",
	}
	for in, want := range cases {
		assert.Equal(t, want, SanitizeName(in), in)
	}
}

func TestAllowed(t *testing.T) {
	assert.True(t, Allowed("a.JPEG"))
	assert.True(t, Allowed("notes.txt"))
	assert.False(t, Allowed("a.exe"))
	assert.False(t, Allowed("noext"))
}
