package tags

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// id3v2Frame encodes a single ISO-8859-1 text frame
func id3v2Frame(id, text string) []byte {
	body := append([]byte{0x00}, []byte(text)...)
	size := len(body)
	frame := []byte(id)
	frame = append(frame, byte(size>>24), byte(size>>16), byte(size>>8), byte(size))
	frame = append(frame, 0x00, 0x00)
	return append(frame, body...)
}

// writeID3File writes a minimal ID3v2.3 tagged file
func writeID3File(t *testing.T, title, artist string) string {
	t.Helper()

	var frames []byte
	frames = append(frames, id3v2Frame("TIT2", title)...)
	frames = append(frames, id3v2Frame("TPE1", artist)...)

	size := len(frames)
	header := []byte{'I', 'D', '3', 0x03, 0x00, 0x00,
		byte(size>>21) & 0x7f, byte(size>>14) & 0x7f, byte(size>>7) & 0x7f, byte(size) & 0x7f}

	data := append(header, frames...)
	path := filepath.Join(t.TempDir(), "tagged.mp3")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestReader_Read(t *testing.T) {
	path := writeID3File(t, "Encore", "The Band")

	info, err := NewReader().Read(path)
	require.NoError(t, err)

	assert.Equal(t, "Encore", info.Title)
	assert.Equal(t, "The Band", info.Artist)
	assert.Equal(t, "ID3v2.3", info.Format)
}

func TestReader_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := NewReader().Read(filepath.Join(t.TempDir(), "none.mp3"))
		assert.ErrorContains(t, err, "failed to open file")
	})

	t.Run("no tags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "plain.bin")
		require.NoError(t, os.WriteFile(path, []byte("not an audio file at all"), 0644))
		_, err := NewReader().Read(path)
		assert.ErrorContains(t, err, "failed to read metadata")
	})
}

func TestInfo_Mismatch(t *testing.T) {
	info := &Info{Title: "Encore", Artist: "The Band"}

	assert.Empty(t, info.Mismatch("Encore", "The Band"))
	assert.Empty(t, info.Mismatch(" Encore ", "The Band"))

	diffs := info.Mismatch("Opening", "The Band")
	require.Len(t, diffs, 1)
	assert.Equal(t, `title is "Encore", expected "Opening"`, diffs[0])

	assert.Len(t, info.Mismatch("x", "y"), 2)
}
