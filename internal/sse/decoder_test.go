package sse

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoder_SingleRecord(t *testing.T) {
	d := NewDecoder()

	records := d.Push([]byte("event: progress\ndata: {\"step\":1}\n\n"))
	require.Len(t, records, 1)
	assert.Equal(t, "progress", records[0].Event)
	assert.Equal(t, `{"step":1}`, records[0].Data)
	assert.NoError(t, d.Finish())
}

func TestDecoder_DefaultEventType(t *testing.T) {
	d := NewDecoder()

	records := d.Push([]byte("data: hello\n\n"))
	require.Len(t, records, 1)
	assert.Equal(t, DefaultEvent, records[0].Event)
	assert.Equal(t, "hello", records[0].Data)
}

func TestDecoder_KeepAliveDropped(t *testing.T) {
	d := NewDecoder()

	records := d.Push([]byte(": keep-alive\n\nevent: progress\ndata: {}\n\n"))
	require.Len(t, records, 1)
	assert.Equal(t, "progress", records[0].Event)
}

func TestDecoder_EventOnlyRecordDropped(t *testing.T) {
	d := NewDecoder()

	records := d.Push([]byte("event: progress\n\n"))
	assert.Empty(t, records)
	assert.NoError(t, d.Finish())
}

func TestDecoder_LastDataLineWins(t *testing.T) {
	d := NewDecoder()

	records := d.Push([]byte("data: first\ndata: second\n\n"))
	require.Len(t, records, 1)
	assert.Equal(t, "second", records[0].Data)
}

func TestDecoder_MultipleRecordsInOneChunk(t *testing.T) {
	d := NewDecoder()

	stream := "event: progress\ndata: one\n\nevent: progress\ndata: two\n\nevent: complete\ndata: three\n\n"
	records := d.Push([]byte(stream))
	require.Len(t, records, 3)
	assert.Equal(t, "one", records[0].Data)
	assert.Equal(t, "two", records[1].Data)
	assert.Equal(t, "three", records[2].Data)
	assert.NoError(t, d.Finish())
}

func TestDecoder_ChunkBoundaryIndependence(t *testing.T) {
	// Multi-byte UTF-8 content so byte-level splits can land mid-character.
	stream := []byte("event: progress\ndata: {\"message\":\"héllo wörld — 世界\"}\n\n" +
		"data: naked récord\n\n" +
		": kéep-alive\n\n" +
		"event: complete\ndata: {\"content\":\"日本語テキスト\"}\n\n")

	whole := NewDecoder()
	want := whole.Push(stream)
	require.NoError(t, whole.Finish())
	require.Len(t, want, 3)

	for _, size := range []int{1, 2, 3, 5, 7, 16, 64} {
		t.Run(fmt.Sprintf("chunk_size_%d", size), func(t *testing.T) {
			d := NewDecoder()
			var got []Record
			for start := 0; start < len(stream); start += size {
				end := start + size
				if end > len(stream) {
					end = len(stream)
				}
				got = append(got, d.Push(stream[start:end])...)
			}
			require.NoError(t, d.Finish())
			assert.Equal(t, want, got)
		})
	}
}

func TestDecoder_SplitAtEveryPosition(t *testing.T) {
	stream := []byte("event: progress\ndata: {\"stage\":\"draft\",\"step\":2}\n\ndata: ok\n\n")

	whole := NewDecoder()
	want := whole.Push(stream)
	require.Len(t, want, 2)

	for cut := 1; cut < len(stream); cut++ {
		d := NewDecoder()
		got := d.Push(stream[:cut])
		got = append(got, d.Push(stream[cut:])...)
		require.NoError(t, d.Finish(), "cut at %d", cut)
		assert.Equal(t, want, got, "cut at %d", cut)
	}
}

func TestDecoder_Finish_TruncatedRecord(t *testing.T) {
	d := NewDecoder()

	records := d.Push([]byte("event: progress\ndata: {\"step\":1}\n\nevent: complete\ndata: {\"conte"))
	require.Len(t, records, 1)
	assert.ErrorIs(t, d.Finish(), ErrTruncated)
}

func TestDecoder_Finish_TrailingNewlineIsClean(t *testing.T) {
	d := NewDecoder()

	d.Push([]byte("data: done\n\n\n"))
	assert.NoError(t, d.Finish())
}

func TestDecoder_NoRecordsUntilDelimiter(t *testing.T) {
	d := NewDecoder()

	assert.Empty(t, d.Push([]byte("event: progress\n")))
	assert.Empty(t, d.Push([]byte("data: {\"step\":1}\n")))
	records := d.Push([]byte("\n"))
	require.Len(t, records, 1)
	assert.Equal(t, "progress", records[0].Event)
}
