package jpeg

import (
	"bytes"
	"errors"
	"fmt"
	"slices"
)

// APP2 payload layout: "ICC_PROFILE\0", 1-based sequence number, chunk count,
// then up to maxChunkDataSize bytes of profile data.
const (
	iccMarkerTag     = "ICC_PROFILE\x00"
	iccHeaderLen     = len(iccMarkerTag) + 2
	maxChunkDataSize = 65535 - 2 - iccHeaderLen
	maxICCChunks     = 255
)

type iccChunk struct {
	seq  int
	data []byte
}

// ExtractICC reassembles an ICC profile from raw APP2 marker payloads.
// Payloads that are not ICC chunks are ignored. It returns nil, nil when no
// profile is present.
func ExtractICC(markers [][]byte) ([]byte, error) {
	var chunks []iccChunk
	total := 0
	for _, m := range markers {
		if len(m) < iccHeaderLen || string(m[:len(iccMarkerTag)]) != iccMarkerTag {
			continue
		}
		seq, count := int(m[12]), int(m[13])
		if seq == 0 || seq > count {
			return nil, fmt.Errorf("invalid ICC chunk sequence %d/%d", seq, count)
		}
		switch {
		case total == 0:
			total = count
		case count != total:
			return nil, fmt.Errorf("inconsistent ICC chunk count: %d vs %d", count, total)
		}
		chunks = append(chunks, iccChunk{seq: seq, data: m[iccHeaderLen:]})
	}
	if len(chunks) == 0 {
		return nil, nil
	}
	if len(chunks) != total {
		return nil, fmt.Errorf("expected %d ICC chunks, found %d", total, len(chunks))
	}

	slices.SortFunc(chunks, func(a, b iccChunk) int { return a.seq - b.seq })
	var buf bytes.Buffer
	for _, c := range chunks {
		buf.Write(c.data)
	}
	return buf.Bytes(), nil
}

// ChunkICC splits an ICC profile into complete APP2 marker payloads, in
// sequence order.
func ChunkICC(profile []byte) ([][]byte, error) {
	if len(profile) == 0 {
		return nil, errors.New("empty ICC profile")
	}
	n := (len(profile) + maxChunkDataSize - 1) / maxChunkDataSize
	if n > maxICCChunks {
		return nil, fmt.Errorf("ICC profile too large: needs %d chunks (max %d)", n, maxICCChunks)
	}

	out := make([][]byte, 0, n)
	for i, part := range slices.Collect(slices.Chunk(profile, maxChunkDataSize)) {
		payload := make([]byte, 0, iccHeaderLen+len(part))
		payload = append(payload, iccMarkerTag...)
		payload = append(payload, byte(i+1), byte(n))
		payload = append(payload, part...)
		out = append(out, payload)
	}
	return out, nil
}
