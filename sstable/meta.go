package sstable

import "encoding/binary"

// BlockMeta describes one block within an SSTable: where it begins and the
// smallest key it holds. Blocks are stored in ascending-offset, ascending-
// key order, so FirstKey doubles as the upper-bound search key used by
// FindBlockIdx.
type BlockMeta struct {
	Offset   uint32
	FirstKey []byte
}

// encodeBlockMeta appends the wire encoding of metas to buf and returns the
// extended buffer: each entry is u32 offset || u16 first_key_len ||
// first_key_bytes, back to back, with no entry count or length prefix —
// the section's own length is implied by (meta_offset, file_len).
func encodeBlockMeta(metas []BlockMeta, buf []byte) []byte {
	for _, m := range metas {
		buf = binary.BigEndian.AppendUint32(buf, m.Offset)
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.FirstKey)))
		buf = append(buf, m.FirstKey...)
	}
	return buf
}

// decodeBlockMeta parses a meta section produced by encodeBlockMeta.
func decodeBlockMeta(buf []byte) []BlockMeta {
	var metas []BlockMeta
	for len(buf) > 0 {
		offset := binary.BigEndian.Uint32(buf[0:4])
		buf = buf[4:]
		keyLen := binary.BigEndian.Uint16(buf[0:2])
		buf = buf[2:]
		key := append([]byte(nil), buf[:keyLen]...)
		buf = buf[keyLen:]
		metas = append(metas, BlockMeta{Offset: offset, FirstKey: key})
	}
	return metas
}
