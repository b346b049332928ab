package index

import "encoding/binary"

// Sequence keys sort in load order under bbolt's byte ordering.
func seqKey(i int) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, uint32(i))
	return k
}

func seqFromKey(k []byte) (int, bool) {
	if len(k) != 4 {
		return 0, false
	}
	return int(binary.BigEndian.Uint32(k)), true
}
