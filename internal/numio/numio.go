// Package numio reads and writes the value-set file formats used by the
// CLI, ported from original_source's nmbrsrc.rs (save/load, load_u40_fit)
// and main.rs (the "tim" benchmark dump and the comma-separated load
// format).
package numio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
)

// SaveMsgpack writes values msgpack-encoded, matching nmbrsrc.rs's save
// (rmp_serde). If path already holds a msgpack value set, its contents are
// merged in sorted order, mirroring the original's load-then-append-then-
// resave behavior.
func SaveMsgpack(path string, values []uint64) error {
	if existing, err := LoadMsgpack(path); err == nil {
		values = mergeSorted(existing, values)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return msgpack.NewEncoder(f).Encode(values)
}

// LoadMsgpack reads a msgpack-encoded value set.
func LoadMsgpack(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var values []uint64
	if err := msgpack.NewDecoder(f).Decode(&values); err != nil {
		return nil, err
	}
	return values, nil
}

func mergeSorted(a, b []uint64) []uint64 {
	out := append(append([]uint64{}, a...), b...)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// widthBytes is the packed record width for the "fit" and "tim" formats:
// a 40-bit value fits in 5 little-endian bytes, matching u40's on-disk
// representation in original_source.
const widthBytes = 5

// SaveFit writes values as back-to-back 5-byte little-endian records, no
// header, matching nmbrsrc.rs's fit layout (load_u40_fit's inverse).
func SaveFit(path string, values []uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	for _, v := range values {
		if err := writeRecord(w, v); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadFit reads back-to-back 5-byte little-endian records until EOF,
// ported from nmbrsrc.rs's load_u40_fit. A trailing partial record is an
// error (io.ErrUnexpectedEOF).
func LoadFit(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var values []uint64
	for {
		v, err := readRecord(r)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// SaveTim writes an 8-byte little-endian count followed by 5-byte records,
// matching main.rs's benchmark dump format ("tim").
func SaveTim(path string, values []uint64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := bufio.NewWriter(f)
	var countBuf [8]byte
	binary.LittleEndian.PutUint64(countBuf[:], uint64(len(values)))
	if _, err := w.Write(countBuf[:]); err != nil {
		return err
	}
	for _, v := range values {
		if err := writeRecord(w, v); err != nil {
			return err
		}
	}
	return w.Flush()
}

// LoadTim reads the "tim" format: an 8-byte count, then that many 5-byte
// records.
func LoadTim(path string) ([]uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	r := bufio.NewReader(f)
	var countBuf [8]byte
	if _, err := io.ReadFull(r, countBuf[:]); err != nil {
		return nil, err
	}
	count := binary.LittleEndian.Uint64(countBuf[:])
	values := make([]uint64, 0, count)
	for i := uint64(0); i < count; i++ {
		v, err := readRecord(r)
		if err != nil {
			return nil, fmt.Errorf("numio: tim record %d: %w", i, err)
		}
		values = append(values, v)
	}
	return values, nil
}

func writeRecord(w io.Writer, v uint64) error {
	var buf [widthBytes]byte
	buf[0] = byte(v)
	buf[1] = byte(v >> 8)
	buf[2] = byte(v >> 16)
	buf[3] = byte(v >> 24)
	buf[4] = byte(v >> 32)
	_, err := w.Write(buf[:])
	return err
}

func readRecord(r io.Reader) (uint64, error) {
	var buf [widthBytes]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, err
	}
	v := uint64(buf[0]) | uint64(buf[1])<<8 | uint64(buf[2])<<16 | uint64(buf[3])<<24 | uint64(buf[4])<<32
	return v, nil
}

// SaveText writes values as a single comma-separated decimal line.
func SaveText(path string, values []uint64) error {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatUint(v, 10)
	}
	return os.WriteFile(path, []byte(strings.Join(parts, ",")), 0o644)
}

// LoadText reads a single comma-separated decimal line.
func LoadText(path string) ([]uint64, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fields := strings.Split(strings.TrimSpace(string(raw)), ",")
	values := make([]uint64, 0, len(fields))
	for _, field := range fields {
		if field == "" {
			continue
		}
		v, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("numio: parsing %q: %w", field, err)
		}
		values = append(values, v)
	}
	return values, nil
}
