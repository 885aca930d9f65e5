// Package debuglog writes single-line diagnostics without fmt, so it stays
// small on MCU builds. Output is chosen by the platform: a UART on RP2, stderr
// on host. Not for use from interrupt context.
package debuglog

import (
	"io"
	"strconv"
	"sync"
)

var (
	mu sync.Mutex
	// Output receives every line. Replace it before the first Print to redirect.
	Output io.Writer = defaultOutput()
	buf    []byte
)

// Print writes parts separated by single spaces and terminated by a newline.
// Strings, integers, bools, errors and Stringers are rendered; anything else
// prints as "?".
func Print(parts ...any) {
	mu.Lock()
	defer mu.Unlock()
	buf = buf[:0]
	for i, p := range parts {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = appendPart(buf, p)
	}
	buf = append(buf, '\n')
	_, _ = Output.Write(buf)
}

func appendPart(b []byte, p any) []byte {
	switch v := p.(type) {
	case string:
		return append(b, v...)
	case int:
		return strconv.AppendInt(b, int64(v), 10)
	case int32:
		return strconv.AppendInt(b, int64(v), 10)
	case int64:
		return strconv.AppendInt(b, v, 10)
	case uint8:
		return strconv.AppendUint(b, uint64(v), 10)
	case uint32:
		return strconv.AppendUint(b, uint64(v), 10)
	case uint64:
		return strconv.AppendUint(b, v, 10)
	case bool:
		return strconv.AppendBool(b, v)
	case error:
		return append(b, v.Error()...)
	case interface{ String() string }:
		return append(b, v.String()...)
	case nil:
		return append(b, "<nil>"...)
	}
	return append(b, '?')
}
