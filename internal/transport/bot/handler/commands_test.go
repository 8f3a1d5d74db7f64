package handler

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/require"
)

func TestSplitArgs(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]string{"/sell", "Escudo", "2", "100"}, splitArgs("/sell Escudo 2 100"))

	// Quoted spans hold multi-word names together.
	rq.Equal([]string{"/sell", "Daga de Plata", "2", "100"}, splitArgs(`/sell "Daga de Plata" 2 100`))

	// Unquoted multi-word names split; the sell handler re-joins them.
	rq.Equal([]string{"/sell", "Daga", "de", "Plata", "2", "100"}, splitArgs("/sell Daga de Plata 2 100"))

	rq.Equal([]string{"/list"}, splitArgs("/list"))
	rq.Empty(splitArgs(""))
	rq.Equal([]string{"/buy", "abc"}, splitArgs("  /buy \t abc \n"))
}

func TestPartition(t *testing.T) {
	rq := require.New(t)

	rq.Equal([]string{"short"}, partition("short", 20))

	lines := []string{
		strings.Repeat("a", 8),
		strings.Repeat("b", 8),
		strings.Repeat("c", 8),
	}
	chunks := partition(strings.Join(lines, "\n"), 20)

	// Each chunk stays under the limit and breaks on line boundaries.
	rq.Len(chunks, 2)
	rq.Equal(lines[0]+"\n"+lines[1], chunks[0])
	rq.Equal(lines[2], chunks[1])

	for _, chunk := range chunks {
		rq.LessOrEqual(len(chunk), 20)
	}

	// Content survives partitioning intact.
	rq.Equal(strings.Join(lines, "\n"), strings.Join(chunks, "\n"))
}

func TestPartitionOversizedLine(t *testing.T) {
	rq := require.New(t)

	long := strings.Repeat("x", 45)
	chunks := partition(long, 20)

	for _, chunk := range chunks {
		rq.LessOrEqual(len(chunk), 20)
	}

	rq.Equal(long, strings.Join(chunks, ""))
}

func TestPartitionKeepsRunesIntact(t *testing.T) {
	rq := require.New(t)

	// 2-byte runes against an odd cap force every naive byte cut to land
	// mid-rune.
	long := strings.Repeat("ó", 30)
	chunks := partition(long, 21)

	for _, chunk := range chunks {
		rq.LessOrEqual(len(chunk), 21)
		rq.True(utf8.ValidString(chunk))
	}

	rq.Equal(long, strings.Join(chunks, ""))
}

func TestDisplayName(t *testing.T) {
	rq := require.New(t)

	rq.Equal("unknown", displayName(nil))
	rq.Equal("@ana", displayName(&telego.User{Username: "ana", FirstName: "Ana"}))
	rq.Equal("Ana Torres", displayName(&telego.User{FirstName: "Ana", LastName: "Torres"}))
	rq.Equal("Ana", displayName(&telego.User{FirstName: "Ana"}))
}
