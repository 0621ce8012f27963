// Package input decodes the text format consumed by idxrange: one range
// per line, a blank line, then the query values.
//
//	3-5
//	10 14
//	16-20
//
//	1 5
//	8
//
// Range bounds and query values are decimal integers or IPv4 addresses.
package input

import (
	"bufio"
	"io"
	"net/netip"
	"os"
	"strconv"
	"strings"

	"github.com/henderiw/idxrange/pkg/rangeset"
	"github.com/pkg/errors"
	"go4.org/netipx"
)

const maxLineSize = 1024 * 1024

type Input struct {
	Ranges  []rangeset.Range
	Queries []uint64
}

func ParseFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open input")
	}
	defer f.Close()

	in, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse %s", path)
	}
	return in, nil
}

func Parse(r io.Reader) (*Input, error) {
	in := &Input{}

	s := bufio.NewScanner(r)
	s.Buffer(nil, maxLineSize)

	lineNum := 0
	inRanges := true
	for s.Scan() {
		lineNum++
		line := strings.TrimSpace(s.Text())

		if inRanges {
			if line == "" {
				inRanges = false
				continue
			}
			rng, err := parseRangeLine(line)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			in.Ranges = append(in.Ranges, rng)
			continue
		}

		for _, field := range strings.Fields(line) {
			id, _, err := parseID(field)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", lineNum)
			}
			in.Queries = append(in.Queries, id)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrapf(err, "line %d", lineNum+1)
	}
	return in, nil
}

// parseRangeLine accepts "from-to" and "from to".
func parseRangeLine(line string) (rangeset.Range, error) {
	var from, to string
	switch fields := strings.Fields(line); len(fields) {
	case 1:
		var ok bool
		from, to, ok = strings.Cut(fields[0], "-")
		if !ok {
			return rangeset.Range{}, errors.Errorf("no hyphen in range %q", line)
		}
	case 2:
		from, to = fields[0], fields[1]
	default:
		return rangeset.Range{}, errors.Errorf("range %q: want 2 bounds, got %d fields", line, len(fields))
	}

	fromID, fromAddr, err := parseID(from)
	if err != nil {
		return rangeset.Range{}, errors.Wrapf(err, "invalid from in range %q", line)
	}
	toID, toAddr, err := parseID(to)
	if err != nil {
		return rangeset.Range{}, errors.Wrapf(err, "invalid to in range %q", line)
	}

	if fromAddr.IsValid() && toAddr.IsValid() {
		rng, err := rangeset.RangeFromIPRange(netipx.IPRangeFrom(fromAddr, toAddr))
		return rng, errors.WithStack(err)
	}
	rng, err := rangeset.RangeFrom(fromID, toID)
	return rng, errors.WithStack(err)
}

// parseID parses a decimal integer or an IPv4 address. The address is
// returned as well when the token was one.
func parseID(token string) (uint64, netip.Addr, error) {
	if strings.IndexByte(token, '.') == -1 {
		id, err := strconv.ParseUint(token, 10, 64)
		if err != nil {
			return 0, netip.Addr{}, errors.Errorf("invalid number %q", token)
		}
		return id, netip.Addr{}, nil
	}
	addr, err := netip.ParseAddr(token)
	if err != nil {
		return 0, netip.Addr{}, errors.Errorf("invalid address %q", token)
	}
	id, err := rangeset.IPv4ToID(addr)
	if err != nil {
		return 0, netip.Addr{}, errors.WithStack(err)
	}
	return id, addr, nil
}
