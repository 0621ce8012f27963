package rangeset

import (
	"fmt"
	"math"
	"net/netip"

	"go4.org/netipx"
)

// IPv4ToID returns the numeric value of an IPv4 address.
func IPv4ToID(addr netip.Addr) (uint64, error) {
	addr = addr.Unmap()
	if !addr.Is4() {
		return 0, fmt.Errorf("ip address %s is not an IPv4 address", addr)
	}
	a4 := addr.As4()
	return uint64(beUint32(a4[:])), nil
}

// IDToIPv4 is the inverse of IPv4ToID.
func IDToIPv4(id uint64) (netip.Addr, error) {
	if id > math.MaxUint32 {
		return netip.Addr{}, fmt.Errorf("id %d does not fit in an IPv4 address", id)
	}
	var a4 [4]byte
	bePutUint32(a4[:], uint32(id))
	return netip.AddrFrom4(a4), nil
}

// RangeFromIPRange converts an IPv4 range to the range of its numeric
// values.
func RangeFromIPRange(r netipx.IPRange) (Range, error) {
	if !r.IsValid() {
		return Range{}, fmt.Errorf("ip range %s: %w", r.String(), ErrInvalidRange)
	}
	from, err := IPv4ToID(r.From())
	if err != nil {
		return Range{}, err
	}
	to, err := IPv4ToID(r.To())
	if err != nil {
		return Range{}, err
	}
	return RangeFrom(from, to)
}

// IPRange returns r as an IPv4 range, provided both bounds fit.
func (r Range) IPRange() (netipx.IPRange, error) {
	from, err := IDToIPv4(r.from)
	if err != nil {
		return netipx.IPRange{}, err
	}
	to, err := IDToIPv4(r.to)
	if err != nil {
		return netipx.IPRange{}, err
	}
	return netipx.IPRangeFrom(from, to), nil
}
