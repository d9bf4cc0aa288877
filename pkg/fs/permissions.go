package fs

import "fmt"

// Class identifies one subject class in the Unix permission model.
type Class int

const (
	// ClassOwner selects the owning user's permission bits.
	ClassOwner Class = iota

	// ClassGroup selects the owning group's permission bits.
	ClassGroup

	// ClassOthers selects the permission bits for everyone else.
	ClassOthers
)

// String returns a human-readable name for the class.
func (c Class) String() string {
	switch c {
	case ClassOwner:
		return "owner"
	case ClassGroup:
		return "group"
	case ClassOthers:
		return "others"
	default:
		return "unknown"
	}
}

// Capability is one of the three Unix permission capabilities.
type Capability int

const (
	// CapabilityRead is the read capability (octal 4).
	CapabilityRead Capability = iota

	// CapabilityWrite is the write capability (octal 2).
	CapabilityWrite

	// CapabilityExecute is the execute/traverse capability (octal 1).
	CapabilityExecute
)

// String returns a human-readable name for the capability.
func (c Capability) String() string {
	switch c {
	case CapabilityRead:
		return "read"
	case CapabilityWrite:
		return "write"
	case CapabilityExecute:
		return "execute"
	default:
		return "unknown"
	}
}

// PexClass encodes the read/write/execute capability set for a single
// subject class as the low three bits of a byte (the familiar 0-7 octal
// digit). The three capabilities are independent; no bit implies another.
type PexClass uint8

// Permission bit masks within a PexClass.
const (
	pexRead    PexClass = 0o4
	pexWrite   PexClass = 0o2
	pexExecute PexClass = 0o1
)

// NewPexClass builds a PexClass from individual capability flags.
func NewPexClass(read, write, execute bool) PexClass {
	var c PexClass
	if read {
		c |= pexRead
	}
	if write {
		c |= pexWrite
	}
	if execute {
		c |= pexExecute
	}
	return c
}

// CanRead reports whether the read bit is set.
func (c PexClass) CanRead() bool { return c&pexRead != 0 }

// CanWrite reports whether the write bit is set.
func (c PexClass) CanWrite() bool { return c&pexWrite != 0 }

// CanExecute reports whether the execute bit is set.
func (c PexClass) CanExecute() bool { return c&pexExecute != 0 }

// Has reports whether the given capability is set. Unknown capabilities
// are never set.
func (c PexClass) Has(cap Capability) bool {
	switch cap {
	case CapabilityRead:
		return c.CanRead()
	case CapabilityWrite:
		return c.CanWrite()
	case CapabilityExecute:
		return c.CanExecute()
	default:
		return false
	}
}

// Octal returns the class as a single octal digit (0-7).
func (c PexClass) Octal() uint8 { return uint8(c & 0o7) }

// String renders the class in ls style, e.g. "rwx" or "r-x".
func (c PexClass) String() string {
	b := [3]byte{'-', '-', '-'}
	if c.CanRead() {
		b[0] = 'r'
	}
	if c.CanWrite() {
		b[1] = 'w'
	}
	if c.CanExecute() {
		b[2] = 'x'
	}
	return string(b[:])
}

// UnixPex is the full permission aggregate for an entry: one PexClass per
// subject class plus the setuid/setgid/sticky extension bits.
//
// UnixPex round-trips losslessly with a numeric Unix mode in the range
// 0-0o7777 via FromMode and Mode. Bits above 0o7777 (file-type bits and
// anything else) are ignored in both directions.
type UnixPex struct {
	// Owner holds the owning user's capability set.
	Owner PexClass

	// Group holds the owning group's capability set.
	Group PexClass

	// Others holds the capability set for everyone else.
	Others PexClass

	// SetUID is the set-user-id bit (octal 0o4000).
	SetUID bool

	// SetGID is the set-group-id bit (octal 0o2000).
	SetGID bool

	// Sticky is the sticky bit (octal 0o1000).
	Sticky bool
}

// Mode extension bit masks.
const (
	modeSetUID uint32 = 0o4000
	modeSetGID uint32 = 0o2000
	modeSticky uint32 = 0o1000
)

// FromMode decodes a numeric Unix mode into a permission aggregate.
//
// The low twelve bits are honored: three permission triplets plus
// setuid/setgid/sticky. Any higher bits are masked off, so
// FromMode(m).Mode() == m&0o7777 for every input.
func FromMode(mode uint32) UnixPex {
	return UnixPex{
		Owner:  PexClass(mode >> 6 & 0o7),
		Group:  PexClass(mode >> 3 & 0o7),
		Others: PexClass(mode & 0o7),
		SetUID: mode&modeSetUID != 0,
		SetGID: mode&modeSetGID != 0,
		Sticky: mode&modeSticky != 0,
	}
}

// Mode encodes the aggregate back into a numeric Unix mode (0-0o7777).
// Mode is the exact inverse of FromMode over that range.
func (p UnixPex) Mode() uint32 {
	mode := uint32(p.Owner.Octal())<<6 | uint32(p.Group.Octal())<<3 | uint32(p.Others.Octal())
	if p.SetUID {
		mode |= modeSetUID
	}
	if p.SetGID {
		mode |= modeSetGID
	}
	if p.Sticky {
		mode |= modeSticky
	}
	return mode
}

// ForClass returns the capability set for the given subject class.
// Unknown classes yield an empty set.
func (p UnixPex) ForClass(c Class) PexClass {
	switch c {
	case ClassOwner:
		return p.Owner
	case ClassGroup:
		return p.Group
	case ClassOthers:
		return p.Others
	default:
		return 0
	}
}

// Has reports whether the given capability is set for the given class.
// Pure and total: unknown class/capability combinations are simply false.
func (p UnixPex) Has(class Class, cap Capability) bool {
	return p.ForClass(class).Has(cap)
}

// String renders the aggregate in ls style, e.g. "rwxr-xr-x".
// The setuid/setgid/sticky bits replace the corresponding execute
// positions with s/S and t/T following ls conventions.
func (p UnixPex) String() string {
	b := []byte(p.Owner.String() + p.Group.String() + p.Others.String())
	if p.SetUID {
		b[2] = specialRune(p.Owner.CanExecute(), 's', 'S')
	}
	if p.SetGID {
		b[5] = specialRune(p.Group.CanExecute(), 's', 'S')
	}
	if p.Sticky {
		b[8] = specialRune(p.Others.CanExecute(), 't', 'T')
	}
	return string(b)
}

// Octal renders the aggregate as a zero-padded octal string, e.g. "0755"
// or "4755" when setuid is set.
func (p UnixPex) Octal() string {
	return fmt.Sprintf("%04o", p.Mode())
}

func specialRune(executable bool, lower, upper byte) byte {
	if executable {
		return lower
	}
	return upper
}
