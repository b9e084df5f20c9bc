// Package catalog parses and indexes sealed password archives by their file
// names and applies the computer/user selection policy.
//
// An archive file name carries all of its metadata:
//
//	<Computer>+<User>+<TimestampTicks>+<Thumbprint>
//
// TimestampTicks is the .NET tick convention: 100-nanosecond intervals since
// year 1, which keeps "sort by name" equal to "sort by time" for the
// zero-padded names the sealing tool writes.
package catalog

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/pwrecover/internal/common"
)

// Ticks between year 1 and the Unix epoch, per the .NET DateTime convention.
const unixEpochTicks = 621355968000000000

const ticksPerSecond = 10_000_000

// Record is the parsed metadata of one sealed archive.
type Record struct {
	Computer   string
	User       string
	Ticks      int64
	Thumbprint string
	Path       string
}

// ParseName splits an archive file name into a Record. The name must have
// exactly four '+'-separated segments and a numeric tick count; anything else
// is a common.ErrMalformedName.
func ParseName(name string) (*Record, error) {
	parts := strings.Split(name, common.NameDelimiter)
	if len(parts) != common.NameSegments {
		return nil, fmt.Errorf("%w: %q has %d segments, want %d",
			common.ErrMalformedName, name, len(parts), common.NameSegments)
	}

	ticks, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %q has a non-numeric timestamp segment",
			common.ErrMalformedName, name)
	}

	return &Record{
		Computer:   parts[0],
		User:       parts[1],
		Ticks:      ticks,
		Thumbprint: parts[3],
	}, nil
}

// Name reconstructs the original archive file name from the record fields.
func (r Record) Name() string {
	return strings.Join([]string{
		r.Computer, r.User, strconv.FormatInt(r.Ticks, 10), r.Thumbprint,
	}, common.NameDelimiter)
}

// Stem is the file name up to and including the delimiter before the
// thumbprint segment. The recovery engine checks the embedded nonce against
// this portion, since the thumbprint segment may have been re-derived or
// wildcarded by the sealing tool.
func (r Record) Stem() string {
	return r.Computer + common.NameDelimiter +
		r.User + common.NameDelimiter +
		strconv.FormatInt(r.Ticks, 10) + common.NameDelimiter
}

// Time converts the tick count to a calendar timestamp in UTC.
func (r Record) Time() time.Time {
	rel := r.Ticks - unixEpochTicks
	return time.Unix(rel/ticksPerSecond, (rel%ticksPerSecond)*100).UTC()
}

// IsResetFailure reports whether the record is the sentinel written for a
// failed password reset. Such archives hold no recoverable secret.
func (r Record) IsResetFailure() bool {
	return r.Thumbprint == common.ResetFailureThumbprint
}
