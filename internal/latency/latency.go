// Package latency simulates network round trips in front of the mock stores.
//
// Every store operation names itself with an Op and waits on the injected
// Policy before it touches data. Tests use None so calls complete immediately.
package latency

import (
	"context"
	"math/rand/v2"
	"time"
)

type Op string

const (
	OpSignUp  Op = "auth.sign_up"
	OpSignIn  Op = "auth.sign_in"
	OpSignOut Op = "auth.sign_out"

	OpGetProfile     Op = "yearbook.get_profile"
	OpUpdateProfile  Op = "yearbook.update_profile"
	OpListStudents   Op = "yearbook.list_students"
	OpListSignatures Op = "yearbook.list_signatures"
	OpSignGuestbook  Op = "yearbook.sign"

	OpListMessages Op = "wall.list"
	OpPostMessage  Op = "wall.post"

	OpListMedia   Op = "vault.list"
	OpUploadMedia Op = "vault.upload"
)

// Defaults mirrors the delays the mock backend has always used.
var Defaults = map[Op]time.Duration{
	OpSignUp:  800 * time.Millisecond,
	OpSignIn:  800 * time.Millisecond,
	OpSignOut: 400 * time.Millisecond,

	OpGetProfile:     500 * time.Millisecond,
	OpUpdateProfile:  800 * time.Millisecond,
	OpListStudents:   600 * time.Millisecond,
	OpListSignatures: 300 * time.Millisecond,
	OpSignGuestbook:  500 * time.Millisecond,

	OpListMessages: 400 * time.Millisecond,
	OpPostMessage:  600 * time.Millisecond,

	OpListMedia:   500 * time.Millisecond,
	OpUploadMedia: 1500 * time.Millisecond,
}

// Policy decides how long an operation waits before it is serviced.
type Policy interface {
	Delay(op Op) time.Duration
}

type PolicyFunc func(op Op) time.Duration

func (f PolicyFunc) Delay(op Op) time.Duration {
	return f(op)
}

// None never waits.
func None() Policy {
	return PolicyFunc(func(Op) time.Duration { return 0 })
}

// Simulated waits the fixed per-operation delay from Defaults.
func Simulated() Policy {
	return Fixed(Defaults)
}

// Fixed waits the delay listed for each op; unknown ops do not wait.
func Fixed(table map[Op]time.Duration) Policy {
	return PolicyFunc(func(op Op) time.Duration {
		return table[op]
	})
}

// Random waits a uniformly distributed delay in [min, max). An empty or
// inverted range always waits min.
func Random(min, max time.Duration) Policy {
	if max <= min {
		return PolicyFunc(func(Op) time.Duration { return min })
	}
	return PolicyFunc(func(Op) time.Duration {
		return min + rand.N(max-min)
	})
}

// Wait blocks for the policy's delay, returning early with ctx.Err() when
// the caller goes away. A nil policy does not wait.
func Wait(ctx context.Context, p Policy, op Op) error {
	if p == nil {
		return ctx.Err()
	}
	d := p.Delay(op)
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
