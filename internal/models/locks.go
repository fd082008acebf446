package models

// LockMap records which fields are locked. A missing entry means unlocked.
type LockMap map[Field]bool

// IsLocked reports whether the field is locked
func (l LockMap) IsLocked(f Field) bool {
	return l[f]
}

// Clone copies the map, dropping false entries
func (l LockMap) Clone() LockMap {
	out := make(LockMap, len(l))
	for f, locked := range l {
		if locked {
			out[f] = true
		}
	}
	return out
}

// Toggle returns a copy of the map with the field's lock flipped
func (l LockMap) Toggle(f Field) (LockMap, error) {
	if !f.Lockable() {
		return l, ErrFieldNotLockable
	}
	out := l.Clone()
	if out[f] {
		delete(out, f)
	} else {
		out[f] = true
	}
	return out, nil
}

// Locked returns the locked fields in AllFields order
func (l LockMap) Locked() []Field {
	var fields []Field
	for _, f := range AllFields {
		if l[f] {
			fields = append(fields, f)
		}
	}
	return fields
}

// Sanitize drops entries for unknown or unlockable fields, e.g. from an old share token
func (l LockMap) Sanitize() LockMap {
	out := make(LockMap, len(l))
	for f, locked := range l {
		if !locked || !f.Lockable() {
			continue
		}
		if _, err := ParseField(string(f)); err != nil {
			continue
		}
		out[f] = true
	}
	return out
}
