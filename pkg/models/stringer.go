package models

// String implements fmt.Stringer.
func (l Language) String() string { return string(l) }

// String implements fmt.Stringer.
func (s Severity) String() string { return string(s) }

// String implements fmt.Stringer.
func (t Tier) String() string { return string(t) }

// String implements fmt.Stringer.
func (v Visibility) String() string { return string(v) }

// String implements fmt.Stringer.
func (s FileStatus) String() string { return string(s) }
