// Package readings turns an instrument's value groups into numeric readings.
//
// Only the first measurement of a group is used; the upstream lists the most
// recent one first. Codes are matched case-insensitively. A value that is
// null, missing or not a number leaves the reading empty. Nothing in this
// package returns an error: every failure degrades to "no value" for the
// instrument concerned.
package readings
