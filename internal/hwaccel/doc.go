// Package hwaccel detects which hardware video encoders actually work on
// this machine by running short synthetic encodes, and recommends a default.
package hwaccel
