// Package persistence keeps the configuration image of a device on disk.
//
// The image is the raw byte layout produced by storing a parameter tree
// into a storage.EEPROM. It is written as a CBOR envelope carrying the
// format version, the config version marker, the save time and a BLAKE3
// checksum so that a truncated or corrupted file is detected on load.
package persistence
