// Package storage emulates the byte-addressed medium (EEPROM or a flash
// page) a device keeps its configuration in.
//
// An EEPROM is a fixed-size image. A Cursor walks it sequentially and
// satisfies both param.ByteSink and param.ByteSource, so a parameter tree
// stores and loads its buffers back to back:
//
//	mem := storage.NewEEPROM(tree.StorageSize(root) + storage.VersionLength)
//	c := mem.Cursor(0)
//	_ = c.WriteString("v001", storage.VersionLength)
//	_ = tree.StoreValue(root, c)
//
// Loading mirrors the same sequence with ReadString and LoadValue.
package storage
