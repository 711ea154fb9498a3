// Package param implements the configuration-parameter tree of a device
// configuration portal.
//
// # Tree Structure
//
// A Tree is an arena of items addressed by Handle. An item is either a
// group or a parameter:
//
//	[iwcAll]
//	|-- [iwcSys]
//	|   |-- 'iwcThingName' with value: 'thing-01'
//	|   \-- 'iwcApPassword' with value: <hidden>
//	\-- [iwcWifi0]
//	    |-- 'iwcWifiSsid' with value: 'home'
//	    \-- 'iwcWifiPassword' with value: <hidden>
//
// Groups keep an ordered list of children. Parameters hold one value in a
// fixed-capacity byte buffer that is supplied by the caller (or allocated
// when none is given). An item belongs to at most one group; items are
// never removed once added.
//
// # Operations
//
// Every operation is defined on both kinds of item. A group visits its
// children in insertion order:
//
//   - StorageSize: sum of the buffer lengths below the item
//   - ApplyDefaultValue: copy defaults into the buffers
//   - StoreValue / LoadValue: hand each buffer to a ByteSink / ByteSource
//   - RenderHTML: stream form markup through a Request
//   - Update: read submitted values from a Request
//   - ClearErrorMessage: drop validation messages
//   - DebugTo: print an ASCII tree
//
// # Parameter Kinds
//
// Text, number and password parameters render as input fields. A password
// is never echoed back and an empty submission leaves it unchanged. A
// checkbox stores the literal "selected" when ticked. A select parameter
// renders a fixed list of options.
//
// The tree is not safe for concurrent use.
package param
