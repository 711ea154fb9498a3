package discovery

import (
	"fmt"
	"sort"
	"strings"
)

// TXTRecordMap is a map of TXT record key-value pairs.
type TXTRecordMap map[string]string

// EncodePortalTXT creates TXT records for a portal.
func EncodePortalTXT(info *PortalInfo) TXTRecordMap {
	txt := make(TXTRecordMap)

	path := info.Path
	if path == "" {
		path = "/"
	}
	txt[TXTKeyPath] = path
	txt[TXTKeyConfigVersion] = info.ConfigVersion

	if info.Model != "" {
		txt[TXTKeyModel] = info.Model
	}
	return txt
}

// DecodePortalTXT parses the TXT records of a portal. The instance name
// and port are not part of the records and stay empty.
func DecodePortalTXT(txt TXTRecordMap) (*PortalInfo, error) {
	info := &PortalInfo{}

	var ok bool
	info.Path, ok = txt[TXTKeyPath]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyPath)
	}
	info.ConfigVersion, ok = txt[TXTKeyConfigVersion]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyConfigVersion)
	}
	info.Model = txt[TXTKeyModel]
	return info, nil
}

// TXTRecordsToStrings converts a TXTRecordMap to "key=value" strings,
// sorted by key.
func TXTRecordsToStrings(txt TXTRecordMap) []string {
	result := make([]string, 0, len(txt))
	for k, v := range txt {
		result = append(result, k+"="+v)
	}
	sort.Strings(result)
	return result
}

// StringsToTXTRecords parses a slice of "key=value" strings into a TXTRecordMap.
func StringsToTXTRecords(strs []string) TXTRecordMap {
	txt := make(TXTRecordMap)
	for _, s := range strs {
		if s == "" {
			continue
		}
		// A key without "=" is a boolean flag.
		k, v, _ := strings.Cut(s, "=")
		txt[k] = v
	}
	return txt
}

// InstanceName turns a device name into a valid instance name: dots are
// replaced and the result is cut to MaxInstanceNameLen bytes.
func InstanceName(name string) (string, error) {
	name = strings.TrimSpace(strings.ReplaceAll(name, ".", "-"))
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidInstanceName)
	}
	if len(name) > MaxInstanceNameLen {
		name = name[:MaxInstanceNameLen]
	}
	return name, nil
}
