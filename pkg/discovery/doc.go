// Package discovery announces a config portal via mDNS/DNS-SD.
//
// The portal is an ordinary web server, so it is advertised as
// _http._tcp with the device name as instance name. TXT records carry the
// page path (path), the config version (cv) and optionally the model
// (model), so a browser or companion app can open the right page and tell
// whether a device needs reconfiguration:
//
//	thermostat-1._http._tcp.local.  port 80  "path=/" "cv=v001"
package discovery
