// Package portal serves a param.Tree as a configuration web page.
//
// A Portal owns the tree, the in-memory storage image and an optional
// image file. On Init it loads the stored values, or applies defaults when
// the stored config version differs from the configured one. GET renders
// the form; POST clears old error messages, runs the validator, and then
// either redisplays the submitted values or updates, stores and confirms.
//
// All tree access is serialized, so a Portal can be handed directly to
// net/http.
//
//	portal, err := portal.New(tree, root, portal.Config{
//	    Title:          "thermostat",
//	    ConfigVersion:  "v001",
//	    ImagePath:      "/var/lib/thermostat/config.img",
//	    AuthPasswordID: "apPassword",
//	})
//	if err := portal.Init(); err != nil { ... }
//	http.ListenAndServe(":80", portal)
package portal
