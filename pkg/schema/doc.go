// Package schema declares a parameter tree in a file.
//
// A schema is authored as YAML or as JSONC (JSON with comments and
// trailing commas) and built into a param.Tree:
//
//	title: thermostat
//	config_version: v001
//	auth_password: apPassword
//	root:
//	  id: iwcAll
//	  type: group
//	  items:
//	    - id: iwcSys
//	      type: group
//	      label: System configuration
//	      items:
//	        - {id: iwcThingName, type: text, label: Thing name, length: 33, default: thermostat}
//	        - {id: apPassword, type: password, label: AP password, length: 33}
//	    - id: mode
//	      type: select
//	      label: Mode
//	      length: 8
//	      default: auto
//	      options:
//	        - {value: auto, name: Automatic}
//	        - {value: eco, name: Economy}
//
// A group renders as a fieldset when it has a label or sets fieldset.
// Items appear in declaration order.
package schema
