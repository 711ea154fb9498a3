package main

import (
	"strconv"

	"github.com/webconf-project/webconf-go/pkg/param"
)

// validateForm rejects number fields that do not hold an integer.
// Empty fields are accepted.
func validateForm(tree *param.Tree, req param.Request) bool {
	valid := true
	for h := param.Handle(0); int(h) < tree.Len(); h++ {
		if tree.Kind(h) != param.KindNumber || !req.HasArg(tree.ID(h)) {
			continue
		}
		v := req.Arg(tree.ID(h))
		if v == "" {
			continue
		}
		if _, err := strconv.Atoi(v); err != nil {
			tree.SetErrorMessage(h, "Enter a whole number.")
			valid = false
		}
	}
	return valid
}
